// Copyright (c) 2018 Cisco and/or its affiliates.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at:
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package saimeta

import (
	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// Set changes one attribute of an existing object.
func (m *Meta) Set(key sai.ObjectKey, attr sai.Attribute) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpSet, objectTypeOf(key), []sai.Attribute{attr})
	defer func() { done(key, err) }()

	if key == nil {
		return api.NewError(api.InvalidArgument, "object key is nil")
	}
	if err = m.validateSet(key, attr); err != nil {
		return err
	}

	prev := m.applySet(key, attr)
	if berr := m.Backend.Set(key, sai.Attribute{ID: attr.ID, Value: sai.CloneValue(attr.Value)}); berr != nil {
		m.restoreAttribute(key, attr.ID, prev)
		reportRollback(api.OpSet)
		return m.backendError(api.OpSet, key, berr)
	}
	return nil
}

// applySet stores the validated attribute and returns the previous value.
func (m *Meta) applySet(key sai.ObjectKey, attr sai.Attribute) sai.Value {
	prev, err := m.db.UpdateAttribute(key, attr)
	if err != nil {
		m.fatal(err)
	}
	return prev
}

// restoreAttribute reverts applySet.
func (m *Meta) restoreAttribute(key sai.ObjectKey, id sai.AttrID, prev sai.Value) {
	var err error
	if prev == nil {
		err = m.db.RemoveAttribute(key, id)
	} else {
		_, err = m.db.UpdateAttribute(key, sai.Attribute{ID: id, Value: prev})
	}
	if err != nil {
		m.fatal(err)
	}
}
