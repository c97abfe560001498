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

// Remove removes the object. Objects still referenced by others can't be
// removed, with the exception of the switch which takes all its objects
// with it.
func (m *Meta) Remove(key sai.ObjectKey) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpRemove, objectTypeOf(key), nil)
	defer func() { done(key, err) }()

	if err = m.validateRemove(key); err != nil {
		return err
	}
	if berr := m.Backend.Remove(key); berr != nil {
		return m.backendError(api.OpRemove, key, berr)
	}
	m.dropObject(key)
	return nil
}

func (m *Meta) validateRemove(key sai.ObjectKey) error {
	if key == nil {
		return api.NewError(api.InvalidArgument, "object key is nil")
	}
	objectType := key.GetObjectType()
	if !m.db.Exists(key) {
		return api.NewError(api.NotFound, "object does not exist").WithObject(objectType, key)
	}
	oid, isOID := key.(sai.ObjectID)
	if isOID && objectType != sai.ObjectTypeSwitch && !m.db.Refs().CanRemove(oid) {
		return api.NewError(api.StillReferenced, "object is referenced %d times", m.db.RefCount(oid)).
			WithObject(objectType, key)
	}
	return nil
}
