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
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/objdb"
)

// Get fills values of the requested attributes. A list value supplied
// by the caller is a placeholder whose count is the capacity of the
// caller's buffer. When the capacity is insufficient the placeholder is
// returned with the required count and the call fails with BufferTooSmall
// after all other attributes were filled.
func (m *Meta) Get(key sai.ObjectKey, attrs []sai.Attribute) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpGet, objectTypeOf(key), nil)
	defer func() { done(key, err) }()

	if key == nil {
		return api.NewError(api.InvalidArgument, "object key is nil")
	}
	objectType := key.GetObjectType()
	if len(attrs) == 0 {
		return api.NewError(api.InvalidArgument, "no attributes requested").WithObject(objectType, key)
	}
	rec, found := m.db.Lookup(key)
	if !found {
		return api.NewError(api.NotFound, "object does not exist").WithObject(objectType, key)
	}
	mds, err := m.checkAttrList(objectType, key, attrs, true)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		if err = m.checkPlaceholder(objectType, key, mds[attr.ID], attr.Value); err != nil {
			return err
		}
	}

	values := make([]sai.Value, len(attrs))
	var fetch []int
	for i, attr := range attrs {
		md := mds[attr.ID]
		switch {
		case md.Computed != nil:
			values[i] = m.computeList(key, md.Computed)
		case md.IsReadOnly() || md.IsVolatile:
			fetch = append(fetch, i)
		default:
			if value, has := rec.Get(attr.ID); has {
				values[i] = sai.CloneValue(value)
			} else if md.HasDefault() {
				values[i] = md.Default()
			} else {
				fetch = append(fetch, i)
			}
		}
	}
	if len(fetch) > 0 {
		if err = m.fetchValues(key, attrs, mds, fetch, values); err != nil {
			return err
		}
	}

	var overflow error
	for i := range attrs {
		placeholder, isList := attrs[i].Value.(sai.ListValue)
		if isList {
			required := values[i].(sai.ListValue).GetCount()
			if required > placeholder.GetCount() {
				attrs[i].Value = placeholder.WithCount(required)
				if overflow == nil {
					overflow = attrError(api.BufferTooSmall, objectType, key, mds[attrs[i].ID],
						"list has %d elements, buffer holds %d", required, placeholder.GetCount())
				}
				continue
			}
		}
		attrs[i].Value = values[i]
	}
	return overflow
}

// checkPlaceholder validates a value supplied to get, which may only
// describe the caller's list buffer.
func (m *Meta) checkPlaceholder(objectType sai.ObjectType, key sai.ObjectKey, md *saimetadata.AttrMetadata, value sai.Value) error {
	if value == nil {
		return nil
	}
	if value.ValueType() != md.ValueType {
		return attrError(api.InvalidAttributeValue, objectType, key, md,
			"expected %v placeholder, got %v", md.ValueType, value.ValueType())
	}
	if list, isList := value.(sai.ListValue); isList {
		if problem := listShapeProblem(list); problem != "" {
			return attrError(api.InvalidListShape, objectType, key, md, "%s", problem)
		}
	}
	return nil
}

// computeList collects members whose attribute references the owner.
func (m *Meta) computeList(owner sai.ObjectKey, computed *saimetadata.ComputedList) sai.Value {
	var members []sai.ObjectID
	m.db.Iterate(computed.MemberType, func(rec *objdb.Record) bool {
		value, has := rec.Get(computed.MemberAttr)
		if !has {
			return true
		}
		if ref, isOID := value.(sai.ObjectID); isOID && sai.ObjectKey(ref) == owner {
			if member, isOID := rec.Key.(sai.ObjectID); isOID {
				members = append(members, member)
			}
		}
		return true
	})
	return sai.NewObjectList(members...)
}

// fetchValues reads the attributes selected by fetch from the backend
// with a single call, validates returned values and learns unknown
// objects they reference.
func (m *Meta) fetchValues(key sai.ObjectKey, attrs []sai.Attribute, mds attrMetadata, fetch []int, values []sai.Value) error {
	objectType := key.GetObjectType()
	query := make([]sai.Attribute, len(fetch))
	for j, i := range fetch {
		query[j].ID = attrs[i].ID
	}
	if err := m.Backend.Get(key, query); err != nil {
		return m.backendError(api.OpGet, key, err)
	}

	for j, i := range fetch {
		md := mds[attrs[i].ID]
		value := query[j].Value
		if value == nil {
			return attrError(api.BackendFailure, objectType, key, md, "backend returned no value")
		}
		if err := m.checkValue(objectType, key, md, value); err != nil {
			return attrError(api.BackendFailure, objectType, key, md, "backend returned invalid value").
				WithCause(err)
		}
		stored := m.resolveReported(md.AllowedObjectTypes, value)
		if stored && m.config.ReconcileGet && !md.IsReadOnly() && md.Computed == nil {
			m.applySet(key, sai.Attribute{ID: md.AttrID, Value: value})
		}
		values[i] = value
	}
	return nil
}
