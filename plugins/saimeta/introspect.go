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
)

// ObjectTypeGetAvailability returns how many more objects of the type
// can be created on the switch. The attributes narrow the query
// (e.g. ACL stage), they are validated like create attributes.
func (m *Meta) ObjectTypeGetAvailability(switchID sai.ObjectID, objectType sai.ObjectType, attrs []sai.Attribute) (count uint64, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return 0, err
	}
	done := m.trackOperation(api.OpQueryAvailability, objectType, attrs)
	defer func() { done(keyOrNil(switchID), err) }()

	if err = m.checkSwitch(objectType, nil, switchID); err != nil {
		return 0, err
	}
	if _, err = m.checkObjectType(objectType); err != nil {
		return 0, err
	}
	mds, err := m.checkAttrList(objectType, nil, attrs, false)
	if err != nil {
		return 0, err
	}
	for _, attr := range attrs {
		if err = m.checkValue(objectType, nil, mds[attr.ID], attr.Value); err != nil {
			return 0, err
		}
		if err = m.checkReferences(objectType, nil, switchID, mds[attr.ID], attr.Value); err != nil {
			return 0, err
		}
	}

	count, berr := m.Backend.ObjectTypeGetAvailability(switchID, objectType, sai.CloneAttributes(attrs))
	if berr != nil {
		return 0, m.backendError(api.OpQueryAvailability, switchID, berr)
	}
	return count, nil
}

// QueryAttributeCapability reports which operations the switch implements
// for the attribute.
func (m *Meta) QueryAttributeCapability(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID) (capability api.AttrCapability, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return capability, err
	}
	done := m.trackOperation(api.OpQueryCapability, objectType, nil)
	defer func() { done(keyOrNil(switchID), err) }()

	if _, err = m.checkCapabilityQuery(switchID, objectType, attrID); err != nil {
		return capability, err
	}
	capability, berr := m.Backend.QueryAttributeCapability(switchID, objectType, attrID)
	if berr != nil {
		return api.AttrCapability{}, m.backendError(api.OpQueryCapability, switchID, berr)
	}
	return capability, nil
}

// QueryAttributeEnumValuesCapability fills list with the enum values
// the switch supports for the attribute. The list count is the capacity
// of the caller's buffer, on return it is the number of values. If the
// capacity is insufficient, the call fails with BufferTooSmall and only
// the count is updated.
func (m *Meta) QueryAttributeEnumValuesCapability(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID,
	list *sai.S32List) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpQueryEnumValues, objectType, nil)
	defer func() { done(keyOrNil(switchID), err) }()

	if list == nil {
		return api.NewError(api.InvalidArgument, "enum values list is nil").WithObject(objectType, nil)
	}
	md, err := m.checkCapabilityQuery(switchID, objectType, attrID)
	if err != nil {
		return err
	}
	if md.Enum == nil {
		return attrError(api.InvalidArgument, objectType, nil, md, "attribute is not an enum")
	}
	if problem := listShapeProblem(*list); problem != "" {
		return attrError(api.InvalidListShape, objectType, nil, md, "%s", problem)
	}

	values, berr := m.Backend.QueryAttributeEnumValuesCapability(switchID, objectType, attrID)
	if berr != nil {
		return m.backendError(api.OpQueryEnumValues, switchID, berr)
	}
	for _, v := range values {
		if !md.Enum.Contains(v) {
			return attrError(api.BackendFailure, objectType, nil, md, "backend reported value %d outside of %s", v, md.Enum.Name)
		}
	}
	if capacity := list.Count; uint32(len(values)) > capacity {
		list.Count = uint32(len(values))
		return attrError(api.BufferTooSmall, objectType, nil, md, "%d enum values, buffer holds %d", len(values), capacity)
	}
	list.List = append(list.List[:0], values...)
	list.Count = uint32(len(values))
	return nil
}

func (m *Meta) checkCapabilityQuery(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID) (*saimetadata.AttrMetadata, error) {
	if err := m.checkSwitch(objectType, nil, switchID); err != nil {
		return nil, err
	}
	if m.Registry.ObjectTypeInfo(objectType) == nil {
		return nil, api.NewError(api.InvalidArgument, "invalid object type %v", objectType)
	}
	md := m.Registry.LookupAttribute(objectType, attrID)
	if md == nil {
		return nil, api.NewError(api.UnknownAttribute, "unknown attribute %d", attrID).WithObject(objectType, nil)
	}
	return md, nil
}
