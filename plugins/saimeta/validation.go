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
	"fmt"
	"math"
	"reflect"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// maxChardataLen is the capacity of the SAI char data buffer.
const maxChardataLen = 32

type attrMetadata map[sai.AttrID]*saimetadata.AttrMetadata

func attrError(kind api.ErrorKind, objectType sai.ObjectType, key sai.ObjectKey, md *saimetadata.AttrMetadata,
	format string, args ...interface{}) *api.Error {
	err := api.NewError(kind, format, args...).WithObject(objectType, key)
	if md != nil {
		err.WithAttr(md.Name)
	}
	return err
}

func attrValues(attrs []sai.Attribute) map[sai.AttrID]sai.Value {
	values := make(map[sai.AttrID]sai.Value, len(attrs))
	for _, attr := range attrs {
		values[attr.ID] = attr.Value
	}
	return values
}

// checkObjectType verifies that the object type is known and can be
// instantiated.
func (m *Meta) checkObjectType(objectType sai.ObjectType) (*saimetadata.ObjTypeInfo, error) {
	info := m.Registry.ObjectTypeInfo(objectType)
	if info == nil {
		return nil, api.NewError(api.InvalidArgument, "invalid object type %v", objectType)
	}
	if info.IsPseudo {
		return nil, api.NewError(api.InvalidArgument, "object type %v can't be instantiated", objectType)
	}
	return info, nil
}

// checkSwitch verifies that the switch exists.
func (m *Meta) checkSwitch(objectType sai.ObjectType, key sai.ObjectKey, switchID sai.ObjectID) error {
	if switchID.GetObjectType() != sai.ObjectTypeSwitch || !m.db.Exists(switchID) {
		return api.NewError(api.InvalidArgument, "switch %v does not exist", switchID).
			WithObject(objectType, key)
	}
	return nil
}

// checkAttrList runs the structural and schema membership checks.
// Values may be nil only on get.
func (m *Meta) checkAttrList(objectType sai.ObjectType, key sai.ObjectKey, attrs []sai.Attribute, forGet bool) (attrMetadata, error) {
	seen := make(map[sai.AttrID]bool, len(attrs))
	for _, attr := range attrs {
		if attr.Value == nil && !forGet {
			return nil, api.NewError(api.InvalidArgument, "attribute %d has no value", attr.ID).
				WithObject(objectType, key)
		}
		if seen[attr.ID] {
			return nil, api.NewError(api.InvalidArgument, "attribute %d is listed more than once", attr.ID).
				WithObject(objectType, key)
		}
		seen[attr.ID] = true
	}

	mds := make(attrMetadata, len(attrs))
	for _, attr := range attrs {
		md := m.Registry.LookupAttribute(objectType, attr.ID)
		if md == nil {
			return nil, api.NewError(api.UnknownAttribute, "unknown attribute %d", attr.ID).
				WithObject(objectType, key)
		}
		mds[attr.ID] = md
	}
	return mds, nil
}

// conditionHolds returns true if any of the conditions is satisfied by
// the values. Attributes which are not present are taken with their
// default value.
func (m *Meta) conditionHolds(objectType sai.ObjectType, conds []saimetadata.AttrCondition, values map[sai.AttrID]sai.Value) bool {
	for _, cond := range conds {
		value, has := values[cond.AttrID]
		if !has {
			md := m.Registry.LookupAttribute(objectType, cond.AttrID)
			if md == nil || !md.HasDefault() {
				continue
			}
			value = md.Default()
		}
		for _, expected := range cond.Values {
			if reflect.DeepEqual(value, expected) {
				return true
			}
		}
	}
	return false
}

// validateCreate runs all checks of a create request in order, the first
// failure wins. The key is nil for objects whose ID is not allocated yet.
// The canonical key is returned for object types with KEY attributes.
func (m *Meta) validateCreate(objectType sai.ObjectType, switchID sai.ObjectID, key sai.ObjectKey, attrs []sai.Attribute) (string, error) {
	mds, err := m.checkAttrList(objectType, key, attrs, false)
	if err != nil {
		return "", err
	}
	values := attrValues(attrs)

	for _, attr := range attrs {
		if md := mds[attr.ID]; md.IsReadOnly() {
			return "", attrError(api.ReadOnlyViolation, objectType, key, md, "read-only attribute can't be set on create")
		}
	}
	for _, md := range m.Registry.MandatoryAttributes(objectType) {
		if _, has := values[md.AttrID]; has {
			continue
		}
		if md.IsConditional() && !m.conditionHolds(objectType, md.Conditions, values) {
			continue
		}
		return "", attrError(api.MissingMandatoryAttribute, objectType, key, md, "mandatory attribute is missing")
	}
	for _, attr := range attrs {
		md := mds[attr.ID]
		if md.IsConditional() && !m.conditionHolds(objectType, md.Conditions, values) {
			return "", attrError(api.InvalidArgument, objectType, key, md, "conditional attribute supplied while its condition does not hold")
		}
		if md.IsValidOnly() && !m.conditionHolds(objectType, md.ValidOnly, values) {
			return "", attrError(api.InvalidArgument, objectType, key, md, "attribute is not valid in this configuration")
		}
	}

	for _, attr := range attrs {
		if err := m.checkValue(objectType, key, mds[attr.ID], attr.Value); err != nil {
			return "", err
		}
	}
	for _, attr := range attrs {
		if err := m.checkReferences(objectType, key, switchID, mds[attr.ID], attr.Value); err != nil {
			return "", err
		}
	}

	if !m.keys.HasKeyAttributes(objectType) {
		return "", nil
	}
	canonical := m.keys.ConstructKey(switchID, objectType, attrs)
	if owner, inUse := m.keys.Lookup(canonical); inUse {
		return "", api.NewError(api.DuplicateKey, "key %s is already used by %v", canonical, owner).
			WithObject(objectType, key)
	}
	return canonical, nil
}

// validateSet checks a single attribute change of an existing object.
func (m *Meta) validateSet(key sai.ObjectKey, attr sai.Attribute) error {
	objectType := key.GetObjectType()
	rec, found := m.db.Lookup(key)
	if !found {
		return api.NewError(api.NotFound, "object does not exist").WithObject(objectType, key)
	}
	mds, err := m.checkAttrList(objectType, key, []sai.Attribute{attr}, false)
	if err != nil {
		return err
	}
	md := mds[attr.ID]
	switch {
	case md.IsReadOnly():
		return attrError(api.ReadOnlyViolation, objectType, key, md, "read-only attribute can't be set")
	case md.IsCreateOnly() || !md.IsCreateAndSet():
		return attrError(api.ImmutableAttributeViolation, objectType, key, md, "attribute can be set only on create")
	}
	if md.IsValidOnly() && !m.conditionHolds(objectType, md.ValidOnly, rec.Attrs) {
		return attrError(api.InvalidArgument, objectType, key, md, "attribute is not valid in this configuration")
	}
	if err := m.checkValue(objectType, key, md, attr.Value); err != nil {
		return err
	}
	return m.checkReferences(objectType, key, key.GetSwitchID(), md, attr.Value)
}

// checkEntryKey validates members of a structured key.
func (m *Meta) checkEntryKey(info *saimetadata.ObjTypeInfo, key sai.ObjectKey) error {
	objectType := info.ObjectType
	switchID := key.GetSwitchID()
	if err := m.checkSwitch(objectType, key, switchID); err != nil {
		return err
	}
	for _, member := range info.StructMembers {
		if member.GetObjectID == nil || isSwitchMember(member) {
			continue
		}
		oid := member.GetObjectID(key)
		if oid.IsNull() || !m.db.Exists(oid) {
			return api.NewError(api.DanglingReference, "%s %v does not exist", member.Name, oid).
				WithObject(objectType, key).WithAttr(member.Name)
		}
		if !typeAllowed(member.AllowedObjectTypes, oid.GetObjectType()) {
			return api.NewError(api.WrongReferencedType, "%s can't reference %v", member.Name, oid.GetObjectType()).
				WithObject(objectType, key).WithAttr(member.Name)
		}
		if oid.GetSwitchID() != switchID {
			return api.NewError(api.InvalidArgument, "%s %v belongs to a different switch", member.Name, oid).
				WithObject(objectType, key).WithAttr(member.Name)
		}
	}

	switch entry := key.(type) {
	case sai.RouteEntry:
		if !entry.Destination.IsValid() || entry.Destination.Masked() != entry.Destination {
			return api.NewError(api.InvalidArgument, "invalid destination prefix %v", entry.Destination).
				WithObject(objectType, key)
		}
	case sai.NeighborEntry:
		if !entry.IPAddress.IsValid() {
			return api.NewError(api.InvalidArgument, "invalid neighbor IP address").
				WithObject(objectType, key)
		}
	}
	return nil
}

func isSwitchMember(member *saimetadata.StructMember) bool {
	return len(member.AllowedObjectTypes) == 1 && member.AllowedObjectTypes[0] == sai.ObjectTypeSwitch
}

func typeAllowed(allowed []sai.ObjectType, objectType sai.ObjectType) bool {
	for _, t := range allowed {
		if t == objectType {
			return true
		}
	}
	return false
}

// listShapeProblem describes a mismatch between the list count and its
// buffer, or returns an empty string. Zero count is accepted whatever
// the buffer is.
func listShapeProblem(list sai.ListValue) string {
	count := list.GetCount()
	if count == 0 {
		return ""
	}
	bufLen := list.BufferLen()
	if bufLen < 0 {
		return fmt.Sprintf("list count is %d but the buffer is null", count)
	}
	if int(count) > bufLen {
		return fmt.Sprintf("list count %d exceeds buffer length %d", count, bufLen)
	}
	return ""
}

// checkValue validates the value kind, list shape, enum membership
// and declared range.
func (m *Meta) checkValue(objectType sai.ObjectType, key sai.ObjectKey, md *saimetadata.AttrMetadata, value sai.Value) error {
	fail := func(kind api.ErrorKind, format string, args ...interface{}) error {
		return attrError(kind, objectType, key, md, format, args...)
	}

	if value.ValueType() != md.ValueType {
		return fail(api.InvalidAttributeValue, "expected %v value, got %v", md.ValueType, value.ValueType())
	}
	if list, isList := value.(sai.ListValue); isList {
		if problem := listShapeProblem(list); problem != "" {
			return fail(api.InvalidListShape, "%s", problem)
		}
		if list.GetCount() == 0 && !md.AllowEmptyList {
			return fail(api.InvalidListShape, "empty list is not allowed")
		}
	}

	switch v := value.(type) {
	case sai.S32:
		if md.IsEnum() && !md.Enum.Contains(int32(v)) {
			return fail(api.InvalidEnumValue, "value %d is not in %s", int32(v), md.Enum.Name)
		}
		return m.checkRange(md, int64(v), fail)
	case sai.U8:
		return m.checkRange(md, int64(v), fail)
	case sai.S8:
		return m.checkRange(md, int64(v), fail)
	case sai.U16:
		return m.checkRange(md, int64(v), fail)
	case sai.S16:
		return m.checkRange(md, int64(v), fail)
	case sai.U32:
		return m.checkRange(md, int64(v), fail)
	case sai.S64:
		return m.checkRange(md, int64(v), fail)
	case sai.U64:
		if md.Range != nil && v.Uint64() > math.MaxInt64 {
			return fail(api.InvalidAttributeValue, "value %d is out of range", v.Uint64())
		}
		return m.checkRange(md, int64(v.Uint64()), fail)
	case sai.Chardata:
		if len(v) > maxChardataLen {
			return fail(api.InvalidAttributeValue, "string is longer than %d characters", maxChardataLen)
		}
	case sai.IPAddress:
		if !v.IsValid() {
			return fail(api.InvalidAttributeValue, "invalid IP address")
		}
	case sai.IPPrefix:
		if !v.IsValid() || v.Masked() != v.Prefix {
			return fail(api.InvalidAttributeValue, "invalid IP prefix %v", v.Prefix)
		}
	case sai.S32List:
		if md.IsEnumList() {
			for _, elem := range v.Elements() {
				if !md.Enum.Contains(elem) {
					return fail(api.InvalidEnumValue, "list value %d is not in %s", elem, md.Enum.Name)
				}
			}
		}
	case sai.ObjectList:
		seen := make(map[sai.ObjectID]bool, v.Count)
		for _, oid := range v.Elements() {
			if seen[oid] {
				return fail(api.InvalidAttributeValue, "object %v is listed more than once", oid)
			}
			seen[oid] = true
		}
	case sai.VlanList:
		for _, vlan := range v.Elements() {
			if vlan < 1 || vlan > 4094 {
				return fail(api.InvalidAttributeValue, "invalid VLAN ID %d", vlan)
			}
		}
	case sai.U32Range:
		if v.Min > v.Max {
			return fail(api.InvalidAttributeValue, "range minimum %d exceeds maximum %d", v.Min, v.Max)
		}
	case sai.S32Range:
		if v.Min > v.Max {
			return fail(api.InvalidAttributeValue, "range minimum %d exceeds maximum %d", v.Min, v.Max)
		}
	case sai.AclField:
		if !v.Enable || md.AclDataType == nil {
			return nil
		}
		if v.Data == nil || v.Data.ValueType() != *md.AclDataType {
			return fail(api.InvalidAttributeValue, "ACL field data must be %v", *md.AclDataType)
		}
		if v.Mask != nil && v.Mask.ValueType() != v.Data.ValueType() {
			return fail(api.InvalidAttributeValue, "ACL field mask must be %v", *md.AclDataType)
		}
		if data, isS32 := v.Data.(sai.S32); isS32 && md.Enum != nil && !md.Enum.Contains(int32(data)) {
			return fail(api.InvalidEnumValue, "value %d is not in %s", int32(data), md.Enum.Name)
		}
	case sai.AclAction:
		if !v.Enable || md.AclDataType == nil {
			return nil
		}
		if v.Parameter == nil || v.Parameter.ValueType() != *md.AclDataType {
			return fail(api.InvalidAttributeValue, "ACL action parameter must be %v", *md.AclDataType)
		}
		if param, isS32 := v.Parameter.(sai.S32); isS32 && md.Enum != nil && !md.Enum.Contains(int32(param)) {
			return fail(api.InvalidEnumValue, "value %d is not in %s", int32(param), md.Enum.Name)
		}
	}
	return nil
}

func (m *Meta) checkRange(md *saimetadata.AttrMetadata, value int64,
	fail func(api.ErrorKind, string, ...interface{}) error) error {
	if md.Range != nil && !md.Range.Contains(value) {
		return fail(api.InvalidAttributeValue, "value %d is out of range <%d, %d>", value, md.Range.Min, md.Range.Max)
	}
	return nil
}

// checkReferences resolves all object IDs carried by the value.
// Null is accepted only for single object IDs flagged as nullable.
func (m *Meta) checkReferences(objectType sai.ObjectType, key sai.ObjectKey, switchID sai.ObjectID,
	md *saimetadata.AttrMetadata, value sai.Value) error {
	if !md.IsObjectReference() {
		return nil
	}

	var oids []sai.ObjectID
	nullable := md.AllowNullObjectID
	switch v := value.(type) {
	case sai.ObjectID:
		oids = []sai.ObjectID{v}
	case sai.ObjectList:
		oids = v.Elements()
		nullable = false
	case sai.AclField:
		if !v.Enable || md.AclDataType == nil {
			return nil
		}
		oids = aclObjectIDs(v.Data)
	case sai.AclAction:
		if !v.Enable {
			return nil
		}
		oids = aclObjectIDs(v.Parameter)
	}

	for _, oid := range oids {
		if oid.IsNull() {
			if nullable {
				continue
			}
			return attrError(api.DanglingReference, objectType, key, md, "null object ID is not allowed")
		}
		if !m.db.Exists(oid) {
			return attrError(api.DanglingReference, objectType, key, md, "referenced object %v does not exist", oid)
		}
		if !md.AllowsObjectType(oid.GetObjectType()) {
			return attrError(api.WrongReferencedType, objectType, key, md, "object type %v can't be referenced",
				oid.GetObjectType())
		}
		if !switchID.IsNull() && oid.GetSwitchID() != switchID {
			return attrError(api.InvalidArgument, objectType, key, md, "referenced object %v belongs to a different switch", oid)
		}
	}
	return nil
}

func aclObjectIDs(value sai.Value) []sai.ObjectID {
	switch v := value.(type) {
	case sai.ObjectID:
		return []sai.ObjectID{v}
	case sai.ObjectList:
		return v.Elements()
	}
	return nil
}
