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

package saimetadata

import (
	"strings"

	"github.com/ligato/sai-agent/api/sai"
)

// AttrFlags describe when an attribute may be supplied.
type AttrFlags uint32

const (
	// MandatoryOnCreate attribute must be supplied on create
	// (if its conditions hold).
	MandatoryOnCreate AttrFlags = 1 << iota

	// CreateOnly attribute may be supplied only on create.
	CreateOnly

	// CreateAndSet attribute may be supplied on create and later changed.
	CreateAndSet

	// ReadOnly attribute is only ever reported by the switch.
	ReadOnly

	// Key attribute is part of the object identity (implies CreateOnly).
	Key
)

var attrFlagNames = []struct {
	flag AttrFlags
	name string
}{
	{MandatoryOnCreate, "MANDATORY_ON_CREATE"},
	{CreateOnly, "CREATE_ONLY"},
	{CreateAndSet, "CREATE_AND_SET"},
	{ReadOnly, "READ_ONLY"},
	{Key, "KEY"},
}

// Has returns true if all the given flags are set.
func (f AttrFlags) Has(flags AttrFlags) bool {
	return f&flags == flags
}

func (f AttrFlags) String() string {
	var names []string
	for _, fn := range attrFlagNames {
		if f.Has(fn.flag) {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// ParseAttrFlags parses flags joined with "|".
func ParseAttrFlags(s string) (AttrFlags, bool) {
	var flags AttrFlags
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		found := false
		for _, fn := range attrFlagNames {
			if fn.name == part {
				flags |= fn.flag
				found = true
			}
		}
		if !found {
			return 0, false
		}
	}
	return flags, true
}

// DefaultValueType tells where a default value of an optional attribute
// comes from.
type DefaultValueType int

const (
	// DefaultNone means there is no default known to the metadata.
	DefaultNone DefaultValueType = iota

	// DefaultConst means DefaultValue holds the default.
	DefaultConst

	// DefaultEmptyList means the default is a list with no elements.
	DefaultEmptyList

	// DefaultSwitchInternal means the switch decides the default.
	DefaultSwitchInternal
)

// EnumMetadata describes an enumeration.
type EnumMetadata struct {
	Name       string
	Values     []int32
	ValueNames []string
	IsFlags    bool
}

// Contains returns true if the value is a member of the enumeration.
func (e *EnumMetadata) Contains(value int32) bool {
	for _, v := range e.Values {
		if v == value {
			return true
		}
	}
	return false
}

// NameOf returns the name of the enum value or an empty string.
func (e *EnumMetadata) NameOf(value int32) string {
	for i, v := range e.Values {
		if v == value {
			return e.ValueNames[i]
		}
	}
	return ""
}

// ValueOf returns the enum value with the given name.
func (e *EnumMetadata) ValueOf(name string) (int32, bool) {
	for i, n := range e.ValueNames {
		if n == name {
			return e.Values[i], true
		}
	}
	return 0, false
}

// AttrCondition is satisfied when the attribute AttrID has one of Values.
type AttrCondition struct {
	AttrID sai.AttrID
	Values []sai.Value
}

// ComputedList describes a read-only object list derived from the objects
// of MemberType whose MemberAttr references the owner.
type ComputedList struct {
	MemberType sai.ObjectType
	MemberAttr sai.AttrID
}

// ValueRange is an inclusive range for integer attributes.
type ValueRange struct {
	Min int64
	Max int64
}

// Contains returns true if the value lies inside the range.
func (r *ValueRange) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// AttrMetadata describes one attribute of an object type.
type AttrMetadata struct {
	ObjectType sai.ObjectType
	AttrID     sai.AttrID
	Name       string
	ValueType  sai.AttrValueType
	Flags      AttrFlags

	// AllowedObjectTypes lists types an object reference may point to.
	AllowedObjectTypes []sai.ObjectType
	AllowNullObjectID  bool
	AllowEmptyList     bool

	// Enum is set for enum attributes, enum lists and enum ACL data.
	Enum *EnumMetadata

	// AclDataType is the kind of data carried by ACL field or action.
	// Nil for actions without a parameter.
	AclDataType *sai.AttrValueType

	Range *ValueRange

	DefaultValueType DefaultValueType
	DefaultValue     sai.Value

	// Conditions must hold (any of them) for the attribute to be mandatory.
	Conditions []AttrCondition
	// ValidOnly must hold (any of them) for the attribute to be supplied.
	ValidOnly []AttrCondition

	// IsVolatile attribute value can change without any set operation.
	IsVolatile bool

	Computed *ComputedList
}

// IsMandatoryOnCreate returns true if the attribute must be supplied on create.
func (md *AttrMetadata) IsMandatoryOnCreate() bool { return md.Flags.Has(MandatoryOnCreate) }

// IsCreateOnly returns true for attributes which can't be changed after create.
func (md *AttrMetadata) IsCreateOnly() bool { return md.Flags.Has(CreateOnly) || md.IsKey() }

// IsCreateAndSet returns true for attributes which can be set.
func (md *AttrMetadata) IsCreateAndSet() bool { return md.Flags.Has(CreateAndSet) }

// IsReadOnly returns true for attributes reported only by the switch.
func (md *AttrMetadata) IsReadOnly() bool { return md.Flags.Has(ReadOnly) }

// IsKey returns true for attributes forming the object identity.
func (md *AttrMetadata) IsKey() bool { return md.Flags.Has(Key) }

// IsConditional returns true if the attribute is mandatory only under conditions.
func (md *AttrMetadata) IsConditional() bool { return len(md.Conditions) > 0 }

// IsValidOnly returns true if the attribute may be supplied only under conditions.
func (md *AttrMetadata) IsValidOnly() bool { return len(md.ValidOnly) > 0 }

// IsEnum returns true for scalar enum attributes.
func (md *AttrMetadata) IsEnum() bool {
	return md.Enum != nil && md.ValueType == sai.ValueTypeInt32
}

// IsEnumList returns true for lists of enum values.
func (md *AttrMetadata) IsEnumList() bool {
	return md.Enum != nil && md.ValueType == sai.ValueTypeInt32List
}

// IsObjectReference returns true if the attribute value can carry object IDs.
func (md *AttrMetadata) IsObjectReference() bool {
	switch md.ValueType {
	case sai.ValueTypeObjectID, sai.ValueTypeObjectList:
		return true
	case sai.ValueTypeAclField, sai.ValueTypeAclAction:
		return md.AclDataType != nil &&
			(*md.AclDataType == sai.ValueTypeObjectID || *md.AclDataType == sai.ValueTypeObjectList)
	}
	return false
}

// AllowsObjectType returns true if the reference may point to the type.
func (md *AttrMetadata) AllowsObjectType(t sai.ObjectType) bool {
	for _, allowed := range md.AllowedObjectTypes {
		if allowed == t {
			return true
		}
	}
	return false
}

// HasDefault returns true if the metadata itself knows the default value.
func (md *AttrMetadata) HasDefault() bool {
	return md.DefaultValueType == DefaultConst || md.DefaultValueType == DefaultEmptyList
}

// Default returns a fresh copy of the default value or nil.
func (md *AttrMetadata) Default() sai.Value {
	switch md.DefaultValueType {
	case DefaultConst:
		return sai.CloneValue(md.DefaultValue)
	case DefaultEmptyList:
		return sai.EmptyValue(md.ValueType)
	}
	return nil
}

// StructMember describes a member of a structured entry key.
type StructMember struct {
	Name      string
	ValueType sai.AttrValueType
	// AllowedObjectTypes is set for object ID members.
	AllowedObjectTypes []sai.ObjectType
	// GetObjectID extracts object ID member from the key.
	GetObjectID func(key sai.ObjectKey) sai.ObjectID
}

// ObjTypeInfo describes one object type.
type ObjTypeInfo struct {
	ObjectType    sai.ObjectType
	IsNonObjectID bool
	// IsPseudo types (e.g. FDB_FLUSH) describe operation arguments
	// and can't be instantiated.
	IsPseudo      bool
	StructMembers []*StructMember
	Attrs         []*AttrMetadata
	StatEnum      *EnumMetadata
}

// Name returns the SAI name of the object type.
func (info *ObjTypeInfo) Name() string {
	return info.ObjectType.String()
}
