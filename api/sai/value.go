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

package sai

import (
	"net/netip"
	"strconv"
	"strings"
)

// AttrID identifies an attribute within its object type.
type AttrID int32

// Attribute is an (attribute ID, value) pair. For get requests the value
// is either nil or a list placeholder describing the caller's buffer.
type Attribute struct {
	ID    AttrID
	Value Value
}

// AttrValueType enumerates the kinds of attribute values.
type AttrValueType int

const (
	ValueTypeBool AttrValueType = iota
	ValueTypeChardata
	ValueTypeUint8
	ValueTypeInt8
	ValueTypeUint16
	ValueTypeInt16
	ValueTypeUint32
	ValueTypeInt32
	ValueTypeUint64
	ValueTypeInt64
	ValueTypeMac
	ValueTypeIPAddress
	ValueTypeIPPrefix
	ValueTypeObjectID
	ValueTypeObjectList
	ValueTypeUint8List
	ValueTypeInt8List
	ValueTypeUint32List
	ValueTypeInt32List
	ValueTypeVlanList
	ValueTypeUint32Range
	ValueTypeInt32Range
	ValueTypeAclField
	ValueTypeAclAction
)

var valueTypeNames = map[AttrValueType]string{
	ValueTypeBool:        "bool",
	ValueTypeChardata:    "chardata",
	ValueTypeUint8:       "u8",
	ValueTypeInt8:        "s8",
	ValueTypeUint16:      "u16",
	ValueTypeInt16:       "s16",
	ValueTypeUint32:      "u32",
	ValueTypeInt32:       "s32",
	ValueTypeUint64:      "u64",
	ValueTypeInt64:       "s64",
	ValueTypeMac:         "mac",
	ValueTypeIPAddress:   "ipaddr",
	ValueTypeIPPrefix:    "ipprefix",
	ValueTypeObjectID:    "oid",
	ValueTypeObjectList:  "objlist",
	ValueTypeUint8List:   "u8list",
	ValueTypeInt8List:    "s8list",
	ValueTypeUint32List:  "u32list",
	ValueTypeInt32List:   "s32list",
	ValueTypeVlanList:    "vlanlist",
	ValueTypeUint32Range: "u32range",
	ValueTypeInt32Range:  "s32range",
	ValueTypeAclField:    "aclfield",
	ValueTypeAclAction:   "aclaction",
}

func (t AttrValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return "valuetype-" + strconv.Itoa(int(t))
}

// ParseValueType converts the short value type name (e.g. "u32") into AttrValueType.
func ParseValueType(name string) (AttrValueType, bool) {
	for t, n := range valueTypeNames {
		if n == name {
			return t, true
		}
	}
	return 0, false
}

// IsList returns true for value types carrying a count and a buffer.
func (t AttrValueType) IsList() bool {
	switch t {
	case ValueTypeObjectList, ValueTypeUint8List, ValueTypeInt8List,
		ValueTypeUint32List, ValueTypeInt32List, ValueTypeVlanList:
		return true
	}
	return false
}

// Value is an attribute value. Every value type of the closed
// AttrValueType set has exactly one implementation.
type Value interface {
	// ValueType returns the kind of the value.
	ValueType() AttrValueType

	// String returns the plain textual form of the value.
	String() string

	isValue()
}

// ListValue is implemented by the list value kinds.
type ListValue interface {
	Value

	// GetCount returns the declared element count.
	GetCount() uint32

	// BufferLen returns the capacity of the element buffer
	// or -1 if the buffer is not allocated.
	BufferLen() int

	// WithCount returns a copy of the value with the count replaced
	// and the buffer untouched.
	WithCount(count uint32) ListValue
}

type (
	Bool     bool
	Chardata string
	U8       uint8
	S8       int8
	U16      uint16
	S16      int16
	U32      uint32
	S32      int32
	U64      uint64
	S64      int64
)

func (Bool) ValueType() AttrValueType     { return ValueTypeBool }
func (Chardata) ValueType() AttrValueType { return ValueTypeChardata }
func (U8) ValueType() AttrValueType       { return ValueTypeUint8 }
func (S8) ValueType() AttrValueType       { return ValueTypeInt8 }
func (U16) ValueType() AttrValueType      { return ValueTypeUint16 }
func (S16) ValueType() AttrValueType      { return ValueTypeInt16 }
func (U32) ValueType() AttrValueType      { return ValueTypeUint32 }
func (S32) ValueType() AttrValueType      { return ValueTypeInt32 }
func (U64) ValueType() AttrValueType      { return ValueTypeUint64 }
func (S64) ValueType() AttrValueType      { return ValueTypeInt64 }

func (v Bool) String() string     { return strconv.FormatBool(bool(v)) }
func (v Chardata) String() string { return string(v) }
func (v U8) String() string       { return strconv.FormatUint(uint64(v), 10) }
func (v S8) String() string       { return strconv.FormatInt(int64(v), 10) }
func (v U16) String() string      { return strconv.FormatUint(uint64(v), 10) }
func (v S16) String() string      { return strconv.FormatInt(int64(v), 10) }
func (v U32) String() string      { return strconv.FormatUint(uint64(v), 10) }
func (v S32) String() string      { return strconv.FormatInt(int64(v), 10) }
func (v U64) String() string      { return strconv.FormatUint(v.Uint64(), 10) }
func (v S64) String() string      { return strconv.FormatInt(int64(v), 10) }

func (Bool) isValue()     {}
func (Chardata) isValue() {}
func (U8) isValue()       {}
func (S8) isValue()       {}
func (U16) isValue()      {}
func (S16) isValue()      {}
func (U32) isValue()      {}
func (S32) isValue()      {}
func (U64) isValue()      {}
func (S64) isValue()      {}

// Uint64 returns the value as uint64.
func (v U64) Uint64() uint64 { return uint64(v) }

// IPAddress is an IPv4 or IPv6 address value.
type IPAddress struct {
	netip.Addr
}

// NewIPAddress wraps netip.Addr.
func NewIPAddress(addr netip.Addr) IPAddress {
	return IPAddress{Addr: addr}
}

func (IPAddress) ValueType() AttrValueType { return ValueTypeIPAddress }
func (IPAddress) isValue()                 {}

// IPPrefix is an IPv4 or IPv6 prefix value.
type IPPrefix struct {
	netip.Prefix
}

// NewIPPrefix wraps netip.Prefix.
func NewIPPrefix(prefix netip.Prefix) IPPrefix {
	return IPPrefix{Prefix: prefix}
}

func (IPPrefix) ValueType() AttrValueType { return ValueTypeIPPrefix }
func (IPPrefix) isValue()                 {}

// ObjectList is a list of object IDs.
type ObjectList struct {
	Count uint32
	List  []ObjectID
}

// NewObjectList returns a list with count matching the number of elements.
func NewObjectList(oids ...ObjectID) ObjectList {
	return ObjectList{Count: uint32(len(oids)), List: oids}
}

func (ObjectList) ValueType() AttrValueType { return ValueTypeObjectList }
func (ObjectList) isValue()                 {}
func (l ObjectList) GetCount() uint32       { return l.Count }
func (l ObjectList) BufferLen() int         { return bufferLen(l.List == nil, len(l.List)) }
func (l ObjectList) WithCount(count uint32) ListValue {
	l.Count = count
	return l
}
func (l ObjectList) String() string {
	elems := make([]string, 0, len(l.List))
	for _, oid := range l.Elements() {
		elems = append(elems, oid.String())
	}
	return formatList(l.Count, elems)
}

// Elements returns the valid part of the buffer.
func (l ObjectList) Elements() []ObjectID {
	return l.List[:minCount(l.Count, len(l.List))]
}

// U8List is a list of unsigned bytes.
type U8List struct {
	Count uint32
	List  []uint8
}

func (U8List) ValueType() AttrValueType { return ValueTypeUint8List }
func (U8List) isValue()                 {}
func (l U8List) GetCount() uint32       { return l.Count }
func (l U8List) BufferLen() int         { return bufferLen(l.List == nil, len(l.List)) }
func (l U8List) WithCount(count uint32) ListValue {
	l.Count = count
	return l
}
func (l U8List) String() string {
	elems := make([]string, 0, len(l.List))
	for _, v := range l.List[:minCount(l.Count, len(l.List))] {
		elems = append(elems, strconv.FormatUint(uint64(v), 10))
	}
	return formatList(l.Count, elems)
}

// S8List is a list of signed bytes.
type S8List struct {
	Count uint32
	List  []int8
}

func (S8List) ValueType() AttrValueType { return ValueTypeInt8List }
func (S8List) isValue()                 {}
func (l S8List) GetCount() uint32       { return l.Count }
func (l S8List) BufferLen() int         { return bufferLen(l.List == nil, len(l.List)) }
func (l S8List) WithCount(count uint32) ListValue {
	l.Count = count
	return l
}
func (l S8List) String() string {
	elems := make([]string, 0, len(l.List))
	for _, v := range l.List[:minCount(l.Count, len(l.List))] {
		elems = append(elems, strconv.FormatInt(int64(v), 10))
	}
	return formatList(l.Count, elems)
}

// U32List is a list of 32-bit unsigned integers.
type U32List struct {
	Count uint32
	List  []uint32
}

// NewU32List returns a list with count matching the number of elements.
func NewU32List(values ...uint32) U32List {
	return U32List{Count: uint32(len(values)), List: values}
}

func (U32List) ValueType() AttrValueType { return ValueTypeUint32List }
func (U32List) isValue()                 {}
func (l U32List) GetCount() uint32       { return l.Count }
func (l U32List) BufferLen() int         { return bufferLen(l.List == nil, len(l.List)) }
func (l U32List) WithCount(count uint32) ListValue {
	l.Count = count
	return l
}
func (l U32List) String() string {
	return formatList(l.Count, l.elementStrings())
}

// Elements returns the valid part of the buffer.
func (l U32List) Elements() []uint32 {
	return l.List[:minCount(l.Count, len(l.List))]
}

// JoinElements returns elements joined by a comma without the count prefix.
func (l U32List) JoinElements() string {
	return strings.Join(l.elementStrings(), ",")
}

func (l U32List) elementStrings() []string {
	elems := make([]string, 0, len(l.List))
	for _, v := range l.Elements() {
		elems = append(elems, strconv.FormatUint(uint64(v), 10))
	}
	return elems
}

// S32List is a list of 32-bit signed integers (also used for enum lists).
type S32List struct {
	Count uint32
	List  []int32
}

// NewS32List returns a list with count matching the number of elements.
func NewS32List(values ...int32) S32List {
	return S32List{Count: uint32(len(values)), List: values}
}

func (S32List) ValueType() AttrValueType { return ValueTypeInt32List }
func (S32List) isValue()                 {}
func (l S32List) GetCount() uint32       { return l.Count }
func (l S32List) BufferLen() int         { return bufferLen(l.List == nil, len(l.List)) }
func (l S32List) WithCount(count uint32) ListValue {
	l.Count = count
	return l
}
func (l S32List) String() string {
	elems := make([]string, 0, len(l.List))
	for _, v := range l.Elements() {
		elems = append(elems, strconv.FormatInt(int64(v), 10))
	}
	return formatList(l.Count, elems)
}

// Elements returns the valid part of the buffer.
func (l S32List) Elements() []int32 {
	return l.List[:minCount(l.Count, len(l.List))]
}

// VlanList is a list of VLAN IDs.
type VlanList struct {
	Count uint32
	List  []uint16
}

func (VlanList) ValueType() AttrValueType { return ValueTypeVlanList }
func (VlanList) isValue()                 {}
func (l VlanList) GetCount() uint32       { return l.Count }
func (l VlanList) BufferLen() int         { return bufferLen(l.List == nil, len(l.List)) }
func (l VlanList) WithCount(count uint32) ListValue {
	l.Count = count
	return l
}
func (l VlanList) String() string {
	elems := make([]string, 0, len(l.List))
	for _, v := range l.Elements() {
		elems = append(elems, strconv.FormatUint(uint64(v), 10))
	}
	return formatList(l.Count, elems)
}

// Elements returns the valid part of the buffer.
func (l VlanList) Elements() []uint16 {
	return l.List[:minCount(l.Count, len(l.List))]
}

// U32Range is an inclusive range of unsigned integers.
type U32Range struct {
	Min, Max uint32
}

func (U32Range) ValueType() AttrValueType { return ValueTypeUint32Range }
func (U32Range) isValue()                 {}
func (r U32Range) String() string {
	return strconv.FormatUint(uint64(r.Min), 10) + "," + strconv.FormatUint(uint64(r.Max), 10)
}

// S32Range is an inclusive range of signed integers.
type S32Range struct {
	Min, Max int32
}

func (S32Range) ValueType() AttrValueType { return ValueTypeInt32Range }
func (S32Range) isValue()                 {}
func (r S32Range) String() string {
	return strconv.FormatInt(int64(r.Min), 10) + "," + strconv.FormatInt(int64(r.Max), 10)
}

// AclField is an ACL match field: data matched under mask.
// The kinds of Data and Mask are given by the attribute metadata.
type AclField struct {
	Enable bool
	Data   Value
	Mask   Value
}

func (AclField) ValueType() AttrValueType { return ValueTypeAclField }
func (AclField) isValue()                 {}
func (f AclField) String() string {
	if !f.Enable {
		return "disabled"
	}
	s := valueString(f.Data)
	if f.Mask != nil {
		s += "&mask:" + f.Mask.String()
	}
	return s
}

// AclAction is an ACL action with an optional parameter.
type AclAction struct {
	Enable    bool
	Parameter Value
}

func (AclAction) ValueType() AttrValueType { return ValueTypeAclAction }
func (AclAction) isValue()                 {}
func (a AclAction) String() string {
	if !a.Enable {
		return "disabled"
	}
	return valueString(a.Parameter)
}

func valueString(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

func bufferLen(isNil bool, n int) int {
	if isNil {
		return -1
	}
	return n
}

func minCount(count uint32, n int) int {
	if int(count) < n {
		return int(count)
	}
	return n
}

func formatList(count uint32, elems []string) string {
	s := strconv.FormatUint(uint64(count), 10)
	if len(elems) == 0 {
		return s + ":null"
	}
	return s + ":" + strings.Join(elems, ",")
}
