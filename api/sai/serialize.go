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
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// CloneValue returns a deep copy of the value. Lists get a private buffer
// holding only the valid elements.
func CloneValue(v Value) Value {
	switch val := v.(type) {
	case ObjectList:
		return ObjectList{Count: val.Count, List: append([]ObjectID(nil), val.Elements()...)}
	case U8List:
		return U8List{Count: val.Count, List: append([]uint8(nil), val.List[:minCount(val.Count, len(val.List))]...)}
	case S8List:
		return S8List{Count: val.Count, List: append([]int8(nil), val.List[:minCount(val.Count, len(val.List))]...)}
	case U32List:
		return U32List{Count: val.Count, List: append([]uint32(nil), val.Elements()...)}
	case S32List:
		return S32List{Count: val.Count, List: append([]int32(nil), val.Elements()...)}
	case VlanList:
		return VlanList{Count: val.Count, List: append([]uint16(nil), val.Elements()...)}
	case AclField:
		if val.Data != nil {
			val.Data = CloneValue(val.Data)
		}
		if val.Mask != nil {
			val.Mask = CloneValue(val.Mask)
		}
		return val
	case AclAction:
		if val.Parameter != nil {
			val.Parameter = CloneValue(val.Parameter)
		}
		return val
	}
	return v
}

// CloneAttributes returns a deep copy of the attribute list.
func CloneAttributes(attrs []Attribute) []Attribute {
	if attrs == nil {
		return nil
	}
	clone := make([]Attribute, len(attrs))
	for i, attr := range attrs {
		clone[i].ID = attr.ID
		if attr.Value != nil {
			clone[i].Value = CloneValue(attr.Value)
		}
	}
	return clone
}

// EmptyValue returns the zero value of the given type. Lists are returned
// with zero count and an allocated empty buffer.
func EmptyValue(t AttrValueType) Value {
	switch t {
	case ValueTypeBool:
		return Bool(false)
	case ValueTypeChardata:
		return Chardata("")
	case ValueTypeUint8:
		return U8(0)
	case ValueTypeInt8:
		return S8(0)
	case ValueTypeUint16:
		return U16(0)
	case ValueTypeInt16:
		return S16(0)
	case ValueTypeUint32:
		return U32(0)
	case ValueTypeInt32:
		return S32(0)
	case ValueTypeUint64:
		return U64(0)
	case ValueTypeInt64:
		return S64(0)
	case ValueTypeMac:
		return MacAddress{}
	case ValueTypeIPAddress:
		return IPAddress{Addr: netip.IPv4Unspecified()}
	case ValueTypeIPPrefix:
		return IPPrefix{Prefix: netip.PrefixFrom(netip.IPv4Unspecified(), 0)}
	case ValueTypeObjectID:
		return NullObjectID
	case ValueTypeObjectList:
		return ObjectList{List: []ObjectID{}}
	case ValueTypeUint8List:
		return U8List{List: []uint8{}}
	case ValueTypeInt8List:
		return S8List{List: []int8{}}
	case ValueTypeUint32List:
		return U32List{List: []uint32{}}
	case ValueTypeInt32List:
		return S32List{List: []int32{}}
	case ValueTypeVlanList:
		return VlanList{List: []uint16{}}
	case ValueTypeUint32Range:
		return U32Range{}
	case ValueTypeInt32Range:
		return S32Range{}
	case ValueTypeAclField:
		return AclField{}
	case ValueTypeAclAction:
		return AclAction{}
	}
	return nil
}

// ParseValue parses the plain textual form (as produced by Value.String)
// of a value of the given type. ACL fields and actions carry nested values
// whose type is not known here, use ParseAclField and ParseAclAction instead.
func ParseValue(t AttrValueType, s string) (Value, error) {
	switch t {
	case ValueTypeBool:
		v, err := strconv.ParseBool(s)
		return Bool(v), err
	case ValueTypeChardata:
		return Chardata(s), nil
	case ValueTypeUint8:
		v, err := strconv.ParseUint(s, 10, 8)
		return U8(v), err
	case ValueTypeInt8:
		v, err := strconv.ParseInt(s, 10, 8)
		return S8(v), err
	case ValueTypeUint16:
		v, err := strconv.ParseUint(s, 10, 16)
		return U16(v), err
	case ValueTypeInt16:
		v, err := strconv.ParseInt(s, 10, 16)
		return S16(v), err
	case ValueTypeUint32:
		v, err := strconv.ParseUint(s, 10, 32)
		return U32(v), err
	case ValueTypeInt32:
		v, err := strconv.ParseInt(s, 10, 32)
		return S32(v), err
	case ValueTypeUint64:
		v, err := strconv.ParseUint(s, 10, 64)
		return U64(v), err
	case ValueTypeInt64:
		v, err := strconv.ParseInt(s, 10, 64)
		return S64(v), err
	case ValueTypeMac:
		return ParseMacAddress(s)
	case ValueTypeIPAddress:
		addr, err := netip.ParseAddr(s)
		return IPAddress{Addr: addr}, err
	case ValueTypeIPPrefix:
		prefix, err := netip.ParsePrefix(s)
		return IPPrefix{Prefix: prefix}, err
	case ValueTypeObjectID:
		return ParseObjectID(s)
	case ValueTypeObjectList:
		count, elems, err := splitList(s)
		if err != nil {
			return nil, err
		}
		list := ObjectList{Count: count, List: make([]ObjectID, 0, len(elems))}
		for _, elem := range elems {
			oid, err := ParseObjectID(elem)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, oid)
		}
		return list, nil
	case ValueTypeUint8List:
		count, elems, err := splitList(s)
		if err != nil {
			return nil, err
		}
		list := U8List{Count: count, List: make([]uint8, 0, len(elems))}
		for _, elem := range elems {
			v, err := strconv.ParseUint(elem, 10, 8)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, uint8(v))
		}
		return list, nil
	case ValueTypeInt8List:
		count, elems, err := splitList(s)
		if err != nil {
			return nil, err
		}
		list := S8List{Count: count, List: make([]int8, 0, len(elems))}
		for _, elem := range elems {
			v, err := strconv.ParseInt(elem, 10, 8)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, int8(v))
		}
		return list, nil
	case ValueTypeUint32List:
		count, elems, err := splitList(s)
		if err != nil {
			return nil, err
		}
		list := U32List{Count: count, List: make([]uint32, 0, len(elems))}
		for _, elem := range elems {
			v, err := strconv.ParseUint(elem, 10, 32)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, uint32(v))
		}
		return list, nil
	case ValueTypeInt32List:
		count, elems, err := splitList(s)
		if err != nil {
			return nil, err
		}
		list := S32List{Count: count, List: make([]int32, 0, len(elems))}
		for _, elem := range elems {
			v, err := strconv.ParseInt(elem, 10, 32)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, int32(v))
		}
		return list, nil
	case ValueTypeVlanList:
		count, elems, err := splitList(s)
		if err != nil {
			return nil, err
		}
		list := VlanList{Count: count, List: make([]uint16, 0, len(elems))}
		for _, elem := range elems {
			v, err := strconv.ParseUint(elem, 10, 16)
			if err != nil {
				return nil, err
			}
			list.List = append(list.List, uint16(v))
		}
		return list, nil
	case ValueTypeUint32Range:
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid range %q", s)
		}
		min, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, err
		}
		max, err := strconv.ParseUint(parts[1], 10, 32)
		if err != nil {
			return nil, err
		}
		return U32Range{Min: uint32(min), Max: uint32(max)}, nil
	case ValueTypeInt32Range:
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid range %q", s)
		}
		min, err := strconv.ParseInt(parts[0], 10, 32)
		if err != nil {
			return nil, err
		}
		max, err := strconv.ParseInt(parts[1], 10, 32)
		if err != nil {
			return nil, err
		}
		return S32Range{Min: int32(min), Max: int32(max)}, nil
	}
	return nil, fmt.Errorf("value type %v cannot be parsed without metadata", t)
}

// ParseAclField parses the form produced by AclField.String.
func ParseAclField(dataType AttrValueType, s string) (AclField, error) {
	if s == "disabled" {
		return AclField{}, nil
	}
	field := AclField{Enable: true}
	data, mask := s, ""
	if idx := strings.Index(s, "&mask:"); idx >= 0 {
		data, mask = s[:idx], s[idx+len("&mask:"):]
	}
	var err error
	if field.Data, err = ParseValue(dataType, data); err != nil {
		return field, err
	}
	if mask != "" {
		if field.Mask, err = ParseValue(dataType, mask); err != nil {
			return field, err
		}
	}
	return field, nil
}

// ParseAclAction parses the form produced by AclAction.String.
// With the parameter type nil the action carries no parameter.
func ParseAclAction(paramType *AttrValueType, s string) (AclAction, error) {
	if s == "disabled" {
		return AclAction{}, nil
	}
	action := AclAction{Enable: true}
	if paramType == nil {
		return action, nil
	}
	var err error
	action.Parameter, err = ParseValue(*paramType, s)
	return action, err
}

func splitList(s string) (uint32, []string, error) {
	idx := strings.Index(s, ":")
	if idx < 0 {
		return 0, nil, fmt.Errorf("invalid list %q: missing count", s)
	}
	count, err := strconv.ParseUint(s[:idx], 10, 32)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid list %q: %v", s, err)
	}
	rest := s[idx+1:]
	if rest == "null" || rest == "" {
		return uint32(count), nil, nil
	}
	// object IDs contain a colon, split only on commas
	elems := strings.Split(rest, ",")
	if uint64(len(elems)) != count {
		return 0, nil, fmt.Errorf("invalid list %q: count %d does not match %d elements",
			s, count, len(elems))
	}
	return uint32(count), elems, nil
}
