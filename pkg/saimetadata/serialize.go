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
	"strconv"
	"strings"

	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
)

// SerializeAttrValue returns the textual form of the attribute value.
// Enum values are written by name.
func SerializeAttrValue(md *AttrMetadata, value sai.Value) string {
	if value == nil {
		return ""
	}
	if md == nil || md.Enum == nil {
		return value.String()
	}
	switch v := value.(type) {
	case sai.S32:
		return enumName(md.Enum, int32(v))
	case sai.S32List:
		names := make([]string, 0, len(v.List))
		for _, elem := range v.Elements() {
			names = append(names, enumName(md.Enum, elem))
		}
		if len(names) == 0 {
			return strconv.FormatUint(uint64(v.Count), 10) + ":null"
		}
		return strconv.FormatUint(uint64(v.Count), 10) + ":" + strings.Join(names, ",")
	case sai.AclAction:
		if param, ok := v.Parameter.(sai.S32); ok && v.Enable {
			return enumName(md.Enum, int32(param))
		}
	case sai.AclField:
		if data, ok := v.Data.(sai.S32); ok && v.Enable {
			s := enumName(md.Enum, int32(data))
			if v.Mask != nil {
				s += "&mask:" + v.Mask.String()
			}
			return s
		}
	}
	return value.String()
}

// DeserializeAttrValue parses the form produced by SerializeAttrValue.
func DeserializeAttrValue(md *AttrMetadata, s string) (sai.Value, error) {
	if md == nil {
		return nil, errors.New("missing attribute metadata")
	}
	switch {
	case md.IsEnum():
		v, err := parseEnum(md.Enum, s)
		return sai.S32(v), err

	case md.IsEnumList():
		idx := strings.Index(s, ":")
		if idx < 0 {
			return nil, errors.Errorf("%s: invalid enum list %q", md.Name, s)
		}
		count, err := strconv.ParseUint(s[:idx], 10, 32)
		if err != nil {
			return nil, errors.Errorf("%s: invalid enum list %q: %v", md.Name, s, err)
		}
		list := sai.S32List{Count: uint32(count), List: []int32{}}
		if rest := s[idx+1:]; rest != "null" && rest != "" {
			for _, name := range strings.Split(rest, ",") {
				v, err := parseEnum(md.Enum, name)
				if err != nil {
					return nil, err
				}
				list.List = append(list.List, v)
			}
		}
		return list, nil

	case md.ValueType == sai.ValueTypeAclField:
		if md.Enum != nil && s != "disabled" {
			data := s
			if idx := strings.Index(s, "&mask:"); idx >= 0 {
				data = s[:idx]
			}
			v, err := parseEnum(md.Enum, data)
			if err != nil {
				return nil, err
			}
			field := sai.AclField{Enable: true, Data: sai.S32(v)}
			if data != s {
				mask, err := sai.ParseValue(sai.ValueTypeInt32, s[len(data)+len("&mask:"):])
				if err != nil {
					return nil, err
				}
				field.Mask = mask
			}
			return field, nil
		}
		return sai.ParseAclField(*md.AclDataType, s)

	case md.ValueType == sai.ValueTypeAclAction:
		if md.Enum != nil && s != "disabled" {
			v, err := parseEnum(md.Enum, s)
			return sai.AclAction{Enable: true, Parameter: sai.S32(v)}, err
		}
		return sai.ParseAclAction(md.AclDataType, s)
	}

	v, err := sai.ParseValue(md.ValueType, s)
	if err != nil {
		return nil, errors.Errorf("%s: %v", md.Name, err)
	}
	return v, nil
}

// FormatAttribute returns the attribute in the form "NAME=value".
func FormatAttribute(reg Registry, objectType sai.ObjectType, attr sai.Attribute) string {
	md := reg.LookupAttribute(objectType, attr.ID)
	if md == nil {
		return strconv.Itoa(int(attr.ID)) + "=" + valueString(attr.Value)
	}
	return md.Name + "=" + SerializeAttrValue(md, attr.Value)
}

// ParseAttribute parses the form produced by FormatAttribute.
func ParseAttribute(reg Registry, s string) (sai.Attribute, error) {
	idx := strings.Index(s, "=")
	if idx < 0 {
		return sai.Attribute{}, errors.Errorf("invalid attribute %q: missing '='", s)
	}
	md := reg.LookupAttributeByName(s[:idx])
	if md == nil {
		return sai.Attribute{}, errors.Errorf("unknown attribute %q", s[:idx])
	}
	v, err := DeserializeAttrValue(md, s[idx+1:])
	if err != nil {
		return sai.Attribute{}, err
	}
	return sai.Attribute{ID: md.AttrID, Value: v}, nil
}

func enumName(e *EnumMetadata, v int32) string {
	if name := e.NameOf(v); name != "" {
		return name
	}
	return strconv.FormatInt(int64(v), 10)
}

func parseEnum(e *EnumMetadata, s string) (int32, error) {
	if v, ok := e.ValueOf(s); ok {
		return v, nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, errors.Errorf("%q is not a value of %s", s, e.Name)
	}
	return int32(v), nil
}

func valueString(v sai.Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}
