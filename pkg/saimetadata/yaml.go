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
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
)

// SchemaFile is the YAML representation of schema extensions.
type SchemaFile struct {
	ObjectTypes []ObjectTypeSpec `json:"objectTypes"`
}

// ObjectTypeSpec describes attributes added to (or replaced in) an object type.
type ObjectTypeSpec struct {
	Name       string          `json:"name"`
	StatEnum   *EnumSpec       `json:"statEnum,omitempty"`
	Attributes []AttributeSpec `json:"attributes"`
}

// EnumSpec is either a reference to a built-in enum or a new enumeration.
type EnumSpec struct {
	Name   string   `json:"name"`
	Values []string `json:"values,omitempty"`
}

// ConditionSpec is a condition on another attribute of the same type.
type ConditionSpec struct {
	Attr   string   `json:"attr"`
	Values []string `json:"values"`
}

// AttributeSpec describes one attribute.
type AttributeSpec struct {
	ID               int32           `json:"id"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	Flags            string          `json:"flags"`
	ObjectTypes      []string        `json:"objectTypes,omitempty"`
	AllowNull        bool            `json:"allowNull,omitempty"`
	AllowEmptyList   bool            `json:"allowEmptyList,omitempty"`
	Enum             *EnumSpec       `json:"enum,omitempty"`
	AclDataType      string          `json:"aclDataType,omitempty"`
	Range            *ValueRange     `json:"range,omitempty"`
	Default          *string         `json:"default,omitempty"`
	DefaultEmptyList bool            `json:"defaultEmptyList,omitempty"`
	DefaultInternal  bool            `json:"defaultInternal,omitempty"`
	Conditions       []ConditionSpec `json:"conditions,omitempty"`
	ValidOnly        []ConditionSpec `json:"validOnly,omitempty"`
	Volatile         bool            `json:"volatile,omitempty"`
}

var builtinEnums = map[string]*EnumMetadata{}

func init() {
	for _, e := range []*EnumMetadata{
		PacketActionEnum, SwitchOperStatusEnum, PortTypeEnum, PortOperStatusEnum, PortFecModeEnum,
		RouterInterfaceTypeEnum, NextHopTypeEnum, NextHopGroupTypeEnum, FdbEntryTypeEnum,
		FdbFlushEntryTypeEnum, VlanTaggingModeEnum, BridgeTypeEnum, BridgePortTypeEnum,
		BridgePortFdbLearningModeEnum, AclStageEnum, AclBindPointTypeEnum, MeterTypeEnum,
		PolicerModeEnum, QueueTypeEnum, HostifTypeEnum, HostifTrapTypeEnum,
		PortStatEnum, RouterInterfaceStatEnum, QueueStatEnum, IngressPriorityGroupStatEnum,
		PolicerStatEnum, VlanStatEnum,
	} {
		builtinEnums[e.Name] = e
	}
}

// LoadFile reads schema extensions from the YAML file.
func (s *Schema) LoadFile(path string) error {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Errorf("reading schema file %s failed: %v", path, err)
	}
	return s.LoadYAML(b)
}

// LoadYAML registers object types described by the YAML document.
// Attributes of an already registered type are merged by ID.
func (s *Schema) LoadYAML(b []byte) error {
	var file SchemaFile
	if err := yaml.Unmarshal(b, &file); err != nil {
		return errors.Errorf("invalid schema document: %v", err)
	}
	for _, spec := range file.ObjectTypes {
		info, err := s.objTypeInfoFromSpec(spec)
		if err != nil {
			return err
		}
		if err := s.Register(info); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) objTypeInfoFromSpec(spec ObjectTypeSpec) (*ObjTypeInfo, error) {
	objectType, err := sai.ParseObjectType(spec.Name)
	if err != nil {
		return nil, err
	}

	info := &ObjTypeInfo{
		ObjectType:    objectType,
		IsNonObjectID: objectType.IsNonObjectID(),
	}
	attrs := make(map[sai.AttrID]*AttrMetadata)
	var order []sai.AttrID
	if existing := s.ObjectTypeInfo(objectType); existing != nil {
		info.IsPseudo = existing.IsPseudo
		info.StructMembers = existing.StructMembers
		info.StatEnum = existing.StatEnum
		for _, md := range existing.Attrs {
			attrs[md.AttrID] = md
			order = append(order, md.AttrID)
		}
	}
	if spec.StatEnum != nil {
		if info.StatEnum, err = enumFromSpec(spec.StatEnum); err != nil {
			return nil, err
		}
	}

	byName := make(map[string]*AttrMetadata)
	for _, md := range attrs {
		byName[md.Name] = md
	}
	specs := make(map[sai.AttrID]AttributeSpec)
	for _, as := range spec.Attributes {
		md, err := attrFromSpec(as)
		if err != nil {
			return nil, errors.Errorf("%s: %v", spec.Name, err)
		}
		if _, exists := attrs[md.AttrID]; !exists {
			order = append(order, md.AttrID)
		}
		attrs[md.AttrID] = md
		byName[md.Name] = md
		specs[md.AttrID] = as
	}

	// values of defaults and conditions depend on the referenced metadata
	for id, as := range specs {
		md := attrs[id]
		if as.Default != nil {
			if md.DefaultValue, err = DeserializeAttrValue(md, *as.Default); err != nil {
				return nil, errors.Errorf("%s: invalid default: %v", md.Name, err)
			}
			md.DefaultValueType = DefaultConst
		}
		if md.Conditions, err = conditionsFromSpec(byName, as.Conditions); err != nil {
			return nil, errors.Errorf("%s: %v", md.Name, err)
		}
		if md.ValidOnly, err = conditionsFromSpec(byName, as.ValidOnly); err != nil {
			return nil, errors.Errorf("%s: %v", md.Name, err)
		}
	}

	for _, id := range order {
		info.Attrs = append(info.Attrs, attrs[id])
	}
	return info, nil
}

func attrFromSpec(as AttributeSpec) (*AttrMetadata, error) {
	vt, ok := sai.ParseValueType(as.Type)
	if !ok {
		return nil, errors.Errorf("attribute %s: unknown value type %q", as.Name, as.Type)
	}
	flags, ok := ParseAttrFlags(as.Flags)
	if !ok {
		return nil, errors.Errorf("attribute %s: invalid flags %q", as.Name, as.Flags)
	}
	md := &AttrMetadata{
		AttrID:            sai.AttrID(as.ID),
		Name:              as.Name,
		ValueType:         vt,
		Flags:             flags,
		AllowNullObjectID: as.AllowNull,
		AllowEmptyList:    as.AllowEmptyList,
		Range:             as.Range,
		IsVolatile:        as.Volatile,
	}
	for _, name := range as.ObjectTypes {
		t, err := sai.ParseObjectType(name)
		if err != nil {
			return nil, errors.Errorf("attribute %s: %v", as.Name, err)
		}
		md.AllowedObjectTypes = append(md.AllowedObjectTypes, t)
	}
	if as.Enum != nil {
		e, err := enumFromSpec(as.Enum)
		if err != nil {
			return nil, errors.Errorf("attribute %s: %v", as.Name, err)
		}
		md.Enum = e
	}
	if as.AclDataType != "" {
		adt, ok := sai.ParseValueType(as.AclDataType)
		if !ok {
			return nil, errors.Errorf("attribute %s: unknown ACL data type %q", as.Name, as.AclDataType)
		}
		md.AclDataType = &adt
	}
	switch {
	case as.DefaultEmptyList:
		md.DefaultValueType = DefaultEmptyList
	case as.DefaultInternal:
		md.DefaultValueType = DefaultSwitchInternal
	}
	return md, nil
}

func enumFromSpec(es *EnumSpec) (*EnumMetadata, error) {
	if len(es.Values) == 0 {
		if e, ok := builtinEnums[es.Name]; ok {
			return e, nil
		}
		return nil, errors.Errorf("unknown enum %q", es.Name)
	}
	e := &EnumMetadata{Name: es.Name}
	for i, name := range es.Values {
		e.Values = append(e.Values, int32(i))
		e.ValueNames = append(e.ValueNames, name)
	}
	return e, nil
}

func conditionsFromSpec(byName map[string]*AttrMetadata, specs []ConditionSpec) ([]AttrCondition, error) {
	var conds []AttrCondition
	for _, cs := range specs {
		target, ok := byName[cs.Attr]
		if !ok {
			return nil, errors.Errorf("condition on unknown attribute %q", cs.Attr)
		}
		cond := AttrCondition{AttrID: target.AttrID}
		for _, vs := range cs.Values {
			v, err := DeserializeAttrValue(target, vs)
			if err != nil {
				return nil, err
			}
			cond.Values = append(cond.Values, v)
		}
		conds = append(conds, cond)
	}
	return conds, nil
}
