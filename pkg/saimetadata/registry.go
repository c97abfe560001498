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
	"sort"
	"sync"

	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
)

var (
	// ErrRegistryFrozen is returned when registering into a frozen registry.
	ErrRegistryFrozen = errors.New("metadata registry is frozen")
)

// Registry provides read-only access to the object type and attribute
// metadata. All lookups are safe for concurrent use.
type Registry interface {
	// ObjectTypes returns all registered object types ordered by value.
	ObjectTypes() []sai.ObjectType

	// ObjectTypeInfo returns description of the object type or nil.
	ObjectTypeInfo(objectType sai.ObjectType) *ObjTypeInfo

	// LookupAttribute returns metadata of the attribute or nil.
	LookupAttribute(objectType sai.ObjectType, attrID sai.AttrID) *AttrMetadata

	// LookupAttributeByName returns metadata of the attribute with the given
	// SAI name (e.g. SAI_PORT_ATTR_SPEED) or nil.
	LookupAttributeByName(name string) *AttrMetadata

	// MandatoryAttributes returns attributes flagged as mandatory on create.
	MandatoryAttributes(objectType sai.ObjectType) []*AttrMetadata

	// KeyAttributes returns attributes flagged as KEY ordered by ID.
	KeyAttributes(objectType sai.ObjectType) []*AttrMetadata

	// AllowedReferenceTypes returns object types the attribute may reference.
	AllowedReferenceTypes(objectType sai.ObjectType, attrID sai.AttrID) []sai.ObjectType

	// StatEnum returns the statistics enum of the object type or nil.
	StatEnum(objectType sai.ObjectType) *EnumMetadata
}

// Schema is a Registry that can be extended until it is frozen.
type Schema struct {
	mu      sync.RWMutex
	frozen  bool
	types   map[sai.ObjectType]*objTypeEntry
	byName  map[string]*AttrMetadata
	ordered []sai.ObjectType
}

type objTypeEntry struct {
	info      *ObjTypeInfo
	attrs     map[sai.AttrID]*AttrMetadata
	mandatory []*AttrMetadata
	keys      []*AttrMetadata
}

// NewSchema returns an empty schema.
func NewSchema() *Schema {
	return &Schema{
		types:  make(map[sai.ObjectType]*objTypeEntry),
		byName: make(map[string]*AttrMetadata),
	}
}

var (
	defaultOnce   sync.Once
	defaultSchema *Schema
)

// DefaultRegistry returns the frozen schema with the built-in object types.
func DefaultRegistry() Registry {
	defaultOnce.Do(func() {
		defaultSchema = NewBuiltinSchema()
		defaultSchema.Freeze()
	})
	return defaultSchema
}

// NewBuiltinSchema returns a new schema pre-populated with the built-in
// object types. The schema is not frozen and can be extended.
func NewBuiltinSchema() *Schema {
	s := NewSchema()
	for _, info := range builtinObjectTypes() {
		if err := s.Register(info); err != nil {
			panic(errors.Errorf("invalid built-in metadata: %v", err))
		}
	}
	return s
}

// Register adds the object type to the schema. An already registered type
// is replaced.
func (s *Schema) Register(info *ObjTypeInfo) error {
	if err := validateObjTypeInfo(info); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.frozen {
		return ErrRegistryFrozen
	}

	if old, exists := s.types[info.ObjectType]; exists {
		for _, md := range old.info.Attrs {
			delete(s.byName, md.Name)
		}
	} else {
		s.ordered = append(s.ordered, info.ObjectType)
		sort.Slice(s.ordered, func(i, j int) bool { return s.ordered[i] < s.ordered[j] })
	}

	sort.Slice(info.Attrs, func(i, j int) bool { return info.Attrs[i].AttrID < info.Attrs[j].AttrID })
	entry := &objTypeEntry{
		info:  info,
		attrs: make(map[sai.AttrID]*AttrMetadata, len(info.Attrs)),
	}
	for _, md := range info.Attrs {
		md.ObjectType = info.ObjectType
		entry.attrs[md.AttrID] = md
		s.byName[md.Name] = md
		if md.IsMandatoryOnCreate() {
			entry.mandatory = append(entry.mandatory, md)
		}
		if md.IsKey() {
			entry.keys = append(entry.keys, md)
		}
	}
	s.types[info.ObjectType] = entry
	return nil
}

// Freeze makes the schema read-only.
func (s *Schema) Freeze() {
	s.mu.Lock()
	s.frozen = true
	s.mu.Unlock()
}

// IsFrozen returns true once Freeze was called.
func (s *Schema) IsFrozen() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.frozen
}

// ObjectTypes returns all registered object types ordered by value.
func (s *Schema) ObjectTypes() []sai.ObjectType {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]sai.ObjectType(nil), s.ordered...)
}

// ObjectTypeInfo returns description of the object type or nil.
func (s *Schema) ObjectTypeInfo(objectType sai.ObjectType) *ObjTypeInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.types[objectType]; ok {
		return entry.info
	}
	return nil
}

// LookupAttribute returns metadata of the attribute or nil.
func (s *Schema) LookupAttribute(objectType sai.ObjectType, attrID sai.AttrID) *AttrMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.types[objectType]; ok {
		return entry.attrs[attrID]
	}
	return nil
}

// LookupAttributeByName returns metadata of the attribute with the given name.
func (s *Schema) LookupAttributeByName(name string) *AttrMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byName[name]
}

// MandatoryAttributes returns attributes flagged as mandatory on create.
func (s *Schema) MandatoryAttributes(objectType sai.ObjectType) []*AttrMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.types[objectType]; ok {
		return entry.mandatory
	}
	return nil
}

// KeyAttributes returns attributes flagged as KEY ordered by ID.
func (s *Schema) KeyAttributes(objectType sai.ObjectType) []*AttrMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if entry, ok := s.types[objectType]; ok {
		return entry.keys
	}
	return nil
}

// AllowedReferenceTypes returns object types the attribute may reference.
func (s *Schema) AllowedReferenceTypes(objectType sai.ObjectType, attrID sai.AttrID) []sai.ObjectType {
	md := s.LookupAttribute(objectType, attrID)
	if md == nil {
		return nil
	}
	return md.AllowedObjectTypes
}

// StatEnum returns the statistics enum of the object type or nil.
func (s *Schema) StatEnum(objectType sai.ObjectType) *EnumMetadata {
	if info := s.ObjectTypeInfo(objectType); info != nil {
		return info.StatEnum
	}
	return nil
}

func validateObjTypeInfo(info *ObjTypeInfo) error {
	if info == nil {
		return errors.New("object type info is nil")
	}
	if !info.ObjectType.IsValid() {
		return errors.Errorf("invalid object type %v", info.ObjectType)
	}
	if info.IsNonObjectID != info.ObjectType.IsNonObjectID() {
		return errors.Errorf("%v: non-object-id flag does not match object type", info.ObjectType)
	}
	seen := make(map[sai.AttrID]bool, len(info.Attrs))
	for _, md := range info.Attrs {
		if md.Name == "" {
			return errors.Errorf("%v: attribute %d has no name", info.ObjectType, md.AttrID)
		}
		if seen[md.AttrID] {
			return errors.Errorf("%v: duplicate attribute ID %d (%s)", info.ObjectType, md.AttrID, md.Name)
		}
		seen[md.AttrID] = true

		if md.IsReadOnly() && (md.IsMandatoryOnCreate() || md.IsCreateAndSet() || md.Flags.Has(CreateOnly)) {
			return errors.Errorf("%s: read-only attribute can't be supplied on create or set", md.Name)
		}
		if md.IsKey() && !md.IsMandatoryOnCreate() {
			return errors.Errorf("%s: key attribute must be mandatory on create", md.Name)
		}
		if md.IsKey() && !isKeyableType(md.ValueType) {
			return errors.Errorf("%s: value type %v can't be part of a key", md.Name, md.ValueType)
		}
		if md.IsObjectReference() && len(md.AllowedObjectTypes) == 0 {
			return errors.Errorf("%s: object reference without allowed object types", md.Name)
		}
		if md.DefaultValueType == DefaultConst {
			if md.DefaultValue == nil {
				return errors.Errorf("%s: missing constant default value", md.Name)
			}
			if md.DefaultValue.ValueType() != md.ValueType {
				return errors.Errorf("%s: default value type %v differs from %v",
					md.Name, md.DefaultValue.ValueType(), md.ValueType)
			}
		}
		if (md.ValueType == sai.ValueTypeAclField) && md.AclDataType == nil {
			return errors.Errorf("%s: ACL field without data type", md.Name)
		}
		if md.Computed != nil && !md.IsReadOnly() {
			return errors.Errorf("%s: computed list must be read-only", md.Name)
		}
	}
	for _, md := range info.Attrs {
		for _, cond := range append(append([]AttrCondition(nil), md.Conditions...), md.ValidOnly...) {
			if !seen[cond.AttrID] {
				return errors.Errorf("%s: condition on unknown attribute %d", md.Name, cond.AttrID)
			}
		}
	}
	return nil
}

// isKeyableType returns true for value kinds which have a defined key form.
func isKeyableType(t sai.AttrValueType) bool {
	switch t {
	case sai.ValueTypeUint8, sai.ValueTypeInt8, sai.ValueTypeUint16, sai.ValueTypeInt16,
		sai.ValueTypeUint32, sai.ValueTypeInt32, sai.ValueTypeUint64, sai.ValueTypeInt64,
		sai.ValueTypeObjectID, sai.ValueTypeUint32List:
		return true
	}
	return false
}
