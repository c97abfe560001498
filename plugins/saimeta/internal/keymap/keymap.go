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

// Package keymap tracks canonical keys built from KEY attributes so that
// two objects with the same identity can't be created.
package keymap

import (
	"sort"
	"strings"

	"github.com/go-errors/errors"
	"github.com/ligato/cn-infra/idxmap"
	"github.com/ligato/cn-infra/idxmap/mem"
	"github.com/ligato/cn-infra/logging"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
)

const (
	// objectIdxKey is a secondary index used to find canonical key
	// of an object.
	objectIdxKey = "object"

	// switchIdxKey is a secondary index grouping keys by switch.
	switchIdxKey = "switch"
)

// AttrKeyMap maps canonical keys to the objects owning them.
type AttrKeyMap struct {
	log      logging.Logger
	registry saimetadata.Registry
	mapping  idxmap.NamedMappingRW
}

type keyOwner struct {
	key      sai.ObjectKey
	switchID sai.ObjectID
}

// NewAttrKeyMap returns an empty key map.
func NewAttrKeyMap(logger logging.Logger, registry saimetadata.Registry) *AttrKeyMap {
	return &AttrKeyMap{
		log:      logger,
		registry: registry,
		mapping:  mem.NewNamedMapping(logger, "sai-attr-keys", indexOwner),
	}
}

func indexOwner(item interface{}) map[string][]string {
	indexes := map[string][]string{}
	owner, ok := item.(*keyOwner)
	if !ok || owner == nil {
		return indexes
	}
	indexes[objectIdxKey] = []string{ownerName(owner.key)}
	indexes[switchIdxKey] = []string{owner.switchID.String()}
	return indexes
}

func ownerName(key sai.ObjectKey) string {
	return key.GetObjectType().String() + " " + key.String()
}

// HasKeyAttributes returns true if the object type defines KEY attributes.
func (km *AttrKeyMap) HasKeyAttributes(objectType sai.ObjectType) bool {
	return len(km.registry.KeyAttributes(objectType)) > 0
}

// ConstructKey builds the canonical key from KEY attributes found in attrs.
// Attributes are taken in the order of their IDs, so the order in attrs
// does not matter. A KEY attribute with a value kind without a key form
// is a metadata bug and panics.
func (km *AttrKeyMap) ConstructKey(switchID sai.ObjectID, objectType sai.ObjectType, attrs []sai.Attribute) string {
	values := make(map[sai.AttrID]sai.Value, len(attrs))
	for _, attr := range attrs {
		values[attr.ID] = attr.Value
	}

	var sb strings.Builder
	sb.WriteString(switchID.String())
	sb.WriteString(";")
	for _, md := range km.registry.KeyAttributes(objectType) {
		value, has := values[md.AttrID]
		if !has {
			continue
		}
		sb.WriteString(md.Name)
		sb.WriteString(":")
		sb.WriteString(keyValue(md, value))
		sb.WriteString(";")
	}
	return sb.String()
}

func keyValue(md *saimetadata.AttrMetadata, value sai.Value) string {
	switch v := value.(type) {
	case sai.U8, sai.S8, sai.U16, sai.S16, sai.U32, sai.S32, sai.U64, sai.S64, sai.ObjectID:
		return v.String()
	case sai.U32List:
		return v.JoinElements()
	}
	err := errors.Errorf("attribute %s of kind %v can't be used in a key", md.Name, md.ValueType)
	panic(err)
}

// Insert associates the canonical key with the object.
func (km *AttrKeyMap) Insert(key sai.ObjectKey, canonical string) error {
	if owner, inUse := km.Lookup(canonical); inUse {
		return errors.Errorf("key %q is already used by %v", canonical, owner)
	}
	if prev, has := km.CanonicalKeyOf(key); has {
		return errors.Errorf("object %v already has key %q", key, prev)
	}
	km.mapping.Put(canonical, &keyOwner{key: key, switchID: key.GetSwitchID()})
	return nil
}

// Erase removes the canonical key of the object.
func (km *AttrKeyMap) Erase(key sai.ObjectKey) (canonical string, found bool) {
	canonical, found = km.CanonicalKeyOf(key)
	if found {
		km.mapping.Delete(canonical)
	}
	return canonical, found
}

// EraseSwitch removes keys of all objects created on the switch.
func (km *AttrKeyMap) EraseSwitch(switchID sai.ObjectID) {
	for _, canonical := range km.SwitchKeys(switchID) {
		km.mapping.Delete(canonical)
	}
}

// KeyInUse returns true if some object owns the canonical key.
func (km *AttrKeyMap) KeyInUse(canonical string) bool {
	_, inUse := km.mapping.GetValue(canonical)
	return inUse
}

// Lookup returns the object owning the canonical key.
func (km *AttrKeyMap) Lookup(canonical string) (sai.ObjectKey, bool) {
	value, found := km.mapping.GetValue(canonical)
	if !found {
		return nil, false
	}
	return value.(*keyOwner).key, true
}

// CanonicalKeyOf returns the canonical key of the object.
func (km *AttrKeyMap) CanonicalKeyOf(key sai.ObjectKey) (string, bool) {
	names := km.mapping.ListNames(objectIdxKey, ownerName(key))
	if len(names) != 1 {
		return "", false
	}
	return names[0], true
}

// AllKeys returns all canonical keys in sorted order.
func (km *AttrKeyMap) AllKeys() []string {
	keys := km.mapping.ListAllNames()
	sort.Strings(keys)
	return keys
}

// SwitchKeys returns sorted canonical keys of objects created on the switch.
func (km *AttrKeyMap) SwitchKeys(switchID sai.ObjectID) []string {
	keys := km.mapping.ListNames(switchIdxKey, switchID.String())
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored keys.
func (km *AttrKeyMap) Len() int {
	return len(km.mapping.ListAllNames())
}
