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

package objdb

import (
	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
)

// RefTracker counts references pointing to every tracked object.
type RefTracker struct {
	counts map[sai.ObjectID]uint64
}

// NewRefTracker returns an empty tracker.
func NewRefTracker() *RefTracker {
	return &RefTracker{counts: make(map[sai.ObjectID]uint64)}
}

// Track starts counting references to the object.
func (rt *RefTracker) Track(oid sai.ObjectID) {
	if _, tracked := rt.counts[oid]; !tracked {
		rt.counts[oid] = 0
	}
}

// Untrack stops counting references to the object. The object must not
// be referenced.
func (rt *RefTracker) Untrack(oid sai.ObjectID) {
	if count := rt.counts[oid]; count > 0 {
		panic(errors.Errorf("untracking %v with %d references", oid, count))
	}
	delete(rt.counts, oid)
}

// IsTracked returns true if the object is tracked.
func (rt *RefTracker) IsTracked(oid sai.ObjectID) bool {
	_, tracked := rt.counts[oid]
	return tracked
}

// Inc adds one reference to the object.
func (rt *RefTracker) Inc(oid sai.ObjectID) {
	count, tracked := rt.counts[oid]
	if !tracked {
		panic(errors.Errorf("reference to untracked object %v", oid))
	}
	rt.counts[oid] = count + 1
}

// Dec removes one reference from the object. Dropping below zero means
// an increment was missed and is fatal.
func (rt *RefTracker) Dec(oid sai.ObjectID) {
	count, tracked := rt.counts[oid]
	if !tracked {
		panic(errors.Errorf("dereference of untracked object %v", oid))
	}
	if count == 0 {
		panic(errors.Errorf("reference count underflow for %v", oid))
	}
	rt.counts[oid] = count - 1
}

// Count returns the number of references to the object.
func (rt *RefTracker) Count(oid sai.ObjectID) uint64 {
	return rt.counts[oid]
}

// CanRemove returns true if nothing references the object.
func (rt *RefTracker) CanRemove(oid sai.ObjectID) bool {
	return rt.counts[oid] == 0
}

// Snapshot returns a copy of all reference counts.
func (rt *RefTracker) Snapshot() map[sai.ObjectID]uint64 {
	snapshot := make(map[sai.ObjectID]uint64, len(rt.counts))
	for oid, count := range rt.counts {
		snapshot[oid] = count
	}
	return snapshot
}

// ReferenceExtractor lists object IDs held by a key or by an attribute.
// Null object IDs are never returned.
type ReferenceExtractor interface {
	// KeyReferences returns object IDs embedded in a structured key,
	// excluding the switch.
	KeyReferences(key sai.ObjectKey) []sai.ObjectID

	// AttrReferences returns object IDs carried by the attribute value.
	AttrReferences(objectType sai.ObjectType, id sai.AttrID, value sai.Value) []sai.ObjectID
}

type metadataExtractor struct {
	registry saimetadata.Registry
}

// NewMetadataExtractor returns extractor driven by the metadata registry.
func NewMetadataExtractor(registry saimetadata.Registry) ReferenceExtractor {
	return &metadataExtractor{registry: registry}
}

func (e *metadataExtractor) KeyReferences(key sai.ObjectKey) []sai.ObjectID {
	if _, isOID := key.(sai.ObjectID); isOID {
		return nil
	}
	info := e.registry.ObjectTypeInfo(key.GetObjectType())
	if info == nil {
		return nil
	}
	var refs []sai.ObjectID
	for _, member := range info.StructMembers {
		if member.GetObjectID == nil || isSwitchMember(member) {
			continue
		}
		if oid := member.GetObjectID(key); !oid.IsNull() {
			refs = append(refs, oid)
		}
	}
	return refs
}

func (e *metadataExtractor) AttrReferences(objectType sai.ObjectType, id sai.AttrID, value sai.Value) []sai.ObjectID {
	md := e.registry.LookupAttribute(objectType, id)
	if md == nil || !md.IsObjectReference() {
		return nil
	}
	return ValueReferences(value)
}

// ValueReferences returns non-null object IDs carried by the value.
func ValueReferences(value sai.Value) []sai.ObjectID {
	var refs []sai.ObjectID
	add := func(oid sai.ObjectID) {
		if !oid.IsNull() {
			refs = append(refs, oid)
		}
	}
	switch v := value.(type) {
	case sai.ObjectID:
		add(v)
	case sai.ObjectList:
		for _, oid := range v.Elements() {
			add(oid)
		}
	case sai.AclField:
		if v.Enable {
			refs = append(refs, ValueReferences(v.Data)...)
		}
	case sai.AclAction:
		if v.Enable {
			refs = append(refs, ValueReferences(v.Parameter)...)
		}
	}
	return refs
}

func isSwitchMember(member *saimetadata.StructMember) bool {
	return len(member.AllowedObjectTypes) == 1 &&
		member.AllowedObjectTypes[0] == sai.ObjectTypeSwitch
}
