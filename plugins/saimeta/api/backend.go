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

package api

import (
	"github.com/ligato/sai-agent/api/sai"
)

// Backend is the southbound implementation which the meta layer forwards
// validated operations to. Failures are reported as errors, preferably
// of type sai.Status.
//
// Backend is called with the meta layer lock held and must not call back
// into the meta layer.
type Backend interface {
	// Create creates object identified by the key. For object-ID types
	// the key is the ID already allocated by the meta layer.
	Create(key sai.ObjectKey, attrs []sai.Attribute) error

	// Remove removes the object.
	Remove(key sai.ObjectKey) error

	// Set changes one attribute of the object.
	Set(key sai.ObjectKey, attr sai.Attribute) error

	// Get fills values of the requested attributes. Values of list kinds
	// must be returned complete, the meta layer handles caller buffers.
	Get(key sai.ObjectKey, attrs []sai.Attribute) error

	// BulkCreate creates the objects and returns per-element errors.
	BulkCreate(keys []sai.ObjectKey, attrLists [][]sai.Attribute, mode BulkMode) []error

	// BulkRemove removes the objects and returns per-element errors.
	BulkRemove(keys []sai.ObjectKey, mode BulkMode) []error

	// BulkSet sets one attribute per object and returns per-element errors.
	BulkSet(keys []sai.ObjectKey, attrs []sai.Attribute, mode BulkMode) []error

	// FlushFdbEntries removes FDB entries matching the filter attributes.
	FlushFdbEntries(switchID sai.ObjectID, attrs []sai.Attribute) error

	// GetStats reads counters of the object.
	GetStats(key sai.ObjectKey, counterIDs []sai.StatID, mode StatsMode) ([]uint64, error)

	// ClearStats resets counters of the object.
	ClearStats(key sai.ObjectKey, counterIDs []sai.StatID) error

	// ObjectTypeGetAvailability returns how many more objects of the type
	// can be created.
	ObjectTypeGetAvailability(switchID sai.ObjectID, objectType sai.ObjectType, attrs []sai.Attribute) (uint64, error)

	// QueryAttributeCapability reports operations the switch implements
	// for the attribute.
	QueryAttributeCapability(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID) (AttrCapability, error)

	// QueryAttributeEnumValuesCapability returns the enum values
	// the switch supports for the attribute.
	QueryAttributeEnumValuesCapability(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID) ([]int32, error)
}

// IDAllocator hands out object IDs.
type IDAllocator interface {
	// AllocateSwitchID returns ID for a new switch.
	AllocateSwitchID() (sai.ObjectID, error)

	// AllocateObjectID returns ID for a new object of the type on the switch.
	AllocateObjectID(objectType sai.ObjectType, switchID sai.ObjectID) (sai.ObjectID, error)

	// ReleaseObjectID returns ID to the allocator.
	ReleaseObjectID(oid sai.ObjectID)

	// MarkAllocated records ID allocated elsewhere (e.g. restored from snapshot).
	MarkAllocated(oid sai.ObjectID)
}

// Recorder receives every operation processed by the meta layer.
type Recorder interface {
	// Record is called after the operation finished with its result.
	Record(op Operation, objectType sai.ObjectType, key sai.ObjectKey, attrs []sai.Attribute, err error)
}

// AttrCapability tells which operations are implemented for the attribute.
type AttrCapability struct {
	CreateImplemented bool `json:"create_implemented"`
	SetImplemented    bool `json:"set_implemented"`
	GetImplemented    bool `json:"get_implemented"`
}
