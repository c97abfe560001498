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

// Package oidalloc implements allocation of object IDs with the switch
// index and object type encoded into the ID.
package oidalloc

import (
	"sync"

	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
)

const maxSwitches = 256

var (
	// ErrNoFreeSwitchIndex is returned when all switch indexes are in use.
	ErrNoFreeSwitchIndex = errors.New("no free switch index")

	// ErrIndexSpaceExhausted is returned when no more IDs of a type can be allocated.
	ErrIndexSpaceExhausted = errors.New("object index space exhausted")
)

type counterKey struct {
	switchIndex uint8
	objectType  sai.ObjectType
}

// Allocator hands out object IDs. Indexes of each (switch, object type)
// pair grow monotonically, released IDs are not reused. Switch indexes
// are reused once the switch ID is released.
type Allocator struct {
	mu       sync.Mutex
	switches [maxSwitches]bool
	counters map[counterKey]uint64
}

// NewAllocator returns a new allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		counters: make(map[counterKey]uint64),
	}
}

// AllocateSwitchID returns ID with the lowest free switch index.
func (a *Allocator) AllocateSwitchID() (sai.ObjectID, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for idx := range a.switches {
		if !a.switches[idx] {
			a.switches[idx] = true
			return sai.SwitchObjectID(uint8(idx)), nil
		}
	}
	return sai.NullObjectID, ErrNoFreeSwitchIndex
}

// AllocateObjectID returns next ID of the type on the switch.
func (a *Allocator) AllocateObjectID(objectType sai.ObjectType, switchID sai.ObjectID) (sai.ObjectID, error) {
	if objectType == sai.ObjectTypeSwitch {
		return sai.NullObjectID, errors.New("switch IDs are allocated by AllocateSwitchID")
	}
	if switchID.GetObjectType() != sai.ObjectTypeSwitch {
		return sai.NullObjectID, errors.Errorf("%v is not a switch ID", switchID)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := counterKey{switchIndex: switchID.SwitchIndex(), objectType: objectType}
	next := a.counters[key] + 1
	if next > sai.MaxObjectIndex {
		return sai.NullObjectID, ErrIndexSpaceExhausted
	}
	a.counters[key] = next
	return sai.NewObjectID(key.switchIndex, objectType, next), nil
}

// ReleaseObjectID releases the ID. Only switch IDs are recycled, which
// also resets all index counters of the switch.
func (a *Allocator) ReleaseObjectID(oid sai.ObjectID) {
	if oid.GetObjectType() != sai.ObjectTypeSwitch {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	idx := oid.SwitchIndex()
	a.switches[idx] = false
	for key := range a.counters {
		if key.switchIndex == idx {
			delete(a.counters, key)
		}
	}
}

// MarkAllocated records the ID as used so that it is never handed out.
func (a *Allocator) MarkAllocated(oid sai.ObjectID) {
	if oid.IsNull() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	idx := oid.SwitchIndex()
	a.switches[idx] = true
	if oid.GetObjectType() == sai.ObjectTypeSwitch {
		return
	}
	key := counterKey{switchIndex: idx, objectType: oid.GetObjectType()}
	if a.counters[key] < oid.Index() {
		a.counters[key] = oid.Index()
	}
}
