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

package saimeta

import (
	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/objdb"
)

// Bulk operations run in three phases:
//  1. every element is validated and applied tentatively, in order, so
//     that later elements see the effect of earlier ones
//  2. applied elements are passed to the backend in a single call
//  3. elements rejected by the backend are reverted in reverse order
// In STOP_ON_ERROR mode the elements following the first failure are
// reported as NotExecuted.

// BulkCreate creates objects of one type on the switch. Per-element IDs
// and statuses are returned in the order of attrLists, together with an
// aggregate *api.BulkError if any element failed.
func (m *Meta) BulkCreate(objectType sai.ObjectType, switchID sai.ObjectID, attrLists [][]sai.Attribute,
	mode api.BulkMode) (oids []sai.ObjectID, statuses []error, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return nil, nil, err
	}
	done := m.trackOperation(api.OpBulkCreate, objectType, nil)
	defer func() { done(keyOrNil(switchID), err) }()

	if err = m.checkBulkRequest(len(attrLists), mode); err != nil {
		return nil, nil, err
	}
	info, err := m.checkObjectType(objectType)
	if err != nil {
		return nil, nil, err
	}
	if info.IsNonObjectID || objectType == sai.ObjectTypeSwitch {
		return nil, nil, api.NewError(api.InvalidArgument, "object type %v can't be created in bulk by ID", objectType)
	}
	if err = m.checkSwitch(objectType, nil, switchID); err != nil {
		return nil, nil, err
	}

	oids = make([]sai.ObjectID, len(attrLists))
	statuses = make([]error, len(attrLists))
	var applied []int
	stopped := false
	for i, attrs := range attrLists {
		if stopped {
			statuses[i] = notExecuted(objectType, nil)
			continue
		}
		oid, verr := m.prepareBulkCreate(objectType, switchID, attrs)
		if verr != nil {
			statuses[i] = verr
			stopped = mode == api.BulkStopOnError
			continue
		}
		oids[i] = oid
		applied = append(applied, i)
	}
	if len(applied) == 0 {
		return oids, statuses, api.NewBulkError(statuses)
	}

	keys := make([]sai.ObjectKey, len(applied))
	lists := make([][]sai.Attribute, len(applied))
	for j, i := range applied {
		keys[j] = oids[i]
		lists[j] = sai.CloneAttributes(attrLists[i])
	}
	results := m.bulkResults(len(keys), m.Backend.BulkCreate(keys, lists, mode))
	for j := len(applied) - 1; j >= 0; j-- {
		if results[j] == nil {
			continue
		}
		i := applied[j]
		m.undoInsert(oids[i])
		m.IDAllocator.ReleaseObjectID(oids[i])
		reportRollback(api.OpBulkCreate)
		statuses[i] = m.bulkElementError(api.OpBulkCreate, oids[i], results[j])
		oids[i] = sai.NullObjectID
	}
	return oids, statuses, api.NewBulkError(statuses)
}

func (m *Meta) prepareBulkCreate(objectType sai.ObjectType, switchID sai.ObjectID, attrs []sai.Attribute) (sai.ObjectID, error) {
	canonical, err := m.validateCreate(objectType, switchID, nil, attrs)
	if err != nil {
		return sai.NullObjectID, err
	}
	oid, err := m.IDAllocator.AllocateObjectID(objectType, switchID)
	if err != nil {
		return sai.NullObjectID, allocationError(objectType, err)
	}
	m.insertObject(oid, attrs, canonical)
	return oid, nil
}

// BulkCreateEntries creates entries of one structured-key type.
func (m *Meta) BulkCreateEntries(keys []sai.ObjectKey, attrLists [][]sai.Attribute, mode api.BulkMode) (statuses []error, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return nil, err
	}
	objectType := bulkObjectType(keys)
	done := m.trackOperation(api.OpBulkCreate, objectType, nil)
	defer func() { done(nil, err) }()

	if err = m.checkBulkRequest(len(keys), mode); err != nil {
		return nil, err
	}
	if len(attrLists) != len(keys) {
		return nil, api.NewError(api.InvalidArgument, "got %d keys but %d attribute lists", len(keys), len(attrLists))
	}
	if err = checkBulkKeys(keys); err != nil {
		return nil, err
	}

	statuses = make([]error, len(keys))
	var applied []int
	stopped := false
	for i, key := range keys {
		if stopped {
			statuses[i] = notExecuted(objectType, key)
			continue
		}
		verr := m.validateCreateEntry(key, attrLists[i])
		var canonical string
		if verr == nil {
			canonical, verr = m.validateCreate(objectType, key.GetSwitchID(), key, attrLists[i])
		}
		if verr != nil {
			statuses[i] = verr
			stopped = mode == api.BulkStopOnError
			continue
		}
		m.insertObject(key, attrLists[i], canonical)
		applied = append(applied, i)
	}
	if len(applied) == 0 {
		return statuses, api.NewBulkError(statuses)
	}

	appliedKeys := make([]sai.ObjectKey, len(applied))
	lists := make([][]sai.Attribute, len(applied))
	for j, i := range applied {
		appliedKeys[j] = keys[i]
		lists[j] = sai.CloneAttributes(attrLists[i])
	}
	results := m.bulkResults(len(appliedKeys), m.Backend.BulkCreate(appliedKeys, lists, mode))
	for j := len(applied) - 1; j >= 0; j-- {
		if results[j] == nil {
			continue
		}
		i := applied[j]
		m.undoInsert(keys[i])
		reportRollback(api.OpBulkCreate)
		statuses[i] = m.bulkElementError(api.OpBulkCreate, keys[i], results[j])
	}
	return statuses, api.NewBulkError(statuses)
}

type removedObject struct {
	index     int
	record    *objdb.Record
	canonical string
}

// BulkRemove removes objects of one type. Switches can't be removed
// in bulk.
func (m *Meta) BulkRemove(keys []sai.ObjectKey, mode api.BulkMode) (statuses []error, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return nil, err
	}
	objectType := bulkObjectType(keys)
	done := m.trackOperation(api.OpBulkRemove, objectType, nil)
	defer func() { done(nil, err) }()

	if err = m.checkBulkRequest(len(keys), mode); err != nil {
		return nil, err
	}
	if err = checkBulkKeys(keys); err != nil {
		return nil, err
	}
	if objectType == sai.ObjectTypeSwitch {
		return nil, api.NewError(api.InvalidArgument, "switches can't be removed in bulk")
	}

	statuses = make([]error, len(keys))
	var removed []removedObject
	// objects referenced by elements removed earlier in this request
	released := make(map[sai.ObjectID]sai.ObjectKey)
	stopped := false
	for i, key := range keys {
		if stopped {
			statuses[i] = notExecuted(objectType, key)
			continue
		}
		if verr := m.validateRemove(key); verr != nil {
			statuses[i] = verr
			stopped = mode == api.BulkStopOnError
			continue
		}
		if oid, isOID := key.(sai.ObjectID); isOID {
			if owner, isReleased := released[oid]; isReleased {
				statuses[i] = api.NewError(api.StillReferenced,
					"object is referenced by %v removed in the same bulk request", owner).WithObject(objectType, key)
				stopped = mode == api.BulkStopOnError
				continue
			}
		}
		canonical, _ := m.keys.Erase(key)
		rec, rerr := m.db.Remove(key)
		if rerr != nil {
			m.fatal(rerr)
		}
		for _, ref := range m.db.References(rec) {
			released[ref] = key
		}
		removed = append(removed, removedObject{index: i, record: rec, canonical: canonical})
	}
	if len(removed) == 0 {
		return statuses, api.NewBulkError(statuses)
	}

	removedKeys := make([]sai.ObjectKey, len(removed))
	for j, r := range removed {
		removedKeys[j] = r.record.Key
	}
	results := m.bulkResults(len(removedKeys), m.Backend.BulkRemove(removedKeys, mode))
	for j := len(removed) - 1; j >= 0; j-- {
		r := removed[j]
		if results[j] == nil {
			if oid, isOID := r.record.Key.(sai.ObjectID); isOID {
				m.IDAllocator.ReleaseObjectID(oid)
			}
			continue
		}
		m.reinsert(r)
		reportRollback(api.OpBulkRemove)
		statuses[r.index] = m.bulkElementError(api.OpBulkRemove, r.record.Key, results[j])
	}
	return statuses, api.NewBulkError(statuses)
}

// reinsert reverts a tentative removal. Objects referenced by a removed
// record are never removed by the same call, so they must still exist.
func (m *Meta) reinsert(r removedObject) {
	if missing := m.db.MissingReferences(r.record); len(missing) > 0 {
		m.fatal(errors.Errorf("can't restore %v, referenced objects %v no longer exist", r.record.Key, missing))
	}
	if err := m.db.Insert(r.record); err != nil {
		m.fatal(err)
	}
	if r.canonical != "" {
		if err := m.keys.Insert(r.record.Key, r.canonical); err != nil {
			m.fatal(err)
		}
	}
}

type setChange struct {
	index int
	prev  sai.Value
}

type setTarget struct {
	key sai.ObjectKey
	id  sai.AttrID
}

// setOutcome is the value an attribute keeps after the backend answered.
type setOutcome struct {
	value    sai.Value
	reverted bool
}

// BulkSet sets one attribute per object. All objects must be of one type.
func (m *Meta) BulkSet(keys []sai.ObjectKey, attrs []sai.Attribute, mode api.BulkMode) (statuses []error, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return nil, err
	}
	objectType := bulkObjectType(keys)
	done := m.trackOperation(api.OpBulkSet, objectType, attrs)
	defer func() { done(nil, err) }()

	if err = m.checkBulkRequest(len(keys), mode); err != nil {
		return nil, err
	}
	if len(attrs) != len(keys) {
		return nil, api.NewError(api.InvalidArgument, "got %d keys but %d attributes", len(keys), len(attrs))
	}
	if err = checkBulkKeys(keys); err != nil {
		return nil, err
	}

	statuses = make([]error, len(keys))
	var changes []setChange
	stopped := false
	for i, key := range keys {
		if stopped {
			statuses[i] = notExecuted(objectType, key)
			continue
		}
		if verr := m.validateSet(key, attrs[i]); verr != nil {
			statuses[i] = verr
			stopped = mode == api.BulkStopOnError
			continue
		}
		changes = append(changes, setChange{index: i, prev: m.applySet(key, attrs[i])})
	}
	if len(changes) == 0 {
		return statuses, api.NewBulkError(statuses)
	}

	changedKeys := make([]sai.ObjectKey, len(changes))
	changedAttrs := make([]sai.Attribute, len(changes))
	for j, c := range changes {
		changedKeys[j] = keys[c.index]
		changedAttrs[j] = sai.Attribute{ID: attrs[c.index].ID, Value: sai.CloneValue(attrs[c.index].Value)}
	}
	results := m.bulkResults(len(changedKeys), m.Backend.BulkSet(changedKeys, changedAttrs, mode))

	// An attribute changed by several elements ends with the value of the
	// last element accepted by the backend, or with its value before the
	// call when none was accepted.
	outcomes := make(map[setTarget]*setOutcome)
	var targets []setTarget
	for j, c := range changes {
		target := setTarget{key: keys[c.index], id: attrs[c.index].ID}
		outcome, seen := outcomes[target]
		if !seen {
			outcome = &setOutcome{value: c.prev}
			outcomes[target] = outcome
			targets = append(targets, target)
		}
		if results[j] == nil {
			outcome.value = changedAttrs[j].Value
			outcome.reverted = false
			continue
		}
		outcome.reverted = true
		reportRollback(api.OpBulkSet)
		statuses[c.index] = m.bulkElementError(api.OpBulkSet, keys[c.index], results[j])
	}
	for _, target := range targets {
		if outcome := outcomes[target]; outcome.reverted {
			m.restoreAttribute(target.key, target.id, outcome.value)
		}
	}
	return statuses, api.NewBulkError(statuses)
}

func (m *Meta) checkBulkRequest(count int, mode api.BulkMode) error {
	if !mode.IsValid() {
		return api.NewError(api.InvalidArgument, "invalid bulk mode %v", mode)
	}
	if count == 0 {
		return api.NewError(api.InvalidArgument, "bulk request is empty")
	}
	if limit := m.config.MaxBulkSize; limit > 0 && count > int(limit) {
		return api.NewError(api.InvalidArgument, "bulk request has %d elements, limit is %d", count, limit)
	}
	return nil
}

// checkBulkKeys verifies that all keys are set and of the same type.
func checkBulkKeys(keys []sai.ObjectKey) error {
	for i, key := range keys {
		if key == nil {
			return api.NewError(api.InvalidArgument, "key #%d is nil", i)
		}
		if key.GetObjectType() != keys[0].GetObjectType() {
			return api.NewError(api.InvalidArgument, "key #%d is %v, bulk requires single object type %v",
				i, key.GetObjectType(), keys[0].GetObjectType())
		}
	}
	return nil
}

func bulkObjectType(keys []sai.ObjectKey) sai.ObjectType {
	if len(keys) == 0 {
		return sai.ObjectTypeNull
	}
	return objectTypeOf(keys[0])
}

// bulkResults normalizes statuses returned by the backend.
func (m *Meta) bulkResults(count int, results []error) []error {
	if len(results) == count {
		return results
	}
	m.Log.Errorf("backend returned %d statuses for %d elements", len(results), count)
	normalized := make([]error, count)
	for i := range normalized {
		normalized[i] = api.NewError(api.BackendFailure, "backend did not report status of the element")
	}
	return normalized
}

// bulkElementError keeps NotExecuted reported by the backend and wraps
// any other failure.
func (m *Meta) bulkElementError(op api.Operation, key sai.ObjectKey, err error) error {
	if api.IsKind(err, api.NotExecuted) || api.IsKind(err, api.BackendFailure) {
		return err
	}
	if status, isStatus := err.(sai.Status); isStatus && status == sai.StatusNotExecuted {
		return notExecuted(objectTypeOf(key), key)
	}
	return m.backendError(op, key, err)
}

func notExecuted(objectType sai.ObjectType, key sai.ObjectKey) error {
	return api.NewError(api.NotExecuted, "not executed after a previous failure").WithObject(objectType, key)
}
