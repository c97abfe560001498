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

// Package objdb stores created objects together with the counts
// of references between them.
package objdb

import (
	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/utils"
)

// DB is the object database. It is not safe for concurrent use,
// the owner serializes the access.
type DB struct {
	extractor ReferenceExtractor
	objects   map[sai.ObjectType]map[sai.ObjectKey]*Record
	refs      *RefTracker
}

// NewDB returns an empty database.
func NewDB(extractor ReferenceExtractor) *DB {
	return &DB{
		extractor: extractor,
		objects:   make(map[sai.ObjectType]map[sai.ObjectKey]*Record),
		refs:      NewRefTracker(),
	}
}

// Refs returns the reference tracker of the database.
func (db *DB) Refs() *RefTracker {
	return db.refs
}

// Insert stores a new record and counts the references it holds.
// The record is owned by the database after the call.
func (db *DB) Insert(rec *Record) error {
	if db.Exists(rec.Key) {
		return api.NewError(api.AlreadyExists, "object already exists").
			WithObject(rec.ObjectType(), rec.Key)
	}
	db.put(rec)
	if oid, isOID := rec.Key.(sai.ObjectID); isOID {
		db.refs.Track(oid)
	}
	for _, oid := range db.recordReferences(rec) {
		db.refs.Inc(oid)
	}
	return nil
}

// Lookup returns the stored record. The record must not be modified
// by the caller.
func (db *DB) Lookup(key sai.ObjectKey) (*Record, bool) {
	rec, found := db.objects[key.GetObjectType()][key]
	return rec, found
}

// Exists returns true if the object is stored.
func (db *DB) Exists(key sai.ObjectKey) bool {
	_, found := db.Lookup(key)
	return found
}

// UpdateAttribute overwrites the attribute value and returns the previous
// value (nil if the attribute was not set).
func (db *DB) UpdateAttribute(key sai.ObjectKey, attr sai.Attribute) (sai.Value, error) {
	rec, found := db.Lookup(key)
	if !found {
		return nil, api.NewError(api.NotFound, "object does not exist").
			WithObject(key.GetObjectType(), key)
	}
	prev := rec.Attrs[attr.ID]
	value := sai.CloneValue(attr.Value)

	// increment first, the new value may point to the same objects
	for _, oid := range db.extractor.AttrReferences(rec.ObjectType(), attr.ID, value) {
		db.refs.Inc(oid)
	}
	if prev != nil {
		for _, oid := range db.extractor.AttrReferences(rec.ObjectType(), attr.ID, prev) {
			db.refs.Dec(oid)
		}
	}
	rec.Attrs[attr.ID] = value
	return prev, nil
}

// RemoveAttribute deletes the attribute from the record.
func (db *DB) RemoveAttribute(key sai.ObjectKey, id sai.AttrID) error {
	rec, found := db.Lookup(key)
	if !found {
		return api.NewError(api.NotFound, "object does not exist").
			WithObject(key.GetObjectType(), key)
	}
	prev, has := rec.Attrs[id]
	if !has {
		return nil
	}
	for _, oid := range db.extractor.AttrReferences(rec.ObjectType(), id, prev) {
		db.refs.Dec(oid)
	}
	delete(rec.Attrs, id)
	return nil
}

// Remove deletes the record and releases the references it holds.
func (db *DB) Remove(key sai.ObjectKey) (*Record, error) {
	rec, found := db.Lookup(key)
	if !found {
		return nil, api.NewError(api.NotFound, "object does not exist").
			WithObject(key.GetObjectType(), key)
	}
	oid, isOID := key.(sai.ObjectID)
	if isOID && !db.refs.CanRemove(oid) {
		return nil, api.NewError(api.StillReferenced, "object is referenced %d times", db.refs.Count(oid)).
			WithObject(key.GetObjectType(), key)
	}
	for _, ref := range db.recordReferences(rec) {
		db.refs.Dec(ref)
	}
	if isOID {
		db.refs.Untrack(oid)
	}
	db.drop(key)
	return rec, nil
}

// PurgeSwitch removes the switch and every object created on it
// regardless of references. Removed records are returned.
func (db *DB) PurgeSwitch(switchID sai.ObjectID) []*Record {
	var removed []*Record
	db.Walk(func(rec *Record) bool {
		if rec.Key.GetSwitchID() == switchID {
			removed = append(removed, rec)
		}
		return true
	})
	for _, rec := range removed {
		for _, ref := range db.recordReferences(rec) {
			if db.refs.IsTracked(ref) {
				db.refs.Dec(ref)
			}
		}
	}
	for _, rec := range removed {
		if oid, isOID := rec.Key.(sai.ObjectID); isOID {
			db.refs.Untrack(oid)
		}
		db.drop(rec.Key)
	}
	return removed
}

// Keys returns keys of all objects of the type in a stable order.
func (db *DB) Keys(objectType sai.ObjectType) []sai.ObjectKey {
	keys := make([]sai.ObjectKey, 0, len(db.objects[objectType]))
	for key := range db.objects[objectType] {
		keys = append(keys, key)
	}
	utils.SortKeys(keys)
	return keys
}

// Iterate calls fn for every object of the type in a stable order
// until fn returns false.
func (db *DB) Iterate(objectType sai.ObjectType, fn func(rec *Record) bool) {
	for _, key := range db.Keys(objectType) {
		if !fn(db.objects[objectType][key]) {
			return
		}
	}
}

// Walk calls fn for every stored object ordered by type and key
// until fn returns false.
func (db *DB) Walk(fn func(rec *Record) bool) {
	for _, objectType := range sai.AllObjectTypes() {
		stop := false
		db.Iterate(objectType, func(rec *Record) bool {
			stop = !fn(rec)
			return !stop
		})
		if stop {
			return
		}
	}
}

// Count returns the number of stored objects of the type.
func (db *DB) Count(objectType sai.ObjectType) int {
	return len(db.objects[objectType])
}

// Len returns the number of all stored objects.
func (db *DB) Len() int {
	var n int
	for _, byKey := range db.objects {
		n += len(byKey)
	}
	return n
}

// RefCount returns the number of references to the object.
func (db *DB) RefCount(oid sai.ObjectID) uint64 {
	return db.refs.Count(oid)
}

// Records returns copies of all records ordered by type and key.
func (db *DB) Records() []*Record {
	var records []*Record
	db.Walk(func(rec *Record) bool {
		records = append(records, rec.Clone())
		return true
	})
	return records
}

// Rebuild replaces the content of an empty database with the records
// and recomputes all reference counts. Every reference must point
// to one of the records.
func (db *DB) Rebuild(records []*Record) error {
	if db.Len() > 0 {
		return errors.New("database is not empty")
	}
	for _, rec := range records {
		if db.Exists(rec.Key) {
			db.reset()
			return errors.Errorf("duplicate record %v", rec.Key)
		}
		db.put(rec.Clone())
		if oid, isOID := rec.Key.(sai.ObjectID); isOID {
			db.refs.Track(oid)
		}
	}
	for _, rec := range records {
		for _, oid := range db.recordReferences(rec) {
			if !db.refs.IsTracked(oid) {
				db.reset()
				return errors.Errorf("%v references unknown object %v", rec.Key, oid)
			}
			db.refs.Inc(oid)
		}
	}
	return nil
}

// MissingReferences returns objects referenced by the record which are
// not stored in the database.
func (db *DB) MissingReferences(rec *Record) []sai.ObjectID {
	var missing []sai.ObjectID
	for _, oid := range db.recordReferences(rec) {
		if !db.refs.IsTracked(oid) {
			missing = append(missing, oid)
		}
	}
	return missing
}

// References returns objects referenced by the record key and attributes.
func (db *DB) References(rec *Record) []sai.ObjectID {
	return db.recordReferences(rec)
}

// CountReferences recounts references by scanning every record.
func (db *DB) CountReferences() map[sai.ObjectID]uint64 {
	counts := make(map[sai.ObjectID]uint64)
	db.Walk(func(rec *Record) bool {
		if oid, isOID := rec.Key.(sai.ObjectID); isOID {
			if _, counted := counts[oid]; !counted {
				counts[oid] = 0
			}
		}
		for _, ref := range db.recordReferences(rec) {
			counts[ref]++
		}
		return true
	})
	return counts
}

// CheckReferences compares the tracked reference counts with a full scan.
func (db *DB) CheckReferences() error {
	scanned := db.CountReferences()
	tracked := db.refs.Snapshot()
	if len(scanned) != len(tracked) {
		return errors.Errorf("tracking %d objects, scan found %d", len(tracked), len(scanned))
	}
	for oid, count := range scanned {
		trackedCount, isTracked := tracked[oid]
		if !isTracked {
			return errors.Errorf("%v is referenced but not tracked", oid)
		}
		if trackedCount != count {
			return errors.Errorf("%v has %d tracked references, scan found %d", oid, trackedCount, count)
		}
	}
	return nil
}

func (db *DB) recordReferences(rec *Record) []sai.ObjectID {
	refs := db.extractor.KeyReferences(rec.Key)
	for id, value := range rec.Attrs {
		refs = append(refs, db.extractor.AttrReferences(rec.ObjectType(), id, value)...)
	}
	return refs
}

func (db *DB) put(rec *Record) {
	byKey, has := db.objects[rec.ObjectType()]
	if !has {
		byKey = make(map[sai.ObjectKey]*Record)
		db.objects[rec.ObjectType()] = byKey
	}
	byKey[rec.Key] = rec
}

func (db *DB) drop(key sai.ObjectKey) {
	byKey := db.objects[key.GetObjectType()]
	delete(byKey, key)
	if len(byKey) == 0 {
		delete(db.objects, key.GetObjectType())
	}
}

func (db *DB) reset() {
	db.objects = make(map[sai.ObjectType]map[sai.ObjectKey]*Record)
	db.refs = NewRefTracker()
}
