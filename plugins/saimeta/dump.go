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
	"bufio"
	"fmt"
	"io"

	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/keymap"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/objdb"
)

// Walk calls fn with a copy of every stored object ordered by object type
// and key until fn returns false.
func (m *Meta) Walk(fn func(rec *api.ObjectRecord) bool) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if m.checkUsable() != nil {
		return
	}
	m.db.Walk(func(rec *objdb.Record) bool {
		return fn(m.toObjectRecord(rec))
	})
}

// Records returns copies of all stored objects.
func (m *Meta) Records() []*api.ObjectRecord {
	var records []*api.ObjectRecord
	m.Walk(func(rec *api.ObjectRecord) bool {
		records = append(records, rec)
		return true
	})
	return records
}

// Dump writes all stored objects in the text form, one attribute per line.
func (m *Meta) Dump(w io.Writer) error {
	bw := bufio.NewWriter(w)
	m.Walk(func(rec *api.ObjectRecord) bool {
		objectType := rec.ObjectType()
		if len(rec.Attrs) == 0 {
			fmt.Fprintf(bw, "%v %v\n", objectType, rec.Key)
			return true
		}
		for _, attr := range rec.Attrs {
			md := m.Registry.LookupAttribute(objectType, attr.ID)
			fmt.Fprintf(bw, "%v %v %s %s\n", objectType, rec.Key, md.Name,
				saimetadata.SerializeAttrValue(md, attr.Value))
		}
		return true
	})
	return bw.Flush()
}

// ObjectCount returns the number of stored objects of the type.
func (m *Meta) ObjectCount(objectType sai.ObjectType) int {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if m.checkUsable() != nil {
		return 0
	}
	return m.db.Count(objectType)
}

// ReferenceCount returns the number of references to the object.
func (m *Meta) ReferenceCount(key sai.ObjectKey) uint64 {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	oid, isOID := key.(sai.ObjectID)
	if m.checkUsable() != nil || !isOID {
		return 0
	}
	return m.db.RefCount(oid)
}

// CanonicalKeys returns canonical keys of all keyed objects mapped
// to their owners.
func (m *Meta) CanonicalKeys() map[string]sai.ObjectKey {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	keys := make(map[string]sai.ObjectKey)
	if m.checkUsable() != nil {
		return keys
	}
	for _, canonical := range m.keys.AllKeys() {
		if owner, found := m.keys.Lookup(canonical); found {
			keys[canonical] = owner
		}
	}
	return keys
}

// CheckConsistency recounts all references and compares them with
// the tracked counts. It also verifies the canonical key index.
func (m *Meta) CheckConsistency() error {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err := m.checkUsable(); err != nil {
		return err
	}
	return m.checkConsistency()
}

func (m *Meta) checkConsistency() error {
	if err := m.db.CheckReferences(); err != nil {
		return err
	}
	for _, canonical := range m.keys.AllKeys() {
		owner, _ := m.keys.Lookup(canonical)
		if !m.db.Exists(owner) {
			return errors.Errorf("key %q is owned by unknown object %v", canonical, owner)
		}
	}
	var err error
	m.db.Walk(func(rec *objdb.Record) bool {
		objectType := rec.ObjectType()
		if rec.Discovered || !m.keys.HasKeyAttributes(objectType) {
			return true
		}
		canonical := m.keys.ConstructKey(rec.Key.GetSwitchID(), objectType, rec.AttrList())
		if owner, found := m.keys.Lookup(canonical); !found || owner != rec.Key {
			err = errors.Errorf("object %v is not indexed by its key %q", rec.Key, canonical)
			return false
		}
		return true
	})
	return err
}

// mustBeConsistent panics if the state got corrupted by the operation.
func (m *Meta) mustBeConsistent(op api.Operation) {
	if err := m.checkConsistency(); err != nil {
		m.fatal(errors.Errorf("state inconsistent after %s: %v", op, err))
	}
}

// fatal reports broken invariant of the object database. The state
// can't be trusted anymore and the process is expected to restart.
func (m *Meta) fatal(err error) {
	wrapped := errors.Wrap(err, 1)
	m.Log.Error(wrapped.ErrorStack())
	panic(wrapped)
}

// Restore loads previously dumped objects into an empty engine. The
// backend is expected to already contain the objects, nothing is sent
// to it.
func (m *Meta) Restore(records []*api.ObjectRecord) error {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err := m.checkUsable(); err != nil {
		return err
	}
	if m.db.Len() > 0 {
		return api.NewError(api.InvalidArgument, "can't restore into non-empty database (%d objects)", m.db.Len())
	}

	dbRecords := make([]*objdb.Record, 0, len(records))
	for _, rec := range records {
		dbRec, err := m.restoredRecord(rec)
		if err != nil {
			return err
		}
		dbRecords = append(dbRecords, dbRec)
	}
	if err := m.db.Rebuild(dbRecords); err != nil {
		return api.NewError(api.InvalidArgument, "can't rebuild object database").WithCause(err)
	}

	for _, rec := range dbRecords {
		if oid, isOID := rec.Key.(sai.ObjectID); isOID {
			m.IDAllocator.MarkAllocated(oid)
		}
		objectType := rec.ObjectType()
		if !m.keys.HasKeyAttributes(objectType) {
			continue
		}
		attrs := rec.AttrList()
		values := attrValues(attrs)
		complete := true
		for _, md := range m.Registry.KeyAttributes(objectType) {
			if _, has := values[md.AttrID]; !has {
				complete = false
			}
		}
		if !complete {
			if !rec.Discovered {
				m.resetState()
				return api.NewError(api.MissingMandatoryAttribute, "restored object lacks key attributes").
					WithObject(objectType, rec.Key)
			}
			continue
		}
		canonical := m.keys.ConstructKey(rec.Key.GetSwitchID(), objectType, attrs)
		if err := m.keys.Insert(rec.Key, canonical); err != nil {
			m.resetState()
			return api.NewError(api.DuplicateKey, "can't restore %v", rec.Key).WithCause(err)
		}
	}
	m.Log.Infof("restored %d objects", len(dbRecords))
	return nil
}

// resetState drops all stored objects without touching the backend.
func (m *Meta) resetState() {
	m.db = objdb.NewDB(objdb.NewMetadataExtractor(m.Registry))
	m.keys = keymap.NewAttrKeyMap(m.Log, m.Registry)
}

// restoredRecord checks that the dumped object still matches the metadata.
func (m *Meta) restoredRecord(rec *api.ObjectRecord) (*objdb.Record, error) {
	if rec == nil || rec.Key == nil {
		return nil, api.NewError(api.InvalidArgument, "restored record without key")
	}
	objectType := rec.ObjectType()
	if _, err := m.checkObjectType(objectType); err != nil {
		return nil, err
	}
	for _, attr := range rec.Attrs {
		md := m.Registry.LookupAttribute(objectType, attr.ID)
		if md == nil {
			return nil, api.NewError(api.UnknownAttribute, "unknown attribute %d", attr.ID).
				WithObject(objectType, rec.Key)
		}
		if err := m.checkValue(objectType, rec.Key, md, attr.Value); err != nil {
			return nil, err
		}
	}
	dbRec := objdb.NewRecord(rec.Key, rec.Attrs)
	dbRec.Discovered = rec.Discovered
	return dbRec, nil
}

func (m *Meta) toObjectRecord(rec *objdb.Record) *api.ObjectRecord {
	record := &api.ObjectRecord{
		Key:        rec.Key,
		Attrs:      rec.AttrList(),
		Discovered: rec.Discovered,
	}
	if oid, isOID := rec.Key.(sai.ObjectID); isOID {
		record.RefCount = m.db.RefCount(oid)
	}
	return record
}
