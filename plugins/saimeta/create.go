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
	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/objdb"
)

// Create validates and creates an object identified by an object ID.
// The switch argument is ignored when a switch is created.
func (m *Meta) Create(objectType sai.ObjectType, switchID sai.ObjectID, attrs []sai.Attribute) (oid sai.ObjectID, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return sai.NullObjectID, err
	}
	done := m.trackOperation(api.OpCreate, objectType, attrs)
	defer func() { done(keyOrNil(oid), err) }()

	info, err := m.checkObjectType(objectType)
	if err != nil {
		return sai.NullObjectID, err
	}
	if info.IsNonObjectID {
		return sai.NullObjectID, api.NewError(api.InvalidArgument,
			"object type %v is identified by an entry, use CreateEntry", objectType)
	}
	if objectType == sai.ObjectTypeSwitch {
		return m.createSwitch(attrs)
	}

	if err = m.checkSwitch(objectType, nil, switchID); err != nil {
		return sai.NullObjectID, err
	}
	canonical, err := m.validateCreate(objectType, switchID, nil, attrs)
	if err != nil {
		return sai.NullObjectID, err
	}
	oid, err = m.IDAllocator.AllocateObjectID(objectType, switchID)
	if err != nil {
		return sai.NullObjectID, allocationError(objectType, err)
	}

	m.insertObject(oid, attrs, canonical)
	if berr := m.Backend.Create(oid, sai.CloneAttributes(attrs)); berr != nil {
		m.undoInsert(oid)
		m.IDAllocator.ReleaseObjectID(oid)
		reportRollback(api.OpCreate)
		return sai.NullObjectID, m.backendError(api.OpCreate, oid, berr)
	}
	return oid, nil
}

func (m *Meta) createSwitch(attrs []sai.Attribute) (sai.ObjectID, error) {
	if _, err := m.validateCreate(sai.ObjectTypeSwitch, sai.NullObjectID, nil, attrs); err != nil {
		return sai.NullObjectID, err
	}
	switchID, err := m.IDAllocator.AllocateSwitchID()
	if err != nil {
		return sai.NullObjectID, allocationError(sai.ObjectTypeSwitch, err)
	}

	m.insertObject(switchID, attrs, "")
	if berr := m.Backend.Create(switchID, sai.CloneAttributes(attrs)); berr != nil {
		m.undoInsert(switchID)
		m.IDAllocator.ReleaseObjectID(switchID)
		reportRollback(api.OpCreate)
		return sai.NullObjectID, m.backendError(api.OpCreate, switchID, berr)
	}

	m.Log.Infof("switch %v created", switchID)
	m.discoverSwitch(switchID)
	return switchID, nil
}

// CreateEntry validates and creates an object identified by a structured
// key (FDB, route or neighbor entry).
func (m *Meta) CreateEntry(key sai.ObjectKey, attrs []sai.Attribute) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpCreate, objectTypeOf(key), attrs)
	defer func() { done(key, err) }()

	if err = m.validateCreateEntry(key, attrs); err != nil {
		return err
	}
	canonical, err := m.validateCreate(key.GetObjectType(), key.GetSwitchID(), key, attrs)
	if err != nil {
		return err
	}

	m.insertObject(key, attrs, canonical)
	if berr := m.Backend.Create(key, sai.CloneAttributes(attrs)); berr != nil {
		m.undoInsert(key)
		reportRollback(api.OpCreate)
		return m.backendError(api.OpCreate, key, berr)
	}
	return nil
}

// validateCreateEntry checks the structured key of a new entry.
func (m *Meta) validateCreateEntry(key sai.ObjectKey, attrs []sai.Attribute) error {
	if key == nil {
		return api.NewError(api.InvalidArgument, "entry key is nil")
	}
	if _, isOID := key.(sai.ObjectID); isOID {
		return api.NewError(api.InvalidArgument, "%v is not an entry, use Create", key)
	}
	info, err := m.checkObjectType(key.GetObjectType())
	if err != nil {
		return err
	}
	if err := m.checkEntryKey(info, key); err != nil {
		return err
	}
	if m.db.Exists(key) {
		return api.NewError(api.AlreadyExists, "entry already exists").
			WithObject(key.GetObjectType(), key)
	}
	return nil
}

// insertObject stores a validated object. Failure means the validation
// missed something and the state can't be trusted anymore.
func (m *Meta) insertObject(key sai.ObjectKey, attrs []sai.Attribute, canonical string) {
	if err := m.db.Insert(objdb.NewRecord(key, attrs)); err != nil {
		m.fatal(err)
	}
	if canonical != "" {
		if err := m.keys.Insert(key, canonical); err != nil {
			m.fatal(err)
		}
	}
}

// undoInsert reverts insertObject.
func (m *Meta) undoInsert(key sai.ObjectKey) {
	m.keys.Erase(key)
	if _, err := m.db.Remove(key); err != nil {
		m.fatal(err)
	}
}

// dropObject deletes the object after the backend removed it. Removing
// a switch drops every object created on it.
func (m *Meta) dropObject(key sai.ObjectKey) {
	oid, isOID := key.(sai.ObjectID)
	if isOID && oid.GetObjectType() == sai.ObjectTypeSwitch {
		purged := m.db.PurgeSwitch(oid)
		m.keys.EraseSwitch(oid)
		m.IDAllocator.ReleaseObjectID(oid)
		m.Log.Infof("switch %v removed together with %d objects", oid, len(purged)-1)
		return
	}
	m.keys.Erase(key)
	if _, err := m.db.Remove(key); err != nil {
		m.fatal(err)
	}
	if isOID {
		m.IDAllocator.ReleaseObjectID(oid)
	}
}

// backendError wraps failure reported by the backend.
func (m *Meta) backendError(op api.Operation, key sai.ObjectKey, err error) error {
	m.Log.Warnf("backend %s of %v failed: %v", op, keyString(key), err)
	return api.NewError(api.BackendFailure, "backend %s failed", op).
		WithObject(objectTypeOf(key), key).WithCause(err)
}

func allocationError(objectType sai.ObjectType, err error) error {
	return api.NewError(api.BackendFailure, "can't allocate object ID: %v", err).
		WithObject(objectType, nil).WithCause(sai.StatusInsufficientResources)
}

// discoverSwitch learns objects the switch created on its own (ports,
// default VLAN, default virtual router, ...) from its read-only attributes.
func (m *Meta) discoverSwitch(switchID sai.ObjectID) {
	info := m.Registry.ObjectTypeInfo(sai.ObjectTypeSwitch)
	for _, md := range info.Attrs {
		if !md.IsReadOnly() || !md.IsObjectReference() {
			continue
		}
		attrs := []sai.Attribute{{ID: md.AttrID}}
		if err := m.Backend.Get(switchID, attrs); err != nil {
			m.Log.Debugf("switch %v does not report %s: %v", switchID, md.Name, err)
			continue
		}
		if attrs[0].Value == nil {
			continue
		}
		for _, oid := range objdb.ValueReferences(attrs[0].Value) {
			m.snoopObject(oid)
		}
	}
	m.Log.Debugf("discovered %d objects on switch %v", m.db.Len()-1, switchID)
}

// snoopObject records an object reported by the backend which was not
// created through the meta layer. KEY attributes of the object are read
// from the backend so that its identity can't be created twice.
func (m *Meta) snoopObject(oid sai.ObjectID) {
	if oid.IsNull() || m.db.Exists(oid) {
		return
	}
	objectType := oid.GetObjectType()
	info := m.Registry.ObjectTypeInfo(objectType)
	if info == nil || info.IsNonObjectID || info.IsPseudo || objectType == sai.ObjectTypeSwitch {
		m.Log.Warnf("backend reported object %v of unexpected type %v", oid, objectType)
		return
	}
	if !m.db.Exists(oid.GetSwitchID()) {
		m.Log.Warnf("backend reported object %v of unknown switch", oid)
		return
	}

	rec := objdb.NewRecord(oid, nil)
	rec.Discovered = true
	if err := m.db.Insert(rec); err != nil {
		m.fatal(err)
	}
	m.Log.Debugf("snooped object %v", oid)

	keyMds := m.Registry.KeyAttributes(objectType)
	if len(keyMds) == 0 {
		return
	}
	query := make([]sai.Attribute, len(keyMds))
	for i, md := range keyMds {
		query[i].ID = md.AttrID
	}
	if err := m.Backend.Get(oid, query); err != nil {
		m.Log.Debugf("can't read key attributes of %v: %v", oid, err)
		return
	}

	var stored []sai.Attribute
	for i, attr := range query {
		md := keyMds[i]
		if attr.Value == nil {
			continue
		}
		if err := m.checkValue(objectType, oid, md, attr.Value); err != nil {
			m.Log.Warnf("backend reported invalid key of %v: %v", oid, err)
			continue
		}
		if !m.resolveReported(md.AllowedObjectTypes, attr.Value) {
			continue
		}
		if _, err := m.db.UpdateAttribute(oid, attr); err != nil {
			m.fatal(err)
		}
		stored = append(stored, attr)
	}
	if len(stored) != len(keyMds) {
		return
	}
	canonical := m.keys.ConstructKey(oid.GetSwitchID(), objectType, stored)
	if owner, inUse := m.keys.Lookup(canonical); inUse {
		m.Log.Warnf("discovered object %v has the same key as %v", oid, owner)
		return
	}
	if err := m.keys.Insert(oid, canonical); err != nil {
		m.fatal(err)
	}
}

// resolveReported snoops objects referenced by a value reported by the
// backend. Returns false if the value can't be stored because some
// reference is unknown or of a disallowed type.
func (m *Meta) resolveReported(allowed []sai.ObjectType, value sai.Value) bool {
	for _, ref := range objdb.ValueReferences(value) {
		m.snoopObject(ref)
		if !m.db.Exists(ref) || !typeAllowed(allowed, ref.GetObjectType()) {
			m.Log.Warnf("backend reported reference to unusable object %v", ref)
			return false
		}
	}
	return true
}

func keyOrNil(oid sai.ObjectID) sai.ObjectKey {
	if oid.IsNull() {
		return nil
	}
	return oid
}
