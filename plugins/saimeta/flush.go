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
	"github.com/ligato/sai-agent/plugins/saimeta/internal/utils"
)

// fdbFilter selects FDB entries of one switch. Null IDs match any value.
type fdbFilter struct {
	switchID   sai.ObjectID
	bvID       sai.ObjectID
	bridgePort sai.ObjectID
	entryType  int32
}

func (f fdbFilter) matches(rec *objdb.Record) bool {
	entry, isFdb := rec.Key.(sai.FdbEntry)
	if !isFdb || entry.SwitchID != f.switchID {
		return false
	}
	if !f.bvID.IsNull() && entry.BvID != f.bvID {
		return false
	}
	if !f.bridgePort.IsNull() {
		if port, has := rec.Get(sai.FdbEntryAttrBridgePortID); !has || port != sai.Value(f.bridgePort) {
			return false
		}
	}
	if f.entryType == sai.FdbFlushEntryTypeAll {
		return true
	}
	entryType := sai.FdbEntryTypeDynamic
	if value, has := rec.Get(sai.FdbEntryAttrType); has {
		if s32, isS32 := value.(sai.S32); isS32 {
			entryType = int32(s32)
		}
	}
	switch f.entryType {
	case sai.FdbFlushEntryTypeDynamic:
		return entryType == sai.FdbEntryTypeDynamic
	case sai.FdbFlushEntryTypeStatic:
		return entryType == sai.FdbEntryTypeStatic
	}
	return false
}

// FlushFdbEntries removes FDB entries of the switch matching the filter
// attributes (SAI_FDB_FLUSH_ATTR_*). Without ENTRY_TYPE only dynamic
// entries are flushed.
func (m *Meta) FlushFdbEntries(switchID sai.ObjectID, attrs []sai.Attribute) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpFlushFdb, sai.ObjectTypeFdbFlush, attrs)
	defer func() { done(keyOrNil(switchID), err) }()

	filter, err := m.validateFlush(switchID, attrs)
	if err != nil {
		return err
	}

	removed := m.removeFdbEntries(filter)
	if berr := m.Backend.FlushFdbEntries(switchID, sai.CloneAttributes(attrs)); berr != nil {
		for i := len(removed) - 1; i >= 0; i-- {
			m.reinsert(removedObject{record: removed[i]})
		}
		reportRollback(api.OpFlushFdb)
		return m.backendError(api.OpFlushFdb, switchID, berr)
	}
	m.Log.Debugf("flushed %d FDB entries on switch %v", len(removed), switchID)
	return nil
}

func (m *Meta) validateFlush(switchID sai.ObjectID, attrs []sai.Attribute) (fdbFilter, error) {
	filter := fdbFilter{switchID: switchID, entryType: sai.FdbFlushEntryTypeDynamic}
	objectType := sai.ObjectTypeFdbFlush
	if err := m.checkSwitch(objectType, nil, switchID); err != nil {
		return filter, err
	}
	mds, err := m.checkAttrList(objectType, nil, attrs, false)
	if err != nil {
		return filter, err
	}
	for _, attr := range attrs {
		if err := m.checkValue(objectType, nil, mds[attr.ID], attr.Value); err != nil {
			return filter, err
		}
	}
	for _, attr := range attrs {
		if err := m.checkReferences(objectType, nil, switchID, mds[attr.ID], attr.Value); err != nil {
			return filter, err
		}
	}

	for _, attr := range attrs {
		switch attr.ID {
		case sai.FdbFlushAttrBvID:
			filter.bvID = attr.Value.(sai.ObjectID)
		case sai.FdbFlushAttrBridgePortID:
			filter.bridgePort = attr.Value.(sai.ObjectID)
		case sai.FdbFlushAttrEntryType:
			filter.entryType = int32(attr.Value.(sai.S32))
		}
	}
	return filter, nil
}

// removeFdbEntries removes matching entries and returns their records.
func (m *Meta) removeFdbEntries(filter fdbFilter) []*objdb.Record {
	matches := utils.NewKeySet()
	m.db.Iterate(sai.ObjectTypeFdbEntry, func(rec *objdb.Record) bool {
		if filter.matches(rec) {
			matches.Add(rec.Key)
		}
		return true
	})

	removed := make([]*objdb.Record, 0, len(matches))
	for _, key := range matches.Sorted() {
		rec, err := m.db.Remove(key)
		if err != nil {
			m.fatal(err)
		}
		removed = append(removed, rec)
	}
	return removed
}
