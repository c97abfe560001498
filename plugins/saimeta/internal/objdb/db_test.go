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
	"net/netip"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

var (
	switchID = sai.SwitchObjectID(0)
	vrID     = sai.NewObjectID(0, sai.ObjectTypeVirtualRouter, 1)
	nhID     = sai.NewObjectID(0, sai.ObjectTypeNextHop, 1)
	nh2ID    = sai.NewObjectID(0, sai.ObjectTypeNextHop, 2)
	route    = sai.RouteEntry{
		SwitchID:    switchID,
		VrID:        vrID,
		Destination: netip.MustParsePrefix("10.0.0.0/24"),
	}
)

func newTestDB() *DB {
	db := NewDB(NewMetadataExtractor(saimetadata.DefaultRegistry()))
	Expect(db.Insert(NewRecord(switchID, nil))).To(Succeed())
	Expect(db.Insert(NewRecord(vrID, nil))).To(Succeed())
	Expect(db.Insert(NewRecord(nhID, nil))).To(Succeed())
	Expect(db.Insert(NewRecord(nh2ID, nil))).To(Succeed())
	return db
}

func TestInsertCountsReferences(t *testing.T) {
	RegisterTestingT(t)

	db := newTestDB()
	err := db.Insert(NewRecord(route, []sai.Attribute{
		{ID: sai.RouteEntryAttrNextHopID, Value: nhID},
	}))
	Expect(err).ToNot(HaveOccurred())
	Expect(db.RefCount(vrID)).To(BeEquivalentTo(1))
	Expect(db.RefCount(nhID)).To(BeEquivalentTo(1))
	Expect(db.RefCount(switchID)).To(BeZero())
	Expect(db.CheckReferences()).To(Succeed())

	err = db.Insert(NewRecord(route, nil))
	Expect(api.IsKind(err, api.AlreadyExists)).To(BeTrue())
}

func TestUpdateAttributeMovesReference(t *testing.T) {
	RegisterTestingT(t)

	db := newTestDB()
	Expect(db.Insert(NewRecord(route, []sai.Attribute{
		{ID: sai.RouteEntryAttrNextHopID, Value: nhID},
	}))).To(Succeed())

	prev, err := db.UpdateAttribute(route, sai.Attribute{ID: sai.RouteEntryAttrNextHopID, Value: nh2ID})
	Expect(err).ToNot(HaveOccurred())
	Expect(prev).To(Equal(sai.Value(nhID)))
	Expect(db.RefCount(nhID)).To(BeZero())
	Expect(db.RefCount(nh2ID)).To(BeEquivalentTo(1))

	// same target again
	_, err = db.UpdateAttribute(route, sai.Attribute{ID: sai.RouteEntryAttrNextHopID, Value: nh2ID})
	Expect(err).ToNot(HaveOccurred())
	Expect(db.RefCount(nh2ID)).To(BeEquivalentTo(1))

	// null is not a reference
	_, err = db.UpdateAttribute(route, sai.Attribute{ID: sai.RouteEntryAttrNextHopID, Value: sai.NullObjectID})
	Expect(err).ToNot(HaveOccurred())
	Expect(db.RefCount(nh2ID)).To(BeZero())
	Expect(db.CheckReferences()).To(Succeed())

	Expect(db.RemoveAttribute(route, sai.RouteEntryAttrNextHopID)).To(Succeed())
	rec, _ := db.Lookup(route)
	Expect(rec.Attrs).To(BeEmpty())

	_, err = db.UpdateAttribute(sai.NewObjectID(0, sai.ObjectTypePort, 9), sai.Attribute{ID: 0, Value: sai.U32(1)})
	Expect(api.IsKind(err, api.NotFound)).To(BeTrue())
}

func TestRemoveGuard(t *testing.T) {
	RegisterTestingT(t)

	db := newTestDB()
	Expect(db.Insert(NewRecord(route, []sai.Attribute{
		{ID: sai.RouteEntryAttrNextHopID, Value: nhID},
	}))).To(Succeed())

	_, err := db.Remove(vrID)
	Expect(api.IsKind(err, api.StillReferenced)).To(BeTrue())
	Expect(db.Exists(vrID)).To(BeTrue())

	_, err = db.Remove(route)
	Expect(err).ToNot(HaveOccurred())
	Expect(db.RefCount(vrID)).To(BeZero())

	rec, err := db.Remove(vrID)
	Expect(err).ToNot(HaveOccurred())
	Expect(rec.Key).To(Equal(sai.ObjectKey(vrID)))
	Expect(db.Refs().IsTracked(vrID)).To(BeFalse())

	_, err = db.Remove(vrID)
	Expect(api.IsKind(err, api.NotFound)).To(BeTrue())
}

func TestUnderflowIsFatal(t *testing.T) {
	RegisterTestingT(t)

	rt := NewRefTracker()
	rt.Track(nhID)
	Expect(func() { rt.Dec(nhID) }).To(Panic())
	Expect(func() { rt.Inc(nh2ID) }).To(Panic())
}

func TestPurgeSwitch(t *testing.T) {
	RegisterTestingT(t)

	db := newTestDB()
	otherSwitch := sai.SwitchObjectID(1)
	otherVr := sai.NewObjectID(1, sai.ObjectTypeVirtualRouter, 1)
	Expect(db.Insert(NewRecord(otherSwitch, nil))).To(Succeed())
	Expect(db.Insert(NewRecord(otherVr, nil))).To(Succeed())
	Expect(db.Insert(NewRecord(route, []sai.Attribute{
		{ID: sai.RouteEntryAttrNextHopID, Value: nhID},
	}))).To(Succeed())

	removed := db.PurgeSwitch(switchID)
	Expect(removed).To(HaveLen(5))
	Expect(db.Len()).To(Equal(2))
	Expect(db.Exists(otherVr)).To(BeTrue())
	Expect(db.CheckReferences()).To(Succeed())
}

func TestKeysAreOrdered(t *testing.T) {
	RegisterTestingT(t)

	db := newTestDB()
	Expect(db.Keys(sai.ObjectTypeNextHop)).To(Equal([]sai.ObjectKey{nhID, nh2ID}))

	var visited []sai.ObjectKey
	db.Walk(func(rec *Record) bool {
		visited = append(visited, rec.Key)
		return len(visited) < 2
	})
	Expect(visited).To(HaveLen(2))
	Expect(visited[0]).To(Equal(sai.ObjectKey(vrID)))
}

func TestRebuild(t *testing.T) {
	RegisterTestingT(t)

	db := newTestDB()
	Expect(db.Insert(NewRecord(route, []sai.Attribute{
		{ID: sai.RouteEntryAttrNextHopID, Value: nhID},
	}))).To(Succeed())
	records := db.Records()

	restored := NewDB(NewMetadataExtractor(saimetadata.DefaultRegistry()))
	Expect(restored.Rebuild(records)).To(Succeed())
	Expect(restored.Records()).To(Equal(records))
	Expect(restored.Refs().Snapshot()).To(Equal(db.Refs().Snapshot()))

	Expect(restored.Rebuild(records)).ToNot(Succeed())

	dangling := NewDB(NewMetadataExtractor(saimetadata.DefaultRegistry()))
	Expect(dangling.Rebuild(records[1:])).ToNot(Succeed())
	Expect(dangling.Len()).To(BeZero())
}
