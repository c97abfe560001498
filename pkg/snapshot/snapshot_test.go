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

package snapshot

import (
	"io/ioutil"
	"net/netip"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

func openStore(t *testing.T) (*Store, func()) {
	dir, err := ioutil.TempDir("", "snapshot")
	Expect(err).ToNot(HaveOccurred())
	store, err := Open(filepath.Join(dir, "saimeta.db"), saimetadata.DefaultRegistry())
	Expect(err).ToNot(HaveOccurred())
	return store, func() {
		store.Close()
		os.RemoveAll(dir)
	}
}

func testRecords() []*api.ObjectRecord {
	sw := sai.SwitchObjectID(0)
	port := sai.NewObjectID(0, sai.ObjectTypePort, 1)
	vr := sai.NewObjectID(0, sai.ObjectTypeVirtualRouter, 1)
	rif := sai.NewObjectID(0, sai.ObjectTypeRouterInterface, 1)
	return []*api.ObjectRecord{
		{
			Key:   port,
			Attrs: []sai.Attribute{{ID: sai.PortAttrHwLaneList, Value: sai.NewU32List(1, 2)}},
			Discovered: true,
		},
		{
			Key: sai.RouteEntry{SwitchID: sw, VrID: vr, Destination: netip.MustParsePrefix("10.0.0.0/24")},
			Attrs: []sai.Attribute{
				{ID: sai.RouteEntryAttrNextHopID, Value: rif},
			},
		},
		{
			Key: rif,
			Attrs: []sai.Attribute{
				{ID: sai.RouterInterfaceAttrVirtualRouterID, Value: vr},
				{ID: sai.RouterInterfaceAttrType, Value: sai.S32(sai.RouterInterfaceTypePort)},
				{ID: sai.RouterInterfaceAttrPortID, Value: port},
			},
		},
		{
			Key:   sw,
			Attrs: []sai.Attribute{{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)}},
		},
		{Key: vr, Discovered: true},
	}
}

func TestSaveAndLoad(t *testing.T) {
	RegisterTestingT(t)

	store, cleanup := openStore(t)
	defer cleanup()

	records := testRecords()
	Expect(store.Save(records)).To(Succeed())

	loaded, err := store.Load()
	Expect(err).ToNot(HaveOccurred())
	Expect(loaded).To(HaveLen(len(records)))

	byKey := make(map[string]*api.ObjectRecord)
	for _, rec := range loaded {
		byKey[rec.Key.String()] = rec
	}
	for _, rec := range records {
		diff := cmp.Diff(rec, byKey[rec.Key.String()],
			cmp.Comparer(func(a, b netip.Prefix) bool { return a == b }))
		Expect(diff).To(BeEmpty())
	}
}

func TestSaveReplacesSnapshot(t *testing.T) {
	RegisterTestingT(t)

	store, cleanup := openStore(t)
	defer cleanup()

	Expect(store.Save(testRecords())).To(Succeed())
	Expect(store.Save(testRecords()[3:4])).To(Succeed())

	loaded, err := store.Load()
	Expect(err).ToNot(HaveOccurred())
	Expect(loaded).To(HaveLen(1))
	Expect(loaded[0].Key).To(Equal(sai.ObjectKey(sai.SwitchObjectID(0))))

	Expect(store.Save(nil)).To(Succeed())
	loaded, err = store.Load()
	Expect(err).ToNot(HaveOccurred())
	Expect(loaded).To(BeEmpty())
}

func TestReopen(t *testing.T) {
	RegisterTestingT(t)

	store, cleanup := openStore(t)
	defer cleanup()
	Expect(store.Save(testRecords())).To(Succeed())
	Expect(store.Close()).To(Succeed())

	reopened, err := Open(store.Path, saimetadata.DefaultRegistry())
	Expect(err).ToNot(HaveOccurred())
	defer reopened.Close()
	loaded, err := reopened.Load()
	Expect(err).ToNot(HaveOccurred())
	Expect(loaded).To(HaveLen(5))
}
