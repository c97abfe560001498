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
	"testing"

	"github.com/google/go-cmp/cmp"
	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// failFirst fails the first call of the operation.
func failFirst(op api.Operation) func(api.Operation, sai.ObjectKey) error {
	failed := false
	return func(called api.Operation, key sai.ObjectKey) error {
		if called == op && !failed {
			failed = true
			return sai.StatusFailure
		}
		return nil
	}
}

func (ts *testSwitch) portMtu(port sai.ObjectID) (cached, backend sai.Value) {
	attrs := []sai.Attribute{{ID: sai.PortAttrMtu}}
	Expect(ts.meta.Get(port, attrs)).To(Succeed())
	cached = attrs[0].Value
	attrs = []sai.Attribute{{ID: sai.PortAttrMtu}}
	Expect(ts.vs.Get(port, attrs)).To(Succeed())
	return cached, attrs[0].Value
}

func TestBulkSetKeepsLastAcceptedValue(t *testing.T) {
	RegisterTestingT(t)

	ts := newTestSwitch(t)
	port := ts.ports[0]
	keys := []sai.ObjectKey{port, port}
	attrs := []sai.Attribute{
		{ID: sai.PortAttrMtu, Value: sai.U32(9000)},
		{ID: sai.PortAttrMtu, Value: sai.U32(9100)},
	}

	// first change rejected, second accepted
	ts.vs.SetFaultInjector(failFirst(api.OpBulkSet))
	statuses, err := ts.meta.BulkSet(keys, attrs, api.BulkIgnoreError)
	Expect(err).To(HaveOccurred())
	expectKind(statuses[0], api.BackendFailure)
	Expect(statuses[1]).ToNot(HaveOccurred())
	cached, backend := ts.portMtu(port)
	Expect(backend).To(Equal(sai.U32(9100)))
	Expect(cached).To(Equal(backend))

	// first change accepted, second rejected
	attrs[0].Value, attrs[1].Value = sai.U32(9200), sai.U32(9300)
	calls := 0
	ts.vs.SetFaultInjector(func(op api.Operation, key sai.ObjectKey) error {
		if op != api.OpBulkSet {
			return nil
		}
		if calls++; calls == 2 {
			return sai.StatusFailure
		}
		return nil
	})
	statuses, err = ts.meta.BulkSet(keys, attrs, api.BulkIgnoreError)
	Expect(err).To(HaveOccurred())
	Expect(statuses[0]).ToNot(HaveOccurred())
	expectKind(statuses[1], api.BackendFailure)
	cached, backend = ts.portMtu(port)
	Expect(backend).To(Equal(sai.U32(9200)))
	Expect(cached).To(Equal(backend))
	Expect(ts.meta.CheckConsistency()).To(Succeed())
}

func TestBulkSetRollsBack(t *testing.T) {
	RegisterTestingT(t)

	ts := newTestSwitch(t)
	keys := []sai.ObjectKey{ts.ports[0], ts.ports[1], ts.ports[0]}
	attrs := []sai.Attribute{
		{ID: sai.PortAttrMtu, Value: sai.U32(9000)},
		{ID: sai.PortAttrMtu, Value: sai.U32(9100)},
		{ID: sai.PortAttrMtu, Value: sai.U32(9200)},
	}

	before := ts.meta.Records()
	ts.vs.SetFaultInjector(failFirst(api.OpBulkSet))
	statuses, err := ts.meta.BulkSet(keys, attrs, api.BulkStopOnError)
	Expect(err).To(HaveOccurred())
	expectKind(statuses[0], api.BackendFailure)
	expectKind(statuses[1], api.NotExecuted)
	expectKind(statuses[2], api.NotExecuted)
	Expect(cmp.Diff(before, ts.meta.Records(), netipComparers)).To(BeEmpty())
	Expect(ts.meta.CheckConsistency()).To(Succeed())
}

func TestBulkRemoveRollsBack(t *testing.T) {
	RegisterTestingT(t)

	ts := newTestSwitch(t)
	vlans := []sai.ObjectKey{ts.createVlan(20), ts.createVlan(21), ts.createVlan(22)}

	// every element rejected
	before := ts.meta.Records()
	keysBefore := ts.meta.CanonicalKeys()
	ts.vs.SetFaultInjector(failFirst(api.OpBulkRemove))
	statuses, err := ts.meta.BulkRemove(vlans, api.BulkStopOnError)
	Expect(err).To(HaveOccurred())
	expectKind(statuses[0], api.BackendFailure)
	expectKind(statuses[1], api.NotExecuted)
	expectKind(statuses[2], api.NotExecuted)
	Expect(cmp.Diff(before, ts.meta.Records(), netipComparers)).To(BeEmpty())
	Expect(ts.meta.CanonicalKeys()).To(Equal(keysBefore))

	// only the middle element rejected
	ts.vs.SetFaultInjector(func(op api.Operation, key sai.ObjectKey) error {
		if op == api.OpBulkRemove && key == vlans[1] {
			return sai.StatusFailure
		}
		return nil
	})
	statuses, err = ts.meta.BulkRemove(vlans, api.BulkIgnoreError)
	Expect(err).To(HaveOccurred())
	Expect(statuses[0]).ToNot(HaveOccurred())
	expectKind(statuses[1], api.BackendFailure)
	Expect(statuses[2]).ToNot(HaveOccurred())

	var expected []*api.ObjectRecord
	for _, rec := range before {
		if rec.Key != vlans[0] && rec.Key != vlans[2] {
			expected = append(expected, rec)
		}
	}
	Expect(cmp.Diff(expected, ts.meta.Records(), netipComparers)).To(BeEmpty())
	Expect(ts.meta.CanonicalKeys()).To(ContainElement(vlans[1]))
	Expect(ts.meta.CanonicalKeys()).ToNot(ContainElement(vlans[0]))
	Expect(ts.vs.HasObject(vlans[1])).To(BeTrue())
	Expect(ts.meta.CheckConsistency()).To(Succeed())

	// the key of the restored VLAN is still taken
	_, err = ts.meta.Create(sai.ObjectTypeVlan, ts.switchID, []sai.Attribute{
		{ID: sai.VlanAttrVlanID, Value: sai.U16(21)},
	})
	expectKind(err, api.DuplicateKey)
}

func TestFlushFdbEntriesRollsBack(t *testing.T) {
	RegisterTestingT(t)

	ts := newTestSwitch(t)
	vlan := ts.createVlan(100)
	bp1 := ts.createBridgePort(ts.ports[0])
	bp2 := ts.createBridgePort(ts.ports[1])
	ts.vs.SetNotificationHandler(ts.meta.ProcessNotification)

	Expect(ts.meta.CreateEntry(ts.fdbEntry("00:00:00:00:00:01", vlan), staticFdb(bp1))).To(Succeed())
	Expect(ts.vs.LearnFdbEntry(ts.fdbEntry("00:00:00:00:00:02", vlan), bp1)).To(Succeed())
	Expect(ts.vs.LearnFdbEntry(ts.fdbEntry("00:00:00:00:00:03", vlan), bp2)).To(Succeed())
	Expect(ts.meta.ObjectCount(sai.ObjectTypeFdbEntry)).To(Equal(3))

	before := ts.meta.Records()
	ts.vs.SetFaultInjector(failFirst(api.OpFlushFdb))
	err := ts.meta.FlushFdbEntries(ts.switchID, []sai.Attribute{
		{ID: sai.FdbFlushAttrEntryType, Value: sai.S32(sai.FdbFlushEntryTypeAll)},
	})
	expectKind(err, api.BackendFailure)
	Expect(cmp.Diff(before, ts.meta.Records(), netipComparers)).To(BeEmpty())
	Expect(ts.meta.ReferenceCount(bp1)).To(BeEquivalentTo(2))
	Expect(ts.meta.ReferenceCount(bp2)).To(BeEquivalentTo(1))
	Expect(ts.meta.CheckConsistency()).To(Succeed())

	// the backend accepts the retry
	Expect(ts.meta.FlushFdbEntries(ts.switchID, nil)).To(Succeed())
	Expect(ts.meta.ObjectCount(sai.ObjectTypeFdbEntry)).To(Equal(1))
}

const parentVlanExtension = `
objectTypes:
- name: SAI_OBJECT_TYPE_VLAN
  attributes:
  - id: 200
    name: SAI_VLAN_ATTR_PARENT_VLAN_ID
    type: oid
    flags: CREATE_AND_SET
    objectTypes: [SAI_OBJECT_TYPE_VLAN]
    allowNull: true
`

func TestBulkRemoveKeepsObjectsReferencedInRequest(t *testing.T) {
	RegisterTestingT(t)

	schema := saimetadata.NewBuiltinSchema()
	Expect(schema.LoadYAML([]byte(parentVlanExtension))).To(Succeed())
	schema.Freeze()
	parentAttr := schema.LookupAttributeByName("SAI_VLAN_ATTR_PARENT_VLAN_ID")
	Expect(parentAttr).ToNot(BeNil())

	ts := newTestSwitchWithRegistry(t, nil, schema)
	parent := ts.createVlan(10)
	createChild := func() sai.ObjectID {
		child, err := ts.meta.Create(sai.ObjectTypeVlan, ts.switchID, []sai.Attribute{
			{ID: sai.VlanAttrVlanID, Value: sai.U16(11)},
			{ID: parentAttr.AttrID, Value: parent},
		})
		Expect(err).ToNot(HaveOccurred())
		return child
	}

	// the child can't be restored once its parent is gone, so the parent
	// stays even though the child was removed first
	child := createChild()
	ts.vs.SetFaultInjector(func(op api.Operation, key sai.ObjectKey) error {
		if op == api.OpBulkRemove && key == sai.ObjectKey(child) {
			return sai.StatusFailure
		}
		return nil
	})
	before := ts.meta.Records()
	statuses, err := ts.meta.BulkRemove([]sai.ObjectKey{child, parent}, api.BulkIgnoreError)
	Expect(err).To(HaveOccurred())
	expectKind(statuses[0], api.BackendFailure)
	expectKind(statuses[1], api.StillReferenced)
	Expect(cmp.Diff(before, ts.meta.Records(), netipComparers)).To(BeEmpty())
	Expect(ts.meta.ReferenceCount(parent)).To(BeEquivalentTo(1))
	Expect(ts.vs.HasObject(parent)).To(BeTrue())
	Expect(ts.meta.CheckConsistency()).To(Succeed())

	ts.vs.SetFaultInjector(nil)
	statuses, err = ts.meta.BulkRemove([]sai.ObjectKey{child, parent}, api.BulkIgnoreError)
	Expect(err).To(HaveOccurred())
	Expect(statuses[0]).ToNot(HaveOccurred())
	expectKind(statuses[1], api.StillReferenced)
	Expect(ts.vs.HasObject(child)).To(BeFalse())

	// removed in a separate request the parent goes away
	Expect(ts.meta.Remove(parent)).To(Succeed())
	Expect(ts.meta.CheckConsistency()).To(Succeed())
}
