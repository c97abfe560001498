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

package vsbackend

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

func newSwitch(t *testing.T, conf Config) (*VirtualSwitch, sai.ObjectID) {
	vs := NewPlugin(UseConf(conf))
	Expect(vs.Init()).To(Succeed())

	switchID, err := vs.IDAllocator.AllocateSwitchID()
	Expect(err).ToNot(HaveOccurred())
	err = vs.Create(switchID, []sai.Attribute{{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)}})
	Expect(err).ToNot(HaveOccurred())
	return vs, switchID
}

func smallConfig() Config {
	conf := DefaultConfig()
	conf.Ports = 4
	conf.LanesPerPort = 2
	return conf
}

func TestCreateSwitchPopulatesDefaults(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())

	attrs := []sai.Attribute{
		{ID: sai.SwitchAttrNumberOfActivePorts},
		{ID: sai.SwitchAttrPortList},
		{ID: sai.SwitchAttrCPUPort},
		{ID: sai.SwitchAttrDefaultVlanID},
		{ID: sai.SwitchAttrOperStatus},
	}
	Expect(vs.Get(switchID, attrs)).To(Succeed())
	Expect(attrs[0].Value).To(Equal(sai.U32(4)))
	ports := attrs[1].Value.(sai.ObjectList)
	Expect(ports.Elements()).To(HaveLen(4))
	Expect(attrs[2].Value.(sai.ObjectID).GetObjectType()).To(Equal(sai.ObjectTypePort))
	Expect(ports.Elements()).ToNot(ContainElement(attrs[2].Value))
	Expect(attrs[4].Value).To(Equal(sai.S32(sai.SwitchOperStatusUp)))

	lanes := []sai.Attribute{{ID: sai.PortAttrHwLaneList}}
	Expect(vs.Get(ports.List[1], lanes)).To(Succeed())
	Expect(lanes[0].Value.(sai.U32List).Elements()).To(Equal([]uint32{3, 4}))

	vlanID := []sai.Attribute{{ID: sai.VlanAttrVlanID}}
	Expect(vs.Get(attrs[3].Value.(sai.ObjectID), vlanID)).To(Succeed())
	Expect(vlanID[0].Value).To(Equal(sai.U16(1)))

	// 4 ports + CPU port
	Expect(vs.ObjectCount(sai.ObjectTypePort)).To(Equal(5))
}

func TestCreateSwitchRequiresInit(t *testing.T) {
	RegisterTestingT(t)

	vs := NewPlugin(UseConf(smallConfig()))
	Expect(vs.Init()).To(Succeed())
	switchID, _ := vs.IDAllocator.AllocateSwitchID()

	Expect(vs.Create(switchID, nil)).To(Equal(sai.StatusMandatoryAttributeMissing))
	Expect(vs.HasObject(switchID)).To(BeFalse())
}

func TestRemoveSwitchDropsObjects(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	Expect(vs.Remove(switchID)).To(Succeed())
	Expect(vs.ObjectCount(sai.ObjectTypePort)).To(BeZero())
	Expect(vs.Remove(switchID)).To(Equal(sai.StatusItemNotFound))
}

func TestGetDefaultsAndUnknownObject(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	vr, _ := vs.IDAllocator.AllocateObjectID(sai.ObjectTypeVirtualRouter, switchID)
	Expect(vs.Create(vr, nil)).To(Succeed())

	attrs := []sai.Attribute{
		{ID: sai.VirtualRouterAttrAdminV4State},
		{ID: sai.VirtualRouterAttrSrcMacAddress},
	}
	Expect(vs.Get(vr, attrs)).To(Succeed())
	Expect(attrs[0].Value).To(Equal(sai.Bool(true)))
	Expect(attrs[1].Value).To(Equal(defaultSwitchMac))

	missing := sai.NewObjectID(0, sai.ObjectTypeVirtualRouter, 999)
	Expect(vs.Get(missing, attrs)).To(Equal(sai.StatusItemNotFound))
}

func TestBulkStopOnError(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	var keys []sai.ObjectKey
	for i := 0; i < 3; i++ {
		oid, _ := vs.IDAllocator.AllocateObjectID(sai.ObjectTypeNextHopGroup, switchID)
		keys = append(keys, oid)
	}
	vs.SetFaultInjector(func(op api.Operation, key sai.ObjectKey) error {
		if op == api.OpBulkCreate && key == keys[1] {
			return sai.StatusTableFull
		}
		return nil
	})
	attrs := make([][]sai.Attribute, 3)
	statuses := vs.BulkCreate(keys, attrs, api.BulkStopOnError)
	Expect(statuses).To(Equal([]error{nil, sai.StatusTableFull, sai.StatusNotExecuted}))
	Expect(vs.HasObject(keys[0])).To(BeTrue())
	Expect(vs.HasObject(keys[2])).To(BeFalse())

	statuses = vs.BulkRemove(keys, api.BulkIgnoreError)
	Expect(statuses[0]).To(BeNil())
	Expect(statuses[1]).To(Equal(sai.StatusItemNotFound))
	Expect(statuses[2]).To(Equal(sai.StatusItemNotFound))
}

func TestLimitsAndAvailability(t *testing.T) {
	RegisterTestingT(t)

	conf := smallConfig()
	conf.Limits = map[string]uint64{sai.ObjectTypeNextHop.String(): 1}
	vs, switchID := newSwitch(t, conf)

	count, err := vs.ObjectTypeGetAvailability(switchID, sai.ObjectTypeNextHop, nil)
	Expect(err).ToNot(HaveOccurred())
	Expect(count).To(BeEquivalentTo(1))

	nh1, _ := vs.IDAllocator.AllocateObjectID(sai.ObjectTypeNextHop, switchID)
	nh2, _ := vs.IDAllocator.AllocateObjectID(sai.ObjectTypeNextHop, switchID)
	Expect(vs.Create(nh1, nil)).To(Succeed())
	Expect(vs.Create(nh2, nil)).To(Equal(sai.StatusTableFull))

	_, err = vs.ObjectTypeGetAvailability(switchID, sai.ObjectTypeLag, nil)
	Expect(err).To(Equal(sai.StatusNotSupported))
}

func TestFlushFdbEntries(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	vlanAttr := []sai.Attribute{{ID: sai.SwitchAttrDefaultVlanID}}
	Expect(vs.Get(switchID, vlanAttr)).To(Succeed())
	vlan := vlanAttr[0].Value.(sai.ObjectID)

	dynamic := sai.FdbEntry{SwitchID: switchID, BvID: vlan, MacAddress: sai.MacAddress{0, 1, 2, 3, 4, 5}}
	static := sai.FdbEntry{SwitchID: switchID, BvID: vlan, MacAddress: sai.MacAddress{0, 1, 2, 3, 4, 6}}
	Expect(vs.Create(dynamic, []sai.Attribute{{ID: sai.FdbEntryAttrType, Value: sai.S32(sai.FdbEntryTypeDynamic)}})).To(Succeed())
	Expect(vs.Create(static, []sai.Attribute{{ID: sai.FdbEntryAttrType, Value: sai.S32(sai.FdbEntryTypeStatic)}})).To(Succeed())

	Expect(vs.FlushFdbEntries(switchID, nil)).To(Succeed())
	Expect(vs.HasObject(dynamic)).To(BeFalse())
	Expect(vs.HasObject(static)).To(BeTrue())

	all := []sai.Attribute{{ID: sai.FdbFlushAttrEntryType, Value: sai.S32(sai.FdbFlushEntryTypeAll)}}
	Expect(vs.FlushFdbEntries(switchID, all)).To(Succeed())
	Expect(vs.HasObject(static)).To(BeFalse())
}

func TestStats(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	cpu := []sai.Attribute{{ID: sai.SwitchAttrCPUPort}}
	Expect(vs.Get(switchID, cpu)).To(Succeed())
	port := cpu[0].Value.(sai.ObjectID)

	vs.SetCounter(port, sai.PortStatIfInOctets, 100)
	ids := []sai.StatID{sai.PortStatIfInOctets, sai.PortStatIfOutOctets}
	values, err := vs.GetStats(port, ids, api.StatsModeReadAndClear)
	Expect(err).ToNot(HaveOccurred())
	Expect(values).To(Equal([]uint64{100, 0}))

	values, _ = vs.GetStats(port, ids, api.StatsModeRead)
	Expect(values).To(Equal([]uint64{0, 0}))

	_, err = vs.GetStats(switchID, ids, api.StatsModeRead)
	Expect(err).To(Equal(sai.StatusNotSupported))
}

func TestCapabilities(t *testing.T) {
	RegisterTestingT(t)

	conf := smallConfig()
	conf.UnsupportedEnumValues = map[string][]string{
		"SAI_PORT_ATTR_FEC_MODE": {"SAI_PORT_FEC_MODE_FC"},
	}
	conf.Capabilities = map[string]api.AttrCapability{
		"SAI_PORT_ATTR_MTU": {GetImplemented: true},
	}
	vs, switchID := newSwitch(t, conf)

	values, err := vs.QueryAttributeEnumValuesCapability(switchID, sai.ObjectTypePort, sai.PortAttrFecMode)
	Expect(err).ToNot(HaveOccurred())
	Expect(values).To(Equal([]int32{sai.PortFecModeNone, sai.PortFecModeRS}))

	capability, err := vs.QueryAttributeCapability(switchID, sai.ObjectTypePort, sai.PortAttrSpeed)
	Expect(err).ToNot(HaveOccurred())
	Expect(capability).To(Equal(api.AttrCapability{CreateImplemented: true, SetImplemented: true, GetImplemented: true}))

	capability, _ = vs.QueryAttributeCapability(switchID, sai.ObjectTypePort, sai.PortAttrMtu)
	Expect(capability.SetImplemented).To(BeFalse())
}

func TestNotifications(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	var received []api.Notification
	vs.SetNotificationHandler(func(n api.Notification) {
		received = append(received, n)
	})

	bridgePort := sai.NewObjectID(0, sai.ObjectTypeBridgePort, 7)
	entry := sai.FdbEntry{SwitchID: switchID, MacAddress: sai.MacAddress{0xa, 0, 0, 0, 0, 1}}
	Expect(vs.LearnFdbEntry(entry, bridgePort)).To(Succeed())
	Expect(vs.LearnFdbEntry(entry, bridgePort)).To(Equal(sai.StatusItemAlreadyExists))
	Expect(vs.AgeFdbEntry(entry)).To(Succeed())

	Expect(received).To(HaveLen(2))
	learned := received[0].(*api.FdbEventNotification)
	Expect(learned.Events[0].EventType).To(Equal(api.FdbEventLearned))
	Expect(learned.Events[0].Entry).To(Equal(entry))
	aged := received[1].(*api.FdbEventNotification)
	Expect(aged.Events[0].EventType).To(Equal(api.FdbEventAged))
}

func TestRecordsAndLoad(t *testing.T) {
	RegisterTestingT(t)

	vs, switchID := newSwitch(t, smallConfig())
	records := vs.Records()
	// switch, CPU port, 4 ports, VR, VLAN, bridge and trap group
	Expect(records).To(HaveLen(10))
	Expect(records[0].ObjectType()).To(Equal(sai.ObjectTypePort))
	Expect(records[len(records)-1].ObjectType()).To(Equal(sai.ObjectTypeBridge))

	restored := NewPlugin(UseConf(smallConfig()))
	Expect(restored.Init()).To(Succeed())
	Expect(restored.Load(records)).To(Succeed())
	Expect(restored.ObjectCount(sai.ObjectTypePort)).To(Equal(5))

	attrs := []sai.Attribute{{ID: sai.SwitchAttrPortList}, {ID: sai.SwitchAttrDefaultVlanID}}
	Expect(restored.Get(switchID, attrs)).To(Succeed())
	Expect(attrs[0].Value.(sai.ObjectList).Elements()).To(HaveLen(4))

	// restored IDs are never handed out again
	vlan, err := restored.IDAllocator.AllocateObjectID(sai.ObjectTypeVlan, switchID)
	Expect(err).ToNot(HaveOccurred())
	Expect(vlan).ToNot(Equal(attrs[1].Value))

	Expect(restored.Load(records)).ToNot(Succeed())
}
