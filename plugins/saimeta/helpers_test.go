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
	"net/netip"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/vsbackend"
)

// testSwitch is a meta layer in front of a virtual switch with one
// switch already created.
type testSwitch struct {
	meta     *Meta
	vs       *vsbackend.VirtualSwitch
	alloc    *oidalloc.Allocator
	switchID sai.ObjectID
	ports    []sai.ObjectID
	vr       sai.ObjectID
	vlan1    sai.ObjectID
	bridge   sai.ObjectID
}

func testConfig() Config {
	return Config{
		ReconcileGet:            true,
		EnableConsistencyChecks: true,
	}
}

func vsConfig() vsbackend.Config {
	conf := vsbackend.DefaultConfig()
	conf.Ports = 4
	conf.LanesPerPort = 2
	return conf
}

func newMeta(t *testing.T, vs *vsbackend.VirtualSwitch, alloc *oidalloc.Allocator, conf Config) *Meta {
	return newMetaWithHTTP(t, vs, alloc, conf, nil)
}

func newMetaWithHTTP(t *testing.T, vs *vsbackend.VirtualSwitch, alloc *oidalloc.Allocator, conf Config,
	handlers HTTPHandlers) *Meta {
	return newMetaWithRegistry(t, vs, alloc, conf, handlers, saimetadata.DefaultRegistry())
}

func newMetaWithRegistry(t *testing.T, vs *vsbackend.VirtualSwitch, alloc *oidalloc.Allocator, conf Config,
	handlers HTTPHandlers, registry saimetadata.Registry) *Meta {
	meta := NewPlugin(
		UseConf(conf),
		UseDeps(func(deps *Deps) {
			deps.Backend = vs
			deps.IDAllocator = alloc
			deps.HTTPHandlers = handlers
			deps.Registry = registry
		}),
	)
	Expect(meta.Init()).To(Succeed())
	return meta
}

func newTestSwitch(t *testing.T) *testSwitch {
	return newTestSwitchWithHTTP(t, nil)
}

func newTestSwitchWithHTTP(t *testing.T, handlers HTTPHandlers) *testSwitch {
	return newTestSwitchWithRegistry(t, handlers, saimetadata.DefaultRegistry())
}

func newTestSwitchWithRegistry(t *testing.T, handlers HTTPHandlers, registry saimetadata.Registry) *testSwitch {
	alloc := oidalloc.NewAllocator()
	vs := vsbackend.NewPlugin(
		vsbackend.UseConf(vsConfig()),
		vsbackend.UseDeps(func(deps *vsbackend.Deps) {
			deps.IDAllocator = alloc
			deps.Registry = registry
		}),
	)
	Expect(vs.Init()).To(Succeed())

	ts := &testSwitch{
		meta:  newMetaWithRegistry(t, vs, alloc, testConfig(), handlers, registry),
		vs:    vs,
		alloc: alloc,
	}
	switchID, err := ts.meta.Create(sai.ObjectTypeSwitch, sai.NullObjectID, []sai.Attribute{
		{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)},
	})
	Expect(err).ToNot(HaveOccurred())
	ts.switchID = switchID

	attrs := []sai.Attribute{
		{ID: sai.SwitchAttrPortList},
		{ID: sai.SwitchAttrDefaultVirtualRouterID},
		{ID: sai.SwitchAttrDefaultVlanID},
		{ID: sai.SwitchAttrDefault1QBridgeID},
	}
	Expect(ts.meta.Get(switchID, attrs)).To(Succeed())
	ts.ports = attrs[0].Value.(sai.ObjectList).Elements()
	ts.vr = attrs[1].Value.(sai.ObjectID)
	ts.vlan1 = attrs[2].Value.(sai.ObjectID)
	ts.bridge = attrs[3].Value.(sai.ObjectID)
	Expect(ts.ports).To(HaveLen(4))
	return ts
}

func (ts *testSwitch) createVlan(id uint16) sai.ObjectID {
	vlan, err := ts.meta.Create(sai.ObjectTypeVlan, ts.switchID, []sai.Attribute{
		{ID: sai.VlanAttrVlanID, Value: sai.U16(id)},
	})
	Expect(err).ToNot(HaveOccurred())
	return vlan
}

func (ts *testSwitch) createBridgePort(port sai.ObjectID) sai.ObjectID {
	bridgePort, err := ts.meta.Create(sai.ObjectTypeBridgePort, ts.switchID, []sai.Attribute{
		{ID: sai.BridgePortAttrType, Value: sai.S32(sai.BridgePortTypePort)},
		{ID: sai.BridgePortAttrPortID, Value: port},
	})
	Expect(err).ToNot(HaveOccurred())
	return bridgePort
}

func (ts *testSwitch) createRif(port sai.ObjectID) sai.ObjectID {
	rif, err := ts.meta.Create(sai.ObjectTypeRouterInterface, ts.switchID, []sai.Attribute{
		{ID: sai.RouterInterfaceAttrVirtualRouterID, Value: ts.vr},
		{ID: sai.RouterInterfaceAttrType, Value: sai.S32(sai.RouterInterfaceTypePort)},
		{ID: sai.RouterInterfaceAttrPortID, Value: port},
	})
	Expect(err).ToNot(HaveOccurred())
	return rif
}

func (ts *testSwitch) createNextHop(rif sai.ObjectID, ip string) sai.ObjectID {
	nh, err := ts.meta.Create(sai.ObjectTypeNextHop, ts.switchID, []sai.Attribute{
		{ID: sai.NextHopAttrType, Value: sai.S32(sai.NextHopTypeIP)},
		{ID: sai.NextHopAttrIP, Value: sai.NewIPAddress(netip.MustParseAddr(ip))},
		{ID: sai.NextHopAttrRouterInterfaceID, Value: rif},
	})
	Expect(err).ToNot(HaveOccurred())
	return nh
}

func (ts *testSwitch) route(prefix string) sai.RouteEntry {
	return sai.RouteEntry{
		SwitchID:    ts.switchID,
		VrID:        ts.vr,
		Destination: netip.MustParsePrefix(prefix),
	}
}

func (ts *testSwitch) fdbEntry(mac string, bvID sai.ObjectID) sai.FdbEntry {
	addr, err := sai.ParseMacAddress(mac)
	Expect(err).ToNot(HaveOccurred())
	return sai.FdbEntry{SwitchID: ts.switchID, MacAddress: addr, BvID: bvID}
}

func staticFdb(bridgePort sai.ObjectID) []sai.Attribute {
	return []sai.Attribute{
		{ID: sai.FdbEntryAttrType, Value: sai.S32(sai.FdbEntryTypeStatic)},
		{ID: sai.FdbEntryAttrBridgePortID, Value: bridgePort},
	}
}

func expectKind(err error, kind api.ErrorKind) {
	ExpectWithOffset(1, err).To(HaveOccurred())
	ExpectWithOffset(1, api.KindOf(err)).To(Equal(kind), "error: %v", err)
}
