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

package sai

import (
	"net/netip"
	"testing"

	. "github.com/onsi/gomega"
)

func TestObjectIDLayout(t *testing.T) {
	RegisterTestingT(t)

	Expect(SwitchObjectID(0)).To(BeEquivalentTo(0x21000000000000))
	Expect(SwitchObjectID(0).String()).To(Equal("oid:0x21000000000000"))

	oid := NewObjectID(3, ObjectTypePort, 0x1234)
	Expect(oid.GetObjectType()).To(Equal(ObjectTypePort))
	Expect(oid.SwitchIndex()).To(BeEquivalentTo(3))
	Expect(oid.Index()).To(BeEquivalentTo(0x1234))
	Expect(oid.GetSwitchID()).To(Equal(SwitchObjectID(3)))

	Expect(NullObjectID.GetObjectType()).To(Equal(ObjectTypeNull))
	Expect(NullObjectID.GetSwitchID()).To(Equal(NullObjectID))
	Expect(NullObjectID.IsNull()).To(BeTrue())
}

func TestParseObjectID(t *testing.T) {
	RegisterTestingT(t)

	oid := NewObjectID(1, ObjectTypeVlan, 7)
	parsed, err := ParseObjectID(oid.String())
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed).To(Equal(oid))

	_, err = ParseObjectID("0x1234")
	Expect(err).Should(HaveOccurred())
	_, err = ParseObjectID("oid:0xzz")
	Expect(err).Should(HaveOccurred())
}

func TestEntryKeysAreComparable(t *testing.T) {
	RegisterTestingT(t)

	sw := SwitchObjectID(0)
	vr := NewObjectID(0, ObjectTypeVirtualRouter, 1)
	keys := map[ObjectKey]int{}
	keys[RouteEntry{SwitchID: sw, VrID: vr, Destination: netip.MustParsePrefix("10.0.0.0/24")}] = 1
	keys[RouteEntry{SwitchID: sw, VrID: vr, Destination: netip.MustParsePrefix("10.0.0.0/24")}] = 2
	keys[RouteEntry{SwitchID: sw, VrID: vr, Destination: netip.MustParsePrefix("10.0.1.0/24")}] = 3
	keys[vr] = 4
	Expect(keys).To(HaveLen(3))
}

func TestEntryCanonicalForm(t *testing.T) {
	RegisterTestingT(t)

	sw := SwitchObjectID(0)
	vlan := NewObjectID(0, ObjectTypeVlan, 1)
	fdb := FdbEntry{
		SwitchID:   sw,
		MacAddress: MacAddress{0x00, 0xaa, 0xbb, 0xcc, 0xdd, 0xee},
		BvID:       vlan,
	}
	Expect(fdb.String()).To(Equal(
		`{"bvid":"oid:0x26000000000001","mac":"00:AA:BB:CC:DD:EE","switch_id":"oid:0x21000000000000"}`))

	parsed, err := ParseObjectKey(ObjectTypeFdbEntry, fdb.String())
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed).To(Equal(fdb))

	route := RouteEntry{
		SwitchID:    sw,
		VrID:        NewObjectID(0, ObjectTypeVirtualRouter, 2),
		Destination: netip.MustParsePrefix("2001:db8::/64"),
	}
	parsed, err = ParseObjectKey(ObjectTypeRouteEntry, route.String())
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed).To(Equal(route))

	neighbor := NeighborEntry{
		SwitchID:  sw,
		RifID:     NewObjectID(0, ObjectTypeRouterInterface, 5),
		IPAddress: netip.MustParseAddr("192.168.1.1"),
	}
	parsed, err = ParseObjectKey(ObjectTypeNeighborEntry, neighbor.String())
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed).To(Equal(neighbor))
}

func TestParseObjectKeyTypeMismatch(t *testing.T) {
	RegisterTestingT(t)

	port := NewObjectID(0, ObjectTypePort, 1)
	_, err := ParseObjectKey(ObjectTypeVlan, port.String())
	Expect(err).Should(HaveOccurred())

	_, err = ParseObjectKey(ObjectTypeFdbEntry, "not json")
	Expect(err).Should(HaveOccurred())
}

func TestObjectTypeNames(t *testing.T) {
	RegisterTestingT(t)

	Expect(ObjectTypePort.String()).To(Equal("SAI_OBJECT_TYPE_PORT"))
	typ, err := ParseObjectType("SAI_OBJECT_TYPE_BRIDGE_PORT")
	Expect(err).ShouldNot(HaveOccurred())
	Expect(typ).To(Equal(ObjectTypeBridgePort))

	Expect(ObjectTypeNull.IsValid()).To(BeFalse())
	Expect(ObjectType(200).IsValid()).To(BeFalse())
	Expect(ObjectTypeRouteEntry.IsNonObjectID()).To(BeTrue())
	Expect(ObjectTypeRouterInterface.IsNonObjectID()).To(BeFalse())
	Expect(AllObjectTypes()).ToNot(ContainElement(ObjectTypeNull))
}
