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

package saimetadata

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
)

func TestBuiltinSchemaIsConsistent(t *testing.T) {
	RegisterTestingT(t)

	reg := DefaultRegistry()
	Expect(reg.ObjectTypes()).To(ContainElement(sai.ObjectTypeSwitch))
	Expect(reg.ObjectTypes()).To(ContainElement(sai.ObjectTypeRouteEntry))

	for _, objectType := range reg.ObjectTypes() {
		info := reg.ObjectTypeInfo(objectType)
		Expect(info).ToNot(BeNil())
		Expect(info.IsNonObjectID).To(Equal(objectType.IsNonObjectID()))
		for i, md := range info.Attrs {
			Expect(md.ObjectType).To(Equal(objectType))
			Expect(reg.LookupAttribute(objectType, md.AttrID)).To(BeIdenticalTo(md))
			Expect(reg.LookupAttributeByName(md.Name)).To(BeIdenticalTo(md))
			if i > 0 {
				Expect(md.AttrID).To(BeNumerically(">", info.Attrs[i-1].AttrID))
			}
		}
	}
}

func TestLookupAttribute(t *testing.T) {
	RegisterTestingT(t)

	reg := DefaultRegistry()
	md := reg.LookupAttribute(sai.ObjectTypePort, sai.PortAttrHwLaneList)
	Expect(md).ToNot(BeNil())
	Expect(md.Name).To(Equal("SAI_PORT_ATTR_HW_LANE_LIST"))
	Expect(md.IsKey()).To(BeTrue())
	Expect(md.IsCreateOnly()).To(BeTrue())
	Expect(md.IsMandatoryOnCreate()).To(BeTrue())

	Expect(reg.LookupAttribute(sai.ObjectTypePort, 1000)).To(BeNil())
	Expect(reg.LookupAttribute(sai.ObjectType(200), 0)).To(BeNil())

	Expect(reg.KeyAttributes(sai.ObjectTypePort)).To(HaveLen(1))
	Expect(reg.KeyAttributes(sai.ObjectTypeQueue)).To(HaveLen(3))
	Expect(reg.KeyAttributes(sai.ObjectTypeRouteEntry)).To(BeEmpty())

	Expect(reg.AllowedReferenceTypes(sai.ObjectTypeRouteEntry, sai.RouteEntryAttrNextHopID)).To(
		ContainElement(sai.ObjectTypeNextHopGroup))
	Expect(reg.StatEnum(sai.ObjectTypePort)).To(BeIdenticalTo(PortStatEnum))
	Expect(reg.StatEnum(sai.ObjectTypeVirtualRouter)).To(BeNil())
}

func TestMandatoryAttributes(t *testing.T) {
	RegisterTestingT(t)

	reg := DefaultRegistry()
	var names []string
	for _, md := range reg.MandatoryAttributes(sai.ObjectTypeRouterInterface) {
		names = append(names, md.Name)
	}
	Expect(names).To(ConsistOf(
		"SAI_ROUTER_INTERFACE_ATTR_VIRTUAL_ROUTER_ID",
		"SAI_ROUTER_INTERFACE_ATTR_TYPE",
		"SAI_ROUTER_INTERFACE_ATTR_PORT_ID",
		"SAI_ROUTER_INTERFACE_ATTR_VLAN_ID",
	))

	portID := reg.LookupAttribute(sai.ObjectTypeRouterInterface, sai.RouterInterfaceAttrPortID)
	Expect(portID.IsConditional()).To(BeTrue())
}

func TestFrozenRegistryRejectsRegistration(t *testing.T) {
	RegisterTestingT(t)

	schema := DefaultRegistry().(*Schema)
	Expect(schema.IsFrozen()).To(BeTrue())
	err := schema.Register(&ObjTypeInfo{ObjectType: sai.ObjectTypePolicer})
	Expect(err).To(Equal(ErrRegistryFrozen))
}

func TestRegisterValidation(t *testing.T) {
	RegisterTestingT(t)

	schema := NewSchema()
	err := schema.Register(&ObjTypeInfo{
		ObjectType: sai.ObjectTypePort,
		Attrs: []*AttrMetadata{
			attr(0, "A", sai.ValueTypeUint32, CreateAndSet),
			attr(0, "B", sai.ValueTypeUint32, CreateAndSet),
		},
	})
	Expect(err).To(HaveOccurred())

	err = schema.Register(&ObjTypeInfo{
		ObjectType: sai.ObjectTypePort,
		Attrs: []*AttrMetadata{
			attr(0, "A", sai.ValueTypeBool, keyAttr),
		},
	})
	Expect(err).To(HaveOccurred())

	err = schema.Register(&ObjTypeInfo{
		ObjectType: sai.ObjectTypePort,
		Attrs: []*AttrMetadata{
			attr(0, "A", sai.ValueTypeObjectID, CreateAndSet),
		},
	})
	Expect(err).To(HaveOccurred())

	err = schema.Register(&ObjTypeInfo{
		ObjectType:    sai.ObjectTypePort,
		IsNonObjectID: true,
	})
	Expect(err).To(HaveOccurred())
}

func TestEnumSerialization(t *testing.T) {
	RegisterTestingT(t)

	reg := DefaultRegistry()
	md := reg.LookupAttribute(sai.ObjectTypeRouteEntry, sai.RouteEntryAttrPacketAction)
	Expect(SerializeAttrValue(md, sai.S32(sai.PacketActionDrop))).To(Equal("SAI_PACKET_ACTION_DROP"))
	Expect(SerializeAttrValue(md, sai.S32(-1))).To(Equal("-1"))

	v, err := DeserializeAttrValue(md, "SAI_PACKET_ACTION_TRAP")
	Expect(err).ToNot(HaveOccurred())
	Expect(v).To(Equal(sai.S32(sai.PacketActionTrap)))

	_, err = DeserializeAttrValue(md, "SAI_PACKET_ACTION_BOGUS")
	Expect(err).To(HaveOccurred())

	bindPoints := reg.LookupAttribute(sai.ObjectTypeAclTable, sai.AclTableAttrAclBindPointTypeList)
	list := sai.NewS32List(sai.AclBindPointTypePort, sai.AclBindPointTypeLag)
	s := SerializeAttrValue(bindPoints, list)
	Expect(s).To(Equal("2:SAI_ACL_BIND_POINT_TYPE_PORT,SAI_ACL_BIND_POINT_TYPE_LAG"))
	v, err = DeserializeAttrValue(bindPoints, s)
	Expect(err).ToNot(HaveOccurred())
	Expect(v).To(Equal(list))
}

func TestFormatAndParseAttribute(t *testing.T) {
	RegisterTestingT(t)

	reg := DefaultRegistry()
	attr := sai.Attribute{ID: sai.PortAttrHwLaneList, Value: sai.NewU32List(1, 2, 3, 4)}
	s := FormatAttribute(reg, sai.ObjectTypePort, attr)
	Expect(s).To(Equal("SAI_PORT_ATTR_HW_LANE_LIST=4:1,2,3,4"))

	parsed, err := ParseAttribute(reg, s)
	Expect(err).ToNot(HaveOccurred())
	Expect(parsed).To(Equal(attr))

	action := sai.Attribute{
		ID:    sai.AclEntryAttrActionPacketAction,
		Value: sai.AclAction{Enable: true, Parameter: sai.S32(sai.PacketActionDrop)},
	}
	s = FormatAttribute(reg, sai.ObjectTypeAclEntry, action)
	Expect(s).To(Equal("SAI_ACL_ENTRY_ATTR_ACTION_PACKET_ACTION=SAI_PACKET_ACTION_DROP"))
	parsed, err = ParseAttribute(reg, s)
	Expect(err).ToNot(HaveOccurred())
	Expect(parsed).To(Equal(action))

	_, err = ParseAttribute(reg, "SAI_PORT_ATTR_NOPE=1")
	Expect(err).To(HaveOccurred())
}
