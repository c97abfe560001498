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
	"github.com/ligato/sai-agent/api/sai"
)

type attrOption func(md *AttrMetadata)

func attr(id sai.AttrID, name string, vt sai.AttrValueType, flags AttrFlags, opts ...attrOption) *AttrMetadata {
	md := &AttrMetadata{
		AttrID:    id,
		Name:      name,
		ValueType: vt,
		Flags:     flags,
	}
	for _, opt := range opts {
		opt(md)
	}
	return md
}

func objRef(types ...sai.ObjectType) attrOption {
	return func(md *AttrMetadata) { md.AllowedObjectTypes = types }
}

func allowNull() attrOption {
	return func(md *AttrMetadata) { md.AllowNullObjectID = true }
}

func allowEmpty() attrOption {
	return func(md *AttrMetadata) { md.AllowEmptyList = true }
}

func enum(e *EnumMetadata) attrOption {
	return func(md *AttrMetadata) { md.Enum = e }
}

func rangeOf(min, max int64) attrOption {
	return func(md *AttrMetadata) { md.Range = &ValueRange{Min: min, Max: max} }
}

func defaultConst(v sai.Value) attrOption {
	return func(md *AttrMetadata) {
		md.DefaultValueType = DefaultConst
		md.DefaultValue = v
	}
}

func defaultEmptyList() attrOption {
	return func(md *AttrMetadata) { md.DefaultValueType = DefaultEmptyList }
}

func defaultInternal() attrOption {
	return func(md *AttrMetadata) { md.DefaultValueType = DefaultSwitchInternal }
}

func condition(attrID sai.AttrID, values ...sai.Value) attrOption {
	return func(md *AttrMetadata) {
		md.Conditions = append(md.Conditions, AttrCondition{AttrID: attrID, Values: values})
	}
}

func validOnly(attrID sai.AttrID, values ...sai.Value) attrOption {
	return func(md *AttrMetadata) {
		md.ValidOnly = append(md.ValidOnly, AttrCondition{AttrID: attrID, Values: values})
	}
}

func volatile() attrOption {
	return func(md *AttrMetadata) { md.IsVolatile = true }
}

func computed(memberType sai.ObjectType, memberAttr sai.AttrID) attrOption {
	return func(md *AttrMetadata) {
		md.Computed = &ComputedList{MemberType: memberType, MemberAttr: memberAttr}
	}
}

func aclData(vt sai.AttrValueType) attrOption {
	return func(md *AttrMetadata) { md.AclDataType = &vt }
}

func enumVal(v int32) sai.Value {
	return sai.S32(v)
}

const (
	mandatoryCreateOnly = MandatoryOnCreate | CreateOnly
	mandatoryCreateSet  = MandatoryOnCreate | CreateAndSet
	keyAttr             = MandatoryOnCreate | CreateOnly | Key
)

var switchMember = &StructMember{
	Name:               "switch_id",
	ValueType:          sai.ValueTypeObjectID,
	AllowedObjectTypes: []sai.ObjectType{sai.ObjectTypeSwitch},
	GetObjectID:        func(key sai.ObjectKey) sai.ObjectID { return key.GetSwitchID() },
}

func builtinObjectTypes() []*ObjTypeInfo {
	return []*ObjTypeInfo{
		{
			ObjectType: sai.ObjectTypeSwitch,
			Attrs: []*AttrMetadata{
				attr(sai.SwitchAttrNumberOfActivePorts, "SAI_SWITCH_ATTR_NUMBER_OF_ACTIVE_PORTS", sai.ValueTypeUint32, ReadOnly),
				attr(sai.SwitchAttrPortList, "SAI_SWITCH_ATTR_PORT_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypePort), allowEmpty()),
				attr(sai.SwitchAttrCPUPort, "SAI_SWITCH_ATTR_CPU_PORT", sai.ValueTypeObjectID, ReadOnly,
					objRef(sai.ObjectTypePort)),
				attr(sai.SwitchAttrDefaultVirtualRouterID, "SAI_SWITCH_ATTR_DEFAULT_VIRTUAL_ROUTER_ID", sai.ValueTypeObjectID, ReadOnly,
					objRef(sai.ObjectTypeVirtualRouter)),
				attr(sai.SwitchAttrDefaultVlanID, "SAI_SWITCH_ATTR_DEFAULT_VLAN_ID", sai.ValueTypeObjectID, ReadOnly,
					objRef(sai.ObjectTypeVlan)),
				attr(sai.SwitchAttrDefault1QBridgeID, "SAI_SWITCH_ATTR_DEFAULT_1Q_BRIDGE_ID", sai.ValueTypeObjectID, ReadOnly,
					objRef(sai.ObjectTypeBridge)),
				attr(sai.SwitchAttrDefaultTrapGroup, "SAI_SWITCH_ATTR_DEFAULT_TRAP_GROUP", sai.ValueTypeObjectID, ReadOnly,
					objRef(sai.ObjectTypeHostifTrapGroup)),
				attr(sai.SwitchAttrAvailableIPv4RouteEntry, "SAI_SWITCH_ATTR_AVAILABLE_IPV4_ROUTE_ENTRY", sai.ValueTypeUint32, ReadOnly,
					volatile()),
				attr(sai.SwitchAttrAvailableFdbEntry, "SAI_SWITCH_ATTR_AVAILABLE_FDB_ENTRY", sai.ValueTypeUint32, ReadOnly,
					volatile()),
				attr(sai.SwitchAttrOperStatus, "SAI_SWITCH_ATTR_OPER_STATUS", sai.ValueTypeInt32, ReadOnly,
					enum(SwitchOperStatusEnum), volatile()),
				attr(sai.SwitchAttrSrcMacAddress, "SAI_SWITCH_ATTR_SRC_MAC_ADDRESS", sai.ValueTypeMac, CreateAndSet,
					defaultInternal()),
				attr(sai.SwitchAttrFdbAgingTime, "SAI_SWITCH_ATTR_FDB_AGING_TIME", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
				attr(sai.SwitchAttrInitSwitch, "SAI_SWITCH_ATTR_INIT_SWITCH", sai.ValueTypeBool, mandatoryCreateOnly),
				attr(sai.SwitchAttrHardwareInfo, "SAI_SWITCH_ATTR_SWITCH_HARDWARE_INFO", sai.ValueTypeChardata, CreateOnly,
					defaultConst(sai.Chardata(""))),
				attr(sai.SwitchAttrPreShutdown, "SAI_SWITCH_ATTR_PRE_SHUTDOWN", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
			},
		},
		{
			ObjectType: sai.ObjectTypePort,
			Attrs: []*AttrMetadata{
				attr(sai.PortAttrType, "SAI_PORT_ATTR_TYPE", sai.ValueTypeInt32, ReadOnly,
					enum(PortTypeEnum)),
				attr(sai.PortAttrOperStatus, "SAI_PORT_ATTR_OPER_STATUS", sai.ValueTypeInt32, ReadOnly,
					enum(PortOperStatusEnum), volatile()),
				attr(sai.PortAttrHwLaneList, "SAI_PORT_ATTR_HW_LANE_LIST", sai.ValueTypeUint32List, keyAttr),
				attr(sai.PortAttrSpeed, "SAI_PORT_ATTR_SPEED", sai.ValueTypeUint32, mandatoryCreateSet,
					rangeOf(1, 800000)),
				attr(sai.PortAttrFecMode, "SAI_PORT_ATTR_FEC_MODE", sai.ValueTypeInt32, CreateAndSet,
					enum(PortFecModeEnum), defaultConst(enumVal(sai.PortFecModeNone))),
				attr(sai.PortAttrAdminState, "SAI_PORT_ATTR_ADMIN_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
				attr(sai.PortAttrMtu, "SAI_PORT_ATTR_MTU", sai.ValueTypeUint32, CreateAndSet,
					rangeOf(68, 9216), defaultConst(sai.U32(1514))),
				attr(sai.PortAttrPortVlanID, "SAI_PORT_ATTR_PORT_VLAN_ID", sai.ValueTypeUint16, CreateAndSet,
					rangeOf(1, 4094), defaultConst(sai.U16(1))),
				attr(sai.PortAttrQosNumberOfQueues, "SAI_PORT_ATTR_QOS_NUMBER_OF_QUEUES", sai.ValueTypeUint32, ReadOnly),
				attr(sai.PortAttrQosQueueList, "SAI_PORT_ATTR_QOS_QUEUE_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypeQueue), allowEmpty(), computed(sai.ObjectTypeQueue, sai.QueueAttrPort)),
				attr(sai.PortAttrIngressAcl, "SAI_PORT_ATTR_INGRESS_ACL", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeAclTable), allowNull(), defaultConst(sai.NullObjectID)),
				attr(sai.PortAttrPolicerID, "SAI_PORT_ATTR_POLICER_ID", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypePolicer), allowNull(), defaultConst(sai.NullObjectID)),
			},
			StatEnum: PortStatEnum,
		},
		{
			ObjectType: sai.ObjectTypeLag,
			Attrs: []*AttrMetadata{
				attr(sai.LagAttrPortList, "SAI_LAG_ATTR_PORT_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypeLagMember), allowEmpty(), computed(sai.ObjectTypeLagMember, sai.LagMemberAttrLagID)),
				attr(sai.LagAttrPortVlanID, "SAI_LAG_ATTR_PORT_VLAN_ID", sai.ValueTypeUint16, CreateAndSet,
					rangeOf(1, 4094), defaultConst(sai.U16(1))),
				attr(sai.LagAttrIngressAcl, "SAI_LAG_ATTR_INGRESS_ACL", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeAclTable), allowNull(), defaultConst(sai.NullObjectID)),
			},
		},
		{
			ObjectType: sai.ObjectTypeLagMember,
			Attrs: []*AttrMetadata{
				attr(sai.LagMemberAttrLagID, "SAI_LAG_MEMBER_ATTR_LAG_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeLag)),
				attr(sai.LagMemberAttrPortID, "SAI_LAG_MEMBER_ATTR_PORT_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypePort)),
				attr(sai.LagMemberAttrEgressDisable, "SAI_LAG_MEMBER_ATTR_EGRESS_DISABLE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
				attr(sai.LagMemberAttrIngressDisable, "SAI_LAG_MEMBER_ATTR_INGRESS_DISABLE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
			},
		},
		{
			ObjectType: sai.ObjectTypeVirtualRouter,
			Attrs: []*AttrMetadata{
				attr(sai.VirtualRouterAttrAdminV4State, "SAI_VIRTUAL_ROUTER_ATTR_ADMIN_V4_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(true))),
				attr(sai.VirtualRouterAttrAdminV6State, "SAI_VIRTUAL_ROUTER_ATTR_ADMIN_V6_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(true))),
				attr(sai.VirtualRouterAttrSrcMacAddress, "SAI_VIRTUAL_ROUTER_ATTR_SRC_MAC_ADDRESS", sai.ValueTypeMac, CreateAndSet,
					defaultInternal()),
				attr(sai.VirtualRouterAttrViolationTTL1PacketAction, "SAI_VIRTUAL_ROUTER_ATTR_VIOLATION_TTL1_PACKET_ACTION", sai.ValueTypeInt32, CreateAndSet,
					enum(PacketActionEnum), defaultConst(enumVal(sai.PacketActionTrap))),
			},
		},
		{
			ObjectType: sai.ObjectTypeRouterInterface,
			Attrs: []*AttrMetadata{
				attr(sai.RouterInterfaceAttrVirtualRouterID, "SAI_ROUTER_INTERFACE_ATTR_VIRTUAL_ROUTER_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeVirtualRouter)),
				attr(sai.RouterInterfaceAttrType, "SAI_ROUTER_INTERFACE_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(RouterInterfaceTypeEnum)),
				attr(sai.RouterInterfaceAttrPortID, "SAI_ROUTER_INTERFACE_ATTR_PORT_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypePort, sai.ObjectTypeLag),
					condition(sai.RouterInterfaceAttrType, enumVal(sai.RouterInterfaceTypePort), enumVal(sai.RouterInterfaceTypeSubPort))),
				attr(sai.RouterInterfaceAttrVlanID, "SAI_ROUTER_INTERFACE_ATTR_VLAN_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeVlan),
					condition(sai.RouterInterfaceAttrType, enumVal(sai.RouterInterfaceTypeVlan))),
				attr(sai.RouterInterfaceAttrSrcMacAddress, "SAI_ROUTER_INTERFACE_ATTR_SRC_MAC_ADDRESS", sai.ValueTypeMac, CreateAndSet,
					defaultInternal()),
				attr(sai.RouterInterfaceAttrAdminV4State, "SAI_ROUTER_INTERFACE_ATTR_ADMIN_V4_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(true))),
				attr(sai.RouterInterfaceAttrAdminV6State, "SAI_ROUTER_INTERFACE_ATTR_ADMIN_V6_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(true))),
				attr(sai.RouterInterfaceAttrMtu, "SAI_ROUTER_INTERFACE_ATTR_MTU", sai.ValueTypeUint32, CreateAndSet,
					rangeOf(68, 9216), defaultConst(sai.U32(1514))),
			},
			StatEnum: RouterInterfaceStatEnum,
		},
		{
			ObjectType: sai.ObjectTypeNextHop,
			Attrs: []*AttrMetadata{
				attr(sai.NextHopAttrType, "SAI_NEXT_HOP_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(NextHopTypeEnum)),
				attr(sai.NextHopAttrIP, "SAI_NEXT_HOP_ATTR_IP", sai.ValueTypeIPAddress, mandatoryCreateOnly,
					condition(sai.NextHopAttrType, enumVal(sai.NextHopTypeIP), enumVal(sai.NextHopTypeMpls))),
				attr(sai.NextHopAttrRouterInterfaceID, "SAI_NEXT_HOP_ATTR_ROUTER_INTERFACE_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeRouterInterface),
					condition(sai.NextHopAttrType, enumVal(sai.NextHopTypeIP), enumVal(sai.NextHopTypeMpls))),
				attr(sai.NextHopAttrLabelstack, "SAI_NEXT_HOP_ATTR_LABELSTACK", sai.ValueTypeUint32List, mandatoryCreateOnly,
					condition(sai.NextHopAttrType, enumVal(sai.NextHopTypeMpls))),
			},
		},
		{
			ObjectType: sai.ObjectTypeNextHopGroup,
			Attrs: []*AttrMetadata{
				attr(sai.NextHopGroupAttrNextHopCount, "SAI_NEXT_HOP_GROUP_ATTR_NEXT_HOP_COUNT", sai.ValueTypeUint32, ReadOnly),
				attr(sai.NextHopGroupAttrNextHopMemberList, "SAI_NEXT_HOP_GROUP_ATTR_NEXT_HOP_MEMBER_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypeNextHopGroupMember), allowEmpty(),
					computed(sai.ObjectTypeNextHopGroupMember, sai.NextHopGroupMemberAttrNextHopGroupID)),
				attr(sai.NextHopGroupAttrType, "SAI_NEXT_HOP_GROUP_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(NextHopGroupTypeEnum)),
			},
		},
		{
			ObjectType: sai.ObjectTypeNextHopGroupMember,
			Attrs: []*AttrMetadata{
				attr(sai.NextHopGroupMemberAttrNextHopGroupID, "SAI_NEXT_HOP_GROUP_MEMBER_ATTR_NEXT_HOP_GROUP_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeNextHopGroup)),
				attr(sai.NextHopGroupMemberAttrNextHopID, "SAI_NEXT_HOP_GROUP_MEMBER_ATTR_NEXT_HOP_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeNextHop)),
				attr(sai.NextHopGroupMemberAttrWeight, "SAI_NEXT_HOP_GROUP_MEMBER_ATTR_WEIGHT", sai.ValueTypeUint32, CreateAndSet,
					rangeOf(1, 512), defaultConst(sai.U32(1))),
			},
		},
		{
			ObjectType:    sai.ObjectTypeRouteEntry,
			IsNonObjectID: true,
			StructMembers: []*StructMember{
				switchMember,
				{
					Name:               "vr_id",
					ValueType:          sai.ValueTypeObjectID,
					AllowedObjectTypes: []sai.ObjectType{sai.ObjectTypeVirtualRouter},
					GetObjectID:        func(key sai.ObjectKey) sai.ObjectID { return key.(sai.RouteEntry).VrID },
				},
				{
					Name:      "destination",
					ValueType: sai.ValueTypeIPPrefix,
				},
			},
			Attrs: []*AttrMetadata{
				attr(sai.RouteEntryAttrPacketAction, "SAI_ROUTE_ENTRY_ATTR_PACKET_ACTION", sai.ValueTypeInt32, CreateAndSet,
					enum(PacketActionEnum), defaultConst(enumVal(sai.PacketActionForward))),
				attr(sai.RouteEntryAttrTrapPriority, "SAI_ROUTE_ENTRY_ATTR_TRAP_PRIORITY", sai.ValueTypeUint8, CreateAndSet,
					defaultConst(sai.U8(0))),
				attr(sai.RouteEntryAttrNextHopID, "SAI_ROUTE_ENTRY_ATTR_NEXT_HOP_ID", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeNextHop, sai.ObjectTypeNextHopGroup, sai.ObjectTypeRouterInterface, sai.ObjectTypePort),
					allowNull(), defaultConst(sai.NullObjectID)),
				attr(sai.RouteEntryAttrMetaData, "SAI_ROUTE_ENTRY_ATTR_META_DATA", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
			},
		},
		{
			ObjectType:    sai.ObjectTypeNeighborEntry,
			IsNonObjectID: true,
			StructMembers: []*StructMember{
				switchMember,
				{
					Name:               "rif_id",
					ValueType:          sai.ValueTypeObjectID,
					AllowedObjectTypes: []sai.ObjectType{sai.ObjectTypeRouterInterface},
					GetObjectID:        func(key sai.ObjectKey) sai.ObjectID { return key.(sai.NeighborEntry).RifID },
				},
				{
					Name:      "ip_address",
					ValueType: sai.ValueTypeIPAddress,
				},
			},
			Attrs: []*AttrMetadata{
				attr(sai.NeighborEntryAttrDstMacAddress, "SAI_NEIGHBOR_ENTRY_ATTR_DST_MAC_ADDRESS", sai.ValueTypeMac, mandatoryCreateSet),
				attr(sai.NeighborEntryAttrPacketAction, "SAI_NEIGHBOR_ENTRY_ATTR_PACKET_ACTION", sai.ValueTypeInt32, CreateAndSet,
					enum(PacketActionEnum), defaultConst(enumVal(sai.PacketActionForward))),
				attr(sai.NeighborEntryAttrNoHostRoute, "SAI_NEIGHBOR_ENTRY_ATTR_NO_HOST_ROUTE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
				attr(sai.NeighborEntryAttrMetaData, "SAI_NEIGHBOR_ENTRY_ATTR_META_DATA", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
			},
		},
		{
			ObjectType:    sai.ObjectTypeFdbEntry,
			IsNonObjectID: true,
			StructMembers: []*StructMember{
				switchMember,
				{
					Name:      "mac_address",
					ValueType: sai.ValueTypeMac,
				},
				{
					Name:               "bv_id",
					ValueType:          sai.ValueTypeObjectID,
					AllowedObjectTypes: []sai.ObjectType{sai.ObjectTypeVlan, sai.ObjectTypeBridge},
					GetObjectID:        func(key sai.ObjectKey) sai.ObjectID { return key.(sai.FdbEntry).BvID },
				},
			},
			Attrs: []*AttrMetadata{
				attr(sai.FdbEntryAttrType, "SAI_FDB_ENTRY_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateSet,
					enum(FdbEntryTypeEnum)),
				attr(sai.FdbEntryAttrPacketAction, "SAI_FDB_ENTRY_ATTR_PACKET_ACTION", sai.ValueTypeInt32, CreateAndSet,
					enum(PacketActionEnum), defaultConst(enumVal(sai.PacketActionForward))),
				attr(sai.FdbEntryAttrUserTrapID, "SAI_FDB_ENTRY_ATTR_USER_TRAP_ID", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeHostifTrap), allowNull(), defaultConst(sai.NullObjectID),
					validOnly(sai.FdbEntryAttrPacketAction, enumVal(sai.PacketActionTrap), enumVal(sai.PacketActionCopy))),
				attr(sai.FdbEntryAttrBridgePortID, "SAI_FDB_ENTRY_ATTR_BRIDGE_PORT_ID", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeBridgePort), allowNull(), defaultConst(sai.NullObjectID)),
				attr(sai.FdbEntryAttrMetaData, "SAI_FDB_ENTRY_ATTR_META_DATA", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
			},
		},
		{
			ObjectType: sai.ObjectTypeFdbFlush,
			IsPseudo:   true,
			Attrs: []*AttrMetadata{
				attr(sai.FdbFlushAttrBridgePortID, "SAI_FDB_FLUSH_ATTR_BRIDGE_PORT_ID", sai.ValueTypeObjectID, CreateOnly,
					objRef(sai.ObjectTypeBridgePort)),
				attr(sai.FdbFlushAttrBvID, "SAI_FDB_FLUSH_ATTR_BV_ID", sai.ValueTypeObjectID, CreateOnly,
					objRef(sai.ObjectTypeVlan, sai.ObjectTypeBridge)),
				attr(sai.FdbFlushAttrEntryType, "SAI_FDB_FLUSH_ATTR_ENTRY_TYPE", sai.ValueTypeInt32, CreateOnly,
					enum(FdbFlushEntryTypeEnum), defaultConst(enumVal(sai.FdbFlushEntryTypeDynamic))),
			},
		},
		{
			ObjectType: sai.ObjectTypeVlan,
			Attrs: []*AttrMetadata{
				attr(sai.VlanAttrVlanID, "SAI_VLAN_ATTR_VLAN_ID", sai.ValueTypeUint16, keyAttr,
					rangeOf(1, 4094)),
				attr(sai.VlanAttrMemberList, "SAI_VLAN_ATTR_MEMBER_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypeVlanMember), allowEmpty(), computed(sai.ObjectTypeVlanMember, sai.VlanMemberAttrVlanID)),
				attr(sai.VlanAttrMaxLearnedAddresses, "SAI_VLAN_ATTR_MAX_LEARNED_ADDRESSES", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
				attr(sai.VlanAttrLearnDisable, "SAI_VLAN_ATTR_LEARN_DISABLE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
			},
			StatEnum: VlanStatEnum,
		},
		{
			ObjectType: sai.ObjectTypeVlanMember,
			Attrs: []*AttrMetadata{
				attr(sai.VlanMemberAttrVlanID, "SAI_VLAN_MEMBER_ATTR_VLAN_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeVlan)),
				attr(sai.VlanMemberAttrBridgePortID, "SAI_VLAN_MEMBER_ATTR_BRIDGE_PORT_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeBridgePort)),
				attr(sai.VlanMemberAttrVlanTaggingMode, "SAI_VLAN_MEMBER_ATTR_VLAN_TAGGING_MODE", sai.ValueTypeInt32, CreateAndSet,
					enum(VlanTaggingModeEnum), defaultConst(enumVal(sai.VlanTaggingModeUntagged))),
			},
		},
		{
			ObjectType: sai.ObjectTypeBridge,
			Attrs: []*AttrMetadata{
				attr(sai.BridgeAttrType, "SAI_BRIDGE_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(BridgeTypeEnum)),
				attr(sai.BridgeAttrPortList, "SAI_BRIDGE_ATTR_PORT_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypeBridgePort), allowEmpty(), computed(sai.ObjectTypeBridgePort, sai.BridgePortAttrBridgeID)),
				attr(sai.BridgeAttrMaxLearnedAddresses, "SAI_BRIDGE_ATTR_MAX_LEARNED_ADDRESSES", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
				attr(sai.BridgeAttrLearnDisable, "SAI_BRIDGE_ATTR_LEARN_DISABLE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
			},
		},
		{
			ObjectType: sai.ObjectTypeBridgePort,
			Attrs: []*AttrMetadata{
				attr(sai.BridgePortAttrType, "SAI_BRIDGE_PORT_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(BridgePortTypeEnum)),
				attr(sai.BridgePortAttrPortID, "SAI_BRIDGE_PORT_ATTR_PORT_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypePort, sai.ObjectTypeLag),
					condition(sai.BridgePortAttrType, enumVal(sai.BridgePortTypePort), enumVal(sai.BridgePortTypeSubPort))),
				attr(sai.BridgePortAttrVlanID, "SAI_BRIDGE_PORT_ATTR_VLAN_ID", sai.ValueTypeUint16, mandatoryCreateOnly,
					rangeOf(1, 4094),
					condition(sai.BridgePortAttrType, enumVal(sai.BridgePortTypeSubPort))),
				attr(sai.BridgePortAttrRifID, "SAI_BRIDGE_PORT_ATTR_RIF_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeRouterInterface),
					condition(sai.BridgePortAttrType, enumVal(sai.BridgePortType1DRouter))),
				attr(sai.BridgePortAttrBridgeID, "SAI_BRIDGE_PORT_ATTR_BRIDGE_ID", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeBridge), defaultInternal()),
				attr(sai.BridgePortAttrFdbLearningMode, "SAI_BRIDGE_PORT_ATTR_FDB_LEARNING_MODE", sai.ValueTypeInt32, CreateAndSet,
					enum(BridgePortFdbLearningModeEnum), defaultConst(enumVal(sai.BridgePortFdbLearningModeHw))),
				attr(sai.BridgePortAttrAdminState, "SAI_BRIDGE_PORT_ATTR_ADMIN_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
			},
		},
		{
			ObjectType: sai.ObjectTypeAclTable,
			Attrs: []*AttrMetadata{
				attr(sai.AclTableAttrAclStage, "SAI_ACL_TABLE_ATTR_ACL_STAGE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(AclStageEnum)),
				attr(sai.AclTableAttrAclBindPointTypeList, "SAI_ACL_TABLE_ATTR_ACL_BIND_POINT_TYPE_LIST", sai.ValueTypeInt32List, CreateOnly,
					enum(AclBindPointTypeEnum), allowEmpty(), defaultEmptyList()),
				attr(sai.AclTableAttrSize, "SAI_ACL_TABLE_ATTR_SIZE", sai.ValueTypeUint32, CreateOnly,
					defaultConst(sai.U32(0))),
				attr(sai.AclTableAttrFieldSrcIP, "SAI_ACL_TABLE_ATTR_FIELD_SRC_IP", sai.ValueTypeBool, CreateOnly,
					defaultConst(sai.Bool(false))),
				attr(sai.AclTableAttrFieldDstIP, "SAI_ACL_TABLE_ATTR_FIELD_DST_IP", sai.ValueTypeBool, CreateOnly,
					defaultConst(sai.Bool(false))),
				attr(sai.AclTableAttrFieldL4DstPort, "SAI_ACL_TABLE_ATTR_FIELD_L4_DST_PORT", sai.ValueTypeBool, CreateOnly,
					defaultConst(sai.Bool(false))),
				attr(sai.AclTableAttrFieldInPort, "SAI_ACL_TABLE_ATTR_FIELD_IN_PORT", sai.ValueTypeBool, CreateOnly,
					defaultConst(sai.Bool(false))),
				attr(sai.AclTableAttrEntryList, "SAI_ACL_TABLE_ATTR_ENTRY_LIST", sai.ValueTypeObjectList, ReadOnly,
					objRef(sai.ObjectTypeAclEntry), allowEmpty(), computed(sai.ObjectTypeAclEntry, sai.AclEntryAttrTableID)),
				attr(sai.AclTableAttrAvailableAclEntry, "SAI_ACL_TABLE_ATTR_AVAILABLE_ACL_ENTRY", sai.ValueTypeUint32, ReadOnly,
					volatile()),
			},
		},
		{
			ObjectType: sai.ObjectTypeAclEntry,
			Attrs: []*AttrMetadata{
				attr(sai.AclEntryAttrTableID, "SAI_ACL_ENTRY_ATTR_TABLE_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeAclTable)),
				attr(sai.AclEntryAttrPriority, "SAI_ACL_ENTRY_ATTR_PRIORITY", sai.ValueTypeUint32, CreateAndSet,
					rangeOf(0, 16383), defaultConst(sai.U32(0))),
				attr(sai.AclEntryAttrAdminState, "SAI_ACL_ENTRY_ATTR_ADMIN_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(true))),
				attr(sai.AclEntryAttrFieldSrcIP, "SAI_ACL_ENTRY_ATTR_FIELD_SRC_IP", sai.ValueTypeAclField, CreateAndSet,
					aclData(sai.ValueTypeIPAddress), defaultConst(sai.AclField{})),
				attr(sai.AclEntryAttrFieldDstIP, "SAI_ACL_ENTRY_ATTR_FIELD_DST_IP", sai.ValueTypeAclField, CreateAndSet,
					aclData(sai.ValueTypeIPAddress), defaultConst(sai.AclField{})),
				attr(sai.AclEntryAttrFieldL4DstPort, "SAI_ACL_ENTRY_ATTR_FIELD_L4_DST_PORT", sai.ValueTypeAclField, CreateAndSet,
					aclData(sai.ValueTypeUint16), defaultConst(sai.AclField{})),
				attr(sai.AclEntryAttrFieldInPort, "SAI_ACL_ENTRY_ATTR_FIELD_IN_PORT", sai.ValueTypeAclField, CreateAndSet,
					aclData(sai.ValueTypeObjectID), objRef(sai.ObjectTypePort, sai.ObjectTypeLag), defaultConst(sai.AclField{})),
				attr(sai.AclEntryAttrActionPacketAction, "SAI_ACL_ENTRY_ATTR_ACTION_PACKET_ACTION", sai.ValueTypeAclAction, CreateAndSet,
					aclData(sai.ValueTypeInt32), enum(PacketActionEnum), defaultConst(sai.AclAction{})),
				attr(sai.AclEntryAttrActionRedirect, "SAI_ACL_ENTRY_ATTR_ACTION_REDIRECT", sai.ValueTypeAclAction, CreateAndSet,
					aclData(sai.ValueTypeObjectID),
					objRef(sai.ObjectTypePort, sai.ObjectTypeLag, sai.ObjectTypeNextHop, sai.ObjectTypeNextHopGroup, sai.ObjectTypeBridgePort),
					defaultConst(sai.AclAction{})),
				attr(sai.AclEntryAttrActionCounter, "SAI_ACL_ENTRY_ATTR_ACTION_COUNTER", sai.ValueTypeAclAction, CreateAndSet,
					aclData(sai.ValueTypeObjectID), objRef(sai.ObjectTypeAclCounter), defaultConst(sai.AclAction{})),
			},
		},
		{
			ObjectType: sai.ObjectTypeAclCounter,
			Attrs: []*AttrMetadata{
				attr(sai.AclCounterAttrTableID, "SAI_ACL_COUNTER_ATTR_TABLE_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypeAclTable)),
				attr(sai.AclCounterAttrEnablePacketCount, "SAI_ACL_COUNTER_ATTR_ENABLE_PACKET_COUNT", sai.ValueTypeBool, CreateOnly,
					defaultConst(sai.Bool(false))),
				attr(sai.AclCounterAttrEnableByteCount, "SAI_ACL_COUNTER_ATTR_ENABLE_BYTE_COUNT", sai.ValueTypeBool, CreateOnly,
					defaultConst(sai.Bool(false))),
				attr(sai.AclCounterAttrPackets, "SAI_ACL_COUNTER_ATTR_PACKETS", sai.ValueTypeUint64, CreateAndSet,
					defaultConst(sai.U64(0)), volatile()),
				attr(sai.AclCounterAttrBytes, "SAI_ACL_COUNTER_ATTR_BYTES", sai.ValueTypeUint64, CreateAndSet,
					defaultConst(sai.U64(0)), volatile()),
			},
		},
		{
			ObjectType: sai.ObjectTypePolicer,
			Attrs: []*AttrMetadata{
				attr(sai.PolicerAttrMeterType, "SAI_POLICER_ATTR_METER_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(MeterTypeEnum)),
				attr(sai.PolicerAttrMode, "SAI_POLICER_ATTR_MODE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(PolicerModeEnum)),
				attr(sai.PolicerAttrCbs, "SAI_POLICER_ATTR_CBS", sai.ValueTypeUint64, CreateAndSet,
					defaultConst(sai.U64(0))),
				attr(sai.PolicerAttrCir, "SAI_POLICER_ATTR_CIR", sai.ValueTypeUint64, CreateAndSet,
					defaultConst(sai.U64(0))),
				attr(sai.PolicerAttrPbs, "SAI_POLICER_ATTR_PBS", sai.ValueTypeUint64, CreateAndSet,
					defaultConst(sai.U64(0)),
					validOnly(sai.PolicerAttrMode, enumVal(sai.PolicerModeTrTCM))),
				attr(sai.PolicerAttrPir, "SAI_POLICER_ATTR_PIR", sai.ValueTypeUint64, CreateAndSet,
					defaultConst(sai.U64(0)),
					validOnly(sai.PolicerAttrMode, enumVal(sai.PolicerModeTrTCM))),
			},
			StatEnum: PolicerStatEnum,
		},
		{
			ObjectType: sai.ObjectTypeQueue,
			Attrs: []*AttrMetadata{
				attr(sai.QueueAttrType, "SAI_QUEUE_ATTR_TYPE", sai.ValueTypeInt32, keyAttr,
					enum(QueueTypeEnum)),
				attr(sai.QueueAttrPort, "SAI_QUEUE_ATTR_PORT", sai.ValueTypeObjectID, keyAttr,
					objRef(sai.ObjectTypePort)),
				attr(sai.QueueAttrIndex, "SAI_QUEUE_ATTR_INDEX", sai.ValueTypeUint8, keyAttr),
				attr(sai.QueueAttrParentSchedulerNode, "SAI_QUEUE_ATTR_PARENT_SCHEDULER_NODE", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypePort), defaultInternal()),
			},
			StatEnum: QueueStatEnum,
		},
		{
			ObjectType: sai.ObjectTypeIngressPriorityGroup,
			Attrs: []*AttrMetadata{
				attr(sai.IngressPriorityGroupAttrPort, "SAI_INGRESS_PRIORITY_GROUP_ATTR_PORT", sai.ValueTypeObjectID, keyAttr,
					objRef(sai.ObjectTypePort)),
				attr(sai.IngressPriorityGroupAttrIndex, "SAI_INGRESS_PRIORITY_GROUP_ATTR_INDEX", sai.ValueTypeUint8, keyAttr,
					rangeOf(0, 7)),
			},
			StatEnum: IngressPriorityGroupStatEnum,
		},
		{
			ObjectType: sai.ObjectTypeHostif,
			Attrs: []*AttrMetadata{
				attr(sai.HostifAttrType, "SAI_HOSTIF_ATTR_TYPE", sai.ValueTypeInt32, mandatoryCreateOnly,
					enum(HostifTypeEnum)),
				attr(sai.HostifAttrObjID, "SAI_HOSTIF_ATTR_OBJ_ID", sai.ValueTypeObjectID, mandatoryCreateOnly,
					objRef(sai.ObjectTypePort, sai.ObjectTypeLag, sai.ObjectTypeVlan),
					condition(sai.HostifAttrType, enumVal(sai.HostifTypeNetdev))),
				attr(sai.HostifAttrName, "SAI_HOSTIF_ATTR_NAME", sai.ValueTypeChardata, mandatoryCreateOnly,
					condition(sai.HostifAttrType, enumVal(sai.HostifTypeNetdev), enumVal(sai.HostifTypeGenetlink))),
				attr(sai.HostifAttrOperStatus, "SAI_HOSTIF_ATTR_OPER_STATUS", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(false))),
			},
		},
		{
			ObjectType: sai.ObjectTypeHostifTrapGroup,
			Attrs: []*AttrMetadata{
				attr(sai.HostifTrapGroupAttrAdminState, "SAI_HOSTIF_TRAP_GROUP_ATTR_ADMIN_STATE", sai.ValueTypeBool, CreateAndSet,
					defaultConst(sai.Bool(true))),
				attr(sai.HostifTrapGroupAttrQueue, "SAI_HOSTIF_TRAP_GROUP_ATTR_QUEUE", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
				attr(sai.HostifTrapGroupAttrPolicer, "SAI_HOSTIF_TRAP_GROUP_ATTR_POLICER", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypePolicer), allowNull(), defaultConst(sai.NullObjectID)),
			},
		},
		{
			ObjectType: sai.ObjectTypeHostifTrap,
			Attrs: []*AttrMetadata{
				attr(sai.HostifTrapAttrTrapType, "SAI_HOSTIF_TRAP_ATTR_TRAP_TYPE", sai.ValueTypeInt32, keyAttr,
					enum(HostifTrapTypeEnum)),
				attr(sai.HostifTrapAttrPacketAction, "SAI_HOSTIF_TRAP_ATTR_PACKET_ACTION", sai.ValueTypeInt32, mandatoryCreateSet,
					enum(PacketActionEnum)),
				attr(sai.HostifTrapAttrTrapPriority, "SAI_HOSTIF_TRAP_ATTR_TRAP_PRIORITY", sai.ValueTypeUint32, CreateAndSet,
					defaultConst(sai.U32(0))),
				attr(sai.HostifTrapAttrTrapGroup, "SAI_HOSTIF_TRAP_ATTR_TRAP_GROUP", sai.ValueTypeObjectID, CreateAndSet,
					objRef(sai.ObjectTypeHostifTrapGroup), allowNull(), defaultConst(sai.NullObjectID)),
			},
		},
	}
}
