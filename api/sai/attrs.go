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

// Switch attributes.
const (
	SwitchAttrNumberOfActivePorts AttrID = iota
	SwitchAttrPortList
	SwitchAttrCPUPort
	SwitchAttrDefaultVirtualRouterID
	SwitchAttrDefaultVlanID
	SwitchAttrDefault1QBridgeID
	SwitchAttrDefaultTrapGroup
	SwitchAttrAvailableIPv4RouteEntry
	SwitchAttrAvailableFdbEntry
	SwitchAttrOperStatus
	SwitchAttrSrcMacAddress
	SwitchAttrFdbAgingTime
	SwitchAttrInitSwitch
	SwitchAttrHardwareInfo
	SwitchAttrPreShutdown
)

// Port attributes.
const (
	PortAttrType AttrID = iota
	PortAttrOperStatus
	PortAttrHwLaneList
	PortAttrSpeed
	PortAttrFecMode
	PortAttrAdminState
	PortAttrMtu
	PortAttrPortVlanID
	PortAttrQosNumberOfQueues
	PortAttrQosQueueList
	PortAttrIngressAcl
	PortAttrPolicerID
)

// LAG attributes.
const (
	LagAttrPortList AttrID = iota
	LagAttrPortVlanID
	LagAttrIngressAcl
)

// LAG member attributes.
const (
	LagMemberAttrLagID AttrID = iota
	LagMemberAttrPortID
	LagMemberAttrEgressDisable
	LagMemberAttrIngressDisable
)

// Virtual router attributes.
const (
	VirtualRouterAttrAdminV4State AttrID = iota
	VirtualRouterAttrAdminV6State
	VirtualRouterAttrSrcMacAddress
	VirtualRouterAttrViolationTTL1PacketAction
)

// Router interface attributes.
const (
	RouterInterfaceAttrVirtualRouterID AttrID = iota
	RouterInterfaceAttrType
	RouterInterfaceAttrPortID
	RouterInterfaceAttrVlanID
	RouterInterfaceAttrSrcMacAddress
	RouterInterfaceAttrAdminV4State
	RouterInterfaceAttrAdminV6State
	RouterInterfaceAttrMtu
)

// Next hop attributes.
const (
	NextHopAttrType AttrID = iota
	NextHopAttrIP
	NextHopAttrRouterInterfaceID
	NextHopAttrLabelstack
)

// Next hop group attributes.
const (
	NextHopGroupAttrNextHopCount AttrID = iota
	NextHopGroupAttrNextHopMemberList
	NextHopGroupAttrType
)

// Next hop group member attributes.
const (
	NextHopGroupMemberAttrNextHopGroupID AttrID = iota
	NextHopGroupMemberAttrNextHopID
	NextHopGroupMemberAttrWeight
)

// Route entry attributes.
const (
	RouteEntryAttrPacketAction AttrID = iota
	RouteEntryAttrTrapPriority
	RouteEntryAttrNextHopID
	RouteEntryAttrMetaData
)

// Neighbor entry attributes.
const (
	NeighborEntryAttrDstMacAddress AttrID = iota
	NeighborEntryAttrPacketAction
	NeighborEntryAttrNoHostRoute
	NeighborEntryAttrMetaData
)

// FDB entry attributes.
const (
	FdbEntryAttrType AttrID = iota
	FdbEntryAttrPacketAction
	FdbEntryAttrUserTrapID
	FdbEntryAttrBridgePortID
	FdbEntryAttrMetaData
)

// FDB flush attributes.
const (
	FdbFlushAttrBridgePortID AttrID = iota
	FdbFlushAttrBvID
	FdbFlushAttrEntryType
)

// VLAN attributes.
const (
	VlanAttrVlanID AttrID = iota
	VlanAttrMemberList
	VlanAttrMaxLearnedAddresses
	VlanAttrLearnDisable
)

// VLAN member attributes.
const (
	VlanMemberAttrVlanID AttrID = iota
	VlanMemberAttrBridgePortID
	VlanMemberAttrVlanTaggingMode
)

// Bridge attributes.
const (
	BridgeAttrType AttrID = iota
	BridgeAttrPortList
	BridgeAttrMaxLearnedAddresses
	BridgeAttrLearnDisable
)

// Bridge port attributes.
const (
	BridgePortAttrType AttrID = iota
	BridgePortAttrPortID
	BridgePortAttrVlanID
	BridgePortAttrRifID
	BridgePortAttrBridgeID
	BridgePortAttrFdbLearningMode
	BridgePortAttrAdminState
)

// ACL table attributes.
const (
	AclTableAttrAclStage AttrID = iota
	AclTableAttrAclBindPointTypeList
	AclTableAttrSize
	AclTableAttrFieldSrcIP
	AclTableAttrFieldDstIP
	AclTableAttrFieldL4DstPort
	AclTableAttrFieldInPort
	AclTableAttrEntryList
	AclTableAttrAvailableAclEntry
)

// ACL entry attributes.
const (
	AclEntryAttrTableID AttrID = iota
	AclEntryAttrPriority
	AclEntryAttrAdminState
	AclEntryAttrFieldSrcIP
	AclEntryAttrFieldDstIP
	AclEntryAttrFieldL4DstPort
	AclEntryAttrFieldInPort
	AclEntryAttrActionPacketAction
	AclEntryAttrActionRedirect
	AclEntryAttrActionCounter
)

// ACL counter attributes.
const (
	AclCounterAttrTableID AttrID = iota
	AclCounterAttrEnablePacketCount
	AclCounterAttrEnableByteCount
	AclCounterAttrPackets
	AclCounterAttrBytes
)

// Policer attributes.
const (
	PolicerAttrMeterType AttrID = iota
	PolicerAttrMode
	PolicerAttrCbs
	PolicerAttrCir
	PolicerAttrPbs
	PolicerAttrPir
)

// Queue attributes.
const (
	QueueAttrType AttrID = iota
	QueueAttrPort
	QueueAttrIndex
	QueueAttrParentSchedulerNode
)

// Ingress priority group attributes.
const (
	IngressPriorityGroupAttrPort AttrID = iota
	IngressPriorityGroupAttrIndex
)

// Host interface attributes.
const (
	HostifAttrType AttrID = iota
	HostifAttrObjID
	HostifAttrName
	HostifAttrOperStatus
)

// Host interface trap group attributes.
const (
	HostifTrapGroupAttrAdminState AttrID = iota
	HostifTrapGroupAttrQueue
	HostifTrapGroupAttrPolicer
)

// Host interface trap attributes.
const (
	HostifTrapAttrTrapType AttrID = iota
	HostifTrapAttrPacketAction
	HostifTrapAttrTrapPriority
	HostifTrapAttrTrapGroup
)
