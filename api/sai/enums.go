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

// Enum values are carried as S32 attribute values (or S32List elements).

// sai_packet_action_t
const (
	PacketActionDrop int32 = iota
	PacketActionForward
	PacketActionCopy
	PacketActionCopyCancel
	PacketActionTrap
	PacketActionLog
	PacketActionDeny
	PacketActionTransit
)

// sai_switch_oper_status_t
const (
	SwitchOperStatusUnknown int32 = iota
	SwitchOperStatusUp
	SwitchOperStatusDown
	SwitchOperStatusFailed
)

// sai_port_type_t
const (
	PortTypeLogical int32 = iota
	PortTypeCPU
)

// sai_port_oper_status_t
const (
	PortOperStatusUnknown int32 = iota
	PortOperStatusUp
	PortOperStatusDown
	PortOperStatusTesting
	PortOperStatusNotPresent
)

// sai_port_fec_mode_t
const (
	PortFecModeNone int32 = iota
	PortFecModeRS
	PortFecModeFC
)

// sai_router_interface_type_t
const (
	RouterInterfaceTypePort int32 = iota
	RouterInterfaceTypeVlan
	RouterInterfaceTypeLoopback
	RouterInterfaceTypeSubPort
)

// sai_next_hop_type_t
const (
	NextHopTypeIP int32 = iota
	NextHopTypeMpls
)

// sai_next_hop_group_type_t
const (
	NextHopGroupTypeDynamicUnorderedEcmp int32 = iota
	NextHopGroupTypeDynamicOrderedEcmp
	NextHopGroupTypeFineGrainEcmp
)

// sai_fdb_entry_type_t
const (
	FdbEntryTypeDynamic int32 = iota
	FdbEntryTypeStatic
)

// sai_fdb_flush_entry_type_t
const (
	FdbFlushEntryTypeDynamic int32 = iota
	FdbFlushEntryTypeStatic
	FdbFlushEntryTypeAll
)

// sai_vlan_tagging_mode_t
const (
	VlanTaggingModeUntagged int32 = iota
	VlanTaggingModeTagged
	VlanTaggingModePriorityTagged
)

// sai_bridge_type_t
const (
	BridgeType1Q int32 = iota
	BridgeType1D
)

// sai_bridge_port_type_t
const (
	BridgePortTypePort int32 = iota
	BridgePortTypeSubPort
	BridgePortType1QRouter
	BridgePortType1DRouter
	BridgePortTypeTunnel
)

// sai_bridge_port_fdb_learning_mode_t
const (
	BridgePortFdbLearningModeDrop int32 = iota
	BridgePortFdbLearningModeDisable
	BridgePortFdbLearningModeHw
	BridgePortFdbLearningModeCPUTrap
	BridgePortFdbLearningModeCPULog
	BridgePortFdbLearningModeFdbNotification
)

// sai_acl_stage_t
const (
	AclStageIngress int32 = iota
	AclStageEgress
)

// sai_acl_bind_point_type_t
const (
	AclBindPointTypePort int32 = iota
	AclBindPointTypeLag
	AclBindPointTypeVlan
	AclBindPointTypeRouterInterface
	AclBindPointTypeSwitch
)

// sai_meter_type_t
const (
	MeterTypePackets int32 = iota
	MeterTypeBytes
)

// sai_policer_mode_t
const (
	PolicerModeSrTCM int32 = iota
	PolicerModeTrTCM
	PolicerModeStormControl
)

// sai_queue_type_t
const (
	QueueTypeAll int32 = iota
	QueueTypeUnicast
	QueueTypeMulticast
)

// sai_hostif_type_t
const (
	HostifTypeNetdev int32 = iota
	HostifTypeFD
	HostifTypeGenetlink
)

// sai_hostif_trap_type_t
const (
	HostifTrapTypeStp int32 = iota
	HostifTrapTypeLacp
	HostifTrapTypeEapol
	HostifTrapTypeLldp
	HostifTrapTypeArpRequest
	HostifTrapTypeArpResponse
	HostifTrapTypeDhcp
	HostifTrapTypeBgp
	HostifTrapTypeTTLError
)
