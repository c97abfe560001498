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

// newEnum builds enum metadata with values numbered from zero.
func newEnum(name, prefix string, valueNames ...string) *EnumMetadata {
	e := &EnumMetadata{Name: name}
	for i, vn := range valueNames {
		e.Values = append(e.Values, int32(i))
		e.ValueNames = append(e.ValueNames, prefix+vn)
	}
	return e
}

var (
	PacketActionEnum = newEnum("sai_packet_action_t", "SAI_PACKET_ACTION_",
		"DROP", "FORWARD", "COPY", "COPY_CANCEL", "TRAP", "LOG", "DENY", "TRANSIT")

	SwitchOperStatusEnum = newEnum("sai_switch_oper_status_t", "SAI_SWITCH_OPER_STATUS_",
		"UNKNOWN", "UP", "DOWN", "FAILED")

	PortTypeEnum = newEnum("sai_port_type_t", "SAI_PORT_TYPE_",
		"LOGICAL", "CPU")

	PortOperStatusEnum = newEnum("sai_port_oper_status_t", "SAI_PORT_OPER_STATUS_",
		"UNKNOWN", "UP", "DOWN", "TESTING", "NOT_PRESENT")

	PortFecModeEnum = newEnum("sai_port_fec_mode_t", "SAI_PORT_FEC_MODE_",
		"NONE", "RS", "FC")

	RouterInterfaceTypeEnum = newEnum("sai_router_interface_type_t", "SAI_ROUTER_INTERFACE_TYPE_",
		"PORT", "VLAN", "LOOPBACK", "SUB_PORT")

	NextHopTypeEnum = newEnum("sai_next_hop_type_t", "SAI_NEXT_HOP_TYPE_",
		"IP", "MPLS")

	NextHopGroupTypeEnum = newEnum("sai_next_hop_group_type_t", "SAI_NEXT_HOP_GROUP_TYPE_",
		"DYNAMIC_UNORDERED_ECMP", "DYNAMIC_ORDERED_ECMP", "FINE_GRAIN_ECMP")

	FdbEntryTypeEnum = newEnum("sai_fdb_entry_type_t", "SAI_FDB_ENTRY_TYPE_",
		"DYNAMIC", "STATIC")

	FdbFlushEntryTypeEnum = newEnum("sai_fdb_flush_entry_type_t", "SAI_FDB_FLUSH_ENTRY_TYPE_",
		"DYNAMIC", "STATIC", "ALL")

	VlanTaggingModeEnum = newEnum("sai_vlan_tagging_mode_t", "SAI_VLAN_TAGGING_MODE_",
		"UNTAGGED", "TAGGED", "PRIORITY_TAGGED")

	BridgeTypeEnum = newEnum("sai_bridge_type_t", "SAI_BRIDGE_TYPE_",
		"1Q", "1D")

	BridgePortTypeEnum = newEnum("sai_bridge_port_type_t", "SAI_BRIDGE_PORT_TYPE_",
		"PORT", "SUB_PORT", "1Q_ROUTER", "1D_ROUTER", "TUNNEL")

	BridgePortFdbLearningModeEnum = newEnum("sai_bridge_port_fdb_learning_mode_t", "SAI_BRIDGE_PORT_FDB_LEARNING_MODE_",
		"DROP", "DISABLE", "HW", "CPU_TRAP", "CPU_LOG", "FDB_NOTIFICATION")

	AclStageEnum = newEnum("sai_acl_stage_t", "SAI_ACL_STAGE_",
		"INGRESS", "EGRESS")

	AclBindPointTypeEnum = newEnum("sai_acl_bind_point_type_t", "SAI_ACL_BIND_POINT_TYPE_",
		"PORT", "LAG", "VLAN", "ROUTER_INTERFACE", "SWITCH")

	MeterTypeEnum = newEnum("sai_meter_type_t", "SAI_METER_TYPE_",
		"PACKETS", "BYTES")

	PolicerModeEnum = newEnum("sai_policer_mode_t", "SAI_POLICER_MODE_",
		"SR_TCM", "TR_TCM", "STORM_CONTROL")

	QueueTypeEnum = newEnum("sai_queue_type_t", "SAI_QUEUE_TYPE_",
		"ALL", "UNICAST", "MULTICAST")

	HostifTypeEnum = newEnum("sai_hostif_type_t", "SAI_HOSTIF_TYPE_",
		"NETDEV", "FD", "GENETLINK")

	HostifTrapTypeEnum = newEnum("sai_hostif_trap_type_t", "SAI_HOSTIF_TRAP_TYPE_",
		"STP", "LACP", "EAPOL", "LLDP", "ARP_REQUEST", "ARP_RESPONSE", "DHCP", "BGP", "TTL_ERROR")
)

// Statistics enums.
var (
	PortStatEnum = newEnum("sai_port_stat_t", "SAI_PORT_STAT_",
		"IF_IN_OCTETS", "IF_IN_UCAST_PKTS", "IF_IN_NON_UCAST_PKTS", "IF_IN_DISCARDS", "IF_IN_ERRORS",
		"IF_OUT_OCTETS", "IF_OUT_UCAST_PKTS", "IF_OUT_NON_UCAST_PKTS", "IF_OUT_DISCARDS", "IF_OUT_ERRORS")

	RouterInterfaceStatEnum = newEnum("sai_router_interface_stat_t", "SAI_ROUTER_INTERFACE_STAT_",
		"IN_OCTETS", "IN_PACKETS", "OUT_OCTETS", "OUT_PACKETS", "IN_ERROR_OCTETS", "IN_ERROR_PACKETS")

	QueueStatEnum = newEnum("sai_queue_stat_t", "SAI_QUEUE_STAT_",
		"PACKETS", "BYTES", "DROPPED_PACKETS", "DROPPED_BYTES", "CURR_OCCUPANCY_BYTES")

	IngressPriorityGroupStatEnum = newEnum("sai_ingress_priority_group_stat_t", "SAI_INGRESS_PRIORITY_GROUP_STAT_",
		"PACKETS", "BYTES", "CURR_OCCUPANCY_BYTES")

	PolicerStatEnum = newEnum("sai_policer_stat_t", "SAI_POLICER_STAT_",
		"PACKETS", "ATTR_BYTES", "GREEN_PACKETS", "YELLOW_PACKETS", "RED_PACKETS")

	VlanStatEnum = newEnum("sai_vlan_stat_t", "SAI_VLAN_STAT_",
		"IN_OCTETS", "IN_PACKETS", "OUT_OCTETS", "OUT_PACKETS")
)
