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

// StatID identifies a counter within the statistics enum of an object type.
type StatID int32

// sai_port_stat_t
const (
	PortStatIfInOctets StatID = iota
	PortStatIfInUcastPkts
	PortStatIfInNonUcastPkts
	PortStatIfInDiscards
	PortStatIfInErrors
	PortStatIfOutOctets
	PortStatIfOutUcastPkts
	PortStatIfOutNonUcastPkts
	PortStatIfOutDiscards
	PortStatIfOutErrors
)

// sai_router_interface_stat_t
const (
	RouterInterfaceStatInOctets StatID = iota
	RouterInterfaceStatInPackets
	RouterInterfaceStatOutOctets
	RouterInterfaceStatOutPackets
	RouterInterfaceStatInErrorOctets
	RouterInterfaceStatInErrorPackets
)

// sai_queue_stat_t
const (
	QueueStatPackets StatID = iota
	QueueStatBytes
	QueueStatDroppedPackets
	QueueStatDroppedBytes
	QueueStatCurrOccupancyBytes
)

// sai_ingress_priority_group_stat_t
const (
	IngressPriorityGroupStatPackets StatID = iota
	IngressPriorityGroupStatBytes
	IngressPriorityGroupStatCurrOccupancyBytes
)

// sai_policer_stat_t
const (
	PolicerStatPackets StatID = iota
	PolicerStatAttrBytes
	PolicerStatGreenPackets
	PolicerStatYellowPackets
	PolicerStatRedPackets
)

// sai_vlan_stat_t
const (
	VlanStatInOctets StatID = iota
	VlanStatInPackets
	VlanStatOutOctets
	VlanStatOutPackets
)
