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
	"fmt"
	"sort"
	"strconv"
)

// ObjectType identifies a kind of switch object. The numbering follows
// the SAI object type enumeration so that identifiers stay stable across
// dumps, recordings and snapshots.
type ObjectType int32

const (
	ObjectTypeNull                 ObjectType = 0
	ObjectTypePort                 ObjectType = 1
	ObjectTypeLag                  ObjectType = 2
	ObjectTypeVirtualRouter        ObjectType = 3
	ObjectTypeNextHop              ObjectType = 4
	ObjectTypeNextHopGroup         ObjectType = 5
	ObjectTypeRouterInterface      ObjectType = 6
	ObjectTypeAclTable             ObjectType = 7
	ObjectTypeAclEntry             ObjectType = 8
	ObjectTypeAclCounter           ObjectType = 9
	ObjectTypeHostif               ObjectType = 13
	ObjectTypeHostifTrapGroup      ObjectType = 17
	ObjectTypePolicer              ObjectType = 18
	ObjectTypeQueue                ObjectType = 21
	ObjectTypeIngressPriorityGroup ObjectType = 26
	ObjectTypeLagMember            ObjectType = 27
	ObjectTypeFdbEntry             ObjectType = 32
	ObjectTypeSwitch               ObjectType = 33
	ObjectTypeHostifTrap           ObjectType = 34
	ObjectTypeNeighborEntry        ObjectType = 36
	ObjectTypeRouteEntry           ObjectType = 37
	ObjectTypeVlan                 ObjectType = 38
	ObjectTypeVlanMember           ObjectType = 39
	ObjectTypeFdbFlush             ObjectType = 44
	ObjectTypeNextHopGroupMember   ObjectType = 45
	ObjectTypeBridge               ObjectType = 57
	ObjectTypeBridgePort           ObjectType = 58
)

var objectTypeNames = map[ObjectType]string{
	ObjectTypeNull:                 "SAI_OBJECT_TYPE_NULL",
	ObjectTypePort:                 "SAI_OBJECT_TYPE_PORT",
	ObjectTypeLag:                  "SAI_OBJECT_TYPE_LAG",
	ObjectTypeVirtualRouter:        "SAI_OBJECT_TYPE_VIRTUAL_ROUTER",
	ObjectTypeNextHop:              "SAI_OBJECT_TYPE_NEXT_HOP",
	ObjectTypeNextHopGroup:         "SAI_OBJECT_TYPE_NEXT_HOP_GROUP",
	ObjectTypeRouterInterface:      "SAI_OBJECT_TYPE_ROUTER_INTERFACE",
	ObjectTypeAclTable:             "SAI_OBJECT_TYPE_ACL_TABLE",
	ObjectTypeAclEntry:             "SAI_OBJECT_TYPE_ACL_ENTRY",
	ObjectTypeAclCounter:           "SAI_OBJECT_TYPE_ACL_COUNTER",
	ObjectTypeHostif:               "SAI_OBJECT_TYPE_HOSTIF",
	ObjectTypeHostifTrapGroup:      "SAI_OBJECT_TYPE_HOSTIF_TRAP_GROUP",
	ObjectTypePolicer:              "SAI_OBJECT_TYPE_POLICER",
	ObjectTypeQueue:                "SAI_OBJECT_TYPE_QUEUE",
	ObjectTypeIngressPriorityGroup: "SAI_OBJECT_TYPE_INGRESS_PRIORITY_GROUP",
	ObjectTypeLagMember:            "SAI_OBJECT_TYPE_LAG_MEMBER",
	ObjectTypeFdbEntry:             "SAI_OBJECT_TYPE_FDB_ENTRY",
	ObjectTypeSwitch:               "SAI_OBJECT_TYPE_SWITCH",
	ObjectTypeHostifTrap:           "SAI_OBJECT_TYPE_HOSTIF_TRAP",
	ObjectTypeNeighborEntry:        "SAI_OBJECT_TYPE_NEIGHBOR_ENTRY",
	ObjectTypeRouteEntry:           "SAI_OBJECT_TYPE_ROUTE_ENTRY",
	ObjectTypeVlan:                 "SAI_OBJECT_TYPE_VLAN",
	ObjectTypeVlanMember:           "SAI_OBJECT_TYPE_VLAN_MEMBER",
	ObjectTypeFdbFlush:             "SAI_OBJECT_TYPE_FDB_FLUSH",
	ObjectTypeNextHopGroupMember:   "SAI_OBJECT_TYPE_NEXT_HOP_GROUP_MEMBER",
	ObjectTypeBridge:               "SAI_OBJECT_TYPE_BRIDGE",
	ObjectTypeBridgePort:           "SAI_OBJECT_TYPE_BRIDGE_PORT",
}

var objectTypeValues = func() map[string]ObjectType {
	m := make(map[string]ObjectType, len(objectTypeNames))
	for t, name := range objectTypeNames {
		m[name] = t
	}
	return m
}()

// String returns the SAI name of the object type.
func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return "SAI_OBJECT_TYPE_" + strconv.Itoa(int(t))
}

// IsValid returns true for every known object type except NULL.
func (t ObjectType) IsValid() bool {
	_, known := objectTypeNames[t]
	return known && t != ObjectTypeNull
}

// IsNonObjectID returns true for object types identified by a structured
// entry instead of an object ID.
func (t ObjectType) IsNonObjectID() bool {
	switch t {
	case ObjectTypeFdbEntry, ObjectTypeRouteEntry, ObjectTypeNeighborEntry:
		return true
	}
	return false
}

// ParseObjectType converts SAI object type name into ObjectType.
func ParseObjectType(name string) (ObjectType, error) {
	if t, ok := objectTypeValues[name]; ok {
		return t, nil
	}
	return ObjectTypeNull, fmt.Errorf("unknown object type %q", name)
}

// AllObjectTypes returns all valid object types ordered by their numeric value.
func AllObjectTypes() []ObjectType {
	types := make([]ObjectType, 0, len(objectTypeNames))
	for t := range objectTypeNames {
		if t != ObjectTypeNull {
			types = append(types, t)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
