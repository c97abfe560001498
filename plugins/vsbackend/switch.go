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
	"sort"

	"github.com/ligato/sai-agent/api/sai"
)

// defaultSwitchMac is reported until the source MAC is set.
var defaultSwitchMac = sai.MacAddress{0x02, 0x00, 0x00, 0x00, 0x00, 0x01}

// createSwitch creates the switch together with objects every switch has
// from the beginning.
func (vs *VirtualSwitch) createSwitch(switchID sai.ObjectID, attrs []sai.Attribute) error {
	initSwitch, hasInit := attrValue(attrs, sai.SwitchAttrInitSwitch)
	if !hasInit {
		return sai.StatusMandatoryAttributeMissing
	}
	if initSwitch != sai.Bool(true) {
		// connecting to an existing switch is not supported
		return sai.StatusNotSupported
	}

	sw := newObject(attrs)
	var created []sai.ObjectKey
	rollback := func(err error) error {
		for _, key := range created {
			delete(vs.objects, key)
		}
		return err
	}
	add := func(objectType sai.ObjectType, attrs ...sai.Attribute) (sai.ObjectID, error) {
		oid, err := vs.IDAllocator.AllocateObjectID(objectType, switchID)
		if err != nil {
			return sai.NullObjectID, err
		}
		vs.objects[oid] = newObject(attrs)
		created = append(created, oid)
		return oid, nil
	}

	cpuPort, err := add(sai.ObjectTypePort,
		sai.Attribute{ID: sai.PortAttrType, Value: sai.S32(sai.PortTypeCPU)},
		sai.Attribute{ID: sai.PortAttrOperStatus, Value: sai.S32(sai.PortOperStatusUp)},
		sai.Attribute{ID: sai.PortAttrSpeed, Value: sai.U32(vs.config.PortSpeed)},
	)
	if err != nil {
		return rollback(err)
	}
	for i := uint32(0); i < vs.config.Ports; i++ {
		lanes := make([]uint32, vs.config.LanesPerPort)
		for j := range lanes {
			lanes[j] = i*vs.config.LanesPerPort + uint32(j) + 1
		}
		_, err = add(sai.ObjectTypePort,
			sai.Attribute{ID: sai.PortAttrType, Value: sai.S32(sai.PortTypeLogical)},
			sai.Attribute{ID: sai.PortAttrOperStatus, Value: sai.S32(sai.PortOperStatusDown)},
			sai.Attribute{ID: sai.PortAttrHwLaneList, Value: sai.NewU32List(lanes...)},
			sai.Attribute{ID: sai.PortAttrSpeed, Value: sai.U32(vs.config.PortSpeed)},
			sai.Attribute{ID: sai.PortAttrQosNumberOfQueues, Value: sai.U32(0)},
		)
		if err != nil {
			return rollback(err)
		}
	}
	vr, err := add(sai.ObjectTypeVirtualRouter)
	if err != nil {
		return rollback(err)
	}
	vlan, err := add(sai.ObjectTypeVlan, sai.Attribute{ID: sai.VlanAttrVlanID, Value: sai.U16(1)})
	if err != nil {
		return rollback(err)
	}
	bridge, err := add(sai.ObjectTypeBridge, sai.Attribute{ID: sai.BridgeAttrType, Value: sai.S32(sai.BridgeType1Q)})
	if err != nil {
		return rollback(err)
	}
	trapGroup, err := add(sai.ObjectTypeHostifTrapGroup)
	if err != nil {
		return rollback(err)
	}

	sw.attrs[sai.SwitchAttrCPUPort] = cpuPort
	sw.attrs[sai.SwitchAttrDefaultVirtualRouterID] = vr
	sw.attrs[sai.SwitchAttrDefaultVlanID] = vlan
	sw.attrs[sai.SwitchAttrDefault1QBridgeID] = bridge
	sw.attrs[sai.SwitchAttrDefaultTrapGroup] = trapGroup
	sw.attrs[sai.SwitchAttrOperStatus] = sai.S32(sai.SwitchOperStatusUp)
	if _, hasMac := sw.attrs[sai.SwitchAttrSrcMacAddress]; !hasMac {
		sw.attrs[sai.SwitchAttrSrcMacAddress] = defaultSwitchMac
	}
	vs.objects[switchID] = sw

	vs.Log.Infof("switch %v created with %d ports", switchID, vs.config.Ports)
	return nil
}

// removeSwitch drops the switch and every object created on it.
func (vs *VirtualSwitch) removeSwitch(switchID sai.ObjectID) {
	for key := range vs.objects {
		if key.GetSwitchID() == switchID {
			delete(vs.objects, key)
			delete(vs.counters, key)
		}
	}
}

// frontPanelPorts returns logical ports of the switch ordered by ID.
func (vs *VirtualSwitch) frontPanelPorts(switchID sai.ObjectID) []sai.ObjectID {
	var ports []sai.ObjectID
	for key, obj := range vs.objects {
		oid, isOID := key.(sai.ObjectID)
		if !isOID || oid.GetObjectType() != sai.ObjectTypePort || oid.GetSwitchID() != switchID {
			continue
		}
		if portType, has := obj.attrs[sai.PortAttrType]; has && portType == sai.S32(sai.PortTypeCPU) {
			continue
		}
		ports = append(ports, oid)
	}
	sort.Slice(ports, func(i, j int) bool { return ports[i] < ports[j] })
	return ports
}

// members returns objects of the type whose attribute points to the owner.
func (vs *VirtualSwitch) members(memberType sai.ObjectType, attrID sai.AttrID, owner sai.ObjectID) []sai.ObjectID {
	var oids []sai.ObjectID
	for key, obj := range vs.objects {
		oid, isOID := key.(sai.ObjectID)
		if !isOID || oid.GetObjectType() != memberType {
			continue
		}
		if ref, has := obj.attrs[attrID]; has && ref == owner {
			oids = append(oids, oid)
		}
	}
	sort.Slice(oids, func(i, j int) bool { return oids[i] < oids[j] })
	return oids
}

// available returns how many more objects of the type fit into the switch.
func (vs *VirtualSwitch) available(objectType sai.ObjectType, switchID sai.ObjectID) (uint64, bool) {
	limit, hasLimit := vs.config.limit(objectType)
	if !hasLimit {
		return 0, false
	}
	used := uint64(vs.countObjects(objectType, switchID))
	if used >= limit {
		return 0, true
	}
	return limit - used, true
}

// liveValue computes values of read-only attributes derived from the state.
func (vs *VirtualSwitch) liveValue(key sai.ObjectKey, id sai.AttrID) (sai.Value, bool) {
	oid, isOID := key.(sai.ObjectID)
	if !isOID {
		return nil, false
	}
	switch oid.GetObjectType() {
	case sai.ObjectTypeSwitch:
		switchID := oid
		switch id {
		case sai.SwitchAttrNumberOfActivePorts:
			return sai.U32(len(vs.frontPanelPorts(switchID))), true
		case sai.SwitchAttrPortList:
			return sai.NewObjectList(vs.frontPanelPorts(switchID)...), true
		case sai.SwitchAttrAvailableIPv4RouteEntry:
			count, _ := vs.available(sai.ObjectTypeRouteEntry, switchID)
			return sai.U32(count), true
		case sai.SwitchAttrAvailableFdbEntry:
			count, _ := vs.available(sai.ObjectTypeFdbEntry, switchID)
			return sai.U32(count), true
		}
	case sai.ObjectTypeNextHopGroup:
		switch id {
		case sai.NextHopGroupAttrNextHopCount:
			return sai.U32(len(vs.members(sai.ObjectTypeNextHopGroupMember,
				sai.NextHopGroupMemberAttrNextHopGroupID, oid))), true
		case sai.NextHopGroupAttrNextHopMemberList:
			return sai.NewObjectList(vs.members(sai.ObjectTypeNextHopGroupMember,
				sai.NextHopGroupMemberAttrNextHopGroupID, oid)...), true
		}
	case sai.ObjectTypeVlan:
		if id == sai.VlanAttrMemberList {
			return sai.NewObjectList(vs.members(sai.ObjectTypeVlanMember, sai.VlanMemberAttrVlanID, oid)...), true
		}
	case sai.ObjectTypeBridge:
		if id == sai.BridgeAttrPortList {
			return sai.NewObjectList(vs.members(sai.ObjectTypeBridgePort, sai.BridgePortAttrBridgeID, oid)...), true
		}
	case sai.ObjectTypeLag:
		if id == sai.LagAttrPortList {
			return sai.NewObjectList(vs.members(sai.ObjectTypeLagMember, sai.LagMemberAttrLagID, oid)...), true
		}
	case sai.ObjectTypeAclTable:
		switch id {
		case sai.AclTableAttrEntryList:
			return sai.NewObjectList(vs.members(sai.ObjectTypeAclEntry, sai.AclEntryAttrTableID, oid)...), true
		case sai.AclTableAttrAvailableAclEntry:
			return sai.U32(vs.availableAclEntries(oid)), true
		}
	case sai.ObjectTypePort:
		if id == sai.PortAttrQosQueueList {
			return sai.NewObjectList(vs.members(sai.ObjectTypeQueue, sai.QueueAttrPort, oid)...), true
		}
	}
	return nil, false
}

func (vs *VirtualSwitch) availableAclEntries(table sai.ObjectID) uint64 {
	size := uint64(1024)
	if obj, has := vs.objects[table]; has {
		if value, isU32 := obj.attrs[sai.AclTableAttrSize].(sai.U32); isU32 && value > 0 {
			size = uint64(value)
		}
	}
	used := uint64(len(vs.members(sai.ObjectTypeAclEntry, sai.AclEntryAttrTableID, table)))
	if used >= size {
		return 0
	}
	return size - used
}

func newObject(attrs []sai.Attribute) *vsObject {
	obj := &vsObject{attrs: make(map[sai.AttrID]sai.Value, len(attrs))}
	for _, attr := range attrs {
		obj.attrs[attr.ID] = sai.CloneValue(attr.Value)
	}
	return obj
}

func attrValue(attrs []sai.Attribute, id sai.AttrID) (sai.Value, bool) {
	for _, attr := range attrs {
		if attr.ID == id {
			return attr.Value, true
		}
	}
	return nil, false
}
