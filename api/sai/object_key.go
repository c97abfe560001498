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
	"encoding/json"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
)

// ObjectKey identifies one object in the database. It is either an ObjectID
// or one of the structured entries (FdbEntry, RouteEntry, NeighborEntry).
// All implementations are comparable and can be used as map keys.
type ObjectKey interface {
	// GetObjectType returns the type of the identified object.
	GetObjectType() ObjectType

	// GetSwitchID returns ID of the switch the object belongs to.
	GetSwitchID() ObjectID

	// String returns the canonical textual form of the key.
	String() string

	isObjectKey()
}

const (
	oidIndexBits       = 48
	oidIndexMask       = (uint64(1) << oidIndexBits) - 1
	oidObjectTypeShift = 48
	oidSwitchShift     = 56

	// MaxObjectIndex is the largest index encodable into an object ID.
	MaxObjectIndex = oidIndexMask
)

// ObjectID is a 64-bit opaque handle of a switch object. The switch index
// is encoded in bits 56-63, the object type in bits 48-55 and a per-type
// index in bits 0-47.
type ObjectID uint64

// NullObjectID is the reserved "no object" value.
const NullObjectID ObjectID = 0

// NewObjectID builds object ID from its components.
func NewObjectID(switchIndex uint8, objectType ObjectType, index uint64) ObjectID {
	return ObjectID(uint64(switchIndex)<<oidSwitchShift |
		(uint64(uint8(objectType)) << oidObjectTypeShift) |
		(index & oidIndexMask))
}

// SwitchObjectID returns the object ID of the switch with the given index.
func SwitchObjectID(switchIndex uint8) ObjectID {
	return NewObjectID(switchIndex, ObjectTypeSwitch, 0)
}

// GetObjectType decodes the object type from the ID.
func (oid ObjectID) GetObjectType() ObjectType {
	if oid == NullObjectID {
		return ObjectTypeNull
	}
	return ObjectType((uint64(oid) >> oidObjectTypeShift) & 0xff)
}

// SwitchIndex decodes the switch index from the ID.
func (oid ObjectID) SwitchIndex() uint8 {
	return uint8(uint64(oid) >> oidSwitchShift)
}

// GetSwitchID returns ID of the switch the object belongs to.
func (oid ObjectID) GetSwitchID() ObjectID {
	if oid == NullObjectID {
		return NullObjectID
	}
	return SwitchObjectID(oid.SwitchIndex())
}

// Index decodes the per-type index from the ID.
func (oid ObjectID) Index() uint64 {
	return uint64(oid) & oidIndexMask
}

// IsNull returns true for the null object ID.
func (oid ObjectID) IsNull() bool {
	return oid == NullObjectID
}

// String returns ID in the form "oid:0x<hex>".
func (oid ObjectID) String() string {
	return "oid:0x" + strconv.FormatUint(uint64(oid), 16)
}

// ValueType implements Value.
func (oid ObjectID) ValueType() AttrValueType {
	return ValueTypeObjectID
}

func (ObjectID) isObjectKey() {}
func (ObjectID) isValue()     {}

// ParseObjectID parses ID serialized by ObjectID.String().
func ParseObjectID(s string) (ObjectID, error) {
	if !strings.HasPrefix(s, "oid:0x") {
		return NullObjectID, fmt.Errorf("invalid object ID %q: missing oid:0x prefix", s)
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "oid:0x"), 16, 64)
	if err != nil {
		return NullObjectID, fmt.Errorf("invalid object ID %q: %v", s, err)
	}
	return ObjectID(v), nil
}

// MacAddress is a 48-bit ethernet address.
type MacAddress [6]byte

// String returns MAC address in the form "00:AA:BB:CC:DD:EE".
func (mac MacAddress) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		mac[0], mac[1], mac[2], mac[3], mac[4], mac[5])
}

// IsZero returns true for the all-zero address.
func (mac MacAddress) IsZero() bool {
	return mac == MacAddress{}
}

// ValueType implements Value.
func (MacAddress) ValueType() AttrValueType {
	return ValueTypeMac
}

func (MacAddress) isValue() {}

// ParseMacAddress parses 48-bit MAC address.
func ParseMacAddress(s string) (MacAddress, error) {
	var mac MacAddress
	hw, err := net.ParseMAC(s)
	if err != nil {
		return mac, err
	}
	if len(hw) != len(mac) {
		return mac, fmt.Errorf("invalid MAC address %q: expected 48 bits", s)
	}
	copy(mac[:], hw)
	return mac, nil
}

// FdbEntry identifies an entry in the forwarding database.
type FdbEntry struct {
	SwitchID   ObjectID
	MacAddress MacAddress
	// BvID references VLAN or 1D bridge.
	BvID ObjectID
}

// GetObjectType returns FDB_ENTRY.
func (FdbEntry) GetObjectType() ObjectType { return ObjectTypeFdbEntry }

// GetSwitchID returns the switch ID member.
func (e FdbEntry) GetSwitchID() ObjectID { return e.SwitchID }

func (FdbEntry) isObjectKey() {}

type fdbEntryJSON struct {
	BvID     string `json:"bvid"`
	Mac      string `json:"mac"`
	SwitchID string `json:"switch_id"`
}

// String returns the canonical JSON form of the entry.
func (e FdbEntry) String() string {
	return marshalKey(fdbEntryJSON{
		BvID:     e.BvID.String(),
		Mac:      e.MacAddress.String(),
		SwitchID: e.SwitchID.String(),
	})
}

// RouteEntry identifies an IP route.
type RouteEntry struct {
	SwitchID    ObjectID
	VrID        ObjectID
	Destination netip.Prefix
}

// GetObjectType returns ROUTE_ENTRY.
func (RouteEntry) GetObjectType() ObjectType { return ObjectTypeRouteEntry }

// GetSwitchID returns the switch ID member.
func (e RouteEntry) GetSwitchID() ObjectID { return e.SwitchID }

func (RouteEntry) isObjectKey() {}

type routeEntryJSON struct {
	Dest     string `json:"dest"`
	SwitchID string `json:"switch_id"`
	Vr       string `json:"vr"`
}

// String returns the canonical JSON form of the entry.
func (e RouteEntry) String() string {
	return marshalKey(routeEntryJSON{
		Dest:     e.Destination.String(),
		SwitchID: e.SwitchID.String(),
		Vr:       e.VrID.String(),
	})
}

// NeighborEntry identifies a neighbor (ARP/ND) entry.
type NeighborEntry struct {
	SwitchID  ObjectID
	RifID     ObjectID
	IPAddress netip.Addr
}

// GetObjectType returns NEIGHBOR_ENTRY.
func (NeighborEntry) GetObjectType() ObjectType { return ObjectTypeNeighborEntry }

// GetSwitchID returns the switch ID member.
func (e NeighborEntry) GetSwitchID() ObjectID { return e.SwitchID }

func (NeighborEntry) isObjectKey() {}

type neighborEntryJSON struct {
	IP       string `json:"ip"`
	Rif      string `json:"rif"`
	SwitchID string `json:"switch_id"`
}

// String returns the canonical JSON form of the entry.
func (e NeighborEntry) String() string {
	return marshalKey(neighborEntryJSON{
		IP:       e.IPAddress.String(),
		Rif:      e.RifID.String(),
		SwitchID: e.SwitchID.String(),
	})
}

func marshalKey(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		// only strings are marshalled
		panic(err)
	}
	return string(b)
}

// ParseObjectKey parses the canonical form of a key of the given object type.
func ParseObjectKey(objectType ObjectType, s string) (ObjectKey, error) {
	switch objectType {
	case ObjectTypeFdbEntry:
		var raw fdbEntryJSON
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, fmt.Errorf("invalid FDB entry %q: %v", s, err)
		}
		switchID, err := ParseObjectID(raw.SwitchID)
		if err != nil {
			return nil, err
		}
		bvID, err := ParseObjectID(raw.BvID)
		if err != nil {
			return nil, err
		}
		mac, err := ParseMacAddress(raw.Mac)
		if err != nil {
			return nil, err
		}
		return FdbEntry{SwitchID: switchID, MacAddress: mac, BvID: bvID}, nil

	case ObjectTypeRouteEntry:
		var raw routeEntryJSON
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, fmt.Errorf("invalid route entry %q: %v", s, err)
		}
		switchID, err := ParseObjectID(raw.SwitchID)
		if err != nil {
			return nil, err
		}
		vrID, err := ParseObjectID(raw.Vr)
		if err != nil {
			return nil, err
		}
		dest, err := netip.ParsePrefix(raw.Dest)
		if err != nil {
			return nil, err
		}
		return RouteEntry{SwitchID: switchID, VrID: vrID, Destination: dest}, nil

	case ObjectTypeNeighborEntry:
		var raw neighborEntryJSON
		if err := json.Unmarshal([]byte(s), &raw); err != nil {
			return nil, fmt.Errorf("invalid neighbor entry %q: %v", s, err)
		}
		switchID, err := ParseObjectID(raw.SwitchID)
		if err != nil {
			return nil, err
		}
		rifID, err := ParseObjectID(raw.Rif)
		if err != nil {
			return nil, err
		}
		ip, err := netip.ParseAddr(raw.IP)
		if err != nil {
			return nil, err
		}
		return NeighborEntry{SwitchID: switchID, RifID: rifID, IPAddress: ip}, nil
	}

	oid, err := ParseObjectID(s)
	if err != nil {
		return nil, err
	}
	if oid.GetObjectType() != objectType {
		return nil, fmt.Errorf("object ID %s is not of type %s", oid, objectType)
	}
	return oid, nil
}
