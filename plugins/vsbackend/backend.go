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
	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// Create creates the object, a switch is created together with its ports,
// default VLAN, default virtual router, 1Q bridge and trap group.
func (vs *VirtualSwitch) Create(key sai.ObjectKey, attrs []sai.Attribute) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.createObject(api.OpCreate, key, attrs)
}

// Remove removes the object, removing a switch removes all its objects.
func (vs *VirtualSwitch) Remove(key sai.ObjectKey) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.removeObject(api.OpRemove, key)
}

// Set changes one attribute of the object.
func (vs *VirtualSwitch) Set(key sai.ObjectKey, attr sai.Attribute) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.setAttribute(api.OpSet, key, attr)
}

// Get fills values of the requested attributes.
func (vs *VirtualSwitch) Get(key sai.ObjectKey, attrs []sai.Attribute) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.fault(api.OpGet, key); err != nil {
		return err
	}
	obj, exists := vs.objects[key]
	if !exists {
		return sai.StatusItemNotFound
	}
	for i := range attrs {
		value, err := vs.attrValue(key, obj, attrs[i].ID)
		if err != nil {
			return err
		}
		attrs[i].Value = value
	}
	return nil
}

// BulkCreate creates the objects one by one.
func (vs *VirtualSwitch) BulkCreate(keys []sai.ObjectKey, attrLists [][]sai.Attribute, mode api.BulkMode) []error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return runBulk(len(keys), mode, func(i int) error {
		return vs.createObject(api.OpBulkCreate, keys[i], attrLists[i])
	})
}

// BulkRemove removes the objects one by one.
func (vs *VirtualSwitch) BulkRemove(keys []sai.ObjectKey, mode api.BulkMode) []error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return runBulk(len(keys), mode, func(i int) error {
		return vs.removeObject(api.OpBulkRemove, keys[i])
	})
}

// BulkSet sets attributes of the objects one by one.
func (vs *VirtualSwitch) BulkSet(keys []sai.ObjectKey, attrs []sai.Attribute, mode api.BulkMode) []error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	return runBulk(len(keys), mode, func(i int) error {
		return vs.setAttribute(api.OpBulkSet, keys[i], attrs[i])
	})
}

// FlushFdbEntries removes FDB entries of the switch matching the filter.
func (vs *VirtualSwitch) FlushFdbEntries(switchID sai.ObjectID, attrs []sai.Attribute) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.fault(api.OpFlushFdb, switchID); err != nil {
		return err
	}
	if _, exists := vs.objects[switchID]; !exists {
		return sai.StatusInvalidObjectID
	}

	bridgePort, _ := attrValue(attrs, sai.FdbFlushAttrBridgePortID)
	bvID, _ := attrValue(attrs, sai.FdbFlushAttrBvID)
	flushType := sai.FdbFlushEntryTypeDynamic
	if value, has := attrValue(attrs, sai.FdbFlushAttrEntryType); has {
		flushType = int32(value.(sai.S32))
	}

	var flushed int
	for key, obj := range vs.objects {
		entry, isFdb := key.(sai.FdbEntry)
		if !isFdb || entry.SwitchID != switchID {
			continue
		}
		if bvID != nil && sai.Value(entry.BvID) != bvID {
			continue
		}
		if bridgePort != nil && obj.attrs[sai.FdbEntryAttrBridgePortID] != bridgePort {
			continue
		}
		if !fdbTypeMatches(obj.attrs[sai.FdbEntryAttrType], flushType) {
			continue
		}
		delete(vs.objects, key)
		flushed++
	}
	vs.Log.Debugf("flushed %d FDB entries of switch %v", flushed, switchID)
	return nil
}

func fdbTypeMatches(entryType sai.Value, flushType int32) bool {
	switch flushType {
	case sai.FdbFlushEntryTypeAll:
		return true
	case sai.FdbFlushEntryTypeStatic:
		return entryType == sai.S32(sai.FdbEntryTypeStatic)
	}
	return entryType == sai.S32(sai.FdbEntryTypeDynamic)
}

// GetStats reads counters of the object.
func (vs *VirtualSwitch) GetStats(key sai.ObjectKey, counterIDs []sai.StatID, mode api.StatsMode) ([]uint64, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.checkStats(api.OpGetStats, key); err != nil {
		return nil, err
	}
	counters := vs.counters[key]
	values := make([]uint64, len(counterIDs))
	for i, id := range counterIDs {
		values[i] = counters[id]
		if mode == api.StatsModeReadAndClear && counters != nil {
			delete(counters, id)
		}
	}
	return values, nil
}

// ClearStats resets counters of the object.
func (vs *VirtualSwitch) ClearStats(key sai.ObjectKey, counterIDs []sai.StatID) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.checkStats(api.OpClearStats, key); err != nil {
		return err
	}
	for _, id := range counterIDs {
		delete(vs.counters[key], id)
	}
	return nil
}

func (vs *VirtualSwitch) checkStats(op api.Operation, key sai.ObjectKey) error {
	if err := vs.fault(op, key); err != nil {
		return err
	}
	if _, exists := vs.objects[key]; !exists {
		return sai.StatusItemNotFound
	}
	if vs.Registry.StatEnum(key.GetObjectType()) == nil {
		return sai.StatusNotSupported
	}
	return nil
}

// ObjectTypeGetAvailability returns how many more objects of the type
// the switch can hold.
func (vs *VirtualSwitch) ObjectTypeGetAvailability(switchID sai.ObjectID, objectType sai.ObjectType, attrs []sai.Attribute) (uint64, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.fault(api.OpQueryAvailability, switchID); err != nil {
		return 0, err
	}
	if _, exists := vs.objects[switchID]; !exists {
		return 0, sai.StatusInvalidObjectID
	}
	count, limited := vs.available(objectType, switchID)
	if !limited {
		return 0, sai.StatusNotSupported
	}
	return count, nil
}

// QueryAttributeCapability derives capability from the attribute flags
// unless overridden by the configuration.
func (vs *VirtualSwitch) QueryAttributeCapability(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID) (api.AttrCapability, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.fault(api.OpQueryCapability, switchID); err != nil {
		return api.AttrCapability{}, err
	}
	md := vs.Registry.LookupAttribute(objectType, attrID)
	if md == nil {
		return api.AttrCapability{}, sai.StatusInvalidAttribute
	}
	if capability, overridden := vs.config.Capabilities[md.Name]; overridden {
		return capability, nil
	}
	return api.AttrCapability{
		CreateImplemented: !md.IsReadOnly(),
		SetImplemented:    md.IsCreateAndSet(),
		GetImplemented:    true,
	}, nil
}

// QueryAttributeEnumValuesCapability returns enum values of the attribute
// except those configured as unsupported.
func (vs *VirtualSwitch) QueryAttributeEnumValuesCapability(switchID sai.ObjectID, objectType sai.ObjectType, attrID sai.AttrID) ([]int32, error) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if err := vs.fault(api.OpQueryEnumValues, switchID); err != nil {
		return nil, err
	}
	md := vs.Registry.LookupAttribute(objectType, attrID)
	if md == nil || md.Enum == nil {
		return nil, sai.StatusInvalidParameter
	}
	unsupported := make(map[string]bool)
	for _, name := range vs.config.UnsupportedEnumValues[md.Name] {
		unsupported[name] = true
	}
	var values []int32
	for i, value := range md.Enum.Values {
		if !unsupported[md.Enum.ValueNames[i]] {
			values = append(values, value)
		}
	}
	return values, nil
}

func (vs *VirtualSwitch) createObject(op api.Operation, key sai.ObjectKey, attrs []sai.Attribute) error {
	if err := vs.fault(op, key); err != nil {
		return err
	}
	if _, exists := vs.objects[key]; exists {
		return sai.StatusItemAlreadyExists
	}
	objectType := key.GetObjectType()
	if objectType == sai.ObjectTypeSwitch {
		return vs.createSwitch(key.(sai.ObjectID), attrs)
	}
	switchID := key.GetSwitchID()
	if _, exists := vs.objects[switchID]; !exists {
		return sai.StatusInvalidObjectID
	}
	if count, limited := vs.available(objectType, switchID); limited && count == 0 {
		return sai.StatusTableFull
	}
	vs.objects[key] = newObject(attrs)
	return nil
}

func (vs *VirtualSwitch) removeObject(op api.Operation, key sai.ObjectKey) error {
	if err := vs.fault(op, key); err != nil {
		return err
	}
	if _, exists := vs.objects[key]; !exists {
		return sai.StatusItemNotFound
	}
	if key.GetObjectType() == sai.ObjectTypeSwitch {
		vs.removeSwitch(key.(sai.ObjectID))
		vs.Log.Infof("switch %v removed", key)
		return nil
	}
	delete(vs.objects, key)
	delete(vs.counters, key)
	return nil
}

func (vs *VirtualSwitch) setAttribute(op api.Operation, key sai.ObjectKey, attr sai.Attribute) error {
	if err := vs.fault(op, key); err != nil {
		return err
	}
	obj, exists := vs.objects[key]
	if !exists {
		return sai.StatusItemNotFound
	}
	obj.attrs[attr.ID] = sai.CloneValue(attr.Value)
	return nil
}

// attrValue returns the live, stored or default value of the attribute.
func (vs *VirtualSwitch) attrValue(key sai.ObjectKey, obj *vsObject, id sai.AttrID) (sai.Value, error) {
	if value, live := vs.liveValue(key, id); live {
		return value, nil
	}
	if value, stored := obj.attrs[id]; stored {
		return sai.CloneValue(value), nil
	}
	md := vs.Registry.LookupAttribute(key.GetObjectType(), id)
	if md == nil {
		return nil, sai.StatusUnknownAttribute
	}
	if md.HasDefault() {
		return md.Default(), nil
	}
	if md.DefaultValueType == saimetadata.DefaultSwitchInternal {
		if value := vs.internalDefault(key, md); value != nil {
			return value, nil
		}
	}
	return nil, sai.StatusAttrNotImplemented
}

// internalDefault returns values the switch picks on its own.
func (vs *VirtualSwitch) internalDefault(key sai.ObjectKey, md *saimetadata.AttrMetadata) sai.Value {
	sw, hasSwitch := vs.objects[key.GetSwitchID()]
	if !hasSwitch {
		return nil
	}
	switch {
	case md.ValueType == sai.ValueTypeMac:
		return sw.attrs[sai.SwitchAttrSrcMacAddress]
	case md.ObjectType == sai.ObjectTypeBridgePort && md.AttrID == sai.BridgePortAttrBridgeID:
		return sw.attrs[sai.SwitchAttrDefault1QBridgeID]
	case md.ObjectType == sai.ObjectTypeQueue && md.AttrID == sai.QueueAttrParentSchedulerNode:
		return vs.objects[key].attrs[sai.QueueAttrPort]
	}
	return nil
}

// runBulk runs op for every element, after the first failure in the stop
// mode the remaining elements are not executed.
func runBulk(count int, mode api.BulkMode, op func(i int) error) []error {
	statuses := make([]error, count)
	failed := false
	for i := 0; i < count; i++ {
		if failed && mode == api.BulkStopOnError {
			statuses[i] = sai.StatusNotExecuted
			continue
		}
		if statuses[i] = op(i); statuses[i] != nil {
			failed = true
		}
	}
	return statuses
}
