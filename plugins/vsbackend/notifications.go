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
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// LearnFdbEntry simulates learning of a MAC address on the bridge port.
// The dynamic entry is stored and LEARNED event is sent.
func (vs *VirtualSwitch) LearnFdbEntry(entry sai.FdbEntry, bridgePort sai.ObjectID) error {
	attrs := []sai.Attribute{
		{ID: sai.FdbEntryAttrType, Value: sai.S32(sai.FdbEntryTypeDynamic)},
		{ID: sai.FdbEntryAttrBridgePortID, Value: bridgePort},
	}

	vs.mu.Lock()
	if _, exists := vs.objects[entry.SwitchID]; !exists {
		vs.mu.Unlock()
		return sai.StatusInvalidObjectID
	}
	if _, exists := vs.objects[entry]; exists {
		vs.mu.Unlock()
		return sai.StatusItemAlreadyExists
	}
	vs.objects[entry] = newObject(attrs)
	handler := vs.notify
	vs.mu.Unlock()

	vs.sendFdbEvent(handler, api.FdbEventLearned, entry, attrs)
	return nil
}

// AgeFdbEntry simulates aging of a dynamic entry.
func (vs *VirtualSwitch) AgeFdbEntry(entry sai.FdbEntry) error {
	vs.mu.Lock()
	obj, exists := vs.objects[entry]
	if !exists {
		vs.mu.Unlock()
		return sai.StatusItemNotFound
	}
	delete(vs.objects, entry)
	handler := vs.notify
	vs.mu.Unlock()

	attrs := []sai.Attribute{{ID: sai.FdbEntryAttrBridgePortID, Value: obj.attrs[sai.FdbEntryAttrBridgePortID]}}
	vs.sendFdbEvent(handler, api.FdbEventAged, entry, attrs)
	return nil
}

// MoveFdbEntry simulates the MAC address showing up on another bridge port.
func (vs *VirtualSwitch) MoveFdbEntry(entry sai.FdbEntry, bridgePort sai.ObjectID) error {
	vs.mu.Lock()
	obj, exists := vs.objects[entry]
	if !exists {
		vs.mu.Unlock()
		return sai.StatusItemNotFound
	}
	obj.attrs[sai.FdbEntryAttrBridgePortID] = bridgePort
	handler := vs.notify
	vs.mu.Unlock()

	attrs := []sai.Attribute{{ID: sai.FdbEntryAttrBridgePortID, Value: bridgePort}}
	vs.sendFdbEvent(handler, api.FdbEventMove, entry, attrs)
	return nil
}

// SetPortOperStatus changes operational status of the port and sends
// the port state change notification.
func (vs *VirtualSwitch) SetPortOperStatus(port sai.ObjectID, status int32) error {
	vs.mu.Lock()
	obj, exists := vs.objects[port]
	if !exists || port.GetObjectType() != sai.ObjectTypePort {
		vs.mu.Unlock()
		return sai.StatusInvalidObjectID
	}
	obj.attrs[sai.PortAttrOperStatus] = sai.S32(status)
	handler := vs.notify
	vs.mu.Unlock()

	if handler != nil {
		handler(&api.PortStateChangeNotification{
			Ports: []api.PortOperStatus{{PortID: port, Status: status}},
		})
	}
	return nil
}

// RequestShutdown sends the shutdown request of the switch.
func (vs *VirtualSwitch) RequestShutdown(switchID sai.ObjectID) {
	vs.mu.Lock()
	handler := vs.notify
	vs.mu.Unlock()

	if handler != nil {
		handler(&api.SwitchShutdownRequestNotification{SwitchID: switchID})
	}
}

func (vs *VirtualSwitch) sendFdbEvent(handler NotificationHandler, eventType api.FdbEventType, entry sai.FdbEntry, attrs []sai.Attribute) {
	if handler == nil {
		return
	}
	handler(&api.FdbEventNotification{
		Events: []api.FdbEvent{{EventType: eventType, Entry: entry, Attrs: attrs}},
	})
}
