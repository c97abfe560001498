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

package saimeta

import (
	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// ProcessNotification applies a notification received from the switch
// to the object database. Notifications that can't be applied are
// logged and ignored.
func (m *Meta) ProcessNotification(n api.Notification) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err := m.checkUsable(); err != nil {
		m.Log.Warnf("dropping notification: %v", err)
		return
	}
	if n == nil {
		m.Log.Warn("dropping nil notification")
		return
	}

	var err error
	done := m.trackOperation(api.OpNotification, sai.ObjectTypeNull, nil)
	defer func() { done(nil, err) }()

	switch notif := n.(type) {
	case *api.FdbEventNotification:
		err = m.processFdbEvents(notif)
	case *api.PortStateChangeNotification:
		err = m.processPortStateChange(notif)
	case *api.SwitchStateChangeNotification:
		if err = m.checkSwitch(sai.ObjectTypeSwitch, notif.SwitchID, notif.SwitchID); err == nil {
			if !saimetadata.SwitchOperStatusEnum.Contains(notif.Status) {
				err = api.NewError(api.InvalidEnumValue, "invalid switch oper status %d", notif.Status)
				break
			}
			m.Log.Infof("switch %v oper status: %s", notif.SwitchID,
				saimetadata.SwitchOperStatusEnum.NameOf(notif.Status))
		}
	case *api.SwitchShutdownRequestNotification:
		if err = m.checkSwitch(sai.ObjectTypeSwitch, notif.SwitchID, notif.SwitchID); err == nil {
			m.Log.Warnf("switch %v requested shutdown", notif.SwitchID)
		}
	default:
		err = api.NewError(api.NotSupported, "unsupported notification %T", n)
	}
	if err != nil {
		m.Log.Warnf("ignoring %s notification: %v", n.NotificationName(), err)
	}
}

// processFdbEvents applies every event, the first failure is returned.
func (m *Meta) processFdbEvents(notif *api.FdbEventNotification) error {
	var firstErr error
	for _, event := range notif.Events {
		var err error
		switch event.EventType {
		case api.FdbEventLearned:
			err = m.learnFdbEntry(event)
		case api.FdbEventAged:
			err = m.ageFdbEntry(event)
		case api.FdbEventMove:
			err = m.moveFdbEntry(event)
		case api.FdbEventFlushed:
			err = m.flushFdbEvent(event)
		default:
			err = api.NewError(api.InvalidEnumValue, "unknown FDB event %v", event.EventType)
		}
		if err != nil {
			m.Log.Warnf("can't apply %v of %v: %v", event.EventType, event.Entry, err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

func (m *Meta) learnFdbEntry(event api.FdbEvent) error {
	entry := event.Entry
	if err := m.validateCreateEntry(entry, event.Attrs); err != nil {
		return err
	}
	attrs := event.Attrs
	if _, hasType := attrValues(attrs)[sai.FdbEntryAttrType]; !hasType {
		attrs = append(sai.CloneAttributes(attrs), sai.Attribute{
			ID:    sai.FdbEntryAttrType,
			Value: sai.S32(sai.FdbEntryTypeDynamic),
		})
	}
	canonical, err := m.validateCreate(sai.ObjectTypeFdbEntry, entry.SwitchID, entry, attrs)
	if err != nil {
		return err
	}
	m.insertObject(entry, attrs, canonical)
	m.Log.Debugf("learned FDB entry %v", entry)
	return nil
}

func (m *Meta) ageFdbEntry(event api.FdbEvent) error {
	if !m.db.Exists(event.Entry) {
		return api.NewError(api.NotFound, "aged entry does not exist").
			WithObject(sai.ObjectTypeFdbEntry, event.Entry)
	}
	m.dropObject(event.Entry)
	m.Log.Debugf("aged FDB entry %v", event.Entry)
	return nil
}

func (m *Meta) moveFdbEntry(event api.FdbEvent) error {
	entry := event.Entry
	if !m.db.Exists(entry) {
		return api.NewError(api.NotFound, "moved entry does not exist").
			WithObject(sai.ObjectTypeFdbEntry, entry)
	}
	port, hasPort := attrValues(event.Attrs)[sai.FdbEntryAttrBridgePortID]
	if !hasPort {
		return api.NewError(api.InvalidArgument, "move event carries no bridge port").
			WithObject(sai.ObjectTypeFdbEntry, entry)
	}
	attr := sai.Attribute{ID: sai.FdbEntryAttrBridgePortID, Value: port}
	md := m.Registry.LookupAttribute(sai.ObjectTypeFdbEntry, attr.ID)
	if err := m.checkValue(sai.ObjectTypeFdbEntry, entry, md, port); err != nil {
		return err
	}
	if err := m.checkReferences(sai.ObjectTypeFdbEntry, entry, entry.SwitchID, md, port); err != nil {
		return err
	}
	m.applySet(entry, attr)
	m.Log.Debugf("FDB entry %v moved to %v", entry, port)
	return nil
}

// flushFdbEvent removes the flushed entry, or all dynamic entries
// matching the event if the MAC address is zero.
func (m *Meta) flushFdbEvent(event api.FdbEvent) error {
	entry := event.Entry
	if !entry.MacAddress.IsZero() {
		return m.ageFdbEntry(event)
	}
	if err := m.checkSwitch(sai.ObjectTypeFdbEntry, entry, entry.SwitchID); err != nil {
		return err
	}
	filter := fdbFilter{
		switchID:  entry.SwitchID,
		bvID:      entry.BvID,
		entryType: sai.FdbFlushEntryTypeDynamic,
	}
	if port, has := attrValues(event.Attrs)[sai.FdbEntryAttrBridgePortID]; has {
		if oid, isOID := port.(sai.ObjectID); isOID {
			filter.bridgePort = oid
		}
	}
	removed := m.removeFdbEntries(filter)
	m.Log.Debugf("flush event removed %d FDB entries", len(removed))
	return nil
}

func (m *Meta) processPortStateChange(notif *api.PortStateChangeNotification) error {
	for _, port := range notif.Ports {
		if port.PortID.GetObjectType() != sai.ObjectTypePort || !m.db.Exists(port.PortID) {
			return api.NewError(api.InvalidArgument, "port %v does not exist", port.PortID)
		}
		if !saimetadata.PortOperStatusEnum.Contains(port.Status) {
			return api.NewError(api.InvalidEnumValue, "invalid port oper status %d", port.Status).
				WithObject(sai.ObjectTypePort, port.PortID)
		}
		m.Log.Debugf("port %v oper status: %s", port.PortID, saimetadata.PortOperStatusEnum.NameOf(port.Status))
	}
	return nil
}
