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

package api

import (
	"strconv"

	"github.com/ligato/sai-agent/api/sai"
)

// Notification is an asynchronous event reported by the switch.
type Notification interface {
	// NotificationName returns the SAI name of the notification.
	NotificationName() string

	isNotification()
}

// FdbEventType is the kind of FDB event.
type FdbEventType int

const (
	FdbEventLearned FdbEventType = iota
	FdbEventAged
	FdbEventMove
	FdbEventFlushed
)

func (t FdbEventType) String() string {
	switch t {
	case FdbEventLearned:
		return "SAI_FDB_EVENT_LEARNED"
	case FdbEventAged:
		return "SAI_FDB_EVENT_AGED"
	case FdbEventMove:
		return "SAI_FDB_EVENT_MOVE"
	case FdbEventFlushed:
		return "SAI_FDB_EVENT_FLUSHED"
	}
	return "SAI_FDB_EVENT_" + strconv.Itoa(int(t))
}

// FdbEvent is one learned/aged/moved/flushed FDB entry.
// Attrs carry FDB entry attributes (e.g. bridge port).
type FdbEvent struct {
	EventType FdbEventType
	Entry     sai.FdbEntry
	Attrs     []sai.Attribute
}

// FdbEventNotification reports changes of the dynamic FDB entries.
type FdbEventNotification struct {
	Events []FdbEvent
}

// PortOperStatus is the oper status change of one port.
type PortOperStatus struct {
	PortID sai.ObjectID
	Status int32
}

// PortStateChangeNotification reports port oper status changes.
type PortStateChangeNotification struct {
	Ports []PortOperStatus
}

// SwitchStateChangeNotification reports switch oper status change.
type SwitchStateChangeNotification struct {
	SwitchID sai.ObjectID
	Status   int32
}

// SwitchShutdownRequestNotification asks for the switch to be shut down.
type SwitchShutdownRequestNotification struct {
	SwitchID sai.ObjectID
}

func (*FdbEventNotification) NotificationName() string { return "fdb_event" }
func (*PortStateChangeNotification) NotificationName() string {
	return "port_state_change"
}
func (*SwitchStateChangeNotification) NotificationName() string {
	return "switch_state_change"
}
func (*SwitchShutdownRequestNotification) NotificationName() string {
	return "switch_shutdown_request"
}

func (*FdbEventNotification) isNotification()              {}
func (*PortStateChangeNotification) isNotification()       {}
func (*SwitchStateChangeNotification) isNotification()     {}
func (*SwitchShutdownRequestNotification) isNotification() {}
