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

// Package vsbackend implements a virtual switch, an in-memory southbound
// backend of the meta layer used for testing and by the agent when no
// hardware is present.
package vsbackend

import (
	"sync"

	"github.com/ligato/cn-infra/config"
	"github.com/ligato/cn-infra/infra"
	"github.com/ligato/cn-infra/logging"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// FaultInjector decides whether the operation on the key should fail.
// Returning nil lets the operation proceed.
type FaultInjector func(op api.Operation, key sai.ObjectKey) error

// NotificationHandler receives notifications generated by the switch.
type NotificationHandler func(n api.Notification)

// VirtualSwitch keeps objects of any number of switches in memory.
type VirtualSwitch struct {
	Deps

	config *Config

	mu       sync.Mutex
	objects  map[sai.ObjectKey]*vsObject
	counters map[sai.ObjectKey]map[sai.StatID]uint64
	faults   FaultInjector
	notify   NotificationHandler
}

// Deps lists dependencies of the virtual switch.
type Deps struct {
	infra.PluginName
	Log         logging.PluginLogger
	Cfg         config.PluginConfig
	Registry    saimetadata.Registry
	IDAllocator api.IDAllocator
}

type vsObject struct {
	attrs map[sai.AttrID]sai.Value
}

// NewPlugin creates a new virtual switch with the provided Options.
func NewPlugin(opts ...Option) *VirtualSwitch {
	p := &VirtualSwitch{}

	p.PluginName = "vsbackend"

	for _, o := range opts {
		o(p)
	}

	if p.Log == nil {
		p.Log = logging.ForPlugin(p.String())
	}
	if p.Registry == nil {
		p.Registry = saimetadata.DefaultRegistry()
	}
	if p.IDAllocator == nil {
		p.IDAllocator = oidalloc.NewAllocator()
	}

	return p
}

// Option is a function that can be used in NewPlugin to customize Plugin.
type Option func(*VirtualSwitch)

// UseDeps returns Option that can inject custom dependencies.
func UseDeps(f func(*Deps)) Option {
	return func(p *VirtualSwitch) {
		f(&p.Deps)
	}
}

// UseConf returns Option which injects a particular configuration.
func UseConf(conf Config) Option {
	return func(p *VirtualSwitch) {
		p.config = &conf
	}
}

// Init loads the configuration.
func (vs *VirtualSwitch) Init() error {
	if vs.config == nil {
		cfg, err := vs.loadConfig()
		if err != nil {
			return err
		}
		vs.config = cfg
	} else if err := vs.config.validate(); err != nil {
		return err
	}
	vs.objects = make(map[sai.ObjectKey]*vsObject)
	vs.counters = make(map[sai.ObjectKey]map[sai.StatID]uint64)
	return nil
}

// Close drops all objects.
func (vs *VirtualSwitch) Close() error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	vs.objects = make(map[sai.ObjectKey]*vsObject)
	vs.counters = make(map[sai.ObjectKey]map[sai.StatID]uint64)
	return nil
}

// SetFaultInjector installs the function consulted before every operation.
// Nil removes the injector.
func (vs *VirtualSwitch) SetFaultInjector(faults FaultInjector) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.faults = faults
}

// SetNotificationHandler installs the receiver of switch notifications.
func (vs *VirtualSwitch) SetNotificationHandler(handler NotificationHandler) {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	vs.notify = handler
}

// ObjectCount returns the number of objects of the type held by the switch.
func (vs *VirtualSwitch) ObjectCount(objectType sai.ObjectType) int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.countObjects(objectType, sai.NullObjectID)
}

// HasObject returns true if the switch holds the object.
func (vs *VirtualSwitch) HasObject(key sai.ObjectKey) bool {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	_, has := vs.objects[key]
	return has
}

// SetCounter changes value of one counter of the object.
func (vs *VirtualSwitch) SetCounter(key sai.ObjectKey, id sai.StatID, value uint64) {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	counters, has := vs.counters[key]
	if !has {
		counters = make(map[sai.StatID]uint64)
		vs.counters[key] = counters
	}
	counters[id] = value
}

// fault returns error injected for the operation.
func (vs *VirtualSwitch) fault(op api.Operation, key sai.ObjectKey) error {
	if vs.faults == nil {
		return nil
	}
	if err := vs.faults(op, key); err != nil {
		vs.Log.Debugf("injected failure of %s %v: %v", op, key, err)
		return err
	}
	return nil
}

// countObjects counts objects of the type, on one switch unless switchID is null.
func (vs *VirtualSwitch) countObjects(objectType sai.ObjectType, switchID sai.ObjectID) int {
	var count int
	for key := range vs.objects {
		if key.GetObjectType() != objectType {
			continue
		}
		if switchID.IsNull() || key.GetSwitchID() == switchID {
			count++
		}
	}
	return count
}
