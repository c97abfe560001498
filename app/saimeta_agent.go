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

// Package app wires together plugins of the SAI meta agent.
package app

import (
	"github.com/ligato/cn-infra/config"
	"github.com/ligato/cn-infra/logging/logmanager"
	"github.com/ligato/cn-infra/rpc/prometheus"
	"github.com/ligato/cn-infra/rpc/rest"

	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/plugins/persist"
	"github.com/ligato/sai-agent/plugins/saimeta"
	"github.com/ligato/sai-agent/plugins/vsbackend"
)

// SaiMetaAgent is the meta layer in front of a virtual switch with its
// REST API, Prometheus metrics and snapshot persistence.
type SaiMetaAgent struct {
	LogManager *logmanager.Plugin

	RESTAPI    *rest.Plugin
	Prometheus *prometheus.Plugin

	VirtualSwitch *vsbackend.VirtualSwitch
	Meta          *saimeta.Meta
	Persist       *persist.Plugin
}

// New creates the agent, the virtual switch and the meta layer share
// one object ID allocator.
func New() *SaiMetaAgent {
	alloc := oidalloc.NewAllocator()

	vs := vsbackend.NewPlugin(vsbackend.UseDeps(func(deps *vsbackend.Deps) {
		deps.Cfg = config.ForPlugin("vsbackend")
		deps.IDAllocator = alloc
	}))
	meta := saimeta.NewPlugin(saimeta.UseDeps(func(deps *saimeta.Deps) {
		deps.Cfg = config.ForPlugin("saimeta")
		deps.HTTPHandlers = &rest.DefaultPlugin
		deps.Backend = vs
		deps.IDAllocator = alloc
	}))
	persistPlugin := persist.NewPlugin(persist.UseDeps(func(deps *persist.Deps) {
		deps.Meta = meta
		deps.Backend = vs
	}))

	return &SaiMetaAgent{
		LogManager:    &logmanager.DefaultPlugin,
		RESTAPI:       &rest.DefaultPlugin,
		Prometheus:    &prometheus.DefaultPlugin,
		VirtualSwitch: vs,
		Meta:          meta,
		Persist:       persistPlugin,
	}
}

// Init connects switch notifications to the meta layer.
func (a *SaiMetaAgent) Init() error {
	a.VirtualSwitch.SetNotificationHandler(a.Meta.ProcessNotification)
	return nil
}

// AfterInit does nothing.
func (a *SaiMetaAgent) AfterInit() error {
	return nil
}

// Close disconnects switch notifications.
func (a *SaiMetaAgent) Close() error {
	a.VirtualSwitch.SetNotificationHandler(nil)
	return nil
}

func (SaiMetaAgent) String() string {
	return "SaiMetaAgent"
}
