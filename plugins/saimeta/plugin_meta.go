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

// Package saimeta implements the metadata driven validation layer that
// guards every switch API call before it reaches the backend.
package saimeta

import (
	"io"
	"sync"

	"github.com/ligato/cn-infra/config"
	"github.com/ligato/cn-infra/infra"
	"github.com/ligato/cn-infra/logging"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/metrics"
	"github.com/ligato/sai-agent/pkg/recorder"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/keymap"
	"github.com/ligato/sai-agent/plugins/saimeta/internal/objdb"
)

// Meta validates switch API calls against the metadata and keeps
// the authoritative state of all created objects.
type Meta struct {
	Deps

	config *Config

	// apiLock serializes all public methods, the backend is called
	// while holding the lock
	apiLock sync.Mutex

	db      *objdb.DB
	keys    *keymap.AttrKeyMap
	calls   *metrics.Tracker
	ownRec  io.Closer
	initted bool
	closed  bool
}

// Deps lists dependencies of the Meta plugin.
type Deps struct {
	infra.PluginName
	Log          logging.PluginLogger
	Cfg          config.PluginConfig
	HTTPHandlers HTTPHandlers
	Registry     saimetadata.Registry
	Backend      api.Backend
	IDAllocator  api.IDAllocator
	Recorder     api.Recorder /* optional */
}

// Init loads the configuration and prepares the object database.
func (m *Meta) Init() error {
	if m.Backend == nil {
		return api.ErrMissingBackend
	}

	if m.config == nil {
		cfg, err := m.loadConfig()
		if err != nil {
			return err
		}
		m.config = cfg
	}

	m.resetState()
	m.calls = metrics.NewTracker()

	if m.Recorder == nil && m.config.RecordCalls && m.config.RecordingFile != "" {
		rec, err := recorder.NewFileRecorder(m.config.RecordingFile, m.Registry)
		if err != nil {
			return err
		}
		m.Recorder = rec
		m.ownRec = rec
		m.Log.Infof("recording API calls to %s", m.config.RecordingFile)
	}

	m.registerHandlers(m.HTTPHandlers)
	m.initted = true
	return nil
}

// Close releases resources held by the plugin. Every call made
// after Close fails with ErrClosedMeta.
func (m *Meta) Close() error {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	m.closed = true
	if m.ownRec != nil {
		return m.ownRec.Close()
	}
	return nil
}

// Stats returns call statistics of the public methods.
func (m *Meta) Stats() metrics.Calls {
	return m.calls.Snapshot()
}

// GetConfig returns the active configuration.
func (m *Meta) GetConfig() Config {
	return *m.config
}

func (m *Meta) checkUsable() error {
	if m.closed || !m.initted {
		return api.ErrClosedMeta
	}
	return nil
}

func objectTypeOf(key sai.ObjectKey) sai.ObjectType {
	if key == nil {
		return sai.ObjectTypeNull
	}
	return key.GetObjectType()
}
