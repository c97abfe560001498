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
	"github.com/go-errors/errors"
)

// Config holds the Meta plugin configuration.
type Config struct {
	// ReconcileGet stores values read from the backend for attributes
	// which are not cached yet.
	ReconcileGet bool `json:"reconcile-get"`

	// RecordCalls enables recording of all API calls into RecordingFile.
	RecordCalls   bool   `json:"record-calls"`
	RecordingFile string `json:"recording-file"`

	// EnableConsistencyChecks verifies reference counts after every
	// mutating call. Intended for tests.
	EnableConsistencyChecks bool `json:"enable-consistency-checks"`

	// MaxBulkSize limits the number of elements of a bulk call,
	// zero means unlimited.
	MaxBulkSize uint32 `json:"max-bulk-size"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() Config {
	return Config{
		ReconcileGet: true,
	}
}

// loadConfig loads configuration file.
func (m *Meta) loadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if m.Cfg == nil {
		return &cfg, nil
	}

	found, err := m.Cfg.LoadValue(&cfg)
	if err != nil {
		return nil, errors.Errorf("failed to load %v config: %v", m.PluginName, err)
	} else if !found {
		m.Log.Debugf("%v config not found", m.PluginName)
		return &cfg, nil
	}
	m.Log.Debugf("%v config found: %+v", m.PluginName, cfg)

	if cfg.RecordCalls && cfg.RecordingFile == "" {
		return nil, errors.New("record-calls requires recording-file")
	}
	return &cfg, nil
}
