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

package persist

import (
	"time"

	"github.com/go-errors/errors"
)

// Config holds the persist plugin configuration.
type Config struct {
	// MetaSnapshot is the file storing objects of the meta layer,
	// persistence is disabled when empty.
	MetaSnapshot string `json:"meta-snapshot"`

	// BackendSnapshot is the file storing objects of the backend.
	BackendSnapshot string `json:"backend-snapshot"`

	// SaveInterval enables periodic saving, zero saves only on close.
	SaveInterval time.Duration `json:"save-interval"`
}

func (p *Plugin) loadConfig() (*Config, error) {
	cfg := &Config{}
	if p.Cfg == nil {
		return cfg, nil
	}

	found, err := p.Cfg.LoadValue(cfg)
	if err != nil {
		return nil, errors.Errorf("failed to load %v config: %v", p.PluginName, err)
	} else if !found {
		p.Log.Debugf("%v config not found", p.PluginName)
		return cfg, nil
	}
	if cfg.BackendSnapshot != "" && cfg.BackendSnapshot == cfg.MetaSnapshot {
		return nil, errors.New("meta and backend snapshots must be stored in different files")
	}
	return cfg, nil
}
