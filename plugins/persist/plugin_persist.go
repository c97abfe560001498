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

// Package persist keeps the state of the meta layer and its backend in
// snapshot files, so that the agent can be restarted without losing
// created objects.
package persist

import (
	"sync"
	"time"

	"github.com/go-errors/errors"
	"github.com/ligato/cn-infra/config"
	"github.com/ligato/cn-infra/infra"
	"github.com/ligato/cn-infra/logging"

	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/pkg/snapshot"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// MetaState is implemented by the meta layer.
type MetaState interface {
	Records() []*api.ObjectRecord
	Restore(records []*api.ObjectRecord) error
}

// BackendState is implemented by backends able to save their objects.
type BackendState interface {
	Records() []*api.ObjectRecord
	Load(records []*api.ObjectRecord) error
}

// Plugin restores snapshots after all plugins are initialized and
// saves them on close and, optionally, periodically.
type Plugin struct {
	Deps

	config *Config

	metaStore    *snapshot.Store
	backendStore *snapshot.Store

	// saveLock serializes saving of both snapshots
	saveLock sync.Mutex
	quit     chan struct{}
	wg       sync.WaitGroup
}

// Deps lists dependencies of the persist plugin.
type Deps struct {
	infra.PluginName
	Log      logging.PluginLogger
	Cfg      config.PluginConfig
	Registry saimetadata.Registry
	Meta     MetaState
	Backend  BackendState /* optional */
}

// Init opens snapshot files.
func (p *Plugin) Init() (err error) {
	if p.Meta == nil {
		return errors.New("persist plugin requires the meta layer")
	}
	if p.config == nil {
		if p.config, err = p.loadConfig(); err != nil {
			return err
		}
	}
	if p.config.MetaSnapshot == "" {
		p.Log.Info("meta snapshot file not configured, state will not be persisted")
		return nil
	}

	if p.metaStore, err = snapshot.Open(p.config.MetaSnapshot, p.Registry); err != nil {
		return err
	}
	if p.Backend != nil && p.config.BackendSnapshot != "" {
		if p.backendStore, err = snapshot.Open(p.config.BackendSnapshot, p.Registry); err != nil {
			p.metaStore.Close()
			return err
		}
	}
	return nil
}

// AfterInit restores the snapshots and starts the periodic saving.
func (p *Plugin) AfterInit() error {
	if p.metaStore == nil {
		return nil
	}
	if err := p.restore(); err != nil {
		return err
	}
	if p.config.SaveInterval > 0 {
		p.quit = make(chan struct{})
		p.wg.Add(1)
		go p.saveLoop(p.config.SaveInterval)
	}
	return nil
}

// Close saves the snapshots and closes the files.
func (p *Plugin) Close() error {
	if p.metaStore == nil {
		return nil
	}
	if p.quit != nil {
		close(p.quit)
		p.wg.Wait()
		p.quit = nil
	}

	err := p.Save()
	if p.backendStore != nil {
		p.backendStore.Close()
	}
	if cerr := p.metaStore.Close(); err == nil {
		err = cerr
	}
	p.metaStore, p.backendStore = nil, nil
	return err
}

// Save writes the current state into the snapshot files.
func (p *Plugin) Save() error {
	p.saveLock.Lock()
	defer p.saveLock.Unlock()

	if p.metaStore == nil {
		return nil
	}
	if p.backendStore != nil {
		if err := p.backendStore.Save(p.Backend.Records()); err != nil {
			return errors.Errorf("failed to save backend snapshot: %v", err)
		}
	}
	records := p.Meta.Records()
	if err := p.metaStore.Save(records); err != nil {
		return errors.Errorf("failed to save meta snapshot: %v", err)
	}
	p.Log.Debugf("saved snapshot with %d objects", len(records))
	return nil
}

func (p *Plugin) restore() error {
	metaRecords, err := p.metaStore.Load()
	if err != nil {
		return err
	}
	if len(metaRecords) == 0 {
		p.Log.Info("meta snapshot is empty, starting from scratch")
		return nil
	}

	if p.backendStore != nil {
		backendRecords, err := p.backendStore.Load()
		if err != nil {
			return err
		}
		if len(backendRecords) == 0 {
			return errors.Errorf("meta snapshot holds %d objects, backend snapshot is empty", len(metaRecords))
		}
		if err := p.Backend.Load(backendRecords); err != nil {
			return err
		}
	}
	if err := p.Meta.Restore(metaRecords); err != nil {
		return errors.Errorf("failed to restore meta snapshot: %v", err)
	}
	p.Log.Infof("restored %d objects from %s", len(metaRecords), p.config.MetaSnapshot)
	return nil
}

func (p *Plugin) saveLoop(interval time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := p.Save(); err != nil {
				p.Log.Error(err)
			}
		case <-p.quit:
			return
		}
	}
}
