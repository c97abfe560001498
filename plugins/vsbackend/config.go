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
	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// Config holds the virtual switch configuration.
type Config struct {
	// Ports is the number of front panel ports created with the switch.
	Ports uint32 `json:"ports"`

	// LanesPerPort is the number of hardware lanes of each port.
	LanesPerPort uint32 `json:"lanes-per-port"`

	// PortSpeed is the initial speed of front panel ports in Mbps.
	PortSpeed uint32 `json:"port-speed"`

	// Limits maps object type name (e.g. SAI_OBJECT_TYPE_ROUTE_ENTRY)
	// to the number of objects the switch can hold. Types without
	// a limit report availability as not supported.
	Limits map[string]uint64 `json:"limits"`

	// Capabilities overrides capabilities of attributes selected by name.
	Capabilities map[string]api.AttrCapability `json:"capabilities"`

	// UnsupportedEnumValues lists enum value names the switch does not
	// implement per attribute name.
	UnsupportedEnumValues map[string][]string `json:"unsupported-enum-values"`
}

// DefaultConfig returns configuration with default values.
func DefaultConfig() Config {
	return Config{
		Ports:        32,
		LanesPerPort: 4,
		PortSpeed:    100000,
		Limits: map[string]uint64{
			sai.ObjectTypeRouteEntry.String():      16384,
			sai.ObjectTypeNeighborEntry.String():   4096,
			sai.ObjectTypeFdbEntry.String():        8192,
			sai.ObjectTypeNextHop.String():         4096,
			sai.ObjectTypeRouterInterface.String(): 1024,
			sai.ObjectTypeAclTable.String():        64,
			sai.ObjectTypeAclEntry.String():        2048,
		},
	}
}

// loadConfig loads configuration file.
func (vs *VirtualSwitch) loadConfig() (*Config, error) {
	cfg := DefaultConfig()
	if vs.Cfg == nil {
		return &cfg, nil
	}

	found, err := vs.Cfg.LoadValue(&cfg)
	if err != nil {
		return nil, errors.Errorf("failed to load %v config: %v", vs.PluginName, err)
	} else if !found {
		vs.Log.Debugf("%v config not found", vs.PluginName)
		return &cfg, nil
	}
	vs.Log.Debugf("%v config found: %+v", vs.PluginName, cfg)
	return &cfg, cfg.validate()
}

func (cfg *Config) validate() error {
	if cfg.LanesPerPort == 0 {
		return errors.New("lanes-per-port must be positive")
	}
	for name := range cfg.Limits {
		if _, err := sai.ParseObjectType(name); err != nil {
			return errors.Errorf("invalid limit: %v", err)
		}
	}
	return nil
}

// limit returns the capacity configured for the object type.
func (cfg *Config) limit(objectType sai.ObjectType) (uint64, bool) {
	limit, has := cfg.Limits[objectType.String()]
	return limit, has
}
