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

// Package saiplayer replays operation scenarios written in YAML against
// the meta layer and checks their results.
package saiplayer

import (
	"io/ioutil"

	"github.com/ghodss/yaml"
	"github.com/go-errors/errors"
)

// Supported step operations.
const (
	OpCreate = "create"
	OpRemove = "remove"
	OpSet    = "set"
	OpGet    = "get"
	OpFlush  = "flush"
)

// Scenario is a named sequence of steps.
type Scenario struct {
	Name  string `json:"name"`
	Steps []Step `json:"steps"`
}

// Step is one operation of a scenario. Strings may reference values
// saved by previous steps as $alias.
type Step struct {
	Op         string `json:"op"`
	ObjectType string `json:"object-type,omitempty"`

	// Switch is the switch ID for create of object-ID types and flush.
	Switch string `json:"switch,omitempty"`

	// Key identifies the object, for entries it is the JSON form
	// of the entry.
	Key string `json:"key,omitempty"`

	// Attrs are NAME=value pairs, get takes attribute names only.
	Attrs []string `json:"attrs,omitempty"`

	// Alias names the created object for the following steps.
	Alias string `json:"alias,omitempty"`

	// Save maps attribute names read by get to aliases.
	Save map[string]string `json:"save,omitempty"`

	// Values lists NAME=value pairs get must return.
	Values []string `json:"values,omitempty"`

	// Expect is the expected error kind, empty for success.
	Expect string `json:"expect,omitempty"`
}

// ParseScenario parses scenario in YAML (or JSON) format.
func ParseScenario(data []byte) (*Scenario, error) {
	scenario := &Scenario{}
	if err := yaml.Unmarshal(data, scenario); err != nil {
		return nil, errors.Errorf("failed to parse scenario: %v", err)
	}
	for i, step := range scenario.Steps {
		switch step.Op {
		case OpCreate, OpRemove, OpSet, OpGet:
			if step.ObjectType == "" {
				return nil, errors.Errorf("step #%d (%s): missing object-type", i, step.Op)
			}
		case OpFlush:
		default:
			return nil, errors.Errorf("step #%d: unknown operation %q", i, step.Op)
		}
		if step.Op == OpSet && len(step.Attrs) != 1 {
			return nil, errors.Errorf("step #%d: set takes exactly one attribute", i)
		}
	}
	return scenario, nil
}

// LoadScenario reads scenario from file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("failed to read scenario %s: %v", path, err)
	}
	return ParseScenario(data)
}
