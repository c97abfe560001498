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

package saiplayer

import (
	"regexp"
	"strings"

	"github.com/go-errors/errors"
	"github.com/ligato/cn-infra/logging"
	"github.com/ligato/cn-infra/logging/logrus"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

var aliasRef = regexp.MustCompile(`\$([A-Za-z0-9_]+)`)

// Engine is the subset of the meta layer API the player drives.
type Engine interface {
	Create(objectType sai.ObjectType, switchID sai.ObjectID, attrs []sai.Attribute) (sai.ObjectID, error)
	CreateEntry(key sai.ObjectKey, attrs []sai.Attribute) error
	Remove(key sai.ObjectKey) error
	Set(key sai.ObjectKey, attr sai.Attribute) error
	Get(key sai.ObjectKey, attrs []sai.Attribute) error
	FlushFdbEntries(switchID sai.ObjectID, attrs []sai.Attribute) error
}

// StepResult describes the outcome of one played step.
type StepResult struct {
	Index  int
	Step   Step
	Key    string
	Err    error
	Passed bool
}

// Player plays scenarios. Aliases are shared between scenarios played
// by the same player.
type Player struct {
	log      logging.Logger
	engine   Engine
	registry saimetadata.Registry
	aliases  map[string]string
}

// NewPlayer returns player driving the engine.
func NewPlayer(engine Engine, registry saimetadata.Registry, log logging.Logger) *Player {
	if log == nil {
		log = logrus.DefaultLogger()
	}
	return &Player{
		log:      log,
		engine:   engine,
		registry: registry,
		aliases:  make(map[string]string),
	}
}

// Alias returns value saved under the alias.
func (p *Player) Alias(name string) (string, bool) {
	value, ok := p.aliases[name]
	return value, ok
}

// Play runs all steps of the scenario and stops at the first step whose
// result does not match the expectation.
func (p *Player) Play(scenario *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		key, err := p.playStep(step)
		result := StepResult{Index: i, Step: step, Key: key, Err: err}
		if mismatch := p.checkResult(step, err); mismatch != nil {
			results = append(results, result)
			return results, errors.Errorf("scenario %s step #%d (%s %s): %v",
				scenario.Name, i, step.Op, step.ObjectType, mismatch)
		}
		result.Passed = true
		results = append(results, result)
		p.log.Debugf("step #%d %s %s %s: %v", i, step.Op, step.ObjectType, key, err)
	}
	return results, nil
}

func (p *Player) checkResult(step Step, err error) error {
	if step.Expect == "" {
		return err
	}
	kind, known := api.ParseErrorKind(step.Expect)
	if !known {
		return errors.Errorf("unknown error kind %q", step.Expect)
	}
	if err == nil {
		return errors.Errorf("expected %v, succeeded", kind)
	}
	if got := api.KindOf(err); got != kind {
		return errors.Errorf("expected %v, got %v", kind, err)
	}
	return nil
}

func (p *Player) playStep(step Step) (string, error) {
	if step.Op == OpFlush {
		switchID, attrs, err := p.flushArgs(step)
		if err != nil {
			return "", err
		}
		return switchID.String(), p.engine.FlushFdbEntries(switchID, attrs)
	}

	objectType, err := sai.ParseObjectType(step.ObjectType)
	if err != nil {
		return "", err
	}
	if step.Op == OpCreate && !objectType.IsNonObjectID() {
		return p.createObject(objectType, step)
	}

	key, err := p.objectKey(objectType, step.Key)
	if err != nil {
		return "", err
	}
	switch step.Op {
	case OpCreate:
		attrs, err := p.parseAttrs(step.Attrs)
		if err != nil {
			return "", err
		}
		if err = p.engine.CreateEntry(key, attrs); err == nil && step.Alias != "" {
			p.aliases[step.Alias] = key.String()
		}
		return key.String(), err
	case OpRemove:
		return key.String(), p.engine.Remove(key)
	case OpSet:
		attrs, err := p.parseAttrs(step.Attrs)
		if err != nil {
			return "", err
		}
		return key.String(), p.engine.Set(key, attrs[0])
	case OpGet:
		return key.String(), p.get(objectType, key, step)
	}
	return "", errors.Errorf("unknown operation %q", step.Op)
}

func (p *Player) createObject(objectType sai.ObjectType, step Step) (string, error) {
	attrs, err := p.parseAttrs(step.Attrs)
	if err != nil {
		return "", err
	}
	switchID := sai.NullObjectID
	if objectType != sai.ObjectTypeSwitch {
		if switchID, err = p.objectID(step.Switch); err != nil {
			return "", err
		}
	}
	oid, err := p.engine.Create(objectType, switchID, attrs)
	if err != nil {
		return "", err
	}
	if step.Alias != "" {
		p.aliases[step.Alias] = oid.String()
	}
	return oid.String(), nil
}

func (p *Player) get(objectType sai.ObjectType, key sai.ObjectKey, step Step) error {
	attrs := make([]sai.Attribute, len(step.Attrs))
	for i, name := range step.Attrs {
		md := p.registry.LookupAttributeByName(strings.TrimSpace(name))
		if md == nil || md.ObjectType != objectType {
			return errors.Errorf("unknown %v attribute %q", objectType, name)
		}
		attrs[i].ID = md.AttrID
	}
	if err := p.engine.Get(key, attrs); err != nil {
		return err
	}

	got := make(map[string]string, len(attrs))
	for _, attr := range attrs {
		formatted := saimetadata.FormatAttribute(p.registry, objectType, attr)
		idx := strings.Index(formatted, "=")
		got[formatted[:idx]] = formatted[idx+1:]
	}
	for _, expected := range step.Values {
		expected, err := p.substitute(expected)
		if err != nil {
			return err
		}
		idx := strings.Index(expected, "=")
		if idx < 0 {
			return errors.Errorf("invalid expected value %q: missing '='", expected)
		}
		name, value := expected[:idx], expected[idx+1:]
		if got[name] != value {
			return errors.Errorf("%s is %q, expected %q", name, got[name], value)
		}
	}
	for name, alias := range step.Save {
		value, read := got[name]
		if !read {
			return errors.Errorf("can't save %s: attribute was not read", name)
		}
		p.aliases[alias] = value
	}
	return nil
}

func (p *Player) flushArgs(step Step) (sai.ObjectID, []sai.Attribute, error) {
	switchID, err := p.objectID(step.Switch)
	if err != nil {
		return sai.NullObjectID, nil, err
	}
	attrs, err := p.parseAttrs(step.Attrs)
	return switchID, attrs, err
}

// substitute replaces $alias references with saved values.
func (p *Player) substitute(s string) (string, error) {
	var missing string
	out := aliasRef.ReplaceAllStringFunc(s, func(ref string) string {
		value, ok := p.aliases[ref[1:]]
		if !ok && missing == "" {
			missing = ref
		}
		return value
	})
	if missing != "" {
		return "", errors.Errorf("undefined alias %s", missing)
	}
	return out, nil
}

func (p *Player) parseAttrs(strs []string) ([]sai.Attribute, error) {
	attrs := make([]sai.Attribute, 0, len(strs))
	for _, str := range strs {
		str, err := p.substitute(str)
		if err != nil {
			return nil, err
		}
		attr, err := saimetadata.ParseAttribute(p.registry, str)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func (p *Player) objectID(s string) (sai.ObjectID, error) {
	s, err := p.substitute(s)
	if err != nil {
		return sai.NullObjectID, err
	}
	return sai.ParseObjectID(s)
}

func (p *Player) objectKey(objectType sai.ObjectType, s string) (sai.ObjectKey, error) {
	s, err := p.substitute(s)
	if err != nil {
		return nil, err
	}
	return sai.ParseObjectKey(objectType, s)
}
