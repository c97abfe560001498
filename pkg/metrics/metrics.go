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

package metrics

import (
	"encoding/json"
	"sort"
	"sync"
	"time"
)

// RoundDuration is the default value used for rounding durations.
var RoundDuration = time.Microsecond * 10

// Calls maps method name to its call statistics.
type Calls map[string]*CallStats

// MarshalJSON implements json.Marshaler interface
func (m Calls) MarshalJSON() ([]byte, error) {
	calls := make([]*CallStats, 0, len(m))
	for _, s := range m {
		calls = append(calls, s)
	}
	sort.Slice(calls, func(i, j int) bool {
		if calls[i].Total == calls[j].Total {
			return calls[i].Name < calls[j].Name
		}
		return calls[i].Total > calls[j].Total
	})
	return json.Marshal(calls)
}

// CallStats represents generic stats for call metrics.
type CallStats struct {
	Name   string `json:",omitempty"`
	Count  uint64
	Failed uint64
	Total  Duration
	Avg    Duration
	Min    Duration
	Max    Duration
}

// Increment increments call count and recalculates durations
func (m *CallStats) Increment(d time.Duration) {
	took := Duration(d)
	m.Count++
	m.Total += took
	m.Avg = m.Total / Duration(m.Count)
	if took > m.Max {
		m.Max = took
	}
	if m.Min == 0 || took < m.Min {
		m.Min = took
	}
}

// Duration is a time.Duration marshalled as rounded string.
type Duration time.Duration

// MarshalJSON implements json.Marshaler interface
func (m Duration) MarshalJSON() ([]byte, error) {
	s := time.Duration(m).Round(RoundDuration).String()
	return json.Marshal(s)
}

// Tracker collects call statistics of named methods.
// It is safe for concurrent use.
type Tracker struct {
	mu    sync.RWMutex
	calls Calls
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{calls: make(Calls)}
}

// Track starts measuring one call of the method. The returned function
// must be called when the call finishes, with failed set if it returned error.
func (t *Tracker) Track(method string) func(failed bool) {
	start := time.Now()
	return func(failed bool) {
		took := time.Since(start)
		t.mu.Lock()
		defer t.mu.Unlock()
		ms, ok := t.calls[method]
		if !ok {
			ms = &CallStats{Name: method}
			t.calls[method] = ms
		}
		ms.Increment(took)
		if failed {
			ms.Failed++
		}
	}
}

// Snapshot returns a copy of the collected statistics.
func (t *Tracker) Snapshot() Calls {
	t.mu.RLock()
	defer t.mu.RUnlock()
	calls := make(Calls, len(t.calls))
	for name, cs := range t.calls {
		c := *cs
		calls[name] = &c
	}
	return calls
}

// Reset drops all collected statistics.
func (t *Tracker) Reset() {
	t.mu.Lock()
	t.calls = make(Calls)
	t.mu.Unlock()
}
