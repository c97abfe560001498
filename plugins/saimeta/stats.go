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
	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// GetStats reads counters of the object.
func (m *Meta) GetStats(key sai.ObjectKey, counterIDs []sai.StatID) ([]uint64, error) {
	return m.GetStatsExt(key, counterIDs, api.StatsModeRead)
}

// GetStatsExt reads counters of the object, optionally clearing them.
func (m *Meta) GetStatsExt(key sai.ObjectKey, counterIDs []sai.StatID, mode api.StatsMode) (counters []uint64, err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return nil, err
	}
	done := m.trackOperation(api.OpGetStats, objectTypeOf(key), nil)
	defer func() { done(key, err) }()

	if err = m.validateStats(key, counterIDs, mode); err != nil {
		return nil, err
	}
	counters, berr := m.Backend.GetStats(key, append([]sai.StatID(nil), counterIDs...), mode)
	if berr != nil {
		return nil, m.backendError(api.OpGetStats, key, berr)
	}
	if len(counters) != len(counterIDs) {
		return nil, api.NewError(api.BackendFailure, "backend returned %d counters, %d requested",
			len(counters), len(counterIDs)).WithObject(key.GetObjectType(), key)
	}
	return counters, nil
}

// ClearStats resets counters of the object.
func (m *Meta) ClearStats(key sai.ObjectKey, counterIDs []sai.StatID) (err error) {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()

	if err = m.checkUsable(); err != nil {
		return err
	}
	done := m.trackOperation(api.OpClearStats, objectTypeOf(key), nil)
	defer func() { done(key, err) }()

	if err = m.validateStats(key, counterIDs, api.StatsModeReadAndClear); err != nil {
		return err
	}
	if berr := m.Backend.ClearStats(key, append([]sai.StatID(nil), counterIDs...)); berr != nil {
		return m.backendError(api.OpClearStats, key, berr)
	}
	return nil
}

// validateStats checks that the object exists and that all counters
// belong to the statistics enum of its type.
func (m *Meta) validateStats(key sai.ObjectKey, counterIDs []sai.StatID, mode api.StatsMode) error {
	if key == nil {
		return api.NewError(api.InvalidArgument, "object key is nil")
	}
	objectType := key.GetObjectType()
	if !m.db.Exists(key) {
		return api.NewError(api.NotFound, "object does not exist").WithObject(objectType, key)
	}
	statEnum := m.Registry.StatEnum(objectType)
	if statEnum == nil {
		return api.NewError(api.NotSupported, "object type has no statistics").WithObject(objectType, key)
	}
	if len(counterIDs) == 0 {
		return api.NewError(api.InvalidArgument, "no counters requested").WithObject(objectType, key)
	}
	for _, id := range counterIDs {
		if !statEnum.Contains(int32(id)) {
			return api.NewError(api.InvalidEnumValue, "counter %d is not in %s", id, statEnum.Name).
				WithObject(objectType, key)
		}
	}
	if !mode.IsValid() {
		return api.NewError(api.InvalidArgument, "invalid stats mode %v", mode).WithObject(objectType, key)
	}
	return nil
}
