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

package api

import "strconv"

// BulkMode selects how a bulk operation reacts to a failed element.
type BulkMode int

const (
	// BulkStopOnError stops at the first failed element, the remaining
	// elements are reported as NotExecuted.
	BulkStopOnError BulkMode = iota

	// BulkIgnoreError processes all elements independently.
	BulkIgnoreError
)

func (m BulkMode) String() string {
	switch m {
	case BulkStopOnError:
		return "STOP_ON_ERROR"
	case BulkIgnoreError:
		return "IGNORE_ERROR"
	}
	return "BulkMode(" + strconv.Itoa(int(m)) + ")"
}

// IsValid returns true for the defined modes.
func (m BulkMode) IsValid() bool {
	return m == BulkStopOnError || m == BulkIgnoreError
}

// StatsMode selects whether counters are cleared after being read.
type StatsMode int

const (
	// StatsModeRead only reads the counters.
	StatsModeRead StatsMode = iota

	// StatsModeReadAndClear clears the counters after reading.
	StatsModeReadAndClear
)

func (m StatsMode) String() string {
	switch m {
	case StatsModeRead:
		return "READ"
	case StatsModeReadAndClear:
		return "READ_AND_CLEAR"
	}
	return "StatsMode(" + strconv.Itoa(int(m)) + ")"
}

// IsValid returns true for the defined modes.
func (m StatsMode) IsValid() bool {
	return m == StatsModeRead || m == StatsModeReadAndClear
}

// Operation names an engine entry point for recording and metrics.
type Operation string

const (
	OpCreate            Operation = "create"
	OpRemove            Operation = "remove"
	OpSet               Operation = "set"
	OpGet               Operation = "get"
	OpBulkCreate        Operation = "bulk_create"
	OpBulkRemove        Operation = "bulk_remove"
	OpBulkSet           Operation = "bulk_set"
	OpFlushFdb          Operation = "flush_fdb"
	OpGetStats          Operation = "get_stats"
	OpClearStats        Operation = "clear_stats"
	OpQueryAvailability Operation = "query_availability"
	OpQueryCapability   Operation = "query_capability"
	OpQueryEnumValues   Operation = "query_enum_values"
	OpNotification      Operation = "notification"
)
