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

package restapi

// Paths of the saimeta REST API.
const (
	DumpPath        = "/saimeta/dump"
	RefsPath        = "/saimeta/refs"
	StatsPath       = "/saimeta/stats"
	KeysPath        = "/saimeta/keys"
	ConsistencyPath = "/saimeta/consistency"
	SchemaPath      = "/saimeta/schema"
)

// Record is one object returned by the dump API.
type Record struct {
	ObjectType string
	Key        string
	Attrs      []Attr
	RefCount   uint64
	Discovered bool
}

// Attr is attribute of a dumped object.
type Attr struct {
	Name  string
	Value string
}

// RefCount is one entry of the refs API.
type RefCount struct {
	Key      string
	RefCount uint64
}

// CallStats is call statistics of one operation.
type CallStats struct {
	Name   string
	Count  uint64
	Failed uint64
	Total  string
	Avg    string
	Min    string
	Max    string
}

// AttrSchema describes one attribute.
type AttrSchema struct {
	Name        string
	ID          int32
	ValueType   string
	Flags       string
	Enum        string
	ObjectTypes []string
	Conditional bool
}
