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

package objdb

import (
	"sort"

	"github.com/ligato/sai-agent/api/sai"
)

// Record is the stored state of one object.
type Record struct {
	Key   sai.ObjectKey
	Attrs map[sai.AttrID]sai.Value

	// Discovered is set for objects learned from backend responses.
	Discovered bool
}

// NewRecord builds a record from the attribute list. Values are copied.
func NewRecord(key sai.ObjectKey, attrs []sai.Attribute) *Record {
	rec := &Record{
		Key:   key,
		Attrs: make(map[sai.AttrID]sai.Value, len(attrs)),
	}
	for _, attr := range attrs {
		rec.Attrs[attr.ID] = sai.CloneValue(attr.Value)
	}
	return rec
}

// ObjectType returns the type of the stored object.
func (rec *Record) ObjectType() sai.ObjectType {
	return rec.Key.GetObjectType()
}

// Get returns the stored attribute value.
func (rec *Record) Get(id sai.AttrID) (sai.Value, bool) {
	value, has := rec.Attrs[id]
	return value, has
}

// AttrList returns copies of the attributes ordered by attribute ID.
func (rec *Record) AttrList() []sai.Attribute {
	attrs := make([]sai.Attribute, 0, len(rec.Attrs))
	for id, value := range rec.Attrs {
		attrs = append(attrs, sai.Attribute{ID: id, Value: sai.CloneValue(value)})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].ID < attrs[j].ID
	})
	return attrs
}

// Clone returns a deep copy of the record.
func (rec *Record) Clone() *Record {
	clone := &Record{
		Key:        rec.Key,
		Attrs:      make(map[sai.AttrID]sai.Value, len(rec.Attrs)),
		Discovered: rec.Discovered,
	}
	for id, value := range rec.Attrs {
		clone.Attrs[id] = sai.CloneValue(value)
	}
	return clone
}
