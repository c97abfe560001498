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

import (
	"github.com/ligato/sai-agent/api/sai"
)

// ObjectRecord is a read-only copy of one object stored in the meta layer.
type ObjectRecord struct {
	Key   sai.ObjectKey
	Attrs []sai.Attribute
	// RefCount is the number of references pointing to the object
	// (always zero for structured entries).
	RefCount uint64
	// Discovered objects were learned from backend responses
	// instead of being created through the meta layer.
	Discovered bool
}

// ObjectType returns the type of the recorded object.
func (r *ObjectRecord) ObjectType() sai.ObjectType {
	return r.Key.GetObjectType()
}

// Attr returns the recorded value of the attribute.
func (r *ObjectRecord) Attr(id sai.AttrID) (sai.Value, bool) {
	for _, attr := range r.Attrs {
		if attr.ID == id {
			return attr.Value, true
		}
	}
	return nil, false
}
