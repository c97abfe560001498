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

package utils

import (
	"sort"
	"strings"

	"github.com/ligato/sai-agent/api/sai"
)

// KeySet is a set of object keys.
type KeySet map[sai.ObjectKey]struct{}

// NewKeySet returns a new instance of KeySet with the given keys.
func NewKeySet(keys ...sai.ObjectKey) KeySet {
	ks := make(KeySet)
	for _, key := range keys {
		ks.Add(key)
	}
	return ks
}

// String return human-readable string representation of the key-set.
func (ks KeySet) String() string {
	keys := ks.Sorted()
	strs := make([]string, 0, len(keys))
	for _, key := range keys {
		strs = append(strs, key.String())
	}
	return "{" + strings.Join(strs, ", ") + "}"
}

// Has returns true if the given key is in the set.
func (ks KeySet) Has(key sai.ObjectKey) bool {
	_, has := ks[key]
	return has
}

// Add adds key into the set.
func (ks KeySet) Add(key sai.ObjectKey) KeySet {
	ks[key] = struct{}{}
	return ks
}

// Del removes key from the set.
func (ks KeySet) Del(key sai.ObjectKey) KeySet {
	delete(ks, key)
	return ks
}

// Subtract removes keys from <ks> that are in both key sets.
func (ks KeySet) Subtract(ks2 KeySet) KeySet {
	for key := range ks2 {
		delete(ks, key)
	}
	return ks
}

// Sorted returns keys ordered by object type and then by canonical form.
func (ks KeySet) Sorted() []sai.ObjectKey {
	keys := make([]sai.ObjectKey, 0, len(ks))
	for key := range ks {
		keys = append(keys, key)
	}
	SortKeys(keys)
	return keys
}

// SortKeys orders keys by object type and then by canonical form.
// Object IDs of one type are ordered numerically.
func SortKeys(keys []sai.ObjectKey) {
	sort.Slice(keys, func(i, j int) bool {
		ti, tj := keys[i].GetObjectType(), keys[j].GetObjectType()
		if ti != tj {
			return ti < tj
		}
		oi, iIsOID := keys[i].(sai.ObjectID)
		oj, jIsOID := keys[j].(sai.ObjectID)
		if iIsOID && jIsOID {
			return oi < oj
		}
		return keys[i].String() < keys[j].String()
	})
}
