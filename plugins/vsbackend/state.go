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
	"sort"

	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

// Records returns copies of all objects held by the switch ordered by key.
// Attributes without metadata are internal to the switch and left out.
func (vs *VirtualSwitch) Records() []*api.ObjectRecord {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	records := make([]*api.ObjectRecord, 0, len(vs.objects))
	for key, obj := range vs.objects {
		rec := &api.ObjectRecord{Key: key}
		for id, value := range obj.attrs {
			if vs.Registry.LookupAttribute(key.GetObjectType(), id) == nil {
				continue
			}
			rec.Attrs = append(rec.Attrs, sai.Attribute{ID: id, Value: sai.CloneValue(value)})
		}
		sort.Slice(rec.Attrs, func(i, j int) bool { return rec.Attrs[i].ID < rec.Attrs[j].ID })
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		ti, tj := records[i].ObjectType(), records[j].ObjectType()
		if ti != tj {
			return ti < tj
		}
		return records[i].Key.String() < records[j].Key.String()
	})
	return records
}

// Load fills an empty switch with objects returned by Records.
func (vs *VirtualSwitch) Load(records []*api.ObjectRecord) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if len(vs.objects) > 0 {
		return errors.Errorf("can't load %d objects into non-empty switch", len(records))
	}
	for _, rec := range records {
		if _, dup := vs.objects[rec.Key]; dup {
			vs.objects = make(map[sai.ObjectKey]*vsObject)
			return errors.Errorf("object %v loaded twice", rec.Key)
		}
		vs.objects[rec.Key] = newObject(rec.Attrs)
		if oid, isOID := rec.Key.(sai.ObjectID); isOID {
			vs.IDAllocator.MarkAllocated(oid)
		}
	}
	vs.Log.Infof("loaded %d objects", len(records))
	return nil
}
