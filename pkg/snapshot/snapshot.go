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

// Package snapshot persists records of the meta layer into a bolt
// database so that the state can be restored after restart.
package snapshot

import (
	"encoding/json"
	"time"

	"github.com/boltdb/bolt"
	"github.com/go-errors/errors"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

const (
	// fileMode sets permissions so owner can read and write
	fileMode = 0600

	defaultTimeout = time.Second
)

// storedRecord is the value stored under the object key in the bucket
// of its object type.
type storedRecord struct {
	Attrs      []string `json:"attrs,omitempty"`
	Discovered bool     `json:"discovered,omitempty"`
}

// Store keeps one snapshot of the object database, every object type
// in its own bucket.
type Store struct {
	db       *bolt.DB
	registry saimetadata.Registry
	Path     string
}

// Open opens (or creates) the snapshot database at path.
func Open(path string, registry saimetadata.Registry) (*Store, error) {
	db, err := bolt.Open(path, fileMode, &bolt.Options{Timeout: defaultTimeout})
	if err != nil {
		return nil, errors.Errorf("failed to open snapshot %s: %v", path, err)
	}
	return &Store{
		db:       db,
		registry: registry,
		Path:     path,
	}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot with the records in a single
// transaction.
func (s *Store) Save(records []*api.ObjectRecord) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		var names [][]byte
		if err := tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
			names = append(names, append([]byte(nil), name...))
			return nil
		}); err != nil {
			return err
		}
		for _, name := range names {
			if err := tx.DeleteBucket(name); err != nil {
				return err
			}
		}

		for _, rec := range records {
			objectType := rec.ObjectType()
			bucket, err := tx.CreateBucketIfNotExists([]byte(objectType.String()))
			if err != nil {
				return err
			}
			stored := storedRecord{Discovered: rec.Discovered}
			for _, attr := range rec.Attrs {
				stored.Attrs = append(stored.Attrs, saimetadata.FormatAttribute(s.registry, objectType, attr))
			}
			data, err := json.Marshal(stored)
			if err != nil {
				return err
			}
			if err := bucket.Put([]byte(rec.Key.String()), data); err != nil {
				return err
			}
		}
		return nil
	})
}

// Load returns all stored records ordered by object type name and key.
// Reference counts are not stored, they are recomputed on restore.
func (s *Store) Load() ([]*api.ObjectRecord, error) {
	var records []*api.ObjectRecord
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.ForEach(func(name []byte, bucket *bolt.Bucket) error {
			objectType, err := sai.ParseObjectType(string(name))
			if err != nil {
				return errors.Errorf("invalid bucket %q: %v", name, err)
			}
			return bucket.ForEach(func(k, v []byte) error {
				rec, err := s.decode(objectType, k, v)
				if err != nil {
					return err
				}
				records = append(records, rec)
				return nil
			})
		})
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) decode(objectType sai.ObjectType, k, v []byte) (*api.ObjectRecord, error) {
	key, err := sai.ParseObjectKey(objectType, string(k))
	if err != nil {
		return nil, errors.Errorf("invalid %v key %q: %v", objectType, k, err)
	}
	var stored storedRecord
	if err := json.Unmarshal(v, &stored); err != nil {
		return nil, errors.Errorf("invalid record of %v: %v", key, err)
	}
	rec := &api.ObjectRecord{Key: key, Discovered: stored.Discovered}
	for _, str := range stored.Attrs {
		attr, err := saimetadata.ParseAttribute(s.registry, str)
		if err != nil {
			return nil, errors.Errorf("invalid attribute of %v: %v", key, err)
		}
		rec.Attrs = append(rec.Attrs, attr)
	}
	return rec, nil
}
