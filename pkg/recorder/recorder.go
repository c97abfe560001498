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

// Package recorder writes every operation processed by the meta layer
// into a line oriented log that can be inspected or replayed later.
//
// Each line has the form:
//
//	timestamp|operation|OBJECT_TYPE:key|ATTR=value|...|status
package recorder

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-errors/errors"
	"github.com/sirupsen/logrus"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

const (
	// TimestampFormat is the format of the first field of each line.
	TimestampFormat = "2006-01-02.15:04:05.000000"

	separator = "|"

	fieldOp         = "op"
	fieldObjectType = "objectType"
	fieldKey        = "key"
	fieldAttrs      = "attrs"
	fieldStatus     = "status"
)

// Recorder implements api.Recorder on top of a logrus logger with
// a custom formatter.
type Recorder struct {
	mu       sync.Mutex
	log      *logrus.Logger
	registry saimetadata.Registry
	file     io.Closer
}

// NewRecorder returns recorder writing into w.
func NewRecorder(w io.Writer, registry saimetadata.Registry) *Recorder {
	log := logrus.New()
	log.Out = w
	log.Formatter = &lineFormatter{}
	log.Level = logrus.InfoLevel
	return &Recorder{
		log:      log,
		registry: registry,
	}
}

// NewFileRecorder returns recorder appending into the file at path.
func NewFileRecorder(path string, registry saimetadata.Registry) (*Recorder, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.Errorf("failed to open recording file %s: %v", path, err)
	}
	rec := NewRecorder(file, registry)
	rec.file = file
	return rec, nil
}

// Record writes one line describing the finished operation.
func (r *Recorder) Record(op api.Operation, objectType sai.ObjectType, key sai.ObjectKey, attrs []sai.Attribute, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.log == nil {
		return
	}
	formatted := make([]string, 0, len(attrs))
	for _, attr := range attrs {
		if attr.Value == nil {
			continue
		}
		formatted = append(formatted, saimetadata.FormatAttribute(r.registry, objectType, attr))
	}
	keyStr := ""
	if key != nil {
		keyStr = key.String()
	}
	r.log.WithFields(logrus.Fields{
		fieldOp:         string(op),
		fieldObjectType: objectType.String(),
		fieldKey:        keyStr,
		fieldAttrs:      formatted,
		fieldStatus:     api.StatusOf(err).String(),
	}).Info()
}

// Close closes the underlying file, if the recorder opened one.
// Records made after Close are dropped.
func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.log = nil
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// lineFormatter renders entries created by Record.
type lineFormatter struct{}

// Format implements logrus.Formatter.
func (f *lineFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b strings.Builder
	b.WriteString(entry.Time.Format(TimestampFormat))
	b.WriteString(separator)
	b.WriteString(stringField(entry, fieldOp))
	b.WriteString(separator)
	b.WriteString(stringField(entry, fieldObjectType))
	b.WriteString(":")
	b.WriteString(stringField(entry, fieldKey))
	if attrs, ok := entry.Data[fieldAttrs].([]string); ok {
		for _, attr := range attrs {
			b.WriteString(separator)
			b.WriteString(attr)
		}
	}
	b.WriteString(separator)
	b.WriteString(stringField(entry, fieldStatus))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func stringField(entry *logrus.Entry, name string) string {
	value, _ := entry.Data[name].(string)
	return value
}

// Line is one parsed line of a recording.
type Line struct {
	Time       time.Time
	Op         api.Operation
	ObjectType sai.ObjectType
	Key        string
	Attrs      []string
	Status     string
}

// ParseLine parses one line written by Recorder.
func ParseLine(line string) (*Line, error) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), separator)
	if len(fields) < 4 {
		return nil, errors.Errorf("invalid recording line %q: expected at least 4 fields", line)
	}
	ts, err := time.ParseInLocation(TimestampFormat, fields[0], time.Local)
	if err != nil {
		return nil, errors.Errorf("invalid timestamp in %q: %v", line, err)
	}
	object := fields[2]
	idx := strings.Index(object, ":")
	if idx < 0 {
		return nil, errors.Errorf("invalid object %q: missing ':'", object)
	}
	objectType, err := sai.ParseObjectType(object[:idx])
	if err != nil {
		return nil, err
	}
	return &Line{
		Time:       ts,
		Op:         api.Operation(fields[1]),
		ObjectType: objectType,
		Key:        object[idx+1:],
		Attrs:      fields[3 : len(fields)-1],
		Status:     fields[len(fields)-1],
	}, nil
}
