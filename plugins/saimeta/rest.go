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
	"bytes"
	"errors"
	"net/http"

	"github.com/unrolled/render"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

const (
	// prefix used for REST urls of the engine.
	urlPrefix = "/saimeta/"

	// dumpURL is URL used to dump the object database.
	dumpURL = urlPrefix + "dump"

	// refsURL is URL used to obtain reference counts of objects.
	refsURL = urlPrefix + "refs"

	// statsURL is URL used to obtain call statistics.
	statsURL = urlPrefix + "stats"

	// keysURL is URL used to list canonical keys of keyed objects.
	keysURL = urlPrefix + "keys"

	// consistencyURL is URL used to run the reference consistency check.
	consistencyURL = urlPrefix + "consistency"

	// schemaURL is URL used to describe attributes of an object type.
	schemaURL = urlPrefix + "schema"

	// objectTypeArg is the name of the argument used to select object type
	// (e.g. SAI_OBJECT_TYPE_PORT).
	objectTypeArg = "object-type"

	// keyArg is the name of the argument used to select one object for "refs" API.
	keyArg = "key"

	// formatArg is the name of the argument used to set the output format
	// for the dump API.
	formatArg = "format"

	// recognized formats:
	formatJSON = "json"
	formatText = "text"
)

// errorString wraps string representation of an error that, unlike the original
// error, can be marshalled.
type errorString struct {
	Error string
}

// recordForJSON is ObjectRecord with keys and values in their text form.
type recordForJSON struct {
	ObjectType string
	Key        string
	Attrs      []attrForJSON `json:",omitempty"`
	RefCount   uint64        `json:",omitempty"`
	Discovered bool          `json:",omitempty"`
}

type attrForJSON struct {
	Name  string
	Value string
}

// refCountForJSON is one entry of the "refs" API.
type refCountForJSON struct {
	Key      string
	RefCount uint64
}

// attrSchemaForJSON describes one attribute for the "schema" API.
type attrSchemaForJSON struct {
	Name        string
	ID          sai.AttrID
	ValueType   string
	Flags       string   `json:",omitempty"`
	Enum        string   `json:",omitempty"`
	ObjectTypes []string `json:",omitempty"`
	Conditional bool     `json:",omitempty"`
}

// registerHandlers registers all supported REST APIs.
func (m *Meta) registerHandlers(http HTTPHandlers) {
	if http == nil {
		m.Log.Warn("No http handler provided, skipping registration of saimeta REST handlers")
		return
	}
	http.RegisterHTTPHandler(dumpURL, m.dumpGetHandler, "GET")
	http.RegisterHTTPHandler(refsURL, m.refsGetHandler, "GET")
	http.RegisterHTTPHandler(statsURL, m.statsGetHandler, "GET")
	http.RegisterHTTPHandler(keysURL, m.keysGetHandler, "GET")
	http.RegisterHTTPHandler(consistencyURL, m.consistencyGetHandler, "GET")
	http.RegisterHTTPHandler(schemaURL, m.schemaGetHandler, "GET")
}

// dumpGetHandler is the GET handler for "dump" API.
func (m *Meta) dumpGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		args := req.URL.Query()

		// parse optional *format* argument (default = JSON)
		format := formatJSON
		if formatStr, withFormat := args[formatArg]; withFormat && len(formatStr) == 1 {
			format = formatStr[0]
			if format != formatJSON && format != formatText {
				err := errors.New("unrecognized output format")
				m.logError(formatter.JSON(w, http.StatusBadRequest, errorString{err.Error()}))
				return
			}
		}

		objectType, err := parseObjectTypeArg(args.Get(objectTypeArg))
		if err != nil {
			m.logError(formatter.JSON(w, http.StatusBadRequest, errorString{err.Error()}))
			return
		}

		if format == formatText {
			var buf bytes.Buffer
			if err := m.Dump(&buf); err != nil {
				m.logError(formatter.JSON(w, http.StatusInternalServerError, errorString{err.Error()}))
				return
			}
			m.logError(formatter.Text(w, http.StatusOK, filterDumpLines(buf.String(), objectType)))
			return
		}

		var records []recordForJSON
		m.Walk(func(rec *api.ObjectRecord) bool {
			if objectType == sai.ObjectTypeNull || rec.ObjectType() == objectType {
				records = append(records, m.recordForJSON(rec))
			}
			return true
		})
		m.logError(formatter.JSON(w, http.StatusOK, records))
	}
}

// refsGetHandler is the GET handler for "refs" API.
func (m *Meta) refsGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		args := req.URL.Query()

		// parse optional *key* argument
		if keyStr := args.Get(keyArg); keyStr != "" {
			oid, err := sai.ParseObjectID(keyStr)
			if err != nil {
				m.logError(formatter.JSON(w, http.StatusBadRequest, errorString{err.Error()}))
				return
			}
			if !m.exists(oid) {
				err := errors.New("object does not exist")
				m.logError(formatter.JSON(w, http.StatusNotFound, errorString{err.Error()}))
				return
			}
			m.logError(formatter.JSON(w, http.StatusOK, refCountForJSON{
				Key:      oid.String(),
				RefCount: m.ReferenceCount(oid),
			}))
			return
		}

		objectType, err := parseObjectTypeArg(args.Get(objectTypeArg))
		if err != nil {
			m.logError(formatter.JSON(w, http.StatusBadRequest, errorString{err.Error()}))
			return
		}
		var refs []refCountForJSON
		m.Walk(func(rec *api.ObjectRecord) bool {
			if _, isOID := rec.Key.(sai.ObjectID); !isOID {
				return true
			}
			if objectType == sai.ObjectTypeNull || rec.ObjectType() == objectType {
				refs = append(refs, refCountForJSON{Key: rec.Key.String(), RefCount: rec.RefCount})
			}
			return true
		})
		m.logError(formatter.JSON(w, http.StatusOK, refs))
	}
}

// statsGetHandler is the GET handler for "stats" API.
func (m *Meta) statsGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		m.logError(formatter.JSON(w, http.StatusOK, m.Stats()))
	}
}

// keysGetHandler is the GET handler for "keys" API.
func (m *Meta) keysGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		keys := make(map[string]string)
		for canonical, owner := range m.CanonicalKeys() {
			keys[canonical] = owner.String()
		}
		m.logError(formatter.JSON(w, http.StatusOK, keys))
	}
}

// consistencyGetHandler is the GET handler for "consistency" API.
func (m *Meta) consistencyGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := m.CheckConsistency(); err != nil {
			m.logError(formatter.JSON(w, http.StatusInternalServerError, errorString{err.Error()}))
			return
		}
		m.logError(formatter.JSON(w, http.StatusOK, struct{ Consistent bool }{true}))
	}
}

// schemaGetHandler is the GET handler for "schema" API.
func (m *Meta) schemaGetHandler(formatter *render.Render) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		args := req.URL.Query()

		// parse mandatory *object-type* argument
		objectType, err := parseObjectTypeArg(args.Get(objectTypeArg))
		if err == nil && objectType == sai.ObjectTypeNull {
			err = errors.New("missing object-type argument")
		}
		if err != nil {
			m.logError(formatter.JSON(w, http.StatusBadRequest, errorString{err.Error()}))
			return
		}
		info := m.Registry.ObjectTypeInfo(objectType)
		if info == nil {
			err := errors.New("object type has no metadata")
			m.logError(formatter.JSON(w, http.StatusNotFound, errorString{err.Error()}))
			return
		}
		attrs := make([]attrSchemaForJSON, 0, len(info.Attrs))
		for _, md := range info.Attrs {
			attrs = append(attrs, describeAttr(md))
		}
		m.logError(formatter.JSON(w, http.StatusOK, attrs))
	}
}

func describeAttr(md *saimetadata.AttrMetadata) attrSchemaForJSON {
	desc := attrSchemaForJSON{
		Name:        md.Name,
		ID:          md.AttrID,
		ValueType:   md.ValueType.String(),
		Flags:       md.Flags.String(),
		Conditional: md.IsConditional(),
	}
	if md.Enum != nil {
		desc.Enum = md.Enum.Name
	}
	for _, t := range md.AllowedObjectTypes {
		desc.ObjectTypes = append(desc.ObjectTypes, t.String())
	}
	return desc
}

func (m *Meta) recordForJSON(rec *api.ObjectRecord) recordForJSON {
	out := recordForJSON{
		ObjectType: rec.ObjectType().String(),
		Key:        rec.Key.String(),
		RefCount:   rec.RefCount,
		Discovered: rec.Discovered,
	}
	for _, attr := range rec.Attrs {
		md := m.Registry.LookupAttribute(rec.ObjectType(), attr.ID)
		out.Attrs = append(out.Attrs, attrForJSON{
			Name:  md.Name,
			Value: saimetadata.SerializeAttrValue(md, attr.Value),
		})
	}
	return out
}

func (m *Meta) exists(key sai.ObjectKey) bool {
	m.apiLock.Lock()
	defer m.apiLock.Unlock()
	return m.checkUsable() == nil && m.db.Exists(key)
}

// parseObjectTypeArg returns ObjectTypeNull for an empty argument.
func parseObjectTypeArg(arg string) (sai.ObjectType, error) {
	if arg == "" {
		return sai.ObjectTypeNull, nil
	}
	return sai.ParseObjectType(arg)
}

// filterDumpLines keeps lines of the text dump describing objects of the type.
func filterDumpLines(dump string, objectType sai.ObjectType) string {
	if objectType == sai.ObjectTypeNull {
		return dump
	}
	var buf bytes.Buffer
	prefix := []byte(objectType.String() + " ")
	for _, line := range bytes.SplitAfter([]byte(dump), []byte("\n")) {
		if bytes.HasPrefix(line, prefix) {
			buf.Write(line)
		}
	}
	return buf.String()
}

// logError logs non-nil errors from JSON formatter
func (m *Meta) logError(err error) {
	if err != nil {
		m.Log.Error(err)
	}
}
