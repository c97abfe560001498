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

package recorder

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta/api"
)

func TestRecordLine(t *testing.T) {
	RegisterTestingT(t)

	var buf bytes.Buffer
	rec := NewRecorder(&buf, saimetadata.DefaultRegistry())

	vlan := sai.NewObjectID(0, sai.ObjectTypeVlan, 3)
	rec.Record(api.OpCreate, sai.ObjectTypeVlan, vlan, []sai.Attribute{
		{ID: sai.VlanAttrVlanID, Value: sai.U16(100)},
		{ID: sai.VlanAttrLearnDisable, Value: sai.Bool(true)},
	}, nil)
	rec.Record(api.OpRemove, sai.ObjectTypeVlan, vlan, nil,
		api.NewError(api.StillReferenced, "in use"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	Expect(lines).To(HaveLen(2))
	Expect(lines[0]).To(HaveSuffix("|create|SAI_OBJECT_TYPE_VLAN:" + vlan.String() +
		"|SAI_VLAN_ATTR_VLAN_ID=100|SAI_VLAN_ATTR_LEARN_DISABLE=true|SAI_STATUS_SUCCESS"))
	Expect(lines[1]).To(HaveSuffix("|remove|SAI_OBJECT_TYPE_VLAN:" + vlan.String() + "|SAI_STATUS_OBJECT_IN_USE"))

	line, err := ParseLine(lines[0])
	Expect(err).ToNot(HaveOccurred())
	Expect(line.Op).To(Equal(api.OpCreate))
	Expect(line.ObjectType).To(Equal(sai.ObjectTypeVlan))
	Expect(line.Key).To(Equal(vlan.String()))
	Expect(line.Attrs).To(Equal([]string{"SAI_VLAN_ATTR_VLAN_ID=100", "SAI_VLAN_ATTR_LEARN_DISABLE=true"}))
	Expect(line.Status).To(Equal("SAI_STATUS_SUCCESS"))
	Expect(line.Time.IsZero()).To(BeFalse())

	line, err = ParseLine(lines[1])
	Expect(err).ToNot(HaveOccurred())
	Expect(line.Attrs).To(BeEmpty())
}

func TestParseInvalidLines(t *testing.T) {
	RegisterTestingT(t)

	_, err := ParseLine("garbage")
	Expect(err).To(HaveOccurred())
	_, err = ParseLine("yesterday|create|SAI_OBJECT_TYPE_VLAN:x|SAI_STATUS_SUCCESS")
	Expect(err).To(HaveOccurred())
	_, err = ParseLine("2018-01-01.10:00:00.000000|create|VLAN|SAI_STATUS_SUCCESS")
	Expect(err).To(HaveOccurred())
}

func TestFileRecorder(t *testing.T) {
	RegisterTestingT(t)

	dir, err := ioutil.TempDir("", "recorder")
	Expect(err).ToNot(HaveOccurred())
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "calls.rec")
	rec, err := NewFileRecorder(path, saimetadata.DefaultRegistry())
	Expect(err).ToNot(HaveOccurred())
	rec.Record(api.OpGet, sai.ObjectTypeSwitch, sai.SwitchObjectID(0), nil, nil)
	Expect(rec.Close()).To(Succeed())

	// dropped after close
	rec.Record(api.OpGet, sai.ObjectTypeSwitch, sai.SwitchObjectID(0), nil, nil)

	data, err := ioutil.ReadFile(path)
	Expect(err).ToNot(HaveOccurred())
	Expect(strings.Count(string(data), "\n")).To(Equal(1))

	_, err = NewFileRecorder(filepath.Join(dir, "missing", "calls.rec"), saimetadata.DefaultRegistry())
	Expect(err).To(HaveOccurred())
}
