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

package saimetadata

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
)

const policerExtension = `
objectTypes:
- name: SAI_OBJECT_TYPE_POLICER
  attributes:
  - id: 100
    name: SAI_POLICER_ATTR_GREEN_PACKET_ACTION
    type: s32
    flags: CREATE_AND_SET
    enum:
      name: sai_packet_action_t
    default: SAI_PACKET_ACTION_FORWARD
  - id: 101
    name: SAI_POLICER_ATTR_RED_PACKET_ACTION
    type: s32
    flags: MANDATORY_ON_CREATE|CREATE_AND_SET
    enum:
      name: sai_packet_action_t
    conditions:
    - attr: SAI_POLICER_ATTR_MODE
      values: [SAI_POLICER_MODE_TR_TCM]
`

func TestLoadYAMLExtendsBuiltinType(t *testing.T) {
	RegisterTestingT(t)

	schema := NewBuiltinSchema()
	Expect(schema.LoadYAML([]byte(policerExtension))).To(Succeed())

	green := schema.LookupAttributeByName("SAI_POLICER_ATTR_GREEN_PACKET_ACTION")
	Expect(green).ToNot(BeNil())
	Expect(green.ObjectType).To(Equal(sai.ObjectTypePolicer))
	Expect(green.Enum).To(BeIdenticalTo(PacketActionEnum))
	Expect(green.Default()).To(Equal(sai.S32(sai.PacketActionForward)))

	red := schema.LookupAttribute(sai.ObjectTypePolicer, 101)
	Expect(red.IsConditional()).To(BeTrue())
	Expect(red.Conditions[0].AttrID).To(Equal(sai.PolicerAttrMode))
	Expect(red.Conditions[0].Values).To(ConsistOf(sai.S32(sai.PolicerModeTrTCM)))

	// built-in attributes survive the merge
	Expect(schema.LookupAttribute(sai.ObjectTypePolicer, sai.PolicerAttrMeterType)).ToNot(BeNil())
	Expect(schema.StatEnum(sai.ObjectTypePolicer)).To(BeIdenticalTo(PolicerStatEnum))
}

func TestLoadYAMLErrors(t *testing.T) {
	RegisterTestingT(t)

	schema := NewBuiltinSchema()
	Expect(schema.LoadYAML([]byte("objectTypes: [{name: SAI_OBJECT_TYPE_NOPE}]"))).ToNot(Succeed())

	Expect(schema.LoadYAML([]byte(`
objectTypes:
- name: SAI_OBJECT_TYPE_PORT
  attributes:
  - id: 50
    name: SAI_PORT_ATTR_X
    type: float
    flags: CREATE_AND_SET
`))).ToNot(Succeed())

	Expect(schema.LoadYAML([]byte(`
objectTypes:
- name: SAI_OBJECT_TYPE_PORT
  attributes:
  - id: 50
    name: SAI_PORT_ATTR_X
    type: u32
    flags: CREATE_AND_SET
    conditions:
    - attr: SAI_PORT_ATTR_MISSING
      values: ["1"]
`))).ToNot(Succeed())

	schema.Freeze()
	Expect(schema.LoadYAML([]byte(policerExtension))).To(Equal(ErrRegistryFrozen))
}
