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

package keymap

import (
	"testing"

	"github.com/ligato/cn-infra/logging/logrus"
	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/saimetadata"
)

func newKeyMap() *AttrKeyMap {
	return NewAttrKeyMap(logrus.DefaultLogger(), saimetadata.DefaultRegistry())
}

func TestConstructPortKey(t *testing.T) {
	RegisterTestingT(t)

	km := newKeyMap()
	key := km.ConstructKey(sai.SwitchObjectID(0), sai.ObjectTypePort, []sai.Attribute{
		{ID: sai.PortAttrSpeed, Value: sai.U32(10000)},
		{ID: sai.PortAttrHwLaneList, Value: sai.NewU32List(1, 2, 3, 4)},
	})
	Expect(key).To(Equal("oid:0x21000000000000;SAI_PORT_ATTR_HW_LANE_LIST:1,2,3,4;"))
	Expect(km.HasKeyAttributes(sai.ObjectTypePort)).To(BeTrue())
	Expect(km.HasKeyAttributes(sai.ObjectTypeVirtualRouter)).To(BeFalse())
}

func TestConstructKeyIgnoresAttributeOrder(t *testing.T) {
	RegisterTestingT(t)

	km := newKeyMap()
	port := sai.NewObjectID(0, sai.ObjectTypePort, 1)
	attrs := []sai.Attribute{
		{ID: sai.QueueAttrType, Value: sai.S32(sai.QueueTypeUnicast)},
		{ID: sai.QueueAttrPort, Value: port},
		{ID: sai.QueueAttrIndex, Value: sai.U8(3)},
	}
	reversed := []sai.Attribute{attrs[2], attrs[1], attrs[0]}

	key := km.ConstructKey(sai.SwitchObjectID(0), sai.ObjectTypeQueue, attrs)
	Expect(km.ConstructKey(sai.SwitchObjectID(0), sai.ObjectTypeQueue, reversed)).To(Equal(key))
	Expect(key).To(Equal("oid:0x21000000000000;SAI_QUEUE_ATTR_TYPE:1;" +
		"SAI_QUEUE_ATTR_PORT:oid:0x1000000000001;SAI_QUEUE_ATTR_INDEX:3;"))
}

func TestInsertAndErase(t *testing.T) {
	RegisterTestingT(t)

	km := newKeyMap()
	sw0, sw1 := sai.SwitchObjectID(0), sai.SwitchObjectID(1)
	port1 := sai.NewObjectID(0, sai.ObjectTypePort, 1)
	port2 := sai.NewObjectID(0, sai.ObjectTypePort, 2)
	port3 := sai.NewObjectID(1, sai.ObjectTypePort, 1)
	lanes := []sai.Attribute{{ID: sai.PortAttrHwLaneList, Value: sai.NewU32List(1, 2)}}

	key1 := km.ConstructKey(sw0, sai.ObjectTypePort, lanes)
	Expect(km.Insert(port1, key1)).To(Succeed())
	Expect(km.KeyInUse(key1)).To(BeTrue())
	Expect(km.Insert(port2, key1)).ToNot(Succeed())

	// the same lanes on a different switch are a different key
	key3 := km.ConstructKey(sw1, sai.ObjectTypePort, lanes)
	Expect(km.KeyInUse(key3)).To(BeFalse())
	Expect(km.Insert(port3, key3)).To(Succeed())

	owner, found := km.Lookup(key1)
	Expect(found).To(BeTrue())
	Expect(owner).To(Equal(sai.ObjectKey(port1)))
	// keys are sorted as strings, switch 1 (0x121...) precedes switch 0 (0x21...)
	Expect(key3).To(HavePrefix("oid:0x121000000000000;"))
	Expect(km.AllKeys()).To(Equal([]string{key3, key1}))
	Expect(km.SwitchKeys(sw1)).To(Equal([]string{key3}))

	canonical, found := km.Erase(port1)
	Expect(found).To(BeTrue())
	Expect(canonical).To(Equal(key1))
	Expect(km.KeyInUse(key1)).To(BeFalse())

	km.EraseSwitch(sw1)
	Expect(km.Len()).To(BeZero())
}

func TestNonKeyableKindPanics(t *testing.T) {
	RegisterTestingT(t)

	md := &saimetadata.AttrMetadata{Name: "SAI_TEST_ATTR", ValueType: sai.ValueTypeChardata}
	Expect(func() { keyValue(md, sai.Chardata("x")) }).To(Panic())
}
