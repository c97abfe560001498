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

package sai

import (
	"net/netip"
	"testing"

	. "github.com/onsi/gomega"
)

func TestListFormatting(t *testing.T) {
	RegisterTestingT(t)

	lanes := NewU32List(1, 2, 3, 4)
	Expect(lanes.String()).To(Equal("4:1,2,3,4"))
	Expect(lanes.JoinElements()).To(Equal("1,2,3,4"))

	empty := ObjectList{}
	Expect(empty.String()).To(Equal("0:null"))
	Expect(empty.BufferLen()).To(Equal(-1))

	parsed, err := ParseValue(ValueTypeObjectList, "2:oid:0x1,oid:0x2")
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed).To(Equal(NewObjectList(1, 2)))

	_, err = ParseValue(ValueTypeUint32List, "3:1,2")
	Expect(err).Should(HaveOccurred())
}

func TestCloneValueCopiesBuffers(t *testing.T) {
	RegisterTestingT(t)

	buf := []uint32{1, 2, 3, 4}
	orig := U32List{Count: 2, List: buf}
	clone := CloneValue(orig).(U32List)
	buf[0] = 100

	Expect(clone.List).To(Equal([]uint32{1, 2}))
	Expect(clone.Count).To(BeEquivalentTo(2))
}

func TestWithCountKeepsBuffer(t *testing.T) {
	RegisterTestingT(t)

	placeholder := ObjectList{Count: 1, List: make([]ObjectID, 1)}
	resized := placeholder.WithCount(5).(ObjectList)
	Expect(resized.Count).To(BeEquivalentTo(5))
	Expect(resized.List).To(HaveLen(1))
}

func TestParseScalarValues(t *testing.T) {
	RegisterTestingT(t)

	v, err := ParseValue(ValueTypeUint32, "100000")
	Expect(err).ShouldNot(HaveOccurred())
	Expect(v).To(Equal(U32(100000)))

	v, err = ParseValue(ValueTypeIPPrefix, "10.1.0.0/16")
	Expect(err).ShouldNot(HaveOccurred())
	Expect(v).To(Equal(NewIPPrefix(netip.MustParsePrefix("10.1.0.0/16"))))

	v, err = ParseValue(ValueTypeMac, "00:11:22:33:44:55")
	Expect(err).ShouldNot(HaveOccurred())
	Expect(v.String()).To(Equal("00:11:22:33:44:55"))

	_, err = ParseValue(ValueTypeUint8, "300")
	Expect(err).Should(HaveOccurred())

	_, err = ParseValue(ValueTypeAclField, "disabled")
	Expect(err).Should(HaveOccurred())
}

func TestAclFieldForm(t *testing.T) {
	RegisterTestingT(t)

	field := AclField{
		Enable: true,
		Data:   NewIPAddress(netip.MustParseAddr("10.0.0.1")),
		Mask:   NewIPAddress(netip.MustParseAddr("255.255.255.0")),
	}
	Expect(field.String()).To(Equal("10.0.0.1&mask:255.255.255.0"))

	parsed, err := ParseAclField(ValueTypeIPAddress, field.String())
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed).To(Equal(field))

	parsed, err = ParseAclField(ValueTypeIPAddress, "disabled")
	Expect(err).ShouldNot(HaveOccurred())
	Expect(parsed.Enable).To(BeFalse())
}
