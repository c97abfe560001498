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

package oidalloc

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
)

func TestAllocateSwitchAndObjects(t *testing.T) {
	RegisterTestingT(t)

	alloc := NewAllocator()
	sw0, err := alloc.AllocateSwitchID()
	Expect(err).ToNot(HaveOccurred())
	Expect(sw0).To(Equal(sai.SwitchObjectID(0)))

	sw1, err := alloc.AllocateSwitchID()
	Expect(err).ToNot(HaveOccurred())
	Expect(sw1).To(Equal(sai.SwitchObjectID(1)))

	port1, err := alloc.AllocateObjectID(sai.ObjectTypePort, sw0)
	Expect(err).ToNot(HaveOccurred())
	port2, err := alloc.AllocateObjectID(sai.ObjectTypePort, sw0)
	Expect(err).ToNot(HaveOccurred())
	vlan, err := alloc.AllocateObjectID(sai.ObjectTypeVlan, sw1)
	Expect(err).ToNot(HaveOccurred())

	Expect(port1).ToNot(Equal(port2))
	Expect(port1.GetObjectType()).To(Equal(sai.ObjectTypePort))
	Expect(port1.GetSwitchID()).To(Equal(sw0))
	Expect(vlan.GetSwitchID()).To(Equal(sw1))
	Expect(vlan.Index()).To(BeEquivalentTo(1))

	_, err = alloc.AllocateObjectID(sai.ObjectTypePort, port1)
	Expect(err).To(HaveOccurred())
	_, err = alloc.AllocateObjectID(sai.ObjectTypeSwitch, sw0)
	Expect(err).To(HaveOccurred())
}

func TestReleaseSwitchRecyclesIndex(t *testing.T) {
	RegisterTestingT(t)

	alloc := NewAllocator()
	sw0, _ := alloc.AllocateSwitchID()
	port, _ := alloc.AllocateObjectID(sai.ObjectTypePort, sw0)
	Expect(port.Index()).To(BeEquivalentTo(1))

	// releasing regular objects does not recycle indexes
	alloc.ReleaseObjectID(port)
	port, _ = alloc.AllocateObjectID(sai.ObjectTypePort, sw0)
	Expect(port.Index()).To(BeEquivalentTo(2))

	alloc.ReleaseObjectID(sw0)
	again, err := alloc.AllocateSwitchID()
	Expect(err).ToNot(HaveOccurred())
	Expect(again).To(Equal(sw0))
	port, _ = alloc.AllocateObjectID(sai.ObjectTypePort, again)
	Expect(port.Index()).To(BeEquivalentTo(1))
}

func TestMarkAllocated(t *testing.T) {
	RegisterTestingT(t)

	alloc := NewAllocator()
	alloc.MarkAllocated(sai.SwitchObjectID(0))
	alloc.MarkAllocated(sai.NewObjectID(0, sai.ObjectTypeRouterInterface, 41))

	sw, _ := alloc.AllocateSwitchID()
	Expect(sw).To(Equal(sai.SwitchObjectID(1)))

	rif, _ := alloc.AllocateObjectID(sai.ObjectTypeRouterInterface, sai.SwitchObjectID(0))
	Expect(rif.Index()).To(BeEquivalentTo(42))
}

func TestSwitchIndexExhaustion(t *testing.T) {
	RegisterTestingT(t)

	alloc := NewAllocator()
	for i := 0; i < maxSwitches; i++ {
		_, err := alloc.AllocateSwitchID()
		Expect(err).ToNot(HaveOccurred())
	}
	_, err := alloc.AllocateSwitchID()
	Expect(err).To(Equal(ErrNoFreeSwitchIndex))
}
