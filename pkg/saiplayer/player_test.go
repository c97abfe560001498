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

package saiplayer

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/plugins/saimeta"
	"github.com/ligato/sai-agent/plugins/vsbackend"
)

const routeScenario = `
name: route-lifecycle
steps:
  - op: create
    object-type: SAI_OBJECT_TYPE_SWITCH
    attrs: [SAI_SWITCH_ATTR_INIT_SWITCH=true]
    alias: sw
  - op: get
    object-type: SAI_OBJECT_TYPE_SWITCH
    key: $sw
    attrs: [SAI_SWITCH_ATTR_DEFAULT_VIRTUAL_ROUTER_ID, SAI_SWITCH_ATTR_CPU_PORT]
    save:
      SAI_SWITCH_ATTR_DEFAULT_VIRTUAL_ROUTER_ID: vr
      SAI_SWITCH_ATTR_CPU_PORT: cpu
  - op: create
    object-type: SAI_OBJECT_TYPE_VLAN
    switch: $sw
    attrs: [SAI_VLAN_ATTR_VLAN_ID=100]
    alias: vlan100
  - op: create
    object-type: SAI_OBJECT_TYPE_VLAN
    switch: $sw
    attrs: [SAI_VLAN_ATTR_VLAN_ID=1]
    expect: DuplicateKey
  - op: create
    object-type: SAI_OBJECT_TYPE_ROUTE_ENTRY
    key: '{"dest":"10.0.0.0/24","switch_id":"$sw","vr":"$vr"}'
    attrs: [SAI_ROUTE_ENTRY_ATTR_PACKET_ACTION=SAI_PACKET_ACTION_DROP]
    alias: route
  - op: remove
    object-type: SAI_OBJECT_TYPE_VIRTUAL_ROUTER
    key: $vr
    expect: StillReferenced
  - op: set
    object-type: SAI_OBJECT_TYPE_ROUTE_ENTRY
    key: $route
    attrs: [SAI_ROUTE_ENTRY_ATTR_PACKET_ACTION=SAI_PACKET_ACTION_FORWARD]
  - op: get
    object-type: SAI_OBJECT_TYPE_ROUTE_ENTRY
    key: $route
    attrs: [SAI_ROUTE_ENTRY_ATTR_PACKET_ACTION]
    values: [SAI_ROUTE_ENTRY_ATTR_PACKET_ACTION=SAI_PACKET_ACTION_FORWARD]
  - op: remove
    object-type: SAI_OBJECT_TYPE_ROUTE_ENTRY
    key: $route
  - op: remove
    object-type: SAI_OBJECT_TYPE_VLAN
    key: $vlan100
  - op: flush
    switch: $sw
`

func newTestPlayer() (*Player, *saimeta.Meta) {
	alloc := oidalloc.NewAllocator()
	vs := vsbackend.NewPlugin(vsbackend.UseDeps(func(deps *vsbackend.Deps) {
		deps.IDAllocator = alloc
	}))
	Expect(vs.Init()).To(Succeed())
	meta := saimeta.NewPlugin(
		saimeta.UseConf(saimeta.Config{EnableConsistencyChecks: true}),
		saimeta.UseDeps(func(deps *saimeta.Deps) {
			deps.Backend = vs
			deps.IDAllocator = alloc
		}),
	)
	Expect(meta.Init()).To(Succeed())
	return NewPlayer(meta, saimetadata.DefaultRegistry(), nil), meta
}

func TestPlayScenario(t *testing.T) {
	RegisterTestingT(t)

	scenario, err := ParseScenario([]byte(routeScenario))
	Expect(err).ToNot(HaveOccurred())
	Expect(scenario.Name).To(Equal("route-lifecycle"))
	Expect(scenario.Steps).To(HaveLen(11))

	player, meta := newTestPlayer()
	results, err := player.Play(scenario)
	Expect(err).ToNot(HaveOccurred())
	Expect(results).To(HaveLen(11))
	for _, result := range results {
		Expect(result.Passed).To(BeTrue())
	}
	Expect(results[3].Err).To(HaveOccurred())

	cpu, ok := player.Alias("cpu")
	Expect(ok).To(BeTrue())
	cpuID, err := sai.ParseObjectID(cpu)
	Expect(err).ToNot(HaveOccurred())
	Expect(cpuID.GetObjectType()).To(Equal(sai.ObjectTypePort))

	vr, _ := player.Alias("vr")
	vrID, err := sai.ParseObjectID(vr)
	Expect(err).ToNot(HaveOccurred())
	Expect(vrID.GetObjectType()).To(Equal(sai.ObjectTypeVirtualRouter))
	Expect(meta.ObjectCount(sai.ObjectTypeRouteEntry)).To(BeZero())
	Expect(meta.ObjectCount(sai.ObjectTypeVlan)).To(Equal(1))
}

func TestPlayStopsOnMismatch(t *testing.T) {
	RegisterTestingT(t)

	scenario, err := ParseScenario([]byte(`
name: mismatch
steps:
  - op: create
    object-type: SAI_OBJECT_TYPE_SWITCH
    attrs: [SAI_SWITCH_ATTR_INIT_SWITCH=true]
    alias: sw
  - op: create
    object-type: SAI_OBJECT_TYPE_VLAN
    switch: $sw
    attrs: [SAI_VLAN_ATTR_VLAN_ID=10]
    expect: DuplicateKey
  - op: create
    object-type: SAI_OBJECT_TYPE_VLAN
    switch: $sw
    attrs: [SAI_VLAN_ATTR_VLAN_ID=20]
`))
	Expect(err).ToNot(HaveOccurred())

	player, _ := newTestPlayer()
	results, err := player.Play(scenario)
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("step #1"))
	Expect(results).To(HaveLen(2))
	Expect(results[1].Passed).To(BeFalse())
}

func TestUndefinedAlias(t *testing.T) {
	RegisterTestingT(t)

	scenario, err := ParseScenario([]byte(`
name: undefined
steps:
  - op: remove
    object-type: SAI_OBJECT_TYPE_VLAN
    key: $missing
`))
	Expect(err).ToNot(HaveOccurred())

	player, _ := newTestPlayer()
	_, err = player.Play(scenario)
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("undefined alias $missing"))
}

func TestGetValueMismatch(t *testing.T) {
	RegisterTestingT(t)

	scenario, err := ParseScenario([]byte(`
name: values
steps:
  - op: create
    object-type: SAI_OBJECT_TYPE_SWITCH
    attrs: [SAI_SWITCH_ATTR_INIT_SWITCH=true]
    alias: sw
  - op: create
    object-type: SAI_OBJECT_TYPE_VLAN
    switch: $sw
    attrs: [SAI_VLAN_ATTR_VLAN_ID=30]
    alias: vlan
  - op: get
    object-type: SAI_OBJECT_TYPE_VLAN
    key: $vlan
    attrs: [SAI_VLAN_ATTR_VLAN_ID]
    values: [SAI_VLAN_ATTR_VLAN_ID=31]
`))
	Expect(err).ToNot(HaveOccurred())

	player, _ := newTestPlayer()
	_, err = player.Play(scenario)
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring(`SAI_VLAN_ATTR_VLAN_ID is "30", expected "31"`))
}

func TestParseInvalidScenario(t *testing.T) {
	RegisterTestingT(t)

	_, err := ParseScenario([]byte("steps:\n  - op: explode\n"))
	Expect(err).To(HaveOccurred())

	_, err = ParseScenario([]byte("steps:\n  - op: get\n"))
	Expect(err).To(HaveOccurred())

	_, err = ParseScenario([]byte("steps:\n  - op: set\n    object-type: SAI_OBJECT_TYPE_PORT\n"))
	Expect(err).To(HaveOccurred())

	_, err = LoadScenario("/nonexistent/scenario.yaml")
	Expect(err).To(HaveOccurred())
}
