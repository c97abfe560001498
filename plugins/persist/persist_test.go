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

package persist

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/plugins/saimeta"
	"github.com/ligato/sai-agent/plugins/vsbackend"
)

type testAgent struct {
	vs      *vsbackend.VirtualSwitch
	meta    *saimeta.Meta
	persist *Plugin
}

func startAgent(conf Config) *testAgent {
	alloc := oidalloc.NewAllocator()
	vsConf := vsbackend.DefaultConfig()
	vsConf.Ports = 2
	vs := vsbackend.NewPlugin(
		vsbackend.UseConf(vsConf),
		vsbackend.UseDeps(func(deps *vsbackend.Deps) {
			deps.IDAllocator = alloc
		}),
	)
	meta := saimeta.NewPlugin(
		saimeta.UseConf(saimeta.Config{EnableConsistencyChecks: true}),
		saimeta.UseDeps(func(deps *saimeta.Deps) {
			deps.Backend = vs
			deps.IDAllocator = alloc
		}),
	)
	persist := NewPlugin(
		UseConf(conf),
		UseDeps(func(deps *Deps) {
			deps.Meta = meta
			deps.Backend = vs
		}),
	)
	Expect(vs.Init()).To(Succeed())
	Expect(meta.Init()).To(Succeed())
	Expect(persist.Init()).To(Succeed())
	Expect(persist.AfterInit()).To(Succeed())
	return &testAgent{vs: vs, meta: meta, persist: persist}
}

func (a *testAgent) stop() {
	Expect(a.persist.Close()).To(Succeed())
	Expect(a.meta.Close()).To(Succeed())
	Expect(a.vs.Close()).To(Succeed())
}

func tempConfig() (Config, func()) {
	dir, err := ioutil.TempDir("", "persist")
	Expect(err).ToNot(HaveOccurred())
	return Config{
		MetaSnapshot:    filepath.Join(dir, "meta.db"),
		BackendSnapshot: filepath.Join(dir, "backend.db"),
	}, func() { os.RemoveAll(dir) }
}

func TestRestartKeepsObjects(t *testing.T) {
	RegisterTestingT(t)

	conf, cleanup := tempConfig()
	defer cleanup()

	agent := startAgent(conf)
	switchID, err := agent.meta.Create(sai.ObjectTypeSwitch, sai.NullObjectID, []sai.Attribute{
		{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)},
	})
	Expect(err).ToNot(HaveOccurred())
	vlan, err := agent.meta.Create(sai.ObjectTypeVlan, switchID, []sai.Attribute{
		{ID: sai.VlanAttrVlanID, Value: sai.U16(100)},
	})
	Expect(err).ToNot(HaveOccurred())
	before := agent.meta.Records()
	agent.stop()

	agent = startAgent(conf)
	defer agent.stop()
	Expect(agent.meta.Records()).To(HaveLen(len(before)))
	Expect(agent.vs.HasObject(vlan)).To(BeTrue())
	Expect(agent.meta.CheckConsistency()).To(Succeed())

	// the key of the restored VLAN is still taken
	_, err = agent.meta.Create(sai.ObjectTypeVlan, switchID, []sai.Attribute{
		{ID: sai.VlanAttrVlanID, Value: sai.U16(100)},
	})
	Expect(err).To(HaveOccurred())

	// new objects get fresh IDs
	vlan200, err := agent.meta.Create(sai.ObjectTypeVlan, switchID, []sai.Attribute{
		{ID: sai.VlanAttrVlanID, Value: sai.U16(200)},
	})
	Expect(err).ToNot(HaveOccurred())
	Expect(vlan200).ToNot(Equal(vlan))
	Expect(agent.meta.Remove(vlan)).To(Succeed())
}

func TestPeriodicSave(t *testing.T) {
	RegisterTestingT(t)

	conf, cleanup := tempConfig()
	defer cleanup()
	conf.SaveInterval = 10 * time.Millisecond

	agent := startAgent(conf)
	_, err := agent.meta.Create(sai.ObjectTypeSwitch, sai.NullObjectID, []sai.Attribute{
		{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)},
	})
	Expect(err).ToNot(HaveOccurred())

	Eventually(func() int {
		records, err := agent.persist.metaStore.Load()
		Expect(err).ToNot(HaveOccurred())
		return len(records)
	}, time.Second, 10*time.Millisecond).Should(Equal(len(agent.meta.Records())))
	agent.stop()
}

func TestDisabledPersistence(t *testing.T) {
	RegisterTestingT(t)

	agent := startAgent(Config{})
	Expect(agent.persist.metaStore).To(BeNil())
	Expect(agent.persist.Save()).To(Succeed())
	agent.stop()
}

func TestMissingBackendSnapshot(t *testing.T) {
	RegisterTestingT(t)

	conf, cleanup := tempConfig()
	defer cleanup()

	agent := startAgent(Config{MetaSnapshot: conf.MetaSnapshot})
	_, err := agent.meta.Create(sai.ObjectTypeSwitch, sai.NullObjectID, []sai.Attribute{
		{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)},
	})
	Expect(err).ToNot(HaveOccurred())
	agent.stop()

	alloc := oidalloc.NewAllocator()
	vs := vsbackend.NewPlugin(vsbackend.UseDeps(func(deps *vsbackend.Deps) {
		deps.IDAllocator = alloc
	}))
	meta := saimeta.NewPlugin(saimeta.UseDeps(func(deps *saimeta.Deps) {
		deps.Backend = vs
		deps.IDAllocator = alloc
	}))
	persist := NewPlugin(UseConf(conf), UseDeps(func(deps *Deps) {
		deps.Meta = meta
		deps.Backend = vs
	}))
	Expect(vs.Init()).To(Succeed())
	Expect(meta.Init()).To(Succeed())
	Expect(persist.Init()).To(Succeed())
	err = persist.AfterInit()
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("backend snapshot is empty"))
	Expect(persist.metaStore.Close()).To(Succeed())
	Expect(persist.backendStore.Close()).To(Succeed())
}
