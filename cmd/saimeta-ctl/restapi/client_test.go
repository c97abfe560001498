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

package restapi

import (
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	. "github.com/onsi/gomega"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/plugins/saimeta"
	"github.com/ligato/sai-agent/plugins/vsbackend"
)

func newAgentServer() (*httptest.Server, sai.ObjectID) {
	router := mux.NewRouter()
	alloc := oidalloc.NewAllocator()
	vsConf := vsbackend.DefaultConfig()
	vsConf.Ports = 2
	vs := vsbackend.NewPlugin(
		vsbackend.UseConf(vsConf),
		vsbackend.UseDeps(func(deps *vsbackend.Deps) {
			deps.IDAllocator = alloc
		}),
	)
	Expect(vs.Init()).To(Succeed())
	meta := saimeta.NewPlugin(saimeta.UseDeps(func(deps *saimeta.Deps) {
		deps.Backend = vs
		deps.IDAllocator = alloc
		deps.HTTPHandlers = saimeta.NewMuxHandlers(router)
	}))
	Expect(meta.Init()).To(Succeed())

	switchID, err := meta.Create(sai.ObjectTypeSwitch, sai.NullObjectID, []sai.Attribute{
		{ID: sai.SwitchAttrInitSwitch, Value: sai.Bool(true)},
	})
	Expect(err).ToNot(HaveOccurred())
	return httptest.NewServer(router), switchID
}

func TestClientDump(t *testing.T) {
	RegisterTestingT(t)

	server, _ := newAgentServer()
	defer server.Close()
	client := NewClient(server.URL, time.Second)

	var records []Record
	query := url.Values{"object-type": []string{"SAI_OBJECT_TYPE_PORT"}}
	Expect(client.Get(DumpPath, query, &records)).To(Succeed())
	// two front panel ports and the CPU port
	Expect(records).To(HaveLen(3))
	for _, rec := range records {
		Expect(rec.ObjectType).To(Equal("SAI_OBJECT_TYPE_PORT"))
		Expect(rec.Discovered).To(BeTrue())
	}
}

func TestClientRefsAndErrors(t *testing.T) {
	RegisterTestingT(t)

	server, switchID := newAgentServer()
	defer server.Close()
	client := NewClient(server.URL, time.Second)

	var ref RefCount
	Expect(client.Get(RefsPath, url.Values{"key": []string{switchID.String()}}, &ref)).To(Succeed())
	Expect(ref.Key).To(Equal(switchID.String()))

	err := client.Get(RefsPath, url.Values{"key": []string{"oid:0x1000000ffff"}}, &ref)
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("object does not exist"))
	Expect(err.Error()).To(ContainSubstring("HTTP 404"))

	_, err = client.GetRaw(SchemaPath, nil)
	Expect(err).To(HaveOccurred())
	Expect(err.Error()).To(ContainSubstring("HTTP 400"))
}

func TestClientStatsAndSchema(t *testing.T) {
	RegisterTestingT(t)

	server, _ := newAgentServer()
	defer server.Close()
	client := NewClient(server.URL, time.Second)

	var stats []CallStats
	Expect(client.Get(StatsPath, nil, &stats)).To(Succeed())
	Expect(stats).ToNot(BeEmpty())
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.Name)
	}
	Expect(names).To(ContainElement("create"))

	var attrs []AttrSchema
	query := url.Values{"object-type": []string{"SAI_OBJECT_TYPE_VLAN"}}
	Expect(client.Get(SchemaPath, query, &attrs)).To(Succeed())
	Expect(attrs).ToNot(BeEmpty())
	Expect(attrs[0].Name).To(HavePrefix("SAI_VLAN_ATTR_"))

	var consistency struct{ Consistent bool }
	Expect(client.Get(ConsistencyPath, nil, &consistency)).To(Succeed())
	Expect(consistency.Consistent).To(BeTrue())
}

func TestNewClientAddsScheme(t *testing.T) {
	RegisterTestingT(t)

	Expect(NewClient("127.0.0.1:9191", time.Second).baseURL).To(Equal("http://127.0.0.1:9191"))
	Expect(NewClient("http://agent:9191/", time.Second).baseURL).To(Equal("http://agent:9191"))
}
