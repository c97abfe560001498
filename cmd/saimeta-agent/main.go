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

// saimeta-agent runs the SAI meta layer in front of a virtual switch
// and exposes its state over REST.
package main

import (
	"os"

	"github.com/ligato/cn-infra/agent"
	"github.com/ligato/cn-infra/logging"
	log "github.com/ligato/cn-infra/logging/logrus"

	"github.com/ligato/sai-agent/app"
	"github.com/ligato/sai-agent/pkg/version"
)

// debugging is set by debug.go unless built with the nodebug tag
var debugging func() func()

func main() {
	os.Exit(run())
}

func run() int {
	if debugging != nil {
		defer debugging()()
	}

	log.DefaultLogger().Info(version.Info("saimeta-agent"))

	a := agent.NewAgent(agent.AllPlugins(app.New()))
	if err := a.Run(); err != nil {
		log.DefaultLogger().Error(err)
		return 1
	}
	return 0
}

func init() {
	log.DefaultLogger().SetOutput(os.Stdout)
	log.DefaultLogger().SetLevel(logging.DebugLevel)
}
