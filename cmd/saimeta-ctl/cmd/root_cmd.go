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

package cmd

import (
	"time"

	"github.com/ligato/cn-infra/logging"
	"github.com/ligato/cn-infra/logging/logrus"
	"github.com/spf13/cobra"

	"github.com/ligato/sai-agent/cmd/saimeta-ctl/restapi"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "saimeta-ctl",
	Short: "A CLI tool for the SAI meta layer",
	Long: `
A CLI tool to replay operation scenarios against the SAI meta layer
backed by a virtual switch, to inspect recordings of meta layer calls
and to show the state of a running saimeta-agent.`,
	Example: `Replay a scenario against an in-process virtual switch:
  $ ./saimeta-ctl replay scenario.yaml

Show objects of one type stored by a running agent:
  $ ./saimeta-ctl --agent 127.0.0.1:9191 show dump SAI_OBJECT_TYPE_PORT
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if globalFlags.Debug {
			logrus.DefaultLogger().SetLevel(logging.DebugLevel)
		} else {
			logrus.DefaultLogger().SetLevel(logging.WarnLevel)
		}
	},
	SilenceUsage: true,
}

var globalFlags struct {
	Agent   string
	Timeout time.Duration
	Debug   bool
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&globalFlags.Agent,
		"agent", "a", "127.0.0.1:9191", "Address of the saimeta-agent REST API")
	RootCmd.PersistentFlags().DurationVar(&globalFlags.Timeout,
		"timeout", 5*time.Second, "Timeout of REST requests")
	RootCmd.PersistentFlags().BoolVarP(&globalFlags.Debug,
		"debug", "d", false, "Enable debug logs")
}

func agentClient() *restapi.Client {
	return restapi.NewClient(globalFlags.Agent, globalFlags.Timeout)
}
