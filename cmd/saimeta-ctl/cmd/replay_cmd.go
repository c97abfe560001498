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
	"fmt"
	"os"
	"strconv"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/ligato/sai-agent/cmd/saimeta-ctl/utils"
	"github.com/ligato/sai-agent/pkg/oidalloc"
	"github.com/ligato/sai-agent/pkg/saimetadata"
	"github.com/ligato/sai-agent/pkg/saiplayer"
	"github.com/ligato/sai-agent/pkg/snapshot"
	"github.com/ligato/sai-agent/plugins/saimeta"
	"github.com/ligato/sai-agent/plugins/vsbackend"
)

var replayCmd = &cobra.Command{
	Use:     "replay <scenario.yaml>...",
	Aliases: []string{"r"},
	Short:   "Replay scenarios against a virtual switch",
	Long: `
	Replay scenarios in the given order against the meta layer backed
	by an in-process virtual switch. Aliases defined by one scenario are
	visible to the following ones. Replay stops at the first step whose
	result does not match the expectation.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: replayFunction,
}

var replayFlags struct {
	ports    uint32
	lanes    uint32
	record   string
	snapshot string
	dump     bool
}

func init() {
	RootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Uint32Var(&replayFlags.ports, "ports", 32, "Number of virtual switch ports")
	replayCmd.Flags().Uint32Var(&replayFlags.lanes, "lanes", 4, "Number of lanes per port")
	replayCmd.Flags().StringVar(&replayFlags.record, "record", "", "Record meta layer calls into file")
	replayCmd.Flags().StringVar(&replayFlags.snapshot, "snapshot", "", "Save the final object database into file")
	replayCmd.Flags().BoolVar(&replayFlags.dump, "dump", false, "Dump the final object database")
}

func replayFunction(cmd *cobra.Command, args []string) error {
	alloc := oidalloc.NewAllocator()
	vsConf := vsbackend.DefaultConfig()
	vsConf.Ports = replayFlags.ports
	vsConf.LanesPerPort = replayFlags.lanes
	vs := vsbackend.NewPlugin(
		vsbackend.UseConf(vsConf),
		vsbackend.UseDeps(func(deps *vsbackend.Deps) {
			deps.IDAllocator = alloc
		}),
	)
	if err := vs.Init(); err != nil {
		return err
	}

	metaConf := saimeta.DefaultConfig()
	metaConf.EnableConsistencyChecks = true
	if replayFlags.record != "" {
		metaConf.RecordCalls = true
		metaConf.RecordingFile = replayFlags.record
	}
	meta := saimeta.NewPlugin(
		saimeta.UseConf(metaConf),
		saimeta.UseDeps(func(deps *saimeta.Deps) {
			deps.Backend = vs
			deps.IDAllocator = alloc
		}),
	)
	if err := meta.Init(); err != nil {
		return err
	}
	defer meta.Close()
	vs.SetNotificationHandler(meta.ProcessNotification)

	player := saiplayer.NewPlayer(meta, saimetadata.DefaultRegistry(), nil)
	for _, path := range args {
		scenario, err := saiplayer.LoadScenario(path)
		if err != nil {
			return err
		}
		results, playErr := player.Play(scenario)
		printResults(scenario, results)
		if playErr != nil {
			return playErr
		}
	}

	if replayFlags.dump {
		if err := meta.Dump(os.Stdout); err != nil {
			return err
		}
	}
	if replayFlags.snapshot != "" {
		store, err := snapshot.Open(replayFlags.snapshot, saimetadata.DefaultRegistry())
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.Save(meta.Records()); err != nil {
			return errors.Errorf("failed to save snapshot: %v", err)
		}
	}
	return nil
}

func printResults(scenario *saiplayer.Scenario, results []saiplayer.StepResult) {
	fmt.Printf("Scenario %s:\n", scenario.Name)
	table := utils.NewTable("#", "OP", "OBJECT TYPE", "KEY", "EXPECT", "RESULT")
	for _, res := range results {
		expect := res.Step.Expect
		if expect == "" {
			expect = "Success"
		}
		result := "Success"
		if res.Err != nil {
			result = res.Err.Error()
		}
		table.AddRow(strconv.Itoa(res.Index), res.Step.Op, res.Step.ObjectType, res.Key,
			expect, utils.StatusString(result, res.Passed))
	}
	table.Print()
}
