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
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ligato/sai-agent/cmd/saimeta-ctl/restapi"
	"github.com/ligato/sai-agent/cmd/saimeta-ctl/utils"
)

var showCmd = &cobra.Command{
	Use:     "show",
	Aliases: []string{"s"},
	Short:   "Show state of a running agent",
	Long: `
	Show objects, reference counts and call statistics of the meta
	layer of a running saimeta-agent.
`,
}

var showDump = &cobra.Command{
	Use:   "dump [object-type]",
	Short: "Dump objects stored by the meta layer",
	Args:  cobra.MaximumNArgs(1),
	RunE:  dumpFunction,
}

var showRefs = &cobra.Command{
	Use:   "refs [object-type|oid]",
	Short: "Show reference counts of objects",
	Args:  cobra.MaximumNArgs(1),
	RunE:  refsFunction,
}

var showStats = &cobra.Command{
	Use:   "stats",
	Short: "Show call statistics",
	Args:  cobra.NoArgs,
	RunE:  statsFunction,
}

var showKeys = &cobra.Command{
	Use:   "keys",
	Short: "Show canonical keys of keyed objects",
	Args:  cobra.NoArgs,
	RunE:  keysFunction,
}

var showConsistency = &cobra.Command{
	Use:   "consistency",
	Short: "Run the reference consistency check",
	Args:  cobra.NoArgs,
	RunE:  consistencyFunction,
}

var dumpAsText bool

func init() {
	RootCmd.AddCommand(showCmd)
	showCmd.AddCommand(showDump, showRefs, showStats, showKeys, showConsistency)
	showDump.Flags().BoolVar(&dumpAsText, "text", false, "Print the agent's text dump")
}

func dumpFunction(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	if len(args) == 1 {
		query.Set("object-type", args[0])
	}
	client := agentClient()

	if dumpAsText {
		query.Set("format", "text")
		body, err := client.GetRaw(restapi.DumpPath, query)
		if err != nil {
			return err
		}
		fmt.Print(string(body))
		return nil
	}

	var records []restapi.Record
	if err := client.Get(restapi.DumpPath, query, &records); err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Print("No data found.\n")
		return nil
	}
	table := utils.NewTable("OBJECT TYPE", "KEY", "REFS", "ATTRIBUTES")
	for _, rec := range records {
		attrs := make([]string, 0, len(rec.Attrs))
		for _, attr := range rec.Attrs {
			attrs = append(attrs, attr.Name+"="+attr.Value)
		}
		key := rec.Key
		if rec.Discovered {
			key += " (discovered)"
		}
		table.AddRow(rec.ObjectType, key, strconv.FormatUint(rec.RefCount, 10), utils.ListString(attrs))
	}
	table.Print()
	return nil
}

func refsFunction(cmd *cobra.Command, args []string) error {
	query := url.Values{}
	client := agentClient()

	if len(args) == 1 && strings.HasPrefix(args[0], "oid:") {
		query.Set("key", args[0])
		var ref restapi.RefCount
		if err := client.Get(restapi.RefsPath, query, &ref); err != nil {
			return err
		}
		fmt.Printf("%s: %d\n", ref.Key, ref.RefCount)
		return nil
	}

	if len(args) == 1 {
		query.Set("object-type", args[0])
	}
	var refs []restapi.RefCount
	if err := client.Get(restapi.RefsPath, query, &refs); err != nil {
		return err
	}
	table := utils.NewTable("OBJECT", "REFS")
	for _, ref := range refs {
		table.AddRow(ref.Key, strconv.FormatUint(ref.RefCount, 10))
	}
	table.Print()
	return nil
}

func statsFunction(cmd *cobra.Command, args []string) error {
	var stats []restapi.CallStats
	if err := agentClient().Get(restapi.StatsPath, nil, &stats); err != nil {
		return err
	}
	table := utils.NewTable("OPERATION", "CALLS", "FAILED", "TOTAL", "AVG", "MIN", "MAX")
	for _, s := range stats {
		failed := utils.StatusString(strconv.FormatUint(s.Failed, 10), s.Failed == 0)
		table.AddRow(s.Name, strconv.FormatUint(s.Count, 10), failed, s.Total, s.Avg, s.Min, s.Max)
	}
	table.Print()
	return nil
}

func keysFunction(cmd *cobra.Command, args []string) error {
	keys := make(map[string]string)
	if err := agentClient().Get(restapi.KeysPath, nil, &keys); err != nil {
		return err
	}
	canonical := make([]string, 0, len(keys))
	for key := range keys {
		canonical = append(canonical, key)
	}
	sort.Strings(canonical)

	table := utils.NewTable("KEY", "OWNER")
	for _, key := range canonical {
		table.AddRow(key, keys[key])
	}
	table.Print()
	return nil
}

func consistencyFunction(cmd *cobra.Command, args []string) error {
	var result struct{ Consistent bool }
	if err := agentClient().Get(restapi.ConsistencyPath, nil, &result); err != nil {
		fmt.Println(utils.StatusString("INCONSISTENT", false))
		return err
	}
	fmt.Println(utils.StatusString("CONSISTENT", result.Consistent))
	return nil
}
