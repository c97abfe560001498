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
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/cmd/saimeta-ctl/utils"
	"github.com/ligato/sai-agent/pkg/recorder"
)

var recordsCmd = &cobra.Command{
	Use:   "records <recording-file>",
	Short: "Show calls stored in a recording",
	Long: `
	Show calls recorded by the meta layer. Use --failed to list only
	the calls that did not succeed and --summary to print the number
	of calls per operation and status.
`,
	Args: cobra.ExactArgs(1),
	RunE: recordsFunction,
}

var recordsFlags struct {
	op      string
	failed  bool
	summary bool
}

func init() {
	RootCmd.AddCommand(recordsCmd)
	recordsCmd.Flags().StringVar(&recordsFlags.op, "op", "", "Show only calls of the operation (e.g. create)")
	recordsCmd.Flags().BoolVar(&recordsFlags.failed, "failed", false, "Show only failed calls")
	recordsCmd.Flags().BoolVar(&recordsFlags.summary, "summary", false, "Print summary instead of the calls")
}

func recordsFunction(cmd *cobra.Command, args []string) error {
	file, err := os.Open(args[0])
	if err != nil {
		return errors.Errorf("failed to open recording: %v", err)
	}
	defer file.Close()

	var lines []*recorder.Line
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		if scanner.Text() == "" {
			continue
		}
		line, err := recorder.ParseLine(scanner.Text())
		if err != nil {
			return errors.Errorf("line %d: %v", lineNum, err)
		}
		if recordsFlags.op != "" && string(line.Op) != recordsFlags.op {
			continue
		}
		succeeded := line.Status == sai.StatusSuccess.String()
		if recordsFlags.failed && succeeded {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return errors.Errorf("failed to read recording: %v", err)
	}

	if len(lines) == 0 {
		fmt.Print("No data found.\n")
		return nil
	}
	if recordsFlags.summary {
		printRecordsSummary(lines)
		return nil
	}

	table := utils.NewTable("TIME", "OP", "OBJECT TYPE", "KEY", "ATTRIBUTES", "STATUS")
	for _, line := range lines {
		table.AddRow(line.Time.Format(recorder.TimestampFormat), string(line.Op), line.ObjectType.String(),
			line.Key, utils.ListString(line.Attrs),
			utils.StatusString(line.Status, line.Status == sai.StatusSuccess.String()))
	}
	table.Print()
	return nil
}

func printRecordsSummary(lines []*recorder.Line) {
	type summaryKey struct {
		op     string
		status string
	}
	counts := make(map[summaryKey]int)
	for _, line := range lines {
		counts[summaryKey{op: string(line.Op), status: line.Status}]++
	}
	keys := make([]summaryKey, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].op == keys[j].op {
			return keys[i].status < keys[j].status
		}
		return keys[i].op < keys[j].op
	})

	table := utils.NewTable("OP", "STATUS", "CALLS")
	for _, key := range keys {
		table.AddRow(key.op, utils.StatusString(key.status, key.status == sai.StatusSuccess.String()),
			strconv.Itoa(counts[key]))
	}
	table.Print()
}
