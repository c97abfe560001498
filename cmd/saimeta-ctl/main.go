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

// saimeta-ctl is a CLI tool for the SAI meta layer. It replays scenarios
// against an in-process virtual switch, inspects recordings and queries
// the REST API of a running saimeta-agent.
package main

import (
	"fmt"
	"os"

	"github.com/ligato/sai-agent/cmd/saimeta-ctl/cmd"
	"github.com/ligato/sai-agent/cmd/saimeta-ctl/utils"
)

func main() {
	if err := cmd.RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(utils.ExitError)
	}
}
