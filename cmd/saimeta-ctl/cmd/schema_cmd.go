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
	"strconv"
	"strings"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/ligato/sai-agent/api/sai"
	"github.com/ligato/sai-agent/cmd/saimeta-ctl/utils"
	"github.com/ligato/sai-agent/pkg/saimetadata"
)

var schemaCmd = &cobra.Command{
	Use:   "schema [object-type]",
	Short: "Show the metadata of object types",
	Long: `
	Without arguments list all object types known to the meta layer,
	otherwise list attributes of the given object type.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: schemaFunction,
}

func init() {
	RootCmd.AddCommand(schemaCmd)
}

func schemaFunction(cmd *cobra.Command, args []string) error {
	registry := saimetadata.DefaultRegistry()

	if len(args) == 0 {
		table := utils.NewTable("OBJECT TYPE", "KEYED BY", "ATTRIBUTES")
		for _, objectType := range registry.ObjectTypes() {
			info := registry.ObjectTypeInfo(objectType)
			keyedBy := "oid"
			if info.IsNonObjectID {
				keyedBy = "entry"
			}
			table.AddRow(objectType.String(), keyedBy, strconv.Itoa(len(info.Attrs)))
		}
		table.Print()
		return nil
	}

	objectType, err := sai.ParseObjectType(args[0])
	if err != nil {
		return err
	}
	info := registry.ObjectTypeInfo(objectType)
	if info == nil {
		return errors.Errorf("%v has no metadata", objectType)
	}
	table := utils.NewTable("ATTRIBUTE", "TYPE", "FLAGS", "ENUM", "REFERENCES")
	for _, md := range info.Attrs {
		enum := ""
		if md.Enum != nil {
			enum = md.Enum.Name
		}
		refs := make([]string, 0, len(md.AllowedObjectTypes))
		for _, t := range md.AllowedObjectTypes {
			refs = append(refs, strings.TrimPrefix(t.String(), "SAI_OBJECT_TYPE_"))
		}
		flags := md.Flags.String()
		if md.IsConditional() {
			flags += "|CONDITIONAL"
		}
		table.AddRow(md.Name, md.ValueType.String(), flags, enum, utils.ListString(refs))
	}
	table.Print()
	return nil
}
