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

package utils

import (
	"fmt"
	"strings"

	tm "github.com/buger/goterm"
	"github.com/logrusorgru/aurora"
)

// Table accumulates rows of tab-separated columns.
type Table struct {
	header []string
	rows   [][]string
}

// NewTable returns table with the given column names.
func NewTable(header ...string) *Table {
	return &Table{header: header}
}

// AddRow appends one row, missing columns are left empty.
func (t *Table) AddRow(columns ...string) {
	t.rows = append(t.rows, columns)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render aligns the columns and returns the table as text.
func (t *Table) Render() string {
	table := tm.NewTable(0, 8, 2, ' ', 0)
	fmt.Fprintln(table, strings.Join(t.header, "\t"))
	for _, row := range t.rows {
		fmt.Fprintln(table, strings.Join(row, "\t"))
	}
	return table.String()
}

// Print writes the table to the terminal.
func (t *Table) Print() {
	tm.Print(t.Render())
	tm.Flush()
}

// StatusString colors status green on success and red otherwise.
func StatusString(status string, ok bool) string {
	if ok {
		return aurora.Green(status).String()
	}
	return aurora.Red(status).String()
}

// ListString joins values for a single table cell.
func ListString(values []string) string {
	return strings.Join(values, " ")
}
