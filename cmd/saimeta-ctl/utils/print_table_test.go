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
	"strings"
	"testing"

	. "github.com/onsi/gomega"
)

func TestTableRender(t *testing.T) {
	RegisterTestingT(t)

	table := NewTable("OP", "STATUS")
	table.AddRow("create", "SAI_STATUS_SUCCESS")
	table.AddRow("remove_all", "SAI_STATUS_OBJECT_IN_USE")
	Expect(table.Len()).To(Equal(2))

	lines := strings.Split(strings.TrimRight(table.Render(), "\n"), "\n")
	Expect(lines).To(HaveLen(3))
	Expect(lines[0]).To(HavePrefix("OP"))
	// columns are aligned
	Expect(strings.Index(lines[1], "SAI_STATUS_SUCCESS")).To(Equal(strings.Index(lines[0], "STATUS")))
	Expect(strings.Index(lines[2], "SAI_STATUS_OBJECT_IN_USE")).To(Equal(strings.Index(lines[0], "STATUS")))
}

func TestStatusString(t *testing.T) {
	RegisterTestingT(t)

	Expect(StatusString("OK", true)).To(ContainSubstring("OK"))
	Expect(StatusString("FAILED", false)).To(ContainSubstring("FAILED"))
	Expect(StatusString("OK", true)).ToNot(Equal(StatusString("OK", false)))
	Expect(ListString([]string{"a", "b"})).To(Equal("a b"))
}
