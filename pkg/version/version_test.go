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

package version

import (
	"testing"

	. "github.com/onsi/gomega"
)

func TestShortRevision(t *testing.T) {
	RegisterTestingT(t)

	Expect(shortRevision("0123456789abcdef", "HEAD")).To(Equal("0123456"))
	Expect(shortRevision("abc", "dev")).To(Equal("abc@dev"))
}

func TestInfo(t *testing.T) {
	RegisterTestingT(t)

	Expect(Info("saimeta-ctl")).To(HavePrefix("saimeta-ctl " + Version()))
	Expect(Info("saimeta-ctl")).To(ContainSubstring("unknown date"))
	Expect(Detail("saimeta-ctl")).To(ContainSubstring("Revision:"))
}
