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

// Package version provides build information of the binaries.
package version

import (
	"fmt"
	"runtime"
	"strconv"
	"time"
)

// Set by the linker, e.g. -X github.com/ligato/sai-agent/pkg/version.gitCommit=...
var (
	version   = "v0.1.0"
	gitCommit = "unknown"
	gitBranch = "HEAD"
	buildDate = ""
)

var (
	buildTime time.Time
	revision  string
)

func init() {
	if buildDate != "" {
		stamp, _ := strconv.ParseInt(buildDate, 10, 64)
		buildTime = time.Unix(stamp, 0)
	}
	revision = shortRevision(gitCommit, gitBranch)
}

func shortRevision(commit, branch string) string {
	rev := commit
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if branch != "HEAD" {
		rev += "@" + branch
	}
	return rev
}

// Version returns version string.
func Version() string {
	return version
}

// Info returns complete version info of the app on a single line.
func Info(app string) string {
	return fmt.Sprintf("%s %s (%s) built on %s", app, version, revision, builtOn())
}

// Detail returns version info of the app on separate lines.
func Detail(app string) string {
	return fmt.Sprintf(`%s
  Version:   	%s
  Branch:   	%s
  Revision:  	%s
  Build Date:	%s
  Go Runtime:	%s (%s/%s)`,
		app, version, gitBranch, revision, builtOn(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

func builtOn() string {
	if buildTime.IsZero() {
		return "unknown date"
	}
	return buildTime.Format(time.UnixDate)
}
