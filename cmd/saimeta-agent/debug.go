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

// +build !nodebug

package main

import (
	_ "expvar"
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"

	log "github.com/ligato/cn-infra/logging/logrus"
)

var (
	debugEnabled    = os.Getenv("SAIMETA_DEBUG") != ""
	debugServerAddr = os.Getenv("SAIMETA_DEBUG_ADDR")
	cpuProfile      = os.Getenv("SAIMETA_CPUPROFILE")
	memProfile      = os.Getenv("SAIMETA_MEMPROFILE")
)

func init() {
	if debugEnabled {
		go debugServer()
		debugging = startProfiling
	}
}

func debugServer() {
	addr := debugServerAddr
	if addr == "" {
		addr = ":1234"
	}
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.DefaultLogger().Warnf("debug server error: %v", err)
	}
}

// startProfiling starts the CPU profile and returns function which
// stops it and writes the heap profile.
func startProfiling() func() {
	logger := log.DefaultLogger()

	var cpuFile *os.File
	if cpuProfile != "" {
		var err error
		if cpuFile, err = os.Create(cpuProfile); err != nil {
			logger.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			logger.Fatalf("could not start CPU profile: %v", err)
		}
	}

	return func() {
		if cpuFile != nil {
			pprof.StopCPUProfile()
			logger.Infof("closing CPU profile file: %s", cpuFile.Name())
			if err := cpuFile.Close(); err != nil {
				logger.Warnf("closing failed: %v", err)
			}
		}
		if memProfile == "" {
			return
		}
		f, err := os.Create(memProfile)
		if err != nil {
			logger.Warnf("could not create memory profile: %v", err)
			return
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Warnf("could not write memory profile: %v", err)
		}
	}
}
