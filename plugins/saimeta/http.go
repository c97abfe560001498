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

package saimeta

import (
	"github.com/gorilla/mux"
	"github.com/ligato/cn-infra/rpc/rest"
	"github.com/unrolled/render"
)

// HTTPHandlers is the part of rest.HTTPHandlers the engine needs to
// expose its REST API. It is implemented by the cn-infra REST plugin
// and by NewMuxHandlers.
type HTTPHandlers interface {
	// RegisterHTTPHandler propagates to Gorilla mux.
	RegisterHTTPHandler(path string, provider rest.HandlerProvider, methods ...string) *mux.Route
}

type muxHandlers struct {
	router    *mux.Router
	formatter *render.Render
}

// NewMuxHandlers returns HTTPHandlers registering handlers with the router.
func NewMuxHandlers(router *mux.Router) HTTPHandlers {
	return &muxHandlers{
		router: router,
		formatter: render.New(render.Options{
			IndentJSON: true,
		}),
	}
}

// RegisterHTTPHandler registers HTTP <handler> at the given <path>.
func (h *muxHandlers) RegisterHTTPHandler(path string, provider rest.HandlerProvider, methods ...string) *mux.Route {
	return h.router.Handle(path, provider(h.formatter)).Methods(methods...)
}
