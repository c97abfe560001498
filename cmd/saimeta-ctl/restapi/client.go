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

// Package restapi implements the client of the saimeta REST API.
package restapi

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-errors/errors"
)

// Client queries the REST API of a running agent.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns client for the agent listening on the address,
// which may be given with or without the http:// scheme.
func NewClient(addr string, timeout time.Duration) *Client {
	if !strings.HasPrefix(addr, "http://") && !strings.HasPrefix(addr, "https://") {
		addr = "http://" + addr
	}
	return &Client{
		baseURL: strings.TrimSuffix(addr, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// errorResponse is the body the agent returns with failed requests.
type errorResponse struct {
	Error string
}

// GetRaw sends GET request and returns the response body.
func (c *Client) GetRaw(path string, query url.Values) ([]byte, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}
	resp, err := c.http.Get(reqURL)
	if err != nil {
		return nil, errors.Errorf("GET %s failed: %v", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Errorf("failed to read response body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return nil, errors.Errorf("%s (HTTP %d)", errResp.Error, resp.StatusCode)
		}
		return nil, errors.Errorf("GET %s returned HTTP %d", reqURL, resp.StatusCode)
	}
	return body, nil
}

// Get sends GET request and decodes the JSON response into out.
func (c *Client) Get(path string, query url.Values, out interface{}) error {
	body, err := c.GetRaw(path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Errorf("failed to decode response: %v", err)
	}
	return nil
}
