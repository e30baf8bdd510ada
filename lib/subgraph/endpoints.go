// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package subgraph

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

//go:embed endpoints.jsonc
var endpointsFile embed.FS

// BootstrapEndpoints returns the subgraph endpoints compiled into the
// binary. The returned slice is a fresh copy each call.
func BootstrapEndpoints() []string {
	data, err := endpointsFile.ReadFile("endpoints.jsonc")
	if err != nil {
		panic(fmt.Sprintf("embedded endpoints missing: %v", err))
	}
	var parsed struct {
		Endpoints []string `json:"endpoints"`
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &parsed); err != nil {
		panic(fmt.Sprintf("embedded endpoints malformed: %v", err))
	}
	return parsed.Endpoints
}
