// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Command rainmeta encodes, decodes, and resolves Rain metadata
// documents.
package main

import (
	"fmt"
	"os"

	"github.com/rainlanguage/rain.metadata/cmd/rainmeta/commands"
)

func main() {
	if err := commands.Root().Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
