// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands defines the rainmeta command tree.
package commands

import (
	"github.com/rainlanguage/rain.metadata/cmd/rainmeta/cli"
)

// Root returns the top-level rainmeta command.
func Root() *cli.Command {
	return &cli.Command{
		Name:    "rainmeta",
		Summary: "Rain metadata tooling",
		Description: `rainmeta encodes, decodes, and resolves Rain metadata documents.

Documents are CBOR meta-maps tagged with 64-bit magic numbers and
addressed by keccak256 content hash. The generate command produces
MetaBoard deployment payloads; decode inspects encoded documents;
search resolves hashes over subgraph endpoints.`,
		Subcommands: []*cli.Command{
			generateCommand(),
			decodeCommand(),
			magicCommand(),
			searchCommand(),
		},
	}
}
