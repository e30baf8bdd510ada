// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"github.com/rainlanguage/rain.metadata/lib/meta"
	"github.com/rainlanguage/rain.metadata/lib/subgraph"
)

// NPE2Deployer is a cached expression deployer artifact bundle: the
// deployer's meta document, its deployed bytecode, the bytecode of its
// sibling contracts, and the authoring words derived from the meta.
type NPE2Deployer struct {
	MetaHash    meta.Hash `cbor:"meta_hash" json:"metaHash"`
	MetaBytes   []byte    `cbor:"meta_bytes" json:"metaBytes"`
	Bytecode    []byte    `cbor:"bytecode" json:"bytecode"`
	Parser      []byte    `cbor:"parser" json:"parser"`
	Store       []byte    `cbor:"store" json:"store"`
	Interpreter []byte    `cbor:"interpreter" json:"interpreter"`
	// AuthoringMeta is nil when the meta document carried no authoring
	// words or they failed to decode.
	AuthoringMeta *meta.AuthoringMeta `cbor:"authoring_meta" json:"authoringMeta"`
}

// IsCorrupt reports whether any required field of the record is empty.
// This is a completeness check on the cached bundle, not a
// cryptographic one; AuthoringMeta is optional and not checked.
func (d *NPE2Deployer) IsCorrupt() bool {
	return d.MetaHash.IsZero() ||
		len(d.MetaBytes) == 0 ||
		len(d.Bytecode) == 0 ||
		len(d.Parser) == 0 ||
		len(d.Store) == 0 ||
		len(d.Interpreter) == 0
}

// deployerFromResponse builds a cache record from a resolver response,
// deriving the authoring words from the meta bytes.
func deployerFromResponse(response *subgraph.DeployerResponse) *NPE2Deployer {
	return &NPE2Deployer{
		MetaHash:      response.MetaHash,
		MetaBytes:     response.MetaBytes,
		Bytecode:      response.Bytecode,
		Parser:        response.Parser,
		Store:         response.Store,
		Interpreter:   response.Interpreter,
		AuthoringMeta: response.AuthoringMeta(),
	}
}
