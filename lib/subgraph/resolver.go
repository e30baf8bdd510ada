// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package subgraph

import (
	"context"

	"github.com/rainlanguage/rain.metadata/lib/meta"
)

// Resolver looks up Rain metadata on remote indexes. Implementations
// query every endpoint concurrently and return the first success;
// an error means no endpoint produced a result.
type Resolver interface {
	// SearchMeta resolves a document's raw bytes by its content hash.
	SearchMeta(ctx context.Context, hash meta.Hash, endpoints []string) (*MetaResponse, error)

	// SearchDeployer resolves an expression deployer artifact bundle.
	// The hash may be the deployer's bytecode meta hash or the hash of
	// the transaction that deployed it.
	SearchDeployer(ctx context.Context, hash meta.Hash, endpoints []string) (*DeployerResponse, error)
}

// MetaResponse is a resolved document.
type MetaResponse struct {
	// Bytes is the raw item or sequence bytes as emitted on chain.
	Bytes []byte
}

// DeployerResponse is a resolved expression deployer artifact bundle.
type DeployerResponse struct {
	// MetaHash is the content hash of the deployer's meta document.
	MetaHash meta.Hash
	// MetaBytes is that document's raw bytes.
	MetaBytes []byte
	// Bytecode is the deployer's deployed bytecode.
	Bytecode []byte
	// Parser, Store, and Interpreter are the addresses of the
	// deployer's sibling contracts, ABI-encoded as raw bytes.
	Parser      []byte
	Store       []byte
	Interpreter []byte
	// BytecodeMetaHash is the keccak256 of the bytecode meta item and
	// the key the artifact is cached under.
	BytecodeMetaHash meta.Hash
	// TxHash is the hash of the deployment transaction.
	TxHash meta.Hash
}

// AuthoringMeta extracts the deployer's authoring words from its meta
// document. Returns nil when the document decodes but carries no
// authoring meta, and nil too when the bytes are corrupt; a missing
// word list degrades parsing hints, it never blocks caching.
func (r *DeployerResponse) AuthoringMeta() *meta.AuthoringMeta {
	items, err := meta.DecodeSequence(r.MetaBytes)
	if err != nil {
		return nil
	}
	for _, item := range items {
		if item.Magic != meta.MagicAuthoringMetaV1 {
			continue
		}
		payload, err := item.Unpack()
		if err != nil {
			continue
		}
		words, err := meta.ParseAuthoringMetaABI(payload)
		if err != nil {
			continue
		}
		return &words
	}
	return nil
}
