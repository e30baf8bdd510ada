// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package store implements an in-memory content-addressed cache for
// Rain metadata.
//
// A Store maps keccak256 content hashes to raw document bytes, tracks
// dotrain documents by URI, and caches expression deployer artifact
// bundles with a tx-hash alias index. Network lookups go through an
// injected subgraph.Resolver; everything else is synchronous.
//
// The store has no internal locking. Callers sharing one store across
// goroutines must serialize access themselves.
package store
