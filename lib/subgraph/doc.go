// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package subgraph resolves Rain metadata over GraphQL.
//
// A Resolver looks up documents by content hash and deployer artifact
// bundles by deployer, bytecode, or transaction hash, fanning each
// lookup out to every registered subgraph endpoint concurrently and
// taking the first success. Client is the HTTP implementation;
// BootstrapEndpoints lists the endpoints baked into the binary.
package subgraph
