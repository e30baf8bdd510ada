// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package meta implements the Rain metadata document format: a
// self-describing binary container for structured metadata items
// (interpreter op descriptions, authoring information, source code,
// deployment bytecode bundles) exchanged in a decentralized-contract
// ecosystem.
//
// A document item (the "meta map") pairs a payload with a 64-bit magic
// number identifying its type and three optional content-negotiation
// fields describing how the payload bytes should be interpreted. Items
// are encoded as CBOR maps with small-integer keys in a canonical form
// whose keccak256 hash is stable and reproducible:
//
//	0: payload           (byte string, required)
//	1: magic             (unsigned integer, required)
//	2: content type      (text string, omitted when unset)
//	3: content encoding  (text string, omitted when unset)
//	4: content language  (text string, omitted when unset)
//
// One or more encoded items concatenated behind the RainMetaDocumentV1
// 8-byte magic prefix form a sequence; there are no separators or
// length prefixes between items, item boundaries are recovered from
// CBOR's self-delimiting structure.
//
// An item has two distinct hash domains that are never interchangeable:
// the item hash (keccak256 of the item's own encoding, used as its
// content address) and the document hash (keccak256 of the item
// wrapped as a one-element sequence, used as the on-chain subject).
// ItemHash and DocumentHash expose them as separate operations.
package meta
