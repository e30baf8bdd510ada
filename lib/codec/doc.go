// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the module's standard CBOR encoding configuration.
//
// Rain metadata is a byte-exact wire format: the content hash of a
// document is the keccak256 of its encoded bytes, so the same logical
// item must always serialize to identical bytes. This package owns the
// shared CBOR encoding and decoding modes so that every package encodes
// identically without duplicating configuration.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items. The
// decoder is strict: an unknown field in a keyasint-tagged struct (an
// unrecognized integer key in a meta map) is a hard error rather than a
// skip, because silently dropping a key would let two different byte
// strings decode to the same item.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// Meta documents are transported as magic-prefixed CBOR sequences with
// no length delimiters; UnmarshalFirst peels one item off the front of
// a buffer and returns the remainder, which is how sequence decoding
// recovers item boundaries.
package codec
