// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"

	"github.com/rainlanguage/rain.metadata/lib/codec"
)

// Hash is a 32-byte keccak256 digest. Content hashes, document
// subjects, deployer hashes, and transaction hashes are all this size.
type Hash [32]byte

// Keccak256 computes the keccak256 digest of data. This is the
// original (pre-SHA3-standardization) keccak permutation used by the
// EVM, not NIST SHA3-256.
func Keccak256(data []byte) Hash {
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(data)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// IsZero reports whether the hash is the all-zero value, the "no hash"
// sentinel used by store results.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

// String returns the 0x-prefixed lowercase hex form, the canonical
// transport representation.
func (h Hash) String() string {
	return FormatHash(h)
}

// MarshalCBOR encodes the hash as a 32-byte CBOR byte string. Without
// this, a [32]byte array would encode as a CBOR array of 32 integers.
func (h Hash) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(h[:])
}

// UnmarshalCBOR decodes a 32-byte CBOR byte string.
func (h *Hash) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := codec.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 32 {
		return fmt.Errorf("hash is %d bytes, want 32", len(raw))
	}
	copy(h[:], raw)
	return nil
}

// FormatHash returns the 0x-prefixed lowercase hex representation of a
// hash, the form used in subgraph queries, logs, and CLI output.
func FormatHash(hash Hash) string {
	return "0x" + hex.EncodeToString(hash[:])
}

// ParseHash parses a 64-character hex string, with or without a 0x
// prefix, into a Hash.
func ParseHash(text string) (Hash, error) {
	var hash Hash
	decoded, err := ParseHexBytes(text)
	if err != nil {
		return hash, err
	}
	if len(decoded) != 32 {
		return hash, fmt.Errorf("hash is %d bytes, want 32", len(decoded))
	}
	copy(hash[:], decoded)
	return hash, nil
}

// ParseHexBytes decodes a hex string with an optional 0x prefix.
// Decoders must accept both forms per the transport convention.
func ParseHexBytes(text string) ([]byte, error) {
	trimmed := strings.TrimPrefix(text, "0x")
	decoded, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeHexString, err)
	}
	return decoded, nil
}

// FormatHexBytes returns the 0x-prefixed lowercase hex encoding of
// arbitrary bytes.
func FormatHexBytes(data []byte) string {
	return "0x" + hex.EncodeToString(data)
}
