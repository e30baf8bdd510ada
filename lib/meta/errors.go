// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure modes of the codec and the typed
// registry. All are surfaced to callers as wrapped errors; malformed
// external input never panics.
var (
	// ErrUnknownMagic is returned when a 64-bit value is not in the
	// closed magic registry. Callers must treat an unknown magic as
	// "cannot interpret", never "ignore".
	ErrUnknownMagic = errors.New("unknown magic number")

	// ErrUnsupportedMeta is returned when a magic is recognized but
	// the item cannot be converted to the requested type, or lies
	// outside the typed-registry whitelist.
	ErrUnsupportedMeta = errors.New("unsupported meta")

	// ErrCorruptMeta is returned when sequence decoding finds zero
	// items, inconsistent offsets, or unconsumed trailing bytes.
	ErrCorruptMeta = errors.New("corrupt meta")

	// ErrInflate is returned when both the zlib-wrapped and the raw
	// DEFLATE decode attempts fail.
	ErrInflate = errors.New("inflate failed")

	// ErrBiggerThan32Bytes is returned when packing a string into a
	// fixed-width bytes32 would overflow.
	ErrBiggerThan32Bytes = errors.New("string exceeds 32 bytes")

	// ErrDecodeHexString is returned for malformed hex input.
	ErrDecodeHexString = errors.New("malformed hex string")
)

// InvalidMagicError reports a type-directed conversion attempted on an
// item tagged with the wrong magic.
type InvalidMagicError struct {
	Expected Magic
	Actual   Magic
}

func (e *InvalidMagicError) Error() string {
	return fmt.Sprintf("invalid meta magic: expected %s, got %s", e.Expected, e.Actual)
}
