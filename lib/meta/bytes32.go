// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"bytes"
	"fmt"
	"unicode/utf8"
)

// StrToBytes32 packs a string into a fixed 32-byte word, right-padded
// with zeros. Authoring words are stored on-chain in this form.
// Returns ErrBiggerThan32Bytes when the string does not fit.
func StrToBytes32(text string) ([32]byte, error) {
	var word [32]byte
	if len(text) > 32 {
		return word, fmt.Errorf("%w: %q is %d bytes", ErrBiggerThan32Bytes, text, len(text))
	}
	copy(word[:], text)
	return word, nil
}

// Bytes32ToStr unpacks a fixed 32-byte word back into a string,
// stopping at the first zero byte. Fails if the prefix is not valid
// UTF-8.
func Bytes32ToStr(word [32]byte) (string, error) {
	length := 32
	if i := bytes.IndexByte(word[:], 0); i >= 0 {
		length = i
	}
	if !utf8.Valid(word[:length]) {
		return "", fmt.Errorf("bytes32 prefix is not valid UTF-8")
	}
	return string(word[:length]), nil
}
