// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"errors"
	"strings"
	"testing"
)

func TestStrToBytes32Roundtrip(t *testing.T) {
	for _, text := range []string{"", "stack", "constant", "int-add", strings.Repeat("a", 32)} {
		word, err := StrToBytes32(text)
		if err != nil {
			t.Fatalf("StrToBytes32(%q): %v", text, err)
		}
		back, err := Bytes32ToStr(word)
		if err != nil {
			t.Fatalf("Bytes32ToStr(%q): %v", text, err)
		}
		if back != text {
			t.Errorf("roundtrip %q -> %q", text, back)
		}
	}
}

func TestStrToBytes32Overflow(t *testing.T) {
	_, err := StrToBytes32(strings.Repeat("a", 33))
	if !errors.Is(err, ErrBiggerThan32Bytes) {
		t.Errorf("overflow error = %v, want ErrBiggerThan32Bytes", err)
	}
}

func TestBytes32ToStrStopsAtNul(t *testing.T) {
	var word [32]byte
	copy(word[:], "stack")
	word[10] = 'x' // garbage after the first NUL is ignored

	text, err := Bytes32ToStr(word)
	if err != nil {
		t.Fatalf("Bytes32ToStr: %v", err)
	}
	if text != "stack" {
		t.Errorf("got %q, want %q", text, "stack")
	}
}
