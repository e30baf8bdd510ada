// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"encoding/hex"
	"errors"
	"testing"
)

func TestPrefixBytes(t *testing.T) {
	tests := []struct {
		magic Magic
		hex   string
	}{
		{MagicRainMetaDocumentV1, "ff0a89c674ee7874"},
		{MagicOpMetaV1, "ffe5282f43e495b4"},
		{MagicDotrainV1, "ffdac2f2f37be894"},
		{MagicRainlangV1, "ff1c198cec3b48a7"},
		{MagicSolidityABIV2, "ffe5ffb4a3ff2cde"},
		{MagicAuthoringMetaV1, "ffe9e3a02ca8e235"},
		{MagicAuthoringMetaV2, "ff52fe42f1a05093"},
		{MagicInterpreterCallerMetaV1, "ffc21bbf86cc199b"},
		{MagicExpressionDeployerV2BytecodeV1, "ffdb988a8cd04d32"},
		{MagicRainlangSourceV1, "ff13109e41336ff2"},
		{MagicAddressList, "ffb2637608c09e38"},
		{MagicDotrainSourceV1, "ffa15ef0fc437099"},
		{MagicDotrainGuiStateV1, "ffda7b2fb167c286"},
	}
	for _, tt := range tests {
		t.Run(tt.magic.String(), func(t *testing.T) {
			prefix := tt.magic.PrefixBytes()
			if got := hex.EncodeToString(prefix[:]); got != tt.hex {
				t.Errorf("PrefixBytes() = %s, want %s", got, tt.hex)
			}
		})
	}
}

func TestMagicFromUint64(t *testing.T) {
	for _, magic := range KnownMagics() {
		got, err := MagicFromUint64(uint64(magic))
		if err != nil {
			t.Errorf("MagicFromUint64(%#x): %v", uint64(magic), err)
		}
		if got != magic {
			t.Errorf("MagicFromUint64(%#x) = %v, want %v", uint64(magic), got, magic)
		}
	}

	if _, err := MagicFromUint64(0xdeadbeef); !errors.Is(err, ErrUnknownMagic) {
		t.Errorf("unknown value error = %v, want ErrUnknownMagic", err)
	}
	// Off-by-one neighbors of a real magic are still unknown: the set
	// is closed, with no catch-all.
	if _, err := MagicFromUint64(uint64(MagicOpMetaV1) + 1); !errors.Is(err, ErrUnknownMagic) {
		t.Errorf("neighbor value error = %v, want ErrUnknownMagic", err)
	}
}

func TestParseMagicRoundtrip(t *testing.T) {
	for _, magic := range KnownMagics() {
		parsed, err := ParseMagic(magic.String())
		if err != nil {
			t.Errorf("ParseMagic(%q): %v", magic.String(), err)
			continue
		}
		if parsed != magic {
			t.Errorf("ParseMagic(%q) = %v, want %v", magic.String(), parsed, magic)
		}
	}

	// The gui state magic is shared with its instance alias.
	parsed, err := ParseMagic("dotrain-instance-v1")
	if err != nil {
		t.Fatalf("ParseMagic alias: %v", err)
	}
	if parsed != MagicDotrainGuiStateV1 {
		t.Errorf("alias parsed to %v", parsed)
	}

	if _, err := ParseMagic("no-such-magic"); err == nil {
		t.Error("ParseMagic accepted an unknown name")
	}
}

func TestKnownMagicsIsACopy(t *testing.T) {
	first := KnownMagics()
	first[0] = Magic(0)
	second := KnownMagics()
	if second[0] == Magic(0) {
		t.Error("KnownMagics exposes internal state")
	}
}
