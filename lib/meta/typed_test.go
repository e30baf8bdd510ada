// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"errors"
	"testing"
)

func encodeHexSequence(t *testing.T, items []DocumentItem) string {
	t.Helper()
	data, err := EncodeSequence(items, MagicRainMetaDocumentV1)
	if err != nil {
		t.Fatalf("EncodeSequence: %v", err)
	}
	return FormatHexBytes(data)
}

func TestParseHexMetas(t *testing.T) {
	items := []DocumentItem{
		{
			Payload:     []byte("#main _ _: int-add(1 2)"),
			Magic:       MagicDotrainSourceV1,
			ContentType: ContentTypeOctetStream,
		},
		{
			Payload:     []byte("_ _: int-add(1 2)"),
			Magic:       MagicRainlangV1,
			ContentType: ContentTypeOctetStream,
		},
	}
	hexText := encodeHexSequence(t, items)

	metas, err := ParseHexMetas(hexText)
	if err != nil {
		t.Fatalf("ParseHexMetas: %v", err)
	}
	if len(metas) != 2 {
		t.Fatalf("parsed %d metas, want 2", len(metas))
	}
	source, ok := metas[0].(DotrainSourceMeta)
	if !ok || string(source) != "#main _ _: int-add(1 2)" {
		t.Errorf("meta 0 = %T %q", metas[0], metas[0])
	}
	if metas[1].Magic() != MagicRainlangV1 {
		t.Errorf("meta 1 magic = %v", metas[1].Magic())
	}

	// The 0x prefix is optional on input.
	if _, err := ParseHexMetas(hexText[2:]); err != nil {
		t.Errorf("ParseHexMetas without 0x: %v", err)
	}
}

func TestParseHexMetasBadHex(t *testing.T) {
	_, err := ParseHexMetas("0xzz")
	if !errors.Is(err, ErrDecodeHexString) {
		t.Errorf("bad hex error = %v, want ErrDecodeHexString", err)
	}
}

func TestParseHexMetasRequiresDocumentPrefix(t *testing.T) {
	// A bare unwrapped item is rejected: the top level must always be
	// a sequence.
	item := DocumentItem{Payload: []byte("x"), Magic: MagicOpMetaV1}
	encoded, err := item.Encode()
	if err != nil {
		t.Fatal(err)
	}
	_, err = ParseHexMetas(FormatHexBytes(encoded))
	if !errors.Is(err, ErrCorruptMeta) {
		t.Errorf("missing prefix error = %v, want ErrCorruptMeta", err)
	}
}

func TestParseHexMetasFailFast(t *testing.T) {
	// One unconvertible item aborts the whole batch: no partial
	// results. An inner item tagged with the document magic itself is
	// outside the typed whitelist.
	items := []DocumentItem{
		{Payload: []byte("ok"), Magic: MagicOpMetaV1},
		{Payload: []byte("nested"), Magic: MagicRainMetaDocumentV1},
	}
	hexText := encodeHexSequence(t, items)

	metas, err := ParseHexMetas(hexText)
	if !errors.Is(err, ErrUnsupportedMeta) {
		t.Errorf("fail-fast error = %v, want ErrUnsupportedMeta", err)
	}
	if metas != nil {
		t.Errorf("expected no partial results, got %d", len(metas))
	}
}

func TestTypedMagicInverse(t *testing.T) {
	variants := []TypedMeta{
		OpMeta(nil),
		DotrainMeta(""),
		RainlangMeta(""),
		SolidityABIMeta(nil),
		InterpreterCallerMeta(nil),
		DeployerBytecodeMeta(nil),
		RainlangSourceMeta(""),
		AddressListMeta(nil),
		DotrainSourceMeta(""),
		AuthoringMeta(nil),
		AuthoringMetaV2{},
		&DotrainGuiStateV1{},
	}
	seen := make(map[Magic]bool)
	for _, variant := range variants {
		magic := variant.Magic()
		if seen[magic] {
			t.Errorf("duplicate magic %v", magic)
		}
		seen[magic] = true
		if _, err := MagicFromUint64(uint64(magic)); err != nil {
			t.Errorf("variant %T reports unregistered magic %v", variant, magic)
		}
	}
}

func TestDotrainSourceMetaHash(t *testing.T) {
	const source = "#main _ _: int-add(1 2)"
	got := DotrainSourceMeta(source).Hash()
	if want := Keccak256([]byte(source)); got != want {
		t.Errorf("Hash() = %s, want %s", FormatHash(got), FormatHash(want))
	}
	if DotrainSourceMeta("").Hash() != Keccak256(nil) {
		t.Error("empty source must hash as the empty keccak digest")
	}
}
