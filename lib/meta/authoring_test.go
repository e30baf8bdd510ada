// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"bytes"
	"testing"
)

func TestAuthoringMetaABIEncodeLayout(t *testing.T) {
	words := AuthoringMeta{
		{Word: "stack", Description: "Copies an existing value from the stack.", OperandParserOffset: 16},
		{Word: "constant", Description: "Copies a constant value onto the stack.", OperandParserOffset: 16},
	}
	encoded, err := words.ABIEncode()
	if err != nil {
		t.Fatalf("ABIEncode: %v", err)
	}
	if len(encoded) != 512 {
		t.Fatalf("encoded length %d, want 512", len(encoded))
	}

	word := func(i int) []byte { return encoded[i*32 : (i+1)*32] }

	// Head: pointer to the array, then its length.
	if word(0)[31] != 0x20 {
		t.Errorf("array pointer word = % x", word(0))
	}
	if word(1)[31] != 0x02 {
		t.Errorf("length word = % x", word(1))
	}
	// Element offsets are relative to the start of the offsets area.
	if word(2)[31] != 0x40 {
		t.Errorf("element 0 offset word = % x", word(2))
	}
	if word(3)[30] != 0x01 || word(3)[31] != 0x00 {
		t.Errorf("element 1 offset word = % x", word(3))
	}

	// Element 0: bytes32 word, uint8 word, string pointer (0x60),
	// string length, padded content.
	expectedWord, err := StrToBytes32("stack")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(word(4), expectedWord[:]) {
		t.Errorf("element 0 bytes32 = % x", word(4))
	}
	if word(5)[31] != 16 {
		t.Errorf("element 0 operand offset word = % x", word(5))
	}
	if word(6)[31] != 0x60 {
		t.Errorf("element 0 string pointer word = % x", word(6))
	}
	if word(7)[31] != 40 {
		t.Errorf("element 0 string length word = % x", word(7))
	}
	if string(encoded[8*32:8*32+40]) != "Copies an existing value from the stack." {
		t.Errorf("element 0 string content mismatch")
	}
}

func TestAuthoringMetaABIRoundtrip(t *testing.T) {
	words := AuthoringMeta{
		{Word: "stack", Description: "Copies an existing value from the stack.", OperandParserOffset: 16},
		{Word: "constant", Description: "Copies a constant value onto the stack.", OperandParserOffset: 16},
		{Word: "int-add", Description: "Adds integers.", OperandParserOffset: 0},
	}
	encoded, err := words.ABIEncode()
	if err != nil {
		t.Fatalf("ABIEncode: %v", err)
	}
	decoded, err := ParseAuthoringMetaABI(encoded)
	if err != nil {
		t.Fatalf("ParseAuthoringMetaABI: %v", err)
	}
	if len(decoded) != len(words) {
		t.Fatalf("decoded %d words, want %d", len(decoded), len(words))
	}
	for i := range words {
		if decoded[i] != words[i] {
			t.Errorf("word %d: got %+v, want %+v", i, decoded[i], words[i])
		}
	}
}

func TestAuthoringMetaABIEncodeRejectsLongWord(t *testing.T) {
	words := AuthoringMeta{
		{Word: "this-word-is-way-too-long-to-fit-in-a-bytes32-slot", Description: "x"},
	}
	if _, err := words.ABIEncode(); err == nil {
		t.Error("ABIEncode accepted a word longer than 32 bytes")
	}
}

func TestParseAuthoringMetaABITruncated(t *testing.T) {
	words := AuthoringMeta{{Word: "stack", Description: "d", OperandParserOffset: 1}}
	encoded, err := words.ABIEncode()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ParseAuthoringMetaABI(encoded[:len(encoded)-8]); err == nil {
		t.Error("ParseAuthoringMetaABI accepted truncated data")
	}
}
