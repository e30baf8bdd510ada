// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"encoding/binary"
	"fmt"
)

// AuthoringWord describes one word an interpreter's parser accepts.
// The JSON field names are the interchange form used by tooling; the
// on-chain form is the ABI encoding below.
type AuthoringWord struct {
	Word                string `json:"word"`
	Description         string `json:"description"`
	OperandParserOffset uint8  `json:"operandParserOffset"`
}

// AuthoringMeta is the v1 authoring word listing. On the wire it is
// ABI-encoded as (bytes32,uint8,string)[]: word packed into a fixed
// bytes32, the operand parser offset, and the free-form description.
type AuthoringMeta []AuthoringWord

// AuthoringWordV2 is the reduced v2 word shape.
type AuthoringWordV2 struct {
	Word        string `json:"word"`
	Description string `json:"description"`
}

// AuthoringMetaV2 is the v2 authoring word listing, carried as JSON.
type AuthoringMetaV2 struct {
	Words []AuthoringWordV2 `json:"words"`
}

const abiWordSize = 32

// ABIEncode returns the Solidity ABI encoding of the listing as a
// dynamic (bytes32,uint8,string)[] array, validating that every word
// packs into 32 bytes. The output is byte-identical to
// abi.encode(words) for the same values: a single offset word, the
// array length, per-element offsets, then each tuple with its string
// tail.
func (m AuthoringMeta) ABIEncode() ([]byte, error) {
	// Element encodings first; element offsets depend on their sizes.
	elements := make([][]byte, len(m))
	for i, word := range m {
		packed, err := StrToBytes32(word.Word)
		if err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}

		// bytes32 ∥ uint8 ∥ string offset (fixed: 3 head words) ∥
		// string length ∥ padded string bytes.
		element := make([]byte, 0, 5*abiWordSize+len(word.Description))
		element = append(element, packed[:]...)
		element = append(element, abiUint(uint64(word.OperandParserOffset))...)
		element = append(element, abiUint(3*abiWordSize)...)
		element = append(element, abiUint(uint64(len(word.Description)))...)
		element = append(element, abiPadded([]byte(word.Description))...)
		elements[i] = element
	}

	headSize := len(m) * abiWordSize
	encoded := make([]byte, 0, 2*abiWordSize+headSize)
	encoded = append(encoded, abiUint(abiWordSize)...)
	encoded = append(encoded, abiUint(uint64(len(m)))...)

	offset := headSize
	for _, element := range elements {
		encoded = append(encoded, abiUint(uint64(offset))...)
		offset += len(element)
	}
	for _, element := range elements {
		encoded = append(encoded, element...)
	}
	return encoded, nil
}

// ParseAuthoringMetaABI decodes an ABI-encoded (bytes32,uint8,string)[]
// back into the word listing. Every offset and length is bounds-checked
// so malformed input fails instead of panicking.
func ParseAuthoringMetaABI(data []byte) (AuthoringMeta, error) {
	arrayOffset, err := abiReadUint(data, 0)
	if err != nil {
		return nil, err
	}
	length, err := abiReadUint(data, arrayOffset)
	if err != nil {
		return nil, err
	}

	elementBase := arrayOffset + abiWordSize
	words := make(AuthoringMeta, 0, length)
	for i := uint64(0); i < length; i++ {
		elementOffset, err := abiReadUint(data, elementBase+i*abiWordSize)
		if err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}
		start := elementBase + elementOffset

		var packed [32]byte
		if err := abiReadWord(data, start, packed[:]); err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}
		word, err := Bytes32ToStr(packed)
		if err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}

		operandOffset, err := abiReadUint(data, start+abiWordSize)
		if err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}
		if operandOffset > 0xff {
			return nil, fmt.Errorf("authoring word %d: operand parser offset %d overflows uint8", i, operandOffset)
		}

		stringOffset, err := abiReadUint(data, start+2*abiWordSize)
		if err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}
		stringLength, err := abiReadUint(data, start+stringOffset)
		if err != nil {
			return nil, fmt.Errorf("authoring word %d: %w", i, err)
		}
		stringStart := start + stringOffset + abiWordSize
		// The string tail is zero-padded to a word boundary; the
		// padded extent must fit too.
		paddedLength := (stringLength + abiWordSize - 1) / abiWordSize * abiWordSize
		if stringStart+paddedLength > uint64(len(data)) {
			return nil, fmt.Errorf("authoring word %d: description exceeds input", i)
		}

		words = append(words, AuthoringWord{
			Word:                word,
			Description:         string(data[stringStart : stringStart+stringLength]),
			OperandParserOffset: uint8(operandOffset),
		})
	}
	return words, nil
}

// abiUint encodes value as a 32-byte big-endian word.
func abiUint(value uint64) []byte {
	word := make([]byte, abiWordSize)
	binary.BigEndian.PutUint64(word[abiWordSize-8:], value)
	return word
}

// abiPadded right-pads data with zeros to a multiple of 32 bytes.
func abiPadded(data []byte) []byte {
	padded := ((len(data) + abiWordSize - 1) / abiWordSize) * abiWordSize
	result := make([]byte, padded)
	copy(result, data)
	return result
}

// abiReadUint reads the 32-byte word at offset as a uint64, rejecting
// values that do not fit (the upper 24 bytes must be zero).
func abiReadUint(data []byte, offset uint64) (uint64, error) {
	var word [32]byte
	if err := abiReadWord(data, offset, word[:]); err != nil {
		return 0, err
	}
	for _, b := range word[:abiWordSize-8] {
		if b != 0 {
			return 0, fmt.Errorf("abi word at %d overflows uint64", offset)
		}
	}
	return binary.BigEndian.Uint64(word[abiWordSize-8:]), nil
}

// abiReadWord copies the 32-byte word at offset into out.
func abiReadWord(data []byte, offset uint64, out []byte) error {
	if offset+abiWordSize > uint64(len(data)) || offset+abiWordSize < offset {
		return fmt.Errorf("abi read at %d exceeds input of %d bytes", offset, len(data))
	}
	copy(out, data[offset:offset+abiWordSize])
	return nil
}
