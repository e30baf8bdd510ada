// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package metaboard

import (
	"github.com/rainlanguage/rain.metadata/lib/meta"
)

// emitMetaSelector is the 4-byte selector for
// emitMeta(uint256 subject, bytes meta), computed at init from the
// signature rather than hardcoded.
var emitMetaSelector = func() [4]byte {
	var selector [4]byte
	digest := meta.Keccak256([]byte("emitMeta(uint256,bytes)"))
	copy(selector[:], digest[:4])
	return selector
}()

// EmitMetaCalldata ABI-encodes a MetaBoard.emitMeta call. The layout
// is the standard two-argument head/tail form: selector, the subject
// word, the offset word for the dynamic bytes argument (always 0x40),
// then the bytes length and 32-byte-padded content.
func EmitMetaCalldata(subject meta.Hash, metaBytes []byte) []byte {
	padded := len(metaBytes)
	if rem := padded % 32; rem != 0 {
		padded += 32 - rem
	}

	calldata := make([]byte, 0, 4+32*3+padded)
	calldata = append(calldata, emitMetaSelector[:]...)
	calldata = append(calldata, subject[:]...)

	var word [32]byte
	word[31] = 0x40
	calldata = append(calldata, word[:]...)

	length := [32]byte{}
	putUint(length[:], uint64(len(metaBytes)))
	calldata = append(calldata, length[:]...)

	calldata = append(calldata, metaBytes...)
	calldata = append(calldata, make([]byte, padded-len(metaBytes))...)
	return calldata
}

// putUint writes v big-endian into the low bytes of a 32-byte word.
func putUint(word []byte, v uint64) {
	for i := 0; i < 8; i++ {
		word[len(word)-1-i] = byte(v >> (8 * i))
	}
}
