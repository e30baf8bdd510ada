// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"encoding/binary"
	"fmt"
)

// Magic is a 64-bit type tag identifying a metadata payload. Every
// known magic starts with the high byte 0xff, a soft "this is Rain
// metadata" sentinel. The value appears twice on the wire: as the
// integer under key 1 of an encoded meta map, and big-endian as the
// literal 8-byte prefix of an encoded sequence.
//
// These values are protocol constants, unique and stable across
// versions — changing one breaks every existing content hash.
type Magic uint64

const (
	// MagicRainMetaDocumentV1 prefixes every encoded meta sequence.
	MagicRainMetaDocumentV1 Magic = 0xff0a89c674ee7874

	// MagicOpMetaV1 tags interpreter op descriptions.
	MagicOpMetaV1 Magic = 0xffe5282f43e495b4

	// MagicDotrainV1 tags dotrain text.
	MagicDotrainV1 Magic = 0xffdac2f2f37be894

	// MagicRainlangV1 tags rainlang text.
	MagicRainlangV1 Magic = 0xff1c198cec3b48a7

	// MagicSolidityABIV2 tags a Solidity contract ABI document.
	MagicSolidityABIV2 Magic = 0xffe5ffb4a3ff2cde

	// MagicAuthoringMetaV1 tags ABI-encoded authoring words.
	MagicAuthoringMetaV1 Magic = 0xffe9e3a02ca8e235

	// MagicAuthoringMetaV2 tags the v2 authoring word listing.
	MagicAuthoringMetaV2 Magic = 0xff52fe42f1a05093

	// MagicInterpreterCallerMetaV1 tags interpreter caller metadata.
	MagicInterpreterCallerMetaV1 Magic = 0xffc21bbf86cc199b

	// MagicExpressionDeployerV2BytecodeV1 tags deployed expression
	// deployer bytecode.
	MagicExpressionDeployerV2BytecodeV1 Magic = 0xffdb988a8cd04d32

	// MagicRainlangSourceV1 tags rainlang source code.
	MagicRainlangSourceV1 Magic = 0xff13109e41336ff2

	// MagicAddressList tags a raw list of contract addresses.
	MagicAddressList Magic = 0xffb2637608c09e38

	// MagicDotrainSourceV1 tags dotrain source code.
	MagicDotrainSourceV1 Magic = 0xffa15ef0fc437099

	// MagicDotrainGuiStateV1 tags a structured dotrain deployment
	// configuration. MagicDotrainInstanceV1 is the older name for the
	// same wire value.
	MagicDotrainGuiStateV1 Magic = 0xffda7b2fb167c286
	MagicDotrainInstanceV1 Magic = MagicDotrainGuiStateV1
)

// knownMagics lists every registered magic in declaration order. The
// instance-v1 alias shares the gui-state value and is not repeated.
var knownMagics = []Magic{
	MagicRainMetaDocumentV1,
	MagicOpMetaV1,
	MagicDotrainV1,
	MagicRainlangV1,
	MagicSolidityABIV2,
	MagicAuthoringMetaV1,
	MagicAuthoringMetaV2,
	MagicInterpreterCallerMetaV1,
	MagicExpressionDeployerV2BytecodeV1,
	MagicRainlangSourceV1,
	MagicAddressList,
	MagicDotrainSourceV1,
	MagicDotrainGuiStateV1,
}

// magicNames holds the canonical kebab-case name of each magic, used
// in CLI output and parsed back by ParseMagic.
var magicNames = map[Magic]string{
	MagicRainMetaDocumentV1:             "rain-meta-document-v1",
	MagicOpMetaV1:                       "op-meta-v1",
	MagicDotrainV1:                      "dotrain-v1",
	MagicRainlangV1:                     "rainlang-v1",
	MagicSolidityABIV2:                  "solidity-abi-v2",
	MagicAuthoringMetaV1:                "authoring-meta-v1",
	MagicAuthoringMetaV2:                "authoring-meta-v2",
	MagicInterpreterCallerMetaV1:        "interpreter-caller-meta-v1",
	MagicExpressionDeployerV2BytecodeV1: "expression-deployer-v2-bytecode-v1",
	MagicRainlangSourceV1:               "rainlang-source-v1",
	MagicAddressList:                    "address-list",
	MagicDotrainSourceV1:                "dotrain-source-v1",
	MagicDotrainGuiStateV1:              "dotrain-gui-state-v1",
}

// KnownMagics returns every registered magic in a stable order.
func KnownMagics() []Magic {
	result := make([]Magic, len(knownMagics))
	copy(result, knownMagics)
	return result
}

// MagicFromUint64 converts a raw 64-bit value into a registered Magic.
// The registry is closed: every unlisted value fails with
// ErrUnknownMagic, there is no catch-all variant.
func MagicFromUint64(value uint64) (Magic, error) {
	magic := Magic(value)
	if _, ok := magicNames[magic]; !ok {
		return 0, fmt.Errorf("%w: 0x%016x", ErrUnknownMagic, value)
	}
	return magic, nil
}

// PrefixBytes returns the big-endian 8-byte encoding of the magic,
// used both as the integer under map key 1 and as the literal byte
// prefix of an encoded sequence.
func (m Magic) PrefixBytes() [8]byte {
	var prefix [8]byte
	binary.BigEndian.PutUint64(prefix[:], uint64(m))
	return prefix
}

// String returns the canonical kebab-case name, or the hex value for
// an unregistered magic.
func (m Magic) String() string {
	if name, ok := magicNames[m]; ok {
		return name
	}
	return fmt.Sprintf("0x%016x", uint64(m))
}

// ParseMagic resolves a kebab-case magic name back to its value.
func ParseMagic(name string) (Magic, error) {
	for magic, magicName := range magicNames {
		if magicName == name {
			return magic, nil
		}
	}
	if name == "dotrain-instance-v1" {
		return MagicDotrainInstanceV1, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMagic, name)
}
