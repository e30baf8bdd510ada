// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// TypedMeta is the closed union of known metadata payloads. Each
// variant wraps the unpacked payload of one document item and reports
// the magic it was tagged with. The union is sealed: only types in
// this package implement it.
type TypedMeta interface {
	Magic() Magic
	typedMeta()
}

// OpMeta is an opcode metadata blob consumed off-chain by tooling.
type OpMeta []byte

// DotrainMeta is the text of a .rain composition document.
type DotrainMeta string

// RainlangMeta is the text of a rainlang fragment.
type RainlangMeta string

// SolidityABIMeta is a Solidity contract ABI, JSON-encoded.
type SolidityABIMeta []byte

// InterpreterCallerMeta describes a caller contract for interpreter
// tooling.
type InterpreterCallerMeta []byte

// DeployerBytecodeMeta is expression deployer onchain bytecode.
type DeployerBytecodeMeta []byte

// RainlangSourceMeta is composed rainlang source as deployed.
type RainlangSourceMeta string

// AddressListMeta is a packed list of addresses.
type AddressListMeta []byte

// DotrainSourceMeta is the full text of a published .rain source.
type DotrainSourceMeta string

// Hash is the keccak256 digest of the raw source text, the identity a
// published source is looked up by.
func (m DotrainSourceMeta) Hash() Hash {
	return Keccak256([]byte(m))
}

func (OpMeta) Magic() Magic                { return MagicOpMetaV1 }
func (DotrainMeta) Magic() Magic           { return MagicDotrainV1 }
func (RainlangMeta) Magic() Magic          { return MagicRainlangV1 }
func (SolidityABIMeta) Magic() Magic       { return MagicSolidityABIV2 }
func (InterpreterCallerMeta) Magic() Magic { return MagicInterpreterCallerMetaV1 }
func (DeployerBytecodeMeta) Magic() Magic  { return MagicExpressionDeployerV2BytecodeV1 }
func (RainlangSourceMeta) Magic() Magic    { return MagicRainlangSourceV1 }
func (AddressListMeta) Magic() Magic       { return MagicAddressList }
func (DotrainSourceMeta) Magic() Magic     { return MagicDotrainSourceV1 }
func (AuthoringMeta) Magic() Magic         { return MagicAuthoringMetaV1 }
func (AuthoringMetaV2) Magic() Magic       { return MagicAuthoringMetaV2 }
func (*DotrainGuiStateV1) Magic() Magic    { return MagicDotrainGuiStateV1 }

func (OpMeta) typedMeta()                {}
func (DotrainMeta) typedMeta()           {}
func (RainlangMeta) typedMeta()          {}
func (SolidityABIMeta) typedMeta()       {}
func (InterpreterCallerMeta) typedMeta() {}
func (DeployerBytecodeMeta) typedMeta()  {}
func (RainlangSourceMeta) typedMeta()    {}
func (AddressListMeta) typedMeta()       {}
func (DotrainSourceMeta) typedMeta()     {}
func (AuthoringMeta) typedMeta()         {}
func (AuthoringMetaV2) typedMeta()       {}
func (*DotrainGuiStateV1) typedMeta()    {}

// FromDocumentItem unpacks an item's payload and wraps it in the
// variant matching its magic. Items tagged MagicRainMetaDocumentV1 or
// an unregistered magic fail with ErrUnsupportedMeta.
func FromDocumentItem(item DocumentItem) (TypedMeta, error) {
	payload, err := item.Unpack()
	if err != nil {
		return nil, err
	}
	switch item.Magic {
	case MagicOpMetaV1:
		return OpMeta(payload), nil
	case MagicDotrainV1:
		text, err := item.UnpackText()
		if err != nil {
			return nil, err
		}
		return DotrainMeta(text), nil
	case MagicRainlangV1:
		text, err := item.UnpackText()
		if err != nil {
			return nil, err
		}
		return RainlangMeta(text), nil
	case MagicSolidityABIV2:
		return SolidityABIMeta(payload), nil
	case MagicInterpreterCallerMetaV1:
		return InterpreterCallerMeta(payload), nil
	case MagicExpressionDeployerV2BytecodeV1:
		return DeployerBytecodeMeta(payload), nil
	case MagicRainlangSourceV1:
		text, err := item.UnpackText()
		if err != nil {
			return nil, err
		}
		return RainlangSourceMeta(text), nil
	case MagicAddressList:
		return AddressListMeta(payload), nil
	case MagicDotrainSourceV1:
		text, err := item.UnpackText()
		if err != nil {
			return nil, err
		}
		return DotrainSourceMeta(text), nil
	case MagicAuthoringMetaV1:
		words, err := ParseAuthoringMetaABI(payload)
		if err != nil {
			return nil, err
		}
		return words, nil
	case MagicAuthoringMetaV2:
		var words AuthoringMetaV2
		if err := json.Unmarshal(payload, &words); err != nil {
			return nil, fmt.Errorf("decoding authoring meta v2: %w", err)
		}
		return words, nil
	case MagicDotrainGuiStateV1:
		return DotrainGuiStateFromItem(item)
	default:
		return nil, fmt.Errorf("%w: magic %s", ErrUnsupportedMeta, item.Magic)
	}
}

// ParseHexMetas decodes a hex-encoded document sequence into typed
// metas. The hex must decode to bytes that begin with the
// MagicRainMetaDocumentV1 prefix; anything else is corrupt. The first
// item that fails typed conversion fails the whole parse.
func ParseHexMetas(text string) ([]TypedMeta, error) {
	data, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeHexString, err)
	}
	prefix := MagicRainMetaDocumentV1.PrefixBytes()
	if len(data) < len(prefix) || string(data[:len(prefix)]) != string(prefix[:]) {
		return nil, fmt.Errorf("%w: missing document prefix", ErrCorruptMeta)
	}
	items, err := DecodeSequence(data)
	if err != nil {
		return nil, err
	}
	metas := make([]TypedMeta, 0, len(items))
	for _, item := range items {
		typed, err := FromDocumentItem(item)
		if err != nil {
			return nil, err
		}
		metas = append(metas, typed)
	}
	return metas, nil
}
