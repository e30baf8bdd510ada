// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/rainlanguage/rain.metadata/lib/codec"
)

// Address is a 20-byte contract address. On the CBOR wire it is a
// byte string; in JSON and logs it is 0x-prefixed hex.
type Address [20]byte

// ParseAddress parses a 40-character hex string, with or without a 0x
// prefix.
func ParseAddress(text string) (Address, error) {
	var address Address
	decoded, err := hex.DecodeString(strings.TrimPrefix(text, "0x"))
	if err != nil {
		return address, fmt.Errorf("%w: %v", ErrDecodeHexString, err)
	}
	if len(decoded) != 20 {
		return address, fmt.Errorf("address is %d bytes, want 20", len(decoded))
	}
	copy(address[:], decoded)
	return address, nil
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalCBOR encodes the address as a 20-byte CBOR byte string.
func (a Address) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(a[:])
}

// UnmarshalCBOR decodes a 20-byte CBOR byte string.
func (a *Address) UnmarshalCBOR(data []byte) error {
	var raw []byte
	if err := codec.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 20 {
		return fmt.Errorf("address is %d bytes, want 20", len(raw))
	}
	copy(a[:], raw)
	return nil
}

// ValueConfig is one user-configured field value in a dotrain GUI
// state. Name is optional and serialized as null when absent.
type ValueConfig struct {
	ID    string  `cbor:"id"`
	Name  *string `cbor:"name"`
	Value string  `cbor:"value"`
}

// TokenConfig selects a token for an order.
type TokenConfig struct {
	Network string  `cbor:"network"`
	Address Address `cbor:"address"`
}

// DotrainGuiStateV1 captures a user's deployment configuration for an
// order built from a dotrain template: which template (by its hash in
// the metaboard), the field values and deposits entered, the tokens
// selected, and the vault wiring. The payload of a
// MagicDotrainGuiStateV1 item is this struct CBOR-encoded.
type DotrainGuiStateV1 struct {
	DotrainHash        Hash                   `cbor:"dotrain_hash"`
	FieldValues        map[string]ValueConfig `cbor:"field_values"`
	Deposits           map[string]ValueConfig `cbor:"deposits"`
	SelectTokens       map[string]TokenConfig `cbor:"select_tokens"`
	VaultIDs           map[string]*string     `cbor:"vault_ids"`
	SelectedDeployment string                 `cbor:"selected_deployment"`
}

// TokenAddresses returns the addresses of all selected tokens.
func (s *DotrainGuiStateV1) TokenAddresses() []Address {
	addresses := make([]Address, 0, len(s.SelectTokens))
	for _, token := range s.SelectTokens {
		addresses = append(addresses, token.Address)
	}
	return addresses
}

// VaultIDList returns all non-empty vault IDs.
func (s *DotrainGuiStateV1) VaultIDList() []string {
	var ids []string
	for _, id := range s.VaultIDs {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}

// ToDocumentItem packs the state into a MagicDotrainGuiStateV1 item
// with a CBOR payload.
func (s *DotrainGuiStateV1) ToDocumentItem() (DocumentItem, error) {
	payload, err := codec.Marshal(s)
	if err != nil {
		return DocumentItem{}, fmt.Errorf("encoding gui state: %w", err)
	}
	return DocumentItem{
		Payload:     payload,
		Magic:       MagicDotrainGuiStateV1,
		ContentType: ContentTypeOctetStream,
	}, nil
}

// DotrainGuiStateFromItem unpacks a MagicDotrainGuiStateV1 item.
// Items tagged with any other magic fail with InvalidMagicError.
func DotrainGuiStateFromItem(item DocumentItem) (*DotrainGuiStateV1, error) {
	if item.Magic != MagicDotrainGuiStateV1 {
		return nil, &InvalidMagicError{Expected: MagicDotrainGuiStateV1, Actual: item.Magic}
	}
	payload, err := item.Unpack()
	if err != nil {
		return nil, err
	}
	var state DotrainGuiStateV1
	if err := codec.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("decoding gui state: %w", err)
	}
	return &state, nil
}

// ExtractDotrainGuiState searches decoded meta bytes for a gui state
// document, recursing into nested document sequences. Returns nil
// without error when the bytes hold no gui state.
func ExtractDotrainGuiState(metaBytes []byte) (*DotrainGuiStateV1, error) {
	items, err := DecodeSequence(metaBytes)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		if item.Magic == MagicRainMetaDocumentV1 {
			state, err := ExtractDotrainGuiState(item.Payload)
			if err != nil {
				return nil, err
			}
			if state != nil {
				return state, nil
			}
			continue
		}
		if item.Magic == MagicDotrainGuiStateV1 {
			return DotrainGuiStateFromItem(item)
		}
	}
	return nil, nil
}
