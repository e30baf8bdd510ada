// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/rainlanguage/rain.metadata/lib/codec"
)

// DocumentItem is one meta map: a payload paired with its magic and
// content-negotiation fields. Items are immutable once built — an
// "update" is always a new item. Equality is structural over all five
// fields.
type DocumentItem struct {
	Payload         []byte
	Magic           Magic
	ContentType     ContentType
	ContentEncoding ContentEncoding
	ContentLanguage ContentLanguage
}

// wireItem is the CBOR shape of a DocumentItem. Integer map keys are
// fixed protocol constants; optional fields are omitted (not null)
// when unset, which is what omitempty on the zero string produces.
// Payload and Magic are pointers so decoding can distinguish a missing
// required key from a present zero value.
type wireItem struct {
	Payload         *[]byte `cbor:"0,keyasint"`
	Magic           *uint64 `cbor:"1,keyasint"`
	ContentType     string  `cbor:"2,keyasint,omitempty"`
	ContentEncoding string  `cbor:"3,keyasint,omitempty"`
	ContentLanguage string  `cbor:"4,keyasint,omitempty"`
}

// FieldCount returns the number of entries the encoded map carries:
// payload and magic always, plus one per set optional field.
func (item *DocumentItem) FieldCount() int {
	count := 2
	if item.ContentType != ContentTypeNone {
		count++
	}
	if item.ContentEncoding != ContentEncodingNone {
		count++
	}
	if item.ContentLanguage != ContentLanguageNone {
		count++
	}
	return count
}

// Encode returns the canonical CBOR encoding of the item: a definite
// map with ascending integer keys 0..4. A structurally equal item
// always encodes to identical bytes; this is what makes the item hash
// a usable content address.
func (item *DocumentItem) Encode() ([]byte, error) {
	if !validContentType(item.ContentType) {
		return nil, fmt.Errorf("unrecognized content type %q", item.ContentType)
	}
	if !validContentEncoding(item.ContentEncoding) {
		return nil, fmt.Errorf("unrecognized content encoding %q", item.ContentEncoding)
	}
	if !validContentLanguage(item.ContentLanguage) {
		return nil, fmt.Errorf("unrecognized content language %q", item.ContentLanguage)
	}

	// nil and empty payloads are the same wire value: an empty byte
	// string, never CBOR null.
	payload := item.Payload
	if payload == nil {
		payload = []byte{}
	}
	magic := uint64(item.Magic)

	encoded, err := codec.Marshal(wireItem{
		Payload:         &payload,
		Magic:           &magic,
		ContentType:     string(item.ContentType),
		ContentEncoding: string(item.ContentEncoding),
		ContentLanguage: string(item.ContentLanguage),
	})
	if err != nil {
		return nil, fmt.Errorf("encoding meta map: %w", err)
	}
	return encoded, nil
}

// EncodeSequence returns the magic's 8-byte big-endian prefix followed
// by the concatenation, in input order, of each item's encoding. No
// separators, no length prefixes — items self-delimit via CBOR.
func EncodeSequence(items []DocumentItem, magic Magic) ([]byte, error) {
	prefix := magic.PrefixBytes()
	var buffer bytes.Buffer
	buffer.Write(prefix[:])
	for i := range items {
		encoded, err := items[i].Encode()
		if err != nil {
			return nil, fmt.Errorf("encoding sequence item %d: %w", i, err)
		}
		buffer.Write(encoded)
	}
	return buffer.Bytes(), nil
}

// DecodeSequence decodes data into its document items. If the input
// starts with the RainMetaDocumentV1 prefix the prefix is stripped;
// otherwise the whole input is treated as a raw concatenation. Items
// are decoded one self-delimiting CBOR value at a time while tracking
// the consumed offset after each.
//
// Decoding fails with ErrCorruptMeta if zero items decode, if the
// tracked offsets are inconsistent with the item count, or if any byte
// remains unconsumed after the last item — trailing garbage is
// corruption, never silently ignored. An unrecognized integer key in
// any map is a hard error, not a skip.
func DecodeSequence(data []byte) ([]DocumentItem, error) {
	body := data
	documentPrefix := MagicRainMetaDocumentV1.PrefixBytes()
	if bytes.HasPrefix(data, documentPrefix[:]) {
		body = data[len(documentPrefix):]
	}
	expected := len(body)

	var items []DocumentItem
	var offsets []int
	rest := body
	for len(rest) > 0 {
		var wire wireItem
		remaining, err := codec.UnmarshalFirst(rest, &wire)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrCorruptMeta, len(items), err)
		}
		item, err := wire.toDocumentItem()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", len(items), err)
		}
		items = append(items, item)
		offsets = append(offsets, expected-len(remaining))
		rest = remaining
	}

	if len(items) == 0 || len(offsets) == 0 ||
		len(offsets) != len(items) || offsets[len(offsets)-1] != expected {
		return nil, ErrCorruptMeta
	}
	return items, nil
}

// toDocumentItem validates the decoded wire shape and converts it.
func (wire *wireItem) toDocumentItem() (DocumentItem, error) {
	if wire.Payload == nil {
		return DocumentItem{}, fmt.Errorf("%w: missing payload", ErrCorruptMeta)
	}
	if wire.Magic == nil {
		return DocumentItem{}, fmt.Errorf("%w: missing magic number", ErrCorruptMeta)
	}
	magic, err := MagicFromUint64(*wire.Magic)
	if err != nil {
		return DocumentItem{}, err
	}

	contentType := ContentType(wire.ContentType)
	if !validContentType(contentType) {
		return DocumentItem{}, fmt.Errorf("unrecognized content type %q", wire.ContentType)
	}
	contentEncoding := ContentEncoding(wire.ContentEncoding)
	if !validContentEncoding(contentEncoding) {
		return DocumentItem{}, fmt.Errorf("unrecognized content encoding %q", wire.ContentEncoding)
	}
	contentLanguage := ContentLanguage(wire.ContentLanguage)
	if !validContentLanguage(contentLanguage) {
		return DocumentItem{}, fmt.Errorf("unrecognized content language %q", wire.ContentLanguage)
	}

	return DocumentItem{
		Payload:         *wire.Payload,
		Magic:           magic,
		ContentType:     contentType,
		ContentEncoding: contentEncoding,
		ContentLanguage: contentLanguage,
	}, nil
}

// ItemHash returns keccak256 of the item's own canonical encoding.
// This is the item's content address: the key it is cached under and
// the hash other documents reference it by.
func (item *DocumentItem) ItemHash() (Hash, error) {
	encoded, err := item.Encode()
	if err != nil {
		return Hash{}, err
	}
	return Keccak256(encoded), nil
}

// DocumentHash returns keccak256 of the item wrapped as a one-element
// RainMetaDocumentV1 sequence. This is the on-chain subject of the
// document. It is a different hash domain from ItemHash; the two are
// never interchangeable.
func (item *DocumentItem) DocumentHash() (Hash, error) {
	encoded, err := EncodeSequence([]DocumentItem{*item}, MagicRainMetaDocumentV1)
	if err != nil {
		return Hash{}, err
	}
	return Keccak256(encoded), nil
}

// Unpack applies the item's content encoding in reverse, returning the
// payload's original bytes.
func (item *DocumentItem) Unpack() ([]byte, error) {
	return item.ContentEncoding.Decode(item.Payload)
}

// unpackable reports whether the magic is in the fixed set of payload
// types the typed registry can convert. The sequence wrapper magic is
// the only registered value outside the set.
func unpackable(magic Magic) bool {
	_, registered := magicNames[magic]
	return registered && magic != MagicRainMetaDocumentV1
}

// UnpackText unpacks the payload and interprets it as UTF-8 text.
// Items whose magic lies outside the typed whitelist fail with
// ErrUnsupportedMeta even when the payload is valid text.
func (item *DocumentItem) UnpackText() (string, error) {
	if !unpackable(item.Magic) {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedMeta, item.Magic)
	}
	unpacked, err := item.Unpack()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(unpacked) {
		return "", fmt.Errorf("payload is not valid UTF-8")
	}
	return string(unpacked), nil
}

// Equal reports structural equality over all five fields.
func (item *DocumentItem) Equal(other *DocumentItem) bool {
	return item.Magic == other.Magic &&
		item.ContentType == other.ContentType &&
		item.ContentEncoding == other.ContentEncoding &&
		item.ContentLanguage == other.ContentLanguage &&
		bytes.Equal(item.Payload, other.Payload)
}
