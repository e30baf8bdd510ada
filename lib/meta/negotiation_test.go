// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/flate"
)

func TestDeflateRoundtrip(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("#main _ _: int-add(1 2) int-add(2 3)"),
		bytes.Repeat([]byte{0x00}, 4096),
		{0xff, 0x00, 0xab, 0xcd},
	}
	for _, input := range inputs {
		encoded := ContentEncodingDeflate.Encode(input)
		decoded, err := ContentEncodingDeflate.Decode(encoded)
		if err != nil {
			t.Fatalf("Decode(% x): %v", input, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Errorf("deflate roundtrip: got % x, want % x", decoded, input)
		}
	}
}

func TestIdentityRoundtrip(t *testing.T) {
	input := []byte("unchanged")
	for _, encoding := range []ContentEncoding{ContentEncodingNone, ContentEncodingIdentity} {
		encoded := encoding.Encode(input)
		if !bytes.Equal(encoded, input) {
			t.Errorf("%q Encode changed the bytes", encoding)
		}
		decoded, err := encoding.Decode(encoded)
		if err != nil {
			t.Fatalf("%q Decode: %v", encoding, err)
		}
		if !bytes.Equal(decoded, input) {
			t.Errorf("%q roundtrip: got % x, want % x", encoding, decoded, input)
		}
	}
}

func TestDecodeRawDeflateFallback(t *testing.T) {
	// Some encoders emit raw DEFLATE without the zlib wrapper. Decode
	// must fall back to a raw inflate before giving up.
	input := []byte("#main _ _: int-add(1 2)")

	var buffer bytes.Buffer
	writer, err := flate.NewWriter(&buffer, flate.DefaultCompression)
	if err != nil {
		t.Fatalf("flate.NewWriter: %v", err)
	}
	if _, err := writer.Write(input); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	decoded, err := ContentEncodingDeflate.Decode(buffer.Bytes())
	if err != nil {
		t.Fatalf("Decode raw stream: %v", err)
	}
	if !bytes.Equal(decoded, input) {
		t.Errorf("raw fallback: got %q, want %q", decoded, input)
	}
}

func TestDecodeGarbage(t *testing.T) {
	_, err := ContentEncodingDeflate.Decode([]byte{0x01, 0x02, 0x03, 0x04})
	if !errors.Is(err, ErrInflate) {
		t.Errorf("garbage error = %v, want ErrInflate", err)
	}
}
