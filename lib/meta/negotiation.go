// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// ContentType describes how a payload's bytes should be interpreted.
// The zero value means the field is omitted entirely from the encoded
// map — there is no "present but null" state.
type ContentType string

const (
	ContentTypeNone        ContentType = ""
	ContentTypeJSON        ContentType = "application/json"
	ContentTypeCBOR        ContentType = "application/cbor"
	ContentTypeOctetStream ContentType = "application/octet-stream"
)

// ContentEncoding describes the transform applied to a payload before
// encoding. The zero value means the field is omitted.
type ContentEncoding string

const (
	ContentEncodingNone     ContentEncoding = ""
	ContentEncodingIdentity ContentEncoding = "identity"
	ContentEncodingDeflate  ContentEncoding = "deflate"
)

// ContentLanguage describes the natural language of a text payload.
// The zero value means the field is omitted.
type ContentLanguage string

const (
	ContentLanguageNone ContentLanguage = ""
	ContentLanguageEn   ContentLanguage = "en"
)

func validContentType(t ContentType) bool {
	switch t {
	case ContentTypeNone, ContentTypeJSON, ContentTypeCBOR, ContentTypeOctetStream:
		return true
	}
	return false
}

func validContentEncoding(e ContentEncoding) bool {
	switch e {
	case ContentEncodingNone, ContentEncodingIdentity, ContentEncodingDeflate:
		return true
	}
	return false
}

func validContentLanguage(l ContentLanguage) bool {
	switch l {
	case ContentLanguageNone, ContentLanguageEn:
		return true
	}
	return false
}

// Encode applies the encoding to data. Identity and the unset
// encoding return the input unchanged; deflate compresses with a zlib
// wrapper. Writes to an in-memory buffer cannot fail, so Encode is
// infallible like its inverse is not.
func (e ContentEncoding) Encode(data []byte) []byte {
	switch e {
	case ContentEncodingDeflate:
		var buffer bytes.Buffer
		writer := zlib.NewWriter(&buffer)
		writer.Write(data)
		writer.Close()
		return buffer.Bytes()
	default:
		return data
	}
}

// Decode reverses Encode. For deflate it first attempts a zlib-wrapped
// inflate and, on failure, retries as a raw DEFLATE stream before
// giving up — a deliberate tolerance for encoders that omit the zlib
// header. Both attempts failing surfaces ErrInflate carrying the zlib
// error.
func (e ContentEncoding) Decode(data []byte) ([]byte, error) {
	switch e {
	case ContentEncodingDeflate:
		inflated, zlibErr := inflateZlib(data)
		if zlibErr == nil {
			return inflated, nil
		}
		inflated, rawErr := inflateRaw(data)
		if rawErr == nil {
			return inflated, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInflate, zlibErr)
	default:
		return data, nil
	}
}

func inflateZlib(data []byte) ([]byte, error) {
	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func inflateRaw(data []byte) ([]byte, error) {
	reader := flate.NewReader(bytes.NewReader(data))
	defer reader.Close()
	return io.ReadAll(reader)
}
