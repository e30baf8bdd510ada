// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

// Package metaboard builds deployment payloads for publishing Rain
// metadata on chain via the MetaBoard contract's emitMeta function.
package metaboard

import (
	"fmt"
	"strings"

	"github.com/rainlanguage/rain.metadata/lib/meta"
)

// DeploymentData is everything deployment tooling needs to publish a
// document: the subject hash, the encoded meta bytes, and the complete
// emitMeta calldata. All three are 0x-prefixed lowercase hex.
type DeploymentData struct {
	Subject   string `json:"subject" yaml:"subject"`
	MetaBytes string `json:"metaBytes" yaml:"metaBytes"`
	Calldata  string `json:"calldata" yaml:"calldata"`
}

// GenerateDotrainDeployment builds deployment data for dotrain source
// text. The subject is the item hash of the resulting DotrainSourceV1
// document item; the meta bytes are the prefixed one-item document
// sequence carrying it.
func GenerateDotrainDeployment(content string) (*DeploymentData, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("metaboard: dotrain content is empty")
	}
	item := meta.DocumentItem{
		Payload:     []byte(content),
		Magic:       meta.MagicDotrainSourceV1,
		ContentType: meta.ContentTypeOctetStream,
	}
	return GenerateDeployment(item)
}

// GenerateDeployment builds deployment data for any document item. The
// subject is the item hash, while the published bytes and the calldata
// carry the full RainMetaDocumentV1 prefix so the emitted meta decodes
// as a standalone document.
func GenerateDeployment(item meta.DocumentItem) (*DeploymentData, error) {
	subject, err := item.ItemHash()
	if err != nil {
		return nil, fmt.Errorf("metaboard: hashing item: %w", err)
	}
	metaBytes, err := meta.EncodeSequence([]meta.DocumentItem{item}, meta.MagicRainMetaDocumentV1)
	if err != nil {
		return nil, fmt.Errorf("metaboard: encoding document: %w", err)
	}
	calldata := EmitMetaCalldata(subject, metaBytes)
	return &DeploymentData{
		Subject:   meta.FormatHash(subject),
		MetaBytes: meta.FormatHexBytes(metaBytes),
		Calldata:  meta.FormatHexBytes(calldata),
	}, nil
}
