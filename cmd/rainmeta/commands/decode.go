// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/rainlanguage/rain.metadata/cmd/rainmeta/cli"
	"github.com/rainlanguage/rain.metadata/lib/codec"
	"github.com/rainlanguage/rain.metadata/lib/meta"
)

// decodedItem is the JSON projection of one document item.
type decodedItem struct {
	Magic           string `json:"magic"`
	ContentType     string `json:"contentType,omitempty"`
	ContentEncoding string `json:"contentEncoding,omitempty"`
	ContentLanguage string `json:"contentLanguage,omitempty"`
	ItemHash        string `json:"itemHash"`
	// Text holds the unpacked payload when it is valid UTF-8 text;
	// Payload holds it as hex otherwise.
	Text    string `json:"text,omitempty"`
	Payload string `json:"payload,omitempty"`
}

func decodeCommand() *cli.Command {
	var (
		compact  bool
		diagnose bool
	)

	return &cli.Command{
		Name:    "decode",
		Summary: "Decode a hex document sequence to JSON",
		Description: `Decode a hex-encoded Rain metadata document and print its items as
JSON. Each item reports its magic, negotiation fields, item hash, and
payload (as text when the payload is valid UTF-8, hex otherwise).

With -d, prints the CBOR diagnostic notation of the raw bytes instead,
which preserves CBOR-level structure.`,
		Usage: "rainmeta decode [-c] [-d] <hex>",
		Examples: []cli.Example{
			{
				Description: "Inspect on-chain meta bytes",
				Command:     "rainmeta decode 0xff0a89c674ee7874a3...",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("decode", pflag.ContinueOnError)
			flags.BoolVarP(&compact, "compact", "c", false, "compact single-line JSON output")
			flags.BoolVarP(&diagnose, "diag", "d", false, "print CBOR diagnostic notation instead of JSON")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("decode takes exactly one hex argument")
			}
			data, err := meta.ParseHexBytes(args[0])
			if err != nil {
				return err
			}

			if diagnose {
				prefix := meta.MagicRainMetaDocumentV1.PrefixBytes()
				if len(data) >= len(prefix) && string(data[:len(prefix)]) == string(prefix[:]) {
					data = data[len(prefix):]
				}
				for len(data) > 0 {
					notation, rest, err := codec.DiagnoseFirst(data)
					if err != nil {
						return fmt.Errorf("diagnose CBOR: %w", err)
					}
					fmt.Println(notation)
					data = rest
				}
				return nil
			}

			items, err := meta.DecodeSequence(data)
			if err != nil {
				return err
			}
			decoded := make([]decodedItem, 0, len(items))
			for i := range items {
				projected, err := projectItem(&items[i])
				if err != nil {
					return fmt.Errorf("item %d: %w", i, err)
				}
				decoded = append(decoded, projected)
			}

			var output []byte
			if compact {
				output, err = json.Marshal(decoded)
			} else {
				output, err = json.MarshalIndent(decoded, "", "  ")
			}
			if err != nil {
				return fmt.Errorf("encode JSON: %w", err)
			}
			fmt.Println(string(output))
			return nil
		},
	}
}

func projectItem(item *meta.DocumentItem) (decodedItem, error) {
	hash, err := item.ItemHash()
	if err != nil {
		return decodedItem{}, err
	}
	projected := decodedItem{
		Magic:           item.Magic.String(),
		ContentType:     string(item.ContentType),
		ContentEncoding: string(item.ContentEncoding),
		ContentLanguage: string(item.ContentLanguage),
		ItemHash:        meta.FormatHash(hash),
	}
	payload, err := item.Unpack()
	if err != nil {
		return decodedItem{}, err
	}
	if text, err := item.UnpackText(); err == nil && isPrintable(text) {
		projected.Text = text
	} else {
		projected.Payload = meta.FormatHexBytes(payload)
	}
	return projected, nil
}

// isPrintable reports whether text is reasonable to print inline:
// no control characters other than whitespace.
func isPrintable(text string) bool {
	return !strings.ContainsFunc(text, func(r rune) bool {
		return r < 0x20 && r != '\n' && r != '\r' && r != '\t'
	})
}
