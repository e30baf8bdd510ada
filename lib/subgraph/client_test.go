// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rainlanguage/rain.metadata/lib/meta"
)

// metaServer serves the meta query with fixed raw bytes.
func metaServer(t *testing.T, raw []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if request.Variables["hash"] == nil {
			t.Error("missing hash variable")
		}
		fmt.Fprintf(w, `{"data":{"meta":{"rawBytes":"%s"}}}`, meta.FormatHexBytes(raw))
	}))
}

// failingServer returns a GraphQL error envelope.
func failingServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"errors":[{"message":"store is unavailable"}]}`)
	}))
}

// notFoundServer returns a well-formed response with no match.
func notFoundServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":{"meta":null}}`)
	}))
}

func TestSearchMetaRaceFirstSuccess(t *testing.T) {
	raw := []byte("resolved meta bytes")

	good := metaServer(t, raw)
	defer good.Close()
	bad := failingServer()
	defer bad.Close()
	missing := notFoundServer()
	defer missing.Close()

	client := NewClient(ClientConfig{})
	endpoints := []string{bad.URL, missing.URL, good.URL}

	response, err := client.SearchMeta(context.Background(), meta.Keccak256(raw), endpoints)
	if err != nil {
		t.Fatalf("SearchMeta: %v", err)
	}
	if !bytes.Equal(response.Bytes, raw) {
		t.Errorf("resolved % x, want % x", response.Bytes, raw)
	}
}

func TestSearchMetaTotalFailure(t *testing.T) {
	bad := failingServer()
	defer bad.Close()
	missing := notFoundServer()
	defer missing.Close()

	client := NewClient(ClientConfig{})
	_, err := client.SearchMeta(context.Background(), meta.Keccak256([]byte("x")),
		[]string{bad.URL, missing.URL})
	if err == nil {
		t.Error("SearchMeta succeeded with no good endpoint")
	}
}

func TestSearchMetaNoEndpoints(t *testing.T) {
	client := NewClient(ClientConfig{})
	_, err := client.SearchMeta(context.Background(), meta.Keccak256([]byte("x")), nil)
	if err == nil {
		t.Error("SearchMeta succeeded with zero endpoints")
	}
}

func TestSearchDeployer(t *testing.T) {
	metaBytes := deployerMetaBytes(t)
	metaHash := meta.Keccak256(metaBytes)
	bytecodeMetaHash := meta.Keccak256([]byte("bytecode meta"))
	txHash := meta.Keccak256([]byte("tx"))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"data": map[string]any{
				"expressionDeployers": []map[string]any{{
					"constructorMetaHash": meta.FormatHash(metaHash),
					"constructorMeta":     meta.FormatHexBytes(metaBytes),
					"deployedBytecode":    "0xb0",
					"parser":              map[string]any{"parser": map[string]any{"deployedBytecode": "0xb1"}},
					"store":               map[string]any{"deployedBytecode": "0xb2"},
					"interpreter":         map[string]any{"interpreter": map[string]any{"deployedBytecode": "0xb3"}},
					"meta":                map[string]any{"id": meta.FormatHash(bytecodeMetaHash)},
					"deployTransaction":   map[string]any{"id": meta.FormatHash(txHash)},
				}},
			},
		}
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{})
	resolved, err := client.SearchDeployer(context.Background(), bytecodeMetaHash, []string{server.URL})
	if err != nil {
		t.Fatalf("SearchDeployer: %v", err)
	}
	if resolved.MetaHash != metaHash {
		t.Errorf("meta hash = %v", resolved.MetaHash)
	}
	if resolved.BytecodeMetaHash != bytecodeMetaHash || resolved.TxHash != txHash {
		t.Error("hash fields mismatch")
	}
	if !bytes.Equal(resolved.Bytecode, []byte{0xb0}) || !bytes.Equal(resolved.Interpreter, []byte{0xb3}) {
		t.Error("artifact fields mismatch")
	}

	// Authoring words derive from the meta bytes.
	words := resolved.AuthoringMeta()
	if words == nil {
		t.Fatal("authoring meta not derived")
	}
	if len(*words) != 1 || (*words)[0].Word != "int-add" {
		t.Errorf("authoring words = %+v", *words)
	}
}

// deployerMetaBytes builds a deployer meta document containing one
// authoring meta item.
func deployerMetaBytes(t *testing.T) []byte {
	t.Helper()
	words := meta.AuthoringMeta{{Word: "int-add", Description: "Adds integers.", OperandParserOffset: 0}}
	payload, err := words.ABIEncode()
	if err != nil {
		t.Fatal(err)
	}
	item := meta.DocumentItem{
		Payload:     payload,
		Magic:       meta.MagicAuthoringMetaV1,
		ContentType: meta.ContentTypeCBOR,
	}
	data, err := meta.EncodeSequence([]meta.DocumentItem{item}, meta.MagicRainMetaDocumentV1)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func TestDeployerResponseAuthoringMetaAbsent(t *testing.T) {
	// A deployer whose meta carries no authoring words derives nil,
	// not an error.
	item := meta.DocumentItem{
		Payload:     []byte{0x01},
		Magic:       meta.MagicOpMetaV1,
		ContentType: meta.ContentTypeOctetStream,
	}
	metaBytes, err := meta.EncodeSequence([]meta.DocumentItem{item}, meta.MagicRainMetaDocumentV1)
	if err != nil {
		t.Fatal(err)
	}
	response := &DeployerResponse{MetaBytes: metaBytes}
	if response.AuthoringMeta() != nil {
		t.Error("derived authoring meta from a document without one")
	}

	// Corrupt meta bytes degrade to nil too.
	response = &DeployerResponse{MetaBytes: []byte{0x01, 0x02}}
	if response.AuthoringMeta() != nil {
		t.Error("derived authoring meta from corrupt bytes")
	}
}

func TestBootstrapEndpoints(t *testing.T) {
	endpoints := BootstrapEndpoints()
	if len(endpoints) == 0 {
		t.Fatal("no bootstrap endpoints")
	}
	// Returned slice is a fresh copy.
	endpoints[0] = "mutated"
	if BootstrapEndpoints()[0] == "mutated" {
		t.Error("BootstrapEndpoints exposes shared state")
	}
}
