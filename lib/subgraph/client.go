// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package subgraph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/rainlanguage/rain.metadata/lib/meta"
)

// ErrNotFound reports that no endpoint knows the requested hash.
var ErrNotFound = fmt.Errorf("subgraph: not found")

const metaQuery = `query ($hash: ID!) {
  meta(id: $hash) {
    rawBytes
  }
}`

const deployerQuery = `query ($hash: Bytes!) {
  expressionDeployers(
    first: 1
    where: {or: [{deployTransaction_: {id: $hash}}, {meta_: {id: $hash}}]}
  ) {
    constructorMetaHash
    constructorMeta
    deployedBytecode
    parser { parser { deployedBytecode } }
    store { deployedBytecode }
    interpreter { interpreter { deployedBytecode } }
    meta { id }
    deployTransaction { id }
  }
}`

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used. Timeouts belong to this client; the resolver imposes
	// none of its own.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client resolves metadata from Graph Protocol subgraph endpoints over
// GraphQL HTTP POST. It implements Resolver.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a resolver client.
func NewClient(config ClientConfig) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{httpClient: httpClient, logger: logger}
}

// SearchMeta resolves a document's raw bytes by content hash, racing
// all endpoints and returning the first success.
func (c *Client) SearchMeta(ctx context.Context, hash meta.Hash, endpoints []string) (*MetaResponse, error) {
	return race(ctx, c, endpoints, func(ctx context.Context, endpoint string) (*MetaResponse, error) {
		return c.metaFromEndpoint(ctx, hash, endpoint)
	})
}

// SearchDeployer resolves a deployer artifact bundle by bytecode meta
// hash or deployment tx hash, racing all endpoints.
func (c *Client) SearchDeployer(ctx context.Context, hash meta.Hash, endpoints []string) (*DeployerResponse, error) {
	return race(ctx, c, endpoints, func(ctx context.Context, endpoint string) (*DeployerResponse, error) {
		return c.deployerFromEndpoint(ctx, hash, endpoint)
	})
}

// race queries every endpoint concurrently and returns the first
// success. Losing requests are abandoned when the shared context is
// cancelled; their network side effects may still complete on the
// server. Total failure returns the last endpoint error observed.
func race[T any](ctx context.Context, c *Client, endpoints []string, query func(context.Context, string) (T, error)) (T, error) {
	var zero T
	if len(endpoints) == 0 {
		return zero, fmt.Errorf("subgraph: no endpoints registered")
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		result T
		err    error
	}
	results := make(chan outcome, len(endpoints))
	for _, endpoint := range endpoints {
		go func() {
			result, err := query(ctx, endpoint)
			if err != nil {
				c.logger.Debug("endpoint query failed", "endpoint", endpoint, "error", err)
			}
			results <- outcome{result: result, err: err}
		}()
	}

	var lastErr error
	for range endpoints {
		outcome := <-results
		if outcome.err == nil {
			return outcome.result, nil
		}
		lastErr = outcome.err
	}
	return zero, lastErr
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message string `json:"message"`
}

// post executes one GraphQL request, decoding the data object into
// result. GraphQL-level errors are surfaced as Go errors.
func (c *Client) post(ctx context.Context, endpoint string, query string, variables map[string]any, result any) error {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("subgraph: encoding request: %w", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("subgraph: building request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("subgraph: request failed: %w", err)
	}
	defer response.Body.Close()

	body, err := io.ReadAll(io.LimitReader(response.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("subgraph: reading response: %w", err)
	}
	if response.StatusCode != http.StatusOK {
		return fmt.Errorf("subgraph: endpoint returned status %d", response.StatusCode)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("subgraph: parsing response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("subgraph: query error: %s", envelope.Errors[0].Message)
	}
	if err := json.Unmarshal(envelope.Data, result); err != nil {
		return fmt.Errorf("subgraph: parsing data: %w", err)
	}
	return nil
}

func (c *Client) metaFromEndpoint(ctx context.Context, hash meta.Hash, endpoint string) (*MetaResponse, error) {
	var data struct {
		Meta *struct {
			RawBytes string `json:"rawBytes"`
		} `json:"meta"`
	}
	variables := map[string]any{"hash": meta.FormatHash(hash)}
	if err := c.post(ctx, endpoint, metaQuery, variables, &data); err != nil {
		return nil, err
	}
	if data.Meta == nil {
		return nil, ErrNotFound
	}
	raw, err := meta.ParseHexBytes(data.Meta.RawBytes)
	if err != nil {
		return nil, fmt.Errorf("subgraph: bad rawBytes: %w", err)
	}
	return &MetaResponse{Bytes: raw}, nil
}

func (c *Client) deployerFromEndpoint(ctx context.Context, hash meta.Hash, endpoint string) (*DeployerResponse, error) {
	var data struct {
		ExpressionDeployers []struct {
			ConstructorMetaHash string `json:"constructorMetaHash"`
			ConstructorMeta     string `json:"constructorMeta"`
			DeployedBytecode    string `json:"deployedBytecode"`
			Parser              struct {
				Parser struct {
					DeployedBytecode string `json:"deployedBytecode"`
				} `json:"parser"`
			} `json:"parser"`
			Store struct {
				DeployedBytecode string `json:"deployedBytecode"`
			} `json:"store"`
			Interpreter struct {
				Interpreter struct {
					DeployedBytecode string `json:"deployedBytecode"`
				} `json:"interpreter"`
			} `json:"interpreter"`
			Meta struct {
				ID string `json:"id"`
			} `json:"meta"`
			DeployTransaction struct {
				ID string `json:"id"`
			} `json:"deployTransaction"`
		} `json:"expressionDeployers"`
	}
	variables := map[string]any{"hash": meta.FormatHash(hash)}
	if err := c.post(ctx, endpoint, deployerQuery, variables, &data); err != nil {
		return nil, err
	}
	if len(data.ExpressionDeployers) == 0 {
		return nil, ErrNotFound
	}
	deployer := data.ExpressionDeployers[0]

	response := &DeployerResponse{}
	var err error
	if response.MetaHash, err = meta.ParseHash(deployer.ConstructorMetaHash); err != nil {
		return nil, fmt.Errorf("subgraph: bad constructorMetaHash: %w", err)
	}
	if response.MetaBytes, err = meta.ParseHexBytes(deployer.ConstructorMeta); err != nil {
		return nil, fmt.Errorf("subgraph: bad constructorMeta: %w", err)
	}
	if response.Bytecode, err = meta.ParseHexBytes(deployer.DeployedBytecode); err != nil {
		return nil, fmt.Errorf("subgraph: bad deployedBytecode: %w", err)
	}
	if response.Parser, err = meta.ParseHexBytes(deployer.Parser.Parser.DeployedBytecode); err != nil {
		return nil, fmt.Errorf("subgraph: bad parser bytecode: %w", err)
	}
	if response.Store, err = meta.ParseHexBytes(deployer.Store.DeployedBytecode); err != nil {
		return nil, fmt.Errorf("subgraph: bad store bytecode: %w", err)
	}
	if response.Interpreter, err = meta.ParseHexBytes(deployer.Interpreter.Interpreter.DeployedBytecode); err != nil {
		return nil, fmt.Errorf("subgraph: bad interpreter bytecode: %w", err)
	}
	if response.BytecodeMetaHash, err = meta.ParseHash(deployer.Meta.ID); err != nil {
		return nil, fmt.Errorf("subgraph: bad bytecode meta hash: %w", err)
	}
	if response.TxHash, err = meta.ParseHash(deployer.DeployTransaction.ID); err != nil {
		return nil, fmt.Errorf("subgraph: bad tx hash: %w", err)
	}
	return response, nil
}
