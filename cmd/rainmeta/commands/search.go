// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/pflag"

	"github.com/rainlanguage/rain.metadata/cmd/rainmeta/cli"
	"github.com/rainlanguage/rain.metadata/lib/meta"
	"github.com/rainlanguage/rain.metadata/lib/store"
	"github.com/rainlanguage/rain.metadata/lib/subgraph"
)

func searchCommand() *cli.Command {
	var (
		configPath string
		timeout    time.Duration
		deployer   bool
		verbose    bool
	)

	return &cli.Command{
		Name:    "search",
		Summary: "Resolve a content hash over subgraph endpoints",
		Description: `Resolve a keccak256 content hash across the registered subgraph
endpoints, racing them concurrently and taking the first success.

By default the resolved document bytes are printed as 0x-prefixed hex.
With --deployer, the hash is treated as a bytecode meta hash or
deployment tx hash and the resolved deployer artifact bundle is
printed as JSON.`,
		Usage: "rainmeta search [--config <file>] [--deployer] <hash>",
		Examples: []cli.Example{
			{
				Description: "Resolve a document by hash",
				Command:     "rainmeta search 0x1446a8b1e7...",
			},
			{
				Description: "Resolve a deployer bundle with extra endpoints",
				Command:     "rainmeta search --config rainmeta.yaml --deployer 0xd61ab8f2c4...",
			},
		},
		Flags: func() *pflag.FlagSet {
			flags := pflag.NewFlagSet("search", pflag.ContinueOnError)
			flags.StringVar(&configPath, "config", "", "YAML config file with extra subgraph endpoints")
			flags.DurationVar(&timeout, "timeout", 30*time.Second, "overall resolution timeout")
			flags.BoolVar(&deployer, "deployer", false, "resolve a deployer artifact bundle instead of raw bytes")
			flags.BoolVarP(&verbose, "verbose", "v", false, "log per-endpoint failures")
			return flags
		},
		Run: func(args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("search takes exactly one hash argument")
			}
			hash, err := meta.ParseHash(args[0])
			if err != nil {
				return err
			}
			config, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := cli.NewCommandLogger(verbose)
			resolver := subgraph.NewClient(subgraph.ClientConfig{
				HTTPClient: &http.Client{Timeout: timeout},
				Logger:     logger,
			})
			s := store.New(resolver, logger)
			s.AddSubgraphs(config.Subgraphs...)

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			if deployer {
				record, ok := s.SearchDeployer(ctx, hash)
				if !ok {
					return fmt.Errorf("no endpoint resolved deployer %s", meta.FormatHash(hash))
				}
				output, err := json.MarshalIndent(record, "", "  ")
				if err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
				fmt.Println(string(output))
				return nil
			}

			data, ok := s.Update(ctx, hash)
			if !ok {
				return fmt.Errorf("no endpoint resolved %s", meta.FormatHash(hash))
			}
			fmt.Println(meta.FormatHexBytes(data))
			return nil
		},
	}
}
