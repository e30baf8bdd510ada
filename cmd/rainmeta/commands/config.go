// Copyright 2026 The Rain Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the rainmeta YAML configuration file.
type Config struct {
	// Subgraphs are endpoint URLs queried in addition to the bootstrap
	// set.
	Subgraphs []string `yaml:"subgraphs"`
}

// loadConfig reads and parses a YAML config file. An empty path
// returns an empty config.
func loadConfig(path string) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &config, nil
}
