// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config loads optional on-disk defaults for the analyzer.
// Command-line flags always take precedence over a config file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the subset of analyzer options that can be defaulted
// from a file instead of typed on every invocation.
type Config struct {
	MaxStackBytes int    `yaml:"max_stack_bytes"`
	IncludeWeak   bool   `yaml:"include_weak"`
	Format        string `yaml:"format"`
	Verbose       bool   `yaml:"verbose"`
}

// Load reads and parses a YAML config file. An empty path is not an
// error: the caller gets a zero-value Config, meaning "no defaults". A
// non-empty path that cannot be read is an error.
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
