// © 2023 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

// Package config loads pheresc settings from YAML or TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/pheres-lang/pheres/internal/exc"
)

const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"

	TreeFormatJSON   = "json"
	TreeFormatBinary = "binary"
)

var (
	colorModes  = []string{ColorAuto, ColorAlways, ColorNever}
	treeFormats = []string{TreeFormatJSON, TreeFormatBinary}
	logLevels   = []string{"debug", "info", "warn", "error"}
)

type Config struct {
	Roots          []string `yaml:"roots" toml:"roots"`
	DumpTokens     bool     `yaml:"dump_tokens" toml:"dump_tokens"`
	DumpTree       bool     `yaml:"dump_tree" toml:"dump_tree"`
	SkipTrivia     bool     `yaml:"skip_trivia" toml:"skip_trivia"`
	Color          string   `yaml:"color" toml:"color"`
	LogLevel       string   `yaml:"log_level" toml:"log_level"`
	TreeFormat     string   `yaml:"tree_format" toml:"tree_format"`
	TreeOut        string   `yaml:"tree_out" toml:"tree_out"`
	MaxConcurrency int      `yaml:"max_concurrency" toml:"max_concurrency"`
}

func Default() *Config {
	return &Config{
		Roots:      []string{"."},
		Color:      ColorAuto,
		LogLevel:   "warn",
		TreeFormat: TreeFormatJSON,
	}
}

// Load reads a configuration file on top of the defaults. The format is
// picked by extension: .yaml and .yml for YAML, .toml for TOML.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, exc.Wrap(exc.Location{URI: path}, exc.CodeInvalidConfig, err)
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	case ".toml":
		err = toml.Unmarshal(content, cfg)
	default:
		return nil, exc.New(exc.Location{URI: path}, exc.CodeInvalidConfig, fmt.Sprintf("unsupported configuration format %q", filepath.Ext(path)))
	}
	if err != nil {
		return nil, exc.Wrap(exc.Location{URI: path}, exc.CodeInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, exc.Wrap(exc.Location{URI: path}, exc.CodeInvalidConfig, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !slices.Contains(colorModes, c.Color) {
		return exc.New(exc.Location{}, exc.CodeInvalidConfig, fmt.Sprintf("color must be one of %v, got %q", colorModes, c.Color))
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return exc.New(exc.Location{}, exc.CodeInvalidConfig, fmt.Sprintf("log_level must be one of %v, got %q", logLevels, c.LogLevel))
	}
	if !slices.Contains(treeFormats, c.TreeFormat) {
		return exc.New(exc.Location{}, exc.CodeInvalidConfig, fmt.Sprintf("tree_format must be one of %v, got %q", treeFormats, c.TreeFormat))
	}
	if c.MaxConcurrency < 0 {
		return exc.New(exc.Location{}, exc.CodeInvalidConfig, fmt.Sprintf("max_concurrency must not be negative, got %d", c.MaxConcurrency))
	}
	if len(c.Roots) == 0 {
		return exc.New(exc.Location{}, exc.CodeInvalidConfig, "at least one root is required")
	}
	return nil
}

// ExpandEnv replaces $VAR and ${VAR} references in path settings.
func (c *Config) ExpandEnv(lookup func(string) (string, bool)) {
	mapping := func(s string) string {
		v, _ := lookup(s)
		return v
	}
	for offset, root := range c.Roots {
		c.Roots[offset] = os.Expand(root, mapping)
	}
	c.TreeOut = os.Expand(c.TreeOut, mapping)
}
