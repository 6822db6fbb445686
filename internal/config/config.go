// SPDX-License-Identifier: AGPL-3.0-or-later

/*
validate-commit - checks commit messages against the Type(scope): description
convention and its casing rules.

Copyright (C) 2025  Bartek Kus

This program is free software licensed under the terms of the GNU AGPL v3 or later.

See https://www.gnu.org/licenses/ for license details.

*/

// Package config loads the per-repository allow-lists that exempt names
// from the casing rules.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/bartekus/validate-commit/internal/commitmsg"
)

// FileNames are the config files looked up at the repository root, in
// order of preference.
var FileNames = []string{
	".validate-commit.yaml",
	".validate-commit.yml",
	".validate-commit.toml",
}

// Config is the on-disk configuration.
type Config struct {
	// Structures are type, struct and module names that keep their casing
	// anywhere in the message.
	Structures []string `yaml:"structures" toml:"structures"`
	// ProperNouns keep their casing in the summary.
	ProperNouns []string `yaml:"proper_nouns" toml:"proper_nouns"`

	// Path is the file the config came from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Load reads the config at path. The format follows the extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from the command line or repo root
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{Path: path}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("config %s: unsupported extension %q (want .yaml, .yml or .toml)", path, ext)
	}
	return cfg, nil
}

// Discover loads the first of FileNames found in root. A missing file is not
// an error: the returned config is empty.
func Discover(root string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking config %s: %w", path, err)
		}
		return Load(path)
	}
	return &Config{}, nil
}

// Merge appends extra names to the config, dropping blanks and duplicates.
func (c *Config) Merge(structures, properNouns []string) {
	c.Structures = dedupe(append(c.Structures, structures...))
	c.ProperNouns = dedupe(append(c.ProperNouns, properNouns...))
}

// Options converts the config into validator options.
func (c *Config) Options() commitmsg.Options {
	return commitmsg.Options{
		StructureNames: c.Structures,
		ProperNouns:    c.ProperNouns,
	}
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
