// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/bureau-foundation/bureau-split/lib/bytesize"
)

// EnvironmentVariable names the config file when --config is absent.
const EnvironmentVariable = "BUREAU_SPLIT_CONFIG"

// DefaultManifest is the manifest file name used by the original
// tooling; keeping it means existing checkouts work unchanged.
const DefaultManifest = "split_files_info.json"

// Config is the complete bureau-split configuration.
type Config struct {
	// Root is the directory scanned by build.
	Root string `yaml:"root"`

	// SizeLimit is the maximum size of any chunk. Files at or below
	// it are never split.
	SizeLimit bytesize.Size `yaml:"size_limit"`

	// Manifest is the path of the split manifest.
	Manifest string `yaml:"manifest"`

	// KeepOriginals leaves originals in place after a successful
	// split instead of removing them.
	KeepOriginals bool `yaml:"keep_originals"`

	// Gitignore, when set, is a .gitignore file that build appends
	// split originals to.
	Gitignore string `yaml:"gitignore"`

	// Exclude lists slash-separated glob patterns (path.Match syntax)
	// of root-relative paths that build never splits.
	Exclude []string `yaml:"exclude"`

	// BufferSize is the copy buffer used for streaming chunk I/O.
	BufferSize bytesize.Size `yaml:"buffer_size"`

	// Lock takes an advisory lock next to the manifest for the
	// duration of each operation.
	Lock bool `yaml:"lock"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Root:       ".",
		SizeLimit:  100 * bytesize.MiB,
		Manifest:   DefaultManifest,
		BufferSize: bytesize.MiB,
		Lock:       true,
	}
}

// Load loads the file named by BUREAU_SPLIT_CONFIG. When the variable
// is unset, the defaults are returned unchanged.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, layered on
// top of [Default].
func LoadFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", filePath, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", filePath, err)
	}
	return cfg, nil
}

// Parse decodes YAML configuration layered on top of [Default] and
// expands variables in path fields. Unknown keys are rejected so that
// typos do not silently fall back to defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// path-valued fields.
func (c *Config) expandVariables() {
	c.Root = expandVars(c.Root)
	c.Manifest = expandVars(c.Manifest)
	c.Gitignore = expandVars(c.Gitignore)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		if len(parts) >= 3 {
			return parts[2]
		}
		return ""
	})
}

// Validate checks the configuration for errors, reporting all of them.
func (c *Config) Validate() error {
	var errs []error

	if c.Root == "" {
		errs = append(errs, fmt.Errorf("root is required"))
	}
	if c.Manifest == "" {
		errs = append(errs, fmt.Errorf("manifest is required"))
	}
	if c.SizeLimit < 1 {
		errs = append(errs, fmt.Errorf("size_limit must be at least 1 byte, got %d", c.SizeLimit))
	}
	if c.BufferSize < 1 {
		errs = append(errs, fmt.Errorf("buffer_size must be at least 1 byte, got %d", c.BufferSize))
	}
	for _, pattern := range c.Exclude {
		if _, err := path.Match(pattern, ""); err != nil {
			errs = append(errs, fmt.Errorf("exclude pattern %q: %w", pattern, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
