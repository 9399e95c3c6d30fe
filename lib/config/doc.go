// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for bureau-split.
//
// Configuration is optional. When used, it is loaded from a single
// file named by the --config flag (via [LoadFile]) or the
// BUREAU_SPLIT_CONFIG environment variable (via [Load]). There is no
// discovery of ~/.config or the working directory, so a run is fully
// described by its flags plus at most one named file.
//
// Values not present in the file keep the defaults from [Default].
// Command-line flags are applied by the caller after loading and
// always win.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded from the process
// environment. No environment variable overrides a config value
// directly.
//
// This package depends only on lib/bytesize.
package config
