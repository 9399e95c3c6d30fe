// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/config"
	"github.com/bureau-foundation/bureau-split/lib/splitter"
)

// commonParams are the flags every command accepts.
type commonParams struct {
	Config  string `json:"-" flag:"config" desc:"YAML config file (default $BUREAU_SPLIT_CONFIG)"`
	Verbose bool   `json:"-" flag:"verbose,v" desc:"log per-file detail"`
	NoLock  bool   `json:"-" flag:"no-lock" desc:"skip the advisory lock next to the manifest"`
}

type manifestParams struct {
	Manifest string `json:"-" flag:"manifest" desc:"manifest path (default split_files_info.json)"`
}

// flagState remembers the flag set of the current invocation so Run
// can tell an explicit flag from an unset one. Only explicit flags
// override the config file.
type flagState struct {
	set *pflag.FlagSet
}

func (s *flagState) bind(name string, params any) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		s.set = cli.FlagsFromParams(name, params)
		return s.set
	}
}

func (s *flagState) changed(name string) bool {
	return s.set != nil && s.set.Changed(name)
}

// resolve loads the config file and applies the common and manifest
// flags on top of it.
func resolve(flags *flagState, common commonParams, manifest manifestParams) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if common.Config != "" {
		cfg, err = config.LoadFile(common.Config)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if flags.changed("manifest") {
		cfg.Manifest = manifest.Manifest
	}
	if common.NoLock {
		cfg.Lock = false
	}
	return cfg, nil
}

func validate(cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (env *environment) engine(cfg *config.Config, common commonParams) *splitter.Engine {
	return splitter.New(splitter.Options{
		Logger:     env.newLogger(common.Verbose),
		BufferSize: int(cfg.BufferSize.Bytes()),
		Lock:       cfg.Lock,
	})
}

func noArguments(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	return nil
}

// exitOnFailure maps a report with failed outcomes to exit code 1.
func exitOnFailure(report *splitter.Report) error {
	if len(report.Failed()) > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
