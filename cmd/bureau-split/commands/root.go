// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the bureau-split command tree: build, all
// (alias merge), clean, verify, and status. Each command resolves its
// settings from the config file and flags, runs one engine operation,
// and renders the resulting report as text or JSON.
//
// Per-file failures are part of a report and map to exit codes through
// [cli.ExitError]. Manifest-level failures (corrupt manifest, lock
// held, unreadable root) are returned as plain errors, which main
// prints as "error: ..." before exiting 1.
package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
)

// environment carries what commands write to. Tests substitute a
// buffer and a discarding logger.
type environment struct {
	stdout    io.Writer
	newLogger func(verbose bool) *slog.Logger
}

// Root builds and returns the complete bureau-split command tree.
func Root() *cli.Command {
	return newRoot(&environment{
		stdout:    os.Stdout,
		newLogger: cli.NewCommandLogger,
	})
}

func newRoot(env *environment) *cli.Command {
	return &cli.Command{
		Name: "bureau-split",
		Description: `bureau-split: keep oversized files out of size-limited storage.

Files larger than the size limit are cut into fixed-size chunks named
<file>_split_NN, and a JSON manifest records how to put them back
together. Chunks and manifest can be committed or uploaded where the
original would be rejected, then merged back on the other side.

Settings come from the YAML file named by --config or
$BUREAU_SPLIT_CONFIG, and flags override the file.`,
		Subcommands: []*cli.Command{
			buildCommand(env),
			mergeCommand(env),
			cleanCommand(env),
			verifyCommand(env),
			statusCommand(env),
			versionCommand(env),
		},
		Examples: []cli.Example{
			{
				Description: "Split every file over 100 MiB under the current directory",
				Command:     "bureau-split build",
			},
			{
				Description: "Split at 50 MiB, keep originals, and ignore them in git",
				Command:     "bureau-split build --size-limit 50M --keep-originals --gitignore .gitignore",
			},
			{
				Description: "Check that every chunk is present and intact",
				Command:     "bureau-split verify --checksum",
			},
			{
				Description: "Reconstruct every split file and remove the chunks",
				Command:     "bureau-split all",
			},
		},
	}
}
