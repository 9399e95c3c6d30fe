// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/splitter"
)

type mergeParams struct {
	commonParams
	manifestParams
	cli.JSONOutput
	KeepChunks bool `json:"-" flag:"keep-chunks" desc:"keep chunks and manifest entries after reconstructing"`
}

func mergeCommand(env *environment) *cli.Command {
	var params mergeParams
	var flags flagState

	return &cli.Command{
		Name:    "all",
		Aliases: []string{"merge"},
		Summary: "Reconstruct every split file from its chunks",
		Usage:   "bureau-split all [flags]",
		Description: `Reconstruct every file recorded in the manifest by concatenating its
chunks in order. The result is written to a temporary file, checked
against the recorded size and checksum, and renamed into place. On
success the chunks and the manifest entry are removed, unless
--keep-chunks is set; the manifest itself is removed with its last
entry.

An entry with missing chunks or a failed check is left untouched and
the rest are still merged. A file already at the original path with
the recorded size and checksum is left alone.

Exits 1 if any entry failed.`,
		Examples: []cli.Example{
			{
				Description: "Merge everything back",
				Command:     "bureau-split all",
			},
			{
				Description: "Reconstruct but keep the chunks for another checkout",
				Command:     "bureau-split merge --keep-chunks",
			},
		},
		Flags: flags.bind("all", &params),
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			cfg, err := resolve(&flags, params.commonParams, params.manifestParams)
			if err != nil {
				return err
			}
			if err := validate(cfg); err != nil {
				return err
			}

			report, err := env.engine(cfg, params.commonParams).Merge(ctx, splitter.MergeOptions{
				ManifestPath: cfg.Manifest,
				KeepChunks:   params.KeepChunks,
			})
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(env.stdout, report); done {
				if err != nil {
					return err
				}
				return exitOnFailure(report)
			}
			printReport(env.stdout, report)
			return exitOnFailure(report)
		},
	}
}
