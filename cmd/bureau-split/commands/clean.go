// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/splitter"
)

type cleanParams struct {
	commonParams
	manifestParams
	cli.JSONOutput
}

func cleanCommand(env *environment) *cli.Command {
	var params cleanParams
	var flags flagState

	return &cli.Command{
		Name:    "clean",
		Summary: "Delete every chunk and the manifest",
		Usage:   "bureau-split clean [flags]",
		Description: `Delete every chunk recorded in the manifest, then the manifest
itself. Originals are never touched; an entry whose original is absent
is cleaned anyway, with a warning, and its data is gone.

Chunks that are already missing are ignored. An entry whose chunks
could not be removed stays in the manifest so clean can be retried.
Per-chunk failures are reported but do not change the exit code.`,
		Flags: flags.bind("clean", &params),
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

			report, err := env.engine(cfg, params.commonParams).Clean(ctx, splitter.CleanOptions{
				ManifestPath: cfg.Manifest,
			})
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(env.stdout, report); done {
				return err
			}
			printReport(env.stdout, report)
			return nil
		},
	}
}
