// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/splitter"
)

type verifyParams struct {
	commonParams
	manifestParams
	cli.JSONOutput
	Checksum bool `json:"-" flag:"checksum" desc:"also hash every chunk and compare against the recorded checksum"`
}

func verifyCommand(env *environment) *cli.Command {
	var params verifyParams
	var flags flagState

	return &cli.Command{
		Name:    "verify",
		Summary: "Check that every chunk is present and consistent",
		Usage:   "bureau-split verify [flags]",
		Description: `Check every manifest entry without modifying anything: each listed
chunk must exist and the chunk sizes must add up to the recorded size.
With --checksum the chunks are also read in full and hashed.

Every problem is listed, not just the first. Exits 1 if any were
found.`,
		Flags: flags.bind("verify", &params),
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

			report, err := env.engine(cfg, params.commonParams).Verify(ctx, splitter.VerifyOptions{
				ManifestPath: cfg.Manifest,
				Checksum:     params.Checksum,
			})
			if err != nil {
				return err
			}

			var exit error
			if !report.OK() {
				exit = &cli.ExitError{Code: 1}
			}

			if done, err := params.EmitJSON(env.stdout, report); done {
				if err != nil {
					return err
				}
				return exit
			}

			if len(report.Issues) > 0 {
				writer := tabwriter.NewWriter(env.stdout, 2, 0, 2, ' ', 0)
				for _, issue := range report.Issues {
					fmt.Fprintf(writer, "%s\t%s\t%s\n", issue.Kind, issue.Path, issue.Detail)
				}
				writer.Flush()
			}
			mode := "sizes"
			if report.Checksum {
				mode = "sizes and checksums"
			}
			if report.OK() {
				fmt.Fprintf(env.stdout, "verified %d %s (%s): ok\n", report.Entries, plural(report.Entries, "entry", "entries"), mode)
			} else {
				fmt.Fprintf(env.stdout, "verified %d %s (%s): %d %s\n", report.Entries, plural(report.Entries, "entry", "entries"),
					mode, len(report.Issues), plural(len(report.Issues), "issue", "issues"))
			}
			return exit
		},
	}
}
