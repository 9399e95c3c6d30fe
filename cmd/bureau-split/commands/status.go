// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/bytesize"
)

type statusParams struct {
	commonParams
	manifestParams
	cli.JSONOutput
}

func statusCommand(env *environment) *cli.Command {
	var params statusParams
	var flags flagState

	return &cli.Command{
		Name:    "status",
		Summary: "List the split files recorded in the manifest",
		Usage:   "bureau-split status [flags]",
		Description: `List every split file in the manifest with its chunk count and size.
Reads the manifest only; chunks are not checked (use verify for that).
A missing manifest lists nothing.`,
		Flags: flags.bind("status", &params),
		Run: func(_ context.Context, args []string) error {
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

			report, err := env.engine(cfg, params.commonParams).Status(cfg.Manifest)
			if err != nil {
				return err
			}

			if done, err := params.EmitJSON(env.stdout, report); done {
				return err
			}

			if len(report.Entries) == 0 {
				fmt.Fprintf(env.stdout, "no split files in %s\n", report.Manifest)
				return nil
			}
			writer := tabwriter.NewWriter(env.stdout, 2, 0, 2, ' ', 0)
			fmt.Fprintf(writer, "PATH\tCHUNKS\tSIZE\n")
			for _, entry := range report.Entries {
				fmt.Fprintf(writer, "%s\t%d\t%s\n", entry.Path, entry.SplitCount, bytesize.Size(entry.Size).Humanize())
			}
			writer.Flush()
			fmt.Fprintf(env.stdout, "%d %s, %d chunks, %s total\n", len(report.Entries),
				plural(len(report.Entries), "file", "files"), report.TotalChunks, bytesize.Size(report.TotalSize).Humanize())
			return nil
		},
	}
}
