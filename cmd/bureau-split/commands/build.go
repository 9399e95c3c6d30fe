// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/bytesize"
	"github.com/bureau-foundation/bureau-split/lib/splitter"
)

type buildParams struct {
	commonParams
	manifestParams
	cli.JSONOutput
	Root          string        `json:"-" flag:"root" desc:"directory to scan (default .)"`
	SizeLimit     bytesize.Size `json:"-" flag:"size-limit" desc:"largest file left whole and the size of each chunk, e.g. 50M (default 100M)"`
	KeepOriginals bool          `json:"-" flag:"keep-originals" desc:"leave originals in place after splitting"`
	Gitignore     string        `json:"-" flag:"gitignore" desc:"append split originals to this .gitignore"`
	Exclude       []string      `json:"-" flag:"exclude" desc:"glob of root-relative paths or base names to skip (repeatable)"`
}

func buildCommand(env *environment) *cli.Command {
	var params buildParams
	var flags flagState

	return &cli.Command{
		Name:    "build",
		Summary: "Split files larger than the size limit into chunks",
		Usage:   "bureau-split build [flags]",
		Description: `Scan the root directory for regular files larger than the size limit
and split each into chunks of at most size-limit bytes, recording it
in the manifest. Originals are deleted once the manifest is saved,
unless --keep-originals is set.

Files already in the manifest are skipped. With --keep-originals, a
recorded file whose content changed, or whose chunks are missing, is
split again and its old chunks replaced. Hidden directories, chunk files, and the manifest itself are
never candidates.

Exits 1 if any file failed to split; the others are still processed.`,
		Examples: []cli.Example{
			{
				Description: "Split at the configured limit",
				Command:     "bureau-split build",
			},
			{
				Description: "Split a data directory, skipping ISO images",
				Command:     "bureau-split build --root data --exclude '*.iso'",
			},
		},
		Flags: flags.bind("build", &params),
		Run: func(ctx context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			cfg, err := resolve(&flags, params.commonParams, params.manifestParams)
			if err != nil {
				return err
			}
			if flags.changed("root") {
				cfg.Root = params.Root
			}
			if flags.changed("size-limit") {
				cfg.SizeLimit = params.SizeLimit
			}
			if flags.changed("keep-originals") {
				cfg.KeepOriginals = params.KeepOriginals
			}
			if flags.changed("gitignore") {
				cfg.Gitignore = params.Gitignore
			}
			cfg.Exclude = append(cfg.Exclude, params.Exclude...)
			if err := validate(cfg); err != nil {
				return err
			}

			report, err := env.engine(cfg, params.commonParams).Build(ctx, splitter.BuildOptions{
				Root:          cfg.Root,
				SizeLimit:     cfg.SizeLimit.Bytes(),
				ManifestPath:  cfg.Manifest,
				KeepOriginals: cfg.KeepOriginals,
				GitignorePath: cfg.Gitignore,
				Exclude:       cfg.Exclude,
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
