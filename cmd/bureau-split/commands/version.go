// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/bureau-split/cmd/bureau-split/cli"
	"github.com/bureau-foundation/bureau-split/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

func versionCommand(env *environment) *cli.Command {
	var params versionParams

	return &cli.Command{
		Name:    "version",
		Summary: "Print version information",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(_ context.Context, args []string) error {
			if err := noArguments(args); err != nil {
				return err
			}
			build := version.Current()
			if done, err := params.EmitJSON(env.stdout, build); done {
				return err
			}
			fmt.Fprintf(env.stdout, "bureau-split %s\n", build)
			return nil
		},
	}
}
