// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
	"github.com/plate-engine/platebake/lib/bake"
	"github.com/plate-engine/platebake/lib/version"
)

type versionParams struct {
	cli.JSONOutput
}

type versionResult struct {
	version.Build
	Formats []formatInfo `json:"formats"`
}

type formatInfo struct {
	Kind  bake.Kind `json:"kind"`
	Magic string    `json:"magic"`
}

func versionCommand() *cli.Command {
	var params versionParams
	return &cli.Command{
		Name:    "version",
		Summary: "Print the build version and the binary formats it writes",
		Usage:   "platebake version [--json]",
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("version", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := cli.RequireArgs(args, 0, 0, "platebake version [--json]"); err != nil {
				return err
			}
			result := versionResult{Build: version.Read()}
			for _, kind := range bake.Kinds() {
				result.Formats = append(result.Formats, formatInfo{Kind: kind, Magic: kind.Magic()})
			}
			if done, err := params.EmitJSON(stdout, result); done {
				return err
			}

			fmt.Fprintf(stdout, "platebake %s\n", result.Build)
			fmt.Fprintf(stdout, "  Go: %s\n  Platform: %s\n\n", result.Go, result.Platform)
			writer := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(writer, "KIND\tMAGIC\n")
			for _, format := range result.Formats {
				fmt.Fprintf(writer, "%s\t%s\n", format.Kind, format.Magic)
			}
			return writer.Flush()
		},
	}
}
