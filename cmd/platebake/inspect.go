// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
	"github.com/plate-engine/platebake/lib/bake"
	"github.com/plate-engine/platebake/lib/binhash"
)

type inspectParams struct {
	CommonParams
	cli.JSONOutput
}

type inspectResult struct {
	Path   string         `json:"path"`
	Kind   bake.Kind      `json:"kind"`
	Size   int            `json:"size"`
	Digest binhash.Digest `json:"digest"`
	Header any            `json:"header"`
	Asset  any            `json:"asset"`
}

func inspectCommand() *cli.Command {
	var params inspectParams
	return &cli.Command{
		Name:    "inspect",
		Summary: "Decode a baked file and check its header",
		Description: `Read a baked sprite, level, tileset or engine.boot back, print
its header counts, and check them against the decoded body. A header
that disagrees with the body is reported and the command fails.`,
		Usage: "platebake inspect <file> [flags]",
		Examples: []cli.Example{
			{Description: "Summarize a baked level", Command: "platebake inspect assets/town.level"},
			{Description: "Dump the decoded asset", Command: "platebake inspect assets/hero.sprite --json"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("inspect", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := cli.RequireArgs(args, 1, 1, "platebake inspect <file> [flags]"); err != nil {
				return err
			}
			env, err := params.setup()
			if err != nil {
				return err
			}
			return runInspect(env, &params, args[0])
		},
	}
}

func runInspect(env *environment, params *inspectParams, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return readError(err)
	}
	decoded, verifyErr := bake.Verify(data)
	if decoded == nil {
		return cli.Validation("%s: %w", path, verifyErr)
	}

	result := inspectResult{
		Path:   path,
		Kind:   decoded.Kind,
		Size:   len(data),
		Digest: binhash.HashBytes(binhash.Output, data),
		Header: decoded.Header,
		Asset:  decoded.Asset,
	}
	if done, err := params.EmitJSON(stdout, result); done {
		if err != nil {
			return err
		}
	} else {
		fmt.Fprintf(stdout, "%s\n", path)
		fmt.Fprintf(stdout, "  kind:   %s\n", result.Kind)
		fmt.Fprintf(stdout, "  size:   %d bytes\n", result.Size)
		fmt.Fprintf(stdout, "  digest: %s\n", result.Digest)
		fmt.Fprintf(stdout, "  header: %+v\n", result.Header)
	}

	if verifyErr != nil {
		return cli.Validation("%s: %w", path, verifyErr)
	}
	env.logger.Debug("verified", "path", path, "kind", decoded.Kind)
	return nil
}
