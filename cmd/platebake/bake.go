// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
	"github.com/plate-engine/platebake/lib/atomicfile"
	"github.com/plate-engine/platebake/lib/bake"
	"github.com/plate-engine/platebake/lib/document"
)

type bakeParams struct {
	CommonParams
	Output string `flag:"output,o" desc:"output file (default: <base>.<kind> next to the source)"`
	Kind   string `flag:"kind" desc:"asset kind (default: taken from the source name)"`
	Verify bool   `flag:"verify" desc:"decode the output and check its header before writing it"`
}

func bakeCommand() *cli.Command {
	var params bakeParams
	return &cli.Command{
		Name:    "bake",
		Summary: "Bake a single asset source",
		Description: `Bake one source file. The kind comes from the source name
(<base>.<kind>.<ext>) unless --kind is given; the syntax comes from the
extension (.json, .jsonc, .yaml, .yml).`,
		Usage: "platebake bake <source> [flags]",
		Examples: []cli.Example{
			{Description: "Bake a sprite next to its source", Command: "platebake bake data/hero.sprite.json"},
			{Description: "Bake a file whose name carries no kind", Command: "platebake bake town.yaml --kind level -o assets/town.level"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("bake", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := cli.RequireArgs(args, 1, 1, "platebake bake <source> [flags]"); err != nil {
				return err
			}
			env, err := params.setup()
			if err != nil {
				return err
			}
			return runBake(env, &params, args[0])
		},
	}
}

func runBake(env *environment, params *bakeParams, source string) error {
	format, ok := document.FormatFromPath(source)
	if !ok {
		return cli.Validation("%s: unrecognized extension %q", source, filepath.Ext(source))
	}

	name := filepath.Base(source)
	classified, named := bake.Classify(name)
	kindName := params.Kind
	if kindName == "" {
		if !named {
			return cli.Validation("%s: cannot tell the asset kind from the name; pass --kind", source)
		}
		kindName = classified.Kind
	}
	kind, err := bake.ParseKind(kindName)
	if err != nil {
		return &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	}

	output := params.Output
	if output == "" {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if named {
			base = classified.Base
		}
		output = filepath.Join(filepath.Dir(source), base+"."+string(kind))
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return readError(err)
	}
	baked, err := bake.BakeSource(kind, format, data, bake.Options{Sources: os.DirFS(filepath.Dir(source))})
	if err != nil {
		return cli.Validation("%s: %w", source, err)
	}
	if params.Verify {
		if _, err := bake.Verify(baked); err != nil {
			return cli.Internal("%s: baked output does not verify: %w", source, err)
		}
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return cli.Internal("%w", err)
		}
	}
	if err := atomicfile.WriteFile(output, baked, 0o644); err != nil {
		return cli.Internal("%w", err)
	}
	env.logger.Debug("baked", "source", source, "output", output, "kind", kind, "size", len(baked))
	cli.Printf(stdout, env.level, "%s -> %s", source, output)
	return nil
}
