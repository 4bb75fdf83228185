// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/spf13/pflag"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
	"github.com/plate-engine/platebake/lib/build"
	"github.com/plate-engine/platebake/lib/config"
)

type buildParams struct {
	CommonParams
	cli.JSONOutput
	Force    bool   `flag:"force,f" desc:"rebuild every asset regardless of staleness"`
	NoBackup bool   `flag:"no-backup" desc:"do not keep the previous output while rebuilding it"`
	Workers  int    `flag:"workers,j" desc:"concurrent bakes (0: one per CPU; default from config)" default:"-1"`
	Hash     bool   `flag:"hash" desc:"decide staleness by content hash instead of modification time"`
	Verify   bool   `flag:"verify" desc:"decode every output and check its header before writing it"`
	Engine   string `flag:"engine" desc:"engine configuration source (default from config: engine.json)"`
}

// buildResult is the JSON form of one asset's outcome.
type buildResult struct {
	build.Result
	Error string `json:"error,omitempty"`
}

type buildReport struct {
	Results []buildResult `json:"results"`
	Built   int           `json:"built"`
	Skipped int           `json:"skipped"`
	Failed  int           `json:"failed"`
}

func buildCommand() *cli.Command {
	var params buildParams
	return &cli.Command{
		Name:    "build",
		Summary: "Bake every stale asset under a source directory",
		Description: `Recursively search the source directory for asset sources named
<base>.<kind>.<ext> and bake each stale one into the mirrored path
under the target directory. The engine configuration is baked first
into <target>/engine.boot. Hidden directories are skipped.`,
		Usage: "platebake build [source] [target] [flags]",
		Examples: []cli.Example{
			{Description: "Build changed assets", Command: "platebake build data assets"},
			{Description: "Rebuild everything and verify the outputs", Command: "platebake build data assets --force --verify"},
		},
		Flags: func() *pflag.FlagSet {
			return cli.FlagsFromParams("build", &params)
		},
		Run: func(ctx context.Context, args []string) error {
			if err := cli.RequireArgs(args, 0, 2, "platebake build [source] [target]"); err != nil {
				return err
			}
			env, err := params.setup()
			if err != nil {
				return err
			}
			return runBuild(ctx, env, &params, args)
		},
	}
}

func runBuild(ctx context.Context, env *environment, params *buildParams, args []string) error {
	cfg := env.config
	options := build.Options{
		Source:    cfg.Paths.Source,
		Target:    cfg.Paths.Target,
		Engine:    cfg.Paths.Engine,
		Workers:   cfg.Build.Workers,
		Staleness: build.Staleness(cfg.Build.Staleness),
		Force:     params.Force,
		Backup:    cfg.Build.Backup && !params.NoBackup,
		Verify:    cfg.Build.Verify || params.Verify,
		Logger:    env.logger,
	}
	if len(args) > 0 {
		options.Source = args[0]
	}
	if len(args) > 1 {
		options.Target = args[1]
	}
	if params.Engine != "" {
		options.Engine = params.Engine
	}
	if params.Workers >= 0 {
		options.Workers = params.Workers
	}
	if params.Hash {
		options.Staleness = config.StalenessHash
	}

	report, err := build.Run(ctx, options)
	if err != nil {
		return cli.Internal("%w", err)
	}

	view := buildReport{Built: report.Built, Skipped: report.Skipped, Failed: report.Failed}
	for _, result := range report.Results {
		entry := buildResult{Result: result}
		if result.Err != nil {
			entry.Error = result.Err.Error()
		}
		view.Results = append(view.Results, entry)
	}
	if done, err := params.EmitJSON(stdout, view); done {
		if err != nil {
			return err
		}
	} else {
		switch {
		case report.Built == 0 && report.Failed == 0:
			cli.Printf(stdout, env.level, "Nothing to do.")
		case report.Failed == 0:
			cli.Printf(stdout, env.level, "Successfully built %d asset(s).", report.Built)
		default:
			cli.Printf(stdout, env.level, "Built %d asset(s), %d failed:", report.Built, report.Failed)
			for _, failure := range report.Failures() {
				cli.Printf(stdout, env.level, "  %v", failure.Err)
			}
		}
	}

	if report.Failed > 0 {
		return &cli.ExitError{Code: 1}
	}
	return nil
}
