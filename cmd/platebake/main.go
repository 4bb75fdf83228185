// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Command platebake converts PlatE asset sources (sprites, levels,
// tilesets, and the engine configuration, written as JSON, JSONC, or
// YAML) into the binary formats the engine loads, and bundles baked
// trees into asset packs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
)

// Human-facing output. Tests replace these.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:])
	stop()
	if err != nil {
		os.Exit(report(err))
	}
}

func run(ctx context.Context, args []string) error {
	return rootCommand().Execute(ctx, args)
}

// report prints err unless the command already reported it, and
// returns the exit code.
func report(err error) int {
	var exitError *cli.ExitError
	if errors.As(err, &exitError) {
		return exitError.ExitCode()
	}
	fmt.Fprintf(stderr, "error: %v\n", err)
	var toolError *cli.ToolError
	if errors.As(err, &toolError) {
		return toolError.ExitCode()
	}
	return 1
}

func rootCommand() *cli.Command {
	return &cli.Command{
		Name:        "platebake",
		Description: "Bake PlatE asset sources into the binary formats the engine loads.",
		Output:      stderr,
		Subcommands: []*cli.Command{
			buildCommand(),
			bakeCommand(),
			inspectCommand(),
			packCommand(),
			unpackCommand(),
			versionCommand(),
		},
		Examples: []cli.Example{
			{
				Description: "Build every changed asset under data/ into assets/",
				Command:     "platebake build data assets",
			},
			{
				Description: "Describe a baked sprite",
				Command:     "platebake inspect assets/hero.sprite",
			},
		},
	}
}
