// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"io/fs"
	"log/slog"

	"github.com/plate-engine/platebake/cmd/platebake/cli"
	"github.com/plate-engine/platebake/lib/config"
)

// CommonParams are the flags every command accepts.
type CommonParams struct {
	cli.LogParams
	Config string `flag:"config" desc:"configuration file (default $PLATEBAKE_CONFIG, else built-in defaults)"`
}

// environment is what a command needs from its common flags.
type environment struct {
	config *config.Config
	logger *slog.Logger
	level  slog.Level
}

func (p *CommonParams) setup() (*environment, error) {
	cfg, err := config.Resolve(p.Config)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
	}
	if err != nil {
		return nil, &cli.ToolError{Category: cli.CategoryValidation, Err: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, cli.Validation("invalid configuration: %w", err)
	}

	base, err := cli.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	level := p.Level(base)
	logger, err := cli.NewCommandLogger(stderr, cli.LoggerOptions{Level: level, Format: cfg.Log.Format})
	if err != nil {
		return nil, err
	}
	return &environment{config: cfg, logger: logger, level: level}, nil
}

// readError categorizes a failure to read a named input.
func readError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &cli.ToolError{Category: cli.CategoryNotFound, Err: err}
	}
	return &cli.ToolError{Category: cli.CategoryInternal, Err: err}
}
