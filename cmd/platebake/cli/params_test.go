// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestBindFlags_BasicTypes(t *testing.T) {
	t.Parallel()

	type params struct {
		Output   string   `flag:"output,o" desc:"output path"`
		Force    bool     `flag:"force,f" desc:"rebuild everything"`
		Workers  int      `flag:"workers" desc:"parallel bakes"`
		Kinds    []string `flag:"kinds" desc:"kinds to build"`
		Untagged string
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}

	err := flagSet.Parse([]string{"-o", "out", "-f", "--workers", "4", "--kinds", "sprite,level"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Output != "out" {
		t.Errorf("Output = %q, want %q", p.Output, "out")
	}
	if !p.Force {
		t.Error("Force = false, want true")
	}
	if p.Workers != 4 {
		t.Errorf("Workers = %d, want 4", p.Workers)
	}
	if len(p.Kinds) != 2 || p.Kinds[0] != "sprite" || p.Kinds[1] != "level" {
		t.Errorf("Kinds = %v, want [sprite level]", p.Kinds)
	}
	if flagSet.Lookup("untagged") != nil {
		t.Error("untagged field was bound")
	}
}

func TestBindFlags_Defaults(t *testing.T) {
	t.Parallel()

	type params struct {
		Compression string `flag:"compression" default:"auto"`
		Workers     int    `flag:"workers" default:"2"`
		Backup      bool   `flag:"backup" default:"true"`
	}

	var p params
	flagSet := pflag.NewFlagSet("test", pflag.ContinueOnError)
	if err := BindFlags(&p, flagSet); err != nil {
		t.Fatalf("BindFlags: %v", err)
	}
	if err := flagSet.Parse(nil); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Compression != "auto" || p.Workers != 2 || !p.Backup {
		t.Errorf("defaults = %+v", p)
	}
}

func TestBindFlags_EmbeddedAndBinder(t *testing.T) {
	t.Parallel()

	type params struct {
		JSONOutput
		LogParams
		Config string `flag:"config" desc:"config file"`
	}

	var p params
	flagSet := FlagsFromParams("test", &p)
	if err := flagSet.Parse([]string{"--json", "-vv", "-q", "--config", "c.yaml"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !p.OutputJSON {
		t.Error("OutputJSON = false, want true")
	}
	if p.Verbose != 2 || p.Quiet != 1 {
		t.Errorf("Verbose, Quiet = %d, %d, want 2, 1", p.Verbose, p.Quiet)
	}
	if p.Config != "c.yaml" {
		t.Errorf("Config = %q, want c.yaml", p.Config)
	}
	if got := p.Level(slog.LevelInfo); got != slog.LevelDebug {
		t.Errorf("Level = %v, want DEBUG", got)
	}
}

func TestBindFlags_Errors(t *testing.T) {
	t.Parallel()

	type unsupported struct {
		Ratio float32 `flag:"ratio"`
	}
	type badDefault struct {
		Workers int `flag:"workers" default:"many"`
	}

	for name, params := range map[string]any{
		"not a pointer":    unsupported{},
		"unsupported type": &unsupported{},
		"bad default":      &badDefault{},
	} {
		err := BindFlags(params, pflag.NewFlagSet("test", pflag.ContinueOnError))
		if err == nil {
			t.Errorf("%s: BindFlags = nil, want error", name)
		}
	}
}

func TestRequireArgs(t *testing.T) {
	t.Parallel()

	if err := RequireArgs([]string{"a"}, 1, 2, "x <a> [b]"); err != nil {
		t.Errorf("RequireArgs(1 of 1..2) = %v", err)
	}
	err := RequireArgs(nil, 1, 2, "x <a> [b]")
	if err == nil || !strings.Contains(err.Error(), "usage: x <a> [b]") {
		t.Errorf("RequireArgs(0 of 1..2) = %v", err)
	}
	if err := RequireArgs([]string{"a", "b", "c"}, 1, 2, "x"); err == nil {
		t.Error("RequireArgs(3 of 1..2) = nil")
	}
	if err := RequireArgs([]string{"a", "b", "c"}, 0, -1, "x"); err != nil {
		t.Errorf("RequireArgs(unbounded) = %v", err)
	}
}
