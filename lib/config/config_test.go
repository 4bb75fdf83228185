// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "platebake.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return configPath
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Profile != Development {
		t.Errorf("expected profile=development, got %s", cfg.Profile)
	}
	if cfg.Paths.Engine != "engine.json" {
		t.Errorf("expected engine=engine.json, got %s", cfg.Paths.Engine)
	}
	if cfg.Build.Staleness != StalenessMtime {
		t.Errorf("expected staleness=mtime, got %s", cfg.Build.Staleness)
	}
	if !cfg.Build.Backup {
		t.Error("expected backup=true by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadWithoutConfigUsesDefaults(t *testing.T) {
	t.Setenv(EnvironmentVariable, "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Paths.Source != "assets" || cfg.Paths.Target != "build" {
		t.Errorf("paths = %+v, want defaults", cfg.Paths)
	}
	if cfg.Pack.Output != "build.pack" {
		t.Errorf("expected pack output=build.pack, got %s", cfg.Pack.Output)
	}
}

func TestLoadFromEnvironmentVariable(t *testing.T) {
	configPath := writeConfig(t, `
paths:
  source: /game/assets
  target: /game/out
`)
	t.Setenv(EnvironmentVariable, configPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Paths.Source != "/game/assets" {
		t.Errorf("expected source=/game/assets, got %s", cfg.Paths.Source)
	}
	if cfg.Pack.Output != "/game/out.pack" {
		t.Errorf("expected pack output=/game/out.pack, got %s", cfg.Pack.Output)
	}
}

func TestResolvePrefersFlag(t *testing.T) {
	fromEnvironment := writeConfig(t, "paths:\n  target: env-target\n")
	fromFlag := writeConfig(t, "paths:\n  target: flag-target\n")
	t.Setenv(EnvironmentVariable, fromEnvironment)

	cfg, err := Resolve(fromFlag)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Paths.Target != "flag-target" {
		t.Errorf("expected target=flag-target, got %s", cfg.Paths.Target)
	}

	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve(\"\") failed: %v", err)
	}
	if cfg.Paths.Target != "env-target" {
		t.Errorf("expected target=env-target, got %s", cfg.Paths.Target)
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, `
paths:
  source: src
  target: out
  engine: src/engine.yaml

build:
  workers: 3
  staleness: hash
  backup: false

pack:
  compression: lz4

log:
  level: debug
  format: json
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Paths.Engine != "src/engine.yaml" {
		t.Errorf("expected engine=src/engine.yaml, got %s", cfg.Paths.Engine)
	}
	if cfg.Build.Workers != 3 {
		t.Errorf("expected workers=3, got %d", cfg.Build.Workers)
	}
	if cfg.Build.Staleness != StalenessHash {
		t.Errorf("expected staleness=hash, got %s", cfg.Build.Staleness)
	}
	if cfg.Build.Backup {
		t.Error("expected backup=false")
	}
	if cfg.Pack.Compression != "lz4" {
		t.Errorf("expected compression=lz4, got %s", cfg.Pack.Compression)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("log = %+v, want debug/json", cfg.Log)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile(missing) should fail")
	}
	if _, err := LoadFile(writeConfig(t, "build: [unclosed")); err == nil {
		t.Error("LoadFile(invalid YAML) should fail")
	}
}

func TestReleaseProfileDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFile(writeConfig(t, "profile: release\n"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Build.Staleness != StalenessHash {
		t.Errorf("expected staleness=hash for release, got %s", cfg.Build.Staleness)
	}
	if !cfg.Build.Verify {
		t.Error("expected verify=true for release")
	}
	if cfg.Pack.Compression != "zstd" {
		t.Errorf("expected compression=zstd for release, got %s", cfg.Pack.Compression)
	}
}

func TestProfileOverrides(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, `
profile: release

build:
  backup: true
  verify: false

release:
  build:
    workers: 8
    backup: false
  pack:
    output: dist/game.pack
`)

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.Build.Workers != 8 {
		t.Errorf("expected workers=8 from release override, got %d", cfg.Build.Workers)
	}
	if cfg.Build.Backup {
		t.Error("expected explicit backup=false from release override")
	}
	// An explicit release section replaces the built-in release
	// defaults, so verify keeps its base value.
	if cfg.Build.Verify {
		t.Error("expected verify=false from base config")
	}
	if cfg.Pack.Output != "dist/game.pack" {
		t.Errorf("expected pack output=dist/game.pack, got %s", cfg.Pack.Output)
	}
}

func TestDevelopmentSectionIgnoredForRelease(t *testing.T) {
	t.Parallel()

	configPath := writeConfig(t, `
profile: release
development:
  build:
    staleness: mtime
`)
	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Build.Staleness != StalenessHash {
		t.Errorf("expected staleness=hash, got %s", cfg.Build.Staleness)
	}
}

func TestExpandVars(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		vars     map[string]string
		expected string
	}{
		{
			input:    "${HOME}/assets",
			vars:     map[string]string{"HOME": "/home/user"},
			expected: "/home/user/assets",
		},
		{
			input:    "${PLATEBAKE_TEST_MISSING:-default}",
			vars:     map[string]string{},
			expected: "default",
		},
		{
			input:    "${PRESENT:-default}",
			vars:     map[string]string{"PRESENT": "value"},
			expected: "value",
		},
		{
			input:    "${PLATEBAKE_TARGET}/${NAME}.pack",
			vars:     map[string]string{"PLATEBAKE_TARGET": "build", "NAME": "game"},
			expected: "build/game.pack",
		},
		{
			input:    "no variables here",
			vars:     map[string]string{},
			expected: "no variables here",
		},
	}

	for _, tt := range tests {
		result := expandVars(tt.input, tt.vars)
		if result != tt.expected {
			t.Errorf("expandVars(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:   "valid default config",
			modify: func(c *Config) {},
		},
		{
			name:    "invalid profile",
			modify:  func(c *Config) { c.Profile = "staging" },
			wantErr: "invalid profile",
		},
		{
			name:    "empty source",
			modify:  func(c *Config) { c.Paths.Source = "" },
			wantErr: "paths.source is required",
		},
		{
			name:    "empty target",
			modify:  func(c *Config) { c.Paths.Target = "" },
			wantErr: "paths.target is required",
		},
		{
			name:    "negative workers",
			modify:  func(c *Config) { c.Build.Workers = -1 },
			wantErr: "build.workers",
		},
		{
			name:    "unknown staleness",
			modify:  func(c *Config) { c.Build.Staleness = "ctime" },
			wantErr: "build.staleness",
		},
		{
			name:    "unknown compression",
			modify:  func(c *Config) { c.Pack.Compression = "brotli" },
			wantErr: "pack.compression",
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: "log.level",
		},
		{
			name:    "unknown log format",
			modify:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tt.modify(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Paths.Source = ""
	cfg.Build.Staleness = "ctime"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"paths.source", "build.staleness"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Validate() = %q, missing %q", err, want)
		}
	}
}
