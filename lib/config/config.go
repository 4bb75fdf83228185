// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"

	"gopkg.in/yaml.v3"
)

// EnvironmentVariable names the config file when --config is not given.
const EnvironmentVariable = "PLATEBAKE_CONFIG"

// Profile selects a set of overrides.
type Profile string

const (
	// Development favours fast iteration: mtime staleness, no
	// verification.
	Development Profile = "development"
	// Release favours correctness of shipped output.
	Release Profile = "release"
)

// Staleness modes for incremental builds.
const (
	StalenessMtime = "mtime"
	StalenessHash  = "hash"
)

// Config is the master configuration for platebake.
type Config struct {
	// Profile selects which override section applies.
	Profile Profile `yaml:"profile"`

	// Paths configures source and output locations.
	Paths PathsConfig `yaml:"paths"`

	// Build configures the incremental build driver.
	Build BuildConfig `yaml:"build"`

	// Pack configures asset pack output.
	Pack PackConfig `yaml:"pack"`

	// Log configures diagnostic output.
	Log LogConfig `yaml:"log"`

	// Per-profile overrides, applied after the base config is loaded.
	Development *Overrides `yaml:"development,omitempty"`
	Release     *Overrides `yaml:"release,omitempty"`
}

// Overrides contains fields that can be overridden per profile.
type Overrides struct {
	Build *BuildOverrides `yaml:"build,omitempty"`
	Pack  *PackConfig     `yaml:"pack,omitempty"`
}

// BuildOverrides mirrors [BuildConfig] with pointer booleans so that an
// explicit false can override a true default.
type BuildOverrides struct {
	Workers   int    `yaml:"workers,omitempty"`
	Staleness string `yaml:"staleness,omitempty"`
	Backup    *bool  `yaml:"backup,omitempty"`
	Verify    *bool  `yaml:"verify,omitempty"`
}

// PathsConfig configures directory locations.
type PathsConfig struct {
	// Source is the directory walked for asset sources.
	// Default: assets
	Source string `yaml:"source"`

	// Target is the directory baked files are written to.
	// Default: build
	Target string `yaml:"target"`

	// Engine is the engine configuration source, baked first into
	// engine.boot at the root of Target.
	// Default: engine.json
	Engine string `yaml:"engine"`
}

// BuildConfig configures the build driver.
type BuildConfig struct {
	// Workers bounds concurrent bakes. Zero means one per CPU.
	Workers int `yaml:"workers"`

	// Staleness is "mtime" (source newer than output) or "hash"
	// (source or output digest differs from the manifest).
	// Default: mtime
	Staleness string `yaml:"staleness"`

	// Backup keeps the previous output as <name>.bk while a bake is
	// in flight and restores it if the bake fails.
	// Default: true
	Backup bool `yaml:"backup"`

	// Verify decodes every produced file and checks its header.
	// Default: false (development), true (release)
	Verify bool `yaml:"verify"`
}

// PackConfig configures the pack command.
type PackConfig struct {
	// Output is the pack file written by "platebake pack" when -o is
	// not given.
	// Default: ${PLATEBAKE_TARGET}.pack
	Output string `yaml:"output"`

	// Compression is none, lz4, zstd, or auto.
	// Default: auto (development), zstd (release)
	Compression string `yaml:"compression"`
}

// LogConfig configures the command logger.
type LogConfig struct {
	// Level is debug, info, warn, or error. Command-line verbosity
	// flags adjust it relative to this base.
	// Default: info
	Level string `yaml:"level"`

	// Format is auto (text on a terminal, JSON otherwise), text, or
	// json.
	// Default: auto
	Format string `yaml:"format"`
}

// Default returns the default configuration. These values apply in
// full when no config file is given.
func Default() *Config {
	return &Config{
		Profile: Development,
		Paths: PathsConfig{
			Source: "assets",
			Target: "build",
			Engine: "engine.json",
		},
		Build: BuildConfig{
			Workers:   0,
			Staleness: StalenessMtime,
			Backup:    true,
			Verify:    false,
		},
		Pack: PackConfig{
			Output:      "${PLATEBAKE_TARGET}.pack",
			Compression: "auto",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load loads configuration from the file named by PLATEBAKE_CONFIG.
// When the variable is unset the defaults are returned.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		cfg := Default()
		cfg.finish()
		return cfg, nil
	}
	return LoadFile(configPath)
}

// Resolve loads the config file named by flagPath, falling back to
// [Load] when flagPath is empty.
func Resolve(flagPath string) (*Config, error) {
	if flagPath != "" {
		return LoadFile(flagPath)
	}
	return Load()
}

// LoadFile loads configuration from a specific file path, layered over
// [Default].
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.finish()
	return cfg, nil
}

func (c *Config) finish() {
	c.applyProfileOverrides()
	c.expandVariables()
}

// applyProfileOverrides applies the profile's override section.
func (c *Config) applyProfileOverrides() {
	var overrides *Overrides

	switch c.Profile {
	case Development:
		overrides = c.Development
	case Release:
		overrides = c.Release
		if overrides == nil {
			verify := true
			overrides = &Overrides{
				Build: &BuildOverrides{Staleness: StalenessHash, Verify: &verify},
				Pack:  &PackConfig{Compression: "zstd"},
			}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.Build != nil {
		if overrides.Build.Workers != 0 {
			c.Build.Workers = overrides.Build.Workers
		}
		if overrides.Build.Staleness != "" {
			c.Build.Staleness = overrides.Build.Staleness
		}
		if overrides.Build.Backup != nil {
			c.Build.Backup = *overrides.Build.Backup
		}
		if overrides.Build.Verify != nil {
			c.Build.Verify = *overrides.Build.Verify
		}
	}

	if overrides.Pack != nil {
		if overrides.Pack.Output != "" {
			c.Pack.Output = overrides.Pack.Output
		}
		if overrides.Pack.Compression != "" {
			c.Pack.Compression = overrides.Pack.Compression
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in paths.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}

	c.Paths.Source = expandVars(c.Paths.Source, vars)
	vars["PLATEBAKE_SOURCE"] = c.Paths.Source
	c.Paths.Target = expandVars(c.Paths.Target, vars)
	vars["PLATEBAKE_TARGET"] = c.Paths.Target

	c.Paths.Engine = expandVars(c.Paths.Engine, vars)
	c.Pack.Output = expandVars(c.Pack.Output, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars expands ${VAR} and ${VAR:-default} patterns. Names in
// vars take precedence over the process environment.
func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors. Every problem is
// reported, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Profile != Development && c.Profile != Release {
		errs = append(errs, fmt.Errorf("invalid profile: %q", c.Profile))
	}

	if c.Paths.Source == "" {
		errs = append(errs, errors.New("paths.source is required"))
	}
	if c.Paths.Target == "" {
		errs = append(errs, errors.New("paths.target is required"))
	}

	if c.Build.Workers < 0 {
		errs = append(errs, fmt.Errorf("build.workers must not be negative, got %d", c.Build.Workers))
	}
	stalenessValues := []string{StalenessMtime, StalenessHash}
	if !slices.Contains(stalenessValues, c.Build.Staleness) {
		errs = append(errs, fmt.Errorf("build.staleness must be one of: %v", stalenessValues))
	}

	compressionValues := []string{"none", "lz4", "zstd", "auto"}
	if !slices.Contains(compressionValues, c.Pack.Compression) {
		errs = append(errs, fmt.Errorf("pack.compression must be one of: %v", compressionValues))
	}

	levelValues := []string{"debug", "info", "warn", "error"}
	if !slices.Contains(levelValues, c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level must be one of: %v", levelValues))
	}
	formatValues := []string{"auto", "text", "json"}
	if !slices.Contains(formatValues, c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format must be one of: %v", formatValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
