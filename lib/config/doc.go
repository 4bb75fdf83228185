// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for platebake.
//
// Configuration is optional. When neither the --config flag nor the
// PLATEBAKE_CONFIG environment variable names a file, [Default] is
// used unchanged. There is no automatic file search: the file that
// shaped a build is always the one the user named.
//
// The file may carry profile sections (development, release) that
// override base values when [Config].Profile matches. The release
// profile defaults to hash-based staleness, verification of every
// output, and zstd pack compression.
//
// Variable expansion is performed on path fields after loading:
// ${HOME}, ${PLATEBAKE_SOURCE}, ${PLATEBAKE_TARGET}, and
// ${VAR:-default} patterns are expanded.
//
// Key exports:
//
//   - [Config] -- master struct with Paths, Build, Pack, and Log
//   - [Default] -- returns a Config with development defaults
//   - [Load], [LoadFile], and [Resolve] -- the entry points for loading
//
// This package depends on no other platebake packages.
package config
