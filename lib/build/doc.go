// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package build is the incremental asset build driver.
//
// [Run] walks a source directory for files named
// <base>.<kind>.<ext> (ext one of json, jsonc, yaml, yml), skipping
// hidden directories, and bakes each into the mirrored path
// <target>/<dir>/<base>.<kind>. The engine configuration is baked
// first, on its own, into <target>/engine.boot; a missing engine
// source is a warning, not a failure.
//
// An output is rebuilt when it is stale:
//
//   - mtime mode: the output is missing or older than its source
//   - hash mode: the source or output digest differs from the build
//     manifest, or the output is missing
//
// Bakes run on a bounded worker pool. A failed bake never replaces a
// previous good output: files are written atomically, and with
// backups enabled the previous output is moved aside to <name>.bk for
// the duration of the bake and restored on failure. One asset's
// failure does not stop its siblings; every outcome is collected in
// the [Report].
package build
