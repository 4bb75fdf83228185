// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package document parses authored asset sources into a schema-free
// tree and gives the asset encoders typed, path-aware access to it.
//
// Sources are authored as JSON, JSONC (JSON with comments and trailing
// commas), or YAML. [Parse] turns any of them into the same tree of
// map[string]any, []any, string, bool, and number values; [Node] wraps
// a position in that tree together with its path ("frames[2].clip"),
// so every accessor can report exactly which field is missing or has
// the wrong type using the errors of package bakeerr.
//
// A JSON null is treated as an absent field, so optional fields may be
// written out explicitly as null.
package document
