// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package manifest records what the build driver produced on its last
// run, so that hash-based staleness checks can skip assets whose
// source and output are both unchanged.
//
// The manifest is a CBOR file written with Core Deterministic
// Encoding (RFC 8949 §4.2): the same logical content always produces
// the same bytes, so an unchanged build leaves the file byte-identical.
// Entries are keyed by output path relative to the target directory,
// using forward slashes on every platform.
//
// Digests are stored as hex text strings via [binhash.Digest]'s
// TextMarshaler implementation, which keeps the file readable with
// any CBOR diagnostic tool.
package manifest
