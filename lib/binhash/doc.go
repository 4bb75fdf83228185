// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package binhash provides BLAKE3 content hashing for asset sources,
// baked outputs, and pack entries.
//
// The build driver compares digests of source files against the
// values recorded in the build manifest to decide whether an asset
// needs re-baking, and the pack format stores a digest of every
// entry's raw bytes so that corruption is caught on read.
//
// Every digest is computed in keyed mode with a per-domain key, so
// the same bytes hashed as a source and as a pack entry produce
// different digests:
//
//   - [HashBytes] and [HashReader] -- hash in-memory or streamed data
//   - [HashFile] -- streams a file through the hash with constant
//     memory usage regardless of file size
//   - [FormatDigest] and [ParseDigest] -- canonical hex encoding used
//     in the manifest, log output, and the inspect command
//
// This package has no dependencies on other platebake packages.
package binhash
