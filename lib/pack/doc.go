// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package pack bundles baked asset files into a single PlatEpack
// container and extracts them again.
//
// Layout (little-endian):
//
//	"PlatEpack"
//	u32 entry count
//	entry*:
//	  u32 path length, path bytes (slash-separated, relative)
//	  u8  compression (0 none, 1 lz4, 2 zstd)
//	  u32 raw size
//	  u32 stored size
//	  32  BLAKE3 digest of the raw bytes (domain plate.pack.entry)
//	  stored bytes
//
// Entries are written in path order so that packing the same tree
// twice yields identical bytes. Any entry whose compressed form is not
// smaller than its raw bytes is stored uncompressed. [Read] verifies
// every digest and rejects duplicate or non-local paths.
package pack
