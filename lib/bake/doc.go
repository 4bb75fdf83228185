// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package bake is the codec boundary of platebake: an asset kind and a
// source document go in, a PlatE binary or a structured error comes
// out.
//
// Source files are named <base>.<kind>.<ext>, where kind is one of
// sprite, level, tileset or bootloader and ext is json, jsonc, yaml or
// yml. [Classify] splits a file name into those parts; the baked file
// is named <base>.<kind>.
//
// [Bake] and [BakeSource] never return partial output. Errors are
// *bakeerr.Error for structural failures and bakeerr.List when
// validation found several problems.
//
// [Decode] identifies a baked file by its magic and decodes it with the
// reader of its kind. [Verify] additionally checks that the header
// stored in the file matches the counts recomputed from the decoded
// body.
package bake
