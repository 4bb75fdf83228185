// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package bakeerr defines the structured errors produced while baking
// an asset.
//
// Every failure carries a [Kind] so callers can branch on the class of
// problem with errors.Is against the sentinel values ([ErrMissingField],
// [ErrDuplicateName], ...) without parsing message text. [Error] also
// records the document path of the offending field and, for validation
// failures, the offending values themselves.
//
// Validation problems (illegal identifiers, duplicate names, unresolved
// references) are accumulated in an [Issues] collector and reported
// together as a [List] so an author can fix every problem in one pass.
// Structural problems (missing fields, malformed values, bad geometry)
// are returned immediately.
//
// This package depends on no other platebake packages.
package bakeerr
