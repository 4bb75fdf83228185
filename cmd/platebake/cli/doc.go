// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli provides the command-line framework for platebake.
//
// The central type is [Command], which represents a named subcommand
// with optional nested [Command.Subcommands], a [pflag.FlagSet]
// factory, and a Run function. Commands are assembled into a tree in
// cmd/platebake and dispatched via [Command.Execute], which handles
// flag parsing, subcommand routing, and help output with examples.
//
// Flags are usually declared as tagged struct fields and bound with
// [FlagsFromParams]. [LogParams] supplies the shared verbosity flags
// (-v, -q, --silent, --debug) and [NewCommandLogger] turns them into
// an slog.Logger.
//
// When a user types an unknown subcommand or flag, the framework
// computes Levenshtein edit distance against all known names and
// suggests the closest match (threshold: distance <= 3).
package cli
