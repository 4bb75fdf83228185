// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package symtab provides the name tables asset validation is built on.
//
// A [Table] records names in definition order. Each name keeps the
// index of its first definition, which is the index other records use
// to refer to it on the wire (acts_on lists in the engine
// configuration, animation lookups in sprites). Redefinitions are
// remembered rather than rejected so a single validation pass can
// report every duplicated value at once.
//
// [ValidIdentifier] implements the identifier grammar shared by all
// engine-visible names: a letter or underscore followed by letters,
// digits or underscores.
package symtab
