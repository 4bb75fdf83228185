// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package wire holds the primitive encoders shared by every PlatE
// binary asset format.
//
// All formats use the same conventions: integers are little-endian,
// floats are IEEE-754 single precision, booleans occupy one byte (0 or
// 1), and records are packed with no implicit padding. Variable-length
// items carry their own length prefix; there are no offset tables and
// no terminators.
//
// [Writer] appends to an in-memory buffer and keeps the first error it
// encounters (a length that does not fit its prefix), so encoders can
// write a whole record and check [Writer.Err] once. [Reader] is the
// mirror image used by the conformant decoders and the inspect command.
//
// [StringPolicy] describes how a format accounts for string storage in
// its header (the engine allocates all strings from one pool, some
// formats with NUL terminators and 8-byte alignment). [Enum] maps the
// closed sets of single-byte tags to their source names.
package wire
