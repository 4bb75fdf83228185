// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package wire

// StringPolicy describes how a format accounts for the memory a string
// occupies once the engine loads it. It does not change the bytes on
// the wire (strings are always written without terminator or padding);
// it only changes the string-byte totals declared in headers.
type StringPolicy struct {
	// Padded rounds each string up to Alignment.
	Padded bool

	// Alignment is the block size for Padded. Must be positive when
	// Padded is set.
	Alignment int

	// NulTerminator adds one byte per string for the terminator the
	// engine appends.
	NulTerminator bool
}

// Unpadded counts raw bytes only.
var Unpadded = StringPolicy{}

// PoolAligned is the policy of formats whose strings are copied into
// the engine's 8-byte aligned memory pool with a NUL terminator.
var PoolAligned = StringPolicy{Padded: true, Alignment: 8, NulTerminator: true}

// Footprint returns the number of bytes s occupies under the policy.
//
// Padding always adds at least one byte of slack: a length that is
// already a multiple of Alignment still grows by a full block. The
// engine's pool sizing was written against this rule, so it is kept
// exactly.
func (p StringPolicy) Footprint(s string) uint32 {
	length := len(s)
	if p.NulTerminator {
		length++
	}
	if p.Padded && p.Alignment > 0 {
		length += p.Alignment - length%p.Alignment
	}
	return uint32(length)
}

// Total sums Footprint over strings.
func (p StringPolicy) Total(strings ...string) uint32 {
	var total uint32
	for _, s := range strings {
		total += p.Footprint(s)
	}
	return total
}
