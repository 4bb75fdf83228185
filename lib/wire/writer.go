// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"math"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

// Vec2 is a pair of float32 coordinates.
type Vec2 struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// RGB is a 24-bit colour, serialized as three bytes r, g, b.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Writer accumulates little-endian encoded values.
type Writer struct {
	buf []byte
	err error
}

// NewWriter returns a Writer with capacity preallocated.
func NewWriter(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the encoded buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Err returns the first error encountered, if any. Once set, further
// writes are ignored.
func (w *Writer) Err() error { return w.err }

// fail records a value that does not fit its wire type.
func (w *Writer) fail(format string, args ...any) {
	if w.err == nil {
		w.err = bakeerr.New(bakeerr.OutOfRange, "", format, args...)
	}
}

// Magic writes s verbatim with no length prefix or terminator.
func (w *Writer) Magic(s string) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, s...)
}

// Tag writes a single tag byte.
func (w *Writer) Tag(tag byte) { w.Uint8(tag) }

// Uint8 writes one byte.
func (w *Writer) Uint8(v uint8) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, v)
}

// Bool writes 1 for true and 0 for false.
func (w *Writer) Bool(v bool) {
	if v {
		w.Uint8(1)
	} else {
		w.Uint8(0)
	}
}

// Uint16 writes v little-endian.
func (w *Writer) Uint16(v uint16) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

// Uint32 writes v little-endian.
func (w *Writer) Uint32(v uint32) {
	if w.err != nil {
		return
	}
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

// Int32 writes v as its two's complement uint32.
func (w *Writer) Int32(v int32) { w.Uint32(uint32(v)) }

// Float32 writes the IEEE-754 bits of v.
func (w *Writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }

// Float32s writes each value in order.
func (w *Writer) Float32s(values ...float32) {
	for _, v := range values {
		w.Float32(v)
	}
}

// Vec2 writes x then y.
func (w *Writer) Vec2(v Vec2) {
	w.Float32(v.X)
	w.Float32(v.Y)
}

// RGB writes r, g, b as three bytes.
func (w *Writer) RGB(c RGB) {
	w.Uint8(c.R)
	w.Uint8(c.G)
	w.Uint8(c.B)
}

// Count32 writes a collection length as uint32.
func (w *Writer) Count32(n int) {
	if n < 0 || uint64(n) > math.MaxUint32 {
		w.fail("count %d does not fit in uint32", n)
		return
	}
	w.Uint32(uint32(n))
}

// Count16 writes a collection length as uint16.
func (w *Writer) Count16(n int) {
	if n < 0 || n > math.MaxUint16 {
		w.fail("count %d does not fit in uint16", n)
		return
	}
	w.Uint16(uint16(n))
}

// RawString writes the bytes of s with no prefix. Formats that put
// every length in a record ahead of the strings use this.
func (w *Writer) RawString(s string) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, s...)
}

// String32 writes a uint32 byte length followed by the bytes of s.
func (w *Writer) String32(s string) {
	w.Count32(len(s))
	w.RawString(s)
}

// String16 writes a uint16 byte length followed by the bytes of s.
func (w *Writer) String16(s string) {
	w.Count16(len(s))
	w.RawString(s)
}

// Raw writes data with no prefix.
func (w *Writer) Raw(data []byte) {
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, data...)
}

// Bytes32 writes a uint32 length followed by data.
func (w *Writer) Bytes32(data []byte) {
	w.Count32(len(data))
	if w.err != nil {
		return
	}
	w.buf = append(w.buf, data...)
}
