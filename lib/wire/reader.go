// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Reader decodes values written by Writer. Reading past the end sets a
// sticky io.ErrUnexpectedEOF; subsequent reads return zero values.
type Reader struct {
	data   []byte
	offset int
	err    error
}

// NewReader returns a Reader over data.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Err returns the first error encountered.
func (r *Reader) Err() error { return r.err }

// Offset returns the number of bytes consumed.
func (r *Reader) Offset() int { return r.offset }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.data) - r.offset }

// Fail records err as the reader's error unless one is already set.
// Decoders use it to report semantic problems (bad tags) through the
// same sticky channel as truncation.
func (r *Reader) Fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || r.Remaining() < n {
		r.err = fmt.Errorf("reading %d bytes at offset %d: %w", n, r.offset, io.ErrUnexpectedEOF)
		return nil
	}
	chunk := r.data[r.offset : r.offset+n]
	r.offset += n
	return chunk
}

// Magic consumes len(magic) bytes and reports whether they equal magic.
func (r *Reader) Magic(magic string) bool {
	chunk := r.take(len(magic))
	return chunk != nil && string(chunk) == magic
}

// Uint8 reads one byte.
func (r *Reader) Uint8() uint8 {
	chunk := r.take(1)
	if chunk == nil {
		return 0
	}
	return chunk[0]
}

// Tag reads a single tag byte.
func (r *Reader) Tag() byte { return r.Uint8() }

// Bool reads one byte; any non-zero value is true.
func (r *Reader) Bool() bool { return r.Uint8() != 0 }

// Uint16 reads a little-endian uint16.
func (r *Reader) Uint16() uint16 {
	chunk := r.take(2)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(chunk)
}

// Uint32 reads a little-endian uint32.
func (r *Reader) Uint32() uint32 {
	chunk := r.take(4)
	if chunk == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(chunk)
}

// Int32 reads a two's complement int32.
func (r *Reader) Int32() int32 { return int32(r.Uint32()) }

// Float32 reads IEEE-754 single precision bits.
func (r *Reader) Float32() float32 { return math.Float32frombits(r.Uint32()) }

// Vec2 reads x then y.
func (r *Reader) Vec2() Vec2 {
	x := r.Float32()
	y := r.Float32()
	return Vec2{X: x, Y: y}
}

// RGB reads three colour bytes.
func (r *Reader) RGB() RGB {
	red := r.Uint8()
	green := r.Uint8()
	blue := r.Uint8()
	return RGB{R: red, G: green, B: blue}
}

// RawString reads n bytes as a string.
func (r *Reader) RawString(n uint32) string {
	if uint64(n) > uint64(r.Remaining()) {
		r.take(r.Remaining() + 1)
		return ""
	}
	return string(r.take(int(n)))
}

// Raw reads n bytes. The result aliases the reader's input.
func (r *Reader) Raw(n uint32) []byte {
	if uint64(n) > uint64(r.Remaining()) {
		r.take(r.Remaining() + 1)
		return nil
	}
	return r.take(int(n))
}

// String32 reads a uint32 length-prefixed string.
func (r *Reader) String32() string { return r.RawString(r.Uint32()) }

// String16 reads a uint16 length-prefixed string.
func (r *Reader) String16() string { return r.RawString(uint32(r.Uint16())) }

// Bytes32 reads a uint32 length-prefixed byte slice. The result
// aliases the reader's input.
func (r *Reader) Bytes32() []byte {
	n := r.Uint32()
	if uint64(n) > uint64(r.Remaining()) {
		r.take(r.Remaining() + 1)
		return nil
	}
	return r.take(int(n))
}

// Count bounds a decoded element count by the bytes left to read,
// given the minimum encoded size of one element. A corrupt header
// cannot make a decoder preallocate more than the input could hold.
func (r *Reader) Count(n uint32, minSize int) int {
	if r.err != nil {
		return 0
	}
	if minSize < 1 {
		minSize = 1
	}
	if uint64(n)*uint64(minSize) > uint64(r.Remaining()) {
		r.err = fmt.Errorf("count %d at offset %d exceeds remaining input: %w", n, r.offset, io.ErrUnexpectedEOF)
		return 0
	}
	return int(n)
}
