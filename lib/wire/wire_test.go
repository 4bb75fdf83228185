// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

func TestWriterLittleEndianPacking(t *testing.T) {
	t.Parallel()

	w := NewWriter(0)
	w.Magic("PlatE")
	w.Uint8(0xAB)
	w.Bool(true)
	w.Bool(false)
	w.Uint16(0x0102)
	w.Uint32(0x01020304)
	w.Int32(-2)
	w.Float32(1.0)
	w.RGB(RGB{R: 1, G: 2, B: 3})
	if err := w.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}

	want := []byte{
		'P', 'l', 'a', 't', 'E',
		0xAB,
		1, 0,
		0x02, 0x01,
		0x04, 0x03, 0x02, 0x01,
		0xFE, 0xFF, 0xFF, 0xFF,
		0x00, 0x00, 0x80, 0x3F,
		1, 2, 3,
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = % x\nwant      % x", w.Bytes(), want)
	}
}

func TestWriterStrings(t *testing.T) {
	t.Parallel()

	w := NewWriter(0)
	w.String32("hé")
	w.String16("ab")
	want := []byte{3, 0, 0, 0, 'h', 0xC3, 0xA9, 2, 0, 'a', 'b'}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes() = % x, want % x", w.Bytes(), want)
	}
}

func TestWriterString16Overflow(t *testing.T) {
	t.Parallel()

	w := NewWriter(0)
	w.String16(strings.Repeat("x", 70000))
	w.Uint8(1)
	if w.Err() == nil {
		t.Fatal("expected overflow error for 70000-byte string with uint16 prefix")
	}
	if w.Len() != 0 {
		t.Errorf("Len() = %d after failed write, want 0", w.Len())
	}
}

func TestWriterOverflowIsOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		write func(*Writer)
	}{
		{"count16 too large", func(w *Writer) { w.Count16(70000) }},
		{"count16 negative", func(w *Writer) { w.Count16(-1) }},
		{"count32 negative", func(w *Writer) { w.Count32(-1) }},
		{"string16 too long", func(w *Writer) { w.String16(strings.Repeat("x", 70000)) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w := NewWriter(0)
			tt.write(w)
			if kind := bakeerr.KindOf(w.Err()); kind != bakeerr.OutOfRange {
				t.Errorf("KindOf(%v) = %v, want OutOfRange", w.Err(), kind)
			}
		})
	}
}

func TestReaderMirrorsWriter(t *testing.T) {
	t.Parallel()

	w := NewWriter(64)
	w.Magic("PlatEtest")
	w.Uint16(7)
	w.Uint32(123456)
	w.Int32(-42)
	w.Vec2(Vec2{X: 1.5, Y: -2.25})
	w.RGB(RGB{R: 0xFF, G: 0x80, B: 0x00})
	w.String32("hello")
	w.String16("bye")
	w.Bytes32([]byte{9, 8})
	w.Bool(true)

	r := NewReader(w.Bytes())
	if !r.Magic("PlatEtest") {
		t.Fatal("magic mismatch")
	}
	if got := r.Uint16(); got != 7 {
		t.Errorf("Uint16 = %d", got)
	}
	if got := r.Uint32(); got != 123456 {
		t.Errorf("Uint32 = %d", got)
	}
	if got := r.Int32(); got != -42 {
		t.Errorf("Int32 = %d", got)
	}
	if got := r.Vec2(); got != (Vec2{X: 1.5, Y: -2.25}) {
		t.Errorf("Vec2 = %+v", got)
	}
	if got := r.RGB(); got.String() != "#ff8000" {
		t.Errorf("RGB = %s", got)
	}
	if got := r.String32(); got != "hello" {
		t.Errorf("String32 = %q", got)
	}
	if got := r.String16(); got != "bye" {
		t.Errorf("String16 = %q", got)
	}
	if got := r.Bytes32(); !bytes.Equal(got, []byte{9, 8}) {
		t.Errorf("Bytes32 = %v", got)
	}
	if !r.Bool() {
		t.Error("Bool = false")
	}
	if r.Err() != nil || r.Remaining() != 0 {
		t.Errorf("Err = %v, Remaining = %d", r.Err(), r.Remaining())
	}
}

func TestReaderTruncation(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{5, 0, 0, 0, 'a', 'b'})
	if got := r.String32(); got != "" {
		t.Errorf("String32 on truncated input = %q, want empty", got)
	}
	if !errors.Is(r.Err(), io.ErrUnexpectedEOF) {
		t.Errorf("Err = %v, want io.ErrUnexpectedEOF", r.Err())
	}
	if r.Uint32() != 0 {
		t.Error("read after error returned data")
	}
}

func TestReaderCountBoundsAllocation(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	if got := r.Count(2, 4); got != 2 {
		t.Errorf("Count(2, 4) = %d, want 2", got)
	}
	if got := r.Count(1<<30, 4); got != 0 || r.Err() == nil {
		t.Errorf("Count(huge) = %d, err = %v; want 0 and an error", got, r.Err())
	}
}

func TestStringPolicyFootprint(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy StringPolicy
		input  string
		want   uint32
	}{
		{"unpadded counts bytes", Unpadded, "hero", 4},
		{"unpadded multibyte", Unpadded, "é", 2},
		{"pool short", PoolAligned, "hero", 8},
		{"pool seven bytes plus nul fills block then pads a full block", PoolAligned, "sevench", 16},
		{"pool empty", PoolAligned, "", 8},
		{"pool nine", PoolAligned, "ninechars", 16},
		{"nul only", StringPolicy{NulTerminator: true}, "abc", 4},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if got := test.policy.Footprint(test.input); got != test.want {
				t.Errorf("Footprint(%q) = %d, want %d", test.input, got, test.want)
			}
		})
	}

	if got := PoolAligned.Total("hero", "walk"); got != 16 {
		t.Errorf("Total = %d, want 16", got)
	}
}

func TestEnum(t *testing.T) {
	t.Parallel()

	sides := NewEnum("edge trigger side",
		EnumValue{Name: "top", Tag: 't'},
		EnumValue{Name: "bottom", Tag: 'b'},
		EnumValue{Name: "both", Tag: 'x'},
		EnumValue{Name: "b", Tag: 'x'},
	)

	tag, err := sides.Tag("side", "TOP")
	if err != nil || tag != 't' {
		t.Errorf("Tag(TOP) = %q, %v", tag, err)
	}
	if name, ok := sides.Name('x'); !ok || name != "both" {
		t.Errorf("Name('x') = %q, %v; want canonical \"both\"", name, ok)
	}

	_, err = sides.Tag("edge_triggers[0].side", "diagonal")
	if !errors.Is(err, bakeerr.ErrUnknownEnumValue) {
		t.Fatalf("Tag(diagonal) error = %v, want UnknownEnumValue", err)
	}
	if !strings.Contains(err.Error(), "diagonal") {
		t.Errorf("error %q does not name the bad value", err)
	}
}

func TestParseRGB(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"#1a2B3c", "1a2b3c"} {
		color, err := ParseRGB("color", input)
		if err != nil {
			t.Errorf("ParseRGB(%q): %v", input, err)
			continue
		}
		if color != (RGB{R: 0x1a, G: 0x2b, B: 0x3c}) {
			t.Errorf("ParseRGB(%q) = %+v", input, color)
		}
	}

	for _, input := range []string{"", "#12345", "#gggggg", "#1234567"} {
		if _, err := ParseRGB("color", input); !errors.Is(err, bakeerr.ErrMalformedInput) {
			t.Errorf("ParseRGB(%q) error = %v, want MalformedInput", input, err)
		}
	}
}
