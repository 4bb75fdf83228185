// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/wire"
)

const nestedSource = `{
	"type": "Composite",
	"hitboxes": [
		{"type": "box", "left": -1, "right": 1, "top": -2, "bottom": 2},
		{"type": "composite", "hitboxes": [
			{"type": "polygon", "vertices": [
				{"x": 0, "y": 0}, {"x": 1, "y": 0}, {"x": 1, "y": 1}, {"x": 0, "y": 1}
			]}
		]}
	]
}`

func parseSource(t *testing.T, source string) document.Node {
	t.Helper()
	root, err := document.Parse([]byte(source), document.JSONC)
	if err != nil {
		t.Fatalf("document.Parse: %v", err)
	}
	return root
}

func f32(values ...float32) []byte {
	var out []byte
	for _, value := range values {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(value))
	}
	return out
}

func u32(value uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, value)
}

func TestNestedCompositeScenario(t *testing.T) {
	t.Parallel()

	hitbox, err := Parse(parseSource(t, nestedSource))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	nodes, vertices := Count(hitbox)
	if nodes != 4 || vertices != 4 {
		t.Errorf("Count() = (%d, %d), want (4, 4)", nodes, vertices)
	}
	outer := hitbox.(Composite)
	if len(outer.Children) != 2 {
		t.Fatalf("outer children = %d, want 2", len(outer.Children))
	}
	if inner, _ := Count(outer.Children[1]); inner != 2 {
		t.Errorf("inner composite nodes = %d, want 2", inner)
	}

	var want []byte
	want = append(want, '?')
	want = append(want, u32(2)...)
	want = append(want, 'b')
	want = append(want, f32(-1, 1, -2, 2)...)
	want = append(want, '?')
	want = append(want, u32(1)...)
	want = append(want, 'p')
	want = append(want, u32(4)...)
	want = append(want, f32(0, 0, 1, 0, 1, 1, 0, 1)...)

	w := wire.NewWriter(0)
	Encode(w, hitbox)
	if err := w.Err(); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Encode() =\n% x\nwant\n% x", w.Bytes(), want)
	}
}

func TestCountVariants(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		hitbox   Hitbox
		nodes    uint32
		vertices uint32
	}{
		{"nil", nil, 0, 0},
		{"none", None{}, 0, 0},
		{"box", Box{}, 0, 0},
		{"line", Line{}, 0, 0},
		{"oneway", OneWay{}, 0, 0},
		{"circle", Circle{Radius: 1}, 0, 0},
		{"polygon", Polygon{Vertices: make([]wire.Vec2, 3)}, 1, 3},
		{"empty composite", Composite{}, 0, 0},
		{"flat composite", Composite{Children: []Hitbox{Box{}, Circle{}, None{}}}, 3, 0},
		{"deep", Composite{Children: []Hitbox{
			Composite{Children: []Hitbox{
				Composite{Children: []Hitbox{Polygon{Vertices: make([]wire.Vec2, 5)}}},
			}},
		}}, 4, 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			nodes, vertices := Count(test.hitbox)
			if nodes != test.nodes || vertices != test.vertices {
				t.Errorf("Count() = (%d, %d), want (%d, %d)", nodes, vertices, test.nodes, test.vertices)
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []Hitbox{
		None{},
		Box{Left: 1, Right: 2, Top: 3, Bottom: 4},
		Line{P1: wire.Vec2{X: 1, Y: 2}, P2: wire.Vec2{X: 3, Y: 4}},
		OneWay{P1: wire.Vec2{X: -1}, P2: wire.Vec2{X: 1}},
		Circle{Center: wire.Vec2{X: 5, Y: 6}, Radius: 2.5},
		Polygon{Vertices: []wire.Vec2{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 1}}},
		Composite{Children: []Hitbox{
			None{},
			Composite{Children: []Hitbox{Circle{Radius: 1}, Polygon{Vertices: []wire.Vec2{}}}},
			Box{Bottom: 9},
		}},
	}
	for _, hitbox := range tests {
		t.Run(hitbox.Kind(), func(t *testing.T) {
			t.Parallel()

			w := wire.NewWriter(0)
			Encode(w, hitbox)
			r := wire.NewReader(w.Bytes())
			decoded, err := Decode(r)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if r.Remaining() != 0 {
				t.Errorf("%d trailing bytes", r.Remaining())
			}
			if !Equal(hitbox, decoded) {
				t.Errorf("Decode() = %#v, want %#v", decoded, hitbox)
			}

			// The source form parses back to the same tree.
			source, err := json.Marshal(Source(decoded))
			if err != nil {
				t.Fatal(err)
			}
			reparsed, err := Parse(parseSource(t, string(source)))
			if err != nil {
				t.Fatalf("Parse(Source()): %v", err)
			}
			if !Equal(hitbox, reparsed) {
				t.Errorf("Parse(Source()) = %#v, want %#v", reparsed, hitbox)
			}
		})
	}
}

func TestDeepCompositeRoundTrip(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{1, 65, 5000} {
		var hitbox Hitbox = Box{Left: -1, Right: 1, Top: -1, Bottom: 1}
		for range depth {
			hitbox = Composite{Children: []Hitbox{None{}, hitbox}}
		}

		w := wire.NewWriter(0)
		Encode(w, hitbox)
		r := wire.NewReader(w.Bytes())
		decoded, err := Decode(r)
		if err != nil {
			t.Fatalf("depth %d: Decode: %v", depth, err)
		}
		if r.Remaining() != 0 {
			t.Errorf("depth %d: %d trailing bytes", depth, r.Remaining())
		}
		if !Equal(hitbox, decoded) {
			t.Errorf("depth %d: decoded tree differs", depth)
		}
		nodes, _ := Count(decoded)
		if want, _ := Count(hitbox); nodes != want {
			t.Errorf("depth %d: Count(decoded) = %d nodes, want %d", depth, nodes, want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		kind   bakeerr.Kind
		field  string
	}{
		{"unknown type", `{"type": "triangle"}`, bakeerr.InvalidGeometryType, "type"},
		{"unknown nested type", `{"type": "composite", "hitboxes": [{"type": "box", "left": 0, "right": 0, "top": 0, "bottom": 0}, {"type": "blob"}]}`,
			bakeerr.InvalidGeometryType, "hitboxes[1].type"},
		{"missing edge", `{"type": "box", "left": 0, "right": 1, "top": 0}`, bakeerr.MissingField, "bottom"},
		{"missing vertices", `{"type": "polygon"}`, bakeerr.MissingField, "vertices"},
		{"bad vertex", `{"type": "polygon", "vertices": [{"x": 1}]}`, bakeerr.MissingField, "vertices[0].y"},
		{"not an object", `[1, 2]`, bakeerr.MalformedInput, ""},
		{"radius type", `{"type": "circle", "center": {"x": 0, "y": 0}, "radius": "big"}`, bakeerr.MalformedInput, "radius"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(parseSource(t, test.source))
			var bakeErr *bakeerr.Error
			if !errors.As(err, &bakeErr) {
				t.Fatalf("Parse() error = %v, want *bakeerr.Error", err)
			}
			if bakeErr.Kind != test.kind || bakeErr.Field != test.field {
				t.Errorf("Parse() error = %v (kind %v, field %q), want kind %v field %q",
					err, bakeErr.Kind, bakeErr.Field, test.kind, test.field)
			}
		})
	}
}

func TestInvalidGeometryCarriesTag(t *testing.T) {
	t.Parallel()

	_, err := Parse(parseSource(t, `{"type": "Hexagon"}`))
	var bakeErr *bakeerr.Error
	if !errors.As(err, &bakeErr) || len(bakeErr.Values) != 1 || bakeErr.Values[0] != "Hexagon" {
		t.Errorf("Parse() error = %v, want the offending tag", err)
	}
}

func TestDefaultTypeIsNone(t *testing.T) {
	t.Parallel()

	hitbox, err := Parse(parseSource(t, `{}`))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := hitbox.(None); !ok {
		t.Errorf("Parse({}) = %#v, want None", hitbox)
	}
	hitbox, err = ParseOptional(parseSource(t, `{}`).Get("absent"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := hitbox.(None); !ok {
		t.Errorf("ParseOptional(absent) = %#v, want None", hitbox)
	}
}

func TestDecodeRejectsCorruptInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
		kind bakeerr.Kind
	}{
		{"unknown tag", []byte{'x'}, bakeerr.InvalidGeometryType},
		{"truncated box", append([]byte{'b'}, f32(1, 2)...), 0},
		{"huge polygon count", append([]byte{'p'}, u32(math.MaxUint32)...), 0},
		{"huge composite count", append([]byte{'?'}, u32(math.MaxUint32)...), 0},
		{"unfinished composite", append(append([]byte{'?'}, u32(2)...), 0, '?'), 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(wire.NewReader(test.data))
			if err == nil {
				t.Fatal("Decode() succeeded")
			}
			if bakeerr.KindOf(err) != test.kind {
				t.Errorf("KindOf(%v) = %v, want %v", err, bakeerr.KindOf(err), test.kind)
			}
		})
	}
}

func TestColliderFormats(t *testing.T) {
	t.Parallel()

	collider, err := ParseCollider(parseSource(t,
		`{"type": "hurtbox", "solid": true, "hitbox": {"type": "circle", "center": {"x": 1, "y": 2}, "radius": 3}}`),
		SpriteColliders)
	if err != nil {
		t.Fatal(err)
	}
	if !collider.Solid || collider.CCD {
		t.Errorf("flags = solid %v ccd %v, want true false", collider.Solid, collider.CCD)
	}

	w := wire.NewWriter(0)
	EncodeCollider(w, collider, SpriteColliders)
	want := append(u32(7), 1, 0)
	want = append(want, "hurtbox"...)
	want = append(want, 'c')
	want = append(want, f32(1, 2, 3)...)
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("sprite collider =\n% x\nwant\n% x", w.Bytes(), want)
	}

	w = wire.NewWriter(0)
	EncodeCollider(w, collider, LevelColliders)
	if got := w.Len(); got != len(want)-2 {
		t.Errorf("level collider length = %d, want %d", got, len(want)-2)
	}
	decoded, err := DecodeCollider(wire.NewReader(w.Bytes()), LevelColliders)
	if err != nil {
		t.Fatal(err)
	}
	if decoded.Type != "hurtbox" || decoded.Solid || !Equal(decoded.Hitbox, collider.Hitbox) {
		t.Errorf("DecodeCollider() = %#v", decoded)
	}
}

func TestParseScalarOrVec2(t *testing.T) {
	t.Parallel()

	root := parseSource(t, `{"a": 2, "b": {"x": 3, "y": 4}}`)
	tests := []struct {
		field string
		want  wire.Vec2
	}{
		{"a", wire.Vec2{X: 2, Y: 2}},
		{"b", wire.Vec2{X: 3, Y: 4}},
		{"c", wire.Vec2{X: 1, Y: 1}},
	}
	for _, test := range tests {
		got, err := ParseScalarOrVec2(root.Get(test.field), 1)
		if err != nil || got != test.want {
			t.Errorf("ParseScalarOrVec2(%s) = %v, %v; want %v", test.field, got, err, test.want)
		}
	}
}
