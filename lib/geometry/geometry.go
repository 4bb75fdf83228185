// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"github.com/plate-engine/platebake/lib/wire"
)

// Wire tags.
const (
	TagNone      byte = 0x00
	TagBox       byte = 'b'
	TagLine      byte = 'l'
	TagOneWay    byte = 'o'
	TagCircle    byte = 'c'
	TagPolygon   byte = 'p'
	TagComposite byte = '?'
)

// Hitbox is a node of a hitbox tree. The set of implementations is
// closed.
type Hitbox interface {
	// Tag returns the wire tag of the variant.
	Tag() byte

	// Kind returns the source type name ("box", "composite").
	Kind() string

	hitbox()
}

// None is the empty hitbox.
type None struct{}

// Box is an axis-aligned rectangle given by its edges.
type Box struct {
	Left, Right, Top, Bottom float32
}

// Line is a segment that collides from both sides.
type Line struct {
	P1, P2 wire.Vec2
}

// OneWay is a segment that only collides from one side.
type OneWay struct {
	P1, P2 wire.Vec2
}

// Circle is a disc.
type Circle struct {
	Center wire.Vec2
	Radius float32
}

// Polygon is a closed polygon given by its vertices in order.
type Polygon struct {
	Vertices []wire.Vec2
}

// Composite groups child hitboxes.
type Composite struct {
	Children []Hitbox
}

func (None) Tag() byte      { return TagNone }
func (Box) Tag() byte       { return TagBox }
func (Line) Tag() byte      { return TagLine }
func (OneWay) Tag() byte    { return TagOneWay }
func (Circle) Tag() byte    { return TagCircle }
func (Polygon) Tag() byte   { return TagPolygon }
func (Composite) Tag() byte { return TagComposite }

func (None) Kind() string      { return "none" }
func (Box) Kind() string       { return "box" }
func (Line) Kind() string      { return "line" }
func (OneWay) Kind() string    { return "oneway" }
func (Circle) Kind() string    { return "circle" }
func (Polygon) Kind() string   { return "polygon" }
func (Composite) Kind() string { return "composite" }

func (None) hitbox()      {}
func (Box) hitbox()       {}
func (Line) hitbox()      {}
func (OneWay) hitbox()    {}
func (Circle) hitbox()    {}
func (Polygon) hitbox()   {}
func (Composite) hitbox() {}

// Count returns the nested hitbox and vertex totals for h under the
// children-only rule. A nil Hitbox counts as None.
func Count(h Hitbox) (nodes, vertices uint32) {
	switch typed := h.(type) {
	case Polygon:
		return 1, uint32(len(typed.Vertices))
	case Composite:
		nodes = uint32(len(typed.Children))
		for _, child := range typed.Children {
			childNodes, childVertices := Count(child)
			nodes += childNodes
			vertices += childVertices
		}
		return nodes, vertices
	default:
		return 0, 0
	}
}

// Tally accumulates Count over many hitboxes.
type Tally struct {
	Nodes    uint32
	Vertices uint32
}

// Add counts h into the tally.
func (t *Tally) Add(h Hitbox) {
	nodes, vertices := Count(h)
	t.Nodes += nodes
	t.Vertices += vertices
}

// Equal reports whether two hitbox trees are identical, variant by
// variant and child by child.
func Equal(a, b Hitbox) bool {
	if a == nil {
		a = None{}
	}
	if b == nil {
		b = None{}
	}
	switch left := a.(type) {
	case Polygon:
		right, ok := b.(Polygon)
		if !ok || len(left.Vertices) != len(right.Vertices) {
			return false
		}
		for index := range left.Vertices {
			if left.Vertices[index] != right.Vertices[index] {
				return false
			}
		}
		return true
	case Composite:
		right, ok := b.(Composite)
		if !ok || len(left.Children) != len(right.Children) {
			return false
		}
		for index := range left.Children {
			if !Equal(left.Children[index], right.Children[index]) {
				return false
			}
		}
		return true
	default:
		return a == b
	}
}
