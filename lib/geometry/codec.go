// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"fmt"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/wire"
)

// Encode writes h in pre-order: the tag, the payload, then composite
// children in order.
func Encode(w *wire.Writer, h Hitbox) {
	if h == nil {
		h = None{}
	}
	w.Tag(h.Tag())
	switch typed := h.(type) {
	case None:
	case Box:
		w.Float32s(typed.Left, typed.Right, typed.Top, typed.Bottom)
	case Line:
		w.Vec2(typed.P1)
		w.Vec2(typed.P2)
	case OneWay:
		w.Vec2(typed.P1)
		w.Vec2(typed.P2)
	case Circle:
		w.Vec2(typed.Center)
		w.Float32(typed.Radius)
	case Polygon:
		w.Count32(len(typed.Vertices))
		for _, vertex := range typed.Vertices {
			w.Vec2(vertex)
		}
	case Composite:
		w.Count32(len(typed.Children))
		for _, child := range typed.Children {
			Encode(w, child)
		}
	}
}

// Decode reads one hitbox tree. Errors are also recorded on r.
//
// Nesting depth is limited only by the input: composites are tracked
// on an explicit stack, and every child count is checked against the
// bytes remaining before anything is allocated.
func Decode(r *wire.Reader) (Hitbox, error) {
	var stack []*pendingComposite
	for {
		node, count := decodeNode(r)
		if err := r.Err(); err != nil {
			return nil, err
		}
		if count > 0 {
			stack = append(stack, &pendingComposite{children: make([]Hitbox, count)})
			continue
		}

		// Attach the finished node, closing every composite it completes.
		for {
			if len(stack) == 0 {
				return node, nil
			}
			top := stack[len(stack)-1]
			top.children[top.filled] = node
			top.filled++
			if top.filled < len(top.children) {
				break
			}
			stack = stack[:len(stack)-1]
			node = Composite{Children: top.children}
		}
	}
}

// pendingComposite is a composite whose children are still being read.
type pendingComposite struct {
	children []Hitbox
	filled   int
}

// decodeNode reads one tag and its payload. For a composite with
// children it returns the child count and no node; the children follow.
func decodeNode(r *wire.Reader) (Hitbox, int) {
	offset := r.Offset()
	tag := r.Tag()
	if r.Err() != nil {
		return nil, 0
	}
	switch tag {
	case TagNone:
		return None{}, 0
	case TagBox:
		return Box{Left: r.Float32(), Right: r.Float32(), Top: r.Float32(), Bottom: r.Float32()}, 0
	case TagLine:
		return Line{P1: r.Vec2(), P2: r.Vec2()}, 0
	case TagOneWay:
		return OneWay{P1: r.Vec2(), P2: r.Vec2()}, 0
	case TagCircle:
		return Circle{Center: r.Vec2(), Radius: r.Float32()}, 0
	case TagPolygon:
		count := r.Count(r.Uint32(), 8)
		vertices := make([]wire.Vec2, count)
		for index := range vertices {
			vertices[index] = r.Vec2()
		}
		return Polygon{Vertices: vertices}, 0
	case TagComposite:
		count := r.Count(r.Uint32(), 1)
		if count == 0 {
			return Composite{Children: []Hitbox{}}, 0
		}
		return nil, count
	default:
		r.Fail(bakeerr.InvalidGeometry(fmt.Sprintf("@%d", offset), fmt.Sprintf("0x%02x", tag)))
		return nil, 0
	}
}
