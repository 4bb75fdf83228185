// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"strings"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/wire"
)

// Parse normalizes a hitbox description. The "type" field is matched
// case-insensitively and defaults to "none". An unknown type fails with
// InvalidGeometryType before anything is encoded.
func Parse(n document.Node) (Hitbox, error) {
	if _, err := n.Object(); err != nil {
		return nil, err
	}
	kind, err := n.Get("type").TextOr("none")
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(kind) {
	case "none":
		return None{}, nil
	case "box":
		return parseBox(n)
	case "line":
		p1, p2, err := parseSegment(n)
		if err != nil {
			return nil, err
		}
		return Line{P1: p1, P2: p2}, nil
	case "oneway":
		p1, p2, err := parseSegment(n)
		if err != nil {
			return nil, err
		}
		return OneWay{P1: p1, P2: p2}, nil
	case "circle":
		center, err := ParseVec2(n.Get("center"))
		if err != nil {
			return nil, err
		}
		radius, err := n.Get("radius").Float32()
		if err != nil {
			return nil, err
		}
		return Circle{Center: center, Radius: radius}, nil
	case "polygon":
		return parsePolygon(n)
	case "composite":
		return parseComposite(n)
	default:
		return nil, bakeerr.InvalidGeometry(n.Get("type").Path(), kind)
	}
}

// ParseOptional is Parse for fields that may be omitted. An absent node
// yields None.
func ParseOptional(n document.Node) (Hitbox, error) {
	if !n.Exists() {
		return None{}, nil
	}
	return Parse(n)
}

func parseBox(n document.Node) (Hitbox, error) {
	var (
		box    Box
		fields = []struct {
			name   string
			target *float32
		}{
			{"left", &box.Left},
			{"right", &box.Right},
			{"top", &box.Top},
			{"bottom", &box.Bottom},
		}
	)
	for _, field := range fields {
		value, err := n.Get(field.name).Float32()
		if err != nil {
			return nil, err
		}
		*field.target = value
	}
	return box, nil
}

func parseSegment(n document.Node) (wire.Vec2, wire.Vec2, error) {
	p1, err := ParseVec2(n.Get("p1"))
	if err != nil {
		return wire.Vec2{}, wire.Vec2{}, err
	}
	p2, err := ParseVec2(n.Get("p2"))
	if err != nil {
		return wire.Vec2{}, wire.Vec2{}, err
	}
	return p1, p2, nil
}

func parsePolygon(n document.Node) (Hitbox, error) {
	items, err := n.Get("vertices").Items()
	if err != nil {
		return nil, err
	}
	vertices := make([]wire.Vec2, len(items))
	for index, item := range items {
		if vertices[index], err = ParseVec2(item); err != nil {
			return nil, err
		}
	}
	return Polygon{Vertices: vertices}, nil
}

func parseComposite(n document.Node) (Hitbox, error) {
	items, err := n.Get("hitboxes").Items()
	if err != nil {
		return nil, err
	}
	children := make([]Hitbox, len(items))
	for index, item := range items {
		if children[index], err = Parse(item); err != nil {
			return nil, err
		}
	}
	return Composite{Children: children}, nil
}

// ParseVec2 reads a required {x, y} object.
func ParseVec2(n document.Node) (wire.Vec2, error) {
	if _, err := n.Object(); err != nil {
		return wire.Vec2{}, err
	}
	x, err := n.Get("x").Float32()
	if err != nil {
		return wire.Vec2{}, err
	}
	y, err := n.Get("y").Float32()
	if err != nil {
		return wire.Vec2{}, err
	}
	return wire.Vec2{X: x, Y: y}, nil
}

// ParseScalarOrVec2 reads a value given either as one number applied to
// both axes or as an {x, y} object, returning fallback on both axes
// when the field is absent.
func ParseScalarOrVec2(n document.Node, fallback float32) (wire.Vec2, error) {
	if !n.Exists() {
		return wire.Vec2{X: fallback, Y: fallback}, nil
	}
	if n.IsNumber() {
		value, err := n.Float32()
		if err != nil {
			return wire.Vec2{}, err
		}
		return wire.Vec2{X: value, Y: value}, nil
	}
	return ParseVec2(n)
}
