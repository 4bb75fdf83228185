// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"encoding/json"

	"github.com/plate-engine/platebake/lib/wire"
)

// Source returns h in its source form, the shape Parse accepts. The
// inspect command prints decoded assets through it, so its output can
// be baked again.
func Source(h Hitbox) map[string]any {
	if h == nil {
		h = None{}
	}
	out := map[string]any{"type": h.Kind()}
	switch typed := h.(type) {
	case Box:
		out["left"] = typed.Left
		out["right"] = typed.Right
		out["top"] = typed.Top
		out["bottom"] = typed.Bottom
	case Line:
		out["p1"] = typed.P1
		out["p2"] = typed.P2
	case OneWay:
		out["p1"] = typed.P1
		out["p2"] = typed.P2
	case Circle:
		out["center"] = typed.Center
		out["radius"] = typed.Radius
	case Polygon:
		vertices := typed.Vertices
		if vertices == nil {
			vertices = []wire.Vec2{}
		}
		out["vertices"] = vertices
	case Composite:
		children := make([]map[string]any, len(typed.Children))
		for index, child := range typed.Children {
			children[index] = Source(child)
		}
		out["hitboxes"] = children
	}
	return out
}

// MarshalJSON encodes the collider in its source form.
func (c Collider) MarshalJSON() ([]byte, error) {
	type plain struct {
		Type   string         `json:"type"`
		Hitbox map[string]any `json:"hitbox"`
		Solid  bool           `json:"solid,omitempty"`
		CCD    bool           `json:"ccd,omitempty"`
	}
	return json.Marshal(plain{Type: c.Type, Hitbox: Source(c.Hitbox), Solid: c.Solid, CCD: c.CCD})
}
