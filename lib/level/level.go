// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"encoding/json"

	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// Magic opens every level binary.
const Magic = "PlatElevel"

// Level is a normalized level description.
type Level struct {
	Name         string        `json:"name"`
	Boundary     AABB          `json:"boundary"`
	Tilemaps     []Tilemap     `json:"tilemaps"`
	Objects      []Object      `json:"objects"`
	Entities     []Entity      `json:"entities"`
	Areas        []Area        `json:"areas"`
	EdgeTriggers []EdgeTrigger `json:"edge_triggers"`
}

// AABB is an axis-aligned box given by its edges.
type AABB struct {
	Left   float32 `json:"left"`
	Right  float32 `json:"right"`
	Top    float32 `json:"top"`
	Bottom float32 `json:"bottom"`
}

// Rect is a texture clip in pixels.
type Rect struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// Tilemap is a grid of tile indices drawn with one tileset. Tiles is
// row-major with Width*Height entries.
type Tilemap struct {
	Tileset  string
	Width    uint32
	Height   uint32
	ZOrder   int32
	Offset   wire.Vec2
	Scale    wire.Vec2
	Parallax wire.Vec2
	Solid    bool
	Tiles    []uint16
}

// Rows returns the grid as a list of rows.
func (t Tilemap) Rows() [][]uint16 {
	rows := make([][]uint16, 0, t.Height)
	for row := uint32(0); row < t.Height; row++ {
		start := row * t.Width
		if int64(start)+int64(t.Width) > int64(len(t.Tiles)) {
			break
		}
		rows = append(rows, t.Tiles[start:start+t.Width])
	}
	return rows
}

// MarshalJSON writes the tilemap in its source form, with an inline
// grid.
func (t Tilemap) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Tileset  string     `json:"tileset"`
		ZOrder   int32      `json:"z_order"`
		Offset   wire.Vec2  `json:"offset"`
		Scale    wire.Vec2  `json:"scale"`
		Parallax wire.Vec2  `json:"parallax"`
		Solid    bool       `json:"solid"`
		Tiles    [][]uint16 `json:"tiles"`
	}{t.Tileset, t.ZOrder, t.Offset, t.Scale, t.Parallax, t.Solid, t.Rows()})
}

// Object is a static textured scene object.
type Object struct {
	Texture   string              `json:"texture"`
	Clip      Rect                `json:"clip"`
	Display   wire.Vec2           `json:"display"`
	Position  wire.Vec2           `json:"position"`
	ZOrder    int32               `json:"z_order"`
	Rotation  float32             `json:"rotation"`
	Scale     wire.Vec2           `json:"scale"`
	Colliders []geometry.Collider `json:"collision"`
}

// Entity is a spawn point for an entity class.
type Entity struct {
	Location wire.Vec2 `json:"location"`
	Class    string    `json:"class"`
}

// Area is a prioritized region of the level, drawn in the editor in
// Color.
type Area struct {
	Boundary AABB     `json:"boundary"`
	Priority int32    `json:"priority"`
	Color    wire.RGB `json:"-"`
}

// MarshalJSON writes the area with its colour as "#rrggbb".
func (a Area) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Boundary AABB   `json:"boundary"`
		Priority int32  `json:"priority"`
		Color    string `json:"ui_color"`
	}{a.Boundary, a.Priority, a.Color.String()})
}

// Edge trigger sides.
const (
	SideTop    byte = 't'
	SideBottom byte = 'b'
	SideLeft   byte = 'l'
	SideRight  byte = 'r'
)

// Sides maps side names to their wire tags.
var Sides = wire.NewEnum("edge trigger side",
	wire.EnumValue{Name: "top", Tag: SideTop},
	wire.EnumValue{Name: "bottom", Tag: SideBottom},
	wire.EnumValue{Name: "left", Tag: SideLeft},
	wire.EnumValue{Name: "right", Tag: SideRight},
	wire.EnumValue{Name: "t", Tag: SideTop},
	wire.EnumValue{Name: "b", Tag: SideBottom},
	wire.EnumValue{Name: "l", Tag: SideLeft},
	wire.EnumValue{Name: "r", Tag: SideRight},
)

// EdgeTrigger fires when an entity crosses a span of a level edge.
type EdgeTrigger struct {
	Side       byte
	Position   float32
	Size       float32
	Strictness float32
}

// MarshalJSON writes the side by name.
func (e EdgeTrigger) MarshalJSON() ([]byte, error) {
	side, ok := Sides.Name(e.Side)
	if !ok {
		side = string(e.Side)
	}
	return json.Marshal(struct {
		Side       string  `json:"side"`
		Position   float32 `json:"position"`
		Size       float32 `json:"size"`
		Strictness float32 `json:"strictness"`
	}{side, e.Position, e.Size, e.Strictness})
}

// Counts is the level header, less the boundary.
type Counts struct {
	NameLength     uint32 `json:"name_length"`
	Tilemaps       uint32 `json:"tilemaps"`
	Objects        uint32 `json:"objects"`
	Entities       uint32 `json:"entities"`
	Areas          uint32 `json:"areas"`
	EdgeTriggers   uint32 `json:"edge_triggers"`
	Tiles          uint32 `json:"tiles"`
	Vertices       uint32 `json:"vertices"`
	NestedHitboxes uint32 `json:"nested_hitboxes"`
}

// Counts computes the header aggregates.
func (l *Level) Counts() Counts {
	counts := Counts{
		NameLength:   uint32(len(l.Name)),
		Tilemaps:     uint32(len(l.Tilemaps)),
		Objects:      uint32(len(l.Objects)),
		Entities:     uint32(len(l.Entities)),
		Areas:        uint32(len(l.Areas)),
		EdgeTriggers: uint32(len(l.EdgeTriggers)),
	}
	for _, tilemap := range l.Tilemaps {
		counts.Tiles += tilemap.Width * tilemap.Height
	}
	var tally geometry.Tally
	for _, object := range l.Objects {
		for _, collider := range object.Colliders {
			tally.Add(collider.Hitbox)
		}
	}
	counts.Vertices = tally.Vertices
	counts.NestedHitboxes = tally.Nodes
	return counts
}
