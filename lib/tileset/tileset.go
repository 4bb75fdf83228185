// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package tileset

import (
	"encoding/json"
	"fmt"

	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// Magic opens every tileset binary.
const Magic = "PlatEtileset"

// Solidity tags.
const (
	SolidityNone    byte = 0x00
	SolidityFull    byte = 'F'
	SolidityPartial byte = 'P'
	SoliditySlope   byte = 'S'
	SolidityComplex byte = 'C'
)

// SolidityTypes maps solidity type names to tags.
var SolidityTypes = wire.NewEnum("tile solidity type",
	wire.EnumValue{Name: "none", Tag: SolidityNone},
	wire.EnumValue{Name: "full", Tag: SolidityFull},
	wire.EnumValue{Name: "partial", Tag: SolidityPartial},
	wire.EnumValue{Name: "slope", Tag: SoliditySlope},
	wire.EnumValue{Name: "complex", Tag: SolidityComplex},
)

// Flip mask bits.
const (
	FlipNone       byte = 0
	FlipHorizontal byte = 1
	FlipVertical   byte = 2
	FlipBoth            = FlipHorizontal | FlipVertical
)

// Flips maps flip codes to masks.
var Flips = wire.NewEnum("tile flip",
	wire.EnumValue{Name: "", Tag: FlipNone},
	wire.EnumValue{Name: "H", Tag: FlipHorizontal},
	wire.EnumValue{Name: "V", Tag: FlipVertical},
	wire.EnumValue{Name: "HV", Tag: FlipBoth},
	wire.EnumValue{Name: "VH", Tag: FlipBoth},
	wire.EnumValue{Name: "BOTH", Tag: FlipBoth},
	wire.EnumValue{Name: "B", Tag: FlipBoth},
)

// Tileset is a normalized tileset description.
type Tileset struct {
	Name       string `json:"name"`
	Texture    string `json:"tilesheet"`
	TileWidth  uint16 `json:"tile_width"`
	TileHeight uint16 `json:"tile_height"`
	Tiles      []Tile `json:"tiles"`
}

// Tile is one tile: its animation and its collision behaviour.
type Tile struct {
	Frames        []Frame
	PropertyCount uint32
	Solidity      Solidity
}

// Frame shows the tile at sheet cell (X, Y) for Duration.
type Frame struct {
	X        uint16
	Y        uint16
	Duration float32
	Flip     byte
}

// Solidity describes how a tile collides. Which fields apply depends
// on Type.
type Solidity struct {
	Type byte

	// Position is the solid fraction for partial tiles and the height
	// at the left edge for slopes.
	Position float32

	// Vertical and TopLeft orient a partial tile.
	Vertical bool
	TopLeft  bool

	// Slope and Above shape a slope tile.
	Slope float32
	Above bool

	// Hitbox is the shape of a complex tile.
	Hitbox geometry.Hitbox
}

// Counts is the tileset header, less the tile dimensions.
type Counts struct {
	NameLength    uint32 `json:"name_length"`
	TextureLength uint32 `json:"texture_length"`
	Tiles         uint32 `json:"tiles"`
	Frames        uint32 `json:"frames"`
	Hitboxes      uint32 `json:"hitboxes"`
	Vertices      uint32 `json:"vertices"`
}

// Counts computes the header aggregates.
func (t *Tileset) Counts() Counts {
	counts := Counts{
		NameLength:    uint32(len(t.Name)),
		TextureLength: uint32(len(t.Texture)),
		Tiles:         uint32(len(t.Tiles)),
	}
	for _, tile := range t.Tiles {
		counts.Frames += uint32(len(tile.Frames))
		if tile.Solidity.Type == SolidityComplex {
			nodes, vertices := geometry.Count(tile.Solidity.Hitbox)
			counts.Hitboxes += 1 + nodes
			counts.Vertices += vertices
		}
	}
	return counts
}

// maxListedProperties bounds the placeholder list MarshalJSON writes
// for a decoded property count.
const maxListedProperties = 1 << 16

// MarshalJSON writes the tile in its source form. Only the number of
// properties survives baking, so they are written as nulls.
func (t Tile) MarshalJSON() ([]byte, error) {
	type frame struct {
		X        uint16  `json:"x"`
		Y        uint16  `json:"y"`
		Duration float32 `json:"duration"`
		Flip     string  `json:"flip,omitempty"`
	}
	frames := make([]frame, len(t.Frames))
	for index, f := range t.Frames {
		flip, _ := Flips.Name(f.Flip)
		frames[index] = frame{X: f.X, Y: f.Y, Duration: f.Duration, Flip: flip}
	}

	solidity := map[string]any{}
	name, _ := SolidityTypes.Name(t.Solidity.Type)
	solidity["type"] = name
	switch t.Solidity.Type {
	case SolidityPartial:
		solidity["position"] = t.Solidity.Position
		solidity["vertical"] = t.Solidity.Vertical
		solidity["topleft"] = t.Solidity.TopLeft
	case SoliditySlope:
		solidity["position"] = t.Solidity.Position
		solidity["slope"] = t.Solidity.Slope
		solidity["above"] = t.Solidity.Above
	case SolidityComplex:
		solidity["hitbox"] = geometry.Source(t.Solidity.Hitbox)
	}

	if t.PropertyCount > maxListedProperties {
		return nil, fmt.Errorf("tile has %d properties, too many to list", t.PropertyCount)
	}
	return json.Marshal(struct {
		Frames     []frame          `json:"frames"`
		Properties []map[string]any `json:"properties"`
		Solidity   map[string]any   `json:"solidity"`
	}{frames, make([]map[string]any, t.PropertyCount), solidity})
}
