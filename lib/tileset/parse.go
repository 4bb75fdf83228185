// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package tileset

import (
	"fmt"
	"strings"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/geometry"
)

// Parse normalizes a tileset document.
func Parse(root document.Node) (*Tileset, error) {
	if _, err := root.Object(); err != nil {
		return nil, err
	}

	tileset := &Tileset{}
	var err error
	if tileset.Name, err = root.Get("name").Text(); err != nil {
		return nil, err
	}
	if tileset.Texture, err = root.Get("tilesheet").Text(); err != nil {
		return nil, err
	}
	if tileset.TileWidth, err = root.Get("tile_width").Uint16(); err != nil {
		return nil, err
	}
	if tileset.TileHeight, err = root.Get("tile_height").Uint16(); err != nil {
		return nil, err
	}

	items, err := root.Get("tiles").Items()
	if err != nil {
		return nil, err
	}
	tileset.Tiles = make([]Tile, len(items))
	for index, item := range items {
		if tileset.Tiles[index], err = parseTile(item); err != nil {
			return nil, err
		}
	}
	if err := tileset.Validate(); err != nil {
		return nil, err
	}
	return tileset, nil
}

// Validate checks that every solidity tag and flip mask is one the
// engine understands.
func (t *Tileset) Validate() error {
	var issues bakeerr.Issues
	for index, tile := range t.Tiles {
		if _, ok := SolidityTypes.Name(tile.Solidity.Type); !ok {
			issues.Add(bakeerr.UnknownEnum(fmt.Sprintf("tiles[%d].solidity.type", index),
				"tile solidity type", string(tile.Solidity.Type)))
		}
		for frameIndex, frame := range tile.Frames {
			if frame.Flip > FlipBoth {
				issues.Add(bakeerr.UnknownEnum(fmt.Sprintf("tiles[%d].frames[%d].flip", index, frameIndex),
					"tile flip", fmt.Sprint(frame.Flip)))
			}
		}
	}
	return issues.Err()
}

func parseTile(n document.Node) (Tile, error) {
	var tile Tile
	if _, err := n.Object(); err != nil {
		return tile, err
	}

	frames, err := n.Get("frames").Items()
	if err != nil {
		return tile, err
	}
	tile.Frames = make([]Frame, len(frames))
	for index, item := range frames {
		if tile.Frames[index], err = parseFrame(item); err != nil {
			return tile, err
		}
	}

	properties, err := n.Get("properties").OptionalItems()
	if err != nil {
		return tile, err
	}
	tile.PropertyCount = uint32(len(properties))

	tile.Solidity, err = parseSolidity(n.Get("solidity"))
	return tile, err
}

func parseFrame(n document.Node) (Frame, error) {
	var frame Frame
	if _, err := n.Object(); err != nil {
		return frame, err
	}
	var err error
	if frame.X, err = n.Get("x").Uint16(); err != nil {
		return frame, err
	}
	if frame.Y, err = n.Get("y").Uint16(); err != nil {
		return frame, err
	}
	if frame.Duration, err = n.Get("duration").Float32Or(1); err != nil {
		return frame, err
	}
	flip, err := n.Get("flip").TextOr("")
	if err != nil {
		return frame, err
	}
	frame.Flip, err = Flips.Tag(n.Get("flip").Path(), strings.TrimSpace(flip))
	return frame, err
}

// parseSolidity reads an optional solidity record. Absent solidity and
// a record without "type" are both none.
func parseSolidity(n document.Node) (Solidity, error) {
	var solidity Solidity
	if !n.Exists() {
		return solidity, nil
	}
	if _, err := n.Object(); err != nil {
		return solidity, err
	}
	name, err := n.Get("type").TextOr("none")
	if err != nil {
		return solidity, err
	}
	if solidity.Type, err = SolidityTypes.Tag(n.Get("type").Path(), name); err != nil {
		return solidity, err
	}

	switch solidity.Type {
	case SolidityPartial:
		if solidity.Position, err = n.Get("position").Float32(); err != nil {
			return solidity, err
		}
		if solidity.Vertical, err = n.Get("vertical").BoolOr(false); err != nil {
			return solidity, err
		}
		solidity.TopLeft, err = n.Get("topleft").BoolOr(false)
	case SoliditySlope:
		if solidity.Position, err = n.Get("position").Float32(); err != nil {
			return solidity, err
		}
		if solidity.Slope, err = n.Get("slope").Float32(); err != nil {
			return solidity, err
		}
		solidity.Above, err = n.Get("above").BoolOr(false)
	case SolidityComplex:
		solidity.Hitbox, err = geometry.Parse(n.Get("hitbox"))
	}
	return solidity, err
}
