// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package tileset

import (
	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// Encode writes the magic, the header computed by Counts, and the body.
func Encode(w *wire.Writer, t *Tileset) error {
	counts := t.Counts()

	w.Magic(Magic)
	w.Uint32(counts.NameLength)
	w.Uint32(counts.TextureLength)
	w.Uint16(t.TileWidth)
	w.Uint16(t.TileHeight)
	w.Uint32(counts.Tiles)
	w.Uint32(counts.Frames)
	w.Uint32(counts.Hitboxes)
	w.Uint32(counts.Vertices)

	w.RawString(t.Name)
	w.RawString(t.Texture)

	for _, tile := range t.Tiles {
		w.Count32(len(tile.Frames))
		w.Uint32(tile.PropertyCount)
		encodeSolidity(w, tile.Solidity)
		for _, frame := range tile.Frames {
			w.Uint16(frame.X)
			w.Uint16(frame.Y)
			w.Float32(frame.Duration)
			w.Uint8(frame.Flip)
		}
	}
	return w.Err()
}

func encodeSolidity(w *wire.Writer, solidity Solidity) {
	w.Tag(solidity.Type)
	switch solidity.Type {
	case SolidityPartial:
		w.Float32(solidity.Position)
		w.Bool(solidity.Vertical)
		w.Bool(solidity.TopLeft)
	case SoliditySlope:
		w.Float32(solidity.Position)
		w.Float32(solidity.Slope)
		w.Bool(solidity.Above)
	case SolidityComplex:
		geometry.Encode(w, solidity.Hitbox)
	}
}

// Bake parses and encodes a tileset document.
func Bake(root document.Node) ([]byte, error) {
	tileset, err := Parse(root)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(1024)
	if err := Encode(w, tileset); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode reads a tileset binary and returns it with the stored header.
func Decode(data []byte) (*Tileset, Counts, error) {
	r := wire.NewReader(data)
	if !r.Magic(Magic) {
		return nil, Counts{}, bakeerr.Malformed("", "not a tileset: bad magic")
	}

	var counts Counts
	tileset := &Tileset{}
	counts.NameLength = r.Uint32()
	counts.TextureLength = r.Uint32()
	tileset.TileWidth = r.Uint16()
	tileset.TileHeight = r.Uint16()
	counts.Tiles = r.Uint32()
	counts.Frames = r.Uint32()
	counts.Hitboxes = r.Uint32()
	counts.Vertices = r.Uint32()

	tileset.Name = r.RawString(counts.NameLength)
	tileset.Texture = r.RawString(counts.TextureLength)

	tileset.Tiles = make([]Tile, r.Count(counts.Tiles, 9))
	for index := range tileset.Tiles {
		tile := &tileset.Tiles[index]
		frames := r.Uint32()
		tile.PropertyCount = r.Uint32()
		solidity, err := decodeSolidity(r)
		if err != nil {
			return nil, counts, err
		}
		tile.Solidity = solidity
		tile.Frames = make([]Frame, r.Count(frames, 9))
		for frame := range tile.Frames {
			tile.Frames[frame] = Frame{X: r.Uint16(), Y: r.Uint16(), Duration: r.Float32(), Flip: r.Uint8()}
		}
	}

	if err := r.Err(); err != nil {
		return nil, counts, err
	}
	if r.Remaining() != 0 {
		return nil, counts, bakeerr.Malformed("", "%d trailing bytes after tileset", r.Remaining())
	}
	return tileset, counts, nil
}

func decodeSolidity(r *wire.Reader) (Solidity, error) {
	solidity := Solidity{Type: r.Tag()}
	switch solidity.Type {
	case SolidityNone, SolidityFull:
	case SolidityPartial:
		solidity.Position = r.Float32()
		solidity.Vertical = r.Bool()
		solidity.TopLeft = r.Bool()
	case SoliditySlope:
		solidity.Position = r.Float32()
		solidity.Slope = r.Float32()
		solidity.Above = r.Bool()
	case SolidityComplex:
		hitbox, err := geometry.Decode(r)
		if err != nil {
			return solidity, err
		}
		solidity.Hitbox = hitbox
	default:
		if r.Err() == nil {
			r.Fail(bakeerr.UnknownEnum("", "tile solidity type", string(solidity.Type)))
		}
	}
	return solidity, r.Err()
}
