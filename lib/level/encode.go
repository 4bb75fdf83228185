// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"
	"io"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// Encode writes the magic, the header computed by Counts, and the body.
func Encode(w *wire.Writer, l *Level) error {
	counts := l.Counts()

	w.Magic(Magic)
	w.Uint32(counts.NameLength)
	writeAABB(w, l.Boundary)
	w.Uint32(counts.Tilemaps)
	w.Uint32(counts.Objects)
	w.Uint32(counts.Entities)
	w.Uint32(counts.Areas)
	w.Uint32(counts.EdgeTriggers)
	w.Uint32(counts.Tiles)
	w.Uint32(counts.Vertices)
	w.Uint32(counts.NestedHitboxes)

	w.RawString(l.Name)

	for _, tilemap := range l.Tilemaps {
		w.Count32(len(tilemap.Tileset))
		w.Uint32(tilemap.Width)
		w.Uint32(tilemap.Height)
		w.Int32(tilemap.ZOrder)
		w.Vec2(tilemap.Offset)
		w.Vec2(tilemap.Scale)
		w.Vec2(tilemap.Parallax)
		w.Bool(tilemap.Solid)
		w.RawString(tilemap.Tileset)
		for _, tile := range tilemap.Tiles {
			w.Uint16(tile)
		}
	}

	for _, object := range l.Objects {
		w.Count32(len(object.Texture))
		w.Uint32(object.Clip.X)
		w.Uint32(object.Clip.Y)
		w.Uint32(object.Clip.W)
		w.Uint32(object.Clip.H)
		w.Vec2(object.Display)
		w.Vec2(object.Position)
		w.Int32(object.ZOrder)
		w.Float32(object.Rotation)
		w.Vec2(object.Scale)
		w.Count32(len(object.Colliders))
		w.RawString(object.Texture)
		for _, collider := range object.Colliders {
			geometry.EncodeCollider(w, collider, geometry.LevelColliders)
		}
	}

	for _, entity := range l.Entities {
		w.Vec2(entity.Location)
		w.String32(entity.Class)
	}

	for _, area := range l.Areas {
		writeAABB(w, area.Boundary)
		w.Int32(area.Priority)
		w.RGB(area.Color)
	}

	for _, trigger := range l.EdgeTriggers {
		w.Tag(trigger.Side)
		w.Float32s(trigger.Position, trigger.Size, trigger.Strictness)
	}

	return w.Err()
}

func writeAABB(w *wire.Writer, box AABB) {
	w.Float32s(box.Left, box.Right, box.Top, box.Bottom)
}

func readAABB(r *wire.Reader) AABB {
	return AABB{Left: r.Float32(), Right: r.Float32(), Top: r.Float32(), Bottom: r.Float32()}
}

// Bake parses, validates, and encodes a level document.
func Bake(root document.Node, options ParseOptions) ([]byte, error) {
	level, err := Parse(root, options)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(4096)
	if err := Encode(w, level); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode reads a level binary and returns it with the stored header.
func Decode(data []byte) (*Level, Counts, error) {
	r := wire.NewReader(data)
	if !r.Magic(Magic) {
		return nil, Counts{}, bakeerr.Malformed("", "not a level: bad magic")
	}

	var counts Counts
	level := &Level{}
	counts.NameLength = r.Uint32()
	level.Boundary = readAABB(r)
	for _, field := range []*uint32{
		&counts.Tilemaps, &counts.Objects, &counts.Entities, &counts.Areas,
		&counts.EdgeTriggers, &counts.Tiles, &counts.Vertices, &counts.NestedHitboxes,
	} {
		*field = r.Uint32()
	}
	level.Name = r.RawString(counts.NameLength)

	level.Tilemaps = make([]Tilemap, r.Count(counts.Tilemaps, 41))
	for index := range level.Tilemaps {
		tilemap := &level.Tilemaps[index]
		tilesetLength := r.Uint32()
		tilemap.Width = r.Uint32()
		tilemap.Height = r.Uint32()
		tilemap.ZOrder = r.Int32()
		tilemap.Offset = r.Vec2()
		tilemap.Scale = r.Vec2()
		tilemap.Parallax = r.Vec2()
		tilemap.Solid = r.Bool()
		tilemap.Tileset = r.RawString(tilesetLength)
		cells := uint64(tilemap.Width) * uint64(tilemap.Height)
		if cells > uint64(r.Remaining())/2 {
			r.Fail(fmt.Errorf("tilemap %d declares %d tiles past the end of input: %w", index, cells, io.ErrUnexpectedEOF))
			break
		}
		tilemap.Tiles = make([]uint16, cells)
		for cell := range tilemap.Tiles {
			tilemap.Tiles[cell] = r.Uint16()
		}
	}

	level.Objects = make([]Object, r.Count(counts.Objects, 56))
	for index := range level.Objects {
		object := &level.Objects[index]
		textureLength := r.Uint32()
		object.Clip = Rect{X: r.Uint32(), Y: r.Uint32(), W: r.Uint32(), H: r.Uint32()}
		object.Display = r.Vec2()
		object.Position = r.Vec2()
		object.ZOrder = r.Int32()
		object.Rotation = r.Float32()
		object.Scale = r.Vec2()
		colliders := r.Uint32()
		object.Texture = r.RawString(textureLength)
		object.Colliders = make([]geometry.Collider, r.Count(colliders, 5))
		for collider := range object.Colliders {
			decoded, err := geometry.DecodeCollider(r, geometry.LevelColliders)
			if err != nil {
				return nil, counts, err
			}
			object.Colliders[collider] = decoded
		}
	}

	level.Entities = make([]Entity, r.Count(counts.Entities, 12))
	for index := range level.Entities {
		level.Entities[index].Location = r.Vec2()
		level.Entities[index].Class = r.String32()
	}

	level.Areas = make([]Area, r.Count(counts.Areas, 23))
	for index := range level.Areas {
		level.Areas[index] = Area{Boundary: readAABB(r), Priority: r.Int32(), Color: r.RGB()}
	}

	level.EdgeTriggers = make([]EdgeTrigger, r.Count(counts.EdgeTriggers, 13))
	for index := range level.EdgeTriggers {
		level.EdgeTriggers[index] = EdgeTrigger{
			Side:       r.Tag(),
			Position:   r.Float32(),
			Size:       r.Float32(),
			Strictness: r.Float32(),
		}
	}

	if err := r.Err(); err != nil {
		return nil, counts, err
	}
	if r.Remaining() != 0 {
		return nil, counts, bakeerr.Malformed("", "%d trailing bytes after level", r.Remaining())
	}
	return level, counts, nil
}
