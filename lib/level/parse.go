// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// ParseOptions configures level parsing.
type ParseOptions struct {
	// Sources resolves "tmx" paths of imported tilemaps. Nil disables
	// TMX import.
	Sources fs.FS
}

// Parse normalizes a level document and validates it.
func Parse(root document.Node, options ParseOptions) (*Level, error) {
	if _, err := root.Object(); err != nil {
		return nil, err
	}

	level := &Level{}
	var err error
	if level.Name, err = root.Get("name").Text(); err != nil {
		return nil, err
	}
	if level.Boundary, err = parseAABB(root.Get("boundary")); err != nil {
		return nil, err
	}

	tilemaps, err := root.Get("tilemaps").OptionalItems()
	if err != nil {
		return nil, err
	}
	level.Tilemaps = make([]Tilemap, len(tilemaps))
	for index, item := range tilemaps {
		if level.Tilemaps[index], err = parseTilemap(item, options); err != nil {
			return nil, err
		}
	}

	objects, err := root.Get("objects").OptionalItems()
	if err != nil {
		return nil, err
	}
	level.Objects = make([]Object, len(objects))
	for index, item := range objects {
		if level.Objects[index], err = parseObject(item); err != nil {
			return nil, err
		}
	}

	entities, err := root.Get("entities").OptionalItems()
	if err != nil {
		return nil, err
	}
	level.Entities = make([]Entity, len(entities))
	for index, item := range entities {
		entity := &level.Entities[index]
		if _, err := item.Object(); err != nil {
			return nil, err
		}
		if entity.Location, err = geometry.ParseVec2(item.Get("location")); err != nil {
			return nil, err
		}
		if entity.Class, err = item.Get("class").Text(); err != nil {
			return nil, err
		}
	}

	areas, err := root.Get("areas").OptionalItems()
	if err != nil {
		return nil, err
	}
	level.Areas = make([]Area, len(areas))
	for index, item := range areas {
		if level.Areas[index], err = parseArea(item); err != nil {
			return nil, err
		}
	}

	triggers, err := root.Get("edge_triggers").OptionalItems()
	if err != nil {
		return nil, err
	}
	level.EdgeTriggers = make([]EdgeTrigger, len(triggers))
	for index, item := range triggers {
		if level.EdgeTriggers[index], err = parseEdgeTrigger(item); err != nil {
			return nil, err
		}
	}

	if err := level.Validate(); err != nil {
		return nil, err
	}
	return level, nil
}

func parseAABB(n document.Node) (AABB, error) {
	var box AABB
	if _, err := n.Object(); err != nil {
		return box, err
	}
	for _, field := range []struct {
		name   string
		target *float32
	}{
		{"left", &box.Left},
		{"right", &box.Right},
		{"top", &box.Top},
		{"bottom", &box.Bottom},
	} {
		value, err := n.Get(field.name).Float32()
		if err != nil {
			return box, err
		}
		*field.target = value
	}
	return box, nil
}

func parseTilemap(n document.Node, options ParseOptions) (Tilemap, error) {
	var tilemap Tilemap
	if _, err := n.Object(); err != nil {
		return tilemap, err
	}
	var err error
	if tilemap.Tileset, err = n.Get("tileset").Text(); err != nil {
		return tilemap, err
	}
	if tilemap.ZOrder, err = n.Get("z_order").Int32(); err != nil {
		return tilemap, err
	}
	if tilemap.Offset, err = geometry.ParseVec2(n.Get("offset")); err != nil {
		return tilemap, err
	}
	if tilemap.Scale, err = geometry.ParseScalarOrVec2(n.Get("scale"), 1); err != nil {
		return tilemap, err
	}
	if tilemap.Parallax, err = geometry.ParseScalarOrVec2(n.Get("parallax"), 1); err != nil {
		return tilemap, err
	}
	if tilemap.Solid, err = n.Get("solid").BoolOr(false); err != nil {
		return tilemap, err
	}

	inline, imported := n.Get("tiles"), n.Get("tmx")
	switch {
	case inline.Exists() && imported.Exists():
		return tilemap, bakeerr.Malformed(n.Path(), "tilemap gives both tiles and tmx")
	case imported.Exists():
		err = importTMX(n, &tilemap, options.Sources)
	default:
		err = parseGrid(inline, &tilemap)
	}
	return tilemap, err
}

// parseGrid reads a list of rows. An empty grid and rows of differing
// length are both IrregularShape.
func parseGrid(n document.Node, tilemap *Tilemap) error {
	rows, err := n.Items()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return bakeerr.Irregular(n.Path(), "tilemap has no rows")
	}

	var width int
	for index, row := range rows {
		cells, err := row.Items()
		if err != nil {
			return err
		}
		if index == 0 {
			width = len(cells)
			tilemap.Tiles = make([]uint16, 0, width*len(rows))
		} else if len(cells) != width {
			return bakeerr.Irregular(row.Path(), "row has %d tiles, row 0 has %d", len(cells), width)
		}
		for _, cell := range cells {
			tile, err := cell.Uint16()
			if err != nil {
				return err
			}
			tilemap.Tiles = append(tilemap.Tiles, tile)
		}
	}
	if width == 0 {
		return bakeerr.Irregular(n.Path(), "tilemap rows are empty")
	}
	if uint64(width) > math.MaxUint32 || uint64(len(rows)) > math.MaxUint32 {
		return bakeerr.New(bakeerr.OutOfRange, n.Path(), "tilemap is too large")
	}
	tilemap.Width = uint32(width)
	tilemap.Height = uint32(len(rows))
	return nil
}

func parseObject(n document.Node) (Object, error) {
	var object Object
	if _, err := n.Object(); err != nil {
		return object, err
	}
	var err error
	if object.Texture, err = n.Get("texture").Text(); err != nil {
		return object, err
	}
	if object.Clip, err = parseRect(n.Get("clip")); err != nil {
		return object, err
	}
	if object.Display, err = geometry.ParseVec2(n.Get("display")); err != nil {
		return object, err
	}
	if object.Position, err = geometry.ParseVec2(n.Get("position")); err != nil {
		return object, err
	}
	if object.ZOrder, err = n.Get("z_order").Int32(); err != nil {
		return object, err
	}
	if object.Rotation, err = n.Get("rotation").Float32Or(0); err != nil {
		return object, err
	}
	if object.Scale, err = parseScale(n.Get("scale")); err != nil {
		return object, err
	}
	if object.Colliders, err = geometry.ParseColliders(n.Get("collision"), geometry.LevelColliders); err != nil {
		return object, err
	}
	return object, nil
}

// parseScale accepts a number for both axes, or an object whose x and y
// each default to 1.
func parseScale(n document.Node) (wire.Vec2, error) {
	if !n.Exists() || n.IsNumber() {
		return geometry.ParseScalarOrVec2(n, 1)
	}
	if _, err := n.Object(); err != nil {
		return wire.Vec2{}, err
	}
	x, err := n.Get("x").Float32Or(1)
	if err != nil {
		return wire.Vec2{}, err
	}
	y, err := n.Get("y").Float32Or(1)
	if err != nil {
		return wire.Vec2{}, err
	}
	return wire.Vec2{X: x, Y: y}, nil
}

func parseRect(n document.Node) (Rect, error) {
	var rect Rect
	if _, err := n.Object(); err != nil {
		return rect, err
	}
	for _, field := range []struct {
		name   string
		target *uint32
	}{
		{"x", &rect.X},
		{"y", &rect.Y},
		{"w", &rect.W},
		{"h", &rect.H},
	} {
		value, err := n.Get(field.name).Uint32()
		if err != nil {
			return rect, err
		}
		*field.target = value
	}
	return rect, nil
}

func parseArea(n document.Node) (Area, error) {
	var area Area
	if _, err := n.Object(); err != nil {
		return area, err
	}
	var err error
	if area.Boundary, err = parseAABB(n.Get("boundary")); err != nil {
		return area, err
	}
	if area.Priority, err = n.Get("priority").Int32(); err != nil {
		return area, err
	}
	color, err := n.Get("ui_color").Text()
	if err != nil {
		return area, err
	}
	area.Color, err = wire.ParseRGB(n.Get("ui_color").Path(), color)
	return area, err
}

func parseEdgeTrigger(n document.Node) (EdgeTrigger, error) {
	var trigger EdgeTrigger
	if _, err := n.Object(); err != nil {
		return trigger, err
	}
	side, err := n.Get("side").Text()
	if err != nil {
		return trigger, err
	}
	if trigger.Side, err = Sides.Tag(n.Get("side").Path(), side); err != nil {
		return trigger, err
	}
	if trigger.Position, err = n.Get("position").Float32(); err != nil {
		return trigger, err
	}
	if trigger.Size, err = n.Get("size").Float32(); err != nil {
		return trigger, err
	}
	if trigger.Strictness, err = n.Get("strictness").Float32Or(0); err != nil {
		return trigger, err
	}
	return trigger, nil
}

// Validate checks invariants a hand-built Level could break: every
// tilemap grid is non-empty and holds exactly Width*Height tiles, and
// every edge trigger side is known.
func (l *Level) Validate() error {
	var issues bakeerr.Issues
	for index, tilemap := range l.Tilemaps {
		field := fmt.Sprintf("tilemaps[%d].tiles", index)
		if tilemap.Width == 0 || tilemap.Height == 0 {
			issues.Add(bakeerr.Irregular(field, "tilemap is empty"))
		} else if uint64(tilemap.Width)*uint64(tilemap.Height) != uint64(len(tilemap.Tiles)) {
			issues.Add(bakeerr.Irregular(field, "%d tiles do not fill a %dx%d grid", len(tilemap.Tiles), tilemap.Width, tilemap.Height))
		}
	}
	for index, trigger := range l.EdgeTriggers {
		if _, ok := Sides.Name(trigger.Side); !ok {
			issues.Add(bakeerr.UnknownEnum(fmt.Sprintf("edge_triggers[%d].side", index), "edge trigger side", string(trigger.Side)))
		}
	}
	return issues.Err()
}
