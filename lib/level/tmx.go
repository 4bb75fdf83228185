// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package level

import (
	"fmt"
	"io/fs"
	"math"

	"github.com/lafriks/go-tiled"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
)

// importTMX fills tilemap's grid from a tile layer of a Tiled map. The
// layer defaults to the first tile layer of the map.
func importTMX(n document.Node, tilemap *Tilemap, sources fs.FS) error {
	path, err := n.Get("tmx").Text()
	if err != nil {
		return err
	}
	layerName, err := n.Get("layer").TextOr("")
	if err != nil {
		return err
	}
	if sources == nil {
		return bakeerr.Malformed(n.Get("tmx").Path(), "tmx import needs a source directory")
	}

	levelMap, err := tiled.LoadFile(path, tiled.WithFileSystem(sources))
	if err != nil {
		return &bakeerr.Error{
			Kind:    bakeerr.MalformedInput,
			Field:   n.Get("tmx").Path(),
			Message: fmt.Sprintf("loading %s", path),
			Err:     err,
		}
	}

	var layer *tiled.Layer
	for _, candidate := range levelMap.Layers {
		if layerName == "" || candidate.Name == layerName {
			layer = candidate
			break
		}
	}
	if layer == nil {
		if layerName == "" {
			return bakeerr.Malformed(n.Get("tmx").Path(), "%s has no tile layers", path)
		}
		return bakeerr.Unresolved(n.Get("layer").Path(), "tile layer", layerName)
	}

	return gridFromLayer(n.Get("layer").Path(), levelMap.Width, levelMap.Height, layer, tilemap)
}

// gridFromLayer converts layer tiles to global tile IDs. Flip flags are
// dropped: PlatE tilemaps have no per-cell transform.
func gridFromLayer(field string, width, height int, layer *tiled.Layer, tilemap *Tilemap) error {
	if width <= 0 || height <= 0 {
		return bakeerr.Irregular(field, "layer %q is empty", layer.Name)
	}
	if len(layer.Tiles) != width*height {
		return bakeerr.Irregular(field, "layer %q has %d tiles, want %dx%d", layer.Name, len(layer.Tiles), width, height)
	}

	tilemap.Width = uint32(width)
	tilemap.Height = uint32(height)
	tilemap.Tiles = make([]uint16, len(layer.Tiles))
	for index, tile := range layer.Tiles {
		if tile == nil || tile.IsNil() || tile.Tileset == nil {
			continue
		}
		gid := uint64(tile.Tileset.FirstGID) + uint64(tile.ID)
		if gid > math.MaxUint16 {
			return bakeerr.New(bakeerr.OutOfRange, field,
				"tile %d at (%d, %d) does not fit in 16 bits", gid, index%width, index/width)
		}
		tilemap.Tiles[index] = uint16(gid)
	}
	return nil
}
