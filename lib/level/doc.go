// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package level bakes level descriptions into PlatElevel binaries.
//
// A level has a name, a world boundary, and five optional lists:
// tilemaps, static scene objects, entity spawn points, areas, and edge
// triggers. The header gives every list length and three totals the
// engine sizes its pool from:
//
//	"PlatElevel"
//	u32 name len, f32 left, right, top, bottom,
//	u32 tilemaps, objects, entities, areas, edge triggers,
//	u32 total tiles, polygon vertices, nested hitboxes
//	name
//	tilemaps       u32 tileset len, u32 width, u32 height, i32 z order,
//	               f32 offset x/y, scale x/y, parallax x/y, bool solid,
//	               tileset name, width*height u16 tiles row by row
//	objects        u32 texture len, u32 clip x/y/w/h, f32 display x/y,
//	               f32 position x/y, i32 z order, f32 rotation,
//	               f32 scale x/y, u32 colliders, texture, colliders
//	entities       f32 x/y, u32 class len, class
//	areas          f32 left/right/top/bottom, i32 priority, u8 r/g/b
//	edge triggers  u8 side, f32 position, size, strictness
//
// Level colliders do not carry solid and ccd flags.
//
// A tilemap grid is given inline as "tiles", a list of equally long
// rows, or imported from a layer of a Tiled map ("tmx" and "layer").
// Imported grids store global tile IDs with 0 for empty cells. TMX
// files are read from [ParseOptions.Sources].
package level
