// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package geometry implements the hitbox tree shared by every PlatE
// asset format.
//
// A [Hitbox] is one of seven variants: [None], [Box], [Line], [OneWay],
// [Circle], [Polygon], and [Composite]. Composites hold child hitboxes
// and may nest to any depth; the structure is always a tree.
//
// On the wire a hitbox is a one-byte tag followed by a fixed payload:
//
//	None       0x00
//	Box        'b'  f32 left, right, top, bottom
//	Line       'l'  f32 p1.x, p1.y, p2.x, p2.y
//	OneWay     'o'  f32 p1.x, p1.y, p2.x, p2.y
//	Circle     'c'  f32 center.x, center.y, radius
//	Polygon    'p'  u32 count, count * (f32 x, f32 y)
//	Composite  '?'  u32 count, count * hitbox
//
// Asset headers declare how many nested hitboxes and polygon vertices
// the engine must allocate. [Count] computes both with the
// children-only rule: the hitbox a record stores inline is not counted,
// a polygon contributes one node, and a composite contributes its
// children plus everything below them.
//
// A [Collider] is a named hitbox. Sprites serialize solid and ccd flags
// with each collider and levels do not; [ColliderFormat] selects which.
package geometry
