// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package tileset bakes tileset descriptions into PlatEtileset
// binaries.
//
// A tileset cuts a tilesheet texture into fixed-size tiles. Each tile
// has animation frames, a property count, and a solidity describing
// how it collides:
//
//	none     0x00
//	full     'F'
//	partial  'P'  f32 position, bool vertical, bool topleft
//	slope    'S'  f32 position, f32 slope, bool above
//	complex  'C'  hitbox
//
// The header declares the hitboxes the engine must allocate for
// complex tiles. A complex tile stores its root hitbox in a pool slot
// of its own, so it contributes one more than the nested count of its
// tree.
//
//	"PlatEtileset"
//	u32 name len, u32 texture len, u16 tile width, u16 tile height,
//	u32 tiles, u32 total frames, u32 hitboxes, u32 vertices
//	name, texture
//	tiles   u32 frames, u32 properties, solidity,
//	        frames (u16 x, u16 y, f32 duration, u8 flip)
package tileset
