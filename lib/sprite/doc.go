// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package sprite bakes sprite descriptions into PlatEsprite binaries.
//
// A sprite names a spritesheet texture, cuts it into clip rectangles,
// builds frames on top of clips (display offset, extra offsets, and
// colliders), and sequences frames into named animations. The engine
// loads a sprite into one memory pool sized from the header, so the
// header declares every aggregate up front:
//
//	"PlatEsprite"
//	u32 x 11  name len, texture len, clips, frames, animations,
//	          total offsets, total colliders, nested hitboxes,
//	          polygon vertices, frame timings, string bytes
//	name, texture
//	clips       u32 x, y, w, h
//	frames      u32 clip, f32 display.x, display.y, u32 offsets,
//	            u32 colliders, offsets (f32 x, y), colliders
//	animations  u32 name len, u32 timings, bool fixed, name,
//	            solidity hitbox, timings (f32 duration, u32 frame)
//
// Colliders carry solid and ccd flags. String bytes are counted with
// [wire.PoolAligned] over the sprite name and every animation name.
//
// [Parse] normalizes a document into a [Sprite] with every default
// applied and every cross reference validated. [Sprite.Counts] and
// [Encode] both read that normalized value, so the header always
// describes the body that follows it.
package sprite
