// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package sprite

import (
	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// Magic opens every sprite binary.
const Magic = "PlatEsprite"

// StringPolicy is how the engine accounts for sprite strings.
var StringPolicy = wire.PoolAligned

// Sprite is a normalized sprite description.
type Sprite struct {
	Name       string      `json:"name"`
	Texture    string      `json:"spritesheet"`
	Clips      []Clip      `json:"clips"`
	Frames     []Frame     `json:"frames"`
	Animations []Animation `json:"animations"`
}

// Clip is a rectangle of the spritesheet in pixels.
type Clip struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// Frame is a clip placed relative to the entity origin.
type Frame struct {
	Clip      uint32              `json:"clip"`
	Display   wire.Vec2           `json:"display"`
	Offsets   []wire.Vec2         `json:"offsets"`
	Colliders []geometry.Collider `json:"collision"`
}

// Animation is a named sequence of frame timings.
type Animation struct {
	Name     string   `json:"name"`
	Timings  []Timing `json:"frames"`
	Solidity Solidity `json:"solidity"`
}

// Solidity is the body an animation presents to the world while it
// plays. Fixed solidity does not follow the frame.
type Solidity struct {
	Fixed  bool
	Hitbox geometry.Hitbox
}

// Timing shows frame Frame for Duration seconds.
type Timing struct {
	Duration float32 `json:"duration"`
	Frame    uint32  `json:"frame"`
}

// Counts is the sprite header.
type Counts struct {
	NameLength     uint32 `json:"name_length"`
	TextureLength  uint32 `json:"texture_length"`
	Clips          uint32 `json:"clips"`
	Frames         uint32 `json:"frames"`
	Animations     uint32 `json:"animations"`
	Offsets        uint32 `json:"offsets"`
	Colliders      uint32 `json:"colliders"`
	NestedHitboxes uint32 `json:"nested_hitboxes"`
	Vertices       uint32 `json:"vertices"`
	FrameTimings   uint32 `json:"frame_timings"`
	StringBytes    uint32 `json:"string_bytes"`
}

// Counts computes the header aggregates.
func (s *Sprite) Counts() Counts {
	counts := Counts{
		NameLength:    uint32(len(s.Name)),
		TextureLength: uint32(len(s.Texture)),
		Clips:         uint32(len(s.Clips)),
		Frames:        uint32(len(s.Frames)),
		Animations:    uint32(len(s.Animations)),
		StringBytes:   StringPolicy.Footprint(s.Name),
	}

	var tally geometry.Tally
	for _, frame := range s.Frames {
		counts.Offsets += uint32(len(frame.Offsets))
		counts.Colliders += uint32(len(frame.Colliders))
		for _, collider := range frame.Colliders {
			tally.Add(collider.Hitbox)
		}
	}
	for _, animation := range s.Animations {
		counts.FrameTimings += uint32(len(animation.Timings))
		counts.StringBytes += StringPolicy.Footprint(animation.Name)
		tally.Add(animation.Solidity.Hitbox)
	}
	counts.NestedHitboxes = tally.Nodes
	counts.Vertices = tally.Vertices
	return counts
}
