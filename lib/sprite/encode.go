// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package sprite

import (
	"fmt"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/wire"
)

// Encode writes the magic, the header computed by Counts, and the body.
func Encode(w *wire.Writer, s *Sprite) error {
	counts := s.Counts()

	w.Magic(Magic)
	w.Uint32(counts.NameLength)
	w.Uint32(counts.TextureLength)
	w.Uint32(counts.Clips)
	w.Uint32(counts.Frames)
	w.Uint32(counts.Animations)
	w.Uint32(counts.Offsets)
	w.Uint32(counts.Colliders)
	w.Uint32(counts.NestedHitboxes)
	w.Uint32(counts.Vertices)
	w.Uint32(counts.FrameTimings)
	w.Uint32(counts.StringBytes)

	w.RawString(s.Name)
	w.RawString(s.Texture)

	for _, clip := range s.Clips {
		w.Uint32(clip.X)
		w.Uint32(clip.Y)
		w.Uint32(clip.W)
		w.Uint32(clip.H)
	}

	for _, frame := range s.Frames {
		w.Uint32(frame.Clip)
		w.Vec2(frame.Display)
		w.Count32(len(frame.Offsets))
		w.Count32(len(frame.Colliders))
		for _, offset := range frame.Offsets {
			w.Vec2(offset)
		}
		for _, collider := range frame.Colliders {
			geometry.EncodeCollider(w, collider, geometry.SpriteColliders)
		}
	}

	for _, animation := range s.Animations {
		w.Count32(len(animation.Name))
		w.Count32(len(animation.Timings))
		w.Bool(animation.Solidity.Fixed)
		w.RawString(animation.Name)
		geometry.Encode(w, animation.Solidity.Hitbox)
		for _, timing := range animation.Timings {
			w.Float32(timing.Duration)
			w.Uint32(timing.Frame)
		}
	}

	return w.Err()
}

// Bake parses, validates, and encodes a sprite document. Nothing is
// returned unless every step succeeds.
func Bake(root document.Node) ([]byte, error) {
	sprite, err := Parse(root)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(4096)
	if err := Encode(w, sprite); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode reads a sprite binary. It returns the decoded sprite and the
// header as stored, which callers compare against Counts.
func Decode(data []byte) (*Sprite, Counts, error) {
	r := wire.NewReader(data)
	if !r.Magic(Magic) {
		return nil, Counts{}, bakeerr.Malformed("", "not a sprite: bad magic")
	}

	var counts Counts
	for _, field := range []*uint32{
		&counts.NameLength, &counts.TextureLength, &counts.Clips, &counts.Frames,
		&counts.Animations, &counts.Offsets, &counts.Colliders, &counts.NestedHitboxes,
		&counts.Vertices, &counts.FrameTimings, &counts.StringBytes,
	} {
		*field = r.Uint32()
	}

	sprite := &Sprite{}
	sprite.Name = r.RawString(counts.NameLength)
	sprite.Texture = r.RawString(counts.TextureLength)

	sprite.Clips = make([]Clip, r.Count(counts.Clips, 16))
	for index := range sprite.Clips {
		sprite.Clips[index] = Clip{X: r.Uint32(), Y: r.Uint32(), W: r.Uint32(), H: r.Uint32()}
	}

	sprite.Frames = make([]Frame, r.Count(counts.Frames, 20))
	for index := range sprite.Frames {
		frame := &sprite.Frames[index]
		frame.Clip = r.Uint32()
		frame.Display = r.Vec2()
		offsets := r.Uint32()
		colliders := r.Uint32()
		frame.Offsets = make([]wire.Vec2, r.Count(offsets, 8))
		for offset := range frame.Offsets {
			frame.Offsets[offset] = r.Vec2()
		}
		frame.Colliders = make([]geometry.Collider, r.Count(colliders, 7))
		for collider := range frame.Colliders {
			decoded, err := geometry.DecodeCollider(r, geometry.SpriteColliders)
			if err != nil {
				return nil, counts, err
			}
			frame.Colliders[collider] = decoded
		}
	}

	sprite.Animations = make([]Animation, r.Count(counts.Animations, 10))
	for index := range sprite.Animations {
		animation := &sprite.Animations[index]
		nameLength := r.Uint32()
		timings := r.Uint32()
		animation.Solidity.Fixed = r.Bool()
		animation.Name = r.RawString(nameLength)
		hitbox, err := geometry.Decode(r)
		if err != nil {
			return nil, counts, err
		}
		animation.Solidity.Hitbox = hitbox
		animation.Timings = make([]Timing, r.Count(timings, 8))
		for timing := range animation.Timings {
			animation.Timings[timing] = Timing{Duration: r.Float32(), Frame: r.Uint32()}
		}
	}

	if err := r.Err(); err != nil {
		return nil, counts, err
	}
	if r.Remaining() != 0 {
		return nil, counts, bakeerr.Malformed("", "%d trailing bytes after sprite", r.Remaining())
	}
	return sprite, counts, nil
}

func fieldf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
