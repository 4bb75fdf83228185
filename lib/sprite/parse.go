// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package sprite

import (
	"encoding/json"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/geometry"
	"github.com/plate-engine/platebake/lib/symtab"
	"github.com/plate-engine/platebake/lib/wire"
)

// Parse normalizes a sprite document and validates it.
func Parse(root document.Node) (*Sprite, error) {
	if _, err := root.Object(); err != nil {
		return nil, err
	}

	sprite := &Sprite{}
	var err error
	if sprite.Name, err = root.Get("name").Text(); err != nil {
		return nil, err
	}
	if sprite.Texture, err = root.Get("spritesheet").Text(); err != nil {
		return nil, err
	}
	if sprite.Clips, err = parseClips(root.Get("clips")); err != nil {
		return nil, err
	}
	if sprite.Frames, err = parseFrames(root.Get("frames")); err != nil {
		return nil, err
	}
	if sprite.Animations, err = parseAnimations(root.Get("animations")); err != nil {
		return nil, err
	}

	if err := sprite.Validate(); err != nil {
		return nil, err
	}
	return sprite, nil
}

func parseClips(n document.Node) ([]Clip, error) {
	items, err := n.Items()
	if err != nil {
		return nil, err
	}
	clips := make([]Clip, len(items))
	for index, item := range items {
		clip := &clips[index]
		if _, err := item.Object(); err != nil {
			return nil, err
		}
		for _, field := range []struct {
			name   string
			target *uint32
		}{
			{"x", &clip.X},
			{"y", &clip.Y},
			{"w", &clip.W},
			{"h", &clip.H},
		} {
			if *field.target, err = item.Get(field.name).Uint32(); err != nil {
				return nil, err
			}
		}
	}
	return clips, nil
}

func parseFrames(n document.Node) ([]Frame, error) {
	items, err := n.Items()
	if err != nil {
		return nil, err
	}
	frames := make([]Frame, len(items))
	for index, item := range items {
		frame := &frames[index]
		if _, err := item.Object(); err != nil {
			return nil, err
		}
		if frame.Clip, err = item.Get("clip").Uint32(); err != nil {
			return nil, err
		}
		if frame.Display, err = geometry.ParseVec2(item.Get("display")); err != nil {
			return nil, err
		}
		offsets, err := item.Get("offsets").OptionalItems()
		if err != nil {
			return nil, err
		}
		frame.Offsets = make([]wire.Vec2, len(offsets))
		for offsetIndex, offset := range offsets {
			if frame.Offsets[offsetIndex], err = geometry.ParseVec2(offset); err != nil {
				return nil, err
			}
		}
		if frame.Colliders, err = geometry.ParseColliders(item.Get("collision"), geometry.SpriteColliders); err != nil {
			return nil, err
		}
	}
	return frames, nil
}

func parseAnimations(n document.Node) ([]Animation, error) {
	items, err := n.Items()
	if err != nil {
		return nil, err
	}
	animations := make([]Animation, len(items))
	for index, item := range items {
		animation := &animations[index]
		if _, err := item.Object(); err != nil {
			return nil, err
		}
		if animation.Name, err = item.Get("name").Text(); err != nil {
			return nil, err
		}

		timings, err := item.Get("frames").Items()
		if err != nil {
			return nil, err
		}
		animation.Timings = make([]Timing, len(timings))
		for timingIndex, timing := range timings {
			if _, err := timing.Object(); err != nil {
				return nil, err
			}
			if animation.Timings[timingIndex].Duration, err = timing.Get("duration").Float32(); err != nil {
				return nil, err
			}
			if animation.Timings[timingIndex].Frame, err = timing.Get("frame").Uint32(); err != nil {
				return nil, err
			}
		}

		solidity := item.Get("solidity")
		if solidity.Exists() {
			if _, err := solidity.Object(); err != nil {
				return nil, err
			}
		}
		if animation.Solidity.Fixed, err = solidity.Get("fixed").BoolOr(false); err != nil {
			return nil, err
		}
		if animation.Solidity.Hitbox, err = geometry.ParseOptional(solidity.Get("hitbox")); err != nil {
			return nil, err
		}
	}
	return animations, nil
}

// Validate checks cross references: frame clips and animation frames
// must resolve, and animation names must be unique. Every issue is
// reported.
func (s *Sprite) Validate() error {
	var issues bakeerr.Issues

	for index, frame := range s.Frames {
		if int64(frame.Clip) >= int64(len(s.Clips)) {
			issues.Add(bakeerr.UnresolvedIndex(fieldf("frames[%d].clip", index), "clip", int(frame.Clip), len(s.Clips)))
		}
	}

	names := symtab.New("animation")
	for index, animation := range s.Animations {
		names.Define(animation.Name)
		for timingIndex, timing := range animation.Timings {
			if int64(timing.Frame) >= int64(len(s.Frames)) {
				issues.Add(bakeerr.UnresolvedIndex(
					fieldf("animations[%d].frames[%d].frame", index, timingIndex),
					"frame", int(timing.Frame), len(s.Frames)))
			}
		}
	}
	issues.Add(names.Err("animations"))

	return issues.Err()
}

// MarshalJSON writes solidity in its source form.
func (s Solidity) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fixed  bool           `json:"fixed"`
		Hitbox map[string]any `json:"hitbox"`
	}{s.Fixed, geometry.Source(s.Hitbox)})
}
