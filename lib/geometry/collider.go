// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package geometry

import (
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/wire"
)

// Collider is a hitbox with a collision type name.
type Collider struct {
	Type   string `json:"type"`
	Hitbox Hitbox `json:"hitbox"`
	Solid  bool   `json:"solid,omitempty"`
	CCD    bool   `json:"ccd,omitempty"`
}

// ColliderFormat selects the per-kind collider layout.
type ColliderFormat struct {
	// Flags serializes solid and ccd after the name length.
	Flags bool
}

// SpriteColliders carries flags; LevelColliders does not.
var (
	SpriteColliders = ColliderFormat{Flags: true}
	LevelColliders  = ColliderFormat{}
)

// ParseCollider reads {type, hitbox, solid?, ccd?}. The flags are only
// read when the format serializes them.
func ParseCollider(n document.Node, format ColliderFormat) (Collider, error) {
	var collider Collider
	if _, err := n.Object(); err != nil {
		return collider, err
	}
	var err error
	if collider.Type, err = n.Get("type").Text(); err != nil {
		return collider, err
	}
	if collider.Hitbox, err = Parse(n.Get("hitbox")); err != nil {
		return collider, err
	}
	if format.Flags {
		if collider.Solid, err = n.Get("solid").BoolOr(false); err != nil {
			return collider, err
		}
		if collider.CCD, err = n.Get("ccd").BoolOr(false); err != nil {
			return collider, err
		}
	}
	return collider, nil
}

// ParseColliders reads an optional list of colliders.
func ParseColliders(n document.Node, format ColliderFormat) ([]Collider, error) {
	items, err := n.OptionalItems()
	if err != nil {
		return nil, err
	}
	colliders := make([]Collider, len(items))
	for index, item := range items {
		if colliders[index], err = ParseCollider(item, format); err != nil {
			return nil, err
		}
	}
	return colliders, nil
}

// EncodeCollider writes the name length, the optional flags, the name
// bytes, and the hitbox.
func EncodeCollider(w *wire.Writer, c Collider, format ColliderFormat) {
	w.Count32(len(c.Type))
	if format.Flags {
		w.Bool(c.Solid)
		w.Bool(c.CCD)
	}
	w.RawString(c.Type)
	Encode(w, c.Hitbox)
}

// DecodeCollider mirrors EncodeCollider.
func DecodeCollider(r *wire.Reader, format ColliderFormat) (Collider, error) {
	var collider Collider
	length := r.Uint32()
	if format.Flags {
		collider.Solid = r.Bool()
		collider.CCD = r.Bool()
	}
	collider.Type = r.RawString(length)
	hitbox, err := Decode(r)
	if err != nil {
		return Collider{}, err
	}
	collider.Hitbox = hitbox
	return collider, nil
}

// CountColliders tallies the hitboxes of colliders.
func CountColliders(colliders []Collider) Tally {
	var tally Tally
	for _, collider := range colliders {
		tally.Add(collider.Hitbox)
	}
	return tally
}

// EqualColliders compares two collider lists field by field.
func EqualColliders(a, b []Collider) bool {
	if len(a) != len(b) {
		return false
	}
	for index := range a {
		if a[index].Type != b[index].Type || a[index].Solid != b[index].Solid ||
			a[index].CCD != b[index].CCD || !Equal(a[index].Hitbox, b[index].Hitbox) {
			return false
		}
	}
	return true
}
