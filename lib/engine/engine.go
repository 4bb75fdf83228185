// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"encoding/json"

	"github.com/plate-engine/platebake/lib/symtab"
	"github.com/plate-engine/platebake/lib/wire"
)

// Magic opens the engine configuration binary.
const Magic = "PlatEboot"

// IntrinsicCollisionTypes are defined by the engine itself and occupy
// the first acts_on indices. The current engine defines none.
var IntrinsicCollisionTypes = []string{}

// Config is a normalized engine configuration.
type Config struct {
	Title           string
	AssetDir        string
	ControllerTypes []ControllerType
	CollisionTypes  []CollisionType
	Channels        []string
}

// ControllerType declares the named inputs of a kind of controller.
type ControllerType struct {
	Name    string   `json:"name"`
	Axes    []string `json:"axes"`
	Buttons []string `json:"buttons"`
}

// CollisionType is a collider category. ActsOn names the types it
// affects.
type CollisionType struct {
	Name   string
	Color  wire.RGB
	ActsOn []string
}

// MarshalJSON writes the colour as "#rrggbb".
func (c CollisionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name   string   `json:"name"`
		Color  string   `json:"color"`
		ActsOn []string `json:"acts_on"`
	}{c.Name, c.Color.String(), c.ActsOn})
}

// MarshalJSON nests collision types and channels under "collision" as
// the source does.
func (c Config) MarshalJSON() ([]byte, error) {
	type collision struct {
		Types    []CollisionType `json:"types"`
		Channels []string        `json:"channels"`
	}
	return json.Marshal(struct {
		Title           string           `json:"title"`
		AssetDir        string           `json:"asset_dir"`
		ControllerTypes []ControllerType `json:"controller_types"`
		Collision       collision        `json:"collision"`
	}{c.Title, c.AssetDir, c.ControllerTypes, collision{c.CollisionTypes, c.Channels}})
}

// CollisionTable returns the acts_on index space: intrinsic types, then
// configured types.
func (c *Config) CollisionTable() *symtab.Table {
	table := symtab.New("collision type")
	for _, name := range IntrinsicCollisionTypes {
		table.Define(name)
	}
	for _, collisionType := range c.CollisionTypes {
		table.Define(collisionType.Name)
	}
	return table
}

// Counts summarizes the inline counts of the binary.
type Counts struct {
	TitleLength     uint32 `json:"title_length"`
	AssetDirLength  uint32 `json:"asset_dir_length"`
	ControllerTypes uint32 `json:"controller_types"`
	Axes            uint32 `json:"axes"`
	Buttons         uint32 `json:"buttons"`
	CollisionTypes  uint32 `json:"collision_types"`
	Relations       uint32 `json:"relations"`
	Channels        uint32 `json:"channels"`
}

// Counts totals the configuration.
func (c *Config) Counts() Counts {
	counts := Counts{
		TitleLength:     uint32(len(c.Title)),
		AssetDirLength:  uint32(len(c.AssetDir)),
		ControllerTypes: uint32(len(c.ControllerTypes)),
		CollisionTypes:  uint32(len(c.CollisionTypes)),
		Channels:        uint32(len(c.Channels)),
	}
	for _, controller := range c.ControllerTypes {
		counts.Axes += uint32(len(controller.Axes))
		counts.Buttons += uint32(len(controller.Buttons))
	}
	for _, collisionType := range c.CollisionTypes {
		counts.Relations += uint32(len(collisionType.ActsOn))
	}
	return counts
}
