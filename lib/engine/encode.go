// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/wire"
)

// Encode writes the configuration. It expects a validated Config.
func Encode(w *wire.Writer, c *Config) error {
	w.Magic(Magic)
	w.String16(c.Title)
	w.String16(c.AssetDir)

	w.Count16(len(c.ControllerTypes))
	for _, controller := range c.ControllerTypes {
		w.String16(controller.Name)
		writeNames(w, controller.Axes)
		writeNames(w, controller.Buttons)
	}

	table := c.CollisionTable()
	w.Count16(len(c.CollisionTypes))
	for _, collisionType := range c.CollisionTypes {
		w.String16(collisionType.Name)
		w.RGB(collisionType.Color)
		w.Count16(len(collisionType.ActsOn))
		for _, name := range collisionType.ActsOn {
			index, ok := table.Resolve(name)
			if !ok {
				return bakeerr.Unresolved("acts_on", "collision type", name)
			}
			w.Count16(index)
		}
	}

	writeNames(w, c.Channels)
	return w.Err()
}

func writeNames(w *wire.Writer, names []string) {
	w.Count16(len(names))
	for _, name := range names {
		w.String16(name)
	}
}

func readNames(r *wire.Reader) []string {
	names := make([]string, r.Count(uint32(r.Uint16()), 2))
	for index := range names {
		names[index] = r.String16()
	}
	return names
}

// Bake parses, validates, and encodes an engine configuration.
func Bake(root document.Node) ([]byte, error) {
	config, err := Parse(root)
	if err != nil {
		return nil, err
	}
	w := wire.NewWriter(512)
	if err := Encode(w, config); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode reads an engine configuration binary. acts_on indices are
// mapped back to names; an index past the table is an error.
func Decode(data []byte) (*Config, Counts, error) {
	r := wire.NewReader(data)
	if !r.Magic(Magic) {
		return nil, Counts{}, bakeerr.Malformed("", "not an engine configuration: bad magic")
	}

	config := &Config{}
	config.Title = r.String16()
	config.AssetDir = r.String16()

	config.ControllerTypes = make([]ControllerType, r.Count(uint32(r.Uint16()), 6))
	for index := range config.ControllerTypes {
		controller := &config.ControllerTypes[index]
		controller.Name = r.String16()
		controller.Axes = readNames(r)
		controller.Buttons = readNames(r)
	}

	var relations [][]uint16
	config.CollisionTypes = make([]CollisionType, r.Count(uint32(r.Uint16()), 7))
	for index := range config.CollisionTypes {
		collisionType := &config.CollisionTypes[index]
		collisionType.Name = r.String16()
		collisionType.Color = r.RGB()
		indices := make([]uint16, r.Count(uint32(r.Uint16()), 2))
		for relation := range indices {
			indices[relation] = r.Uint16()
		}
		relations = append(relations, indices)
	}
	config.Channels = readNames(r)

	if err := r.Err(); err != nil {
		return nil, Counts{}, err
	}
	if r.Remaining() != 0 {
		return nil, Counts{}, bakeerr.Malformed("", "%d trailing bytes after engine configuration", r.Remaining())
	}

	names := config.CollisionTable().Names()
	for index, indices := range relations {
		actsOn := make([]string, len(indices))
		for relation, target := range indices {
			if int(target) >= len(names) {
				return nil, Counts{}, bakeerr.UnresolvedIndex(
					fmt.Sprintf("collision.types[%d].acts_on[%d]", index, relation),
					"collision type", int(target), len(names))
			}
			actsOn[relation] = names[target]
		}
		config.CollisionTypes[index].ActsOn = actsOn
	}
	return config, config.Counts(), nil
}
