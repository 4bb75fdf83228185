// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"fmt"
	"math"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/symtab"
	"github.com/plate-engine/platebake/lib/wire"
)

// Parse normalizes an engine configuration document and validates it.
func Parse(root document.Node) (*Config, error) {
	if _, err := root.Object(); err != nil {
		return nil, err
	}

	config := &Config{}
	var err error
	if config.Title, err = root.Get("title").Text(); err != nil {
		return nil, err
	}
	if config.AssetDir, err = root.Get("asset_dir").TextOr(""); err != nil {
		return nil, err
	}

	controllers, err := root.Get("controller_types").Items()
	if err != nil {
		return nil, err
	}
	config.ControllerTypes = make([]ControllerType, len(controllers))
	for index, item := range controllers {
		controller := &config.ControllerTypes[index]
		if _, err := item.Object(); err != nil {
			return nil, err
		}
		if controller.Name, err = item.Get("name").Text(); err != nil {
			return nil, err
		}
		if controller.Axes, err = parseNames(item.Get("axes")); err != nil {
			return nil, err
		}
		if controller.Buttons, err = parseNames(item.Get("buttons")); err != nil {
			return nil, err
		}
	}

	collision, err := root.Get("collision").Object()
	if err != nil {
		return nil, err
	}
	types, err := collision.Get("types").Items()
	if err != nil {
		return nil, err
	}
	config.CollisionTypes = make([]CollisionType, len(types))
	for index, item := range types {
		collisionType := &config.CollisionTypes[index]
		if _, err := item.Object(); err != nil {
			return nil, err
		}
		if collisionType.Name, err = item.Get("name").Text(); err != nil {
			return nil, err
		}
		color, err := item.Get("color").Text()
		if err != nil {
			return nil, err
		}
		if collisionType.Color, err = wire.ParseRGB(item.Get("color").Path(), color); err != nil {
			return nil, err
		}
		if collisionType.ActsOn, err = parseNames(item.Get("acts_on")); err != nil {
			return nil, err
		}
	}
	if config.Channels, err = parseNames(collision.Get("channels")); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// parseNames reads an optional list of strings.
func parseNames(n document.Node) ([]string, error) {
	items, err := n.OptionalItems()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for index, item := range items {
		if names[index], err = item.Text(); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// Validate collects every naming problem: illegal identifiers,
// duplicates within each set-unique list, acts_on names missing from
// the collision type table, and strings or lists too long for their
// u16 prefixes.
func (c *Config) Validate() error {
	var issues bakeerr.Issues

	checkLength(&issues, "title", len(c.Title))
	checkLength(&issues, "asset_dir", len(c.AssetDir))
	checkLength(&issues, "controller_types", len(c.ControllerTypes))
	checkLength(&issues, "collision.types", len(IntrinsicCollisionTypes)+len(c.CollisionTypes))
	checkLength(&issues, "collision.channels", len(c.Channels))

	controllers := symtab.New("controller type")
	for index, controller := range c.ControllerTypes {
		field := fmt.Sprintf("controller_types[%d]", index)
		issues.Add(symtab.CheckIdentifier(field+".name", "controller type", controller.Name))
		checkLength(&issues, field+".name", len(controller.Name))
		controllers.Define(controller.Name)

		checkNameList(&issues, field+".axes", "axis", controller.Axes)
		checkNameList(&issues, field+".buttons", "button", controller.Buttons)
	}
	issues.Add(controllers.Err("controller_types"))

	table := c.CollisionTable()
	for index, collisionType := range c.CollisionTypes {
		field := fmt.Sprintf("collision.types[%d]", index)
		issues.Add(symtab.CheckIdentifier(field+".name", "collision type", collisionType.Name))
		checkLength(&issues, field+".name", len(collisionType.Name))
		checkLength(&issues, field+".acts_on", len(collisionType.ActsOn))
		for relationIndex, name := range collisionType.ActsOn {
			_, unresolved := table.Lookup(fmt.Sprintf("%s.acts_on[%d]", field, relationIndex), name)
			issues.Add(unresolved)
		}
	}
	issues.Add(table.Err("collision.types"))

	checkNameList(&issues, "collision.channels", "channel", c.Channels)

	return issues.Err()
}

// checkNameList validates a set-unique list of identifiers.
func checkNameList(issues *bakeerr.Issues, field, what string, names []string) {
	checkLength(issues, field, len(names))
	table := symtab.New(what)
	for index, name := range names {
		element := fmt.Sprintf("%s[%d]", field, index)
		issues.Add(symtab.CheckIdentifier(element, what, name))
		checkLength(issues, element, len(name))
		table.Define(name)
	}
	issues.Add(table.Err(field))
}

func checkLength(issues *bakeerr.Issues, field string, length int) {
	if length > math.MaxUint16 {
		issues.Add(bakeerr.New(bakeerr.OutOfRange, field, "length %d does not fit in a u16 prefix", length))
	}
}
