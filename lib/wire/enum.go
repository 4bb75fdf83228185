// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

// Enum is a closed set of source names, each mapped to one tag byte.
// Lookups by name are case-insensitive. Several names may share a tag
// (aliases); the first name given for a tag is its canonical name.
type Enum struct {
	set    string
	byName map[string]byte
	byTag  map[byte]string
}

// EnumValue pairs a source name with its tag byte.
type EnumValue struct {
	Name string
	Tag  byte
}

// NewEnum builds an Enum. set names the enumeration in error messages
// ("edge trigger side"). Panics on a repeated name: enumerations are
// program constants.
func NewEnum(set string, values ...EnumValue) *Enum {
	enum := &Enum{
		set:    set,
		byName: make(map[string]byte, len(values)),
		byTag:  make(map[byte]string, len(values)),
	}
	for _, value := range values {
		key := strings.ToLower(value.Name)
		if _, exists := enum.byName[key]; exists {
			panic(fmt.Sprintf("wire.NewEnum(%q): duplicate name %q", set, value.Name))
		}
		enum.byName[key] = value.Tag
		if _, exists := enum.byTag[value.Tag]; !exists {
			enum.byTag[value.Tag] = value.Name
		}
	}
	return enum
}

// Tag returns the tag for name. field is the document path used in the
// UnknownEnumValue error.
func (e *Enum) Tag(field, name string) (byte, error) {
	tag, ok := e.byName[strings.ToLower(name)]
	if !ok {
		return 0, bakeerr.UnknownEnum(field, e.set, name)
	}
	return tag, nil
}

// Name returns the canonical name for tag.
func (e *Enum) Name(tag byte) (string, bool) {
	name, ok := e.byTag[tag]
	return name, ok
}

// Names returns every accepted name, sorted.
func (e *Enum) Names() []string {
	names := make([]string, 0, len(e.byName))
	for name := range e.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
