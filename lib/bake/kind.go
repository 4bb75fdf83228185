// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package bake

import (
	"bytes"
	"regexp"
	"sort"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/engine"
	"github.com/plate-engine/platebake/lib/level"
	"github.com/plate-engine/platebake/lib/sprite"
	"github.com/plate-engine/platebake/lib/tileset"
)

// Kind names an asset format.
type Kind string

const (
	KindSprite     Kind = "sprite"
	KindLevel      Kind = "level"
	KindTileset    Kind = "tileset"
	KindBootloader Kind = "bootloader"
)

// magics maps each kind to the magic its binaries start with.
var magics = map[Kind]string{
	KindSprite:     sprite.Magic,
	KindLevel:      level.Magic,
	KindTileset:    tileset.Magic,
	KindBootloader: engine.Magic,
}

// Kinds returns every supported kind, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(magics))
	for kind := range magics {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// ParseKind validates a kind name.
func ParseKind(name string) (Kind, error) {
	kind := Kind(name)
	if _, ok := magics[kind]; !ok {
		return "", &bakeerr.Error{Kind: bakeerr.UnsupportedKind, Message: "no encoder for this asset kind", Values: []string{name}}
	}
	return kind, nil
}

// Magic returns the magic of kind's binaries.
func (k Kind) Magic() string { return magics[k] }

// KindFromMagic identifies a baked file by its leading bytes.
func KindFromMagic(data []byte) (Kind, bool) {
	for kind, magic := range magics {
		if bytes.HasPrefix(data, []byte(magic)) {
			return kind, true
		}
	}
	return "", false
}

// sourceName matches <base>.<kind>.<ext>. The base may contain dots but
// may not start with one.
var sourceName = regexp.MustCompile(`^([^.].*)\.([^.]+)\.([^.]+)$`)

// Source describes a source file name.
type Source struct {
	// Base is the name without kind and extension.
	Base string

	// Kind is the kind segment as written. It is not checked against
	// the supported kinds; baking an unsupported kind fails with
	// UnsupportedKind.
	Kind string

	// Format is the syntax implied by the extension.
	Format document.Format
}

// Output returns the baked file name, <base>.<kind>.
func (s Source) Output() string { return s.Base + "." + s.Kind }

// Classify parses a file name (no directory) as an asset source. It
// reports false for names that are not sources.
func Classify(name string) (Source, bool) {
	match := sourceName.FindStringSubmatch(name)
	if match == nil {
		return Source{}, false
	}
	format, ok := document.FormatFromExtension(match[3])
	if !ok {
		return Source{}, false
	}
	return Source{Base: match[1], Kind: match[2], Format: format}, true
}
