// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package bake

import (
	"io/fs"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/engine"
	"github.com/plate-engine/platebake/lib/level"
	"github.com/plate-engine/platebake/lib/sprite"
	"github.com/plate-engine/platebake/lib/tileset"
)

// Options configures a bake.
type Options struct {
	// Sources is the directory that relative references in the
	// document resolve against, such as the TMX maps a level imports.
	// Nil disables such references.
	Sources fs.FS
}

// Bake encodes a parsed document as kind.
func Bake(kind Kind, root document.Node, options Options) ([]byte, error) {
	switch kind {
	case KindSprite:
		return sprite.Bake(root)
	case KindLevel:
		return level.Bake(root, level.ParseOptions{Sources: options.Sources})
	case KindTileset:
		return tileset.Bake(root)
	case KindBootloader:
		return engine.Bake(root)
	default:
		_, err := ParseKind(string(kind))
		return nil, err
	}
}

// BakeSource parses data in format and bakes it as kind.
func BakeSource(kind Kind, format document.Format, data []byte, options Options) ([]byte, error) {
	if _, err := ParseKind(string(kind)); err != nil {
		return nil, err
	}
	root, err := document.Parse(data, format)
	if err != nil {
		return nil, err
	}
	return Bake(kind, root, options)
}

// Decoded is a baked file read back.
type Decoded struct {
	Kind Kind `json:"kind"`

	// Asset is *sprite.Sprite, *level.Level, *tileset.Tileset or
	// *engine.Config.
	Asset any `json:"asset"`

	// Header is the count struct stored in the file: sprite.Counts,
	// level.Counts, tileset.Counts or engine.Counts.
	Header any `json:"header"`

	// Recomputed is the count struct computed from Asset.
	Recomputed any `json:"-"`
}

// Decode reads a baked file of any kind.
func Decode(data []byte) (*Decoded, error) {
	kind, ok := KindFromMagic(data)
	if !ok {
		return nil, bakeerr.Malformed("", "not a PlatE binary: unknown magic")
	}

	decoded := &Decoded{Kind: kind}
	switch kind {
	case KindSprite:
		asset, header, err := sprite.Decode(data)
		if err != nil {
			return nil, err
		}
		decoded.Asset, decoded.Header, decoded.Recomputed = asset, header, asset.Counts()
	case KindLevel:
		asset, header, err := level.Decode(data)
		if err != nil {
			return nil, err
		}
		decoded.Asset, decoded.Header, decoded.Recomputed = asset, header, asset.Counts()
	case KindTileset:
		asset, header, err := tileset.Decode(data)
		if err != nil {
			return nil, err
		}
		decoded.Asset, decoded.Header, decoded.Recomputed = asset, header, asset.Counts()
	case KindBootloader:
		asset, header, err := engine.Decode(data)
		if err != nil {
			return nil, err
		}
		decoded.Asset, decoded.Header, decoded.Recomputed = asset, header, asset.Counts()
	}
	return decoded, nil
}

// Verify decodes data and checks that its stored header matches the
// counts of its body and that no bytes trail it.
func Verify(data []byte) (*Decoded, error) {
	decoded, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if decoded.Header != decoded.Recomputed {
		return decoded, bakeerr.Malformed("", "%s header %+v does not match its body %+v",
			decoded.Kind, decoded.Header, decoded.Recomputed)
	}
	return decoded, nil
}
