// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package bake

import (
	"errors"
	"strings"
	"testing"

	"github.com/plate-engine/platebake/lib/bakeerr"
	"github.com/plate-engine/platebake/lib/document"
	"github.com/plate-engine/platebake/lib/sprite"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		ok     bool
		source Source
		output string
	}{
		{"hero.sprite.json", true, Source{"hero", "sprite", document.JSON}, "hero.sprite"},
		{"world.1.level.yaml", true, Source{"world.1", "level", document.YAML}, "world.1.level"},
		{"grass.tileset.jsonc", true, Source{"grass", "tileset", document.JSONC}, "grass.tileset"},
		{"game.bootloader.yml", true, Source{"game", "bootloader", document.YAML}, "game.bootloader"},
		{"song.music.json", true, Source{"song", "music", document.JSON}, "song.music"},
		{".hidden.sprite.json", false, Source{}, ""},
		{"engine.json", false, Source{}, ""},
		{"hero.sprite.png", false, Source{}, ""},
		{"README", false, Source{}, ""},
	}
	for _, test := range tests {
		source, ok := Classify(test.name)
		if ok != test.ok || source != test.source {
			t.Errorf("Classify(%q) = %+v, %v; want %+v, %v", test.name, source, ok, test.source, test.ok)
			continue
		}
		if ok && source.Output() != test.output {
			t.Errorf("Classify(%q).Output() = %q, want %q", test.name, source.Output(), test.output)
		}
	}
}

func TestUnsupportedKind(t *testing.T) {
	t.Parallel()

	if _, err := ParseKind("music"); !errors.Is(err, bakeerr.ErrUnsupportedKind) {
		t.Errorf("ParseKind(music) = %v, want unsupported kind", err)
	}
	if _, err := BakeSource("music", document.JSON, []byte(`{}`), Options{}); !errors.Is(err, bakeerr.ErrUnsupportedKind) {
		t.Errorf("BakeSource(music) = %v, want unsupported kind", err)
	}
	for _, kind := range Kinds() {
		if _, err := ParseKind(string(kind)); err != nil {
			t.Errorf("ParseKind(%s) = %v", kind, err)
		}
	}
}

var sources = map[Kind]string{
	KindSprite: `{"name": "s", "spritesheet": "s.png", "clips": [{"x": 0, "y": 0, "w": 1, "h": 1}],
		"frames": [{"clip": 0, "display": {"x": 0, "y": 0}}],
		"animations": [{"name": "idle", "frames": [{"duration": 1, "frame": 0}]}]}`,
	KindLevel:      `{"name": "l", "boundary": {"left": 0, "right": 1, "top": 0, "bottom": 1}}`,
	KindTileset:    `{"name": "t", "tilesheet": "t.png", "tile_width": 8, "tile_height": 8, "tiles": [{"frames": [{"x": 0, "y": 0}]}]}`,
	KindBootloader: `{"title": "g", "controller_types": [], "collision": {"types": []}}`,
}

func TestBakeEveryKind(t *testing.T) {
	t.Parallel()

	for kind, source := range sources {
		t.Run(string(kind), func(t *testing.T) {
			t.Parallel()

			data, err := BakeSource(kind, document.JSON, []byte(source), Options{})
			if err != nil {
				t.Fatalf("BakeSource: %v", err)
			}
			if detected, ok := KindFromMagic(data); !ok || detected != kind {
				t.Errorf("KindFromMagic() = %q, %v; want %q", detected, ok, kind)
			}
			decoded, err := Verify(data)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if decoded.Kind != kind {
				t.Errorf("Kind = %q, want %q", decoded.Kind, kind)
			}
		})
	}
}

// nestedSprite returns a sprite whose animation hitbox is a box wrapped
// in depth composites.
func nestedSprite(depth int) string {
	hitbox := `{"type": "box", "left": 0, "right": 1, "top": 0, "bottom": 1}`
	hitbox = strings.Repeat(`{"type": "composite", "hitboxes": [`, depth) + hitbox + strings.Repeat(`]}`, depth)
	return `{"name": "deep", "spritesheet": "deep.png", "clips": [], "frames": [],
		"animations": [{"name": "idle", "frames": [], "solidity": {"hitbox": ` + hitbox + `}}]}`
}

func TestDeepCompositeVerifies(t *testing.T) {
	t.Parallel()

	for _, depth := range []int{64, 65, 70, 500} {
		data, err := BakeSource(KindSprite, document.JSON, []byte(nestedSprite(depth)), Options{})
		if err != nil {
			t.Fatalf("depth %d: BakeSource: %v", depth, err)
		}
		if _, err := Verify(data); err != nil {
			t.Errorf("depth %d: Verify: %v", depth, err)
		}
	}
}

func TestVerifyDetectsHeaderDrift(t *testing.T) {
	t.Parallel()

	data, err := BakeSource(KindSprite, document.JSON, []byte(sources[KindSprite]), Options{})
	if err != nil {
		t.Fatal(err)
	}
	// The string-bytes total is the last header field and is not needed
	// to decode the body.
	data[len(sprite.Magic)+40]++
	if _, err := Verify(data); !errors.Is(err, bakeerr.ErrMalformedInput) {
		t.Errorf("Verify() = %v, want malformed input", err)
	}
	if _, err := Decode(data); err != nil {
		t.Errorf("Decode() = %v, want success", err)
	}
}

func TestDecodeUnknownMagic(t *testing.T) {
	t.Parallel()

	if _, err := Decode([]byte("PlatEsomething")); !errors.Is(err, bakeerr.ErrMalformedInput) {
		t.Errorf("Decode() = %v, want malformed input", err)
	}
}

func TestParseErrorsSurface(t *testing.T) {
	t.Parallel()

	_, err := BakeSource(KindLevel, document.JSON, []byte(`{"name": `), Options{})
	if !errors.Is(err, bakeerr.ErrMalformedInput) {
		t.Errorf("BakeSource() = %v, want malformed input", err)
	}
}
