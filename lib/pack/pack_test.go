// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"bytes"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func sampleEntries(t *testing.T) []Entry {
	t.Helper()

	noise := make([]byte, 4096)
	if _, err := rand.Read(noise); err != nil {
		t.Fatalf("rand.Read: %v", err)
	}
	return []Entry{
		{Path: "world/one.level", Data: bytes.Repeat([]byte("PlatElevel tile "), 512)},
		{Path: "actors/hero.sprite", Data: noise},
		{Path: "engine.boot", Data: []byte("PlatEboot")},
		{Path: "empty.tileset", Data: nil},
	}
}

func TestEncodeReadRoundTrip(t *testing.T) {
	t.Parallel()

	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd, CompressionAuto} {
		t.Run(compression.String(), func(t *testing.T) {
			t.Parallel()

			entries := sampleEntries(t)
			data, err := Encode(entries, compression)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			if !bytes.HasPrefix(data, []byte(Magic)) {
				t.Fatalf("pack does not start with %q", Magic)
			}

			decoded, err := Read(data)
			if err != nil {
				t.Fatalf("Read: %v", err)
			}
			wantOrder := []string{"actors/hero.sprite", "empty.tileset", "engine.boot", "world/one.level"}
			if len(decoded) != len(wantOrder) {
				t.Fatalf("Read returned %d entries, want %d", len(decoded), len(wantOrder))
			}
			byPath := make(map[string][]byte)
			for _, entry := range entries {
				byPath[entry.Path] = entry.Data
			}
			for i, entry := range decoded {
				if entry.Path != wantOrder[i] {
					t.Errorf("entry %d path = %q, want %q", i, entry.Path, wantOrder[i])
				}
				if !bytes.Equal(entry.Data, byPath[entry.Path]) {
					t.Errorf("%s: data mismatch", entry.Path)
				}
			}
		})
	}
}

func TestIncompressibleStoredRaw(t *testing.T) {
	t.Parallel()

	entries := sampleEntries(t)
	data, err := Encode(entries, CompressionZstd)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	for _, entry := range decoded {
		switch entry.Path {
		case "actors/hero.sprite", "engine.boot", "empty.tileset":
			if entry.Compression != CompressionNone {
				t.Errorf("%s stored with %s, want none", entry.Path, entry.Compression)
			}
			if entry.StoredSize != len(entry.Data) {
				t.Errorf("%s stored size = %d, want %d", entry.Path, entry.StoredSize, len(entry.Data))
			}
		case "world/one.level":
			if entry.Compression != CompressionZstd {
				t.Errorf("%s stored with %s, want zstd", entry.Path, entry.Compression)
			}
			if entry.StoredSize >= len(entry.Data) {
				t.Errorf("%s stored size %d not smaller than raw %d", entry.Path, entry.StoredSize, len(entry.Data))
			}
		}
	}
}

func TestEncodeDeterministic(t *testing.T) {
	t.Parallel()

	entries := sampleEntries(t)
	reversed := []Entry{entries[3], entries[2], entries[1], entries[0]}

	first, err := Encode(entries, CompressionAuto)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	second, err := Encode(reversed, CompressionAuto)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("entry order changed the encoded pack")
	}
}

func TestEncodeRejectsPaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		entries []Entry
	}{
		{"parent escape", []Entry{{Path: "../evil.sprite"}}},
		{"absolute", []Entry{{Path: "/etc/passwd"}}},
		{"unclean", []Entry{{Path: "a//b.sprite"}}},
		{"empty", []Entry{{Path: ""}}},
		{"duplicate", []Entry{{Path: "a.sprite"}, {Path: "a.sprite"}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if _, err := Encode(test.entries, CompressionNone); err == nil {
				t.Error("Encode should fail")
			}
		})
	}
}

func TestReadDetectsCorruption(t *testing.T) {
	t.Parallel()

	data, err := Encode([]Entry{{Path: "engine.boot", Data: []byte("PlatEboot payload")}}, CompressionNone)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	// Layout offsets for the single entry.
	pathOffset := len(Magic) + 4
	compressionOffset := pathOffset + 4 + len("engine.boot")
	digestOffset := compressionOffset + 1 + 4 + 4
	dataOffset := digestOffset + 32

	mutate := func(f func([]byte)) []byte {
		corrupted := bytes.Clone(data)
		f(corrupted)
		return corrupted
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"bad magic", mutate(func(b []byte) { b[0] = 'X' })},
		{"flipped data byte", mutate(func(b []byte) { b[dataOffset] ^= 0xff })},
		{"flipped digest byte", mutate(func(b []byte) { b[digestOffset] ^= 0xff })},
		{"unknown compression", mutate(func(b []byte) { b[compressionOffset] = 9 })},
		{"huge count", mutate(func(b []byte) { binary.LittleEndian.PutUint32(b[len(Magic):], 1<<30) })},
		{"truncated", data[:len(data)-3]},
		{"trailing bytes", append(bytes.Clone(data), 0)},
		{"escaping path", mutate(func(b []byte) { copy(b[pathOffset+4:], "../../boot!") })},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := Read(test.data)
			if !errors.Is(err, ErrCorrupt) {
				t.Errorf("Read error = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestCollectAndExtract(t *testing.T) {
	t.Parallel()

	source := fstest.MapFS{
		"engine.boot":              {Data: []byte("boot")},
		"actors/hero.sprite":       {Data: []byte("hero")},
		"actors/hero.sprite.bk":    {Data: []byte("backup")},
		".platebake-manifest.cbor": {Data: []byte("manifest")},
		".cache/ignored.sprite":    {Data: []byte("hidden")},
		"world/.hidden/skip.level": {Data: []byte("hidden")},
		"world/levels/one.level":   {Data: []byte("one")},
	}
	entries, err := Collect(source)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	var paths []string
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}
	want := []string{"actors/hero.sprite", "engine.boot", "world/levels/one.level"}
	if len(paths) != len(want) {
		t.Fatalf("Collect paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("Collect paths = %v, want %v", paths, want)
			break
		}
	}

	data, err := Encode(entries, CompressionAuto)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	decoded, err := Read(data)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	directory := t.TempDir()
	if err := Extract(directory, decoded); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	content, err := os.ReadFile(filepath.Join(directory, "world", "levels", "one.level"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(content) != "one" {
		t.Errorf("extracted content = %q, want %q", content, "one")
	}
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  Compression
	}{
		{"none", CompressionNone},
		{"lz4", CompressionLZ4},
		{"zstd", CompressionZstd},
		{"auto", CompressionAuto},
		{"", CompressionAuto},
	}
	for _, test := range tests {
		got, err := ParseCompression(test.input)
		if err != nil {
			t.Errorf("ParseCompression(%q): %v", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("ParseCompression(%q) = %s, want %s", test.input, got, test.want)
		}
	}
	if _, err := ParseCompression("brotli"); err == nil {
		t.Error("ParseCompression(brotli) should fail")
	}
}
