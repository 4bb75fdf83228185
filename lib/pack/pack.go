// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/plate-engine/platebake/lib/atomicfile"
	"github.com/plate-engine/platebake/lib/binhash"
	"github.com/plate-engine/platebake/lib/wire"
)

// Magic opens every pack file.
const Magic = "PlatEpack"

// MaxRawSize bounds a single entry's raw size accepted by [Read].
const MaxRawSize = 1 << 30

// entryHeaderSize is the smallest possible encoded entry: path length,
// compression, raw size, stored size, and digest.
const entryHeaderSize = 4 + 1 + 4 + 4 + len(binhash.Digest{})

// ErrCorrupt is wrapped by every [Read] failure caused by the pack's
// contents rather than by I/O.
var ErrCorrupt = errors.New("corrupt pack")

// Entry is one file in a pack.
type Entry struct {
	// Path is slash-separated and relative to the pack root.
	Path string

	// Data is the file's raw (uncompressed) content.
	Data []byte

	// Compression records how Data was stored. [Read] fills it in;
	// [Encode] ignores it.
	Compression Compression

	// StoredSize is the number of bytes Data occupies in the pack.
	// [Read] fills it in; [Encode] ignores it.
	StoredSize int
}

// Encode builds a pack from entries. Entries are sorted by path and
// each is compressed with compression (CompressionAuto chooses per
// entry). Duplicate or non-local paths are rejected.
func Encode(entries []Entry, compression Compression) ([]byte, error) {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	for i, entry := range sorted {
		if err := checkPath(entry.Path); err != nil {
			return nil, err
		}
		if i > 0 && sorted[i-1].Path == entry.Path {
			return nil, fmt.Errorf("duplicate pack path %q", entry.Path)
		}
		if len(entry.Data) > MaxRawSize {
			return nil, fmt.Errorf("%s: %d bytes exceeds the %d byte entry limit", entry.Path, len(entry.Data), MaxRawSize)
		}
	}

	w := wire.NewWriter(0)
	w.Magic(Magic)
	w.Count32(len(sorted))
	for _, entry := range sorted {
		stored, used, err := compress(entry.Data, compression)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Path, err)
		}
		digest := binhash.HashBytes(binhash.PackEntry, entry.Data)

		w.String32(entry.Path)
		w.Uint8(uint8(used))
		w.Count32(len(entry.Data))
		w.Count32(len(stored))
		w.Raw(digest[:])
		w.Raw(stored)
	}
	if err := w.Err(); err != nil {
		return nil, fmt.Errorf("encoding pack: %w", err)
	}
	return w.Bytes(), nil
}

// Read parses and verifies a pack. Every entry is decompressed and its
// digest checked against the recorded one.
func Read(data []byte) ([]Entry, error) {
	r := wire.NewReader(data)
	if !r.Magic(Magic) {
		return nil, fmt.Errorf("%w: missing %s magic", ErrCorrupt, Magic)
	}
	count := r.Count(r.Uint32(), entryHeaderSize)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	entries := make([]Entry, 0, count)
	seen := make(map[string]bool, count)
	for i := 0; i < count; i++ {
		offset := r.Offset()
		entryPath := r.String32()
		compression := Compression(r.Uint8())
		rawSize := r.Uint32()
		storedSize := r.Uint32()
		var recorded binhash.Digest
		copy(recorded[:], r.Raw(uint32(len(recorded))))
		stored := r.Raw(storedSize)
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("%w: entry %d at offset %d: %v", ErrCorrupt, i, offset, err)
		}

		if err := checkPath(entryPath); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrCorrupt, i, err)
		}
		if seen[entryPath] {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrCorrupt, entryPath)
		}
		seen[entryPath] = true
		if rawSize > MaxRawSize {
			return nil, fmt.Errorf("%w: %s: raw size %d exceeds the %d byte entry limit", ErrCorrupt, entryPath, rawSize, MaxRawSize)
		}

		raw, err := decompress(stored, compression, int(rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, entryPath, err)
		}
		if actual := binhash.HashBytes(binhash.PackEntry, raw); actual != recorded {
			return nil, fmt.Errorf("%w: %s: digest %s does not match recorded %s", ErrCorrupt, entryPath, actual, recorded)
		}
		entries = append(entries, Entry{
			Path:        entryPath,
			Data:        raw,
			Compression: compression,
			StoredSize:  int(storedSize),
		})
	}
	if r.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, r.Remaining())
	}
	return entries, nil
}

// BackupSuffix marks a previous output kept by the build driver while
// a bake is in flight. [Collect] never packs backups.
const BackupSuffix = ".bk"

// Collect reads every regular file under fsys into entries, skipping
// dot-files, dot-directories, and backups.
func Collect(fsys fs.FS) ([]Entry, error) {
	var entries []Entry
	err := fs.WalkDir(fsys, ".", func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if name != "." && strings.HasPrefix(entry.Name(), ".") {
			if entry.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() || strings.HasSuffix(name, BackupSuffix) {
			return nil
		}
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Path: name, Data: data})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collecting pack entries: %w", err)
	}
	return entries, nil
}

// Extract writes entries under directory, creating subdirectories as
// needed. Each file is written atomically.
func Extract(directory string, entries []Entry) error {
	for _, entry := range entries {
		if err := checkPath(entry.Path); err != nil {
			return err
		}
		destination := filepath.Join(directory, filepath.FromSlash(entry.Path))
		if err := os.MkdirAll(filepath.Dir(destination), 0755); err != nil {
			return fmt.Errorf("creating directory for %s: %w", entry.Path, err)
		}
		if err := atomicfile.WriteFile(destination, entry.Data, 0644); err != nil {
			return err
		}
	}
	return nil
}

// checkPath accepts only clean, relative, slash-separated paths that
// stay inside the pack root.
func checkPath(entryPath string) error {
	if entryPath == "" || entryPath == "." || !fs.ValidPath(entryPath) || path.Clean(entryPath) != entryPath {
		return fmt.Errorf("invalid pack path %q", entryPath)
	}
	if len(entryPath) > math.MaxUint16 {
		return fmt.Errorf("pack path of %d bytes is too long", len(entryPath))
	}
	return nil
}
