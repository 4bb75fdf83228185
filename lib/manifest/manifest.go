// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package manifest

import (
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"time"

	"github.com/plate-engine/platebake/lib/atomicfile"
	"github.com/plate-engine/platebake/lib/binhash"
)

// FileName is the manifest's name inside the target directory.
const FileName = ".platebake-manifest.cbor"

// Version is the manifest format version. A manifest with any other
// version is rejected by [Load] with [ErrVersion].
const Version = 1

// ErrVersion is returned by [Load] for a manifest written by an
// incompatible version of the tool.
var ErrVersion = errors.New("unsupported manifest version")

// Entry records one baked output.
type Entry struct {
	// Source is the source path relative to the source directory,
	// with forward slashes.
	Source string `cbor:"source"`

	// Kind is the asset kind the source was baked as.
	Kind string `cbor:"kind"`

	// SourceDigest is the [binhash.Source] digest of the source bytes
	// that produced the output.
	SourceDigest binhash.Digest `cbor:"source_digest"`

	// OutputDigest is the [binhash.Output] digest of the bytes written.
	OutputDigest binhash.Digest `cbor:"output_digest"`

	// BakedAt is the Unix time in seconds at which the output was
	// written.
	BakedAt int64 `cbor:"baked_at"`
}

// Manifest maps output paths to the entries that produced them.
type Manifest struct {
	Version int              `cbor:"version"`
	Entries map[string]Entry `cbor:"entries"`
}

// New returns an empty manifest at the current version.
func New() *Manifest {
	return &Manifest{Version: Version, Entries: make(map[string]Entry)}
}

// Load reads the manifest at filePath. A missing file yields an empty
// manifest and no error.
func Load(filePath string) (*Manifest, error) {
	data, err := os.ReadFile(filePath)
	if errors.Is(err, os.ErrNotExist) {
		return New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return Decode(data)
}

// Decode parses manifest bytes.
func Decode(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := decMode.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if manifest.Version != Version {
		return nil, fmt.Errorf("%w: %d (want %d)", ErrVersion, manifest.Version, Version)
	}
	if manifest.Entries == nil {
		manifest.Entries = make(map[string]Entry)
	}
	return &manifest, nil
}

// Encode returns the deterministic CBOR encoding of the manifest.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := encMode.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}

// Save writes the manifest atomically to filePath.
func (m *Manifest) Save(filePath string) error {
	data, err := m.Encode()
	if err != nil {
		return err
	}
	return atomicfile.WriteFile(filePath, data, 0644)
}

// Lookup returns the entry recorded for output, if any.
func (m *Manifest) Lookup(output string) (Entry, bool) {
	entry, ok := m.Entries[path.Clean(output)]
	return entry, ok
}

// Record stores entry for output, stamping BakedAt with now when the
// entry does not carry a time.
func (m *Manifest) Record(output string, entry Entry, now time.Time) {
	if entry.BakedAt == 0 {
		entry.BakedAt = now.Unix()
	}
	m.Entries[path.Clean(output)] = entry
}

// Forget removes the entry for output.
func (m *Manifest) Forget(output string) {
	delete(m.Entries, path.Clean(output))
}

// Prune removes every entry whose output is not in keep and returns
// the removed output paths in sorted order.
func (m *Manifest) Prune(keep map[string]bool) []string {
	var removed []string
	for output := range m.Entries {
		if !keep[output] {
			removed = append(removed, output)
		}
	}
	sort.Strings(removed)
	for _, output := range removed {
		delete(m.Entries, output)
	}
	return removed
}

// Fresh reports whether output can be skipped: the manifest must hold
// an entry for it whose source digest equals sourceDigest and whose
// output digest equals outputDigest. A zero outputDigest (output
// missing) is never fresh.
func (m *Manifest) Fresh(output string, sourceDigest, outputDigest binhash.Digest) bool {
	if outputDigest.IsZero() {
		return false
	}
	entry, ok := m.Lookup(output)
	if !ok {
		return false
	}
	return entry.SourceDigest == sourceDigest && entry.OutputDigest == outputDigest
}
