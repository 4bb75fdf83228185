// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/zeebo/blake3"
)

func TestHashFileMatchesKeyedBlake3(t *testing.T) {
	t.Parallel()

	content := []byte("PlatEsprite\x00test-content")
	path := filepath.Join(t.TempDir(), "hero.sprite")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(Source, path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}

	hasher, err := blake3.NewKeyed(Source[:])
	if err != nil {
		t.Fatalf("NewKeyed: %v", err)
	}
	hasher.Write(content)
	var want Digest
	copy(want[:], hasher.Sum(nil))
	if got != want {
		t.Errorf("HashFile = %s, want %s", got, want)
	}
	if fromBytes := HashBytes(Source, content); fromBytes != want {
		t.Errorf("HashBytes = %s, want %s", fromBytes, want)
	}
}

func TestHashFileEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := HashFile(Output, path)
	if err != nil {
		t.Fatalf("HashFile: %v", err)
	}
	if want := HashBytes(Output, nil); got != want {
		t.Errorf("HashFile(empty) = %s, want %s", got, want)
	}
	if got.IsZero() {
		t.Error("digest of empty input should not be the zero digest")
	}
}

func TestHashFileNonexistent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "does-not-exist")
	if _, err := HashFile(Source, path); err == nil {
		t.Fatal("HashFile should fail for nonexistent file")
	}
}

func TestHashReaderLarge(t *testing.T) {
	t.Parallel()

	content := make([]byte, 256*1024)
	for i := range content {
		content[i] = byte(i % 251)
	}

	got, err := HashReader(PackEntry, bytes.NewReader(content))
	if err != nil {
		t.Fatalf("HashReader: %v", err)
	}
	if want := HashBytes(PackEntry, content); got != want {
		t.Errorf("HashReader(large) = %s, want %s", got, want)
	}
}

func TestDomainSeparation(t *testing.T) {
	t.Parallel()

	content := []byte("same bytes")
	source := HashBytes(Source, content)
	output := HashBytes(Output, content)
	entry := HashBytes(PackEntry, content)
	if source == output || source == entry || output == entry {
		t.Errorf("domains collide: source=%s output=%s entry=%s", source, output, entry)
	}
}

func TestDomainString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		domain Domain
		want   string
	}{
		{Source, "plate.bake.source"},
		{Output, "plate.bake.output"},
		{PackEntry, "plate.pack.entry"},
	}
	for _, test := range tests {
		if got := test.domain.String(); got != test.want {
			t.Errorf("Domain.String() = %q, want %q", got, test.want)
		}
	}
}

func TestDifferentContent(t *testing.T) {
	t.Parallel()

	if HashBytes(Source, []byte("content A")) == HashBytes(Source, []byte("content B")) {
		t.Error("different content should produce different digests")
	}
}

func TestParseDigestRoundTrip(t *testing.T) {
	t.Parallel()

	original := HashBytes(Source, []byte("round-trip"))
	formatted := FormatDigest(original)
	if length := len(formatted); length != 64 {
		t.Errorf("FormatDigest length = %d, want 64", length)
	}

	parsed, err := ParseDigest(formatted)
	if err != nil {
		t.Fatalf("ParseDigest: %v", err)
	}
	if parsed != original {
		t.Errorf("ParseDigest round-trip failed: %s != %s", parsed, original)
	}

	text, err := original.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var decoded Digest
	if err := decoded.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if decoded != original {
		t.Errorf("text round-trip failed: %s != %s", decoded, original)
	}
}

func TestParseDigestInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{"not hex", "zzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz"},
		{"too short", "abcd"},
		{"too long", "abcdef0123456789abcdef0123456789abcdef0123456789abcdef0123456789aa"},
		{"empty", ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			if _, err := ParseDigest(test.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", test.input)
			}
		})
	}
}
