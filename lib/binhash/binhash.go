// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package binhash

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed digest.
type Digest [32]byte

// Domain is a 32-byte BLAKE3 key. The key bytes are the ASCII domain
// name, zero-padded, so keys stay readable in hex dumps.
type Domain [32]byte

// Hash domains. Changing a key invalidates every digest recorded in
// that domain (manifests and packs written by earlier versions).
var (
	Source    = newDomain("plate.bake.source")
	Output    = newDomain("plate.bake.output")
	PackEntry = newDomain("plate.pack.entry")
)

func newDomain(name string) Domain {
	if len(name) > len(Domain{}) {
		panic("binhash: domain name too long: " + name)
	}
	var domain Domain
	copy(domain[:], name)
	return domain
}

// String returns the domain name without its zero padding.
func (d Domain) String() string {
	end := 0
	for end < len(d) && d[end] != 0 {
		end++
	}
	return string(d[:end])
}

func newHasher(domain Domain) *blake3.Hasher {
	hasher, err := blake3.NewKeyed(domain[:])
	if err != nil {
		// Only reachable with a key that is not 32 bytes.
		panic("binhash: creating keyed hasher: " + err.Error())
	}
	return hasher
}

// HashBytes computes the digest of data in the given domain.
func HashBytes(domain Domain, data []byte) Digest {
	hasher := newHasher(domain)
	hasher.Write(data)
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest
}

// HashReader streams r through the hash until EOF.
func HashReader(domain Domain, r io.Reader) (Digest, error) {
	hasher := newHasher(domain)
	if _, err := io.Copy(hasher, r); err != nil {
		return Digest{}, err
	}
	var digest Digest
	copy(digest[:], hasher.Sum(nil))
	return digest, nil
}

// HashFile computes the digest of the file at path. The file is
// streamed through the hash function (via io.Copy) so memory usage is
// constant regardless of file size.
func HashFile(domain Domain, path string) (Digest, error) {
	file, err := os.Open(path)
	if err != nil {
		return Digest{}, fmt.Errorf("opening %s for hashing: %w", path, err)
	}
	defer file.Close()

	digest, err := HashReader(domain, file)
	if err != nil {
		return Digest{}, fmt.Errorf("hashing %s: %w", path, err)
	}
	return digest, nil
}

// IsZero reports whether d is the zero digest, which the manifest uses
// for "not recorded".
func (d Digest) IsZero() bool {
	return d == Digest{}
}

// String returns the hex encoding of the digest.
func (d Digest) String() string {
	return FormatDigest(d)
}

// MarshalText encodes the digest as hex, so it appears as a text
// string in CBOR and JSON.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(FormatDigest(d)), nil
}

// UnmarshalText parses a hex digest.
func (d *Digest) UnmarshalText(text []byte) error {
	parsed, err := ParseDigest(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FormatDigest returns the hex-encoded string representation of a
// digest.
func FormatDigest(digest Digest) string {
	return hex.EncodeToString(digest[:])
}

// ParseDigest parses a hex-encoded digest string. Returns an error if
// the string is not a valid 64-character hex encoding of 32 bytes.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return digest, fmt.Errorf("parsing hash digest: %w", err)
	}
	if len(decoded) != len(digest) {
		return digest, fmt.Errorf("hash digest is %d bytes, want %d", len(decoded), len(digest))
	}
	copy(digest[:], decoded)
	return digest, nil
}
