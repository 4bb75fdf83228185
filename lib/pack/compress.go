// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package pack

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression identifies how an entry's bytes are stored. Values are
// format constants.
type Compression uint8

const (
	// CompressionNone stores raw bytes.
	CompressionNone Compression = 0

	// CompressionLZ4 stores an LZ4 block. Fast to decode, modest
	// ratio.
	CompressionLZ4 Compression = 1

	// CompressionZstd stores a zstd frame at the default level.
	CompressionZstd Compression = 2

	// CompressionAuto is never written. It asks [Encode] to try each
	// entry and pick one of the stored algorithms.
	CompressionAuto Compression = 0xff
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	case CompressionAuto:
		return "auto"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// ParseCompression parses a compression name as accepted on the
// command line and in the config file.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	case "auto", "":
		return CompressionAuto, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4, zstd, or auto)", name)
	}
}

// errIncompressible is returned when the compressed form is not
// smaller than the input. The caller falls back to CompressionNone.
var errIncompressible = errors.New("data is incompressible")

// zstd.Encoder and zstd.Decoder are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("pack: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("pack: zstd decoder initialization failed: " + err.Error())
	}
}

// compress returns the stored bytes and the compression actually used.
func compress(data []byte, compression Compression) ([]byte, Compression, error) {
	if compression == CompressionAuto {
		compression = selectCompression(data)
	}

	var (
		stored []byte
		err    error
	)
	switch compression {
	case CompressionNone:
		return data, CompressionNone, nil
	case CompressionLZ4:
		stored, err = compressLZ4(data)
	case CompressionZstd:
		stored, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("unsupported compression %s", compression)
	}
	if errors.Is(err, errIncompressible) {
		return data, CompressionNone, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return stored, compression, nil
}

func decompress(stored []byte, compression Compression, rawSize int) ([]byte, error) {
	switch compression {
	case CompressionNone:
		if len(stored) != rawSize {
			return nil, fmt.Errorf("uncompressed entry: size %d does not match expected %d", len(stored), rawSize)
		}
		return stored, nil
	case CompressionLZ4:
		return decompressLZ4(stored, rawSize)
	case CompressionZstd:
		return decompressZstd(stored, rawSize)
	default:
		return nil, fmt.Errorf("unsupported compression %s", compression)
	}
}

// selectCompression trial-compresses data with zstd. A ratio of 1.5x or better
// selects zstd, 1.1x or better selects LZ4, anything less stores raw.
func selectCompression(data []byte) Compression {
	if len(data) == 0 {
		return CompressionNone
	}
	compressed := zstdEncoder.EncodeAll(data, nil)
	ratio := float64(len(data)) / float64(len(compressed))
	switch {
	case ratio >= 1.5:
		return CompressionZstd
	case ratio >= 1.1:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, rawSize int) ([]byte, error) {
	destination := make([]byte, rawSize)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != rawSize {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, rawSize)
	}
	return destination, nil
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, rawSize int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, rawSize))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != rawSize {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), rawSize)
	}
	return result, nil
}
