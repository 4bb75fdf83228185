// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package wire

import (
	"encoding/hex"
	"strings"

	"github.com/plate-engine/platebake/lib/bakeerr"
)

// ParseRGB parses "#rrggbb" or "rrggbb". field is the document path
// used in the error.
func ParseRGB(field, s string) (RGB, error) {
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 {
		return RGB{}, bakeerr.Malformed(field, "colour %q is not of the form #rrggbb", s)
	}
	decoded, err := hex.DecodeString(digits)
	if err != nil {
		return RGB{}, bakeerr.Malformed(field, "colour %q is not of the form #rrggbb", s)
	}
	return RGB{R: decoded[0], G: decoded[1], B: decoded[2]}, nil
}

// String formats the colour as "#rrggbb".
func (c RGB) String() string {
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
}
