// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package engine bakes the engine configuration into the PlatEboot
// binary the engine reads at startup.
//
// The configuration names the game, the asset directory, the
// controller types with their axes and buttons, the collision types
// with their debug colours and the types each acts on, and the
// collision channels. Every length and count is a u16 and there is no
// aggregate header:
//
//	"PlatEboot"
//	title, asset dir                         u16 len + bytes
//	u16 controller types    name, u16 axes + names, u16 buttons + names
//	u16 collision types     name, u8 r/g/b, u16 acts_on + u16 indices
//	u16 channels + names
//
// acts_on entries are indices into the collision type table: the
// intrinsic types first, then the configured types in order. Names must
// match [A-Za-z_][A-Za-z0-9_]*. Validation reports every illegal,
// duplicated and unresolved name in one error.
package engine
