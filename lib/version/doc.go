// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports which build of platebake is running.
//
// Release builds inject [Version], [GitCommit] and [BuildTime] with
// -ldflags -X:
//
//	go build -ldflags "-X github.com/plate-engine/platebake/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/platebake
//
// When they are not injected, [Read] falls back to the VCS stamp the
// Go toolchain embeds in module builds, and finally to "unknown".
package version
