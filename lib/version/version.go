// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags at build time.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildTime = ""
)

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildTime string `json:"build_time"`
	Go        string `json:"go"`
	Platform  string `json:"platform"`
}

// Read returns the running binary's build information.
func Read() Build {
	build := Build{
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildTime,
		Go:        runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		build.fill(info.Settings)
	}
	if build.Commit == "" {
		build.Commit = "unknown"
	}
	if build.BuildTime == "" {
		build.BuildTime = "unknown"
	}
	return build
}

// fill takes whatever ldflags left unset from the toolchain's VCS stamp.
func (b *Build) fill(settings []debug.BuildSetting) {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = setting.Value
				if len(b.Commit) > 12 {
					b.Commit = b.Commit[:12]
				}
			}
		case "vcs.time":
			if b.BuildTime == "" {
				b.BuildTime = setting.Value
			}
		case "vcs.modified":
			b.Dirty = setting.Value == "true"
		}
	}
}

// String formats b for --version style output.
func (b Build) String() string {
	dirty := ""
	if b.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", b.Version, b.Commit, dirty, b.BuildTime)
}
