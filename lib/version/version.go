// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports the build version of bureau-split.
//
// Release builds set Version via -ldflags:
//
//	go build -ldflags "-X github.com/bureau-foundation/bureau-split/lib/version.Version=1.2.0" ./cmd/bureau-split
//
// The commit and dirty state come from the VCS stamp the go tool
// embeds in the binary, when there is one.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the semantic version, set at build time for releases.
var Version = "0.1.0-dev"

// Build describes the running binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the build description of the running binary.
func Current() Build {
	build := Build{
		Version:   Version,
		Commit:    "unknown",
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		build.fromSettings(info.Settings)
	}
	return build
}

func (b *Build) fromSettings(settings []debug.BuildSetting) {
	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			if len(setting.Value) > 12 {
				b.Commit = setting.Value[:12]
			} else if setting.Value != "" {
				b.Commit = setting.Value
			}
		case "vcs.modified":
			b.Dirty = setting.Value == "true"
		}
	}
}

// String formats the build as a one-line version string, e.g.
// "0.1.0-dev (3f2a9c1b7e04-dirty, go1.25.6 linux/amd64)".
func (b Build) String() string {
	dirty := ""
	if b.Dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s %s)", b.Version, b.Commit, dirty, b.GoVersion, b.Platform)
}
