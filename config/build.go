// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package config

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// BuildVersion is the latest tagged release of htmlloc.
const BuildVersion string = "v0.3.0"

const shortRevisionLength = 8

// reportedModules are the dependencies whose versions affect formatting
// output, listed by the version command.
var reportedModules = []string{
	"github.com/a-h/templ",
	"github.com/leonelquinteros/gotext",
	"github.com/microcosm-cc/bluemonday",
	"golang.org/x/text",
}

// BuildInfo describes the running binary.
type BuildInfo struct {
	GoVersion   string
	VcsRevision string
	VcsTime     string
	VcsModified bool

	// Modules maps a reported module path to its resolved version.
	Modules map[string]string
}

// ReadBuildInfo collects VCS and dependency information embedded by the Go
// toolchain. Fields are left empty when the binary carries none.
func ReadBuildInfo() BuildInfo {
	var b BuildInfo

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}

	b.GoVersion = info.GoVersion
	b.VcsRevision = getBuildSetting(info.Settings, "vcs.revision")
	b.VcsTime = getBuildSetting(info.Settings, "vcs.time")
	b.VcsModified = getBuildSetting(info.Settings, "vcs.modified") == "true"
	b.Modules = make(map[string]string, len(reportedModules))

	for _, dep := range info.Deps {
		for _, path := range reportedModules {
			if dep.Path == path {
				b.Modules[path] = dep.Version
			}
		}
	}

	return b
}

// Revision returns "<date>-<short hash>[+dirty]", or "unknown" outside a VCS build.
func (b BuildInfo) Revision() string {
	if b.VcsRevision == "" {
		return "unknown"
	}

	rev := b.VcsRevision
	if len(rev) > shortRevisionLength {
		rev = rev[:shortRevisionLength]
	}

	s := strings.Split(b.VcsTime, "T")[0] + "-" + rev
	if b.VcsModified {
		s += "+dirty"
	}

	return s
}

// String renders the version banner followed by one line per reported module.
func (b BuildInfo) String() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "htmlloc %s (%s)", BuildVersion, b.Revision())

	if b.GoVersion != "" {
		fmt.Fprintf(&sb, " %s", b.GoVersion)
	}

	for _, path := range reportedModules {
		if v, ok := b.Modules[path]; ok {
			fmt.Fprintf(&sb, "\n  %s %s", path, v)
		}
	}

	return sb.String()
}

func getBuildSetting(settings []debug.BuildSetting, key string) string {
	for _, kv := range settings {
		if key == kv.Key {
			return kv.Value
		}
	}

	return ""
}
