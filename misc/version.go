// Package misc keeps build time information.
package misc

import (
	"path/filepath"
	"runtime/debug"
	"strings"
)

// Set with -ldflags "-X leaf/misc.version=... -X leaf/misc.gitHash=..."
var (
	appName = "leaf"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns the hash set at build time or, when missing, the vcs
// revision recorded by the go tool.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				if len(s.Value) > 8 {
					return s.Value[:8]
				}
				return s.Value
			}
		}
	}
	return "unknown"
}

// SetAppName allows binaries renamed by packagers to report their own name.
func SetAppName(path string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if name != "" && name != "." {
		appName = name
	}
}
