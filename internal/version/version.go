// Package version provides build information for alertdeck.
package version

import "runtime"

// Name is the program name shown in banners.
const Name = "alertdeck"

// Version is the release version. Overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. Overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// Banner returns the one-line version banner.
func Banner() string {
	return Name + " v" + String()
}

// Info is the machine readable build information.
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{Name: Name, Version: Version, Commit: Commit, GoVersion: runtime.Version()}
}
