// Package version exposes the build metadata served on /version.
package version

import "runtime"

// Overridden through -ldflags on release builds; a plain `go build`
// reports the dev defaults.
var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the git commit SHA the binary was built from.
	Commit = "unknown"
	// BuildTime is the ISO 8601 timestamp of the build.
	BuildTime = "unknown"
)

// Info is the /version response payload.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get collects the build metadata of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}
