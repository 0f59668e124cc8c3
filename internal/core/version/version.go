// Package version exposes build-time version metadata
package version

// set via -ldflags at build time
var (
	Version = "dev"
	Commit  = "none"
	BuiltAt = "unknown"
)

// Info is the reportable version bundle
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	BuiltAt string `json:"built_at"`
}

// Get returns the current build info
func Get() Info {
	return Info{Version: Version, Commit: Commit, BuiltAt: BuiltAt}
}
