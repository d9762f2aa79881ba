// Package version reports build metadata for the manifex binary.
//
// Release builds inject version, gitCommit, and buildDate through
// -ldflags. Binaries built straight from the module, such as via
// go install, fall back to whatever [debug.ReadBuildInfo] recorded.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
)

// Injected via -ldflags at release time.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// Info is the resolved build metadata.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"gitCommit"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// GetInfo resolves the build metadata, preferring -ldflags values and
// filling gaps from the embedded module build info.
func GetInfo() Info {
	v, commit, date := version, gitCommit, buildDate

	if bi, ok := debug.ReadBuildInfo(); ok {
		if v == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			v = bi.Main.Version
		}

		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "none" {
					commit = s.Value
				}
			case "vcs.time":
				if date == "unknown" {
					date = s.Value
				}
			}
		}
	}

	return Info{
		Version:   v,
		GitCommit: shortCommit(commit),
		BuildDate: date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Short returns the bare version number.
func (i Info) Short() string {
	return i.Version
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	return fmt.Sprintf("manifex %s (commit: %s, built: %s, %s %s)",
		i.Version, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform)
}

// JSON returns the version info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling version info: %w", err)
	}

	return string(data), nil
}

// shortCommit trims a full SHA to the conventional 7 characters.
func shortCommit(commit string) string {
	const n = 7
	if len(commit) <= n {
		return commit
	}

	return commit[:n]
}
