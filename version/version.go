package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables can be overridden at build time using -ldflags.
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the build of the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	GoVersion string `json:"go_version"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
}

// Get returns build information. Values stamped via -ldflags take
// precedence; missing fields are filled from debug.ReadBuildInfo when
// the binary carries VCS metadata.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GoVersion: runtime.Version(),
		BuildTime: BuildTime,
	}

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if buildInfo.GoVersion != "" {
		info.GoVersion = buildInfo.GoVersion
	}
	for _, setting := range buildInfo.Settings {
		switch setting.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = shortCommit(setting.Value)
			}
		case "vcs.time":
			if info.BuildTime == "" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					info.BuildTime = t.UTC().Format(time.RFC3339)
				}
			}
		case "vcs.modified":
			info.Modified = setting.Value == "true"
		}
	}
	return info
}

// Short returns a compact version string for the running binary.
func Short() string {
	return Get().Short()
}

// IsRelease reports whether the build carries a stamped release version.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !i.Modified
}

// Short formats the info as "version", "version-commit", or
// "version-commit-modified" for builds with local changes.
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	s := fmt.Sprintf("%s-%s", i.Version, shortCommit(i.GitCommit))
	if i.Modified {
		s += "-modified"
	}
	return s
}

// String formats the info for human consumption.
func (i Info) String() string {
	parts := []string{i.Short(), i.GoVersion}
	if i.BuildTime != "" {
		parts = append(parts, fmt.Sprintf("built %s", i.BuildTime))
	}
	return strings.Join(parts, ", ")
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
