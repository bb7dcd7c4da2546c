package version

import (
	"strings"
	"testing"
)

func saveAndRestore() func() {
	origVersion, origCommit, origBuildTime := Version, GitCommit, BuildTime
	return func() {
		Version = origVersion
		GitCommit = origCommit
		BuildTime = origBuildTime
	}
}

func TestGetStampedValuesWin(t *testing.T) {
	defer saveAndRestore()()
	Version = "1.2.0"
	GitCommit = "abc1234"
	BuildTime = "2026-01-15T10:30:00Z"

	info := Get()
	if info.Version != "1.2.0" {
		t.Errorf("Version = %q, want 1.2.0", info.Version)
	}
	if info.GitCommit != "abc1234" {
		t.Errorf("GitCommit = %q, want abc1234", info.GitCommit)
	}
	if info.BuildTime != "2026-01-15T10:30:00Z" {
		t.Errorf("BuildTime = %q, want stamped value", info.BuildTime)
	}
	if info.GoVersion == "" {
		t.Error("GoVersion should always be populated")
	}
}

func TestShortFormats(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"version only", Info{Version: "dev"}, "dev"},
		{"with commit", Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{"long commit truncated", Info{Version: "1.0.0", GitCommit: "abc1234def5678"}, "1.0.0-abc1234"},
		{"modified", Info{Version: "1.0.0", GitCommit: "abc1234", Modified: true}, "1.0.0-abc1234-modified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.Short(); got != tt.want {
				t.Errorf("Short() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsRelease(t *testing.T) {
	if (Info{Version: "dev"}).IsRelease() {
		t.Error("dev build should not be a release")
	}
	if (Info{Version: "1.0.0", Modified: true}).IsRelease() {
		t.Error("modified build should not be a release")
	}
	if !(Info{Version: "1.0.0"}).IsRelease() {
		t.Error("stamped clean build should be a release")
	}
}

func TestString(t *testing.T) {
	info := Info{Version: "1.0.0", GitCommit: "abc1234", GoVersion: "go1.26.0", BuildTime: "2026-01-15T10:30:00Z"}

	s := info.String()
	for _, want := range []string{"1.0.0-abc1234", "go1.26.0", "built 2026-01-15T10:30:00Z"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

func TestPackageShort(t *testing.T) {
	defer saveAndRestore()()
	Version = "2.0.0"
	GitCommit = "deadbeef00"

	got := Short()
	if !strings.HasPrefix(got, "2.0.0-deadbee") {
		t.Errorf("Short() = %q, want prefix 2.0.0-deadbee", got)
	}
}
