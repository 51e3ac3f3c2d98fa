package buildinfo

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfo(t *testing.T) {
	z := &debug.BuildInfo{
		GoVersion: "go1.18",
		Main:      debug.Module{Path: "github.com/carbocation/frs2csv", Version: "(devel)"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2022-06-01T00:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	info := fromBuildInfo(z)
	if info.Commit != "abc123" || !info.Modified {
		t.Errorf("Unexpected build info %+v", info)
	}

	want := "github.com/carbocation/frs2csv (devel) built with go1.18 at commit abc123 (2022-06-01T00:00:00Z) with uncommitted changes"
	if got := info.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestEmptyInfo(t *testing.T) {
	if got := (Info{}).String(); got != "frs2csv (no build information)" {
		t.Errorf("Unexpected %q", got)
	}
}
