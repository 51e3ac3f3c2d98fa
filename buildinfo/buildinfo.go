// Package buildinfo reports which commit a binary was built from, so that the
// tables it writes can be traced back to the code that produced them.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

type Info struct {
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (i Info) String() string {
	if i.Module == "" {
		return "frs2csv (no build information)"
	}

	out := fmt.Sprintf("%s %s built with %s", i.Module, i.Version, i.GoVersion)
	if i.Commit != "" {
		out += fmt.Sprintf(" at commit %s (%s)", i.Commit, i.CommitTime)
	}
	if i.Modified {
		out += " with uncommitted changes"
	}

	return out
}

// Read returns the running binary's build information. Fields are empty when
// the binary was built without module support.
func Read() Info {
	z, ok := debug.ReadBuildInfo()
	if !ok {
		return Info{}
	}

	return fromBuildInfo(z)
}

func fromBuildInfo(z *debug.BuildInfo) Info {
	out := Info{
		Module:    z.Main.Path,
		Version:   z.Main.Version,
		GoVersion: z.GoVersion,
	}

	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}
