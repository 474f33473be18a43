//go:build dev
// +build dev

package version

import (
	"runtime/debug"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			Revision = setting.Value
		case "vcs.time":
			BuildDate = setting.Value
		}
	}
	Version = info.Main.Version
}

var (
	// Version is the version number of the program.
	Version = "dev"

	// Revision is the git revision that program was built from.
	Revision = "unknown"

	// Branch is the git branch that program was built from.
	Branch = "dev"

	// BuildUser is the user that built program.
	BuildUser = "dev"

	// BuildHost is the host that built program.
	BuildHost = "dev"

	// BuildDate is the date that program was built.
	BuildDate = "unknown"
)
