// Package version provides version information for the application.
package version

import "runtime/debug"

var (
	// Version is the semantic version, set via ldflags on release builds.
	Version = "devel"

	// Revision is the VCS revision the binary was built from.
	Revision = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "devel" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			Revision = setting.Value
		}
	}
}
