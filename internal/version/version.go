// Where: cli/internal/version/version.go
// What: Version information retrieval.
// Why: Report which build of the setup CLI is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// Version can be overridden at link time with -ldflags "-X .../version.Version=v1.2.3".
var Version = ""

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the linked version when set, otherwise the VCS revision
// from build info, optionally suffixed with "(dirty)". It returns "dev" when
// neither is available.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := readBuildInfo()
	if !ok {
		return "dev"
	}

	var revision string
	var modified bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
			if len(revision) > 7 {
				revision = revision[:7]
			}
		case "vcs.modified":
			modified = setting.Value == "true"
		}
	}

	if revision == "" {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			return info.Main.Version
		}
		return "dev"
	}
	if modified {
		return fmt.Sprintf("%s (dirty)", revision)
	}
	return revision
}
