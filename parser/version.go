package parser

import "runtime/debug"

// Version is stamped at link time:
//
//	go build -ldflags "-X github.com/pablor21/enumclass/parser.Version=v1.2.3" ./cmd/enumgen
var Version = ""

// DefaultVersion is reported when neither the linker nor the build info carries a version.
const DefaultVersion = "v1.0.0"

// GetVersion returns the linked version, then the main module version, then the short VCS
// revision, then DefaultVersion.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return DefaultVersion
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return DefaultVersion
	}
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if settings["vcs.modified"] == "true" {
		rev += "-dirty"
	}
	return rev
}
