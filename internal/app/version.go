package app

import (
	"fmt"
	"runtime/debug"
)

// Version, Commit and BuildTime are stamped by the release build:
//
//	go build -ldflags "-X github.com/heartmarshall/sapl-backend/internal/app.Version=3.1.0" ./cmd/server
//
// Without ldflags, Commit and BuildTime fall back to the VCS data the Go
// toolchain embeds.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion returns the version string reported by startup logs and /health.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsCommit, vcsTime := vcsInfo()
		if commit == "" {
			commit = vcsCommit
		}
		if built == "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, orUnknown(commit), orUnknown(built))
}

func vcsInfo() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
			if len(revision) > 12 {
				revision = revision[:12]
			}
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
