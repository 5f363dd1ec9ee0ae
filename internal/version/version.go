package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// Set at build time:
//
//	go build -ldflags="-X github.com/muurk/shoplist/internal/version.Version=v0.3.0 \
//	                   -X github.com/muurk/shoplist/internal/version.Commit=abc1234"
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		v, c := fromBuildInfo()
		if Version == "" {
			Version = v
		}
		if Commit == "" {
			Commit = c
		}
	}

	if Version == "" {
		Version = fmt.Sprintf("dev-%s", time.Now().Format("20060102-150405"))
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fromBuildInfo derives a dev version and short commit from VCS stamps.
func fromBuildInfo() (version, commit string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		version = info.Main.Version
	}

	settings := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	return version, commitFromSettings(settings, &version)
}

func commitFromSettings(settings map[string]string, version *string) string {
	commit := settings["vcs.revision"]
	if len(commit) > 7 {
		commit = commit[:7]
	}
	if commit != "" && settings["vcs.modified"] == "true" {
		commit += "-dirty"
	}

	if *version == "" {
		if t, err := time.Parse(time.RFC3339, settings["vcs.time"]); err == nil {
			*version = "dev-" + t.Format("20060102")
		}
	}
	return commit
}

// Full returns the version with its commit.
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent is sent by the API client on every request.
func UserAgent() string {
	return fmt.Sprintf("shoplist/%s (%s/%s)", Version, runtime.GOOS, runtime.GOARCH)
}
