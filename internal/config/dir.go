// Package config resolves where orgjournal keeps its own files and loads the
// journal configuration.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the orgjournal configuration directory.
//
// Resolution:
//   - $ORGJOURNAL_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/orgjournal if set (respects XDG on any platform)
//   - %AppData%/orgjournal on Windows
//   - ~/.config/orgjournal on macOS and Linux
func Dir() string {
	if dir := os.Getenv("ORGJOURNAL_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "orgjournal")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "orgjournal")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "orgjournal")
}

// FilePath returns the default config file location, or "" when no config
// directory can be determined.
func FilePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// StatePath returns the navigation state file location.
func StatePath() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "state.yaml")
}
