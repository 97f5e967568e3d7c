package config

import (
	"os"
	"path/filepath"
)

const appName = "vigaff"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultWordListDir returns the directory searched for key and word lists.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appName, "wordlists")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, "keys.db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// ResolveListPath returns path unchanged when it exists, otherwise the same
// name inside DefaultWordListDir, trying a .txt suffix too.
func ResolveListPath(path string) string {
	if _, err := os.Stat(path); err == nil || filepath.IsAbs(path) {
		return path
	}
	for _, candidate := range []string{
		filepath.Join(DefaultWordListDir(), path),
		filepath.Join(DefaultWordListDir(), path+".txt"),
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return path
}
