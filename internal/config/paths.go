package config

import (
	"os"
	"path/filepath"
	"strings"
)

// RootDir returns the single directory sabi uses for everything it persists:
// config.toml, mcp.toml, and the debug log. spec.md names "~/.sabi/" directly.
func RootDir() string {
	home := GetHomeDir()
	return filepath.Join(home, ".sabi")
}

// GetHomeDir returns the user's home directory, falling back to "/" if unset.
func GetHomeDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = "/"
	}
	return home
}

// ConfigFilePath returns the path to config.toml under RootDir.
func ConfigFilePath() string {
	return filepath.Join(RootDir(), "config.toml")
}

// McpConfigFilePath returns the path to mcp.toml under RootDir.
func McpConfigFilePath() string {
	return filepath.Join(RootDir(), "mcp.toml")
}

// DebugLogPath returns the path to the debug log file under RootDir.
func DebugLogPath() string {
	return filepath.Join(RootDir(), "debug.log")
}

// ExpandPath expands a leading ~ and any environment variables in path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(GetHomeDir(), path[2:])
	} else if path == "~" {
		path = GetHomeDir()
	}
	path = os.ExpandEnv(path)
	return filepath.Clean(path)
}

// EnsureDir creates a directory (and parents) with user-only permissions.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0700)
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
