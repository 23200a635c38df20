package config

import (
	"os"
	"path/filepath"
	"strings"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.agentx).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".agentx"), nil
}

// ExpandPath resolves a leading "~" and "$HOME"-style variables in a
// configured path. Empty stays empty so that "off" settings survive.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	path = os.ExpandEnv(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return filepath.Clean(path)
}

// DefaultStorePath returns where run history lives when enabled without an
// explicit path.
func DefaultStorePath() string {
	// XDG_DATA_HOME wins over the global dir.
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, "agentx", "runs.db")
	}
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return filepath.Join(".agentx", "runs.db")
	}
	return filepath.Join(dir, "runs.db")
}
