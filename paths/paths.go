// Package paths provides centralized path resolution for graft's data directories.
//
// graft supports the XDG Base Directory Specification for organizing files:
//
//   - Config (XDG_CONFIG_HOME): config.json — user settings worth syncing
//   - State (XDG_STATE_HOME): logs/ — transient log files
//
// An existing ~/.graft/ directory wins over everything (legacy flat layout),
// and a fresh install without any XDG variables set also lands there.
package paths

import (
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	resolved *layout
)

type layout struct {
	configDir string
	stateDir  string
	legacy    bool
}

func legacyLayout(dir string) *layout {
	return &layout{configDir: dir, stateDir: dir, legacy: true}
}

// envOr returns the environment variable's value, or home joined with the
// fallback segments when unset.
func envOr(key, home string, fallback ...string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// resolve computes the path layout once and caches it.
func resolve() (*layout, error) {
	mu.Lock()
	defer mu.Unlock()

	if resolved != nil {
		return resolved, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	legacyDir := filepath.Join(home, ".graft")

	if info, err := os.Stat(legacyDir); err == nil && info.IsDir() {
		resolved = legacyLayout(legacyDir)
		return resolved, nil
	}

	xdgSet := os.Getenv("XDG_CONFIG_HOME") != "" ||
		os.Getenv("XDG_STATE_HOME") != ""
	if !xdgSet {
		resolved = legacyLayout(legacyDir)
		return resolved, nil
	}

	resolved = &layout{
		configDir: filepath.Join(envOr("XDG_CONFIG_HOME", home, ".config"), "graft"),
		stateDir:  filepath.Join(envOr("XDG_STATE_HOME", home, ".local", "state"), "graft"),
	}
	return resolved, nil
}

// ConfigDir returns the directory for configuration files (config.json).
func ConfigDir() (string, error) {
	r, err := resolve()
	if err != nil {
		return "", err
	}
	return r.configDir, nil
}

// StateDir returns the directory for runtime state and logs.
func StateDir() (string, error) {
	r, err := resolve()
	if err != nil {
		return "", err
	}
	return r.stateDir, nil
}

// ConfigFilePath returns the full path to config.json.
func ConfigFilePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LogsDir returns the directory for log files.
func LogsDir() (string, error) {
	dir, err := StateDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "logs"), nil
}

// IsLegacyLayout returns true if using the ~/.graft/ flat layout.
func IsLegacyLayout() bool {
	r, err := resolve()
	if err != nil {
		return true // assume legacy on error
	}
	return r.legacy
}

// Reset clears the cached path resolution. This is intended for testing only.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	resolved = nil
}
