// Package config holds graft's persistent user settings: the default editor,
// the default PR/MR provider, and the global worktree directory.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/graft-dev/graft/paths"
)

// EditorSkipSentinel is the configured editor value meaning "never open an
// editor after creating a worktree".
const EditorSkipSentinel = "none"

// Known provider values. Empty means "detect from the upstream remote".
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
)

// Config holds the application configuration
type Config struct {
	Editor      string `json:"editor,omitempty"`       // Editor command; "none" skips editor launch
	Provider    string `json:"provider,omitempty"`     // "github" or "gitlab"; empty = auto-detect
	WorktreeDir string `json:"worktree_dir,omitempty"` // Global base dir for new worktrees; empty = sibling layout

	mu       sync.RWMutex
	filePath string
}

// Load reads the config from disk, or returns an empty one if it doesn't exist.
func Load() (*Config, error) {
	path, err := paths.ConfigFilePath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path. Used by tests.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that loaded values are usable.
func (c *Config) Validate() error {
	switch c.Provider {
	case "", ProviderGitHub, ProviderGitLab:
	default:
		return fmt.Errorf("invalid provider %q (expected %q or %q)", c.Provider, ProviderGitHub, ProviderGitLab)
	}
	return nil
}

// Save writes the config to disk. The write is guarded by a file lock so two
// graft processes cannot interleave, and goes through a tmp+rename so a crash
// mid-write never corrupts the stored config.
func (c *Config) Save() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	dir := filepath.Dir(c.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	lock := flock.New(c.filePath + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock config file: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	tmp := c.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, c.filePath); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// EditorOrDefault returns the editor command to launch, falling back to
// $EDITOR when none is configured. Returns "" when the editor is the skip
// sentinel or nothing is available.
func (c *Config) EditorOrDefault() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Editor == EditorSkipSentinel {
		return ""
	}
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}

// GetProvider returns the configured provider, or "" when unset.
func (c *Config) GetProvider() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Provider
}

// GetWorktreeDir returns the configured global worktree directory, or ""
// when worktrees should be created as siblings of the repository.
func (c *Config) GetWorktreeDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.WorktreeDir
}

// Set updates a configuration key by name. Recognized keys: editor,
// provider, worktree-dir.
func (c *Config) Set(key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch key {
	case "editor":
		c.Editor = value
	case "provider":
		if value != "" && value != ProviderGitHub && value != ProviderGitLab {
			return fmt.Errorf("invalid provider %q (expected %q or %q)", value, ProviderGitHub, ProviderGitLab)
		}
		c.Provider = value
	case "worktree-dir":
		c.WorktreeDir = value
	default:
		return fmt.Errorf("unknown config key %q (expected editor, provider, or worktree-dir)", key)
	}
	return nil
}

// Get returns a configuration value by name.
func (c *Config) Get(key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch key {
	case "editor":
		return c.Editor, nil
	case "provider":
		return c.Provider, nil
	case "worktree-dir":
		return c.WorktreeDir, nil
	default:
		return "", fmt.Errorf("unknown config key %q (expected editor, provider, or worktree-dir)", key)
	}
}
