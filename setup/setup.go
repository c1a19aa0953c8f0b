// Package setup loads project-local setup commands that run after a worktree
// is created. Two file locations are supported: .graft/setup.yaml (a mapping
// with a "setup" key) and .graft-setup.yaml (a bare command list). The first
// file found wins; a repo with neither simply runs no setup.
package setup

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	keyedFileName = "setup.yaml"
	configDirName = ".graft"
	bareFileName  = ".graft-setup.yaml"
)

// MainWorktreeEnv is the environment variable exposing the main worktree's
// path to setup commands, so they can copy ignored files (.env, local
// overrides) from the primary checkout.
const MainWorktreeEnv = "GRAFT_MAIN_WORKTREE"

type keyedFile struct {
	Setup []string `yaml:"setup"`
}

// Load returns the ordered setup commands for the repo at repoPath.
// Returns nil, nil when no setup file exists. The returned slice is never
// mutated after load.
func Load(repoPath string) ([]string, error) {
	fp := filepath.Join(repoPath, configDirName, keyedFileName)
	data, err := os.ReadFile(fp)
	if err == nil {
		var cfg keyedFile
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", fp, err)
		}
		return cfg.Setup, nil
	}
	if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", fp, err)
	}

	fp = filepath.Join(repoPath, bareFileName)
	data, err = os.ReadFile(fp)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", fp, err)
	}

	var commands []string
	if err := yaml.Unmarshal(data, &commands); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", fp, err)
	}
	return commands, nil
}
