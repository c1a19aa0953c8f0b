// Package worktree orchestrates the lifecycle of git worktrees: resolving
// user tokens to checkouts, creating new worktrees atomically with rollback,
// merging branches behind safety gates, and removing or purging checkouts.
package worktree

import (
	"context"

	"github.com/graft-dev/graft/config"
	gexec "github.com/graft-dev/graft/exec"
	"github.com/graft-dev/graft/forge"
	"github.com/graft-dev/graft/git"
	"github.com/graft-dev/graft/ui"
)

// Manager coordinates worktree operations for one repository. repoPath is
// the directory the command was invoked from; the main worktree may live
// elsewhere and is discovered from the worktree list.
type Manager struct {
	repoPath string
	git      *git.GitService
	cfg      *config.Config
	selector ui.Selector
	executor gexec.CommandExecutor

	// interactive is re-checked through this hook so tests can force
	// non-interactive behavior regardless of the test runner's terminal.
	interactive func() bool

	// confirm and choose carry the terminal prompts; stubbed in tests so
	// interactive paths run without a stdin.
	confirm func(prompt string, def bool) (bool, error)
	choose  func(prompt string, options []string) (int, error)

	// forgeFor builds a provider client; swapped in tests.
	forgeFor func(git.Provider, gexec.CommandExecutor) (forge.Client, error)
}

// NewManager returns a Manager using the real executor and terminal selector.
func NewManager(repoPath string, cfg *config.Config) *Manager {
	executor := gexec.NewRealExecutor()
	return &Manager{
		repoPath:    repoPath,
		git:         git.NewGitServiceWithExecutor(executor),
		cfg:         cfg,
		selector:    ui.NewTerminalSelector(),
		executor:    executor,
		interactive: ui.IsInteractive,
		confirm:     ui.Confirm,
		choose:      ui.Choose,
		forgeFor:    forge.ForProvider,
	}
}

// NewManagerWith returns a Manager with injected collaborators, for tests.
func NewManagerWith(repoPath string, cfg *config.Config, executor gexec.CommandExecutor, selector ui.Selector, interactive func() bool) *Manager {
	return &Manager{
		repoPath:    repoPath,
		git:         git.NewGitServiceWithExecutor(executor),
		cfg:         cfg,
		selector:    selector,
		executor:    executor,
		interactive: interactive,
		confirm:     ui.Confirm,
		choose:      ui.Choose,
		forgeFor:    forge.ForProvider,
	}
}

// List returns every worktree known to the repository.
func (m *Manager) List(ctx context.Context) []git.Worktree {
	return m.git.ListWorktrees(ctx, m.repoPath)
}

// Merged reports whether the worktree's branch is fully merged into the
// repository's default branch. Main and detached worktrees are never
// considered merged.
func (m *Manager) Merged(ctx context.Context, wt *git.Worktree) bool {
	if wt.Main || wt.Branch == "" {
		return false
	}
	def := m.git.DefaultBranch(ctx, m.repoPath)
	if def == wt.Branch {
		return false
	}
	return m.git.IsBranchMerged(ctx, m.repoPath, wt.Branch, def)
}

// mainWorktreePath returns the main checkout's path, falling back to the
// invocation directory when the worktree list is unavailable.
func (m *Manager) mainWorktreePath(ctx context.Context) string {
	for _, wt := range m.git.ListWorktrees(ctx, m.repoPath) {
		if wt.Main {
			return wt.Path
		}
	}
	return m.repoPath
}
