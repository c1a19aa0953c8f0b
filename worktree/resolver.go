package worktree

import (
	"context"
	"os"
	"path/filepath"

	"github.com/graft-dev/graft/git"
	"github.com/graft-dev/graft/logger"
	"github.com/graft-dev/graft/paths"
)

// ResolveOptions controls worktree resolution.
type ResolveOptions struct {
	// ExcludeMain removes the main worktree from the interactive selection.
	ExcludeMain bool
	// Title labels the interactive selection when no token was given.
	Title string
}

// Resolve maps a user token to a worktree record. The token may be a
// filesystem path, a branch name, or empty (which defers to the selector).
// Path lookups follow symlinks so two spellings of the same real location
// resolve to the same record. A directory that carries a .git marker but
// is absent from the worktree list yields a synthetic record, which covers
// bare-repository layouts where checkouts are not registered with the
// primary repository.
func (m *Manager) Resolve(ctx context.Context, token string, opts ResolveOptions) (*git.Worktree, error) {
	records := m.git.ListWorktrees(ctx, m.repoPath)

	if token == "" {
		candidates := records
		if opts.ExcludeMain {
			candidates = nil
			for _, wt := range records {
				if !wt.Main {
					candidates = append(candidates, wt)
				}
			}
		}
		title := opts.Title
		if title == "" {
			title = "Select a worktree"
		}
		return m.selector.PickWorktree(ctx, title, candidates)
	}

	if info, err := os.Stat(token); err == nil && info.IsDir() {
		for i := range records {
			if paths.SamePath(token, records[i].Path) {
				return &records[i], nil
			}
		}

		// Known to the filesystem but not to git: a .git marker means it
		// is a checkout anyway.
		if _, err := os.Stat(filepath.Join(token, ".git")); err == nil {
			return m.synthesize(ctx, token), nil
		}
	}

	for i := range records {
		if records[i].Branch != "" && records[i].Branch == token {
			return &records[i], nil
		}
	}

	return nil, &NotFoundError{Token: token}
}

// synthesize builds a minimal record for an unregistered checkout.
func (m *Manager) synthesize(ctx context.Context, dir string) *git.Worktree {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	wt := &git.Worktree{
		Path: abs,
		Kind: git.KindSynthetic,
	}
	if branch, err := m.git.CurrentBranch(ctx, abs); err == nil {
		wt.Branch = branch
	} else {
		wt.Detached = true
	}

	logger.WithComponent("worktree").Debug("synthesized record from .git marker", "path", abs, "branch", wt.Branch)
	return wt
}
