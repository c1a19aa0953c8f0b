package worktree

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/graft-dev/graft/git"
	"github.com/graft-dev/graft/logger"
	"github.com/graft-dev/graft/ui"
)

// Remove removes the worktree identified by token. The main worktree is
// always refused, force notwithstanding. A locked worktree requires force.
// Interactive runs confirm before removing, and a "modified or untracked
// files" refusal from git offers a forced retry instead of failing flat.
// On success the local branch may be deleted as well, with an escalation
// prompt when it is not fully merged.
func (m *Manager) Remove(ctx context.Context, token string, force bool) error {
	wt, err := m.Resolve(ctx, token, ResolveOptions{ExcludeMain: true, Title: "Select a worktree to remove"})
	if err != nil {
		return err
	}

	if wt.Main {
		return &PreconditionError{Reason: "refusing to remove the main worktree"}
	}
	if wt.Locked && !force {
		reason := wt.LockReason
		if reason == "" {
			reason = "no reason given"
		}
		return &PreconditionError{Reason: fmt.Sprintf("worktree is locked (%s); pass --force to remove it", reason)}
	}

	if !force && m.interactive() {
		ok, err := m.confirm(fmt.Sprintf("Remove worktree %s (%s)?", wt.DisplayName(), wt.Path), false)
		if err != nil {
			return err
		}
		if !ok {
			return ui.ErrCancelled
		}
	}

	if err := m.removeWorktree(ctx, wt, force); err != nil {
		return err
	}

	m.offerBranchDeletion(ctx, wt)
	m.git.PruneWorktrees(ctx, m.repoPath)
	return nil
}

// removeWorktree performs the actual removal: git metadata first, then any
// leftover directory. A dirty-worktree refusal becomes an interactive
// forced retry when possible.
func (m *Manager) removeWorktree(ctx context.Context, wt *git.Worktree, force bool) error {
	out, err := m.git.RemoveWorktree(ctx, m.repoPath, wt.Path, force)
	if err != nil {
		if !git.IsModifiedOrUntrackedRefusal(out) || !m.interactive() {
			return err
		}
		prompt := fmt.Sprintf("%s contains modified or untracked files. Remove anyway?", wt.Path)
		if files, _ := m.git.ChangedFiles(ctx, wt.Path); len(files) > 0 {
			prompt = fmt.Sprintf("%s contains changes (%s). Remove anyway?", wt.Path, strings.Join(files, ", "))
		}
		ok, confirmErr := m.confirm(prompt, false)
		if confirmErr != nil || !ok {
			return err
		}
		if _, err := m.git.RemoveWorktree(ctx, m.repoPath, wt.Path, true); err != nil {
			return err
		}
	}

	// git may leave the directory behind; a prior manual delete is fine too.
	if _, statErr := os.Stat(wt.Path); statErr == nil {
		if rmErr := os.RemoveAll(wt.Path); rmErr != nil {
			return fmt.Errorf("worktree removed but its directory could not be deleted: %w", rmErr)
		}
	}

	logger.WithComponent("worktree").Info("worktree removed", "path", wt.Path, "branch", wt.Branch)
	return nil
}

// offerBranchDeletion asks to delete the worktree's local branch, escalating
// to a forced delete when git refuses because it is not fully merged.
func (m *Manager) offerBranchDeletion(ctx context.Context, wt *git.Worktree) {
	if wt.Branch == "" || !m.interactive() {
		return
	}

	ok, err := m.confirm(fmt.Sprintf("Delete local branch %s?", wt.Branch), false)
	if err != nil || !ok {
		return
	}

	delErr := m.git.DeleteBranch(ctx, m.repoPath, wt.Branch, false)
	if delErr == nil {
		return
	}
	if !git.IsBranchNotMergedRefusal(delErr) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", delErr)
		return
	}

	ok, err = m.confirm(fmt.Sprintf("Branch %s is not fully merged. Force delete?", wt.Branch), false)
	if err != nil || !ok {
		return
	}
	if err := m.git.DeleteBranch(ctx, m.repoPath, wt.Branch, true); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// Purge removes several worktrees chosen from a multi-select. The main
// worktree never appears in the selectable set.
func (m *Manager) Purge(ctx context.Context, force bool) error {
	var candidates []git.Worktree
	for _, wt := range m.git.ListWorktrees(ctx, m.repoPath) {
		if !wt.Main {
			candidates = append(candidates, wt)
		}
	}
	if len(candidates) == 0 {
		return &PreconditionError{Reason: "no removable worktrees"}
	}

	chosen, err := m.selector.PickWorktrees(ctx, "Select worktrees to purge", candidates)
	if err != nil {
		return err
	}

	if !force && m.interactive() {
		ok, err := m.confirm(fmt.Sprintf("Remove %d worktree(s)?", len(chosen)), false)
		if err != nil {
			return err
		}
		if !ok {
			return ui.ErrCancelled
		}
	}

	var failed int
	for i := range chosen {
		wt := &chosen[i]
		if wt.Locked && !force {
			fmt.Fprintf(os.Stderr, "skipping %s: locked\n", wt.Path)
			failed++
			continue
		}
		if err := m.removeWorktree(ctx, wt, force); err != nil {
			fmt.Fprintf(os.Stderr, "failed to remove %s: %v\n", wt.Path, err)
			failed++
		}
	}

	m.git.PruneWorktrees(ctx, m.repoPath)
	if failed > 0 {
		return fmt.Errorf("%d worktree(s) could not be removed", failed)
	}
	return nil
}
