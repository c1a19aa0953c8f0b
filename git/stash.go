package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/graft-dev/graft/logger"
)

// StashHandle identifies a stash created for one dirty-state rescue.
// The stash is addressed by its commit hash, never by position in the
// shared stash stack, so rescues stay race-safe against other stash use
// in the same repository.
type StashHandle struct {
	Hash string // stash commit hash
	ID   string // rescue operation id, for log correlation
}

// Stash captures all uncommitted changes (including untracked files) in the
// worktree at path as a content-addressed stash object, then resets the
// worktree to a clean state. Returns nil when the worktree is already clean.
//
// The stash object is created with `git stash create`, which never touches
// the stash stack: two interleaved rescues, or a user's own stashes, cannot
// be confused with this one.
func (s *GitService) Stash(ctx context.Context, path string) (*StashHandle, error) {
	log := logger.WithComponent("git")

	clean, err := s.IsClean(ctx, path)
	if err != nil {
		return nil, err
	}
	if clean {
		return nil, nil
	}

	id := uuid.New().String()[:8]

	// Stage everything so untracked files are captured by the stash object.
	if output, err := s.executor.CombinedOutput(ctx, path, "git", "add", "-A"); err != nil {
		return nil, fmt.Errorf("failed to stage changes for rescue: %s: %w", strings.TrimSpace(string(output)), err)
	}

	output, err := s.executor.Output(ctx, path, "git", "stash", "create", fmt.Sprintf("graft rescue %s", id))
	if err != nil {
		return nil, fmt.Errorf("failed to create stash: %w", err)
	}

	hash := strings.TrimSpace(string(output))
	if hash == "" {
		// Changes were detected but no stash came back; there is nothing to
		// restore from, so no rescue is possible.
		return nil, fmt.Errorf("stash create produced no commit despite uncommitted changes")
	}

	// Now reach the clean state the stash represents.
	if output, err := s.executor.CombinedOutput(ctx, path, "git", "reset", "--hard", "HEAD"); err != nil {
		return nil, fmt.Errorf("failed to reset after stash: %s: %w", strings.TrimSpace(string(output)), err)
	}
	if output, err := s.executor.CombinedOutput(ctx, path, "git", "clean", "-fd"); err != nil {
		return nil, fmt.Errorf("failed to clean untracked files after stash: %s: %w", strings.TrimSpace(string(output)), err)
	}

	log.Info("created rescue stash", "rescueID", id, "hash", hash, "path", path)
	return &StashHandle{Hash: hash, ID: id}, nil
}

// Restore applies the stash identified by handle to the worktree at path.
// The stash is addressed by hash; stack position is never consulted. A
// handle can be restored at most once — a second apply fails at the git
// level rather than duplicating changes.
func (s *GitService) Restore(ctx context.Context, handle *StashHandle, path string) error {
	if handle == nil {
		return nil
	}

	output, err := s.executor.CombinedOutput(ctx, path, "git", "stash", "apply", handle.Hash)
	if err != nil {
		return fmt.Errorf("failed to restore stashed changes %s: %s: %w", handle.Hash, strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("restored rescue stash", "rescueID", handle.ID, "hash", handle.Hash, "path", path)
	return nil
}
