package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/graft-dev/graft/logger"
)

// WorktreeKind distinguishes records enumerated by git from records
// synthesized out of an on-disk .git marker (bare-repo layouts where the
// checkout is not registered with the primary repository).
type WorktreeKind int

const (
	// KindRegistered is a worktree reported by `git worktree list`.
	KindRegistered WorktreeKind = iota
	// KindSynthetic is a worktree discovered by its .git marker only.
	KindSynthetic
)

// Worktree is one checkout known to the repository.
type Worktree struct {
	Path        string // absolute filesystem path, unique key
	Head        string // commit identifier
	Branch      string // empty when detached
	Detached    bool
	Bare        bool
	Locked      bool
	LockReason  string
	Prunable    bool
	PruneReason string
	Main        bool // the first entry returned by git; never removable
	Kind        WorktreeKind
}

// DisplayName returns the branch when present, otherwise the path.
func (w *Worktree) DisplayName() string {
	if w.Branch != "" {
		return w.Branch
	}
	return w.Path
}

// ListWorktrees returns all checkouts registered with the repository at
// repoPath. The first record is always the main worktree. A failing query
// (not a repository, empty output) yields an empty slice, not an error:
// callers treat "no worktrees" as nothing found.
func (s *GitService) ListWorktrees(ctx context.Context, repoPath string) []Worktree {
	output, err := s.executor.Output(ctx, repoPath, "git", "worktree", "list", "--porcelain")
	if err != nil {
		logger.WithComponent("git").Debug("worktree list failed", "repoPath", repoPath, "error", err)
		return nil
	}
	return parseWorktreeList(string(output))
}

// parseWorktreeList parses `git worktree list --porcelain` output.
// Records are blank-line-delimited blocks of fixed-prefix lines; unmatched
// lines are ignored.
func parseWorktreeList(out string) []Worktree {
	var worktrees []Worktree
	var current Worktree
	inBlock := false

	flush := func() {
		if inBlock && current.Path != "" {
			current.Main = len(worktrees) == 0
			worktrees = append(worktrees, current)
		}
		current = Worktree{}
		inBlock = false
	}

	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			flush()
			continue
		}

		switch {
		case strings.HasPrefix(line, "worktree "):
			current.Path = strings.TrimPrefix(line, "worktree ")
			inBlock = true
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "detached":
			current.Detached = true
		case line == "bare":
			current.Bare = true
		case line == "locked":
			current.Locked = true
		case strings.HasPrefix(line, "locked "):
			current.Locked = true
			current.LockReason = strings.TrimPrefix(line, "locked ")
		case line == "prunable":
			current.Prunable = true
		case strings.HasPrefix(line, "prunable "):
			current.Prunable = true
			current.PruneReason = strings.TrimPrefix(line, "prunable ")
		}
	}
	flush()

	return worktrees
}

// AddWorktree creates a worktree at path checked out at ref. When newBranch
// is non-empty a branch of that name is created at ref.
func (s *GitService) AddWorktree(ctx context.Context, repoPath, path, ref, newBranch string) error {
	args := []string{"worktree", "add"}
	if newBranch != "" {
		args = append(args, "-b", newBranch)
	}
	args = append(args, path)
	if ref != "" {
		args = append(args, ref)
	}

	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", args...)
	if err != nil {
		return fmt.Errorf("failed to create worktree: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("worktree created", "path", path, "ref", ref, "newBranch", newBranch)
	return nil
}

// RemoveWorktree removes the worktree at path from the repository's metadata
// and deletes its directory. Returns the raw combined output alongside the
// error so callers can distinguish "has modified or untracked files" refusals.
func (s *GitService) RemoveWorktree(ctx context.Context, repoPath, path string, force bool) (string, error) {
	args := []string{"worktree", "remove", path}
	if force {
		args = append(args, "--force")
	}

	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", args...)
	out := strings.TrimSpace(string(output))
	if err != nil {
		return out, fmt.Errorf("failed to remove worktree: %s: %w", out, err)
	}

	logger.WithComponent("git").Info("worktree removed", "path", path, "force", force)
	return out, nil
}

// IsModifiedOrUntrackedRefusal reports whether remove output indicates git
// refused because the worktree contains modified or untracked files.
func IsModifiedOrUntrackedRefusal(output string) bool {
	return strings.Contains(output, "contains modified or untracked files")
}

// PruneWorktrees drops stale worktree metadata. Best-effort.
func (s *GitService) PruneWorktrees(ctx context.Context, repoPath string) {
	if output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "prune"); err != nil {
		logger.WithComponent("git").Warn("worktree prune failed (best-effort)", "output", string(output), "error", err)
	}
}
