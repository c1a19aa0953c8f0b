package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/graft-dev/graft/logger"
)

// LocalBranches returns the repository's local branch names.
func (s *GitService) LocalBranches(ctx context.Context, repoPath string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	out := strings.TrimSpace(string(output))
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

// BranchExists checks if a branch already exists in the repo.
func (s *GitService) BranchExists(ctx context.Context, repoPath, branch string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "refs/heads/"+branch)
	return err == nil
}

// CurrentBranch returns the name of the currently checked out branch in the
// given repo/worktree. Returns an error if HEAD is detached.
func (s *GitService) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("HEAD is detached (not on a branch)")
	}

	return branch, nil
}

// IsBranchMerged reports whether branch is fully merged into the branch
// named by into, via the ancestry check git itself uses.
func (s *GitService) IsBranchMerged(ctx context.Context, repoPath, branch, into string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "merge-base", "--is-ancestor", branch, into)
	return err == nil
}

// DeleteBranch deletes a local branch. Without force, git refuses to delete
// a branch that is not fully merged; the error carries git's output so
// callers can offer a forced retry.
func (s *GitService) DeleteBranch(ctx context.Context, repoPath, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}

	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "branch", flag, branch)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %s: %w", branch, strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("deleted branch", "branch", branch, "force", force)
	return nil
}

// IsBranchNotMergedRefusal reports whether a DeleteBranch error was git
// refusing because the branch is not fully merged.
func IsBranchNotMergedRefusal(err error) bool {
	return err != nil && strings.Contains(err.Error(), "not fully merged")
}
