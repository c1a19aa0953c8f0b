package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/graft-dev/graft/logger"
)

// Merge merges branch into the branch checked out at dir.
func (s *GitService) Merge(ctx context.Context, dir, branch string) error {
	output, err := s.executor.CombinedOutput(ctx, dir, "git", "merge", branch, "--no-edit")
	if err != nil {
		return fmt.Errorf("merge failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("merged branch", "branch", branch, "dir", dir)
	return nil
}

// GetConflictedFiles returns the list of files with merge conflicts in a repo.
func (s *GitService) GetConflictedFiles(ctx context.Context, repoPath string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, fmt.Errorf("failed to get conflicted files: %w", err)
	}

	outputStr := strings.TrimSpace(string(output))
	if outputStr == "" {
		return nil, nil
	}

	return strings.Split(outputStr, "\n"), nil
}
