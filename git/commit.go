package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/graft-dev/graft/logger"
)

// CommitAll stages all changes and commits them with the given message.
func (s *GitService) CommitAll(ctx context.Context, worktreePath, message string) error {
	logger.WithComponent("git").Info("committing all changes", "worktree", worktreePath)

	if output, err := s.executor.CombinedOutput(ctx, worktreePath, "git", "add", "-A"); err != nil {
		return fmt.Errorf("git add failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	if output, err := s.executor.CombinedOutput(ctx, worktreePath, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("git commit failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	return nil
}
