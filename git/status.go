package git

import (
	"context"
	"fmt"
	"strings"
)

// IsClean reports whether the worktree at path has no uncommitted changes,
// tracked or untracked.
func (s *GitService) IsClean(ctx context.Context, path string) (bool, error) {
	output, err := s.executor.Output(ctx, path, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status failed: %w", err)
	}
	return strings.TrimSpace(string(output)) == "", nil
}

// ChangedFiles returns the paths with uncommitted changes in the worktree.
// Leading status columns are significant in porcelain output, so only the
// filename portion is extracted.
func (s *GitService) ChangedFiles(ctx context.Context, path string) ([]string, error) {
	output, err := s.executor.Output(ctx, path, "git", "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git status failed: %w", err)
	}

	var files []string
	for _, line := range strings.Split(strings.TrimRight(string(output), "\n\r\t "), "\n") {
		if len(line) > 3 {
			files = append(files, strings.TrimSpace(line[3:]))
		}
	}
	return files, nil
}
