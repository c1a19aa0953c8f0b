package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	gexec "github.com/graft-dev/graft/exec"
	"github.com/graft-dev/graft/logger"
)

// GitLabClient resolves merge requests through the glab CLI.
type GitLabClient struct {
	executor gexec.CommandExecutor
}

// NewGitLabClient returns a GitLabClient using the given executor.
func NewGitLabClient(executor gexec.CommandExecutor) *GitLabClient {
	return &GitLabClient{executor: executor}
}

// PRBranch returns the source branch of the numbered merge request using the glab CLI.
func (c *GitLabClient) PRBranch(ctx context.Context, dir string, number int) (string, error) {
	output, err := c.executor.Output(ctx, dir, "glab", "mr", "view", strconv.Itoa(number), "--output", "json")
	if err != nil {
		if cliMissing("glab") {
			return "", fmt.Errorf("glab CLI not found in PATH; install it from https://gitlab.com/gitlab-org/cli")
		}
		return "", fmt.Errorf("glab mr view failed: %w", err)
	}

	var result struct {
		SourceBranch string `json:"source_branch"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return "", fmt.Errorf("failed to parse MR data: %w", err)
	}
	if result.SourceBranch == "" {
		return "", fmt.Errorf("MR !%d has no source branch", number)
	}

	logger.WithComponent("forge").Debug("resolved MR branch", "number", number, "branch", result.SourceBranch)
	return result.SourceBranch, nil
}

// ListOpen returns the open merge requests for the repository at dir.
func (c *GitLabClient) ListOpen(ctx context.Context, dir string) ([]PullRequest, error) {
	output, err := c.executor.Output(ctx, dir, "glab", "mr", "list", "--output", "json", "--per-page", "100")
	if err != nil {
		if cliMissing("glab") {
			return nil, fmt.Errorf("glab CLI not found in PATH; install it from https://gitlab.com/gitlab-org/cli")
		}
		return nil, fmt.Errorf("glab mr list failed: %w", err)
	}

	var raw []struct {
		IID    int    `json:"iid"`
		Title  string `json:"title"`
		Author struct {
			Username string `json:"username"`
		} `json:"author"`
		SourceBranch string `json:"source_branch"`
	}
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse MR list: %w", err)
	}

	prs := make([]PullRequest, 0, len(raw))
	for _, mr := range raw {
		prs = append(prs, PullRequest{
			Number: mr.IID,
			Title:  mr.Title,
			Author: mr.Author.Username,
			Branch: mr.SourceBranch,
		})
	}
	return prs, nil
}
