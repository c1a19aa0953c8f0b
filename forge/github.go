package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	gexec "github.com/graft-dev/graft/exec"
	"github.com/graft-dev/graft/logger"
)

// GitHubClient resolves pull requests through the gh CLI.
type GitHubClient struct {
	executor gexec.CommandExecutor
}

// NewGitHubClient returns a GitHubClient using the given executor.
func NewGitHubClient(executor gexec.CommandExecutor) *GitHubClient {
	return &GitHubClient{executor: executor}
}

// PRBranch returns the head branch of the numbered pull request using the gh CLI.
func (c *GitHubClient) PRBranch(ctx context.Context, dir string, number int) (string, error) {
	output, err := c.executor.Output(ctx, dir, "gh", "pr", "view", strconv.Itoa(number), "--json", "headRefName")
	if err != nil {
		if cliMissing("gh") {
			return "", fmt.Errorf("gh CLI not found in PATH; install it from https://cli.github.com")
		}
		return "", fmt.Errorf("gh pr view failed: %w", err)
	}

	var result struct {
		HeadRefName string `json:"headRefName"`
	}
	if err := json.Unmarshal(output, &result); err != nil {
		return "", fmt.Errorf("failed to parse PR data: %w", err)
	}
	if result.HeadRefName == "" {
		return "", fmt.Errorf("PR #%d has no head branch", number)
	}

	logger.WithComponent("forge").Debug("resolved PR branch", "number", number, "branch", result.HeadRefName)
	return result.HeadRefName, nil
}

// ListOpen returns the open pull requests for the repository at dir.
func (c *GitHubClient) ListOpen(ctx context.Context, dir string) ([]PullRequest, error) {
	output, err := c.executor.Output(ctx, dir, "gh", "pr", "list",
		"--state", "open",
		"--json", "number,title,author,headRefName",
		"--limit", "200",
	)
	if err != nil {
		if cliMissing("gh") {
			return nil, fmt.Errorf("gh CLI not found in PATH; install it from https://cli.github.com")
		}
		return nil, fmt.Errorf("gh pr list failed: %w", err)
	}

	var raw []struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Author struct {
			Login string `json:"login"`
		} `json:"author"`
		HeadRefName string `json:"headRefName"`
	}
	if err := json.Unmarshal(output, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse PR list: %w", err)
	}

	prs := make([]PullRequest, 0, len(raw))
	for _, pr := range raw {
		prs = append(prs, PullRequest{
			Number: pr.Number,
			Title:  pr.Title,
			Author: pr.Author.Login,
			Branch: pr.HeadRefName,
		})
	}
	return prs, nil
}
