package forge

import (
	"context"
	"testing"

	gexec "github.com/graft-dev/graft/exec"
	"github.com/graft-dev/graft/git"
)

var ctx = context.Background()

func TestForProvider(t *testing.T) {
	mock := gexec.NewMockExecutor(nil)

	c, err := ForProvider(git.ProviderGitHub, mock)
	if err != nil {
		t.Fatalf("github: %v", err)
	}
	if _, ok := c.(*GitHubClient); !ok {
		t.Errorf("expected GitHubClient, got %T", c)
	}

	c, err = ForProvider(git.ProviderGitLab, mock)
	if err != nil {
		t.Fatalf("gitlab: %v", err)
	}
	if _, ok := c.(*GitLabClient); !ok {
		t.Errorf("expected GitLabClient, got %T", c)
	}

	if _, err := ForProvider(git.ProviderUnknown, mock); err == nil {
		t.Error("unknown provider should be an error")
	}
}

func TestGitHubPRBranch(t *testing.T) {
	mock := gexec.NewMockExecutor(nil)
	mock.AddExactMatch("gh", []string{"pr", "view", "42", "--json", "headRefName"}, gexec.MockResponse{
		Stdout: []byte(`{"headRefName":"feature/login"}`),
	})
	c := NewGitHubClient(mock)

	branch, err := c.PRBranch(ctx, "/repo", 42)
	if err != nil {
		t.Fatalf("PRBranch: %v", err)
	}
	if branch != "feature/login" {
		t.Errorf("branch = %q", branch)
	}
}

func TestGitHubPRBranch_Empty(t *testing.T) {
	mock := gexec.NewMockExecutor(nil)
	mock.AddPrefixMatch("gh", []string{"pr", "view"}, gexec.MockResponse{
		Stdout: []byte(`{}`),
	})
	c := NewGitHubClient(mock)

	if _, err := c.PRBranch(ctx, "/repo", 7); err == nil {
		t.Error("expected error for PR with no head branch")
	}
}

func TestGitHubListOpen(t *testing.T) {
	mock := gexec.NewMockExecutor(nil)
	mock.AddPrefixMatch("gh", []string{"pr", "list"}, gexec.MockResponse{
		Stdout: []byte(`[
			{"number":12,"title":"Add auth","author":{"login":"alice"},"headRefName":"feature/auth"},
			{"number":15,"title":"Fix race","author":{"login":"bob"},"headRefName":"fix/race"}
		]`),
	})
	c := NewGitHubClient(mock)

	prs, err := c.ListOpen(ctx, "/repo")
	if err != nil {
		t.Fatalf("ListOpen: %v", err)
	}
	if len(prs) != 2 {
		t.Fatalf("expected 2 PRs, got %d", len(prs))
	}
	if prs[0].Number != 12 || prs[0].Author != "alice" || prs[0].Branch != "feature/auth" {
		t.Errorf("unexpected first PR: %+v", prs[0])
	}
}

func TestGitLabPRBranch(t *testing.T) {
	mock := gexec.NewMockExecutor(nil)
	mock.AddExactMatch("glab", []string{"mr", "view", "9", "--output", "json"}, gexec.MockResponse{
		Stdout: []byte(`{"iid":9,"source_branch":"feature/pipeline"}`),
	})
	c := NewGitLabClient(mock)

	branch, err := c.PRBranch(ctx, "/repo", 9)
	if err != nil {
		t.Fatalf("PRBranch: %v", err)
	}
	if branch != "feature/pipeline" {
		t.Errorf("branch = %q", branch)
	}
}

func TestGitLabListOpen(t *testing.T) {
	mock := gexec.NewMockExecutor(nil)
	mock.AddPrefixMatch("glab", []string{"mr", "list"}, gexec.MockResponse{
		Stdout: []byte(`[{"iid":3,"title":"CI cache","author":{"username":"carol"},"source_branch":"ci/cache"}]`),
	})
	c := NewGitLabClient(mock)

	prs, err := c.ListOpen(ctx, "/repo")
	if err != nil {
		t.Fatalf("ListOpen: %v", err)
	}
	if len(prs) != 1 {
		t.Fatalf("expected 1 MR, got %d", len(prs))
	}
	if prs[0].Number != 3 || prs[0].Author != "carol" || prs[0].Branch != "ci/cache" {
		t.Errorf("unexpected MR: %+v", prs[0])
	}
}
