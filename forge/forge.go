// Package forge talks to code-hosting services (GitHub, GitLab) through
// their official CLIs. Requests run in a repository directory so the CLI
// resolves the project from the local remotes, the same way a user at a
// shell would.
package forge

import (
	"context"
	"fmt"
	"os/exec"

	gexec "github.com/graft-dev/graft/exec"
	"github.com/graft-dev/graft/git"
)

// PullRequest describes an open change request on the hosting service.
// GitLab calls these merge requests; the shape is the same.
type PullRequest struct {
	Number int
	Title  string
	Author string
	Branch string // head branch the change was pushed from
}

// Client resolves change requests to branches for one hosting service.
type Client interface {
	// PRBranch returns the head branch name of the numbered change request.
	PRBranch(ctx context.Context, dir string, number int) (string, error)

	// ListOpen returns the open change requests for the repository at dir.
	ListOpen(ctx context.Context, dir string) ([]PullRequest, error)
}

// ForProvider returns a client for the given provider. An unknown provider
// is an error telling the user to configure one explicitly, since guessing
// which CLI to shell out to would produce confusing failures.
func ForProvider(p git.Provider, executor gexec.CommandExecutor) (Client, error) {
	switch p {
	case git.ProviderGitHub:
		return NewGitHubClient(executor), nil
	case git.ProviderGitLab:
		return NewGitLabClient(executor), nil
	default:
		return nil, fmt.Errorf("cannot determine hosting provider from the upstream remote; set one with `graft config set provider github` or `provider gitlab`")
	}
}

// cliMissing reports whether name is absent from PATH, used to turn an
// opaque exec failure into an actionable install hint.
func cliMissing(name string) bool {
	_, err := exec.LookPath(name)
	return err != nil
}
