package git

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Provider classifies the hosting service behind the upstream remote.
type Provider string

const (
	ProviderGitHub  Provider = "github"
	ProviderGitLab  Provider = "gitlab"
	ProviderUnknown Provider = "unknown"
)

// primaryBranchCandidates are the conventional names tried when resolving
// the tracking remote of the primary branch.
var primaryBranchCandidates = [...]string{"main", "master"}

// preferredRemoteNames are the canonical remote names tried, in order,
// before falling back to the first configured remote.
var preferredRemoteNames = [...]string{"origin", "upstream"}

// UpstreamRemote resolves which remote should be considered upstream.
// Repositories vary in whether "origin" is actually canonical, so several
// tiers are tried: the tracking remote of a conventionally-named primary
// branch, then a preferred-name match among configured remotes, then the
// first remote, then "origin" as a fixed fallback.
func (s *GitService) UpstreamRemote(ctx context.Context, repoPath string) string {
	for _, branch := range primaryBranchCandidates {
		output, err := s.executor.Output(ctx, repoPath, "git", "config", "--get", fmt.Sprintf("branch.%s.remote", branch))
		if err == nil {
			if remote := strings.TrimSpace(string(output)); remote != "" {
				return remote
			}
		}
	}

	output, err := s.executor.Output(ctx, repoPath, "git", "remote")
	if err != nil {
		return "origin"
	}
	remotes := strings.Fields(strings.TrimSpace(string(output)))
	if len(remotes) == 0 {
		return "origin"
	}

	for _, preferred := range preferredRemoteNames {
		for _, r := range remotes {
			if r == preferred {
				return r
			}
		}
	}

	return remotes[0]
}

// RemoteURL returns the URL of the named remote.
func (s *GitService) RemoteURL(ctx context.Context, repoPath, remote string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "remote", "get-url", remote)
	if err != nil {
		return "", fmt.Errorf("failed to get URL for remote %s: %w", remote, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// DetectProvider classifies the upstream remote's host. github.com maps to
// GitHub and any gitlab.* host to GitLab; everything else is unknown, which
// PR/MR features treat as "configure a provider explicitly".
func (s *GitService) DetectProvider(ctx context.Context, repoPath string) Provider {
	remote := s.UpstreamRemote(ctx, repoPath)
	remoteURL, err := s.RemoteURL(ctx, repoPath, remote)
	if err != nil {
		return ProviderUnknown
	}
	return classifyHost(remoteHost(remoteURL))
}

// remoteHost extracts the hostname from a remote URL, handling both
// SSH-style "user@host:path" and URL forms.
func remoteHost(remoteURL string) string {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return ""
	}

	// SSH-style: git@github.com:owner/repo.git
	if !strings.Contains(remoteURL, "://") {
		host := remoteURL
		if at := strings.Index(host, "@"); at >= 0 {
			host = host[at+1:]
		}
		if colon := strings.Index(host, ":"); colon >= 0 {
			host = host[:colon]
		}
		return host
	}

	u, err := url.Parse(remoteURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func classifyHost(host string) Provider {
	host = strings.ToLower(host)
	switch {
	case host == "github.com":
		return ProviderGitHub
	case host == "gitlab.com" || strings.HasPrefix(host, "gitlab."):
		return ProviderGitLab
	default:
		return ProviderUnknown
	}
}

// RepoName returns the repository's name: the basename of the toplevel
// working directory, or for bare repositories the git directory name with
// any .git suffix stripped.
func (s *GitService) RepoName(ctx context.Context, repoPath string) string {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--show-toplevel")
	if err == nil {
		if top := strings.TrimSpace(string(output)); top != "" {
			return path.Base(filepathToSlash(top))
		}
	}

	// Bare repo: no toplevel, use the git dir name.
	output, err = s.executor.Output(ctx, repoPath, "git", "rev-parse", "--absolute-git-dir")
	if err != nil {
		return ""
	}
	name := path.Base(filepathToSlash(strings.TrimSpace(string(output))))
	return strings.TrimSuffix(name, ".git")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// IsBare reports whether the repository at repoPath is bare.
func (s *GitService) IsBare(ctx context.Context, repoPath string) bool {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--is-bare-repository")
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(output)) == "true"
}

// DefaultBranch returns the default branch name (main or master).
func (s *GitService) DefaultBranch(ctx context.Context, repoPath string) string {
	remote := s.UpstreamRemote(ctx, repoPath)

	output, err := s.executor.Output(ctx, repoPath, "git", "symbolic-ref", fmt.Sprintf("refs/remotes/%s/HEAD", remote))
	if err == nil {
		ref := strings.TrimSpace(string(output))
		if after, ok := strings.CutPrefix(ref, fmt.Sprintf("refs/remotes/%s/", remote)); ok {
			return after
		}
	}

	// Fallback: check if main exists, otherwise use master
	_, _, err = s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "main")
	if err == nil {
		return "main"
	}

	return "master"
}

// Fetch updates remote refs from the named remote. Used before resolving
// PR/MR refs so freshly pushed branches are visible.
func (s *GitService) Fetch(ctx context.Context, repoPath, remote string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "fetch", remote)
	if err != nil {
		return fmt.Errorf("failed to fetch from %s: %s: %w", remote, strings.TrimSpace(string(output)), err)
	}
	return nil
}
