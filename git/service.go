package git

import (
	gexec "github.com/graft-dev/graft/exec"
)

// GitService shells out to git through an injected executor. Each instance
// carries its own executor, so callers decide how processes are spawned.
type GitService struct {
	executor gexec.CommandExecutor
}

// NewGitService returns a GitService backed by real process execution.
func NewGitService() *GitService {
	return &GitService{executor: gexec.NewRealExecutor()}
}

// NewGitServiceWithExecutor returns a GitService that runs commands through
// the given executor. Tests pass a mock here.
func NewGitServiceWithExecutor(exec gexec.CommandExecutor) *GitService {
	return &GitService{executor: exec}
}
