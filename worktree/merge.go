package worktree

import (
	"context"
	"fmt"
	"strings"

	"github.com/graft-dev/graft/git"
	"github.com/graft-dev/graft/logger"
)

// MergeRequest describes one merge of a source branch into the main
// worktree. Consumed once by Merge.
type MergeRequest struct {
	Branch     string
	AutoCommit bool   // commit a dirty target before merging
	Message    string // auto-commit message; a default is generated when empty
	Remove     bool   // remove the source worktree after a successful merge
	Force      bool   // allow removal of a dirty source worktree
}

// Merge merges req.Branch into the main worktree. The defaults are
// conservative: a dirty target refuses the merge unless auto-commit was
// requested, and the source worktree survives unless removal was requested.
// Removing a source worktree that itself has uncommitted changes requires
// the force flag on top of that.
func (m *Manager) Merge(ctx context.Context, req MergeRequest) error {
	log := logger.WithComponent("worktree")

	if req.Branch == "" {
		return &PreconditionError{Reason: "a branch name is required"}
	}

	source := m.findByBranch(ctx, req.Branch)
	if source == nil && req.Remove {
		return &NotFoundError{Token: req.Branch}
	}

	target := m.mainWorktreePath(ctx)

	clean, err := m.git.IsClean(ctx, target)
	if err != nil {
		return err
	}
	if !clean {
		if !req.AutoCommit {
			return &PreconditionError{Reason: "target worktree has uncommitted changes; commit them or pass --commit to auto-commit before merging"}
		}
		message := req.Message
		if message == "" {
			message = fmt.Sprintf("Auto-commit before merging %s", req.Branch)
		}
		if err := m.git.CommitAll(ctx, target, message); err != nil {
			return err
		}
	}

	if err := m.git.Merge(ctx, target, req.Branch); err != nil {
		if conflicts, cErr := m.git.GetConflictedFiles(ctx, target); cErr == nil && len(conflicts) > 0 {
			return fmt.Errorf("%w\nconflicted files:\n  %s", err, strings.Join(conflicts, "\n  "))
		}
		return err
	}
	log.Info("merged branch", "branch", req.Branch)

	if !req.Remove {
		return nil
	}

	if source.Main {
		return &PreconditionError{Reason: "refusing to remove the main worktree"}
	}
	sourceClean, err := m.git.IsClean(ctx, source.Path)
	if err != nil {
		return err
	}
	if !sourceClean && !req.Force {
		return &PreconditionError{Reason: fmt.Sprintf("worktree %s has uncommitted changes; pass --force to remove it anyway", source.Path)}
	}

	return m.removeWorktree(ctx, source, req.Force || !sourceClean)
}

// findByBranch returns the worktree checked out at branch, or nil.
func (m *Manager) findByBranch(ctx context.Context, branch string) *git.Worktree {
	records := m.git.ListWorktrees(ctx, m.repoPath)
	for i := range records {
		if records[i].Branch == branch {
			return &records[i]
		}
	}
	return nil
}
