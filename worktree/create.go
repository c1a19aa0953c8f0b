package worktree

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/graft-dev/graft/forge"
	"github.com/graft-dev/graft/git"
	"github.com/graft-dev/graft/logger"
	"github.com/graft-dev/graft/setup"
	"github.com/graft-dev/graft/ui"
)

// CreationRequest describes one worktree creation. Constructed from CLI
// input, consumed once by Create.
type CreationRequest struct {
	Branch    string
	Path      string // explicit target path; wins over any computed default
	NewBranch bool   // create the branch even if one could be checked out
	Install   string // dependency tool; "<tool> install" runs in the new worktree
	RunSetup  bool   // run project setup commands after creation
	PRNumber  int    // source PR/MR number; resolves Branch through the provider
	NoEditor  bool
}

// SanitizeBranch flattens a branch name into a directory-name-safe form.
// Hierarchical names keep their leading segment so feature/auth and
// hotfix/auth stay distinct after flattening.
func SanitizeBranch(branch string) string {
	s := strings.ReplaceAll(branch, "/", "-")
	return strings.ReplaceAll(s, "\\", "-")
}

// Create runs the creation pipeline: dirty-source rescue, branch/ref
// resolution (including PR/MR sourcing), path computation, worktree
// creation, setup commands, dependency install, and editor launch.
//
// If any mandatory stage fails after the worktree exists, the worktree and
// any branch created for it are removed again before the error surfaces. Setup commands are best-effort
// and never abort the pipeline; a failed editor launch only warns. A stash
// taken for the dirty-source rescue is restored on every exit path.
func (m *Manager) Create(ctx context.Context, req CreationRequest) (wt *git.Worktree, err error) {
	log := logger.WithComponent("worktree")

	handle, err := m.rescueDirtySource(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if handle == nil {
			return
		}
		if restoreErr := m.git.Restore(ctx, handle, m.repoPath); restoreErr != nil {
			log.Error("failed to restore stashed changes", "hash", handle.Hash, "error", restoreErr)
			fmt.Fprintf(os.Stderr, "warning: stashed changes were not restored; recover them with `git stash apply %s`\n", handle.Hash)
		}
	}()

	branch, ref, newBranch, err := m.resolveSource(ctx, req)
	if err != nil {
		return nil, err
	}

	target, err := m.targetPath(ctx, req.Path, branch)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(target); statErr == nil {
		return nil, &PreconditionError{Reason: fmt.Sprintf("target path already exists: %s", target)}
	}

	if err := m.git.AddWorktree(ctx, m.repoPath, target, ref, newBranch); err != nil {
		return nil, err
	}
	log.Info("worktree created", "path", target, "branch", branch)

	rollback := func() {
		if _, rmErr := m.git.RemoveWorktree(ctx, m.repoPath, target, true); rmErr != nil {
			log.Error("rollback removal failed", "path", target, "error", rmErr)
		}
		os.RemoveAll(target)
		if newBranch != "" {
			if delErr := m.git.DeleteBranch(ctx, m.repoPath, newBranch, true); delErr != nil {
				log.Error("rollback branch deletion failed", "branch", newBranch, "error", delErr)
			}
		}
	}

	if req.RunSetup {
		m.runSetupCommands(ctx, target)
	}

	if req.Install != "" {
		if installErr := m.executor.Interactive(ctx, target, nil, req.Install, "install"); installErr != nil {
			rollback()
			return nil, fmt.Errorf("dependency install with %s failed: %w", req.Install, installErr)
		}
	}

	if !req.NoEditor {
		if editor := m.cfg.EditorOrDefault(); editor != "" {
			if editErr := m.executor.Interactive(ctx, target, nil, editor, target); editErr != nil {
				log.Warn("editor launch failed", "editor", editor, "error", editErr)
				fmt.Fprintf(os.Stderr, "warning: could not launch %s: %v\n", editor, editErr)
			}
		}
	}

	return &git.Worktree{Path: target, Branch: branch, Kind: git.KindRegistered}, nil
}

// rescueDirtySource offers stash/continue/abort when the invocation
// worktree is dirty. Returns the stash handle to restore later, or nil.
func (m *Manager) rescueDirtySource(ctx context.Context) (*git.StashHandle, error) {
	clean, err := m.git.IsClean(ctx, m.repoPath)
	if err != nil {
		return nil, err
	}
	if clean {
		return nil, nil
	}

	if !m.interactive() {
		logger.WithComponent("worktree").Warn("current worktree is dirty; continuing without rescue")
		return nil, nil
	}

	choice, err := m.choose("Your current worktree has uncommitted changes.", []string{
		"Stash them and restore when done",
		"Continue anyway",
		"Abort",
	})
	if err != nil {
		return nil, err
	}
	switch choice {
	case 0:
		return m.git.Stash(ctx, m.repoPath)
	case 1:
		return nil, nil
	default:
		return nil, ui.ErrCancelled
	}
}

// resolveSource determines the branch, the ref to check out, and whether a
// new branch must be created. PR/MR requests resolve the branch through the
// hosting provider and check out the remote ref, leaving the user's current
// checkout untouched.
func (m *Manager) resolveSource(ctx context.Context, req CreationRequest) (branch, ref, newBranch string, err error) {
	if req.PRNumber > 0 {
		return m.resolvePRSource(ctx, req.PRNumber)
	}

	branch = req.Branch
	if branch == "" {
		return "", "", "", &PreconditionError{Reason: "a branch name is required"}
	}

	if !req.NewBranch && m.git.BranchExists(ctx, m.repoPath, branch) {
		return branch, branch, "", nil
	}
	// Branch does not exist yet (or creation was requested): branch off HEAD.
	return branch, "", branch, nil
}

// forgeClient builds a client for the configured provider, falling back to
// detection from the upstream remote.
func (m *Manager) forgeClient(ctx context.Context) (forge.Client, error) {
	provider := git.Provider(m.cfg.GetProvider())
	if provider == "" {
		provider = m.git.DetectProvider(ctx, m.repoPath)
	}
	return m.forgeFor(provider, m.executor)
}

// PickPR lists the open PRs/MRs and lets the user choose one.
func (m *Manager) PickPR(ctx context.Context) (*forge.PullRequest, error) {
	client, err := m.forgeClient(ctx)
	if err != nil {
		return nil, err
	}
	prs, err := client.ListOpen(ctx, m.repoPath)
	if err != nil {
		return nil, err
	}
	return m.selector.PickPR(ctx, "Select a pull request", prs)
}

func (m *Manager) resolvePRSource(ctx context.Context, number int) (branch, ref, newBranch string, err error) {
	client, err := m.forgeClient(ctx)
	if err != nil {
		return "", "", "", err
	}

	branch, err = client.PRBranch(ctx, m.repoPath, number)
	if err != nil {
		return "", "", "", err
	}

	remote := m.git.UpstreamRemote(ctx, m.repoPath)
	if fetchErr := m.git.Fetch(ctx, m.repoPath, remote); fetchErr != nil {
		logger.WithComponent("worktree").Warn("fetch before PR checkout failed", "remote", remote, "error", fetchErr)
	}

	if m.git.BranchExists(ctx, m.repoPath, branch) {
		return branch, branch, "", nil
	}
	return branch, remote + "/" + branch, branch, nil
}

// targetPath computes where the new worktree goes: explicit path, then the
// configured worktree directory namespaced by repository, then a sibling of
// the main worktree.
func (m *Manager) targetPath(ctx context.Context, explicit, branch string) (string, error) {
	if explicit != "" {
		return filepath.Abs(explicit)
	}

	repoName := m.git.RepoName(ctx, m.repoPath)
	if repoName == "" {
		return "", fmt.Errorf("could not determine repository name")
	}
	sanitized := SanitizeBranch(branch)

	if dir := m.cfg.GetWorktreeDir(); dir != "" {
		return filepath.Join(dir, repoName, sanitized), nil
	}

	main := m.mainWorktreePath(ctx)
	return filepath.Join(filepath.Dir(main), repoName+"-"+sanitized), nil
}

// runSetupCommands executes the project's setup commands in the new
// worktree. Each failure is logged and reported, then execution continues
// with the next command.
func (m *Manager) runSetupCommands(ctx context.Context, target string) {
	log := logger.WithComponent("worktree")

	main := m.mainWorktreePath(ctx)
	commands, err := setup.Load(main)
	if err != nil {
		log.Warn("could not load setup commands", "error", err)
		fmt.Fprintf(os.Stderr, "warning: could not load setup commands: %v\n", err)
		return
	}

	env := []string{setup.MainWorktreeEnv + "=" + main}
	for _, cmd := range commands {
		if runErr := m.executor.Interactive(ctx, target, env, "sh", "-c", cmd); runErr != nil {
			log.Warn("setup command failed", "command", cmd, "error", runErr)
			fmt.Fprintf(os.Stderr, "warning: setup command failed: %s: %v\n", cmd, runErr)
		}
	}
}
