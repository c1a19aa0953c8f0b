// Package git provides Git operations for inspecting and mutating worktrees,
// branches, stashes, and remotes.
//
// The package is organized into focused modules:
//   - service.go: GitService struct and constructor
//   - worktree.go: Worktree records, porcelain list parsing, add/remove
//   - status.go: Clean/dirty detection
//   - stash.go: Hash-addressed stash rescue protocol
//   - remote.go: Remote resolution, provider detection, repo identity
//   - branch.go: Branch management
//   - commit.go: Staging and committing
//   - merge.go: Merge operations and conflict inspection
package git
