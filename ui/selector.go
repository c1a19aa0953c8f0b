package ui

import (
	"context"
	"fmt"

	"github.com/graft-dev/graft/forge"
	"github.com/graft-dev/graft/git"
)

// Selector chooses worktrees and pull requests interactively. Commands
// depend on this interface so tests can substitute canned choices.
type Selector interface {
	// PickWorktree presents worktrees and returns the one chosen.
	PickWorktree(ctx context.Context, title string, worktrees []git.Worktree) (*git.Worktree, error)

	// PickWorktrees presents worktrees and returns all that were chosen.
	PickWorktrees(ctx context.Context, title string, worktrees []git.Worktree) ([]git.Worktree, error)

	// PickPR presents pull requests and returns the one chosen.
	PickPR(ctx context.Context, title string, prs []forge.PullRequest) (*forge.PullRequest, error)
}

// TerminalSelector implements Selector with a terminal picker.
type TerminalSelector struct{}

// NewTerminalSelector returns a Selector backed by the terminal picker.
func NewTerminalSelector() *TerminalSelector {
	return &TerminalSelector{}
}

func worktreeItems(worktrees []git.Worktree) []pickerItem {
	items := make([]pickerItem, len(worktrees))
	for i, wt := range worktrees {
		detail := wt.Path
		if wt.Main {
			detail += " (main)"
		}
		if wt.Locked {
			detail += " (locked)"
		}
		items[i] = pickerItem{Label: wt.DisplayName(), Detail: detail}
	}
	return items
}

// PickWorktree presents worktrees and returns the one chosen.
func (s *TerminalSelector) PickWorktree(ctx context.Context, title string, worktrees []git.Worktree) (*git.Worktree, error) {
	if len(worktrees) == 0 {
		return nil, fmt.Errorf("no worktrees to choose from")
	}

	picked, err := runPicker(ctx, title, worktreeItems(worktrees), false)
	if err != nil {
		return nil, err
	}
	return &worktrees[picked[0]], nil
}

// PickWorktrees presents worktrees and returns all that were chosen.
func (s *TerminalSelector) PickWorktrees(ctx context.Context, title string, worktrees []git.Worktree) ([]git.Worktree, error) {
	if len(worktrees) == 0 {
		return nil, fmt.Errorf("no worktrees to choose from")
	}

	picked, err := runPicker(ctx, title, worktreeItems(worktrees), true)
	if err != nil {
		return nil, err
	}

	chosen := make([]git.Worktree, 0, len(picked))
	for _, i := range picked {
		chosen = append(chosen, worktrees[i])
	}
	return chosen, nil
}

// PickPR presents pull requests and returns the one chosen.
func (s *TerminalSelector) PickPR(ctx context.Context, title string, prs []forge.PullRequest) (*forge.PullRequest, error) {
	if len(prs) == 0 {
		return nil, fmt.Errorf("no open pull requests")
	}

	items := make([]pickerItem, len(prs))
	for i, pr := range prs {
		items[i] = pickerItem{
			Label:  fmt.Sprintf("#%d %s", pr.Number, pr.Title),
			Detail: fmt.Sprintf("%s @%s", pr.Branch, pr.Author),
		}
	}

	picked, err := runPicker(ctx, title, items, false)
	if err != nil {
		return nil, err
	}
	return &prs[picked[0]], nil
}

var _ Selector = (*TerminalSelector)(nil)
