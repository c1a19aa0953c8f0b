package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graft-dev/graft/worktree"
)

var (
	mergeCommit  bool
	mergeMessage string
	mergeRemove  bool
	mergeForce   bool
)

var mergeCmd = &cobra.Command{
	Use:   "merge <branch>",
	Short: "Merge a branch into the main worktree",
	Long: `Merge the given branch into the main worktree.
A dirty target refuses the merge unless --commit is passed, and the source
worktree is kept unless --remove is passed.`,
	Args: cobra.ExactArgs(1),
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().BoolVar(&mergeCommit, "commit", false, "Auto-commit uncommitted changes before merging")
	mergeCmd.Flags().StringVarP(&mergeMessage, "message", "m", "", "Auto-commit message")
	mergeCmd.Flags().BoolVar(&mergeRemove, "remove", false, "Remove the source worktree after the merge")
	mergeCmd.Flags().BoolVar(&mergeForce, "force", false, "Allow removing a source worktree with uncommitted changes")
}

func runMerge(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	if err := m.Merge(cmd.Context(), worktree.MergeRequest{
		Branch:     args[0],
		AutoCommit: mergeCommit,
		Message:    mergeMessage,
		Remove:     mergeRemove,
		Force:      mergeForce,
	}); err != nil {
		return err
	}

	fmt.Printf("Merged %s\n", args[0])
	return nil
}
