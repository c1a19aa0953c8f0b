package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/graft-dev/graft/worktree"
)

var (
	newPath      string
	newBranchOpt bool
	newInstall   string
	newSetup     bool
	newNoEditor  bool
)

var newCmd = &cobra.Command{
	Use:   "new <branch>",
	Short: "Create a worktree for a branch",
	Long: `Create a new worktree checked out at the given branch.
The branch is created if it does not exist yet. The worktree path defaults
to a sibling directory of the main worktree, or to the configured worktree
directory when one is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().StringVar(&newPath, "path", "", "Explicit worktree path")
	newCmd.Flags().BoolVarP(&newBranchOpt, "branch", "b", false, "Always create a new branch at HEAD")
	newCmd.Flags().StringVar(&newInstall, "install", "", "Run '<tool> install' in the new worktree (e.g. npm, bundle)")
	newCmd.Flags().BoolVar(&newSetup, "setup", false, "Run the project's setup commands in the new worktree")
	newCmd.Flags().BoolVar(&newNoEditor, "no-editor", false, "Do not launch the editor afterwards")
}

func runNew(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	wt, err := m.Create(cmd.Context(), worktree.CreationRequest{
		Branch:    args[0],
		Path:      newPath,
		NewBranch: newBranchOpt,
		Install:   newInstall,
		RunSetup:  newSetup,
		NoEditor:  newNoEditor,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created worktree %s at %s\n", wt.DisplayName(), wt.Path)
	return nil
}
