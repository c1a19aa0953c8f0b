package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/graft-dev/graft/worktree"
)

var (
	prPath     string
	prInstall  string
	prSetup    bool
	prNoEditor bool
)

var prCmd = &cobra.Command{
	Use:   "pr [number]",
	Short: "Create a worktree from a pull/merge request",
	Long: `Create a worktree checked out at the head branch of a pull request
(GitHub) or merge request (GitLab), without touching your current checkout.
With no number, the open requests are listed for selection.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPR,
}

func init() {
	prCmd.Flags().StringVar(&prPath, "path", "", "Explicit worktree path")
	prCmd.Flags().StringVar(&prInstall, "install", "", "Run '<tool> install' in the new worktree")
	prCmd.Flags().BoolVar(&prSetup, "setup", false, "Run the project's setup commands in the new worktree")
	prCmd.Flags().BoolVar(&prNoEditor, "no-editor", false, "Do not launch the editor afterwards")
}

func runPR(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	var number int
	if len(args) == 1 {
		number, err = strconv.Atoi(args[0])
		if err != nil || number <= 0 {
			return fmt.Errorf("invalid PR number %q", args[0])
		}
	} else {
		pr, err := m.PickPR(cmd.Context())
		if err != nil {
			return err
		}
		number = pr.Number
	}

	wt, err := m.Create(cmd.Context(), worktree.CreationRequest{
		PRNumber: number,
		Path:     prPath,
		Install:  prInstall,
		RunSetup: prSetup,
		NoEditor: prNoEditor,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created worktree %s at %s\n", wt.DisplayName(), wt.Path)
	return nil
}
