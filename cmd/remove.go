package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeForce bool

var removeCmd = &cobra.Command{
	Use:     "remove [branch or path]",
	Aliases: []string{"rm"},
	Short:   "Remove a worktree",
	Long: `Remove the worktree named by a branch or path. With no argument an
interactive selection is offered. The main worktree can never be removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRemove,
}

func init() {
	removeCmd.Flags().BoolVar(&removeForce, "force", false, "Skip confirmation and remove locked or dirty worktrees")
}

func runRemove(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	token := ""
	if len(args) == 1 {
		token = args[0]
	}

	if err := m.Remove(cmd.Context(), token, removeForce); err != nil {
		return err
	}

	fmt.Println("Worktree removed.")
	return nil
}
