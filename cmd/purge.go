package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var purgeForce bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove several worktrees at once",
	Long: `Select multiple worktrees and remove them. The main worktree is
never offered for selection.`,
	Args: cobra.NoArgs,
	RunE: runPurge,
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeForce, "force", false, "Skip confirmation and remove locked or dirty worktrees")
}

func runPurge(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	if err := m.Purge(cmd.Context(), purgeForce); err != nil {
		return err
	}

	fmt.Println("Done.")
	return nil
}
