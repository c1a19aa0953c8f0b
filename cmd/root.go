// Package cmd wires the CLI commands to the worktree lifecycle core.
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/graft-dev/graft/config"
	"github.com/graft-dev/graft/logger"
	"github.com/graft-dev/graft/paths"
	"github.com/graft-dev/graft/ui"
	"github.com/graft-dev/graft/worktree"
)

var (
	debugFlag bool
	cfg       *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "graft",
	Short: "Graft manages git worktree lifecycles",
	Long: `Graft creates, merges, and removes git worktrees safely.
It can materialize worktrees from pull/merge requests, rescue uncommitted
changes before destructive operations, and roll back partial failures.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if debugFlag {
			logger.SetDebug(true)
		}
		if path, err := logger.DefaultLogPath(); err == nil {
			_ = logger.Init(path)
		}
		if paths.IsLegacyLayout() {
			logger.Get().Debug("using legacy ~/.graft layout")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Close()
	},
}

// Execute runs the CLI. Cancellation exits quietly; every other error is
// reported and exits non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ui.ErrCancelled) {
			fmt.Println("Cancelled.")
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newManager builds the lifecycle manager rooted at the working directory.
func newManager() (*worktree.Manager, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return worktree.NewManager(wd, cfg), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(prCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
