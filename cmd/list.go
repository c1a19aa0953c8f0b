package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the repository's worktrees",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func runList(cmd *cobra.Command, args []string) error {
	m, err := newManager()
	if err != nil {
		return err
	}

	worktrees := m.List(cmd.Context())
	if len(worktrees) == 0 {
		fmt.Println("No worktrees found. Are you inside a git repository?")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "BRANCH\tPATH\tSTATUS")
	for _, wt := range worktrees {
		var flags []string
		if wt.Main {
			flags = append(flags, "main")
		}
		if wt.Detached {
			flags = append(flags, "detached")
		}
		if wt.Bare {
			flags = append(flags, "bare")
		}
		if wt.Locked {
			flags = append(flags, "locked")
		}
		if wt.Prunable {
			flags = append(flags, "prunable")
		}
		if m.Merged(cmd.Context(), &wt) {
			flags = append(flags, "merged")
		}

		branch := wt.Branch
		if branch == "" {
			branch = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", branch, wt.Path, strings.Join(flags, ","))
	}
	return w.Flush()
}
