// Package ui provides the interactive surfaces of the CLI: a filterable
// picker for worktrees and pull requests, and plain line-oriented prompts
// for confirmations. All of it degrades cleanly when stdin or stdout is
// not a terminal.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrCancelled is returned when the user backs out of an interactive
// prompt or picker without choosing.
var ErrCancelled = errors.New("cancelled")

// IsInteractive reports whether both stdin and stdout are terminals.
// Pickers and prompts are only offered when this holds; otherwise
// commands must receive everything they need as arguments.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Confirm asks a yes/no question and returns the answer. An empty reply
// returns def. EOF counts as cancellation.
func Confirm(prompt string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	fmt.Printf("%s %s ", prompt, suffix)

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false, ErrCancelled
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// Choose presents numbered options and returns the index of the pick.
// An empty reply or EOF counts as cancellation.
func Choose(prompt string, options []string) (int, error) {
	fmt.Println(prompt)
	for i, opt := range options {
		fmt.Printf("  %d) %s\n", i+1, opt)
	}
	fmt.Print("> ")

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return 0, ErrCancelled
	}

	choice := strings.TrimSpace(line)
	if choice == "" {
		return 0, ErrCancelled
	}
	for i := range options {
		if choice == fmt.Sprintf("%d", i+1) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid choice %q", choice)
}
