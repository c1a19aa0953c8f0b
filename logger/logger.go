// Package logger provides file-backed structured logging for graft.
// Log output goes to a file rather than the terminal so that command
// output and interactive prompts stay clean.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/graft-dev/graft/paths"
)

var (
	mu       sync.Mutex
	root     *slog.Logger
	logFile  *os.File
	levelVar = new(slog.LevelVar)
)

// DefaultLogPath returns the default log file path.
func DefaultLogPath() (string, error) {
	dir, err := paths.LogsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "graft.log"), nil
}

// SetDebug switches between debug and info level logging.
func SetDebug(enabled bool) {
	level := slog.LevelInfo
	if enabled {
		level = slog.LevelDebug
	}
	levelVar.Set(level)
}

// Init opens the log file at path and routes all loggers to it. Calling it
// again after a successful Init is a no-op; without it, the first log call
// falls back to the default path.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if root != nil {
		return nil
	}
	return openAt(path)
}

// openAt opens the log file and builds the root logger. Caller holds mu.
func openAt(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	logFile = f
	root = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	root.Info("logger initialized", "path", path)
	return nil
}

// ensureInit falls back to the default path when Init was never called.
// Caller holds mu. Logging is never worth failing a command over, so any
// problem here only warns.
func ensureInit() {
	if root != nil {
		return
	}

	path, err := DefaultLogPath()
	if err == nil {
		err = openAt(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
}

// Get returns the root logger instance.
// Use this when you don't have component context.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()

	ensureInit()
	if root == nil {
		return slog.Default()
	}
	return root
}

// WithComponent returns a logger with the component name attached.
//
// Example:
//
//	log := logger.WithComponent("git")
//	log.Info("worktree created", "path", path)
//	// Output: level=INFO msg="worktree created" component=git path=/path
func WithComponent(component string) *slog.Logger {
	return Get().With("component", component)
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	root = nil
}

// Reset clears all logger state so it can be reinitialized. For tests.
func Reset() {
	Close()
	mu.Lock()
	defer mu.Unlock()
	levelVar = new(slog.LevelVar)
}
