package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitAndWrite(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "logs", "graft.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	WithComponent("git").Info("worktree created", "path", "/tmp/wt")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "worktree created") {
		t.Errorf("log file missing message, got: %s", content)
	}
	if !strings.Contains(content, "component=git") {
		t.Errorf("log file missing component attr, got: %s", content)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first := filepath.Join(t.TempDir(), "a.log")
	second := filepath.Join(t.TempDir(), "b.log")

	if err := Init(first); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := Init(second); err != nil {
		t.Fatalf("second Init: %v", err)
	}

	Get().Info("after second init")
	Close()

	if _, err := os.Stat(second); !os.IsNotExist(err) {
		t.Error("second Init should not have created a new log file")
	}
}

func TestSetDebug(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	path := filepath.Join(t.TempDir(), "graft.log")
	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}

	WithComponent("test").Debug("hidden")
	SetDebug(true)
	WithComponent("test").Debug("visible")
	Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	content := string(data)
	if strings.Contains(content, "hidden") {
		t.Error("debug message logged while debug disabled")
	}
	if !strings.Contains(content, "visible") {
		t.Error("debug message missing after SetDebug(true)")
	}
}
