package exec

import (
	"context"
	"errors"
	"testing"
)

func TestRealExecutor_Run(t *testing.T) {
	executor := NewRealExecutor()
	ctx := context.Background()

	stdout, stderr, err := executor.Run(ctx, "", "echo", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(stdout) != "hello\n" {
		t.Errorf("expected 'hello\\n', got %q", string(stdout))
	}
	if len(stderr) != 0 {
		t.Errorf("expected empty stderr, got %q", string(stderr))
	}
}

func TestRealExecutor_Output(t *testing.T) {
	executor := NewRealExecutor()
	ctx := context.Background()

	output, err := executor.Output(ctx, "", "echo", "world")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(output) != "world\n" {
		t.Errorf("expected 'world\\n', got %q", string(output))
	}
}

func TestRealExecutor_RunFailure(t *testing.T) {
	executor := NewRealExecutor()
	ctx := context.Background()

	_, _, err := executor.Run(ctx, "", "false")
	if err == nil {
		t.Fatal("expected error from failing command")
	}
}

func TestMockExecutor_Run(t *testing.T) {
	mock := NewMockExecutor(nil)

	mock.AddExactMatch("git", []string{"status"}, MockResponse{
		Stdout: []byte("On branch main"),
	})

	ctx := context.Background()
	stdout, stderr, err := mock.Run(ctx, "/some/dir", "git", "status")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(stdout) != "On branch main" {
		t.Errorf("expected 'On branch main', got %q", string(stdout))
	}
	if len(stderr) != 0 {
		t.Errorf("expected empty stderr, got %q", string(stderr))
	}

	calls := mock.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Dir != "/some/dir" {
		t.Errorf("expected dir '/some/dir', got %q", calls[0].Dir)
	}
	if calls[0].Name != "git" {
		t.Errorf("expected name 'git', got %q", calls[0].Name)
	}
}

func TestMockExecutor_PrefixMatch(t *testing.T) {
	mock := NewMockExecutor(nil)

	mock.AddPrefixMatch("git", []string{"rev-parse"}, MockResponse{
		Stdout: []byte("abc123"),
	})

	ctx := context.Background()

	stdout, _, err := mock.Run(ctx, "", "git", "rev-parse", "--verify", "main")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(stdout) != "abc123" {
		t.Errorf("expected 'abc123', got %q", string(stdout))
	}

	// Different prefix should fall through to the empty default.
	stdout, _, err = mock.Run(ctx, "", "git", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(stdout) != 0 {
		t.Errorf("expected empty stdout for unmatched command, got %q", string(stdout))
	}
}

func TestMockExecutor_ErrorResponse(t *testing.T) {
	mock := NewMockExecutor(nil)

	wantErr := errors.New("exit status 128")
	mock.AddExactMatch("git", []string{"merge", "feature", "--no-edit"}, MockResponse{
		Stderr: []byte("CONFLICT (content): Merge conflict"),
		Err:    wantErr,
	})

	ctx := context.Background()
	output, err := mock.CombinedOutput(ctx, "/repo", "git", "merge", "feature", "--no-edit")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected rule error, got %v", err)
	}
	if string(output) != "CONFLICT (content): Merge conflict" {
		t.Errorf("unexpected combined output: %q", string(output))
	}
}

func TestMockExecutor_Interactive(t *testing.T) {
	mock := NewMockExecutor(nil)

	wantErr := errors.New("exit status 1")
	mock.AddExactMatch("npm", []string{"install"}, MockResponse{Err: wantErr})

	ctx := context.Background()
	if err := mock.Interactive(ctx, "/wt", nil, "npm", "install"); !errors.Is(err, wantErr) {
		t.Fatalf("expected rule error, got %v", err)
	}
	if err := mock.Interactive(ctx, "/wt", []string{"K=V"}, "code", "/wt"); err != nil {
		t.Fatalf("unexpected error for unmatched interactive command: %v", err)
	}

	calls := mock.GetCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 recorded calls, got %d", len(calls))
	}
}

func TestMockExecutor_ClearCalls(t *testing.T) {
	mock := NewMockExecutor(nil)
	ctx := context.Background()

	mock.Run(ctx, "", "git", "status")
	mock.ClearCalls()

	if got := len(mock.GetCalls()); got != 0 {
		t.Errorf("expected 0 calls after ClearCalls, got %d", got)
	}
}
