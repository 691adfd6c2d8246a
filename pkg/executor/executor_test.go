package executor

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	ctx := context.Background()
	exec := New()

	out, err := exec.Execute(ctx, "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() output = %q, want %q", out, "hello")
	}
}

func TestExecuteFailureIncludesStderr(t *testing.T) {
	ctx := context.Background()
	exec := New()

	_, err := exec.Execute(ctx, "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() expected error for non-zero exit")
	}

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("error type = %T, want *CommandError", err)
	}
	if cmdErr.Stderr != "boom" {
		t.Errorf("Stderr = %q, want %q", cmdErr.Stderr, "boom")
	}
}

func TestExecuteStream(t *testing.T) {
	ctx := context.Background()
	exec := New()

	var lines []string
	out, err := exec.ExecuteStream(ctx, func(line string) {
		lines = append(lines, line)
	}, "sh", "-c", "echo one; echo two")
	if err != nil {
		t.Fatalf("ExecuteStream() error = %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %v", len(lines), lines)
	}
	if lines[0] != "one" || lines[1] != "two" {
		t.Errorf("lines = %v, want [one two]", lines)
	}
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Errorf("accumulated stdout = %q", out)
	}
}

func TestExecuteStreamNilCallback(t *testing.T) {
	ctx := context.Background()
	exec := New()

	if _, err := exec.ExecuteStream(ctx, nil, "sh", "-c", "echo ok"); err != nil {
		t.Fatalf("ExecuteStream() with nil callback error = %v", err)
	}
}

func TestExecuteContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := New()
	_, err := exec.Execute(ctx, "sh", "-c", "sleep 5")
	if err == nil {
		t.Fatal("Execute() expected error with cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled in chain", err)
	}
}
