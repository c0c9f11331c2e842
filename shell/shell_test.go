package shell

import (
	"context"
	"strings"
	"testing"

	wexec "github.com/easy-worktree/wt/exec"
)

func TestDefaultShell(t *testing.T) {
	t.Setenv("SHELL", "/usr/bin/zsh")
	if got := DefaultShell(); got != "/usr/bin/zsh" {
		t.Errorf("DefaultShell = %q, want /usr/bin/zsh", got)
	}

	t.Setenv("SHELL", "")
	if got := DefaultShell(); got != "/bin/sh" {
		t.Errorf("DefaultShell = %q, want /bin/sh", got)
	}
}

func TestCurrentSession(t *testing.T) {
	t.Setenv(SessionEnvVar, "feature-x")
	if got := CurrentSession(); got != "feature-x" {
		t.Errorf("CurrentSession = %q, want feature-x", got)
	}

	t.Setenv(SessionEnvVar, "")
	if got := CurrentSession(); got != "" {
		t.Errorf("CurrentSession = %q, want empty", got)
	}
}

func TestSetTerminalTitle(t *testing.T) {
	var b strings.Builder
	SetTerminalTitle(&b, "wt: feature-x")

	out := b.String()
	if !strings.HasPrefix(out, "\033]0;") || !strings.HasSuffix(out, "\007") {
		t.Errorf("escape sequence malformed: %q", out)
	}
	if !strings.Contains(out, "wt: feature-x") {
		t.Errorf("title missing: %q", out)
	}
}

func TestSpawn_ExportsSessionName(t *testing.T) {
	t.Setenv("SHELL", "/bin/bash")

	mock := wexec.NewMockExecutor(nil)
	if err := Spawn(context.Background(), mock, "/repo/.worktrees/feature", "feature"); err != nil {
		t.Fatalf("Spawn failed: %v", err)
	}

	calls := mock.GetCalls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(calls))
	}
	if calls[0].Name != "/bin/bash" {
		t.Errorf("shell = %q, want /bin/bash", calls[0].Name)
	}
	if calls[0].Dir != "/repo/.worktrees/feature" {
		t.Errorf("dir = %q", calls[0].Dir)
	}

	found := false
	for _, e := range calls[0].Env {
		if e == SessionEnvVar+"=feature" {
			found = true
		}
	}
	if !found {
		t.Errorf("session env not exported: %v", calls[0].Env)
	}
}
