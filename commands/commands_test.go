package commands

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	osexec "os/exec"
	"slices"
	"strings"
	"testing"

	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/paths"
)

func TestRepoNameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/owner/repo.git", "repo"},
		{"https://github.com/owner/repo", "repo"},
		{"git@github.com:owner/repo.git", "repo"},
		{"https://github.com/owner/repo.git/", "repo"},
		{"repo", "repo"},
	}

	for _, tt := range tests {
		if got := repoNameFromURL(tt.url); got != tt.want {
			t.Errorf("repoNameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestParsePRNumber(t *testing.T) {
	if n, err := parsePRNumber("42"); err != nil || n != 42 {
		t.Errorf("parsePRNumber(42) = %d, %v", n, err)
	}
	for _, bad := range []string{"abc", "-1", "0", ""} {
		if _, err := parsePRNumber(bad); err == nil {
			t.Errorf("parsePRNumber(%q) should fail", bad)
		}
	}
}

func TestPRCell(t *testing.T) {
	tests := []struct {
		name string
		pr   *git.PullRequest
		want string
	}{
		{"none", nil, ""},
		{"open", &git.PullRequest{Number: 12, State: git.PRStateOpen}, "● #12"},
		{"draft", &git.PullRequest{Number: 7, State: git.PRStateOpen, IsDraft: true}, "◌ #7"},
		{"merged", &git.PullRequest{Number: 9, State: git.PRStateMerged}, "✔ #9"},
		{"closed", &git.PullRequest{Number: 3, State: git.PRStateClosed}, "✘ #3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prCell(tt.pr).Text; got != tt.want {
				t.Errorf("prCell = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNew_SubcommandsRegistered(t *testing.T) {
	root := New()

	want := []string{"clone", "init", "add", "list", "rm", "clean", "setup", "sync", "select", "current", "stash", "pr", "doctor"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}

	if !strings.Contains(root.Long, "git worktree") {
		t.Error("root long help should mention passthrough")
	}
}

// interceptPassthrough swaps the passthrough for the test and records the
// arguments it receives.
func interceptPassthrough(t *testing.T) *[]string {
	t.Helper()
	orig := runPassthrough
	t.Cleanup(func() { runPassthrough = orig })

	var got []string
	runPassthrough = func(ctx context.Context, args []string) error {
		got = append([]string(nil), args...)
		return nil
	}
	return &got
}

func TestRootPassthroughKeepsFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "")
	paths.Reset()

	got := interceptPassthrough(t)

	root := New()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"lock", "--reason", "busy", "feature"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := []string{"lock", "--reason", "busy", "feature"}
	if !slices.Equal(*got, want) {
		t.Errorf("forwarded args = %v, want %v", *got, want)
	}
}

func TestRootDebugFlagNotForwarded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_STATE_HOME", "")
	paths.Reset()

	got := interceptPassthrough(t)

	root := New()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--debug", "prune", "--dry-run"})
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}

	want := []string{"prune", "--dry-run"}
	if !slices.Equal(*got, want) {
		t.Errorf("forwarded args = %v, want %v", *got, want)
	}
}

func TestPassthroughErrorExitCode(t *testing.T) {
	err := osexec.Command("sh", "-c", "exit 3").Run()
	var exitErr ExitCodeError
	if !errors.As(passthroughError(err), &exitErr) {
		t.Fatalf("expected ExitCodeError, got %v", err)
	}
	if exitErr.Code != 3 {
		t.Errorf("code = %d, want 3", exitErr.Code)
	}

	if passthroughError(nil) != nil {
		t.Error("nil error should stay nil")
	}
	plain := errors.New("bad repo")
	if passthroughError(plain) != plain {
		t.Error("non-exit errors should pass through unchanged")
	}
}

func TestDoctorOutsideRepository(t *testing.T) {
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(oldwd) })

	cmd := newDoctorCmd()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(io.Discard)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("doctor: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "CLI Prerequisites") {
		t.Errorf("output missing prerequisite listing: %q", out)
	}
	if !strings.Contains(out, i18n.T("not_git_repo")) {
		t.Errorf("output missing repository status: %q", out)
	}
}
