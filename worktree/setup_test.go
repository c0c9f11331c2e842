package worktree

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/easy-worktree/wt/config"
	wexec "github.com/easy-worktree/wt/exec"
)

func TestSetup_CopiesFilesAndDirs(t *testing.T) {
	mock := wexec.NewMockExecutor(nil)
	m := newTestManager(t, mock, "setup_files = [\".env\", \"secrets\"]\n")

	writeSrc := func(rel, content string) {
		path := filepath.Join(m.Root(), rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	writeSrc(".env", "TOKEN=abc\n")
	writeSrc(filepath.Join("secrets", "key.pem"), "---\n")

	dst := m.WorktreePath("feature")
	if err := os.MkdirAll(dst, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := m.Setup(ctx, "feature"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dst, ".env"))
	if err != nil || string(data) != "TOKEN=abc\n" {
		t.Errorf(".env not copied: %v %q", err, data)
	}
	if _, err := os.Stat(filepath.Join(dst, "secrets", "key.pem")); err != nil {
		t.Errorf("directory not copied: %v", err)
	}

	// Permission bits survive the copy
	info, err := os.Stat(filepath.Join(dst, ".env"))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}
}

func TestSetup_MissingSourceSkipped(t *testing.T) {
	mock := wexec.NewMockExecutor(nil)
	m := newTestManager(t, mock, "setup_files = [\".env.local\"]\n")

	if err := os.MkdirAll(m.WorktreePath("feature"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := m.Setup(ctx, "feature"); err != nil {
		t.Errorf("missing setup file should be skipped, not fail: %v", err)
	}
}

func TestSetup_RunsHookWithEnv(t *testing.T) {
	mock := wexec.NewMockExecutor(nil)
	m := newTestManager(t, mock, "")

	if err := os.MkdirAll(m.ScaffoldDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	hook := filepath.Join(m.ScaffoldDir(), config.PostAddHookName)
	if err := os.WriteFile(hook, []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(m.WorktreePath("feature"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := m.Setup(ctx, "feature"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	var hookCall *wexec.MockCall
	for _, call := range mock.GetCalls() {
		if call.Name == hook {
			c := call
			hookCall = &c
		}
	}
	if hookCall == nil {
		t.Fatalf("hook not executed, calls: %+v", mock.GetCalls())
	}
	if hookCall.Dir != m.WorktreePath("feature") {
		t.Errorf("hook dir = %q", hookCall.Dir)
	}

	wantEnv := map[string]bool{
		"WT_ROOT=" + m.Root():                  false,
		"WT_NAME=feature":                      false,
		"WT_PATH=" + m.WorktreePath("feature"): false,
	}
	for _, e := range hookCall.Env {
		if _, ok := wantEnv[e]; ok {
			wantEnv[e] = true
		}
	}
	for e, seen := range wantEnv {
		if !seen {
			t.Errorf("env %q not passed to hook: %v", e, hookCall.Env)
		}
	}
}

func TestSetup_NonExecutableHookSkipped(t *testing.T) {
	mock := wexec.NewMockExecutor(nil)
	m := newTestManager(t, mock, "")

	if err := os.MkdirAll(m.ScaffoldDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	hook := filepath.Join(m.ScaffoldDir(), config.PostAddHookName)
	if err := os.WriteFile(hook, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(m.WorktreePath("feature"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := m.Setup(ctx, "feature"); err != nil {
		t.Fatalf("Setup failed: %v", err)
	}

	for _, call := range mock.GetCalls() {
		if call.Name == hook {
			t.Error("non-executable hook must not run")
		}
	}
}
