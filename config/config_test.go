package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/easy-worktree/wt/paths"
)

// isolate points HOME at a temp dir so no user-level config leaks in.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	paths.Reset()
	t.Cleanup(paths.Reset)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(filepath.Join(t.TempDir(), ".wt"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorktreesDir != ".worktrees" {
		t.Errorf("unexpected worktrees_dir: %s", cfg.WorktreesDir)
	}
	if cfg.PRLimit != DefaultPRLimit {
		t.Errorf("unexpected pr_limit: %d", cfg.PRLimit)
	}
	if len(cfg.SetupFiles) != 0 {
		t.Errorf("expected no setup files, got %v", cfg.SetupFiles)
	}
}

func TestLoad_SharedConfig(t *testing.T) {
	isolate(t)
	wtDir := filepath.Join(t.TempDir(), ".wt")
	writeFile(t, filepath.Join(wtDir, ConfigFileName), `
worktrees_dir = ".custom_worktrees"
setup_files = ["base.txt"]
`)

	cfg, err := Load(wtDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorktreesDir != ".custom_worktrees" {
		t.Errorf("unexpected worktrees_dir: %s", cfg.WorktreesDir)
	}
	if len(cfg.SetupFiles) != 1 || cfg.SetupFiles[0] != "base.txt" {
		t.Errorf("unexpected setup_files: %v", cfg.SetupFiles)
	}
}

// A key set in config.local.toml fully replaces the shared value.
func TestLoad_LocalOverridesShared(t *testing.T) {
	isolate(t)
	wtDir := filepath.Join(t.TempDir(), ".wt")
	writeFile(t, filepath.Join(wtDir, ConfigFileName), `setup_files = ["base.txt"]`)
	writeFile(t, filepath.Join(wtDir, LocalConfigFileName), `setup_files = ["local.txt"]`)

	cfg, err := Load(wtDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.SetupFiles) != 1 || cfg.SetupFiles[0] != "local.txt" {
		t.Errorf("local override not applied: %v", cfg.SetupFiles)
	}
	// Keys absent from the local file keep the shared/default value
	if cfg.WorktreesDir != ".worktrees" {
		t.Errorf("unexpected worktrees_dir: %s", cfg.WorktreesDir)
	}
}

func TestLoad_UserConfigApplies(t *testing.T) {
	isolate(t)
	userPath, err := paths.UserConfigFilePath()
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, userPath, `worktrees_dir = ".trees"`)

	wtDir := filepath.Join(t.TempDir(), ".wt")
	cfg, err := Load(wtDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorktreesDir != ".trees" {
		t.Errorf("user config not applied: %s", cfg.WorktreesDir)
	}

	// Project config still wins over the user file
	writeFile(t, filepath.Join(wtDir, ConfigFileName), `worktrees_dir = ".project_trees"`)
	cfg, err = Load(wtDir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.WorktreesDir != ".project_trees" {
		t.Errorf("project config should win: %s", cfg.WorktreesDir)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	isolate(t)
	wtDir := filepath.Join(t.TempDir(), ".wt")
	writeFile(t, filepath.Join(wtDir, ConfigFileName), `worktrees_dir = [broken`)

	if _, err := Load(wtDir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidate_RejectsBadDirs(t *testing.T) {
	cases := []struct {
		name string
		dir  string
	}{
		{"empty", ""},
		{"absolute", "/tmp/worktrees"},
		{"parent escape", "../worktrees"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.WorktreesDir = tc.dir
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error for %q", tc.dir)
			}
		})
	}
}

func TestEnsureScaffold(t *testing.T) {
	wtDir := filepath.Join(t.TempDir(), ".wt")
	if err := EnsureScaffold(wtDir); err != nil {
		t.Fatalf("EnsureScaffold: %v", err)
	}

	if _, err := os.Stat(filepath.Join(wtDir, ConfigFileName)); err != nil {
		t.Errorf("config.toml not created: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(wtDir, ".gitignore"))
	if err != nil {
		t.Fatalf(".wt/.gitignore not created: %v", err)
	}
	for _, want := range []string{LocalConfigFileName, LastSelectionName} {
		if !strings.Contains(string(data), want) {
			t.Errorf(".wt/.gitignore missing %s", want)
		}
	}

	// Existing files survive a second scaffold
	custom := []byte(`worktrees_dir = ".mine"`)
	if err := os.WriteFile(filepath.Join(wtDir, ConfigFileName), custom, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureScaffold(wtDir); err != nil {
		t.Fatalf("second EnsureScaffold: %v", err)
	}
	after, _ := os.ReadFile(filepath.Join(wtDir, ConfigFileName))
	if string(after) != string(custom) {
		t.Error("EnsureScaffold overwrote existing config.toml")
	}
}

func TestLastSelection_RoundTrip(t *testing.T) {
	wtDir := t.TempDir()

	if got := LastSelection(wtDir); got != "" {
		t.Errorf("expected empty before write, got %q", got)
	}
	if err := SetLastSelection(wtDir, "feature-x"); err != nil {
		t.Fatalf("SetLastSelection: %v", err)
	}
	if got := LastSelection(wtDir); got != "feature-x" {
		t.Errorf("expected feature-x, got %q", got)
	}
}
