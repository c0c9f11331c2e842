// Package config loads and merges wt configuration and per-project state.
//
// Configuration sources, later wins per key:
//  1. built-in defaults
//  2. user-level config.toml (XDG config dir)
//  3. project .wt/config.toml (shared, committed)
//  4. project .wt/config.local.toml (per-machine, git-ignored)
//
// Merging is whole-value: a key set in a later file fully replaces the
// earlier value. Notably a local setup_files list overrides the shared list
// rather than appending to it.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/easy-worktree/wt/paths"
)

// Standard names of project-level files under the scaffold directory.
const (
	ScaffoldDirName     = ".wt"
	ConfigFileName      = "config.toml"
	LocalConfigFileName = "config.local.toml"
	MetadataFileName    = "metadata.json"
	LastSelectionName   = "last_selection"
	PostAddHookName     = "post-add"
)

// DefaultWorktreesDir is where secondary working copies live unless configured.
const DefaultWorktreesDir = ".worktrees"

// DefaultPRLimit caps how many pull requests one gh invocation fetches.
const DefaultPRLimit = 200

// Config holds the merged wt configuration for a project.
type Config struct {
	// WorktreesDir is the subdirectory of the repository root holding
	// secondary working copies. Must be a relative path.
	WorktreesDir string `toml:"worktrees_dir"`

	// SetupFiles are paths relative to the repository root copied into new
	// worktrees (git-ignored local files like .env that a fresh checkout
	// would otherwise lack).
	SetupFiles []string `toml:"setup_files"`

	// DefaultBranch overrides default-branch detection when set.
	DefaultBranch string `toml:"default_branch"`

	// PRLimit caps the page size of gh pr list calls.
	PRLimit int `toml:"pr_limit"`
}

// fileConfig mirrors Config with pointer fields so merging can distinguish
// "absent" from "set to zero value".
type fileConfig struct {
	WorktreesDir  *string   `toml:"worktrees_dir"`
	SetupFiles    *[]string `toml:"setup_files"`
	DefaultBranch *string   `toml:"default_branch"`
	PRLimit       *int      `toml:"pr_limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		WorktreesDir: DefaultWorktreesDir,
		SetupFiles:   []string{},
		PRLimit:      DefaultPRLimit,
	}
}

// Load reads and merges all configuration sources for the project whose
// scaffold directory is wtDir (".wt" under the repository root). Missing
// files are skipped; malformed files are errors.
func Load(wtDir string) (*Config, error) {
	cfg := Default()

	sources := make([]string, 0, 3)
	if userPath, err := paths.UserConfigFilePath(); err == nil {
		sources = append(sources, userPath)
	}
	sources = append(sources,
		filepath.Join(wtDir, ConfigFileName),
		filepath.Join(wtDir, LocalConfigFileName),
	)

	for _, path := range sources {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFile overlays one TOML file onto the config. Absent files are a no-op.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	if fc.WorktreesDir != nil {
		c.WorktreesDir = *fc.WorktreesDir
	}
	if fc.SetupFiles != nil {
		c.SetupFiles = *fc.SetupFiles
	}
	if fc.DefaultBranch != nil {
		c.DefaultBranch = *fc.DefaultBranch
	}
	if fc.PRLimit != nil {
		c.PRLimit = *fc.PRLimit
	}
	return nil
}

// Validate checks invariants on the merged configuration.
func (c *Config) Validate() error {
	if c.WorktreesDir == "" {
		return fmt.Errorf("worktrees_dir must not be empty")
	}
	if filepath.IsAbs(c.WorktreesDir) {
		return fmt.Errorf("worktrees_dir must be relative to the repository root, got %q", c.WorktreesDir)
	}
	if strings.Contains(c.WorktreesDir, "..") {
		return fmt.Errorf("worktrees_dir must not contain %q", "..")
	}
	if c.PRLimit <= 0 {
		return fmt.Errorf("pr_limit must be positive, got %d", c.PRLimit)
	}
	return nil
}

// defaultConfigTOML is written by init/clone so users have a documented
// starting point.
const defaultConfigTOML = `# wt project configuration (shared, committed).
# Per-machine overrides go in config.local.toml next to this file.

# Subdirectory of the repository root holding secondary worktrees.
worktrees_dir = ".worktrees"

# Files copied from the repository root into newly created worktrees,
# e.g. git-ignored local settings:
# setup_files = [".env", "config/local.yml"]
setup_files = []
`

// scaffoldGitignore keeps per-machine state out of the shared .wt directory.
const scaffoldGitignore = `config.local.toml
last_selection
metadata.json
`

// EnsureScaffold creates the .wt directory with a default config.toml and a
// .gitignore for local-only files. Existing files are left untouched.
func EnsureScaffold(wtDir string) error {
	if err := os.MkdirAll(wtDir, 0o755); err != nil {
		return err
	}

	cfgPath := filepath.Join(wtDir, ConfigFileName)
	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		if err := os.WriteFile(cfgPath, []byte(defaultConfigTOML), 0o644); err != nil {
			return err
		}
	}

	ignorePath := filepath.Join(wtDir, ".gitignore")
	if _, err := os.Stat(ignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(ignorePath, []byte(scaffoldGitignore), 0o644); err != nil {
			return err
		}
	}
	return nil
}

// LastSelection returns the most recent wt select target, or "" if none.
func LastSelection(wtDir string) string {
	data, err := os.ReadFile(filepath.Join(wtDir, LastSelectionName))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SetLastSelection records the wt select target.
func SetLastSelection(wtDir, name string) error {
	return os.WriteFile(filepath.Join(wtDir, LastSelectionName), []byte(name+"\n"), 0o644)
}
