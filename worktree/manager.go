// Package worktree implements the lifecycle of secondary working copies:
// creation, listing, removal, cleanup, setup-file propagation, and PR
// checkouts. All git operations go through git.GitService; this package owns
// the policy around them.
package worktree

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/easy-worktree/wt/config"
	wexec "github.com/easy-worktree/wt/exec"
	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/logger"
)

// PrimaryName is the reserved name of the primary working area.
const PrimaryName = "main"

// Manager coordinates worktree operations for one resolved repository.
type Manager struct {
	repo     *git.Repo
	cfg      *config.Config
	meta     *config.MetadataStore
	gitSvc   *git.GitService
	executor wexec.CommandExecutor

	// Progress receives user-facing progress messages. Defaults to stderr so
	// stdout stays reserved for command results.
	Progress io.Writer

	now func() time.Time
}

// NewManager resolves the repository enclosing dir and loads its
// configuration and metadata.
func NewManager(ctx context.Context, gitSvc *git.GitService, executor wexec.CommandExecutor, dir string) (*Manager, error) {
	repo, err := gitSvc.ResolveRepo(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", i18n.T("not_git_repo"), err)
	}
	return newManagerForRepo(repo, gitSvc, executor)
}

// NewManagerForRoot builds a manager for an already-known repository root,
// used right after clone where resolution from the cwd would find the wrong
// repository.
func NewManagerForRoot(ctx context.Context, gitSvc *git.GitService, executor wexec.CommandExecutor, root string) (*Manager, error) {
	repo, err := gitSvc.ResolveRepo(ctx, root)
	if err != nil {
		return nil, err
	}
	return newManagerForRepo(repo, gitSvc, executor)
}

func newManagerForRepo(repo *git.Repo, gitSvc *git.GitService, executor wexec.CommandExecutor) (*Manager, error) {
	wtDir := filepath.Join(repo.Root, config.ScaffoldDirName)
	cfg, err := config.Load(wtDir)
	if err != nil {
		return nil, err
	}
	meta, err := config.LoadMetadata(wtDir)
	if err != nil {
		return nil, err
	}

	return &Manager{
		repo:     repo,
		cfg:      cfg,
		meta:     meta,
		gitSvc:   gitSvc,
		executor: executor,
		Progress: os.Stderr,
		now:      time.Now,
	}, nil
}

// Root returns the primary repository root.
func (m *Manager) Root() string {
	return m.repo.Root
}

// Bare reports whether the primary repository is bare.
func (m *Manager) Bare() bool {
	return m.repo.Bare
}

// Config returns the merged configuration.
func (m *Manager) Config() *config.Config {
	return m.cfg
}

// ScaffoldDir returns the .wt directory of the repository.
func (m *Manager) ScaffoldDir() string {
	return filepath.Join(m.repo.Root, config.ScaffoldDirName)
}

// WorktreesDir returns the directory holding secondary worktrees.
func (m *Manager) WorktreesDir() string {
	return filepath.Join(m.repo.Root, m.cfg.WorktreesDir)
}

// WorktreePath returns the path a worktree with the given name lives at.
// PrimaryName maps to the repository root.
func (m *Manager) WorktreePath(name string) string {
	if name == PrimaryName {
		return m.repo.Root
	}
	return filepath.Join(m.WorktreesDir(), name)
}

// CurrentName returns the worktree name dir is inside, or PrimaryName when it
// is not under the worktrees directory.
func (m *Manager) CurrentName(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return PrimaryName
	}
	rel, err := filepath.Rel(m.WorktreesDir(), abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return PrimaryName
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	return parts[0]
}

// DefaultBranch returns the configured default branch, falling back to
// detection from the repository.
func (m *Manager) DefaultBranch(ctx context.Context) string {
	if m.cfg.DefaultBranch != "" {
		return m.cfg.DefaultBranch
	}
	return m.gitSvc.DefaultBranch(ctx, m.repo.Root)
}

// EnsureProject creates the .wt scaffolding and adds the worktrees directory
// to the root .gitignore. Safe to call repeatedly; existing files are kept.
// The scaffold directory itself is meant to be committed, so it is never
// added to .gitignore.
func (m *Manager) EnsureProject() error {
	if err := config.EnsureScaffold(m.ScaffoldDir()); err != nil {
		return err
	}
	if m.repo.Bare {
		return nil
	}
	return ensureGitignoreEntry(filepath.Join(m.repo.Root, ".gitignore"), m.cfg.WorktreesDir+"/")
}

// Add creates a new worktree. An existing local branch named name is checked
// out; otherwise a new branch is created from base, or from HEAD when base is
// empty. Setup runs afterwards unless skipSetup.
func (m *Manager) Add(ctx context.Context, name, base string, skipSetup bool) (string, error) {
	if name == PrimaryName {
		return "", fmt.Errorf("%q is reserved for the primary working area", PrimaryName)
	}
	path := m.WorktreePath(name)
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf(i18n.T("already_exists"), path)
	}
	if !m.gitSvc.HasCommits(ctx, m.repo.Root) {
		return "", fmt.Errorf("repository has no commits to branch from")
	}

	if m.gitSvc.HasRemoteOrigin(ctx, m.repo.Root) {
		fmt.Fprintln(m.Progress, i18n.T("fetching"))
		if err := m.gitSvc.Fetch(ctx, m.repo.Root); err != nil {
			// Offline is fine, the worktree comes from local refs
			logger.WithComponent("worktree").Warn("fetch failed", "error", err)
		}
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("creating_worktree"), name))

	var err error
	if m.gitSvc.LocalBranchExists(ctx, m.repo.Root, name) {
		err = m.gitSvc.AddWorktree(ctx, m.repo.Root, path, name)
	} else {
		err = m.gitSvc.AddWorktreeNewBranch(ctx, m.repo.Root, path, name, base)
	}
	if err != nil {
		return "", err
	}

	branch, berr := m.gitSvc.CurrentBranch(ctx, path)
	if berr != nil {
		branch = name
	}
	if _, err := m.meta.Add(name, branch); err != nil {
		logger.WithComponent("worktree").Warn("failed to record metadata", "name", name, "error", err)
	}

	if !skipSetup {
		if err := m.Setup(ctx, name); err != nil {
			return "", err
		}
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("completed_worktree"), path))
	return path, nil
}

// Remove deletes a secondary worktree. Dirty worktrees are refused unless
// force is set.
func (m *Manager) Remove(ctx context.Context, name string, force bool) error {
	if name == PrimaryName {
		return fmt.Errorf("refusing to remove the primary working area")
	}
	path := m.WorktreePath(name)
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("worktree %s not found at %s", name, path)
	}

	if !force {
		clean, err := m.gitSvc.IsClean(ctx, path)
		if err != nil {
			return err
		}
		if !clean {
			return fmt.Errorf(i18n.T("dirty_worktree"), name)
		}
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("removing_worktree"), name))
	if err := m.gitSvc.RemoveWorktree(ctx, m.repo.Root, path, force); err != nil {
		return err
	}
	if err := m.meta.Remove(name); err != nil {
		logger.WithComponent("worktree").Warn("failed to prune metadata", "name", name, "error", err)
	}
	// Drop stale administrative entries, including ones left behind by
	// worktree directories deleted outside of wt
	if err := m.gitSvc.PruneWorktrees(ctx, m.repo.Root); err != nil {
		logger.WithComponent("worktree").Warn("worktree prune failed", "error", err)
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("completed_remove"), name))
	return nil
}

// ensureGitignoreEntry appends entry to the ignore file at path unless an
// identical line is already present.
func ensureGitignoreEntry(path, entry string) error {
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == entry {
			return nil
		}
	}

	var b strings.Builder
	b.Write(data)
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		b.WriteString("\n")
	}
	b.WriteString(entry + "\n")
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
