package worktree

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/easy-worktree/wt/config"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/logger"
)

// Setup copies the configured setup files from the primary working area into
// the named worktree and runs the post-add hook if present. Used after add
// and by the setup command to refresh an existing worktree.
func (m *Manager) Setup(ctx context.Context, name string) error {
	path := m.WorktreePath(name)
	if err := m.copySetupFiles(path); err != nil {
		return err
	}
	if err := m.runPostAddHook(ctx, name, path); err != nil {
		return err
	}
	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("setup_done"), name))
	return nil
}

// SyncAll copies the setup files into every secondary worktree and returns
// how many were updated.
func (m *Manager) SyncAll(ctx context.Context) (int, error) {
	rows, err := m.List(ctx, false)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, row := range rows {
		if row.Primary {
			continue
		}
		if err := m.copySetupFiles(m.WorktreePath(row.Name)); err != nil {
			return count, fmt.Errorf("sync %s: %w", row.Name, err)
		}
		count++
	}
	return count, nil
}

// copySetupFiles copies each configured path from the repository root into
// dst. Missing sources are skipped with a log entry; git-ignored local files
// like .env commonly exist on some machines only.
func (m *Manager) copySetupFiles(dst string) error {
	if dst == m.repo.Root {
		// The primary working area is the source of the setup files
		return nil
	}
	for _, rel := range m.cfg.SetupFiles {
		src := filepath.Join(m.repo.Root, rel)
		info, err := os.Stat(src)
		if os.IsNotExist(err) {
			logger.WithComponent("worktree").Debug("setup file missing, skipped", "path", rel)
			continue
		}
		if err != nil {
			return err
		}

		target := filepath.Join(dst, rel)
		if info.IsDir() {
			err = copyTree(src, target)
		} else {
			err = copyFile(src, target, info.Mode())
		}
		if err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("setup_copied"), rel))
	}
	return nil
}

// runPostAddHook executes .wt/post-add in the worktree when it exists and is
// executable. The hook sees the worktree's identity in its environment.
func (m *Manager) runPostAddHook(ctx context.Context, name, path string) error {
	hook := filepath.Join(m.ScaffoldDir(), config.PostAddHookName)
	info, err := os.Stat(hook)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.Mode()&0o111 == 0 {
		logger.WithComponent("worktree").Warn("post-add hook is not executable, skipped", "path", hook)
		return nil
	}

	branch, berr := m.gitSvc.CurrentBranch(ctx, path)
	if berr != nil {
		branch = ""
	}
	env := []string{
		"WT_ROOT=" + m.repo.Root,
		"WT_NAME=" + name,
		"WT_BRANCH=" + branch,
		"WT_PATH=" + path,
	}

	fmt.Fprintln(m.Progress, i18n.T("setup_hook"))
	if err := m.executor.Interactive(ctx, path, env, hook); err != nil {
		return fmt.Errorf("post-add hook failed: %w", err)
	}
	return nil
}

func copyFile(src, dst string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		return copyFile(path, target, info.Mode())
	})
}
