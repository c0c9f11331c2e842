package worktree

import (
	"context"
	"fmt"

	"github.com/easy-worktree/wt/i18n"
)

// StashTo moves the uncommitted and untracked changes of the working copy at
// fromPath into a new worktree named name: stash, create the worktree, then
// pop inside it. On creation failure the stash is popped back where it came
// from so no work is stranded.
func (m *Manager) StashTo(ctx context.Context, fromPath, name string) (string, error) {
	clean, err := m.gitSvc.IsClean(ctx, fromPath)
	if err != nil {
		return "", err
	}
	if clean {
		return "", fmt.Errorf("nothing to stash: working tree is clean")
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("stash_moving"), name))
	if err := m.gitSvc.StashPush(ctx, fromPath); err != nil {
		return "", err
	}

	path, err := m.Add(ctx, name, "", false)
	if err != nil {
		if popErr := m.gitSvc.StashPop(ctx, fromPath); popErr != nil {
			return "", fmt.Errorf("%w (and restoring the stash failed: %v; run git stash pop manually)", err, popErr)
		}
		return "", err
	}

	if err := m.gitSvc.StashPop(ctx, path); err != nil {
		return "", fmt.Errorf("worktree created but applying the stash failed: %w", err)
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("stash_done"), name))
	return path, nil
}
