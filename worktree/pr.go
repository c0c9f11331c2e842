package worktree

import (
	"context"
	"fmt"
	"os"

	"github.com/easy-worktree/wt/cli"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/logger"
)

// PRBranchName returns the local branch name used for a PR checkout.
func PRBranchName(number int) string {
	return fmt.Sprintf("pr@%d", number)
}

// AddPR checks out a pull request into its own worktree: the PR head ref is
// fetched into branch pr@<number>, then a worktree of that branch is created.
// Re-running for an existing worktree refreshes the branch instead.
func (m *Manager) AddPR(ctx context.Context, number int) (string, error) {
	branch := PRBranchName(number)
	path := m.WorktreePath(branch)

	if _, err := os.Stat(path); err == nil {
		// Already checked out. The branch cannot be force-fetched while a
		// worktree holds it, so reuse the existing checkout as-is.
		return path, nil
	}

	if cli.HasGH() {
		if pr, err := m.gitSvc.ViewPR(ctx, m.repo.Root, number); err != nil {
			return "", fmt.Errorf("PR #%d not found: %w", number, err)
		} else {
			logger.WithComponent("worktree").Info("resolved PR", "number", number, "head", pr.HeadRefName, "state", pr.State)
		}
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("pr_fetching"), number))
	if err := m.gitSvc.FetchPRHead(ctx, m.repo.Root, number, branch); err != nil {
		return "", err
	}

	if err := m.gitSvc.AddWorktree(ctx, m.repo.Root, path, branch); err != nil {
		return "", err
	}
	if _, err := m.meta.Add(branch, branch); err != nil {
		logger.WithComponent("worktree").Warn("failed to record metadata", "name", branch, "error", err)
	}
	if err := m.Setup(ctx, branch); err != nil {
		return "", err
	}

	fmt.Fprintln(m.Progress, fmt.Sprintf(i18n.T("pr_done"), number, path))
	return path, nil
}
