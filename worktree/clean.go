package worktree

import (
	"context"
	"fmt"
	"time"

	"github.com/easy-worktree/wt/cli"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/logger"
)

// CleanOptions selects which secondary worktrees are cleanup candidates.
// Dirty worktrees are never candidates regardless of options.
type CleanOptions struct {
	Merged bool // branches merged into the default branch or via a merged PR
	All    bool // every clean secondary worktree
	Days   int  // created more than Days days ago; 0 disables
}

// Candidate is a worktree selected for removal with the reason it matched.
type Candidate struct {
	Row
	Reason string
	// DeleteBranch marks merged candidates whose local branch is deleted
	// after the worktree is removed.
	DeleteBranch bool
}

// CleanCandidates evaluates the secondary worktrees against opts.
func (m *Manager) CleanCandidates(ctx context.Context, opts CleanOptions) ([]Candidate, error) {
	rows, err := m.List(ctx, false)
	if err != nil {
		return nil, err
	}

	var merged map[string]bool
	if opts.Merged {
		merged, err = m.mergedBranchSet(ctx)
		if err != nil {
			return nil, err
		}
	}

	var candidates []Candidate
	for _, row := range rows {
		if row.Primary || row.Dirty {
			continue
		}

		switch {
		case opts.All:
			candidates = append(candidates, Candidate{Row: row, Reason: i18n.T("clean_reason_clean")})
		case opts.Merged && row.Branch != "" && merged[row.Branch]:
			candidates = append(candidates, Candidate{
				Row:          row,
				Reason:       fmt.Sprintf(i18n.T("clean_reason_merged"), m.DefaultBranch(ctx)),
				DeleteBranch: true,
			})
		case opts.Days > 0 && !row.Created.IsZero() &&
			m.now().Sub(row.Created) > time.Duration(opts.Days)*24*time.Hour:
			candidates = append(candidates, Candidate{
				Row:    row,
				Reason: fmt.Sprintf(i18n.T("clean_reason_days"), opts.Days),
			})
		}
	}
	return candidates, nil
}

// mergedBranchSet collects branches considered merged: branches reachable
// from the default branch tip that have commits of their own, plus head
// branches of merged PRs when the gh CLI is available. The tip comparison
// keeps fresh branches, which point at the same commit as the default branch,
// out of the set.
func (m *Manager) mergedBranchSet(ctx context.Context) (map[string]bool, error) {
	defaultBranch := m.DefaultBranch(ctx)
	defaultTip, err := m.gitSvc.RevParse(ctx, m.repo.Root, defaultBranch)
	if err != nil {
		return nil, err
	}

	merged := make(map[string]bool)
	branches, err := m.gitSvc.MergedBranches(ctx, m.repo.Root, defaultBranch)
	if err != nil {
		return nil, err
	}
	for _, branch := range branches {
		if branch == defaultBranch {
			continue
		}
		tip, err := m.gitSvc.RevParse(ctx, m.repo.Root, branch)
		if err != nil || tip == defaultTip {
			continue
		}
		merged[branch] = true
	}

	if cli.HasGH() {
		heads, err := m.gitSvc.MergedPRHeads(ctx, m.repo.Root, m.cfg.PRLimit)
		if err != nil {
			// gh being unauthenticated or the repo having no GitHub remote
			// should not break local merge detection
			logger.WithComponent("worktree").Warn("merged PR lookup failed", "error", err)
		} else {
			for head := range heads {
				merged[head] = true
			}
		}
	}

	return merged, nil
}

// Clean removes the given candidates. Merged candidates also lose their
// local branch; force delete because squash-merged branches are not
// ancestors of the default branch.
func (m *Manager) Clean(ctx context.Context, candidates []Candidate) error {
	for _, c := range candidates {
		if err := m.Remove(ctx, c.Name, false); err != nil {
			return err
		}
		if c.DeleteBranch && c.Branch != "" {
			if err := m.gitSvc.DeleteBranch(ctx, m.repo.Root, c.Branch, true); err != nil {
				logger.WithComponent("worktree").Warn("branch delete failed", "branch", c.Branch, "error", err)
			}
		}
	}
	return nil
}

// FormatCandidate renders one candidate line for the confirmation listing.
func FormatCandidate(c Candidate) string {
	return fmt.Sprintf(i18n.T("clean_candidate"), c.Name, c.Reason)
}
