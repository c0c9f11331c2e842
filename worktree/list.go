package worktree

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/logger"
)

// Row is one entry of the worktree listing.
type Row struct {
	Name    string
	Branch  string // empty when detached or bare
	Head    string // short commit hash
	Created time.Time
	Dirty   bool
	Primary bool
	PR      *git.PullRequest // nil without --pr or when no PR matches
}

// List returns the listing rows: the primary working area first, then
// secondary worktrees sorted by creation time descending. With withPRs, pull
// requests are fetched once and matched to rows by head branch.
func (m *Manager) List(ctx context.Context, withPRs bool) ([]Row, error) {
	worktrees, err := m.gitSvc.ListWorktrees(ctx, m.repo.Root)
	if err != nil {
		return nil, err
	}

	wtPrefix := m.WorktreesDir() + string(filepath.Separator)

	var primary *Row
	var secondary []Row
	for _, wt := range worktrees {
		row := Row{
			Branch: wt.Branch,
			Head:   shortHash(wt.Head),
		}

		if filepath.Clean(wt.Path) == m.repo.Root {
			row.Name = PrimaryName
			row.Primary = true
			if !wt.Bare {
				row.Dirty = m.isDirty(ctx, wt.Path)
			}
			primary = &row
			continue
		}
		if !strings.HasPrefix(wt.Path, wtPrefix) {
			// Worktree created outside our directory, not managed here
			continue
		}

		row.Name = filepath.Base(wt.Path)
		row.Created = m.meta.CreatedAt(row.Name, wt.Path)
		row.Dirty = m.isDirty(ctx, wt.Path)
		secondary = append(secondary, row)
	}

	sort.SliceStable(secondary, func(i, j int) bool {
		return secondary[i].Created.After(secondary[j].Created)
	})

	rows := make([]Row, 0, len(secondary)+1)
	if primary != nil {
		rows = append(rows, *primary)
	}
	rows = append(rows, secondary...)

	if withPRs {
		m.annotatePRs(ctx, rows)
	}
	return rows, nil
}

func (m *Manager) isDirty(ctx context.Context, path string) bool {
	clean, err := m.gitSvc.IsClean(ctx, path)
	if err != nil {
		logger.WithComponent("worktree").Warn("status check failed", "path", path, "error", err)
		return false
	}
	return !clean
}

// annotatePRs attaches PR data to rows in place. A failing gh call degrades
// to a listing without PR columns rather than failing the command.
func (m *Manager) annotatePRs(ctx context.Context, rows []Row) {
	prs, err := m.gitSvc.ListPRs(ctx, m.repo.Root, m.cfg.PRLimit)
	if err != nil {
		logger.WithComponent("worktree").Warn("PR lookup failed", "error", err)
		return
	}

	byHead := git.PRsByHead(prs)
	for i := range rows {
		if rows[i].Branch == "" {
			continue
		}
		if pr, ok := byHead[rows[i].Branch]; ok {
			prCopy := pr
			rows[i].PR = &prCopy
		}
	}
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
