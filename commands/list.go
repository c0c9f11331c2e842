package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/ui"
	"github.com/easy-worktree/wt/worktree"
)

func newListCmd() *cobra.Command {
	var withPRs bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List worktrees",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			rows, err := m.List(cmd.Context(), withPRs)
			if err != nil {
				return err
			}

			renderRows(rows, withPRs)
			return nil
		},
	}

	cmd.Flags().BoolVar(&withPRs, "pr", false, "show pull request status per branch")
	return cmd
}

func renderRows(rows []worktree.Row, withPRs bool) {
	headers := []string{"NAME", "BRANCH", "HEAD", "AGE", "STATUS"}
	if withPRs {
		headers = append(headers, "PR")
	}

	tbl := ui.NewTable(headers...)
	now := time.Now()
	for _, row := range rows {
		branch := row.Branch
		if branch == "" {
			branch = "(detached)"
		}

		age := ui.Cell{Text: ui.Age(row.Created, now), Style: ui.StyleMuted}
		if row.Primary {
			age = ui.Cell{Text: "-", Style: ui.StyleMuted}
		}

		status := ui.Cell{}
		if row.Dirty {
			status = ui.Cell{Text: "dirty", Style: ui.StyleDirty}
		}

		cells := []ui.Cell{
			{Text: row.Name},
			{Text: branch},
			{Text: row.Head, Style: ui.StyleMuted},
			age,
			status,
		}
		if withPRs {
			cells = append(cells, prCell(row.PR))
		}
		tbl.AddRow(cells...)
	}

	tbl.Render(os.Stdout)
}

// prCell renders the PR column: a state symbol plus the PR number.
func prCell(pr *git.PullRequest) ui.Cell {
	if pr == nil {
		return ui.Cell{}
	}

	var symbol string
	style := ui.StylePlain
	switch {
	case pr.State == git.PRStateOpen && pr.IsDraft:
		symbol, style = "◌", ui.StyleMuted
	case pr.State == git.PRStateOpen:
		symbol, style = "●", ui.StyleOpen
	case pr.State == git.PRStateMerged:
		symbol, style = "✔", ui.StyleMerged
	case pr.State == git.PRStateClosed:
		symbol, style = "✘", ui.StyleClosed
	default:
		symbol = "?"
	}

	return ui.Cell{Text: fmt.Sprintf("%s #%d", symbol, pr.Number), Style: style}
}
