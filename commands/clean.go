package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/easy-worktree/wt/cli"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/worktree"
)

func newCleanCmd() *cobra.Command {
	var (
		merged bool
		all    bool
		days   int
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove worktrees that are no longer needed",
		Long: `Remove secondary worktrees matching the given filters. Worktrees with
uncommitted changes are never touched. Candidates are listed and confirmed
before anything is removed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !merged && !all && days == 0 {
				return fmt.Errorf("nothing selected: use --merged, --all, or --days N")
			}

			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			candidates, err := m.CleanCandidates(cmd.Context(), worktree.CleanOptions{
				Merged: merged,
				All:    all,
				Days:   days,
			})
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				fmt.Fprintln(os.Stderr, i18n.T("clean_none"))
				return nil
			}

			fmt.Fprintln(os.Stderr, i18n.T("clean_header"))
			for _, c := range candidates {
				fmt.Fprintln(os.Stderr, worktree.FormatCandidate(c))
			}

			if !yes && !cli.Confirm(os.Stdin, os.Stderr, i18n.T("clean_confirm")) {
				fmt.Fprintln(os.Stderr, i18n.T("clean_cancelled"))
				return nil
			}

			return m.Clean(cmd.Context(), candidates)
		},
	}

	cmd.Flags().BoolVar(&merged, "merged", false, "worktrees whose branch is merged into the default branch")
	cmd.Flags().BoolVar(&all, "all", false, "every worktree without uncommitted changes")
	cmd.Flags().IntVar(&days, "days", 0, "worktrees created more than N days ago")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
