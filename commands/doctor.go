package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/easy-worktree/wt/cli"
	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/i18n"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check CLI prerequisites and repository detection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			results := cli.CheckAll(cli.DefaultPrerequisites())
			fmt.Fprint(out, cli.FormatCheckResults(results))

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			gitSvc := git.NewGitService()
			if !gitSvc.IsGitRepo(ctx, cwd) {
				fmt.Fprintln(out, i18n.T("not_git_repo"))
				return nil
			}

			m, err := newManager(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Repository:\n  root: %s\n  worktrees: %s\n", m.Root(), m.WorktreesDir())
			if origin, err := gitSvc.RemoteOriginURL(ctx, m.Root()); err == nil {
				fmt.Fprintf(out, "  origin: %s\n", origin)
			}
			return nil
		},
	}
}
