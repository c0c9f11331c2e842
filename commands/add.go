package commands

import (
	"github.com/spf13/cobra"
)

func newAddCmd() *cobra.Command {
	var skipSetup bool

	cmd := &cobra.Command{
		Use:   "add <name> [base]",
		Short: "Create a worktree",
		Long: `Create a worktree under the worktrees directory. An existing local branch
with the same name is checked out; otherwise a new branch is created from
base, or from HEAD when no base is given.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			base := ""
			if len(args) == 2 {
				base = args[1]
			}
			_, err = m.Add(cmd.Context(), args[0], base, skipSetup)
			return err
		},
	}

	cmd.Flags().BoolVar(&skipSetup, "skip-setup", false, "skip setup file copying and the post-add hook")
	return cmd
}
