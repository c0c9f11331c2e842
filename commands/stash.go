package commands

import (
	"os"

	"github.com/spf13/cobra"
)

func newStashCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stash <name>",
		Short: "Move uncommitted changes into a new worktree",
		Long: `Stash the uncommitted and untracked changes of the current working copy,
create a new worktree, and apply the stash there. The current working copy
ends up clean.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			fromPath := m.WorktreePath(m.CurrentName(cwd))

			_, err = m.StashTo(cmd.Context(), fromPath, args[0])
			return err
		},
	}
}
