package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/easy-worktree/wt/i18n"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold .wt/ in an existing repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}
			if err := m.EnsureProject(); err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("init_done"), m.Root()))
			return nil
		},
	}
}
