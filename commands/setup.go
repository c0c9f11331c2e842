package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/easy-worktree/wt/i18n"
)

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Re-run setup for the current worktree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			return m.Setup(cmd.Context(), m.CurrentName(cwd))
		},
	}
}

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Copy setup files into every worktree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}

			count, err := m.SyncAll(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("sync_done"), count))
			return nil
		},
	}
}
