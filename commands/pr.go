package commands

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/easy-worktree/wt/config"
	wexec "github.com/easy-worktree/wt/exec"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/shell"
	"github.com/easy-worktree/wt/worktree"
)

func newPRCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Work with pull request checkouts",
	}
	cmd.AddCommand(newPRAddCmd(), newPRCoCmd())
	return cmd
}

func parsePRNumber(arg string) (int, error) {
	number, err := strconv.Atoi(arg)
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("invalid PR number %q", arg)
	}
	return number, nil
}

func newPRAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <number>",
		Short: "Check out a pull request into its own worktree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := parsePRNumber(args[0])
			if err != nil {
				return err
			}

			m, err := newManager(cmd.Context())
			if err != nil {
				return err
			}
			_, err = m.AddPR(cmd.Context(), number)
			return err
		},
	}
}

func newPRCoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "co <number>",
		Short: "Check out a pull request and open a shell in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			number, err := parsePRNumber(args[0])
			if err != nil {
				return err
			}

			m, err := newManager(ctx)
			if err != nil {
				return err
			}
			path, err := m.AddPR(ctx, number)
			if err != nil {
				return err
			}

			name := worktree.PRBranchName(number)
			if err := config.SetLastSelection(m.ScaffoldDir(), name); err != nil {
				return err
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				shell.SetTerminalTitle(os.Stdout, "wt: "+name)
			}
			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("select_entering"), name))
			return shell.Spawn(ctx, wexec.NewRealExecutor(), path, name)
		},
	}
}
