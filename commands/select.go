package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/easy-worktree/wt/config"
	wexec "github.com/easy-worktree/wt/exec"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/shell"
	"github.com/easy-worktree/wt/worktree"
)

func newSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "select [name]",
		Short: "Open a shell inside a worktree",
		Long: `Spawn a subshell in the named worktree with WT_SESSION_NAME exported.
"main" selects the primary working area. Without a name the last selection
is reused. Exit the shell to return.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			m, err := newManager(ctx)
			if err != nil {
				return err
			}
			if err := m.EnsureProject(); err != nil {
				return err
			}

			name := ""
			if len(args) == 1 {
				name = args[0]
			} else if name = config.LastSelection(m.ScaffoldDir()); name == "" {
				return fmt.Errorf("no previous selection; run wt select <name>")
			}

			path := m.WorktreePath(name)
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("worktree %s not found at %s", name, path)
			}

			if err := config.SetLastSelection(m.ScaffoldDir(), name); err != nil {
				return err
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				shell.SetTerminalTitle(os.Stdout, "wt: "+name)
			}
			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("select_entering"), name))

			err = shell.Spawn(ctx, wexec.NewRealExecutor(), path, name)

			if term.IsTerminal(int(os.Stdout.Fd())) {
				shell.SetTerminalTitle(os.Stdout, "wt")
			}
			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("select_exited"), name))
			return err
		},
	}
}

func newCurrentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Print the name of the current worktree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name := shell.CurrentSession(); name != "" {
				fmt.Println(name)
				return nil
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			m, err := newManager(cmd.Context())
			if err != nil {
				// Outside a repository there is no worktree to name
				fmt.Println(worktree.PrimaryName)
				return nil
			}
			fmt.Println(m.CurrentName(cwd))
			return nil
		},
	}
}
