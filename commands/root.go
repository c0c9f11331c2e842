// Package commands wires the wt subcommands together with cobra.
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	osexec "os/exec"

	"github.com/spf13/cobra"

	"github.com/easy-worktree/wt/cli"
	wexec "github.com/easy-worktree/wt/exec"
	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/logger"
	"github.com/easy-worktree/wt/worktree"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var debug bool

// New builds the root command with all subcommands attached.
func New() *cobra.Command {
	root := &cobra.Command{
		Use:   "wt",
		Short: "Manage git worktrees under one directory",
		Long: `wt standardizes working with multiple git worktrees of one repository.
The repository root stays the primary working area; secondary working copies
live under a configurable subdirectory (default .worktrees/).

Unknown subcommands are passed through to git worktree, so commands like
"wt lock" or "wt move" keep working.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		// Unknown subcommands fall through to RunE for git worktree
		// passthrough. Flag parsing must stay off on the root: an
		// invocation like "wt lock --reason busy" carries flags cobra
		// does not know, and they have to reach git worktree verbatim.
		// Subcommands parse flags normally; the root's own flags are
		// picked off by hand in RunE.
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetDebug(debug)
			if path, err := logger.DefaultLogPath(); err == nil {
				// Logging to file is best effort; a read-only home must not
				// break the tool
				_ = logger.Init(path)
			}
			return cli.ValidateRequired(cli.DefaultPrerequisites())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for len(args) > 0 {
				switch args[0] {
				case "-h", "--help":
					return cmd.Help()
				case "--version":
					fmt.Fprintf(cmd.OutOrStdout(), "wt version %s\n", Version)
					return nil
				case "--debug":
					logger.SetDebug(true)
					args = args[1:]
					continue
				}
				break
			}
			if len(args) == 0 {
				return cmd.Help()
			}
			return runPassthrough(cmd.Context(), args)
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	root.AddCommand(
		newCloneCmd(),
		newInitCmd(),
		newAddCmd(),
		newListCmd(),
		newRemoveCmd(),
		newCleanCmd(),
		newSetupCmd(),
		newSyncCmd(),
		newSelectCmd(),
		newCurrentCmd(),
		newStashCmd(),
		newPRCmd(),
		newDoctorCmd(),
	)

	return root
}

// newManager builds the manager for the repository enclosing the current
// working directory.
func newManager(ctx context.Context) (*worktree.Manager, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return worktree.NewManager(ctx, git.NewGitService(), wexec.NewRealExecutor(), cwd)
}

// runPassthrough forwards unrecognized subcommands to git worktree against
// the primary repository. Swapped in tests.
var runPassthrough = func(ctx context.Context, args []string) error {
	m, err := newManager(ctx)
	if err != nil {
		return err
	}
	logger.WithComponent("commands").Info("passthrough", "args", args)
	return passthroughError(git.NewGitService().WorktreePassthrough(ctx, m.Root(), args))
}

// ExitCodeError carries a child process exit status to main. git worktree
// already wrote its own stderr, so main exits with the code and prints
// nothing further.
type ExitCodeError struct {
	Code int
}

func (e ExitCodeError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// passthroughError maps a git worktree failure to its exit status. Errors
// that are not process exits (repository resolution, context cancellation)
// pass through unchanged.
func passthroughError(err error) error {
	var exitErr *osexec.ExitError
	if errors.As(err, &exitErr) {
		return ExitCodeError{Code: exitErr.ExitCode()}
	}
	return err
}
