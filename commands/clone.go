package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	wexec "github.com/easy-worktree/wt/exec"
	"github.com/easy-worktree/wt/git"
	"github.com/easy-worktree/wt/i18n"
	"github.com/easy-worktree/wt/worktree"
)

func newCloneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clone <url> [name]",
		Short: "Clone a repository and scaffold it for worktree management",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			url := args[0]
			name := repoNameFromURL(url)
			if len(args) == 2 {
				name = args[1]
			}

			cwd, err := os.Getwd()
			if err != nil {
				return err
			}
			if _, err := os.Stat(filepath.Join(cwd, name)); err == nil {
				return fmt.Errorf(i18n.T("already_exists"), name)
			}

			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("cloning"), url, name))
			gitSvc := git.NewGitService()
			root, err := gitSvc.Clone(ctx, cwd, url, name)
			if err != nil {
				return err
			}

			m, err := worktree.NewManagerForRoot(ctx, gitSvc, wexec.NewRealExecutor(), root)
			if err != nil {
				return err
			}
			if err := m.EnsureProject(); err != nil {
				return err
			}

			fmt.Fprintln(os.Stderr, fmt.Sprintf(i18n.T("completed_clone"), root))
			return nil
		},
	}
}

// repoNameFromURL derives the local directory name from a clone URL:
// trailing path segment without the .git suffix.
func repoNameFromURL(url string) string {
	name := strings.TrimSuffix(strings.TrimRight(url, "/"), ".git")
	if idx := strings.LastIndexAny(name, "/:"); idx >= 0 {
		name = name[idx+1:]
	}
	return name
}
