package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/easy-worktree/wt/logger"
)

// Worktree represents one entry from git worktree list --porcelain.
type Worktree struct {
	Path     string
	Head     string // full commit hash, empty for an unborn HEAD
	Branch   string // short branch name, empty when detached or bare
	Bare     bool
	Detached bool
}

// ListWorktrees returns all worktrees of the repository, primary first,
// parsed from git worktree list --porcelain.
func (s *GitService) ListWorktrees(ctx context.Context, repoPath string) ([]Worktree, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("git worktree list failed: %w", err)
	}
	return parseWorktreePorcelain(string(output)), nil
}

// parseWorktreePorcelain parses the porcelain output format: one attribute
// per line, entries separated by blank lines, starting with "worktree <path>".
func parseWorktreePorcelain(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil {
			worktrees = append(worktrees, *current)
			current = nil
		}
	}

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "worktree "):
			flush()
			current = &Worktree{Path: strings.TrimPrefix(line, "worktree ")}
		case current == nil:
			// Attribute line before any worktree entry, skip
		case strings.HasPrefix(line, "HEAD "):
			current.Head = strings.TrimPrefix(line, "HEAD ")
		case strings.HasPrefix(line, "branch "):
			ref := strings.TrimPrefix(line, "branch ")
			current.Branch = strings.TrimPrefix(ref, "refs/heads/")
		case line == "bare":
			current.Bare = true
		case line == "detached":
			current.Detached = true
		}
	}
	flush()

	return worktrees
}

// AddWorktree creates a worktree at path with an existing branch checked out.
func (s *GitService) AddWorktree(ctx context.Context, repoPath, path, branch string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "add", path, branch)
	if err != nil {
		return fmt.Errorf("git worktree add failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("added worktree", "path", path, "branch", branch)
	return nil
}

// AddWorktreeNewBranch creates a worktree at path on a new branch. When base
// is empty the branch starts from HEAD.
func (s *GitService) AddWorktreeNewBranch(ctx context.Context, repoPath, path, branch, base string) error {
	args := []string{"worktree", "add", "-b", branch, path}
	if base != "" {
		args = append(args, base)
	}
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", args...)
	if err != nil {
		return fmt.Errorf("git worktree add failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("added worktree", "path", path, "branch", branch, "base", base)
	return nil
}

// RemoveWorktree removes the worktree at path. With force, uncommitted
// changes in the worktree are discarded.
func (s *GitService) RemoveWorktree(ctx context.Context, repoPath, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", args...)
	if err != nil {
		return fmt.Errorf("git worktree remove failed: %s: %w", strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("removed worktree", "path", path, "force", force)
	return nil
}

// PruneWorktrees removes stale administrative entries for worktrees whose
// directories no longer exist.
func (s *GitService) PruneWorktrees(ctx context.Context, repoPath string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "worktree", "prune")
	if err != nil {
		return fmt.Errorf("git worktree prune failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// WorktreePassthrough runs git worktree with arbitrary arguments against the
// primary repository, attached to the terminal. Used for subcommands this
// tool does not implement itself (lock, unlock, move, repair, ...).
func (s *GitService) WorktreePassthrough(ctx context.Context, repoPath string, args []string) error {
	full := append([]string{"worktree"}, args...)
	return s.executor.Interactive(ctx, repoPath, nil, "git", full...)
}
