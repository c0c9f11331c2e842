package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/easy-worktree/wt/logger"
)

// CurrentBranch returns the name of the currently checked out branch in the
// given repo/worktree. Returns an error if HEAD is detached or the command fails.
func (s *GitService) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("HEAD is detached (not on a branch)")
	}

	return branch, nil
}

// DefaultBranch returns the default branch name (main or master).
func (s *GitService) DefaultBranch(ctx context.Context, repoPath string) string {
	// Try to get the default branch from origin
	output, err := s.executor.Output(ctx, repoPath, "git", "symbolic-ref", "refs/remotes/origin/HEAD")
	if err == nil {
		// Output is like "refs/remotes/origin/main"
		ref := strings.TrimSpace(string(output))
		parts := strings.Split(ref, "/")
		if len(parts) > 0 {
			return parts[len(parts)-1]
		}
	}

	// Fallback: check if main exists, otherwise use master
	_, _, err = s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "main")
	if err == nil {
		return "main"
	}

	return "master"
}

// LocalBranchExists checks whether a local branch ref exists.
func (s *GitService) LocalBranchExists(ctx context.Context, repoPath, branch string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "show-ref", "--verify", "--quiet",
		fmt.Sprintf("refs/heads/%s", branch))
	return err == nil
}

// RevParse resolves a ref to its full commit hash.
func (s *GitService) RevParse(ctx context.Context, repoPath, ref string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--verify", ref)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", ref, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ShortHead returns the abbreviated commit hash of HEAD in the given worktree.
func (s *GitService) ShortHead(ctx context.Context, path string) (string, error) {
	output, err := s.executor.Output(ctx, path, "git", "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// MergedBranches returns the names of local branches whose tips are reachable
// from target. Note that git also lists branches pointing at the same commit
// as target, so callers comparing against a default branch must additionally
// exclude branches with no commits of their own.
func (s *GitService) MergedBranches(ctx context.Context, repoPath, target string) ([]string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "branch",
		"--format=%(refname:short)", "--merged", target)
	if err != nil {
		return nil, fmt.Errorf("failed to list merged branches: %w", err)
	}

	var branches []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// DeleteBranch deletes a local branch. With force, uses -D to delete branches
// git considers unmerged.
func (s *GitService) DeleteBranch(ctx context.Context, repoPath, branch string, force bool) error {
	flag := "-d"
	if force {
		flag = "-D"
	}
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "branch", flag, branch)
	if err != nil {
		return fmt.Errorf("git branch %s failed: %s: %w", flag, strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("deleted branch", "branch", branch, "force", force)
	return nil
}

// FetchPRHead fetches a pull request head ref from origin into a local branch.
// The refspec is forced so re-fetching an updated PR moves the branch.
func (s *GitService) FetchPRHead(ctx context.Context, repoPath string, number int, branch string) error {
	refspec := fmt.Sprintf("+refs/pull/%d/head:refs/heads/%s", number, branch)
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "fetch", "origin", refspec)
	if err != nil {
		return fmt.Errorf("failed to fetch PR #%d: %s: %w", number, strings.TrimSpace(string(output)), err)
	}

	logger.WithComponent("git").Info("fetched PR head", "number", number, "branch", branch)
	return nil
}
