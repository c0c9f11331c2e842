package git

import (
	"context"
	"fmt"
	"strings"
)

// IsClean reports whether the working tree at path has no uncommitted changes
// and no untracked files, using git status --porcelain.
func (s *GitService) IsClean(ctx context.Context, path string) (bool, error) {
	output, err := s.executor.Output(ctx, path, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("git status failed: %w", err)
	}
	return strings.TrimSpace(string(output)) == "", nil
}

// StashPush stashes all changes in the working tree including untracked files.
func (s *GitService) StashPush(ctx context.Context, path string) error {
	output, err := s.executor.CombinedOutput(ctx, path, "git", "stash", "push", "-u")
	if err != nil {
		return fmt.Errorf("git stash push failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// StashPop applies the most recent stash in the working tree and drops it.
func (s *GitService) StashPop(ctx context.Context, path string) error {
	output, err := s.executor.CombinedOutput(ctx, path, "git", "stash", "pop")
	if err != nil {
		return fmt.Errorf("git stash pop failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}
