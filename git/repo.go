package git

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/easy-worktree/wt/logger"
)

// Repo describes the primary repository resolved from a working directory.
// Root is the primary working area: the directory containing the common git
// dir, or the git dir itself for bare repositories.
type Repo struct {
	Root string
	Bare bool
}

// ResolveRepo resolves the primary repository from any directory inside it,
// including from inside a linked worktree. Uses git rev-parse --git-common-dir,
// which points at the primary repository's git dir regardless of which
// worktree the command runs in.
func (s *GitService) ResolveRepo(ctx context.Context, dir string) (*Repo, error) {
	output, err := s.executor.Output(ctx, dir, "git", "rev-parse", "--git-common-dir")
	if err != nil {
		return nil, fmt.Errorf("not inside a git repository: %w", err)
	}

	commonDir := strings.TrimSpace(string(output))
	if !filepath.IsAbs(commonDir) {
		commonDir = filepath.Join(dir, commonDir)
	}
	commonDir = filepath.Clean(commonDir)

	bareOut, err := s.executor.Output(ctx, commonDir, "git", "rev-parse", "--is-bare-repository")
	if err != nil {
		return nil, fmt.Errorf("failed to inspect repository %s: %w", commonDir, err)
	}

	repo := &Repo{}
	if strings.TrimSpace(string(bareOut)) == "true" {
		repo.Bare = true
		repo.Root = commonDir
	} else {
		repo.Root = filepath.Dir(commonDir)
	}
	return repo, nil
}

// IsGitRepo reports whether dir is inside a git repository.
func (s *GitService) IsGitRepo(ctx context.Context, dir string) bool {
	_, _, err := s.executor.Run(ctx, dir, "git", "rev-parse", "--git-dir")
	return err == nil
}

// Clone clones url into parentDir/name, streaming git's own progress output
// to the terminal. Returns the path of the new clone.
func (s *GitService) Clone(ctx context.Context, parentDir, url, name string) (string, error) {
	if err := s.executor.Interactive(ctx, parentDir, nil, "git", "clone", url, name); err != nil {
		return "", fmt.Errorf("git clone failed: %w", err)
	}

	logger.WithComponent("git").Info("cloned repository", "url", url, "name", name)
	return filepath.Join(parentDir, name), nil
}

// Fetch updates remote-tracking refs and prunes stale ones.
func (s *GitService) Fetch(ctx context.Context, repoPath string) error {
	output, err := s.executor.CombinedOutput(ctx, repoPath, "git", "fetch", "--prune")
	if err != nil {
		return fmt.Errorf("git fetch failed: %s: %w", strings.TrimSpace(string(output)), err)
	}
	return nil
}

// HasRemoteOrigin checks if the repository has a remote named "origin".
func (s *GitService) HasRemoteOrigin(ctx context.Context, repoPath string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "remote", "get-url", "origin")
	return err == nil
}

// RemoteOriginURL returns the URL of the "origin" remote.
func (s *GitService) RemoteOriginURL(ctx context.Context, repoPath string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to get remote origin URL: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// HasCommits reports whether HEAD points at a commit. A fresh git init has an
// unborn HEAD, in which case there is nothing to branch a worktree from.
func (s *GitService) HasCommits(ctx context.Context, repoPath string) bool {
	_, _, err := s.executor.Run(ctx, repoPath, "git", "rev-parse", "--verify", "HEAD")
	return err == nil
}
