// Package git provides Git operations for managing worktrees, branches, and PRs.
//
// The package is organized into focused modules:
//   - service.go: GitService struct and constructor
//   - repo.go: Repository resolution, clone, fetch
//   - worktree.go: Worktree add/list/remove, porcelain parsing
//   - branch.go: Branch management, merged-branch detection
//   - status.go: Working tree cleanliness, stash operations
//   - github.go: Pull request integration via the gh CLI
package git
