package git

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// PRState represents the state of a GitHub pull request.
type PRState string

const (
	PRStateOpen   PRState = "OPEN"
	PRStateMerged PRState = "MERGED"
	PRStateClosed PRState = "CLOSED"
)

// PullRequest holds the fields of a pull request this tool cares about,
// as returned by the gh CLI's --json output.
type PullRequest struct {
	Number      int       `json:"number"`
	State       PRState   `json:"state"`
	IsDraft     bool      `json:"isDraft"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"createdAt"`
	HeadRefName string    `json:"headRefName"`
}

// ListPRs fetches pull requests in every state for the repository in a single
// gh CLI call. limit caps the number of PRs returned by gh.
func (s *GitService) ListPRs(ctx context.Context, repoPath string, limit int) ([]PullRequest, error) {
	output, err := s.executor.Output(ctx, repoPath, "gh", "pr", "list",
		"--state", "all",
		"--json", "number,state,isDraft,url,createdAt,headRefName",
		"--limit", strconv.Itoa(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("gh pr list failed: %w", err)
	}

	var prs []PullRequest
	if err := json.Unmarshal(output, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse PR list: %w", err)
	}
	return prs, nil
}

// PRsByHead indexes pull requests by head branch name. gh returns the most
// recently created PRs first, so on duplicate heads the newest PR wins.
func PRsByHead(prs []PullRequest) map[string]PullRequest {
	result := make(map[string]PullRequest, len(prs))
	for _, pr := range prs {
		if _, ok := result[pr.HeadRefName]; !ok {
			result[pr.HeadRefName] = pr
		}
	}
	return result
}

// MergedPRHeads returns the set of head branch names with a merged PR.
// Uses a dedicated --state merged query so older merged PRs are not crowded
// out of the window by open ones.
func (s *GitService) MergedPRHeads(ctx context.Context, repoPath string, limit int) (map[string]struct{}, error) {
	output, err := s.executor.Output(ctx, repoPath, "gh", "pr", "list",
		"--state", "merged",
		"--json", "headRefName",
		"--limit", strconv.Itoa(limit),
	)
	if err != nil {
		return nil, fmt.Errorf("gh pr list failed: %w", err)
	}

	var prs []struct {
		HeadRefName string `json:"headRefName"`
	}
	if err := json.Unmarshal(output, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse PR list: %w", err)
	}

	heads := make(map[string]struct{}, len(prs))
	for _, pr := range prs {
		heads[pr.HeadRefName] = struct{}{}
	}
	return heads, nil
}

// ViewPR fetches a single pull request by number using the gh CLI.
func (s *GitService) ViewPR(ctx context.Context, repoPath string, number int) (*PullRequest, error) {
	output, err := s.executor.Output(ctx, repoPath, "gh", "pr", "view", strconv.Itoa(number),
		"--json", "number,state,isDraft,url,createdAt,headRefName",
	)
	if err != nil {
		return nil, fmt.Errorf("gh pr view failed: %w", err)
	}

	var pr PullRequest
	if err := json.Unmarshal(output, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse PR: %w", err)
	}
	return &pr, nil
}
