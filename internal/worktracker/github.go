package worktracker

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

// GitHub resolves work ids of the form "owner/repo#123" against the GitHub
// Issues API, for teams that track production work as issues.
type GitHub struct {
	client *github.Client
}

// NewGitHub creates a GitHub-backed Tracker. An empty token yields an
// unauthenticated client, good enough for public repositories.
func NewGitHub(token string) *GitHub {
	if token == "" {
		return &GitHub{client: github.NewClient(nil)}
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &GitHub{client: github.NewClient(oauth2.NewClient(context.Background(), ts))}
}

// Exists reports whether the referenced issue exists. A malformed reference
// is reported as an error, a missing issue as (false, nil).
func (t *GitHub) Exists(ctx context.Context, workID string) (bool, error) {
	owner, repo, num, err := ParseIssueRef(workID)
	if err != nil {
		return false, err
	}
	_, resp, err := t.client.Issues.Get(ctx, owner, repo, num)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("worktracker: github issue %s: %w", workID, err)
	}
	return true, nil
}

// ParseIssueRef splits an "owner/repo#123" work id into its parts.
func ParseIssueRef(workID string) (owner, repo string, num int, err error) {
	path, frag, ok := strings.Cut(workID, "#")
	if !ok {
		return "", "", 0, fmt.Errorf("worktracker: %q is not an owner/repo#number reference", workID)
	}
	owner, repo, ok = strings.Cut(path, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", 0, fmt.Errorf("worktracker: %q is not an owner/repo#number reference", workID)
	}
	num, err = strconv.Atoi(frag)
	if err != nil || num <= 0 {
		return "", "", 0, fmt.Errorf("worktracker: %q has no valid issue number", workID)
	}
	return owner, repo, num, nil
}
