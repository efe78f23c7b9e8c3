// Package github wraps the GitHub API operations the labeler depends on.
// Every method is thin, single-call glue over go-github with input
// validation and error wrapping; no decision logic lives here.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// ListRepoIssues fetches all issues in the given state, following
// pagination. Pull requests are filtered out: the issues API returns them
// interleaved, but the labeler only processes real issues.
func (c *Client) ListRepoIssues(ctx context.Context, org, repo, state string) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []*github.Issue
	for {
		issues, resp, err := c.client.Issues.ListByRepo(ctx, org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}
		for _, issue := range issues {
			if issue.IsPullRequest() {
				continue
			}
			all = append(all, issue)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListRepoLabels fetches the full repository label set, following
// pagination.
func (c *Client) ListRepoLabels(ctx context.Context, org, repo string) ([]*github.Label, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []*github.Label
	for {
		labels, resp, err := c.client.Issues.ListLabels(ctx, org, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list labels: %w", err)
		}
		all = append(all, labels...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// CreateLabel creates a repository label. A leading '#' on the color is
// stripped before the API call.
func (c *Client) CreateLabel(ctx context.Context, org, repo, name, color, description string) (*github.Label, error) {
	if name == "" {
		return nil, fmt.Errorf("label name cannot be empty")
	}
	color = strings.TrimPrefix(color, "#")
	if color == "" {
		return nil, fmt.Errorf("label color cannot be empty")
	}

	label := &github.Label{
		Name:  github.String(name),
		Color: github.String(color),
	}
	if description != "" {
		label.Description = github.String(description)
	}

	created, _, err := c.client.Issues.CreateLabel(ctx, org, repo, label)
	if err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return created, nil
}

// AddLabels adds labels to an issue.
func (c *Client) AddLabels(ctx context.Context, org, repo string, number int, labels []string) error {
	if number <= 0 {
		return fmt.Errorf("issue number must be positive, got %d", number)
	}
	if len(labels) == 0 {
		return fmt.Errorf("labels cannot be empty")
	}

	_, _, err := c.client.Issues.AddLabelsToIssue(ctx, org, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels: %w", err)
	}
	return nil
}

// CreateIssue opens a new issue.
func (c *Client) CreateIssue(ctx context.Context, org, repo, title, body string, labels []string) (*github.Issue, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("issue title cannot be empty")
	}

	req := &github.IssueRequest{
		Title: github.String(title),
		Body:  github.String(body),
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	issue, _, err := c.client.Issues.Create(ctx, org, repo, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return issue, nil
}

// CreatePullRequest opens a pull request from head into base.
func (c *Client) CreatePullRequest(ctx context.Context, org, repo, title, head, base, body string) (*github.PullRequest, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("pull request title cannot be empty")
	}
	if head == "" || base == "" {
		return nil, fmt.Errorf("head and base branches are required")
	}
	if head == base {
		return nil, fmt.Errorf("head and base cannot be the same branch (%q)", head)
	}

	pr, _, err := c.client.PullRequests.Create(ctx, org, repo, &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(head),
		Base:  github.String(base),
		Body:  github.String(body),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return pr, nil
}

// GetFileContent fetches a file's raw content at the given ref.
// Used to resolve remote configuration inheritance.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}
	file, _, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from %s/%s: %w", path, org, repo, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is not a file", path, org, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}
