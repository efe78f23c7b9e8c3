package github

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/ossmaint/labelbot/internal/labeler"
)

// RepoGateway binds a Client to a single repository and adapts it to the
// labeler.Gateway interface.
type RepoGateway struct {
	client *Client
	org    string
	repo   string
}

// NewRepoGateway creates a gateway for one org/repo.
func NewRepoGateway(client *Client, org, repo string) *RepoGateway {
	return &RepoGateway{client: client, org: org, repo: repo}
}

// ListIssues implements labeler.Gateway.
func (g *RepoGateway) ListIssues(ctx context.Context, state labeler.IssueState) ([]labeler.Issue, error) {
	raw, err := g.client.ListRepoIssues(ctx, g.org, g.repo, string(state))
	if err != nil {
		return nil, err
	}

	issues := make([]labeler.Issue, 0, len(raw))
	for _, issue := range raw {
		issues = append(issues, toIssue(issue))
	}
	return issues, nil
}

// ListLabels implements labeler.Gateway.
func (g *RepoGateway) ListLabels(ctx context.Context) ([]labeler.Label, error) {
	raw, err := g.client.ListRepoLabels(ctx, g.org, g.repo)
	if err != nil {
		return nil, err
	}

	labels := make([]labeler.Label, 0, len(raw))
	for _, l := range raw {
		labels = append(labels, toLabel(l))
	}
	return labels, nil
}

// CreateLabel implements labeler.Gateway.
func (g *RepoGateway) CreateLabel(ctx context.Context, name, color, description string) (*labeler.Label, error) {
	created, err := g.client.CreateLabel(ctx, g.org, g.repo, name, color, description)
	if err != nil {
		return nil, err
	}
	l := toLabel(created)
	return &l, nil
}

// AddLabels implements labeler.Gateway.
func (g *RepoGateway) AddLabels(ctx context.Context, issueNumber int, labels []string) error {
	return g.client.AddLabels(ctx, g.org, g.repo, issueNumber, labels)
}

func toIssue(issue *github.Issue) labeler.Issue {
	names := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		names = append(names, l.GetName())
	}
	return labeler.Issue{
		Number: issue.GetNumber(),
		Title:  issue.GetTitle(),
		Body:   issue.GetBody(),
		Labels: names,
	}
}

func toLabel(l *github.Label) labeler.Label {
	return labeler.Label{
		Name:        l.GetName(),
		Color:       l.GetColor(),
		Description: l.GetDescription(),
	}
}
