// Package labeler implements the rule-based auto-labeling engine.
// It matches regular-expression rules against issue text and applies the
// resulting label set through a Gateway, optionally creating labels that
// do not exist yet.
package labeler

import (
	"context"
	"fmt"
)

// IssueState filters which issues a run fetches.
type IssueState string

const (
	IssueStateOpen   IssueState = "open"
	IssueStateClosed IssueState = "closed"
	IssueStateAll    IssueState = "all"
)

// ParseIssueState validates a state string.
func ParseIssueState(s string) (IssueState, error) {
	switch IssueState(s) {
	case IssueStateOpen, IssueStateClosed, IssueStateAll:
		return IssueState(s), nil
	}
	return "", fmt.Errorf("invalid issue state %q (want open, closed or all)", s)
}

// Issue is the engine's read-only view of a tracker issue.
type Issue struct {
	Number int
	Title  string
	Body   string
	Labels []string
}

// Label is the engine's view of a repository label.
// Name is the identity key; comparisons are case-sensitive.
type Label struct {
	Name        string
	Color       string
	Description string
}

// Gateway is the remote issue tracker as the engine sees it.
// Implementations live outside this package (see internal/integrations).
type Gateway interface {
	// ListIssues returns issues filtered by state, in processing order.
	ListIssues(ctx context.Context, state IssueState) ([]Issue, error)

	// ListLabels returns the full repository label set.
	ListLabels(ctx context.Context) ([]Label, error)

	// CreateLabel creates a new label. Color is a 6-hex-digit string
	// without the leading '#'.
	CreateLabel(ctx context.Context, name, color, description string) (*Label, error)

	// AddLabels attaches the given labels to an issue.
	AddLabels(ctx context.Context, issueNumber int, labels []string) error
}
