package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ossmaint/labelbot/internal/core/config"
	"github.com/ossmaint/labelbot/internal/labeler"
	"github.com/ossmaint/labelbot/internal/tui"
)

func TestResolveRepo(t *testing.T) {
	tests := []struct {
		name       string
		flag       string
		cfg        config.Config
		org        string
		repo       string
		shouldFail bool
	}{
		{"flag wins", "octo/widgets", config.Config{GitHub: config.GitHubConfig{Org: "a", Repo: "b"}}, "octo", "widgets", false},
		{"config fallback", "", config.Config{GitHub: config.GitHubConfig{Org: "a", Repo: "b"}}, "a", "b", false},
		{"malformed flag", "octowidgets", config.Config{}, "", "", true},
		{"empty owner", "/widgets", config.Config{}, "", "", true},
		{"nothing set", "", config.Config{}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			org, repo, err := resolveRepo(tt.flag, &tt.cfg)
			if tt.shouldFail {
				if err == nil {
					t.Errorf("Expected error for flag=%q", tt.flag)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if org != tt.org || repo != tt.repo {
				t.Errorf("Expected %s/%s, got %s/%s", tt.org, tt.repo, org, repo)
			}
		})
	}
}

func TestResolveToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "env-token")

	cfg := &config.Config{GitHub: config.GitHubConfig{Token: "file-token"}}

	if got := resolveToken("flag-token", cfg); got != "flag-token" {
		t.Errorf("Flag token must win, got %q", got)
	}
	if got := resolveToken("", cfg); got != "file-token" {
		t.Errorf("Config token must beat env, got %q", got)
	}
	if got := resolveToken("", &config.Config{}); got != "env-token" {
		t.Errorf("Expected env fallback, got %q", got)
	}
}

func TestBuildRulesAddsCatalogFlags(t *testing.T) {
	cfg := &config.Config{Catalog: []string{"bug"}}

	rules, err := buildRules(cfg, []string{"security"})
	if err != nil {
		t.Fatalf("buildRules failed: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}

	if _, err := buildRules(cfg, []string{"bogus"}); err == nil {
		t.Error("Expected error for unknown catalog flag")
	}
}

// stubGateway is a minimal in-memory gateway for command-level tests.
type stubGateway struct {
	issues []labeler.Issue
	labels []labeler.Label
}

func (g *stubGateway) ListIssues(ctx context.Context, state labeler.IssueState) ([]labeler.Issue, error) {
	return g.issues, nil
}

func (g *stubGateway) ListLabels(ctx context.Context) ([]labeler.Label, error) {
	return g.labels, nil
}

func (g *stubGateway) CreateLabel(ctx context.Context, name, color, description string) (*labeler.Label, error) {
	return &labeler.Label{Name: name, Color: color, Description: description}, nil
}

func (g *stubGateway) AddLabels(ctx context.Context, issueNumber int, labels []string) error {
	return nil
}

func TestSendStatusUnblocksOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	statusChan := make(chan tui.IssueStatusMsg) // nobody draining

	done := make(chan struct{})
	go func() {
		defer close(done)
		sendStatus(ctx, statusChan, tui.IssueStatusMsg{Status: "labeled"})
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sendStatus stayed blocked after cancellation")
	}
}

func TestRunTerminatesWhenViewQuitsEarly(t *testing.T) {
	// After the view exits nobody drains the status channel; once the
	// run context is canceled the engine goroutine must still finish.
	ctx, cancel := context.WithCancel(context.Background())
	statusChan := make(chan tui.IssueStatusMsg) // undrained, as after quit

	issues := []labeler.Issue{
		{Number: 1, Title: "Bug: crash", Body: "boom"},
		{Number: 2, Title: "Another bug error", Body: "boom again"},
	}
	gateway := &reportingGateway{
		Gateway: &stubGateway{issues: issues, labels: []labeler.Label{{Name: "bug"}}},
		status:  statusChan,
		titles:  make(map[int]string),
	}
	engine := labeler.New(gateway, nil).AddRule(labeler.RuleBug)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(statusChan)
		_, _ = engine.Run(ctx)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Engine goroutine stayed blocked on the status channel")
	}
}

func TestReportOutcome(t *testing.T) {
	// Canceled run: no summary, and in particular no nil-result render.
	out, err := reportOutcome("abc123", nil, fmt.Errorf("fetching issues: %w", context.Canceled))
	if err == nil || !strings.Contains(err.Error(), "aborted before completion") {
		t.Errorf("Expected aborted-run error, got %v", err)
	}
	if out != "" {
		t.Errorf("Expected no output for canceled run, got %q", out)
	}

	failure := errors.New("403 forbidden")
	_, err = reportOutcome("abc123", nil, failure)
	if !errors.Is(err, failure) {
		t.Errorf("Expected wrapped run error, got %v", err)
	}

	out, err = reportOutcome("abc123", &labeler.Result{TotalIssues: 2}, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(out, "Issues processed: 2") {
		t.Errorf("Expected summary output, got %q", out)
	}
}

func TestRenderSummary(t *testing.T) {
	result := &labeler.Result{
		TotalIssues:   3,
		LabeledIssues: 1,
		LabelsCreated: 1,
		Details: []labeler.Detail{
			{IssueNumber: 12, Title: "Crash on save", AppliedLabels: []string{"bug", "needs-triage"}},
		},
	}

	out := renderSummary(result)
	for _, want := range []string{
		"Issues processed: 3",
		"Issues labeled:   1",
		"Labels created:   1",
		"#12 Crash on save",
		"bug, needs-triage",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Summary missing %q:\n%s", want, out)
		}
	}
}
