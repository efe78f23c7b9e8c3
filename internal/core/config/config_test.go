package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ossmaint/labelbot/internal/labeler"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labelbot.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadExpandsEnvVars(t *testing.T) {
	t.Setenv("LABELBOT_TEST_TOKEN", "ghp_secret")

	path := writeConfig(t, `
github:
  org: ossmaint
  repo: labelbot
  token: ${LABELBOT_TEST_TOKEN}
catalog: [bug]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.GitHub.Token != "ghp_secret" {
		t.Errorf("Expected env-expanded token, got %q", cfg.GitHub.Token)
	}
}

func TestLoadRejectsBadRulePattern(t *testing.T) {
	path := writeConfig(t, `
rules:
  - pattern: "(?i)\\b(bug"
    labels: [bug]
`)

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid rule pattern")
	}
}

func TestLoadRejectsUnknownCatalogName(t *testing.T) {
	path := writeConfig(t, "catalog: [bug, nonsense]\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for unknown catalog name")
	}
}

func TestLoadRejectsBadIssueState(t *testing.T) {
	path := writeConfig(t, "labeler:\n  issue_state: merged\n")

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid issue state")
	}
}

func TestLabelerPatchOnlySetsPresentFields(t *testing.T) {
	path := writeConfig(t, `
labeler:
  relabel_existing_issues: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	patch := cfg.LabelerPatch()
	if patch.RelabelExistingIssues == nil || *patch.RelabelExistingIssues {
		t.Error("Expected relabel_existing_issues=false to be carried")
	}
	if patch.CreateMissingLabels != nil {
		t.Error("Absent create_missing_labels must stay unset")
	}
	if patch.DefaultLabelColor != nil {
		t.Error("Absent default_label_color must stay unset")
	}
	if patch.IssueState != nil {
		t.Error("Absent issue_state must stay unset")
	}
}

func TestBuildRulesCombinesFileAndCatalog(t *testing.T) {
	path := writeConfig(t, `
rules:
  - pattern: "(?i)\\bflaky\\b"
    labels: [flaky-test]
    description: flaky test reports
catalog: [bug, security]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	rules, err := cfg.BuildRules()
	if err != nil {
		t.Fatalf("BuildRules failed: %v", err)
	}
	if len(rules) != 3 {
		t.Fatalf("Expected 3 rules, got %d", len(rules))
	}
	// User rules come first.
	if rules[0].Description() != "flaky test reports" {
		t.Errorf("Expected user rule first, got %q", rules[0].Description())
	}
	if !rules[0].Matches(labeler.MatchText("Flaky CI run", "")) {
		t.Error("Expected compiled user rule to match")
	}
}

func TestMergeConfigsChildOverrides(t *testing.T) {
	relabelFalse := false
	parent := &Config{
		GitHub:  GitHubConfig{Org: "parent-org", Repo: "parent-repo"},
		Catalog: []string{"bug"},
	}
	child := &Config{
		GitHub: GitHubConfig{Repo: "child-repo"},
		Labeler: LabelerConfig{
			RelabelExistingIssues: &relabelFalse,
			DefaultLabelColor:     "ff0000",
		},
	}

	merged := mergeConfigs(parent, child)

	if merged.GitHub.Org != "parent-org" {
		t.Errorf("Expected parent org to survive, got %q", merged.GitHub.Org)
	}
	if merged.GitHub.Repo != "child-repo" {
		t.Errorf("Expected child repo to win, got %q", merged.GitHub.Repo)
	}
	if merged.Labeler.RelabelExistingIssues == nil || *merged.Labeler.RelabelExistingIssues {
		t.Error("Child's explicit false must override")
	}
	if merged.Labeler.DefaultLabelColor != "ff0000" {
		t.Errorf("Expected child color, got %q", merged.Labeler.DefaultLabelColor)
	}
	if len(merged.Catalog) != 1 || merged.Catalog[0] != "bug" {
		t.Errorf("Expected parent catalog to survive, got %v", merged.Catalog)
	}
}

func TestLoadWithInheritance(t *testing.T) {
	path := writeConfig(t, `
extends: ossmaint/shared@main
github:
  org: ossmaint
  repo: labelbot
`)

	fetcher := func(ref string) ([]byte, error) {
		if ref != "ossmaint/shared@main" {
			t.Fatalf("Unexpected ref: %s", ref)
		}
		return []byte("catalog: [bug, documentation]\n"), nil
	}

	cfg, err := LoadWithInheritance(path, fetcher)
	if err != nil {
		t.Fatalf("LoadWithInheritance failed: %v", err)
	}
	if cfg.GitHub.Org != "ossmaint" || cfg.GitHub.Repo != "labelbot" {
		t.Errorf("Child github section must win: %+v", cfg.GitHub)
	}
	if len(cfg.Catalog) != 2 {
		t.Errorf("Expected inherited catalog, got %v", cfg.Catalog)
	}
}

func TestFindConfigPathReturnsAbsolutePaths(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("labelbot.yaml", []byte("catalog: [bug]\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	// Explicit relative path resolves the same way as discovery.
	got := FindConfigPath("labelbot.yaml")
	if got == "" {
		t.Fatal("Expected explicit path to be found")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("Expected absolute path for explicit config, got %q", got)
	}

	if err := os.MkdirAll(".github", 0o755); err != nil {
		t.Fatalf("Failed to create .github: %v", err)
	}
	if err := os.WriteFile(".github/labelbot.yaml", []byte("catalog: [bug]\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	got = FindConfigPath("")
	if !filepath.IsAbs(got) {
		t.Errorf("Expected absolute path for discovered config, got %q", got)
	}

	if FindConfigPath("missing.yaml") != "" {
		t.Error("Expected empty result for nonexistent explicit path")
	}
}

func TestParseExtendsRef(t *testing.T) {
	tests := []struct {
		ref        string
		org        string
		repo       string
		branch     string
		path       string
		shouldFail bool
	}{
		{"org/repo@main", "org", "repo", "main", ".github/labelbot.yaml", false},
		{"org/repo@dev:configs/base.yaml", "org", "repo", "dev", "configs/base.yaml", false},
		{"orgrepo@main", "", "", "", "", true},
		{"org/repo", "", "", "", "", true},
	}

	for _, tt := range tests {
		org, repo, branch, path, err := ParseExtendsRef(tt.ref)
		if tt.shouldFail {
			if err == nil {
				t.Errorf("Expected error for ref %q", tt.ref)
			}
			continue
		}
		if err != nil {
			t.Errorf("Unexpected error for ref %q: %v", tt.ref, err)
			continue
		}
		if org != tt.org || repo != tt.repo || branch != tt.branch || path != tt.path {
			t.Errorf("ParseExtendsRef(%q) = %s/%s@%s:%s", tt.ref, org, repo, branch, path)
		}
	}
}
