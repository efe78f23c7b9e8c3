package labeler

import "testing"

func TestCatalogVocabulary(t *testing.T) {
	tests := []struct {
		rule  Rule
		title string
		body  string
		match bool
	}{
		{RuleBug, "Bug: crash", "crashes on start", true},
		{RuleBug, "App throws an ERROR", "", true},
		{RuleBug, "Debugging guide", "", false}, // no whole word
		{RuleEnhancement, "Add dark mode", "please add dark mode", true},
		{RuleEnhancement, "Improve startup time", "", true},
		{RuleDocumentation, "Docs outdated", "the documentation is outdated", true},
		{RuleDocumentation, "Fix typo in README", "", true},
		{RuleQuestion, "How? is this supposed to work", "", true},
		{RuleQuestion, "How do I configure this", "", false}, // no question mark after the word
		{RuleSecurity, "Security vulnerability found", "auth issue", true},
		{RuleSecurity, "CVE-2024-1234 affects us", "", true},
		{RulePerformance, "App is slow on large repos", "", true},
		{RulePerformance, "Memory leak in watcher", "", true},
	}

	for _, tt := range tests {
		got := tt.rule.Matches(MatchText(tt.title, tt.body))
		if got != tt.match {
			t.Errorf("Pattern %q vs %q/%q: expected match=%v, got %v",
				tt.rule.Pattern(), tt.title, tt.body, tt.match, got)
		}
	}
}

func TestCatalogRulesLookup(t *testing.T) {
	rules, err := CatalogRules("bug", "security")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(rules))
	}

	if _, err := CatalogRules("bug", "nonsense"); err == nil {
		t.Error("Expected error for unknown catalog name")
	}
}

func TestCatalogNamesResolve(t *testing.T) {
	for _, name := range CatalogNames() {
		if _, ok := CatalogRule(name); !ok {
			t.Errorf("Catalog name %q does not resolve", name)
		}
	}
}
