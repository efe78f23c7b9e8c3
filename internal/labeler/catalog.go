package labeler

import "fmt"

// Prebuilt rules for common issue categories. All patterns are
// case-insensitive word-boundary matches against title+body; the question
// rule additionally requires the interrogative word to be followed by '?'.
var (
	RuleBug = MustRule(
		`(?i)\b(bug|crash|crashes|error|broken|fail|fails|failure|exception)\b`,
		[]string{"bug"},
		"Mentions a defect, crash or failure",
	)

	RuleEnhancement = MustRule(
		`(?i)\b(feature|add|adds|improve|improvement|enhance|enhancement|support)\b`,
		[]string{"enhancement"},
		"Requests a new capability or improvement",
	)

	RuleDocumentation = MustRule(
		`(?i)\b(docs?|documentation|readme|typo|changelog)\b`,
		[]string{"documentation"},
		"Concerns documentation content",
	)

	RuleQuestion = MustRule(
		`(?i)\b(how|what|why|when|where|who|which)\s*\?`,
		[]string{"question"},
		"Interrogative word followed by a question mark",
	)

	RuleSecurity = MustRule(
		`(?i)\b(security|vulnerability|vulnerabilities|exploit|cve|auth|authentication)\b`,
		[]string{"security"},
		"Mentions a security concern",
	)

	RulePerformance = MustRule(
		`(?i)\b(slow|performance|optimize|optimization|latency|memory leak)\b`,
		[]string{"performance"},
		"Mentions speed or resource usage",
	)
)

// catalog maps category names to their prebuilt rules.
var catalog = map[string]Rule{
	"bug":           RuleBug,
	"enhancement":   RuleEnhancement,
	"documentation": RuleDocumentation,
	"question":      RuleQuestion,
	"security":      RuleSecurity,
	"performance":   RulePerformance,
}

// CatalogRule returns the prebuilt rule for a category name.
func CatalogRule(name string) (Rule, bool) {
	r, ok := catalog[name]
	return r, ok
}

// CatalogRules resolves a list of category names. It fails on the first
// unknown name so typos in configuration are caught before a run starts.
func CatalogRules(names ...string) ([]Rule, error) {
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		r, ok := catalog[name]
		if !ok {
			return nil, fmt.Errorf("unknown catalog rule %q", name)
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// CatalogNames returns the available category names.
func CatalogNames() []string {
	return []string{"bug", "enhancement", "documentation", "question", "security", "performance"}
}
