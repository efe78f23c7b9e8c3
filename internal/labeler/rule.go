package labeler

import (
	"fmt"
	"regexp"
)

// Rule maps a text pattern to the labels proposed when it matches.
// Rules are immutable once constructed; compilation happens up front so a
// bad pattern surfaces at construction time, not mid-run.
type Rule struct {
	pattern     *regexp.Regexp
	labels      []string
	description string
}

// NewRule compiles pattern and returns a rule proposing the given labels.
func NewRule(pattern string, labels []string, description string) (Rule, error) {
	if pattern == "" {
		return Rule{}, fmt.Errorf("rule pattern cannot be empty")
	}
	if len(labels) == 0 {
		return Rule{}, fmt.Errorf("rule must propose at least one label")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("invalid rule pattern %q: %w", pattern, err)
	}
	return Rule{
		pattern:     re,
		labels:      append([]string(nil), labels...),
		description: description,
	}, nil
}

// MustRule is NewRule for static rule definitions; it panics on error.
func MustRule(pattern string, labels []string, description string) Rule {
	r, err := NewRule(pattern, labels, description)
	if err != nil {
		panic(err)
	}
	return r
}

// Matches reports whether the rule's pattern matches the given text.
func (r Rule) Matches(text string) bool {
	return r.pattern.MatchString(text)
}

// Labels returns the labels this rule proposes, in definition order.
func (r Rule) Labels() []string {
	return append([]string(nil), r.labels...)
}

// Description returns the human-readable rationale for the rule.
func (r Rule) Description() string {
	return r.description
}

// Pattern returns the source text of the compiled pattern.
func (r Rule) Pattern() string {
	return r.pattern.String()
}

// MatchText builds the text a rule is evaluated against: the issue title
// and body joined by a blank line. An absent body contributes nothing.
func MatchText(title, body string) string {
	return title + "\n\n" + body
}
