package labeler

import (
	"context"
	"errors"
	"fmt"
	"log"
)

// ErrNoRules is returned by Run when the engine has no rules configured.
var ErrNoRules = errors.New("no labeling rules configured")

// Engine runs the auto-labeling pass. It owns its rule list and
// configuration; the gateway is the only external collaborator.
//
// Run processes issues strictly sequentially. The engine is not safe for
// concurrent Run calls on the same instance: a run owns a local cache of
// known label names that a second run would race on.
type Engine struct {
	gateway Gateway
	config  Config
	rules   []Rule
}

// New creates an engine with default configuration merged with the given
// overrides (nil for pure defaults) and an empty rule list.
func New(gw Gateway, overrides *ConfigPatch) *Engine {
	return &Engine{
		gateway: gw,
		config:  DefaultConfig().apply(overrides),
	}
}

// AddRule appends a rule. Order of addition carries no priority: every
// matching rule contributes its labels.
func (e *Engine) AddRule(r Rule) *Engine {
	e.rules = append(e.rules, r)
	return e
}

// AddRules appends a list of rules.
func (e *Engine) AddRules(rules []Rule) *Engine {
	e.rules = append(e.rules, rules...)
	return e
}

// SetConfig merges a partial configuration update onto the current
// settings. Safe to call before or between runs.
func (e *Engine) SetConfig(p *ConfigPatch) *Engine {
	e.config = e.config.apply(p)
	return e
}

// Config returns the engine's effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Run executes one labeling pass: fetch issues and labels, evaluate every
// rule against every issue, create missing labels when configured to, and
// apply the reconciled label set per issue.
//
// Failures to fetch, or to apply labels to an issue, abort the run with an
// error and no partial result. Failures to create an individual label are
// logged and tolerated; that label is simply dropped from the issue's set.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	if len(e.rules) == 0 {
		return nil, ErrNoRules
	}

	issues, err := e.gateway.ListIssues(ctx, e.config.IssueState)
	if err != nil {
		return nil, fmt.Errorf("fetching issues: %w", err)
	}

	labels, err := e.gateway.ListLabels(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching labels: %w", err)
	}

	// Known label names, cached for the duration of this run and
	// extended as labels are created.
	known := make(map[string]bool, len(labels))
	for _, l := range labels {
		known[l.Name] = true
	}

	result := &Result{TotalIssues: len(issues)}

	for _, issue := range issues {
		if !e.config.RelabelExistingIssues && len(issue.Labels) > 0 {
			continue
		}

		candidates := e.matchLabels(MatchText(issue.Title, issue.Body))

		if e.config.CreateMissingLabels {
			for _, name := range candidates {
				if known[name] {
					continue
				}
				description := "Auto-created label for " + name
				if _, err := e.gateway.CreateLabel(ctx, name, e.config.DefaultLabelColor, description); err != nil {
					log.Printf("[labeler] Failed to create label %q: %v", name, err)
					continue
				}
				known[name] = true
				result.LabelsCreated++
			}
		}

		applied := make([]string, 0, len(candidates))
		for _, name := range candidates {
			if known[name] {
				applied = append(applied, name)
			}
		}
		if len(applied) == 0 {
			continue
		}

		if err := e.gateway.AddLabels(ctx, issue.Number, applied); err != nil {
			return nil, fmt.Errorf("labeling issue #%d: %w", issue.Number, err)
		}

		result.LabeledIssues++
		result.Details = append(result.Details, Detail{
			IssueNumber:   issue.Number,
			Title:         issue.Title,
			AppliedLabels: applied,
		})
	}

	return result, nil
}

// matchLabels unions the labels of every rule matching the text,
// deduplicated in first-seen order.
func (e *Engine) matchLabels(text string) []string {
	var candidates []string
	seen := make(map[string]bool)
	for _, rule := range e.rules {
		if !rule.Matches(text) {
			continue
		}
		for _, name := range rule.labels {
			if seen[name] {
				continue
			}
			seen[name] = true
			candidates = append(candidates, name)
		}
	}
	return candidates
}
