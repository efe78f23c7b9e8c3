// Package config handles loading and merging labelbot configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ossmaint/labelbot/internal/labeler"
)

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// GitHub identifies the target repository and credentials.
	GitHub GitHubConfig `yaml:"github"`

	// Labeler holds the auto-labeling engine settings. Fields are
	// pointers so a value absent from the file is distinguishable from
	// an explicit false.
	Labeler LabelerConfig `yaml:"labeler"`

	// Rules is the list of user-defined labeling rules.
	Rules []RuleConfig `yaml:"rules,omitempty"`

	// Catalog names prebuilt rules to enable alongside Rules.
	Catalog []string `yaml:"catalog,omitempty"`
}

// GitHubConfig holds repository and authentication settings.
type GitHubConfig struct {
	Org   string `yaml:"org"`
	Repo  string `yaml:"repo"`
	Token string `yaml:"token,omitempty"`
}

// LabelerConfig holds engine settings as they appear in the file.
type LabelerConfig struct {
	CreateMissingLabels   *bool  `yaml:"create_missing_labels,omitempty"`
	DefaultLabelColor     string `yaml:"default_label_color,omitempty"`
	RelabelExistingIssues *bool  `yaml:"relabel_existing_issues,omitempty"`
	IssueState            string `yaml:"issue_state,omitempty"`
}

// RuleConfig defines a labeling rule in the file.
type RuleConfig struct {
	Pattern     string   `yaml:"pattern"`
	Labels      []string `yaml:"labels"`
	Description string   `yaml:"description,omitempty"`
}

// Load reads a config file from the given path and expands environment
// variables, so tokens can be written as "${GITHUB_TOKEN}".
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		return cfg, nil
	}

	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	expanded := os.ExpandEnv(string(parentData))
	var parentCfg Config
	if err := yaml.Unmarshal([]byte(expanded), &parentCfg); err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	merged := mergeConfigs(&parentCfg, cfg)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	return merged, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			abs, _ := filepath.Abs(explicit)
			return abs
		}
		return ""
	}

	candidates := []string{
		".github/labelbot.yaml",
		".github/labelbot.yml",
		".labelbot.yaml",
		".labelbot.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// Validate checks field values that would otherwise fail mid-run.
func (c *Config) Validate() error {
	if c.Labeler.IssueState != "" {
		if _, err := labeler.ParseIssueState(c.Labeler.IssueState); err != nil {
			return fmt.Errorf("labeler.issue_state: %w", err)
		}
	}
	for i, rc := range c.Rules {
		if _, err := labeler.NewRule(rc.Pattern, rc.Labels, rc.Description); err != nil {
			return fmt.Errorf("rules[%d]: %w", i, err)
		}
	}
	for _, name := range c.Catalog {
		if _, ok := labeler.CatalogRule(name); !ok {
			return fmt.Errorf("catalog: unknown rule %q (available: %s)",
				name, strings.Join(labeler.CatalogNames(), ", "))
		}
	}
	return nil
}

// LabelerPatch converts the file's labeler section into an engine patch.
// Only fields present in the file are set.
func (c *Config) LabelerPatch() *labeler.ConfigPatch {
	patch := &labeler.ConfigPatch{
		CreateMissingLabels:   c.Labeler.CreateMissingLabels,
		RelabelExistingIssues: c.Labeler.RelabelExistingIssues,
	}
	if c.Labeler.DefaultLabelColor != "" {
		color := c.Labeler.DefaultLabelColor
		patch.DefaultLabelColor = &color
	}
	if c.Labeler.IssueState != "" {
		state := labeler.IssueState(c.Labeler.IssueState)
		patch.IssueState = &state
	}
	return patch
}

// BuildRules compiles the configured rules: user rules first, then any
// enabled catalog rules.
func (c *Config) BuildRules() ([]labeler.Rule, error) {
	rules := make([]labeler.Rule, 0, len(c.Rules)+len(c.Catalog))
	for i, rc := range c.Rules {
		rule, err := labeler.NewRule(rc.Pattern, rc.Labels, rc.Description)
		if err != nil {
			return nil, fmt.Errorf("rules[%d]: %w", i, err)
		}
		rules = append(rules, rule)
	}

	catalogRules, err := labeler.CatalogRules(c.Catalog...)
	if err != nil {
		return nil, err
	}
	return append(rules, catalogRules...), nil
}

// mergeConfigs merges a child config onto a parent config.
// Set values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent

	if child.GitHub.Org != "" {
		result.GitHub.Org = child.GitHub.Org
	}
	if child.GitHub.Repo != "" {
		result.GitHub.Repo = child.GitHub.Repo
	}
	if child.GitHub.Token != "" {
		result.GitHub.Token = child.GitHub.Token
	}

	// Labeler booleans are pointers, so "set to false" still overrides.
	if child.Labeler.CreateMissingLabels != nil {
		result.Labeler.CreateMissingLabels = child.Labeler.CreateMissingLabels
	}
	if child.Labeler.RelabelExistingIssues != nil {
		result.Labeler.RelabelExistingIssues = child.Labeler.RelabelExistingIssues
	}
	if child.Labeler.DefaultLabelColor != "" {
		result.Labeler.DefaultLabelColor = child.Labeler.DefaultLabelColor
	}
	if child.Labeler.IssueState != "" {
		result.Labeler.IssueState = child.Labeler.IssueState
	}

	// Rule lists: child completely overrides if non-empty.
	if len(child.Rules) > 0 {
		result.Rules = child.Rules
	}
	if len(child.Catalog) > 0 {
		result.Catalog = child.Catalog
	}

	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = ".github/labelbot.yaml" // default path
	}

	return org, repo, branch, path, nil
}
