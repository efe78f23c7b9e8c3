package labeler

// Config holds the engine's run settings.
type Config struct {
	// CreateMissingLabels controls whether matched labels that do not
	// exist in the repository are created before being applied.
	CreateMissingLabels bool

	// DefaultLabelColor is the hex color (no '#') used when creating
	// missing labels.
	DefaultLabelColor string

	// RelabelExistingIssues controls whether issues that already carry
	// at least one label are eligible for further labeling.
	RelabelExistingIssues bool

	// IssueState selects which issues a run fetches.
	IssueState IssueState
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		CreateMissingLabels:   false,
		DefaultLabelColor:     "0075ca",
		RelabelExistingIssues: true,
		IssueState:            IssueStateOpen,
	}
}

// ConfigPatch is a partial configuration update. Nil fields are left
// untouched on merge, so callers can flip a single setting without
// restating the rest. Pointer fields keep an explicit false distinct
// from unset.
type ConfigPatch struct {
	CreateMissingLabels   *bool
	DefaultLabelColor     *string
	RelabelExistingIssues *bool
	IssueState            *IssueState
}

// apply merges a patch onto the config, field by field.
func (c Config) apply(p *ConfigPatch) Config {
	if p == nil {
		return c
	}
	if p.CreateMissingLabels != nil {
		c.CreateMissingLabels = *p.CreateMissingLabels
	}
	if p.DefaultLabelColor != nil {
		c.DefaultLabelColor = *p.DefaultLabelColor
	}
	if p.RelabelExistingIssues != nil {
		c.RelabelExistingIssues = *p.RelabelExistingIssues
	}
	if p.IssueState != nil {
		c.IssueState = *p.IssueState
	}
	return c
}
