package labeler

// Detail records the labels applied to a single issue during a run.
type Detail struct {
	IssueNumber   int      `json:"issue_number"`
	Title         string   `json:"title"`
	AppliedLabels []string `json:"applied_labels"`
}

// Result is the aggregate report of one labeling run.
// len(Details) always equals LabeledIssues.
type Result struct {
	TotalIssues   int      `json:"total_issues"`
	LabeledIssues int      `json:"labeled_issues"`
	LabelsCreated int      `json:"labels_created"`
	Details       []Detail `json:"details"`
}
