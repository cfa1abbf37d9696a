package model

// Issue is a read-only projection of a tracker issue. Only the fields the
// publishers render are carried; everything else stays in the tracker.
type Issue struct {
	Key      string // Stable issue identifier (e.g. "ARCH-123")
	Summary  string
	Creator  string // Creator display name
	Assignee string // Assignee display name, empty when unassigned
	Status   string // Workflow status name

	// DecisionStatus is the governance sign-off state held in a custom
	// field, distinct from the workflow status. Empty when the field is
	// not set on the issue.
	DecisionStatus string

	// Classifications lists the impacted value-streams. A nil or empty
	// slice means the issue impacts no specific value-stream.
	Classifications []string
}

// HasAssignee reports whether the issue has an assignee display name
func (i *Issue) HasAssignee() bool {
	return i.Assignee != ""
}
