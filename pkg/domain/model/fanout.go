package model

// TargetFailure records one failed delivery during a fan-out
type TargetFailure struct {
	Target string // Channel ID or topic name
	Err    error
}

// FanoutResult aggregates the outcome of a multi-target publish. A failed
// target never aborts its siblings; callers inspect the result to decide
// how to report partial delivery.
type FanoutResult struct {
	Sent     int
	Failures []TargetFailure
}

// AllFailed reports whether nothing was delivered at all
func (r *FanoutResult) AllFailed() bool {
	return r.Sent == 0 && len(r.Failures) > 0
}

// Partial reports whether some targets succeeded and some failed
func (r *FanoutResult) Partial() bool {
	return r.Sent > 0 && len(r.Failures) > 0
}
