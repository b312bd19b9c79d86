package student

import "time"

// Attention reasons.
const (
	ReasonHighPriority = "high_priority"
	ReasonInactive     = "inactive"
	ReasonTagged       = "tagged"
)

// AttentionRule decides which students need outreach from the counselling team.
// The dashboard and the directory's "needs-attention" filter both use it.
type AttentionRule struct {
	Window time.Duration // a student is inactive once LastActive is not after now-Window
	Tag    string
}

var DefaultAttentionRule = AttentionRule{
	Window: 7 * 24 * time.Hour,
	Tag:    "Needs Essay Help",
}

// IsActive reports whether s was active within the rule's window.
func (r AttentionRule) IsActive(s Student, now time.Time) bool {
	return s.LastActive.After(now.Add(-r.Window))
}

// Matches reports whether s needs attention: high priority, inactive or tagged.
func (r AttentionRule) Matches(s Student, now time.Time) bool {
	return s.Priority == PriorityHigh || !r.IsActive(s, now) || (r.Tag != "" && s.Tags.Has(r.Tag))
}

// Reasons lists every clause of the rule that s matches.
func (r AttentionRule) Reasons(s Student, now time.Time) []string {
	reasons := make([]string, 0, 3)
	if s.Priority == PriorityHigh {
		reasons = append(reasons, ReasonHighPriority)
	}
	if !r.IsActive(s, now) {
		reasons = append(reasons, ReasonInactive)
	}
	if r.Tag != "" && s.Tags.Has(r.Tag) {
		reasons = append(reasons, ReasonTagged)
	}
	return reasons
}
