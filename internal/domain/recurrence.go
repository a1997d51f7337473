package domain

import "time"

// Frequency is the unit of a recurrence rule's interval stepping.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyMonthly  Frequency = "monthly"
	FrequencyAnnually Frequency = "annually"
)

func (f Frequency) String() string { return string(f) }

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyAnnually:
		return true
	}
	return false
}

// RecurrenceRule describes a repeat pattern for an event or task series.
// It is a plain value: once handed to the expansion engine it is never
// mutated; changing a pattern means constructing a new rule.
//
// Termination is by Count or EndDate. When both are nil the caller-facing
// resolver treats the rule as Count=1 (a non-recurring safety fallback).
type RecurrenceRule struct {
	Frequency Frequency `json:"frequency"`
	// Interval is the step in units of Frequency (every N days/weeks/...).
	Interval int `json:"interval"`
	// DaysOfWeek is meaningful only for weekly rules. A weekly rule with an
	// empty set is invalid and expands to zero occurrences.
	DaysOfWeek []time.Weekday `json:"daysOfWeek,omitempty"`
	// Count is the total number of occurrences, including the first.
	Count *int `json:"count,omitempty"`
	// EndDate is the last calendar day (inclusive, UTC) occurrences may fall on.
	EndDate *time.Time `json:"endDate,omitempty"`
}

// HasTermination reports whether the rule carries an explicit termination
// policy (count or end date).
func (r RecurrenceRule) HasTermination() bool {
	return r.Count != nil || r.EndDate != nil
}

// Clone returns a deep copy of the rule. Occurrences denormalize the rule
// onto themselves; cloning keeps them from aliasing a shared weekday slice.
func (r RecurrenceRule) Clone() RecurrenceRule {
	out := r
	if r.DaysOfWeek != nil {
		out.DaysOfWeek = append([]time.Weekday(nil), r.DaysOfWeek...)
	}
	if r.Count != nil {
		c := *r.Count
		out.Count = &c
	}
	if r.EndDate != nil {
		d := *r.EndDate
		out.EndDate = &d
	}
	return out
}

// DeleteScope selects which members of a recurring series a delete affects.
type DeleteScope string

const (
	// DeleteScopeOne removes only the targeted occurrence.
	DeleteScopeOne DeleteScope = "one"
	// DeleteScopeFuture removes the target and every later occurrence of its series.
	DeleteScopeFuture DeleteScope = "future"
	// DeleteScopeAll removes the entire series.
	DeleteScopeAll DeleteScope = "all"
)

func (s DeleteScope) String() string { return string(s) }

func (s DeleteScope) IsValid() bool {
	switch s {
	case DeleteScopeOne, DeleteScopeFuture, DeleteScopeAll:
		return true
	}
	return false
}
