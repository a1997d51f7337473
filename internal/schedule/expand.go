package schedule

import (
	"fmt"
	"slices"
	"time"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

// Expand generates the ordered occurrence series for base under rule, each
// occurrence tagged with seriesID. It is total: a structurally invalid rule
// or a base without an anchor yields an empty series, never an error.
// Callers wanting to distinguish "empty because invalid" call ValidateRule.
//
// Occurrence ids are "{prefix}_{seriesID}_{ordinal}" with a 0-based ordinal.
// Output is strictly ascending by date.
func (e *Engine[T]) Expand(base T, rule domain.RecurrenceRule, seriesID string) []T {
	anchor := e.adapter.Anchor(base).UTC()
	if anchor.IsZero() {
		return nil
	}
	if !rule.Frequency.IsValid() {
		return nil
	}

	interval := rule.Interval
	if interval < 1 {
		// Callers are expected to validate interval >= 1; clamping here
		// keeps a malformed rule from looping forever.
		interval = 1
	}

	limit := e.max
	if rule.Count != nil {
		limit = *rule.Count
	}
	if limit < 1 {
		return nil
	}

	var endDay *time.Time
	if rule.EndDate != nil {
		d := utcDay(*rule.EndDate)
		endDay = &d
	}

	var out []T
	if rule.Frequency == domain.FrequencyWeekly {
		out = e.expandWeekly(base, rule, seriesID, anchor, interval, limit, endDay)
	} else {
		out = e.expandStepped(base, rule, seriesID, anchor, interval, limit, endDay)
	}

	// An explicit count bounds the series even when the walk produced more.
	if rule.Count != nil && len(out) > *rule.Count {
		out = out[:*rule.Count]
	}
	return out
}

// expandWeekly walks Sunday-started weeks in steps of interval weeks,
// emitting each selected weekday. Weekdays of the anchor's own week that
// fall before the anchor are skipped: the series never starts before its
// anchor, even when an earlier weekday matches.
func (e *Engine[T]) expandWeekly(base T, rule domain.RecurrenceRule, seriesID string, anchor time.Time, interval, limit int, endDay *time.Time) []T {
	days := normalizeWeekdays(rule.DaysOfWeek)
	if len(days) == 0 {
		return nil
	}

	var out []T
	weekStart := anchor.AddDate(0, 0, -int(anchor.Weekday()))
	for len(out) < limit {
		if endDay != nil && utcDay(weekStart).After(*endDay) {
			break
		}
		for _, day := range days {
			if len(out) == limit {
				break
			}
			candidate := weekStart.AddDate(0, 0, int(day))
			if candidate.Before(anchor) {
				continue
			}
			if endDay != nil && utcDay(candidate).After(*endDay) {
				continue
			}
			out = append(out, e.adapter.Place(base, e.occurrenceID(seriesID, len(out)), seriesID, rule, candidate))
		}
		weekStart = weekStart.AddDate(0, 0, 7*interval)
	}
	return out
}

// expandStepped handles daily, monthly and annual rules: start at the anchor
// and advance by interval units. Month and year stepping use time.AddDate,
// so end-of-month anchors roll over the way the Go calendar does
// (Jan 31 + 1 month = Mar 2, or Mar 3 outside leap years).
func (e *Engine[T]) expandStepped(base T, rule domain.RecurrenceRule, seriesID string, anchor time.Time, interval, limit int, endDay *time.Time) []T {
	var out []T
	cursor := anchor
	for len(out) < limit {
		if endDay != nil && utcDay(cursor).After(*endDay) {
			break
		}
		out = append(out, e.adapter.Place(base, e.occurrenceID(seriesID, len(out)), seriesID, rule, cursor))

		switch rule.Frequency {
		case domain.FrequencyDaily:
			cursor = cursor.AddDate(0, 0, interval)
		case domain.FrequencyMonthly:
			cursor = cursor.AddDate(0, interval, 0)
		case domain.FrequencyAnnually:
			cursor = cursor.AddDate(interval, 0, 0)
		}
	}
	return out
}

func (e *Engine[T]) occurrenceID(seriesID string, ordinal int) string {
	return fmt.Sprintf("%s_%s_%d", e.adapter.Prefix(), seriesID, ordinal)
}

// normalizeWeekdays returns a sorted, deduplicated copy with out-of-range
// values dropped.
func normalizeWeekdays(days []time.Weekday) []time.Weekday {
	out := make([]time.Weekday, 0, len(days))
	for _, d := range days {
		if d < time.Sunday || d > time.Saturday {
			continue
		}
		if !slices.Contains(out, d) {
			out = append(out, d)
		}
	}
	slices.Sort(out)
	return out
}

// ValidateRule reports why a rule would expand to an empty or surprising
// series. The engine itself never rejects a rule (Expand is total); services
// call this to surface a warning to the user instead of silently saving
// nothing.
func ValidateRule(rule domain.RecurrenceRule) error {
	if !rule.Frequency.IsValid() {
		return domain.NewValidationError("recurrence.frequency", "unknown frequency")
	}
	if rule.Interval < 1 {
		return domain.NewValidationError("recurrence.interval", "interval must be at least 1")
	}
	if rule.Frequency == domain.FrequencyWeekly && len(normalizeWeekdays(rule.DaysOfWeek)) == 0 {
		return domain.NewValidationError("recurrence.daysOfWeek", "weekly rule requires at least one weekday")
	}
	if rule.Count != nil && *rule.Count < 1 {
		return domain.NewValidationError("recurrence.count", "count must be at least 1")
	}
	if rule.Count != nil && rule.EndDate != nil {
		return domain.NewValidationError("recurrence", "count and endDate are mutually exclusive")
	}
	return nil
}
