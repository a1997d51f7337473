package schedule

import "github.com/secretaria-app/secretaria-backend/internal/domain"

// Resolve applies a save to the collection and returns the replacement
// collection. edited carries the (possibly new) occurrence data; rule is the
// recurrence pattern to apply, or nil to make/keep the item standalone.
//
// When the edited item belonged to a series, the entire old series is
// discarded before anything is inserted; there is no partial-series
// preservation on edit. A supplied rule regenerates the series under the
// original series id, so series identity is stable across edits; a nil rule
// converts the item to a single standalone occurrence.
func (e *Engine[T]) Resolve(collection []T, edited T, rule *domain.RecurrenceRule) []T {
	editedID := e.adapter.ID(edited)

	oldSeriesID := ""
	if editedID != "" {
		for _, item := range collection {
			if e.adapter.ID(item) == editedID {
				oldSeriesID = e.adapter.SeriesID(item)
				break
			}
		}
	}

	out := make([]T, 0, len(collection))
	for _, item := range collection {
		if oldSeriesID != "" && e.adapter.SeriesID(item) == oldSeriesID {
			continue
		}
		if editedID != "" && e.adapter.ID(item) == editedID {
			// The edited occurrence itself is always replaced, including a
			// previously standalone item that is being given a rule.
			continue
		}
		out = append(out, item)
	}

	if rule == nil {
		id := editedID
		if id == "" {
			id = "single_" + e.newID()
		}
		return append(out, e.adapter.Detach(edited, id))
	}

	r := *rule
	if r.Count == nil && r.EndDate == nil {
		// Non-recurring safety fallback: a rule without a termination
		// policy expands to exactly one occurrence.
		one := 1
		r.Count = &one
	}

	seriesID := oldSeriesID
	if seriesID == "" {
		seriesID = "recur_" + e.newID()
	}
	return append(out, e.Expand(edited, r, seriesID)...)
}

// Delete applies a scoped delete of target to the collection and returns the
// replacement collection.
//
// Scope one removes the target only. Scope all removes every occurrence
// sharing the target's series id. Scope future removes the target and every
// series sibling dated on or after it; strictly earlier siblings survive.
// For a standalone target the series scopes degrade to scope one, and an
// unknown scope leaves the collection unchanged, never "delete everything"
// on malformed input.
func (e *Engine[T]) Delete(collection []T, target T, scope domain.DeleteScope) []T {
	targetID := e.adapter.ID(target)
	seriesID := e.adapter.SeriesID(target)

	switch scope {
	case domain.DeleteScopeOne:
		return e.removeByID(collection, targetID)

	case domain.DeleteScopeAll:
		if seriesID == "" {
			return e.removeByID(collection, targetID)
		}
		out := make([]T, 0, len(collection))
		for _, item := range collection {
			if e.adapter.SeriesID(item) == seriesID {
				continue
			}
			out = append(out, item)
		}
		return out

	case domain.DeleteScopeFuture:
		if seriesID == "" {
			return e.removeByID(collection, targetID)
		}
		pivot := e.adapter.Anchor(target)
		out := make([]T, 0, len(collection))
		for _, item := range collection {
			if e.adapter.SeriesID(item) == seriesID && !e.adapter.Anchor(item).Before(pivot) {
				continue
			}
			out = append(out, item)
		}
		return out

	default:
		return append([]T(nil), collection...)
	}
}

func (e *Engine[T]) removeByID(collection []T, id string) []T {
	out := make([]T, 0, len(collection))
	for _, item := range collection {
		if e.adapter.ID(item) == id {
			continue
		}
		out = append(out, item)
	}
	return out
}
