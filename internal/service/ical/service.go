// Package ical exports an executive's agenda as an iCalendar feed. Recurring
// series are emitted as a single VEVENT carrying an RRULE rather than one
// VEVENT per expanded occurrence, so consuming calendars stay in charge of
// their own expansion.
package ical

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"github.com/teambition/rrule-go"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/event"
	"github.com/secretaria-app/secretaria-backend/internal/config"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
)

type eventRepo interface {
	List(ctx context.Context, executiveID uuid.UUID, filter event.ListFilter) ([]domain.Event, error)
}

type accessChecker interface {
	CheckExecutive(ctx context.Context, executiveID uuid.UUID) error
}

// Service renders iCalendar feeds.
type Service struct {
	log    *slog.Logger
	events eventRepo
	access accessChecker
	cfg    config.ICalConfig
	now    func() time.Time
}

// NewService creates a new ical service.
func NewService(logger *slog.Logger, events eventRepo, access accessChecker, cfg config.ICalConfig) *Service {
	return &Service{
		log:    logger.With("service", "ical"),
		events: events,
		access: access,
		cfg:    cfg,
		now:    time.Now,
	}
}

// ExportInput holds parameters for Export. A zero From/To leaves that bound
// open.
type ExportInput struct {
	ExecutiveID uuid.UUID
	From        time.Time
	To          time.Time
}

// Export renders the executive's agenda in the range as an iCalendar
// document. Each standalone event becomes one VEVENT; each recurring series
// becomes one VEVENT anchored at its first listed occurrence, with the
// series rule translated to an RRULE.
func (s *Service) Export(ctx context.Context, input ExportInput) (string, error) {
	if input.ExecutiveID == uuid.Nil {
		return "", domain.NewValidationError("executive_id", "required")
	}
	if !input.From.IsZero() && !input.To.IsZero() && input.To.Before(input.From) {
		return "", domain.NewValidationError("to", "before from")
	}
	if err := s.access.CheckExecutive(ctx, input.ExecutiveID); err != nil {
		return "", err
	}

	events, err := s.events.List(ctx, input.ExecutiveID, event.ListFilter{
		From: input.From,
		To:   input.To,
	})
	if err != nil {
		return "", fmt.Errorf("ical.Export list events: %w", err)
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(s.cfg.ProductID)
	cal.SetName(s.cfg.CalendarName)

	stamp := s.now().UTC()
	seenSeries := make(map[string]bool)
	emitted := 0

	// List is ordered by start time, so the first member of each series
	// encountered is its earliest occurrence in range.
	for _, e := range events {
		if e.IsRecurring() {
			if seenSeries[e.RecurrenceID] {
				continue
			}
			seenSeries[e.RecurrenceID] = true
		}

		ve := cal.AddEvent(e.ID)
		ve.SetDtStampTime(stamp)
		ve.SetStartAt(e.StartTime.UTC())
		ve.SetEndAt(e.EndTime.UTC())
		ve.SetSummary(e.Title)
		if e.Description != "" {
			ve.SetDescription(e.Description)
		}
		if e.Location != "" {
			ve.SetLocation(e.Location)
		}
		if e.IsRecurring() && e.Recurrence != nil {
			ve.AddRrule(ruleString(*e.Recurrence, e.StartTime.UTC()))
		}
		emitted++
	}

	s.log.InfoContext(ctx, "agenda exported",
		slog.String("executive_id", input.ExecutiveID.String()),
		slog.Int("vevents", emitted))

	return cal.Serialize(), nil
}

var rruleWeekdays = map[time.Weekday]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// ruleString translates a recurrence rule to RFC 5545 RRULE text.
func ruleString(rule domain.RecurrenceRule, dtstart time.Time) string {
	opt := rrule.ROption{Dtstart: dtstart, Interval: rule.Interval}

	switch rule.Frequency {
	case domain.FrequencyDaily:
		opt.Freq = rrule.DAILY
	case domain.FrequencyWeekly:
		opt.Freq = rrule.WEEKLY
		for _, d := range rule.DaysOfWeek {
			opt.Byweekday = append(opt.Byweekday, rruleWeekdays[d])
		}
	case domain.FrequencyMonthly:
		opt.Freq = rrule.MONTHLY
	case domain.FrequencyAnnually:
		opt.Freq = rrule.YEARLY
	}

	if rule.Count != nil {
		opt.Count = *rule.Count
	}
	if rule.EndDate != nil {
		// End date is an inclusive calendar day; the UNTIL instant is its
		// last second.
		d := rule.EndDate.UTC()
		opt.Until = time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
	}

	return opt.RRuleString()
}
