package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/agenda"
)

// agendaService defines the minimal interface needed by AgendaHandler.
type agendaService interface {
	SaveEvent(ctx context.Context, input agenda.SaveEventInput) (*agenda.SaveResult, error)
	GetEvent(ctx context.Context, id string) (*domain.Event, error)
	ListEvents(ctx context.Context, input agenda.ListEventsInput) ([]domain.Event, error)
	DeleteEvent(ctx context.Context, id string, scope domain.DeleteScope) error
	ListEventTypes(ctx context.Context) ([]domain.EventType, error)
	CreateEventType(ctx context.Context, name, colorHex string) (*domain.EventType, error)
}

// AgendaHandler serves agenda REST endpoints.
type AgendaHandler struct {
	svc agendaService
	log *slog.Logger
}

// NewAgendaHandler creates an AgendaHandler.
func NewAgendaHandler(svc agendaService, logger *slog.Logger) *AgendaHandler {
	return &AgendaHandler{svc: svc, log: logger.With("handler", "agenda")}
}

type saveEventRequest struct {
	ID              string                 `json:"id,omitempty"`
	ExecutiveID     uuid.UUID              `json:"executiveId"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description,omitempty"`
	StartTime       time.Time              `json:"startTime"`
	EndTime         time.Time              `json:"endTime"`
	Location        string                 `json:"location,omitempty"`
	EventTypeID     *uuid.UUID             `json:"eventTypeId,omitempty"`
	ReminderMinutes int                    `json:"reminderMinutes,omitempty"`
	Rule            *domain.RecurrenceRule `json:"rule,omitempty"`
}

type eventResponse struct {
	ID              string                 `json:"id"`
	ExecutiveID     uuid.UUID              `json:"executiveId"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description,omitempty"`
	StartTime       time.Time              `json:"startTime"`
	EndTime         time.Time              `json:"endTime"`
	Location        string                 `json:"location,omitempty"`
	EventTypeID     *uuid.UUID             `json:"eventTypeId,omitempty"`
	ReminderMinutes int                    `json:"reminderMinutes,omitempty"`
	RecurrenceID    string                 `json:"recurrenceId,omitempty"`
	Recurrence      *domain.RecurrenceRule `json:"recurrence,omitempty"`
}

type saveEventsResponse struct {
	Events   []eventResponse `json:"events"`
	Warnings []string        `json:"warnings,omitempty"`
}

// SaveEvent handles POST /events and PUT /events/{id}. A request without an
// id creates; with an id it replaces the event (and its whole series when
// the rule changed).
func (h *AgendaHandler) SaveEvent(w http.ResponseWriter, r *http.Request) {
	var req saveEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if pathID := r.PathValue("id"); pathID != "" {
		req.ID = pathID
	}

	result, err := h.svc.SaveEvent(r.Context(), agenda.SaveEventInput{
		ID:              req.ID,
		ExecutiveID:     req.ExecutiveID,
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Location:        req.Location,
		EventTypeID:     req.EventTypeID,
		ReminderMinutes: req.ReminderMinutes,
		Rule:            req.Rule,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	status := http.StatusOK
	if req.ID == "" {
		status = http.StatusCreated
	}
	writeJSON(w, status, toSaveEventsResponse(result))
}

// GetEvent handles GET /events/{id}.
func (h *AgendaHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := h.svc.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventResponse(*event))
}

// ListEvents handles GET /events?executiveId=&from=&to=&eventTypeId=.
func (h *AgendaHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	executiveID, err := uuid.Parse(q.Get("executiveId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid executiveId")
		return
	}

	input := agenda.ListEventsInput{ExecutiveID: executiveID}
	if input.From, err = queryTime(q.Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}
	if input.To, err = queryTime(q.Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}
	if raw := q.Get("eventTypeId"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid eventTypeId")
			return
		}
		input.EventTypeID = &typeID
	}

	events, err := h.svc.ListEvents(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]eventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toEventResponse(e))
	}
	writeJSON(w, http.StatusOK, out)
}

// DeleteEvent handles DELETE /events/{id}?scope=one|future|all. Scope
// defaults to one.
func (h *AgendaHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	scope := domain.DeleteScope(r.URL.Query().Get("scope"))
	if scope == "" {
		scope = domain.DeleteScopeOne
	}

	if err := h.svc.DeleteEvent(r.Context(), r.PathValue("id"), scope); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type eventTypeRequest struct {
	Name     string `json:"name"`
	ColorHex string `json:"colorHex,omitempty"`
}

type eventTypeResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ColorHex string    `json:"colorHex"`
}

// ListEventTypes handles GET /event-types.
func (h *AgendaHandler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListEventTypes(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]eventTypeResponse, 0, len(types))
	for _, t := range types {
		out = append(out, eventTypeResponse{ID: t.ID, Name: t.Name, ColorHex: t.ColorHex})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateEventType handles POST /event-types.
func (h *AgendaHandler) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var req eventTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateEventType(r.Context(), req.Name, req.ColorHex)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, eventTypeResponse{ID: created.ID, Name: created.Name, ColorHex: created.ColorHex})
}

func toEventResponse(e domain.Event) eventResponse {
	return eventResponse{
		ID:              e.ID,
		ExecutiveID:     e.ExecutiveID,
		Title:           e.Title,
		Description:     e.Description,
		StartTime:       e.StartTime,
		EndTime:         e.EndTime,
		Location:        e.Location,
		EventTypeID:     e.EventTypeID,
		ReminderMinutes: e.ReminderMinutes,
		RecurrenceID:    e.RecurrenceID,
		Recurrence:      e.Recurrence,
	}
}

func toSaveEventsResponse(result *agenda.SaveResult) saveEventsResponse {
	out := saveEventsResponse{
		Events:   make([]eventResponse, 0, len(result.Saved)),
		Warnings: result.Warnings,
	}
	for _, e := range result.Saved {
		out.Events = append(out.Events, toEventResponse(e))
	}
	return out
}

// queryTime parses an RFC 3339 timestamp or a bare date. Empty input yields
// a zero time (open bound).
func queryTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
