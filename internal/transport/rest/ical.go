package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/secretaria-app/secretaria-backend/internal/service/ical"
)

// icalService defines the minimal interface needed by ICalHandler.
type icalService interface {
	Export(ctx context.Context, input ical.ExportInput) (string, error)
}

// ICalHandler serves the iCalendar agenda feed.
type ICalHandler struct {
	svc icalService
	log *slog.Logger
}

// NewICalHandler creates an ICalHandler.
func NewICalHandler(svc icalService, logger *slog.Logger) *ICalHandler {
	return &ICalHandler{svc: svc, log: logger.With("handler", "ical")}
}

// Export handles GET /executives/{id}/agenda.ics?from=&to=.
func (h *ICalHandler) Export(w http.ResponseWriter, r *http.Request) {
	executiveID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	input := ical.ExportInput{ExecutiveID: executiveID}

	var err error
	if input.From, err = queryTime(r.URL.Query().Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}
	if input.To, err = queryTime(r.URL.Query().Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}

	feed, err := h.svc.Export(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="agenda.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(feed)) //nolint:errcheck
}
