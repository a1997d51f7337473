package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/contacts"
)

// contactService defines the minimal interface needed by ContactHandler.
type contactService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	List(ctx context.Context, input contacts.ListInput) ([]domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListTypes(ctx context.Context) ([]domain.ContactType, error)
	CreateType(ctx context.Context, name string) (*domain.ContactType, error)
}

// ContactHandler serves contact REST endpoints.
type ContactHandler struct {
	svc contactService
	log *slog.Logger
}

// NewContactHandler creates a ContactHandler.
func NewContactHandler(svc contactService, logger *slog.Logger) *ContactHandler {
	return &ContactHandler{svc: svc, log: logger.With("handler", "contacts")}
}

type contactPayload struct {
	ID            uuid.UUID  `json:"id,omitempty"`
	ExecutiveID   uuid.UUID  `json:"executiveId"`
	FullName      string     `json:"fullName"`
	Email         *string    `json:"email,omitempty"`
	Phone         *string    `json:"phone,omitempty"`
	Company       *string    `json:"company,omitempty"`
	Role          *string    `json:"role,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	ContactTypeID *uuid.UUID `json:"contactTypeId,omitempty"`
}

// Get handles GET /contacts/{id}.
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactPayload(c))
}

// List handles GET /contacts?executiveId=&contactTypeId=&search=.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	executiveID, err := uuid.Parse(q.Get("executiveId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid executiveId")
		return
	}

	input := contacts.ListInput{
		ExecutiveID: executiveID,
		Search:      q.Get("search"),
	}
	if raw := q.Get("contactTypeId"); raw != "" {
		typeID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid contactTypeId")
			return
		}
		input.ContactTypeID = &typeID
	}

	list, err := h.svc.List(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]contactPayload, 0, len(list))
	for i := range list {
		out = append(out, toContactPayload(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /contacts.
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contactPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), fromContactPayload(req))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toContactPayload(created))
}

// Update handles PUT /contacts/{id}.
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req contactPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c := fromContactPayload(req)
	c.ID = id

	updated, err := h.svc.Update(r.Context(), c)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toContactPayload(updated))
}

// Delete handles DELETE /contacts/{id}.
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type contactTypePayload struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListTypes handles GET /contact-types.
func (h *ContactHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.svc.ListTypes(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]contactTypePayload, 0, len(types))
	for _, t := range types {
		out = append(out, contactTypePayload{ID: t.ID, Name: t.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateType handles POST /contact-types.
func (h *ContactHandler) CreateType(w http.ResponseWriter, r *http.Request) {
	var req namePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateType(r.Context(), req.Name)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, contactTypePayload{ID: created.ID, Name: created.Name})
}

func toContactPayload(c *domain.Contact) contactPayload {
	return contactPayload{
		ID:            c.ID,
		ExecutiveID:   c.ExecutiveID,
		FullName:      c.FullName,
		Email:         c.Email,
		Phone:         c.Phone,
		Company:       c.Company,
		Role:          c.Role,
		Notes:         c.Notes,
		ContactTypeID: c.ContactTypeID,
	}
}

func fromContactPayload(p contactPayload) *domain.Contact {
	return &domain.Contact{
		ExecutiveID:   p.ExecutiveID,
		FullName:      p.FullName,
		Email:         p.Email,
		Phone:         p.Phone,
		Company:       p.Company,
		Role:          p.Role,
		Notes:         p.Notes,
		ContactTypeID: p.ContactTypeID,
	}
}
