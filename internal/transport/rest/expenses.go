package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/adapter/postgres/expense"
	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/expenses"
)

// expenseService defines the minimal interface needed by ExpenseHandler.
type expenseService interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, input expenses.ListInput) ([]domain.Expense, error)
	Summarize(ctx context.Context, executiveID uuid.UUID, from, to time.Time) (expense.Summary, error)
	Create(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Update(ctx context.Context, e *domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListCategories(ctx context.Context) ([]domain.ExpenseCategory, error)
	CreateCategory(ctx context.Context, name string) (*domain.ExpenseCategory, error)
}

// ExpenseHandler serves expense REST endpoints.
type ExpenseHandler struct {
	svc expenseService
	log *slog.Logger
}

// NewExpenseHandler creates an ExpenseHandler.
func NewExpenseHandler(svc expenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{svc: svc, log: logger.With("handler", "expenses")}
}

type expensePayload struct {
	ID          uuid.UUID  `json:"id,omitempty"`
	ExecutiveID uuid.UUID  `json:"executiveId"`
	Description string     `json:"description"`
	AmountCents int64      `json:"amountCents"`
	ExpenseDate time.Time  `json:"expenseDate"`
	Type        string     `json:"type"`
	EntityType  string     `json:"entityType"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	Status      string     `json:"status,omitempty"`
}

// Get handles GET /expenses/{id}.
func (h *ExpenseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	e, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpensePayload(e))
}

// List handles GET /expenses?executiveId=&from=&to=&type=&status=&categoryId=.
func (h *ExpenseHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	executiveID, err := uuid.Parse(q.Get("executiveId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid executiveId")
		return
	}

	input := expenses.ListInput{
		ExecutiveID: executiveID,
		Type:        domain.ExpenseType(q.Get("type")),
		Status:      domain.ExpenseStatus(q.Get("status")),
	}
	if input.From, err = queryTime(q.Get("from")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}
	if input.To, err = queryTime(q.Get("to")); err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}
	if raw := q.Get("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid categoryId")
			return
		}
		input.CategoryID = &categoryID
	}

	list, err := h.svc.List(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]expensePayload, 0, len(list))
	for i := range list {
		out = append(out, toExpensePayload(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

type expenseSummaryResponse struct {
	PayableCents    int64 `json:"payableCents"`
	ReceivableCents int64 `json:"receivableCents"`
	PendingCount    int   `json:"pendingCount"`
}

// Summary handles GET /expenses/summary?executiveId=&from=&to=.
func (h *ExpenseHandler) Summary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	executiveID, err := uuid.Parse(q.Get("executiveId"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid executiveId")
		return
	}
	from, err := queryTime(q.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from")
		return
	}
	to, err := queryTime(q.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to")
		return
	}

	summary, err := h.svc.Summarize(r.Context(), executiveID, from, to)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, expenseSummaryResponse{
		PayableCents:    summary.PayableCents,
		ReceivableCents: summary.ReceivableCents,
		PendingCount:    summary.PendingCount,
	})
}

// Create handles POST /expenses.
func (h *ExpenseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req expensePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), fromExpensePayload(req))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpensePayload(created))
}

// Update handles PUT /expenses/{id}.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req expensePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e := fromExpensePayload(req)
	e.ID = id

	updated, err := h.svc.Update(r.Context(), e)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpensePayload(updated))
}

// Delete handles DELETE /expenses/{id}.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

type expenseCategoryPayload struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListCategories handles GET /expense-categories.
func (h *ExpenseHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.svc.ListCategories(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]expenseCategoryPayload, 0, len(categories))
	for _, c := range categories {
		out = append(out, expenseCategoryPayload{ID: c.ID, Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateCategory handles POST /expense-categories.
func (h *ExpenseHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req namePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateCategory(r.Context(), req.Name)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, expenseCategoryPayload{ID: created.ID, Name: created.Name})
}

func toExpensePayload(e *domain.Expense) expensePayload {
	return expensePayload{
		ID:          e.ID,
		ExecutiveID: e.ExecutiveID,
		Description: e.Description,
		AmountCents: e.AmountCents,
		ExpenseDate: e.ExpenseDate,
		Type:        e.Type.String(),
		EntityType:  e.EntityType.String(),
		CategoryID:  e.CategoryID,
		Status:      e.Status.String(),
	}
}

func fromExpensePayload(p expensePayload) *domain.Expense {
	return &domain.Expense{
		ExecutiveID: p.ExecutiveID,
		Description: p.Description,
		AmountCents: p.AmountCents,
		ExpenseDate: p.ExpenseDate,
		Type:        domain.ExpenseType(p.Type),
		EntityType:  domain.ExpenseEntityType(p.EntityType),
		CategoryID:  p.CategoryID,
		Status:      domain.ExpenseStatus(p.Status),
	}
}
