package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/secretaria-app/secretaria-backend/internal/domain"
	"github.com/secretaria-app/secretaria-backend/internal/service/directory"
)

// directoryService defines the minimal interface needed by DirectoryHandler.
type directoryService interface {
	GetExecutive(ctx context.Context, id uuid.UUID) (*domain.Executive, error)
	ListExecutives(ctx context.Context, input directory.ListExecutivesInput) ([]domain.Executive, error)
	CreateExecutive(ctx context.Context, e *domain.Executive) (*domain.Executive, error)
	UpdateExecutive(ctx context.Context, e *domain.Executive) (*domain.Executive, error)
	DeleteExecutive(ctx context.Context, id uuid.UUID) error

	GetSecretary(ctx context.Context, id uuid.UUID) (*domain.Secretary, error)
	ListSecretaries(ctx context.Context) ([]domain.Secretary, error)
	CreateSecretary(ctx context.Context, sec *domain.Secretary) (*domain.Secretary, error)
	UpdateSecretary(ctx context.Context, sec *domain.Secretary) (*domain.Secretary, error)
	DeleteSecretary(ctx context.Context, id uuid.UUID) error
	AssignExecutive(ctx context.Context, secretaryID, executiveID uuid.UUID) error
	UnassignExecutive(ctx context.Context, secretaryID, executiveID uuid.UUID) error

	GetOrganization(ctx context.Context, id uuid.UUID) (*domain.Organization, error)
	ListOrganizations(ctx context.Context) ([]domain.Organization, error)
	CreateOrganization(ctx context.Context, name string) (*domain.Organization, error)
	UpdateOrganization(ctx context.Context, id uuid.UUID, name string) (*domain.Organization, error)
	DeleteOrganization(ctx context.Context, id uuid.UUID) error
	ListDepartments(ctx context.Context, organizationID uuid.UUID) ([]domain.Department, error)
	CreateDepartment(ctx context.Context, organizationID uuid.UUID, name string) (*domain.Department, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, name string) (*domain.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

// DirectoryHandler serves executive, secretary and organization endpoints.
type DirectoryHandler struct {
	svc directoryService
	log *slog.Logger
}

// NewDirectoryHandler creates a DirectoryHandler.
func NewDirectoryHandler(svc directoryService, logger *slog.Logger) *DirectoryHandler {
	return &DirectoryHandler{svc: svc, log: logger.With("handler", "directory")}
}

// executivePayload is both the request and response shape for executives.
// Updates are full replacements: omitted optional fields are cleared.
type executivePayload struct {
	ID       uuid.UUID `json:"id,omitempty"`
	FullName string    `json:"fullName"`

	CPF          *string    `json:"cpf,omitempty"`
	RG           *string    `json:"rg,omitempty"`
	BirthDate    *time.Time `json:"birthDate,omitempty"`
	Nationality  *string    `json:"nationality,omitempty"`
	PlaceOfBirth *string    `json:"placeOfBirth,omitempty"`
	CivilStatus  *string    `json:"civilStatus,omitempty"`

	WorkEmail     *string `json:"workEmail,omitempty"`
	WorkPhone     *string `json:"workPhone,omitempty"`
	Extension     *string `json:"extension,omitempty"`
	PersonalEmail *string `json:"personalEmail,omitempty"`
	PersonalPhone *string `json:"personalPhone,omitempty"`
	Address       *string `json:"address,omitempty"`

	JobTitle             *string    `json:"jobTitle,omitempty"`
	OrganizationID       *uuid.UUID `json:"organizationId,omitempty"`
	DepartmentID         *uuid.UUID `json:"departmentId,omitempty"`
	CostCenter           *string    `json:"costCenter,omitempty"`
	EmployeeID           *string    `json:"employeeId,omitempty"`
	ReportsToExecutiveID *uuid.UUID `json:"reportsToExecutiveId,omitempty"`
	HireDate             *time.Time `json:"hireDate,omitempty"`
	WorkLocation         *string    `json:"workLocation,omitempty"`

	PhotoURL  *string `json:"photoUrl,omitempty"`
	Bio       *string `json:"bio,omitempty"`
	Education *string `json:"education,omitempty"`
	Languages *string `json:"languages,omitempty"`

	EmergencyContactName     *string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelation *string `json:"emergencyContactRelation,omitempty"`
}

// GetExecutive handles GET /executives/{id}.
func (h *DirectoryHandler) GetExecutive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	e, err := h.svc.GetExecutive(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExecutivePayload(e))
}

// ListExecutives handles GET /executives?organizationId=&departmentId=&search=.
func (h *DirectoryHandler) ListExecutives(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var input directory.ListExecutivesInput
	input.Search = q.Get("search")
	if raw := q.Get("organizationId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid organizationId")
			return
		}
		input.OrganizationID = &id
	}
	if raw := q.Get("departmentId"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid departmentId")
			return
		}
		input.DepartmentID = &id
	}

	list, err := h.svc.ListExecutives(r.Context(), input)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]executivePayload, 0, len(list))
	for i := range list {
		out = append(out, toExecutivePayload(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateExecutive handles POST /executives.
func (h *DirectoryHandler) CreateExecutive(w http.ResponseWriter, r *http.Request) {
	var req executivePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateExecutive(r.Context(), fromExecutivePayload(req))
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExecutivePayload(created))
}

// UpdateExecutive handles PUT /executives/{id}.
func (h *DirectoryHandler) UpdateExecutive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req executivePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	e := fromExecutivePayload(req)
	e.ID = id

	updated, err := h.svc.UpdateExecutive(r.Context(), e)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toExecutivePayload(updated))
}

// DeleteExecutive handles DELETE /executives/{id}.
func (h *DirectoryHandler) DeleteExecutive(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteExecutive(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type secretaryPayload struct {
	ID           uuid.UUID   `json:"id,omitempty"`
	FullName     string      `json:"fullName"`
	Email        *string     `json:"email,omitempty"`
	ExecutiveIDs []uuid.UUID `json:"executiveIds,omitempty"`
}

// GetSecretary handles GET /secretaries/{id}.
func (h *DirectoryHandler) GetSecretary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	sec, err := h.svc.GetSecretary(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSecretaryPayload(sec))
}

// ListSecretaries handles GET /secretaries.
func (h *DirectoryHandler) ListSecretaries(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListSecretaries(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]secretaryPayload, 0, len(list))
	for i := range list {
		out = append(out, toSecretaryPayload(&list[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateSecretary handles POST /secretaries.
func (h *DirectoryHandler) CreateSecretary(w http.ResponseWriter, r *http.Request) {
	var req secretaryPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateSecretary(r.Context(), &domain.Secretary{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSecretaryPayload(created))
}

// UpdateSecretary handles PUT /secretaries/{id}.
func (h *DirectoryHandler) UpdateSecretary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req secretaryPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateSecretary(r.Context(), &domain.Secretary{
		ID:       id,
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSecretaryPayload(updated))
}

// DeleteSecretary handles DELETE /secretaries/{id}.
func (h *DirectoryHandler) DeleteSecretary(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteSecretary(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AssignExecutive handles PUT /secretaries/{id}/executives/{executiveId}.
func (h *DirectoryHandler) AssignExecutive(w http.ResponseWriter, r *http.Request) {
	secretaryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	executiveID, ok := pathUUID(w, r, "executiveId")
	if !ok {
		return
	}

	if err := h.svc.AssignExecutive(r.Context(), secretaryID, executiveID); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnassignExecutive handles DELETE /secretaries/{id}/executives/{executiveId}.
func (h *DirectoryHandler) UnassignExecutive(w http.ResponseWriter, r *http.Request) {
	secretaryID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	executiveID, ok := pathUUID(w, r, "executiveId")
	if !ok {
		return
	}

	if err := h.svc.UnassignExecutive(r.Context(), secretaryID, executiveID); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type namePayload struct {
	Name string `json:"name"`
}

type organizationPayload struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type departmentPayload struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	OrganizationID uuid.UUID `json:"organizationId"`
}

// GetOrganization handles GET /organizations/{id}.
func (h *DirectoryHandler) GetOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	org, err := h.svc.GetOrganization(r.Context(), id)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, organizationPayload{ID: org.ID, Name: org.Name})
}

// ListOrganizations handles GET /organizations.
func (h *DirectoryHandler) ListOrganizations(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.ListOrganizations(r.Context())
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]organizationPayload, 0, len(list))
	for _, org := range list {
		out = append(out, organizationPayload{ID: org.ID, Name: org.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateOrganization handles POST /organizations.
func (h *DirectoryHandler) CreateOrganization(w http.ResponseWriter, r *http.Request) {
	var req namePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateOrganization(r.Context(), req.Name)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, organizationPayload{ID: created.ID, Name: created.Name})
}

// UpdateOrganization handles PUT /organizations/{id}.
func (h *DirectoryHandler) UpdateOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req namePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateOrganization(r.Context(), id, req.Name)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, organizationPayload{ID: updated.ID, Name: updated.Name})
}

// DeleteOrganization handles DELETE /organizations/{id}.
func (h *DirectoryHandler) DeleteOrganization(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteOrganization(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDepartments handles GET /organizations/{id}/departments.
func (h *DirectoryHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	list, err := h.svc.ListDepartments(r.Context(), orgID)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}

	out := make([]departmentPayload, 0, len(list))
	for _, d := range list {
		out = append(out, departmentPayload{ID: d.ID, Name: d.Name, OrganizationID: d.OrganizationID})
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateDepartment handles POST /organizations/{id}/departments.
func (h *DirectoryHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	orgID, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req namePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.CreateDepartment(r.Context(), orgID, req.Name)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, departmentPayload{ID: created.ID, Name: created.Name, OrganizationID: created.OrganizationID})
}

// UpdateDepartment handles PUT /departments/{id}.
func (h *DirectoryHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req namePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.svc.UpdateDepartment(r.Context(), id, req.Name)
	if err != nil {
		respondError(h.log, w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, departmentPayload{ID: updated.ID, Name: updated.Name, OrganizationID: updated.OrganizationID})
}

// DeleteDepartment handles DELETE /departments/{id}.
func (h *DirectoryHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.svc.DeleteDepartment(r.Context(), id); err != nil {
		respondError(h.log, w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toExecutivePayload(e *domain.Executive) executivePayload {
	return executivePayload{
		ID:       e.ID,
		FullName: e.FullName,

		CPF:          e.CPF,
		RG:           e.RG,
		BirthDate:    e.BirthDate,
		Nationality:  e.Nationality,
		PlaceOfBirth: e.PlaceOfBirth,
		CivilStatus:  e.CivilStatus,

		WorkEmail:     e.WorkEmail,
		WorkPhone:     e.WorkPhone,
		Extension:     e.Extension,
		PersonalEmail: e.PersonalEmail,
		PersonalPhone: e.PersonalPhone,
		Address:       e.Address,

		JobTitle:             e.JobTitle,
		OrganizationID:       e.OrganizationID,
		DepartmentID:         e.DepartmentID,
		CostCenter:           e.CostCenter,
		EmployeeID:           e.EmployeeID,
		ReportsToExecutiveID: e.ReportsToExecutiveID,
		HireDate:             e.HireDate,
		WorkLocation:         e.WorkLocation,

		PhotoURL:  e.PhotoURL,
		Bio:       e.Bio,
		Education: e.Education,
		Languages: e.Languages,

		EmergencyContactName:     e.EmergencyContactName,
		EmergencyContactPhone:    e.EmergencyContactPhone,
		EmergencyContactRelation: e.EmergencyContactRelation,
	}
}

func fromExecutivePayload(p executivePayload) *domain.Executive {
	return &domain.Executive{
		FullName: p.FullName,

		CPF:          p.CPF,
		RG:           p.RG,
		BirthDate:    p.BirthDate,
		Nationality:  p.Nationality,
		PlaceOfBirth: p.PlaceOfBirth,
		CivilStatus:  p.CivilStatus,

		WorkEmail:     p.WorkEmail,
		WorkPhone:     p.WorkPhone,
		Extension:     p.Extension,
		PersonalEmail: p.PersonalEmail,
		PersonalPhone: p.PersonalPhone,
		Address:       p.Address,

		JobTitle:             p.JobTitle,
		OrganizationID:       p.OrganizationID,
		DepartmentID:         p.DepartmentID,
		CostCenter:           p.CostCenter,
		EmployeeID:           p.EmployeeID,
		ReportsToExecutiveID: p.ReportsToExecutiveID,
		HireDate:             p.HireDate,
		WorkLocation:         p.WorkLocation,

		PhotoURL:  p.PhotoURL,
		Bio:       p.Bio,
		Education: p.Education,
		Languages: p.Languages,

		EmergencyContactName:     p.EmergencyContactName,
		EmergencyContactPhone:    p.EmergencyContactPhone,
		EmergencyContactRelation: p.EmergencyContactRelation,
	}
}

func toSecretaryPayload(s *domain.Secretary) secretaryPayload {
	return secretaryPayload{
		ID:           s.ID,
		FullName:     s.FullName,
		Email:        s.Email,
		ExecutiveIDs: s.ExecutiveIDs,
	}
}
