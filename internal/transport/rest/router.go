package rest

import "net/http"

// Handlers groups everything the router mounts.
type Handlers struct {
	Health    *HealthHandler
	Auth      *AuthHandler
	Agenda    *AgendaHandler
	Tasks     *TaskHandler
	Directory *DirectoryHandler
	Contacts  *ContactHandler
	Expenses  *ExpenseHandler
	ICal      *ICalHandler
}

// NewRouter mounts every handler under /api/v1 and returns the mux. Probes
// live at the root so load balancers reach them without the API prefix.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /livez", h.Health.Live)
	mux.HandleFunc("GET /readyz", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	mux.HandleFunc("POST /api/v1/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/v1/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Auth.Logout)
	mux.HandleFunc("POST /api/v1/auth/password", h.Auth.ChangePassword)

	mux.HandleFunc("POST /api/v1/events", h.Agenda.SaveEvent)
	mux.HandleFunc("GET /api/v1/events", h.Agenda.ListEvents)
	mux.HandleFunc("GET /api/v1/events/{id}", h.Agenda.GetEvent)
	mux.HandleFunc("PUT /api/v1/events/{id}", h.Agenda.SaveEvent)
	mux.HandleFunc("DELETE /api/v1/events/{id}", h.Agenda.DeleteEvent)
	mux.HandleFunc("GET /api/v1/event-types", h.Agenda.ListEventTypes)
	mux.HandleFunc("POST /api/v1/event-types", h.Agenda.CreateEventType)

	mux.HandleFunc("POST /api/v1/tasks", h.Tasks.SaveTask)
	mux.HandleFunc("GET /api/v1/tasks", h.Tasks.ListTasks)
	mux.HandleFunc("GET /api/v1/tasks/{id}", h.Tasks.GetTask)
	mux.HandleFunc("PUT /api/v1/tasks/{id}", h.Tasks.SaveTask)
	mux.HandleFunc("DELETE /api/v1/tasks/{id}", h.Tasks.DeleteTask)
	mux.HandleFunc("PATCH /api/v1/tasks/{id}/status", h.Tasks.UpdateStatus)

	mux.HandleFunc("GET /api/v1/executives", h.Directory.ListExecutives)
	mux.HandleFunc("POST /api/v1/executives", h.Directory.CreateExecutive)
	mux.HandleFunc("GET /api/v1/executives/{id}", h.Directory.GetExecutive)
	mux.HandleFunc("PUT /api/v1/executives/{id}", h.Directory.UpdateExecutive)
	mux.HandleFunc("DELETE /api/v1/executives/{id}", h.Directory.DeleteExecutive)
	mux.HandleFunc("GET /api/v1/executives/{id}/agenda.ics", h.ICal.Export)

	mux.HandleFunc("GET /api/v1/secretaries", h.Directory.ListSecretaries)
	mux.HandleFunc("POST /api/v1/secretaries", h.Directory.CreateSecretary)
	mux.HandleFunc("GET /api/v1/secretaries/{id}", h.Directory.GetSecretary)
	mux.HandleFunc("PUT /api/v1/secretaries/{id}", h.Directory.UpdateSecretary)
	mux.HandleFunc("DELETE /api/v1/secretaries/{id}", h.Directory.DeleteSecretary)
	mux.HandleFunc("PUT /api/v1/secretaries/{id}/executives/{executiveId}", h.Directory.AssignExecutive)
	mux.HandleFunc("DELETE /api/v1/secretaries/{id}/executives/{executiveId}", h.Directory.UnassignExecutive)

	mux.HandleFunc("GET /api/v1/organizations", h.Directory.ListOrganizations)
	mux.HandleFunc("POST /api/v1/organizations", h.Directory.CreateOrganization)
	mux.HandleFunc("GET /api/v1/organizations/{id}", h.Directory.GetOrganization)
	mux.HandleFunc("PUT /api/v1/organizations/{id}", h.Directory.UpdateOrganization)
	mux.HandleFunc("DELETE /api/v1/organizations/{id}", h.Directory.DeleteOrganization)
	mux.HandleFunc("GET /api/v1/organizations/{id}/departments", h.Directory.ListDepartments)
	mux.HandleFunc("POST /api/v1/organizations/{id}/departments", h.Directory.CreateDepartment)
	mux.HandleFunc("PUT /api/v1/departments/{id}", h.Directory.UpdateDepartment)
	mux.HandleFunc("DELETE /api/v1/departments/{id}", h.Directory.DeleteDepartment)

	mux.HandleFunc("GET /api/v1/contacts", h.Contacts.List)
	mux.HandleFunc("POST /api/v1/contacts", h.Contacts.Create)
	mux.HandleFunc("GET /api/v1/contacts/{id}", h.Contacts.Get)
	mux.HandleFunc("PUT /api/v1/contacts/{id}", h.Contacts.Update)
	mux.HandleFunc("DELETE /api/v1/contacts/{id}", h.Contacts.Delete)
	mux.HandleFunc("GET /api/v1/contact-types", h.Contacts.ListTypes)
	mux.HandleFunc("POST /api/v1/contact-types", h.Contacts.CreateType)

	mux.HandleFunc("GET /api/v1/expenses", h.Expenses.List)
	mux.HandleFunc("GET /api/v1/expenses/summary", h.Expenses.Summary)
	mux.HandleFunc("POST /api/v1/expenses", h.Expenses.Create)
	mux.HandleFunc("GET /api/v1/expenses/{id}", h.Expenses.Get)
	mux.HandleFunc("PUT /api/v1/expenses/{id}", h.Expenses.Update)
	mux.HandleFunc("DELETE /api/v1/expenses/{id}", h.Expenses.Delete)
	mux.HandleFunc("GET /api/v1/expense-categories", h.Expenses.ListCategories)
	mux.HandleFunc("POST /api/v1/expense-categories", h.Expenses.CreateCategory)

	return mux
}
