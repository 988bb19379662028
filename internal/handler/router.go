package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/access"
	"github.com/segyhp/edu-backoffice/internal/middleware"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

type Handlers struct {
	Billing  *BillingHandler
	Schedule *ScheduleHandler
	Payroll  *PayrollHandler
	Catalog  *CatalogHandler
	Leads    *LeadHandler
	Health   *HealthHandler
}

// NewRouter mounts the public health checks and the authenticated /api/v1 tree.
// CORS wraps the whole router since mux skips middleware for unmatched preflight requests.
func NewRouter(h Handlers, auth *middleware.Authenticator, logger *zap.Logger) http.Handler {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(logger))

	router.HandleFunc("/health", h.Health.Health).Methods(http.MethodGet)
	router.HandleFunc("/health/ready", h.Health.Ready).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(auth.Authenticate)

	route := func(path string, resource access.Resource, handler http.HandlerFunc, methods ...string) {
		api.Handle(path, middleware.RequireAccess(resource)(handler)).Methods(methods...)
	}

	// Billing
	route("/invoices", access.ResourceInvoices, h.Billing.CreateInvoice, http.MethodPost)
	route("/invoices", access.ResourceInvoices, h.Billing.ListInvoices, http.MethodGet)
	route("/invoices/{id}", access.ResourceInvoices, h.Billing.GetInvoice, http.MethodGet)
	route("/invoices/{id}/balance", access.ResourceInvoices, h.Billing.GetBalance, http.MethodGet)
	route("/invoices/{id}/payments", access.ResourcePayments, h.Billing.RecordPayment, http.MethodPost)
	route("/invoices/{id}/payments", access.ResourcePayments, h.Billing.ListPayments, http.MethodGet)
	route("/students/{id}/payments", access.ResourcePayments, h.Billing.StudentPayments, http.MethodGet)

	// Schedule
	route("/schedule", access.ResourceSchedule, h.Schedule.Create, http.MethodPost)
	route("/schedule", access.ResourceSchedule, h.Schedule.List, http.MethodGet)
	route("/schedule/daily", access.ResourceSchedule, h.Schedule.Daily, http.MethodGet)
	route("/schedule/{id}", access.ResourceSchedule, h.Schedule.Update, http.MethodPut)
	route("/schedule/{id}", access.ResourceSchedule, h.Schedule.Delete, http.MethodDelete)

	// Payroll
	route("/payroll", access.ResourcePayroll, h.Payroll.List, http.MethodGet)
	route("/payroll/calculate", access.ResourcePayroll, h.Payroll.CalculateAll, http.MethodPost)
	route("/payroll/teachers/{id}/calculate", access.ResourcePayroll, h.Payroll.CalculateTeacher, http.MethodPost)
	route("/payroll/{id}/pay", access.ResourcePayroll, h.Payroll.Pay, http.MethodPost)
	route("/payroll/{id}/bonus", access.ResourcePayroll, h.Payroll.SetBonus, http.MethodPut)

	// Catalog
	route("/classrooms", access.ResourceClassrooms, h.Catalog.CreateClassroom(), http.MethodPost)
	route("/classrooms", access.ResourceClassrooms, h.Catalog.ListClassrooms, http.MethodGet)
	route("/classrooms/{id}", access.ResourceClassrooms, h.Catalog.DeleteClassroom, http.MethodDelete)
	route("/users", access.ResourceUsers, h.Catalog.CreateUser(), http.MethodPost)
	route("/teachers/{id}/compensation", access.ResourceUsers, h.Catalog.SetCompensation, http.MethodPut)
	route("/directions", access.ResourceCatalog, h.Catalog.CreateDirection(), http.MethodPost)
	route("/groups", access.ResourceCatalog, h.Catalog.CreateGroup(), http.MethodPost)
	route("/groups", access.ResourceCatalog, h.Catalog.ListGroups, http.MethodGet)
	route("/courses", access.ResourceCatalog, h.Catalog.CreateCourse(), http.MethodPost)
	route("/months", access.ResourceCatalog, h.Catalog.CreateMonth(), http.MethodPost)
	route("/lessons", access.ResourceCatalog, h.Catalog.CreateLesson(), http.MethodPost)

	// Leads and reports
	route("/leads", access.ResourceLeads, h.Leads.Create, http.MethodPost)
	route("/leads", access.ResourceLeads, h.Leads.List, http.MethodGet)
	route("/leads/stats", access.ResourceLeads, h.Leads.Stats, http.MethodGet)
	route("/leads/{id}/status", access.ResourceLeads, h.Leads.UpdateStatus, http.MethodPatch)
	route("/reports/monthly-income", access.ResourceReports, h.Billing.MonthlyIncome, http.MethodGet)

	return response.CORSMiddleware(router)
}
