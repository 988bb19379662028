package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

type BillingHandler struct {
	service   BillingService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewBillingHandler(service BillingService, validate *validator.Validate, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		service:   service,
		validator: validate,
		logger:    logger,
	}
}

// CreateInvoice handles POST /invoices
func (h *BillingHandler) CreateInvoice(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateInvoiceRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	invoice, err := h.service.CreateInvoice(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Created(w, invoice)
}

// ListInvoices handles GET /invoices?student_id=&course_id=&status=&from=&to=
func (h *BillingHandler) ListInvoices(w http.ResponseWriter, r *http.Request) {
	var filter domain.InvoiceFilter
	var err error

	if filter.StudentID, err = queryUUID(r, "student_id"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.CourseID, err = queryUUID(r, "course_id"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.From, err = queryTime(r, "from"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.To, err = queryTime(r, "to"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	filter.Status = domain.InvoiceStatus(r.URL.Query().Get("status"))

	invoices, err := h.service.ListInvoices(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, invoices)
}

// GetInvoice handles GET /invoices/{id}
func (h *BillingHandler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	invoice, err := h.service.GetInvoice(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, invoice)
}

// GetBalance handles GET /invoices/{id}/balance
func (h *BillingHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	balance, err := h.service.GetBalance(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, balance)
}

// RecordPayment handles POST /invoices/{id}/payments
func (h *BillingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.RecordPaymentRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.service.RecordPayment(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Created(w, result)
}

// ListPayments handles GET /invoices/{id}/payments
func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	payments, err := h.service.ListPayments(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, payments)
}

// StudentPayments handles GET /students/{id}/payments
func (h *BillingHandler) StudentPayments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	payments, err := h.service.StudentPaymentHistory(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, payments)
}

// MonthlyIncome handles GET /reports/monthly-income?year=
func (h *BillingHandler) MonthlyIncome(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	income, err := h.service.MonthlyIncome(r.Context(), year)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, income)
}
