package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

type PayrollHandler struct {
	service   PayrollService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewPayrollHandler(service PayrollService, validate *validator.Validate, logger *zap.Logger) *PayrollHandler {
	return &PayrollHandler{service: service, validator: validate, logger: logger}
}

type teacherCalculation struct {
	Payment *domain.TeacherPayment `json:"payment"`
	Status  string                 `json:"status"`
}

// CalculateAll handles POST /payroll/calculate; an empty body means the current month
func (h *PayrollHandler) CalculateAll(w http.ResponseWriter, r *http.Request) {
	var req domain.CalculatePayrollRequest
	if err := decodeOptional(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	period, err := h.service.ResolvePeriod(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	batch, err := h.service.CalculateBatch(r.Context(), period)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, batch)
}

// CalculateTeacher handles POST /payroll/teachers/{id}/calculate
func (h *PayrollHandler) CalculateTeacher(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.CalculatePayrollRequest
	if err := decodeOptional(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	period, err := h.service.ResolvePeriod(&req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	payment, created, err := h.service.CalculateForTeacher(r.Context(), id, period)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	result := teacherCalculation{Payment: payment, Status: domain.PayrollStatusUpdated}
	if created {
		result.Status = domain.PayrollStatusCreated
		response.Created(w, result)
		return
	}
	response.Success(w, result)
}

// List handles GET /payroll?teacher_id=&is_paid=
func (h *PayrollHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.TeacherPaymentFilter
	var err error

	if filter.TeacherID, err = queryUUID(r, "teacher_id"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.IsPaid, err = queryBool(r, "is_paid"); err != nil {
		writeError(w, h.logger, err)
		return
	}

	payments, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, payments)
}

// Pay handles POST /payroll/{id}/pay
func (h *PayrollHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.PayTeacherRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	payment, err := h.service.MarkPaid(r.Context(), id, req.Amount)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, payment)
}

// SetBonus handles PUT /payroll/{id}/bonus
func (h *PayrollHandler) SetBonus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.SetBonusRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	payment, err := h.service.SetBonus(r.Context(), id, req.Bonus)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, payment)
}
