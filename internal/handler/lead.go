package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

type LeadHandler struct {
	service   LeadService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewLeadHandler(service LeadService, validate *validator.Validate, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{service: service, validator: validate, logger: logger}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateLeadRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	lead, err := h.service.Create(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Created(w, lead)
}

// UpdateStatus handles PATCH /leads/{id}/status
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.UpdateLeadStatusRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	lead, err := h.service.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, lead)
}

// List handles GET /leads?status=&source=&search=&from=&to=
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.LeadFilter{
		Status: domain.LeadStatus(q.Get("status")),
		Source: q.Get("source"),
		Search: q.Get("search"),
	}

	var err error
	if filter.From, err = queryTime(r, "from"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.To, err = queryTime(r, "to"); err != nil {
		writeError(w, h.logger, err)
		return
	}

	leads, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, leads)
}

// Stats handles GET /leads/stats?from=&to=
func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	from, err := queryTime(r, "from")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	to, err := queryTime(r, "to")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	stats, err := h.service.Stats(r.Context(), from, to)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, stats)
}
