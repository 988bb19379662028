package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

type ScheduleHandler struct {
	service   ScheduleService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewScheduleHandler(service ScheduleService, validate *validator.Validate, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{service: service, validator: validate, logger: logger}
}

func (h *ScheduleHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.ScheduleRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	schedule, err := h.service.ValidateAndCreate(r.Context(), &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Created(w, schedule)
}

func (h *ScheduleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.ScheduleRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	schedule, err := h.service.ValidateAndUpdate(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, schedule)
}

func (h *ScheduleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}

// List handles GET /schedule?date=&classroom_id=&group_id=&teacher_id=
func (h *ScheduleHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter domain.ScheduleFilter
	var err error

	if filter.Date, err = queryDate(r, "date"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.ClassroomID, err = queryUUID(r, "classroom_id"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.GroupID, err = queryUUID(r, "group_id"); err != nil {
		writeError(w, h.logger, err)
		return
	}
	if filter.TeacherID, err = queryUUID(r, "teacher_id"); err != nil {
		writeError(w, h.logger, err)
		return
	}

	items, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, items)
}

// Daily handles GET /schedule/daily?date=YYYY-MM-DD
func (h *ScheduleHandler) Daily(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	if date == nil {
		writeError(w, h.logger, customError.WrapValidation("date is required"))
		return
	}

	day, err := h.service.DailySchedule(r.Context(), *date)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, day)
}
