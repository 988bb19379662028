package handler

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/pkg/response"
)

// CatalogHandler serves users, classrooms and the course catalog
type CatalogHandler struct {
	service   CatalogService
	validator *validator.Validate
	logger    *zap.Logger
}

func NewCatalogHandler(service CatalogService, validate *validator.Validate, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{service: service, validator: validate, logger: logger}
}

// create decodes T and hands it to fn, answering 201 with the result
func create[T any, R any](h *CatalogHandler, fn func(r *http.Request, req *T) (R, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req T
		if err := decode(w, r, h.validator, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}

		result, err := fn(r, &req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}

		response.Created(w, result)
	}
}

func (h *CatalogHandler) CreateUser() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateUserRequest) (*domain.User, error) {
		return h.service.CreateUser(r.Context(), req)
	})
}

func (h *CatalogHandler) CreateDirection() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateDirectionRequest) (*domain.Direction, error) {
		return h.service.CreateDirection(r.Context(), req)
	})
}

func (h *CatalogHandler) CreateGroup() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateGroupRequest) (*domain.Group, error) {
		return h.service.CreateGroup(r.Context(), req)
	})
}

func (h *CatalogHandler) CreateCourse() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateCourseRequest) (*domain.Course, error) {
		return h.service.CreateCourse(r.Context(), req)
	})
}

func (h *CatalogHandler) CreateMonth() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateMonthRequest) (*domain.Month, error) {
		return h.service.CreateMonth(r.Context(), req)
	})
}

func (h *CatalogHandler) CreateLesson() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateLessonRequest) (*domain.Lesson, error) {
		return h.service.CreateLesson(r.Context(), req)
	})
}

func (h *CatalogHandler) CreateClassroom() http.HandlerFunc {
	return create(h, func(r *http.Request, req *domain.CreateClassroomRequest) (*domain.Classroom, error) {
		return h.service.CreateClassroom(r.Context(), req)
	})
}

// SetCompensation handles PUT /teachers/{id}/compensation
func (h *CatalogHandler) SetCompensation(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	var req domain.SetCompensationRequest
	if err := decode(w, r, h.validator, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	profile, err := h.service.SetCompensation(r.Context(), id, &req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, profile)
}

// ListGroups handles GET /groups?teacher_id=
func (h *CatalogHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	teacherID, err := queryUUID(r, "teacher_id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	groups, err := h.service.ListGroups(r.Context(), teacherID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, groups)
}

func (h *CatalogHandler) ListClassrooms(w http.ResponseWriter, r *http.Request) {
	classrooms, err := h.service.ListClassrooms(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.Success(w, classrooms)
}

func (h *CatalogHandler) DeleteClassroom(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	if err := h.service.DeleteClassroom(r.Context(), id); err != nil {
		writeError(w, h.logger, err)
		return
	}

	response.NoContent(w)
}
