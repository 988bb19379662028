package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/internal/repository"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

// CatalogService maintains users and the course catalog the core operations refer to
type CatalogService struct {
	users   repository.UserRepository
	catalog repository.CatalogRepository
	logger  *zap.Logger
	now     func() time.Time
}

func NewCatalogService(users repository.UserRepository, catalog repository.CatalogRepository, logger *zap.Logger) *CatalogService {
	return &CatalogService{users: users, catalog: catalog, logger: logger, now: time.Now}
}

func (s *CatalogService) CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error) {
	if !request.Role.Valid() {
		return nil, customError.WrapValidation("unknown role %q", request.Role)
	}

	user := &domain.User{
		ID:         uuid.New(),
		Username:   request.Username,
		FirstName:  request.FirstName,
		LastName:   request.LastName,
		Phone:      request.Phone,
		Role:       request.Role,
		IsActive:   true,
		DateJoined: s.now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, customError.FromStore(err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.String()), zap.String("role", string(user.Role)))

	return user, nil
}

// SetCompensation creates or replaces the payment policy of a teacher
func (s *CatalogService) SetCompensation(ctx context.Context, teacherID uuid.UUID, request *domain.SetCompensationRequest) (*domain.TeacherProfile, error) {
	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, customError.WrapValidation("user %s is not a teacher", teacherID)
	}
	if request.PaymentAmount.Valid && request.PaymentAmount.Decimal.IsNegative() {
		return nil, customError.WrapValidation("payment_amount must not be negative")
	}

	period := request.PaymentPeriod
	if period == "" {
		period = domain.PaymentPeriodMonth
	}

	profile := &domain.TeacherProfile{
		ID:            uuid.New(),
		UserID:        teacherID,
		PaymentType:   request.PaymentType,
		PaymentAmount: request.PaymentAmount,
		PaymentPeriod: period,
	}

	if err := s.users.UpsertTeacherProfile(ctx, profile); err != nil {
		return nil, customError.FromStore(err)
	}

	return profile, nil
}

func (s *CatalogService) CreateDirection(ctx context.Context, request *domain.CreateDirectionRequest) (*domain.Direction, error) {
	direction := &domain.Direction{ID: uuid.New(), Name: request.Name}
	if err := s.catalog.CreateDirection(ctx, direction); err != nil {
		return nil, customError.FromStore(err)
	}
	return direction, nil
}

func (s *CatalogService) CreateGroup(ctx context.Context, request *domain.CreateGroupRequest) (*domain.Group, error) {
	if request.TeacherID != nil {
		teacher, err := s.users.GetByID(ctx, *request.TeacherID)
		if err != nil {
			return nil, customError.FromStore(err)
		}
		if teacher.Role != domain.RoleTeacher {
			return nil, customError.WrapValidation("user %s is not a teacher", *request.TeacherID)
		}
	}

	group := &domain.Group{
		ID:              uuid.New(),
		Name:            request.Name,
		DirectionID:     request.DirectionID,
		TeacherID:       request.TeacherID,
		Format:          request.Format,
		LessonDuration:  request.LessonDuration,
		LessonsPerMonth: request.LessonsPerMonth,
		CreatedAt:       s.now(),
	}

	if err := s.catalog.CreateGroup(ctx, group); err != nil {
		return nil, customError.FromStore(err)
	}
	return group, nil
}

func (s *CatalogService) ListGroups(ctx context.Context, teacherID *uuid.UUID) ([]*domain.Group, error) {
	groups, err := s.catalog.ListGroups(ctx, teacherID)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return groups, nil
}

func (s *CatalogService) CreateCourse(ctx context.Context, request *domain.CreateCourseRequest) (*domain.Course, error) {
	course := &domain.Course{ID: uuid.New(), GroupID: request.GroupID, CourseNumber: request.CourseNumber}
	if err := s.catalog.CreateCourse(ctx, course); err != nil {
		return nil, customError.FromStore(err)
	}
	return course, nil
}

func (s *CatalogService) CreateMonth(ctx context.Context, request *domain.CreateMonthRequest) (*domain.Month, error) {
	month := &domain.Month{ID: uuid.New(), CourseID: request.CourseID, MonthNumber: request.MonthNumber, Title: request.Title}
	if err := s.catalog.CreateMonth(ctx, month); err != nil {
		return nil, customError.FromStore(err)
	}
	return month, nil
}

func (s *CatalogService) CreateLesson(ctx context.Context, request *domain.CreateLessonRequest) (*domain.Lesson, error) {
	lesson := &domain.Lesson{
		ID:      uuid.New(),
		MonthID: request.MonthID,
		Title:   request.Title,
		Order:   request.Order,
		Date:    request.Date,
	}
	if err := s.catalog.CreateLesson(ctx, lesson); err != nil {
		return nil, customError.FromStore(err)
	}
	return lesson, nil
}

func (s *CatalogService) CreateClassroom(ctx context.Context, request *domain.CreateClassroomRequest) (*domain.Classroom, error) {
	classroom := &domain.Classroom{ID: uuid.New(), Number: request.Number, Capacity: request.Capacity}
	if err := s.catalog.CreateClassroom(ctx, classroom); err != nil {
		return nil, customError.FromStore(err)
	}
	return classroom, nil
}

func (s *CatalogService) ListClassrooms(ctx context.Context) ([]domain.Classroom, error) {
	classrooms, err := s.catalog.ListClassrooms(ctx)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return classrooms, nil
}

func (s *CatalogService) DeleteClassroom(ctx context.Context, id uuid.UUID) error {
	return customError.FromStore(s.catalog.DeleteClassroom(ctx, id))
}
