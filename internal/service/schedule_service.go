package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/internal/repository"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

// ScheduleService books classrooms and teachers without double booking either
type ScheduleService struct {
	tx        repository.Transactor
	schedules repository.ScheduleRepository
	catalog   repository.CatalogRepository
	users     repository.UserRepository
	logger    *zap.Logger
}

func NewScheduleService(
	tx repository.Transactor,
	schedules repository.ScheduleRepository,
	catalog repository.CatalogRepository,
	users repository.UserRepository,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		tx:        tx,
		schedules: schedules,
		catalog:   catalog,
		users:     users,
		logger:    logger,
	}
}

func (s *ScheduleService) ValidateAndCreate(ctx context.Context, request *domain.ScheduleRequest) (*domain.Schedule, error) {
	if err := s.validate(ctx, request); err != nil {
		return nil, err
	}

	schedule := scheduleFromRequest(uuid.New(), request)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.checkConflicts(ctx, schedule.Slot()); err != nil {
			return err
		}
		return s.schedules.Create(ctx, schedule)
	})
	if err != nil {
		return nil, customError.FromStore(err)
	}

	s.logger.Info("lesson scheduled",
		zap.String("schedule_id", schedule.ID.String()),
		zap.String("classroom_id", schedule.ClassroomID.String()),
		zap.String("date", schedule.Date.String()),
		zap.Stringer("start", schedule.StartTime),
		zap.Stringer("end", schedule.EndTime),
	)

	return schedule, nil
}

// ValidateAndUpdate moves a booking; its own current slot never counts as a conflict
func (s *ScheduleService) ValidateAndUpdate(ctx context.Context, id uuid.UUID, request *domain.ScheduleRequest) (*domain.Schedule, error) {
	if err := s.validate(ctx, request); err != nil {
		return nil, err
	}

	schedule := scheduleFromRequest(id, request)

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.schedules.GetByID(ctx, id); err != nil {
			return err
		}

		slot := schedule.Slot()
		slot.ExcludeID = &id
		if err := s.checkConflicts(ctx, slot); err != nil {
			return err
		}
		return s.schedules.Update(ctx, schedule)
	})
	if err != nil {
		return nil, customError.FromStore(err)
	}

	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	return customError.FromStore(s.schedules.Delete(ctx, id))
}

func (s *ScheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleListItem, error) {
	items, err := s.schedules.List(ctx, filter)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return items, nil
}

// DailySchedule lays out every classroom's bookings for the day on hourly slots
func (s *ScheduleService) DailySchedule(ctx context.Context, date domain.Date) (*domain.DailySchedule, error) {
	classrooms, err := s.catalog.ListClassrooms(ctx)
	if err != nil {
		return nil, customError.FromStore(err)
	}

	bookings, err := s.schedules.List(ctx, domain.ScheduleFilter{Date: &date})
	if err != nil {
		return nil, customError.FromStore(err)
	}

	return domain.BuildDailySchedule(date, classrooms, bookings), nil
}

func (s *ScheduleService) validate(ctx context.Context, request *domain.ScheduleRequest) error {
	if request.Date.IsZero() {
		return customError.WrapValidation("date is required")
	}
	if !request.StartTime.Valid() || !request.EndTime.Valid() {
		return customError.WrapValidation("start_time and end_time must be within the day")
	}
	if request.StartTime >= request.EndTime {
		return customError.WrapValidation("start_time %s must be before end_time %s", request.StartTime, request.EndTime)
	}

	if _, err := s.catalog.GetClassroom(ctx, request.ClassroomID); err != nil {
		return customError.FromStore(err)
	}
	if _, err := s.catalog.GetGroup(ctx, request.GroupID); err != nil {
		return customError.FromStore(err)
	}

	teacher, err := s.users.GetByID(ctx, request.TeacherID)
	if err != nil {
		return customError.FromStore(err)
	}
	if teacher.Role != domain.RoleTeacher {
		return customError.WrapValidation("user %s is not a teacher", request.TeacherID)
	}

	return nil
}

// checkConflicts looks at the classroom first, then the teacher
func (s *ScheduleService) checkConflicts(ctx context.Context, slot domain.Slot) error {
	if err := s.schedules.LockSlot(ctx, slot); err != nil {
		return err
	}

	busy, err := s.schedules.ClassroomBusy(ctx, slot)
	if err != nil {
		return err
	}
	if busy {
		return customError.WrapConflict(customError.ErrClassroomBusy)
	}

	busy, err = s.schedules.TeacherBusy(ctx, slot)
	if err != nil {
		return err
	}
	if busy {
		return customError.WrapConflict(customError.ErrTeacherBusy)
	}

	return nil
}

func scheduleFromRequest(id uuid.UUID, request *domain.ScheduleRequest) *domain.Schedule {
	return &domain.Schedule{
		ID:          id,
		ClassroomID: request.ClassroomID,
		GroupID:     request.GroupID,
		TeacherID:   request.TeacherID,
		Date:        request.Date,
		StartTime:   request.StartTime,
		EndTime:     request.EndTime,
		Note:        request.Note,
	}
}
