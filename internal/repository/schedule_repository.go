package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleColumns = `id, classroom_id, group_id, teacher_id, date, start_time, end_time, note`

func classroomLockKey(slot domain.Slot) string {
	return fmt.Sprintf("schedule:classroom:%s:%s", slot.ClassroomID, slot.Date)
}

func teacherLockKey(slot domain.Slot) string {
	return fmt.Sprintf("schedule:teacher:%s:%s", slot.TeacherID, slot.Date)
}

// LockSlot always takes the classroom key before the teacher key so concurrent writers cannot deadlock
func (r *scheduleRepository) LockSlot(ctx context.Context, slot domain.Slot) error {
	if _, ok := ctx.Value(txKey{}).(*sqlx.Tx); !ok {
		return errors.New("schedule slot lock requires a transaction")
	}

	for _, key := range []string{classroomLockKey(slot), teacherLockKey(slot)} {
		if _, err := conn(ctx, r.db).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
			return fmt.Errorf("lock %s: %w", key, err)
		}
	}

	return nil
}

// overlapPredicate treats bookings as half-open intervals so back-to-back slots do not collide
const overlapPredicate = `start_time < $4 AND end_time > $3`

func (r *scheduleRepository) ClassroomBusy(ctx context.Context, slot domain.Slot) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE classroom_id = $1 AND date = $2
			  AND ` + overlapPredicate + `
			  AND ($5::uuid IS NULL OR id <> $5)
		)
	`

	var busy bool
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &busy, query,
		slot.ClassroomID, slot.Date, slot.StartTime, slot.EndTime, slot.ExcludeID)
	return busy, err
}

func (r *scheduleRepository) TeacherBusy(ctx context.Context, slot domain.Slot) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedules
			WHERE teacher_id = $1 AND date = $2
			  AND ` + overlapPredicate + `
			  AND ($5::uuid IS NULL OR id <> $5)
		)
	`

	var busy bool
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &busy, query,
		slot.TeacherID, slot.Date, slot.StartTime, slot.EndTime, slot.ExcludeID)
	return busy, err
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		INSERT INTO schedules (id, classroom_id, group_id, teacher_id, date, start_time, end_time, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		schedule.ID,
		schedule.ClassroomID,
		schedule.GroupID,
		schedule.TeacherID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Note,
	)

	return err
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	query := `
		UPDATE schedules
		SET classroom_id = $2, group_id = $3, teacher_id = $4, date = $5, start_time = $6, end_time = $7, note = $8
		WHERE id = $1
	`

	result, err := conn(ctx, r.db).ExecContext(ctx, query,
		schedule.ID,
		schedule.ClassroomID,
		schedule.GroupID,
		schedule.TeacherID,
		schedule.Date,
		schedule.StartTime,
		schedule.EndTime,
		schedule.Note,
	)
	if err != nil {
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return customError.WrapNotFound("schedule", schedule.ID.String())
	}

	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	var schedule domain.Schedule
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &schedule, `SELECT `+scheduleColumns+` FROM schedules WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("schedule", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &schedule, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM schedules WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return customError.WrapNotFound("schedule", id.String())
	}

	return nil
}

func (r *scheduleRepository) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleListItem, error) {
	query := `
		SELECT s.id, s.classroom_id, s.group_id, s.teacher_id, s.date, s.start_time, s.end_time, s.note,
		       c.number AS classroom_number,
		       g.group_name,
		       TRIM(u.first_name || ' ' || u.last_name) AS teacher_name
		FROM schedules s
		JOIN classrooms c ON c.id = s.classroom_id
		JOIN groups g ON g.id = s.group_id
		JOIN users u ON u.id = s.teacher_id
		WHERE ($1::date IS NULL OR s.date = $1)
		  AND ($2::uuid IS NULL OR s.classroom_id = $2)
		  AND ($3::uuid IS NULL OR s.group_id = $3)
		  AND ($4::uuid IS NULL OR s.teacher_id = $4)
		ORDER BY s.date, c.number, s.start_time
	`

	var items []domain.ScheduleListItem
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &items, query,
		filter.Date,
		filter.ClassroomID,
		filter.GroupID,
		filter.TeacherID,
	)
	if err != nil {
		return nil, err
	}

	return items, nil
}
