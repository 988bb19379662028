package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

type catalogRepository struct {
	db *sqlx.DB
}

func NewCatalogRepository(db *sqlx.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// referenceError maps a missing parent row to a validation error
func referenceError(err error, what string) error {
	if isForeignKeyViolation(err) {
		return customError.WrapValidation("%s does not exist", what)
	}
	return err
}

func (r *catalogRepository) CreateDirection(ctx context.Context, direction *domain.Direction) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO directions (id, name) VALUES ($1, $2)`,
		direction.ID, direction.Name,
	)
	return err
}

func (r *catalogRepository) CreateGroup(ctx context.Context, group *domain.Group) error {
	query := `
		INSERT INTO groups (id, group_name, direction_id, teacher_id, format, lesson_duration, lessons_per_month, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		group.ID,
		group.Name,
		group.DirectionID,
		group.TeacherID,
		group.Format,
		group.LessonDuration,
		group.LessonsPerMonth,
		group.CreatedAt,
	)

	return referenceError(err, "direction or teacher")
}

const groupColumns = `id, group_name, direction_id, teacher_id, format, lesson_duration, lessons_per_month, created_at`

func (r *catalogRepository) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	var group domain.Group
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &group, `SELECT `+groupColumns+` FROM groups WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("group", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &group, nil
}

func (r *catalogRepository) ListGroups(ctx context.Context, teacherID *uuid.UUID) ([]*domain.Group, error) {
	query := `
		SELECT ` + groupColumns + `
		FROM groups
		WHERE ($1::uuid IS NULL OR teacher_id = $1)
		ORDER BY group_name
	`

	var groups []*domain.Group
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &groups, query, teacherID); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *catalogRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO courses (id, group_id, course_number) VALUES ($1, $2, $3)`,
		course.ID, course.GroupID, course.CourseNumber,
	)
	if isUniqueViolation(err) {
		return customError.WrapValidation("course %d already exists in this group", course.CourseNumber)
	}

	return referenceError(err, "group")
}

func (r *catalogRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	var course domain.Course
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &course,
		`SELECT id, group_id, course_number FROM courses WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("course", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *catalogRepository) CreateMonth(ctx context.Context, month *domain.Month) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO months (id, course_id, month_number, title) VALUES ($1, $2, $3, $4)`,
		month.ID, month.CourseID, month.MonthNumber, month.Title,
	)
	return referenceError(err, "course")
}

func (r *catalogRepository) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO lessons (id, month_id, title, lesson_order, lesson_date) VALUES ($1, $2, $3, $4, $5)`,
		lesson.ID, lesson.MonthID, lesson.Title, lesson.Order, lesson.Date,
	)
	return referenceError(err, "month")
}

func (r *catalogRepository) CreateClassroom(ctx context.Context, classroom *domain.Classroom) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`INSERT INTO classrooms (id, number, capacity) VALUES ($1, $2, $3)`,
		classroom.ID, classroom.Number, classroom.Capacity,
	)
	if isUniqueViolation(err) {
		return customError.WrapValidation("classroom %s already exists", classroom.Number)
	}

	return err
}

func (r *catalogRepository) GetClassroom(ctx context.Context, id uuid.UUID) (*domain.Classroom, error) {
	var classroom domain.Classroom
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &classroom,
		`SELECT id, number, capacity FROM classrooms WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("classroom", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &classroom, nil
}

func (r *catalogRepository) ListClassrooms(ctx context.Context) ([]domain.Classroom, error) {
	var classrooms []domain.Classroom
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &classrooms,
		`SELECT id, number, capacity FROM classrooms ORDER BY number`)
	if err != nil {
		return nil, err
	}

	return classrooms, nil
}

func (r *catalogRepository) DeleteClassroom(ctx context.Context, id uuid.UUID) error {
	result, err := conn(ctx, r.db).ExecContext(ctx, `DELETE FROM classrooms WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return customError.WrapNotFound("classroom", id.String())
	}

	return nil
}
