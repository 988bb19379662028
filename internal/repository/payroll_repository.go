package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

type payrollRepository struct {
	db *sqlx.DB
}

func NewPayrollRepository(db *sqlx.DB) PayrollRepository {
	return &payrollRepository{db: db}
}

const teacherPaymentColumns = `id, teacher_id, lessons_count, rate, payment, bonus, paid_amount, period_date, is_paid`

// GroupLessons lists every group of the teacher, including those without lessons in the window
func (r *payrollRepository) GroupLessons(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]domain.GroupLessons, error) {
	query := `
		SELECT g.id AS group_id, g.lesson_duration, COUNT(l.id) AS lessons
		FROM groups g
		LEFT JOIN courses c ON c.group_id = g.id
		LEFT JOIN months m ON m.course_id = c.id
		LEFT JOIN lessons l ON l.month_id = m.id AND l.lesson_date >= $2 AND l.lesson_date < $3
		WHERE g.teacher_id = $1
		GROUP BY g.id, g.lesson_duration
		ORDER BY g.id
	`

	var groups []domain.GroupLessons
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &groups, query, teacherID, from, to); err != nil {
		return nil, err
	}

	return groups, nil
}

func (r *payrollRepository) Upsert(ctx context.Context, payment *domain.TeacherPayment, preserveBonus bool) (bool, error) {
	query := `
		INSERT INTO teacher_payments (id, teacher_id, lessons_count, rate, payment, bonus, paid_amount, period_date, is_paid)
		VALUES ($1, $2, $3, $4, $5, 0, 0, $6, FALSE)
		ON CONFLICT (teacher_id, period_date) DO UPDATE
		SET lessons_count = EXCLUDED.lessons_count,
		    rate = EXCLUDED.rate,
		    payment = EXCLUDED.payment,
		    bonus = CASE WHEN $7 THEN teacher_payments.bonus ELSE 0 END
		RETURNING id, bonus, paid_amount, is_paid, (xmax = 0) AS inserted
	`

	var inserted bool
	err := conn(ctx, r.db).QueryRowxContext(ctx, query,
		payment.ID,
		payment.TeacherID,
		payment.LessonsCount,
		payment.Rate,
		payment.Payment,
		payment.Date,
		preserveBonus,
	).Scan(&payment.ID, &payment.Bonus, &payment.PaidAmount, &payment.IsPaid, &inserted)
	if err != nil {
		return false, err
	}

	return inserted, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TeacherPayment, error) {
	return r.get(ctx, `SELECT `+teacherPaymentColumns+` FROM teacher_payments WHERE id = $1`, id)
}

func (r *payrollRepository) get(ctx context.Context, query string, id uuid.UUID, args ...any) (*domain.TeacherPayment, error) {
	var payment domain.TeacherPayment
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &payment, query, append([]any{id}, args...)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("teacher payment", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (r *payrollRepository) List(ctx context.Context, filter domain.TeacherPaymentFilter) ([]*domain.TeacherPayment, error) {
	query := `
		SELECT ` + teacherPaymentColumns + `
		FROM teacher_payments
		WHERE ($1::uuid IS NULL OR teacher_id = $1)
		  AND ($2::boolean IS NULL OR is_paid = $2)
		ORDER BY period_date DESC, teacher_id
	`

	var payments []*domain.TeacherPayment
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &payments, query, filter.TeacherID, filter.IsPaid); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *payrollRepository) AddPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.TeacherPayment, error) {
	query := `
		UPDATE teacher_payments
		SET paid_amount = paid_amount + $2,
		    is_paid = paid_amount + $2 >= payment + bonus
		WHERE id = $1
		RETURNING ` + teacherPaymentColumns

	return r.get(ctx, query, id, amount)
}

func (r *payrollRepository) SetBonus(ctx context.Context, id uuid.UUID, bonus decimal.Decimal) (*domain.TeacherPayment, error) {
	query := `
		UPDATE teacher_payments
		SET bonus = $2,
		    is_paid = paid_amount >= payment + $2
		WHERE id = $1
		RETURNING ` + teacherPaymentColumns

	return r.get(ctx, query, id, bonus)
}
