package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return sqlx.NewDb(db, "sqlmock"), mock
}

func newFastTransactor(db *sqlx.DB) *transactor {
	return &transactor{db: db, delays: []time.Duration{time.Millisecond, time.Millisecond}}
}

func TestTransactor_CommitsAndJoins(t *testing.T) {
	db, mock := newMockDB(t)
	tx := newFastTransactor(db)
	invoices := NewInvoiceRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE invoices SET status`).
		WithArgs(id, domain.InvoiceStatusPaid).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		// nested calls reuse the open transaction
		return tx.WithinTx(ctx, func(ctx context.Context) error {
			return invoices.UpdateStatus(ctx, id, domain.InvoiceStatusPaid)
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	tx := newFastTransactor(db)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_RetriesSerializationFailures(t *testing.T) {
	db, mock := newMockDB(t)
	tx := newFastTransactor(db)
	invoices := NewInvoiceRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE invoices SET status`).
		WillReturnError(&pq.Error{Code: pgerrcode.SerializationFailure})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE invoices SET status`).
		WillReturnError(&pq.Error{Code: pgerrcode.DeadlockDetected})
	mock.ExpectRollback()
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE invoices SET status`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	attempts := 0
	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		attempts++
		return invoices.UpdateStatus(ctx, id, domain.InvoiceStatusPartial)
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactor_DoesNotRetryOtherErrors(t *testing.T) {
	db, mock := newMockDB(t)
	tx := newFastTransactor(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	attempts := 0
	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		attempts++
		return &pq.Error{Code: pgerrcode.UniqueViolation}
	})

	assert.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_GetForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)
	id, student, course := uuid.New(), uuid.New(), uuid.New()
	created := time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "student_id", "course_id", "amount", "discount", "created_at", "due_date", "status", "comment"}).
		AddRow(id.String(), student.String(), course.String(), "10000.00", "1000.00", created, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), "pending", "")
	mock.ExpectQuery(`SELECT .* FROM invoices WHERE id = \$1 FOR UPDATE`).WithArgs(id).WillReturnRows(rows)

	invoice, err := repo.GetForUpdate(context.Background(), id)

	require.NoError(t, err)
	assert.Equal(t, student, invoice.StudentID)
	assert.True(t, invoice.FinalAmount().Equal(decimal.NewFromInt(9000)))
	assert.Equal(t, "2025-02-01", invoice.DueDate.String())
	assert.Equal(t, domain.InvoiceStatusPending, invoice.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvoiceRepository_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewInvoiceRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT .* FROM invoices WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrNotFound)
}

func TestPaymentRepository_SumByInvoice(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)
	id := uuid.New()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments WHERE invoice_id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow("100.00"))

	total, err := repo.SumByInvoice(context.Background(), id)

	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(100)))
}

func TestPaymentRepository_MonthlyIncome(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPaymentRepository(db)

	mock.ExpectQuery(`SELECT EXTRACT\(MONTH FROM paid_at\)`).
		WithArgs(2025).
		WillReturnRows(sqlmock.NewRows([]string{"month", "income"}).
			AddRow(1, "9000.00").
			AddRow(3, "1500.50"))

	income, err := repo.MonthlyIncome(context.Background(), 2025)

	require.NoError(t, err)
	require.Len(t, income, 2)
	assert.Equal(t, 3, income[1].Month)
	assert.Equal(t, 2025, income[1].Year)
	assert.True(t, income[1].Income.Equal(decimal.RequireFromString("1500.5")))
}

func TestScheduleRepository_LockSlot(t *testing.T) {
	slot := domain.Slot{
		ClassroomID: uuid.New(),
		TeacherID:   uuid.New(),
		Date:        domain.NewDate(2025, time.March, 3),
		StartTime:   domain.NewClockTime(10, 0),
		EndTime:     domain.NewClockTime(11, 0),
	}

	t.Run("requires a transaction", func(t *testing.T) {
		db, _ := newMockDB(t)
		err := NewScheduleRepository(db).LockSlot(context.Background(), slot)
		assert.Error(t, err)
	})

	t.Run("classroom before teacher", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewScheduleRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(classroomLockKey(slot)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`SELECT pg_advisory_xact_lock`).
			WithArgs(teacherLockKey(slot)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		err := newFastTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
			return repo.LockSlot(ctx, slot)
		})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestScheduleRepository_Busy(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewScheduleRepository(db)
	exclude := uuid.New()
	slot := domain.Slot{
		ClassroomID: uuid.New(),
		TeacherID:   uuid.New(),
		Date:        domain.NewDate(2025, time.March, 3),
		StartTime:   domain.NewClockTime(10, 0),
		EndTime:     domain.NewClockTime(11, 0),
		ExcludeID:   &exclude,
	}

	mock.ExpectQuery(`WHERE classroom_id = \$1 AND date = \$2\s+AND start_time < \$4 AND end_time > \$3\s+AND \(\$5::uuid IS NULL OR id <> \$5\)`).
		WithArgs(slot.ClassroomID, "2025-03-03", "10:00:00", "11:00:00", exclude).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`WHERE teacher_id = \$1 AND date = \$2\s+AND start_time < \$4 AND end_time > \$3\s+AND \(\$5::uuid IS NULL OR id <> \$5\)`).
		WithArgs(slot.TeacherID, "2025-03-03", "10:00:00", "11:00:00", exclude).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	busy, err := repo.ClassroomBusy(context.Background(), slot)
	require.NoError(t, err)
	assert.True(t, busy)

	busy, err = repo.TeacherBusy(context.Background(), slot)
	require.NoError(t, err)
	assert.False(t, busy)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRepository_ClassroomBusy_Intervals(t *testing.T) {
	// existing booking 10:00-11:00
	existingStart, existingEnd := domain.NewClockTime(10, 0), domain.NewClockTime(11, 0)

	tests := []struct {
		name       string
		start, end domain.ClockTime
		start3     string
		end4       string
		busy       bool
	}{
		{name: "touches the end", start: domain.NewClockTime(11, 0), end: domain.NewClockTime(12, 0), start3: "11:00:00", end4: "12:00:00", busy: false},
		{name: "touches the start", start: domain.NewClockTime(9, 0), end: domain.NewClockTime(10, 0), start3: "09:00:00", end4: "10:00:00", busy: false},
		{name: "overlaps the end", start: domain.NewClockTime(10, 30), end: domain.NewClockTime(11, 30), start3: "10:30:00", end4: "11:30:00", busy: true},
		{name: "overlaps the start", start: domain.NewClockTime(9, 30), end: domain.NewClockTime(10, 30), start3: "09:30:00", end4: "10:30:00", busy: true},
		{name: "inside", start: domain.NewClockTime(10, 15), end: domain.NewClockTime(10, 45), start3: "10:15:00", end4: "10:45:00", busy: true},
		{name: "covers", start: domain.NewClockTime(9, 0), end: domain.NewClockTime(12, 0), start3: "09:00:00", end4: "12:00:00", busy: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// the SQL predicate and the in-memory one must agree on every pair
			require.Equal(t, tt.busy, domain.IntervalsOverlap(existingStart, existingEnd, tt.start, tt.end))

			db, mock := newMockDB(t)
			slot := domain.Slot{
				ClassroomID: uuid.New(),
				Date:        domain.NewDate(2025, time.March, 3),
				StartTime:   tt.start,
				EndTime:     tt.end,
			}

			mock.ExpectQuery(`start_time < \$4 AND end_time > \$3`).
				WithArgs(slot.ClassroomID, "2025-03-03", tt.start3, tt.end4, sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.busy))

			busy, err := NewScheduleRepository(db).ClassroomBusy(context.Background(), slot)
			require.NoError(t, err)
			assert.Equal(t, tt.busy, busy)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScheduleRepository_DeleteMissing(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM schedules WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewScheduleRepository(db).Delete(context.Background(), id)

	assert.ErrorIs(t, err, customError.ErrNotFound)
}

func TestPayrollRepository_Upsert(t *testing.T) {
	tests := []struct {
		name          string
		preserveBonus bool
		inserted      bool
		bonus         string
	}{
		{"new record", false, true, "0.00"},
		{"recompute resets bonus", false, false, "0.00"},
		{"recompute keeps bonus", true, false, "250.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewPayrollRepository(db)
			existing := uuid.New()

			payment := &domain.TeacherPayment{
				ID:           uuid.New(),
				TeacherID:    uuid.New(),
				LessonsCount: 8,
				Rate:         decimal.NewFromInt(500),
				Payment:      decimal.NewFromInt(4000),
				Date:         domain.NewDate(2025, time.January, 31),
			}

			mock.ExpectQuery(`INSERT INTO teacher_payments .* ON CONFLICT \(teacher_id, period_date\) DO UPDATE`).
				WithArgs(payment.ID, payment.TeacherID, 8, "500", "4000", "2025-01-31", tt.preserveBonus).
				WillReturnRows(sqlmock.NewRows([]string{"id", "bonus", "paid_amount", "is_paid", "inserted"}).
					AddRow(existing.String(), tt.bonus, "1000.00", false, tt.inserted))

			inserted, err := repo.Upsert(context.Background(), payment, tt.preserveBonus)

			require.NoError(t, err)
			assert.Equal(t, tt.inserted, inserted)
			assert.Equal(t, existing, payment.ID)
			assert.True(t, payment.Bonus.Equal(decimal.RequireFromString(tt.bonus)))
			assert.True(t, payment.PaidAmount.Equal(decimal.NewFromInt(1000)))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPayrollRepository_GroupLessons(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPayrollRepository(db)
	teacher, g1, g2 := uuid.New(), uuid.New(), uuid.New()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM groups g\s+LEFT JOIN courses`).
		WithArgs(teacher, from, to).
		WillReturnRows(sqlmock.NewRows([]string{"group_id", "lesson_duration", "lessons"}).
			AddRow(g1.String(), 2, 8).
			AddRow(g2.String(), 1, 0))

	groups, err := repo.GroupLessons(context.Background(), teacher, from, to)

	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, domain.GroupLessons{GroupID: g1, LessonDuration: 2, Lessons: 8}, groups[0])
	assert.Equal(t, 0, groups[1].Lessons)
}

func TestUserRepository_TeacherProfileMissing(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`FROM teacher_profiles`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewUserRepository(db).GetTeacherProfile(context.Background(), id)

	assert.ErrorIs(t, err, domain.ErrNoCompensationProfile)
}

func TestUserRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	user := &domain.User{ID: uuid.New(), Username: "jdoe", Role: domain.RoleStudent, IsActive: true}

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: pgerrcode.UniqueViolation})

	err := NewUserRepository(db).Create(context.Background(), user)

	assert.ErrorIs(t, err, customError.ErrValidation)
}

func TestLeadRepository_Stats(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`COUNT\(\*\) FILTER`).
		WillReturnRows(sqlmock.NewRows([]string{"new", "in_progress", "registered", "rejected", "total"}).
			AddRow(3, 2, 4, 1, 10))

	stats, err := NewLeadRepository(db).Stats(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, domain.LeadStats{New: 3, InProgress: 2, Registered: 4, Rejected: 1, Total: 10}, *stats)
}
