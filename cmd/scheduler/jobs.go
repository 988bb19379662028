package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/pkg/utils"
)

type payrollRunner interface {
	CalculateBatch(ctx context.Context, period domain.Period) (*domain.PayrollBatch, error)
}

type overdueLister interface {
	ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error)
}

type locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (unlocker, error)
}

type unlocker interface {
	Release(ctx context.Context) error
}

// jobs holds everything the cron entries need
type jobs struct {
	payroll payrollRunner
	billing overdueLister
	locks   locker
	// lockTTL also bounds how long one run may take
	lockTTL time.Duration
	loc     *time.Location
	logger  *zap.Logger
	now     func() time.Time
}

// exclusive runs fn only when no other scheduler instance is running the same job
func (j *jobs) exclusive(name string, fn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.lockTTL)
		defer cancel()

		lock, err := j.locks.TryLock(ctx, name, j.lockTTL)
		if err != nil {
			j.logger.Error("acquiring job lock", zap.String("job", name), zap.Error(err))
			return
		}
		if lock == nil {
			j.logger.Info("job already running elsewhere", zap.String("job", name))
			return
		}
		defer func() {
			if err := lock.Release(context.Background()); err != nil {
				j.logger.Warn("releasing job lock", zap.String("job", name), zap.Error(err))
			}
		}()

		start := j.now()
		if err := fn(ctx); err != nil {
			j.logger.Error("job failed", zap.String("job", name), zap.Error(err))
			return
		}
		j.logger.Info("job finished", zap.String("job", name), zap.Duration("took", time.Since(start)))
	}
}

// monthlyPayroll settles the calendar month that just ended
func (j *jobs) monthlyPayroll(ctx context.Context) error {
	year, month := utils.PreviousMonth(j.now().In(j.loc))
	period := domain.MonthPeriod(year, month)

	batch, err := j.payroll.CalculateBatch(ctx, period)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range batch.Results {
		if r.Status == domain.PayrollStatusError {
			failed++
			j.logger.Warn("teacher payroll failed",
				zap.String("teacher_id", r.TeacherID.String()),
				zap.String("error", r.Error),
			)
		}
	}

	j.logger.Info("payroll calculated",
		zap.String("period", batch.Period),
		zap.Int("teachers", batch.TeachersProcessed),
		zap.Int("failed", failed),
	)
	return nil
}

// overdueSweep reports unpaid invoices whose due date has passed
func (j *jobs) overdueSweep(ctx context.Context) error {
	invoices, err := j.billing.ListOverdueInvoices(ctx, j.now().In(j.loc))
	if err != nil {
		return err
	}

	for _, inv := range invoices {
		j.logger.Warn("invoice overdue",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("student_id", inv.StudentID.String()),
			zap.String("due_date", inv.DueDate.String()),
			zap.String("status", string(inv.Status)),
		)
	}

	j.logger.Info("overdue sweep finished", zap.Int("overdue", len(invoices)))
	return nil
}
