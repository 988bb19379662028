package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/internal/repository"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
	"github.com/segyhp/edu-backoffice/pkg/utils"
)

// PayrollService computes what each teacher is owed for a period
type PayrollService struct {
	users         repository.UserRepository
	payroll       repository.PayrollRepository
	preserveBonus bool
	loc           *time.Location
	logger        *zap.Logger
	now           func() time.Time
}

func NewPayrollService(
	users repository.UserRepository,
	payroll repository.PayrollRepository,
	preserveBonus bool,
	loc *time.Location,
	logger *zap.Logger,
) *PayrollService {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollService{
		users:         users,
		payroll:       payroll,
		preserveBonus: preserveBonus,
		loc:           loc,
		logger:        logger,
		now:           time.Now,
	}
}

// ResolvePeriod picks explicit bounds first, then year and month, then the current month
func (s *PayrollService) ResolvePeriod(request *domain.CalculatePayrollRequest) (domain.Period, error) {
	if request.PeriodStart != nil || request.PeriodEnd != nil {
		if request.PeriodStart == nil || request.PeriodEnd == nil {
			return domain.Period{}, customError.WrapValidation("period_start and period_end must be given together")
		}
		if request.PeriodEnd.Before(request.PeriodStart.Time) {
			return domain.Period{}, customError.WrapValidation("period_end %s is before period_start %s", request.PeriodEnd, request.PeriodStart)
		}
		return domain.Period{Start: *request.PeriodStart, End: *request.PeriodEnd}, nil
	}

	now := s.now().In(s.loc)
	year, month := now.Year(), now.Month()
	if request.Year != 0 {
		year = request.Year
	}
	if request.Month != 0 {
		if request.Month < 1 || request.Month > 12 {
			return domain.Period{}, customError.WrapValidation("month must be between 1 and 12")
		}
		month = time.Month(request.Month)
	}

	return domain.MonthPeriod(year, month), nil
}

// CalculateForTeacher upserts the teacher's payment record for the period.
// The boolean reports whether the record was created rather than updated.
func (s *PayrollService) CalculateForTeacher(ctx context.Context, teacherID uuid.UUID, period domain.Period) (*domain.TeacherPayment, bool, error) {
	teacher, err := s.users.GetByID(ctx, teacherID)
	if err != nil {
		return nil, false, customError.FromStore(err)
	}
	if teacher.Role != domain.RoleTeacher {
		return nil, false, customError.WrapValidation("user %s is not a teacher", teacherID)
	}

	return s.calculate(ctx, teacher, period)
}

func (s *PayrollService) calculate(ctx context.Context, teacher *domain.User, period domain.Period) (*domain.TeacherPayment, bool, error) {
	profile, err := s.users.GetTeacherProfile(ctx, teacher.ID)
	if errors.Is(err, domain.ErrNoCompensationProfile) {
		return nil, false, customError.WrapValidation("teacher %s has no compensation profile", teacher.Username)
	}
	if err != nil {
		return nil, false, customError.FromStore(err)
	}

	from, to := period.LessonWindow(s.loc)
	groups, err := s.payroll.GroupLessons(ctx, teacher.ID, from, to)
	if err != nil {
		return nil, false, customError.FromStore(err)
	}

	lessons, amount, err := profile.Calculate(groups)
	if err != nil {
		return nil, false, customError.WrapValidation("teacher %s: %v", teacher.Username, err)
	}

	payment := &domain.TeacherPayment{
		ID:           uuid.New(),
		TeacherID:    teacher.ID,
		LessonsCount: lessons,
		Rate:         profile.PaymentAmount.Decimal,
		Payment:      amount,
		Date:         period.End,
	}

	created, err := s.payroll.Upsert(ctx, payment, s.preserveBonus)
	if err != nil {
		return nil, false, customError.FromStore(err)
	}

	s.logger.Info("teacher payment calculated",
		zap.String("teacher_id", teacher.ID.String()),
		zap.Stringer("period", period),
		zap.Int("lessons", lessons),
		zap.String("payment", amount.StringFixed(2)),
		zap.Bool("created", created),
	)

	return payment, created, nil
}

// CalculateBatch runs the calculation for every active teacher.
// A failing teacher becomes an error entry and the batch carries on.
func (s *PayrollService) CalculateBatch(ctx context.Context, period domain.Period) (*domain.PayrollBatch, error) {
	teachers, err := s.users.ListActiveByRole(ctx, domain.RoleTeacher)
	if err != nil {
		return nil, customError.FromStore(err)
	}

	batch := &domain.PayrollBatch{
		Period:  period.String(),
		Results: make([]domain.PayrollResult, 0, len(teachers)),
	}

	for _, teacher := range teachers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := domain.PayrollResult{TeacherID: teacher.ID, TeacherName: teacher.FullName()}

		payment, created, err := s.calculate(ctx, teacher, period)
		switch {
		case err != nil:
			result.Status = domain.PayrollStatusError
			result.Error = customError.Message(err)
			s.logger.Warn("teacher payment failed", zap.String("teacher_id", teacher.ID.String()), zap.Error(err))
		case created:
			result.Status = domain.PayrollStatusCreated
		default:
			result.Status = domain.PayrollStatusUpdated
		}
		if payment != nil {
			result.LessonsCount = payment.LessonsCount
			result.Payment = &payment.Payment
		}

		batch.Results = append(batch.Results, result)
	}
	batch.TeachersProcessed = len(batch.Results)

	return batch, nil
}

func (s *PayrollService) List(ctx context.Context, filter domain.TeacherPaymentFilter) ([]*domain.TeacherPayment, error) {
	payments, err := s.payroll.List(ctx, filter)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return payments, nil
}

// MarkPaid records a payout; the record is paid once payout covers payment plus bonus
func (s *PayrollService) MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.TeacherPayment, error) {
	amount = utils.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, customError.WrapValidation("amount must be at least 0.01")
	}

	payment, err := s.payroll.AddPaid(ctx, id, amount)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return payment, nil
}

func (s *PayrollService) SetBonus(ctx context.Context, id uuid.UUID, bonus decimal.Decimal) (*domain.TeacherPayment, error) {
	bonus = utils.RoundMoney(bonus)
	if bonus.IsNegative() {
		return nil, customError.WrapValidation("bonus must not be negative")
	}

	payment, err := s.payroll.SetBonus(ctx, id, bonus)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return payment, nil
}
