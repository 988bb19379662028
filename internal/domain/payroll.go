package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/edu-backoffice/pkg/utils"
)

var (
	ErrNoCompensationProfile = errors.New("teacher profile not found")
	ErrRateNotSet            = errors.New("teacher payment amount is not set")
)

// TeacherPayment is the payroll record of one teacher for one period
type TeacherPayment struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	TeacherID    uuid.UUID       `json:"teacher_id" db:"teacher_id"`
	LessonsCount int             `json:"lessons_count" db:"lessons_count"`
	Rate         decimal.Decimal `json:"rate" db:"rate"`
	Payment      decimal.Decimal `json:"payment" db:"payment"`
	Bonus        decimal.Decimal `json:"bonus" db:"bonus"`
	PaidAmount   decimal.Decimal `json:"paid_amount" db:"paid_amount"`
	Date         Date            `json:"date" db:"period_date"`
	IsPaid       bool            `json:"is_paid" db:"is_paid"`
}

func (p *TeacherPayment) Due() decimal.Decimal {
	return utils.SumAmounts(p.Payment, p.Bonus)
}

func (p *TeacherPayment) Balance() decimal.Decimal {
	return utils.RoundMoney(p.Due().Sub(p.PaidAmount))
}

// Period is an inclusive range of calendar days
type Period struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

func (p Period) String() string {
	return fmt.Sprintf("%s - %s", p.Start, p.End)
}

// MonthPeriod covers the first through the last day of the month
func MonthPeriod(year int, month time.Month) Period {
	start, end := utils.MonthPeriod(year, month, time.UTC)
	return Period{Start: DateOf(start), End: DateOf(end)}
}

// LessonWindow returns the instants [from, to) covering every day of the period in loc
func (p Period) LessonWindow(loc *time.Location) (time.Time, time.Time) {
	from := time.Date(p.Start.Year(), p.Start.Month(), p.Start.Day(), 0, 0, 0, 0, loc)
	end := time.Date(p.End.Year(), p.End.Month(), p.End.Day(), 0, 0, 0, 0, loc)
	return from, utils.ExclusiveUpperBound(end)
}

// GroupLessons is the lesson count of one group taught by the teacher in a period
type GroupLessons struct {
	GroupID        uuid.UUID `db:"group_id"`
	LessonDuration int       `db:"lesson_duration"`
	Lessons        int       `db:"lessons"`
}

// Calculate returns the number of lessons and the amount due under the profile.
// A monthly fixed rate is paid once per period, however many groups the teacher has.
func (p *TeacherProfile) Calculate(groups []GroupLessons) (int, decimal.Decimal, error) {
	if !p.PaymentAmount.Valid {
		return 0, decimal.Zero, ErrRateNotSet
	}
	rate := p.PaymentAmount.Decimal

	total := 0
	payment := decimal.Zero
	for _, g := range groups {
		lessons := decimal.NewFromInt(int64(g.Lessons))
		switch p.PaymentType {
		case PaymentTypeHourly:
			payment = payment.Add(rate.Mul(lessons).Mul(decimal.NewFromInt(int64(g.LessonDuration))))
		case PaymentTypeFixed:
			if p.PaymentPeriod != PaymentPeriodMonth {
				payment = payment.Add(rate.Mul(lessons))
			}
		default:
			return 0, decimal.Zero, fmt.Errorf("unknown payment type %q", p.PaymentType)
		}
		total += g.Lessons
	}

	if p.PaymentType == PaymentTypeFixed && p.PaymentPeriod == PaymentPeriodMonth && len(groups) > 0 {
		payment = rate
	}

	return total, payment.Round(2), nil
}

const (
	PayrollStatusCreated = "created"
	PayrollStatusUpdated = "updated"
	PayrollStatusError   = "error"
)

// PayrollResult is one line of a payroll batch
type PayrollResult struct {
	TeacherID    uuid.UUID        `json:"teacher_id"`
	TeacherName  string           `json:"teacher_name,omitempty"`
	LessonsCount int              `json:"lessons_count"`
	Payment      *decimal.Decimal `json:"payment,omitempty"`
	Status       string           `json:"status"`
	Error        string           `json:"error,omitempty"`
}

type PayrollBatch struct {
	Period            string          `json:"period"`
	TeachersProcessed int             `json:"teachers_processed"`
	Results           []PayrollResult `json:"results"`
}

type CalculatePayrollRequest struct {
	Year  int `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	Month int `json:"month" validate:"omitempty,gte=1,lte=12"`
	// Explicit bounds win over year/month when both are given
	PeriodStart *Date `json:"period_start"`
	PeriodEnd   *Date `json:"period_end"`
}

type TeacherPaymentFilter struct {
	TeacherID *uuid.UUID
	IsPaid    *bool
}

type PayTeacherRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
}

type SetBonusRequest struct {
	Bonus decimal.Decimal `json:"bonus" validate:"gte=0"`
}
