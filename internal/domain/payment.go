package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodOnline   PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodTransfer, PaymentMethodOnline:
		return true
	}
	return false
}

// Payment is an immutable amount applied against one invoice
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    PaymentMethod   `json:"payment_type" db:"payment_type"`
	PaidAt    time.Time       `json:"date" db:"paid_at"`
	Comment   string          `json:"comment" db:"comment"`
}

type RecordPaymentRequest struct {
	Amount  decimal.Decimal `json:"amount" validate:"gt=0"`
	Method  PaymentMethod   `json:"payment_type" validate:"required,oneof=cash transfer online"`
	Comment string          `json:"comment"`
}

type RecordPaymentResponse struct {
	Payment *Payment        `json:"payment"`
	Invoice *InvoiceSummary `json:"invoice"`
}

// StudentPayment is one line of a student's payment history
type StudentPayment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id" db:"invoice_id"`
	CourseID  uuid.UUID       `json:"course_id" db:"course_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Method    PaymentMethod   `json:"payment_type" db:"payment_type"`
	PaidAt    time.Time       `json:"date" db:"paid_at"`
	Comment   string          `json:"comment" db:"comment"`
}

// MonthlyIncome is the sum of payments received in one calendar month
type MonthlyIncome struct {
	Year   int             `json:"year"`
	Name   string          `json:"month"`
	Month  int             `json:"month_number"`
	Income decimal.Decimal `json:"income"`
}

// FullYearIncome returns all twelve months of the year, zero where nothing was received
func FullYearIncome(year int, received []MonthlyIncome) []MonthlyIncome {
	byMonth := make(map[int]decimal.Decimal, len(received))
	for _, m := range received {
		byMonth[m.Month] = m.Income
	}

	months := make([]MonthlyIncome, 0, 12)
	for m := time.January; m <= time.December; m++ {
		income, ok := byMonth[int(m)]
		if !ok {
			income = decimal.Zero
		}
		months = append(months, MonthlyIncome{Year: year, Name: m.String(), Month: int(m), Income: income})
	}

	return months
}
