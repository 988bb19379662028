package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// InvoiceStatusFor derives the status from what was paid against what is owed.
// A fully discounted invoice is paid from the start.
func InvoiceStatusFor(paid, final decimal.Decimal) InvoiceStatus {
	switch {
	case paid.GreaterThanOrEqual(final):
		return InvoiceStatusPaid
	case paid.IsPositive():
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPending
	}
}

// Invoice represents a billing obligation of one student for one course
type Invoice struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	StudentID uuid.UUID       `json:"student_id" db:"student_id"`
	CourseID  uuid.UUID       `json:"course_id" db:"course_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	Discount  decimal.Decimal `json:"discount" db:"discount"`
	CreatedAt time.Time       `json:"date_created" db:"created_at"`
	DueDate   Date            `json:"due_date" db:"due_date"`
	Status    InvoiceStatus   `json:"status" db:"status"`
	Comment   string          `json:"comment" db:"comment"`
}

func (i *Invoice) FinalAmount() decimal.Decimal {
	return i.Amount.Sub(i.Discount).Round(2)
}

// Balance is negative when the invoice has been overpaid
func (i *Invoice) Balance(paid decimal.Decimal) decimal.Decimal {
	return i.FinalAmount().Sub(paid).Round(2)
}

// InvoiceSummary is an invoice together with its amounts recomputed from payments
type InvoiceSummary struct {
	*Invoice
	FinalAmount decimal.Decimal `json:"final_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Balance     decimal.Decimal `json:"balance"`
}

func NewInvoiceSummary(invoice *Invoice, paid decimal.Decimal) *InvoiceSummary {
	return &InvoiceSummary{
		Invoice:     invoice,
		FinalAmount: invoice.FinalAmount(),
		PaidAmount:  paid.Round(2),
		Balance:     invoice.Balance(paid),
	}
}

// DTOs for requests and responses

type CreateInvoiceRequest struct {
	StudentID uuid.UUID       `json:"student_id" validate:"required"`
	CourseID  uuid.UUID       `json:"course_id" validate:"required"`
	Amount    decimal.Decimal `json:"amount" validate:"gt=0"`
	Discount  decimal.Decimal `json:"discount" validate:"gte=0"`
	DueDate   Date            `json:"due_date" validate:"required"`
	Comment   string          `json:"comment"`
}

type InvoiceFilter struct {
	StudentID *uuid.UUID
	CourseID  *uuid.UUID
	Status    InvoiceStatus
	From      *time.Time
	To        *time.Time
}

type BalanceResponse struct {
	InvoiceID   uuid.UUID       `json:"invoice_id"`
	FinalAmount decimal.Decimal `json:"final_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Balance     decimal.Decimal `json:"balance"`
	Status      InvoiceStatus   `json:"status"`
}
