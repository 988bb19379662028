package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

type paymentRepository struct {
	db *sqlx.DB
}

func NewPaymentRepository(db *sqlx.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	query := `
		INSERT INTO payments (id, invoice_id, amount, payment_type, paid_at, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		payment.ID,
		payment.InvoiceID,
		payment.Amount,
		payment.Method,
		payment.PaidAt,
		payment.Comment,
	)

	return err
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, payment_type, paid_at, comment
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at DESC
	`

	var payments []*domain.Payment
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &payments, query, invoiceID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &total,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE invoice_id = $1`,
		invoiceID,
	)
	if err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *paymentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.StudentPayment, error) {
	query := `
		SELECT p.id, p.invoice_id, i.course_id, p.amount, p.payment_type, p.paid_at, p.comment
		FROM payments p
		JOIN invoices i ON i.id = p.invoice_id
		WHERE i.student_id = $1
		ORDER BY p.paid_at DESC
	`

	var payments []*domain.StudentPayment
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &payments, query, studentID); err != nil {
		return nil, err
	}

	return payments, nil
}

func (r *paymentRepository) MonthlyIncome(ctx context.Context, year int) ([]domain.MonthlyIncome, error) {
	query := `
		SELECT EXTRACT(MONTH FROM paid_at)::int AS month, SUM(amount) AS income
		FROM payments
		WHERE EXTRACT(YEAR FROM paid_at)::int = $1
		GROUP BY 1
		ORDER BY 1
	`

	rows := []struct {
		Month  int             `db:"month"`
		Income decimal.Decimal `db:"income"`
	}{}
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &rows, query, year); err != nil {
		return nil, err
	}

	income := make([]domain.MonthlyIncome, 0, len(rows))
	for _, row := range rows {
		income = append(income, domain.MonthlyIncome{Year: year, Month: row.Month, Income: row.Income})
	}

	return income, nil
}
