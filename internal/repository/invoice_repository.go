package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

type invoiceRepository struct {
	db *sqlx.DB
}

func NewInvoiceRepository(db *sqlx.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

const invoiceColumns = `id, student_id, course_id, amount, discount, created_at, due_date, status, comment`

func (r *invoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	query := `
		INSERT INTO invoices (id, student_id, course_id, amount, discount, created_at, due_date, status, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		invoice.ID,
		invoice.StudentID,
		invoice.CourseID,
		invoice.Amount,
		invoice.Discount,
		invoice.CreatedAt,
		invoice.DueDate,
		invoice.Status,
		invoice.Comment,
	)

	return err
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, id)
}

func (r *invoiceRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	return r.get(ctx, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1 FOR UPDATE`, id)
}

func (r *invoiceRepository) get(ctx context.Context, query string, id uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &invoice, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("invoice", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &invoice, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	_, err := conn(ctx, r.db).ExecContext(ctx,
		`UPDATE invoices SET status = $2 WHERE id = $1`,
		id, status,
	)
	return err
}

func (r *invoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE ($1::uuid IS NULL OR student_id = $1)
		  AND ($2::uuid IS NULL OR course_id = $2)
		  AND ($3 = '' OR status = $3)
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)
		ORDER BY created_at DESC
	`

	var invoices []*domain.Invoice
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &invoices, query,
		filter.StudentID,
		filter.CourseID,
		string(filter.Status),
		filter.From,
		filter.To,
	)
	if err != nil {
		return nil, err
	}

	return invoices, nil
}

func (r *invoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE due_date < $1 AND status <> 'paid'
		ORDER BY due_date
	`

	var invoices []*domain.Invoice
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &invoices, query, domain.DateOf(asOf)); err != nil {
		return nil, err
	}

	return invoices, nil
}
