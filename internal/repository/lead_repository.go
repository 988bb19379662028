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

type leadRepository struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepository{db: db}
}

const leadColumns = `id, name, phone, email, course, status, source, comment, created_at, updated_at, next_contact_date`

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	query := `
		INSERT INTO leads (id, name, phone, email, course, status, source, comment, created_at, updated_at, next_contact_date)
		VALUES (:id, :name, :phone, :email, :course, :status, :source, :comment, :created_at, :updated_at, :next_contact_date)
	`

	_, err := sqlx.NamedExecContext(ctx, conn(ctx, r.db), query, lead)
	return err
}

func (r *leadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	var lead domain.Lead
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &lead, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("lead", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &lead, nil
}

func (r *leadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	query := `
		UPDATE leads
		SET status = :status, comment = :comment, next_contact_date = :next_contact_date, updated_at = :updated_at
		WHERE id = :id
	`

	result, err := sqlx.NamedExecContext(ctx, conn(ctx, r.db), query, lead)
	if err != nil {
		return err
	}

	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return customError.WrapNotFound("lead", lead.ID.String())
	}

	return nil
}

func (r *leadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	query := `
		SELECT ` + leadColumns + `
		FROM leads
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR source = $2)
		  AND ($3 = '' OR name ILIKE '%' || $3 || '%' OR phone ILIKE '%' || $3 || '%' OR email ILIKE '%' || $3 || '%')
		  AND ($4::timestamptz IS NULL OR created_at >= $4)
		  AND ($5::timestamptz IS NULL OR created_at < $5)
		ORDER BY created_at DESC
	`

	var leads []*domain.Lead
	err := sqlx.SelectContext(ctx, conn(ctx, r.db), &leads, query,
		string(filter.Status),
		filter.Source,
		filter.Search,
		filter.From,
		filter.To,
	)
	if err != nil {
		return nil, err
	}

	return leads, nil
}

func (r *leadRepository) Stats(ctx context.Context, from, to *time.Time) (*domain.LeadStats, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'new') AS new,
		       COUNT(*) FILTER (WHERE status = 'in_progress') AS in_progress,
		       COUNT(*) FILTER (WHERE status = 'registered') AS registered,
		       COUNT(*) FILTER (WHERE status = 'rejected') AS rejected,
		       COUNT(*) AS total
		FROM leads
		WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		  AND ($2::timestamptz IS NULL OR created_at < $2)
	`

	var stats domain.LeadStats
	if err := sqlx.GetContext(ctx, conn(ctx, r.db), &stats, query, from, to); err != nil {
		return nil, err
	}

	return &stats, nil
}
