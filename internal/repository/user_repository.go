package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/segyhp/edu-backoffice/internal/domain"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, first_name, last_name, phone, role, is_active, date_joined`

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, first_name, last_name, phone, role, is_active, date_joined)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := conn(ctx, r.db).ExecContext(ctx, query,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Role,
		user.IsActive,
		user.DateJoined,
	)
	if isUniqueViolation(err) {
		return customError.WrapValidation("username %q is already taken", user.Username)
	}

	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	var user domain.User
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, customError.WrapNotFound("user", id.String())
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepository) ListActiveByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND is_active
		ORDER BY last_name, first_name, username
	`

	var users []*domain.User
	if err := sqlx.SelectContext(ctx, conn(ctx, r.db), &users, query, role); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) GetTeacherProfile(ctx context.Context, userID uuid.UUID) (*domain.TeacherProfile, error) {
	query := `
		SELECT id, user_id, payment_type, payment_amount, payment_period
		FROM teacher_profiles
		WHERE user_id = $1
	`

	var profile domain.TeacherProfile
	err := sqlx.GetContext(ctx, conn(ctx, r.db), &profile, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNoCompensationProfile
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *userRepository) UpsertTeacherProfile(ctx context.Context, profile *domain.TeacherProfile) error {
	query := `
		INSERT INTO teacher_profiles (id, user_id, payment_type, payment_amount, payment_period)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET payment_type = EXCLUDED.payment_type,
		    payment_amount = EXCLUDED.payment_amount,
		    payment_period = EXCLUDED.payment_period
		RETURNING id
	`

	return sqlx.GetContext(ctx, conn(ctx, r.db), &profile.ID, query,
		profile.ID,
		profile.UserID,
		profile.PaymentType,
		profile.PaymentAmount,
		profile.PaymentPeriod,
	)
}
