package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleAdministrator Role = "Administrator"
	RoleManager       Role = "Manager"
	RoleTeacher       Role = "Teacher"
	RoleStudent       Role = "Student"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleManager, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// User is any person known to the platform; Role decides what it may be referenced as
type User struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	FirstName  string    `json:"first_name" db:"first_name"`
	LastName   string    `json:"last_name" db:"last_name"`
	Phone      string    `json:"phone" db:"phone"`
	Role       Role      `json:"role" db:"role"`
	IsActive   bool      `json:"is_active" db:"is_active"`
	DateJoined time.Time `json:"date_joined" db:"date_joined"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type PaymentType string

const (
	PaymentTypeFixed  PaymentType = "fixed"
	PaymentTypeHourly PaymentType = "hourly"
)

type PaymentPeriod string

const (
	PaymentPeriodMonth     PaymentPeriod = "month"
	PaymentPeriodPerLesson PaymentPeriod = "per_lesson"
)

// TeacherProfile is the compensation policy of a teacher
type TeacherProfile struct {
	ID            uuid.UUID           `json:"id" db:"id"`
	UserID        uuid.UUID           `json:"user_id" db:"user_id"`
	PaymentType   PaymentType         `json:"payment_type" db:"payment_type"`
	PaymentAmount decimal.NullDecimal `json:"payment_amount" db:"payment_amount"`
	PaymentPeriod PaymentPeriod       `json:"payment_period" db:"payment_period"`
}

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Phone     string `json:"phone" validate:"max=20"`
	Role      Role   `json:"role" validate:"required,oneof=Administrator Manager Teacher Student"`
}

type SetCompensationRequest struct {
	PaymentType   PaymentType         `json:"payment_type" validate:"required,oneof=fixed hourly"`
	PaymentAmount decimal.NullDecimal `json:"payment_amount"`
	PaymentPeriod PaymentPeriod       `json:"payment_period" validate:"omitempty,oneof=month per_lesson"`
}
