package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

// UserRepository defines the interface for users and teacher compensation profiles
type UserRepository interface {
	// Create inserts a user; a taken username is a validation error
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// ListActiveByRole returns active users of the role ordered by last and first name
	ListActiveByRole(ctx context.Context, role domain.Role) ([]*domain.User, error)

	// GetTeacherProfile returns domain.ErrNoCompensationProfile when the teacher has none
	GetTeacherProfile(ctx context.Context, userID uuid.UUID) (*domain.TeacherProfile, error)

	// UpsertTeacherProfile creates or replaces the profile of profile.UserID
	UpsertTeacherProfile(ctx context.Context, profile *domain.TeacherProfile) error
}

// CatalogRepository covers directions, groups, courses, months, lessons and classrooms
type CatalogRepository interface {
	CreateDirection(ctx context.Context, direction *domain.Direction) error
	CreateGroup(ctx context.Context, group *domain.Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error)
	ListGroups(ctx context.Context, teacherID *uuid.UUID) ([]*domain.Group, error)
	CreateCourse(ctx context.Context, course *domain.Course) error
	GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error)
	CreateMonth(ctx context.Context, month *domain.Month) error
	CreateLesson(ctx context.Context, lesson *domain.Lesson) error

	CreateClassroom(ctx context.Context, classroom *domain.Classroom) error
	GetClassroom(ctx context.Context, id uuid.UUID) (*domain.Classroom, error)
	ListClassrooms(ctx context.Context) ([]domain.Classroom, error)
	DeleteClassroom(ctx context.Context, id uuid.UUID) error
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice) error

	GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	// GetForUpdate locks the invoice row until the surrounding transaction ends
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error

	List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)

	// ListOverdue returns unpaid invoices whose due date is before asOf
	ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error)
}

// PaymentRepository defines the interface for payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error

	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error)

	// SumByInvoice returns the total paid against the invoice, zero when there are no payments
	SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error)

	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.StudentPayment, error)

	// MonthlyIncome returns one entry per month of the year that received payments
	MonthlyIncome(ctx context.Context, year int) ([]domain.MonthlyIncome, error)
}

// ScheduleRepository defines the interface for classroom bookings
type ScheduleRepository interface {
	// LockSlot serializes writers of the same classroom day and teacher day.
	// It must run inside a transaction.
	LockSlot(ctx context.Context, slot domain.Slot) error

	ClassroomBusy(ctx context.Context, slot domain.Slot) (bool, error)
	TeacherBusy(ctx context.Context, slot domain.Slot) (bool, error)

	Create(ctx context.Context, schedule *domain.Schedule) error
	Update(ctx context.Context, schedule *domain.Schedule) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleListItem, error)
}

// PayrollRepository defines the interface for teacher payment records
type PayrollRepository interface {
	// GroupLessons counts lessons dated in [from, to) per group taught by the teacher
	GroupLessons(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]domain.GroupLessons, error)

	// Upsert writes the computed fields of the (teacher, period) record and reports whether it was new.
	// Paid amount and paid flag are never touched; the bonus is reset unless preserveBonus is set.
	Upsert(ctx context.Context, payment *domain.TeacherPayment, preserveBonus bool) (bool, error)

	GetByID(ctx context.Context, id uuid.UUID) (*domain.TeacherPayment, error)
	List(ctx context.Context, filter domain.TeacherPaymentFilter) ([]*domain.TeacherPayment, error)

	// AddPaid increases paid_amount and sets is_paid once the amount due is covered
	AddPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.TeacherPayment, error)

	SetBonus(ctx context.Context, id uuid.UUID, bonus decimal.Decimal) (*domain.TeacherPayment, error)
}

// LeadRepository defines the interface for sales leads
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error)
	Update(ctx context.Context, lead *domain.Lead) error
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error)
	Stats(ctx context.Context, from, to *time.Time) (*domain.LeadStats, error)
}
