package handler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

// BillingService is the ledger behind the invoice, payment and report endpoints
type BillingService interface {
	CreateInvoice(ctx context.Context, request *domain.CreateInvoiceRequest) (*domain.Invoice, error)
	RecordPayment(ctx context.Context, invoiceID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error)
	GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.InvoiceSummary, error)
	GetBalance(ctx context.Context, invoiceID uuid.UUID) (*domain.BalanceResponse, error)
	ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error)
	ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error)
	StudentPaymentHistory(ctx context.Context, studentID uuid.UUID) ([]*domain.StudentPayment, error)
	MonthlyIncome(ctx context.Context, year int) ([]domain.MonthlyIncome, error)
}

type ScheduleService interface {
	ValidateAndCreate(ctx context.Context, request *domain.ScheduleRequest) (*domain.Schedule, error)
	ValidateAndUpdate(ctx context.Context, id uuid.UUID, request *domain.ScheduleRequest) (*domain.Schedule, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleListItem, error)
	DailySchedule(ctx context.Context, date domain.Date) (*domain.DailySchedule, error)
}

type PayrollService interface {
	ResolvePeriod(request *domain.CalculatePayrollRequest) (domain.Period, error)
	CalculateForTeacher(ctx context.Context, teacherID uuid.UUID, period domain.Period) (*domain.TeacherPayment, bool, error)
	CalculateBatch(ctx context.Context, period domain.Period) (*domain.PayrollBatch, error)
	List(ctx context.Context, filter domain.TeacherPaymentFilter) ([]*domain.TeacherPayment, error)
	MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.TeacherPayment, error)
	SetBonus(ctx context.Context, id uuid.UUID, bonus decimal.Decimal) (*domain.TeacherPayment, error)
}

type CatalogService interface {
	CreateUser(ctx context.Context, request *domain.CreateUserRequest) (*domain.User, error)
	SetCompensation(ctx context.Context, teacherID uuid.UUID, request *domain.SetCompensationRequest) (*domain.TeacherProfile, error)
	CreateDirection(ctx context.Context, request *domain.CreateDirectionRequest) (*domain.Direction, error)
	CreateGroup(ctx context.Context, request *domain.CreateGroupRequest) (*domain.Group, error)
	ListGroups(ctx context.Context, teacherID *uuid.UUID) ([]*domain.Group, error)
	CreateCourse(ctx context.Context, request *domain.CreateCourseRequest) (*domain.Course, error)
	CreateMonth(ctx context.Context, request *domain.CreateMonthRequest) (*domain.Month, error)
	CreateLesson(ctx context.Context, request *domain.CreateLessonRequest) (*domain.Lesson, error)
	CreateClassroom(ctx context.Context, request *domain.CreateClassroomRequest) (*domain.Classroom, error)
	ListClassrooms(ctx context.Context) ([]domain.Classroom, error)
	DeleteClassroom(ctx context.Context, id uuid.UUID) error
}

type LeadService interface {
	Create(ctx context.Context, request *domain.CreateLeadRequest) (*domain.Lead, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, request *domain.UpdateLeadStatusRequest) (*domain.Lead, error)
	List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error)
	Stats(ctx context.Context, from, to *time.Time) (*domain.LeadStats, error)
}
