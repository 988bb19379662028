package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) CreateInvoice(ctx context.Context, request *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockBillingService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	args := m.Called(ctx, invoiceID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordPaymentResponse), args.Error(1)
}

func (m *MockBillingService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.InvoiceSummary, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InvoiceSummary), args.Error(1)
}

func (m *MockBillingService) GetBalance(ctx context.Context, invoiceID uuid.UUID) (*domain.BalanceResponse, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceResponse), args.Error(1)
}

func (m *MockBillingService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockBillingService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockBillingService) StudentPaymentHistory(ctx context.Context, studentID uuid.UUID) ([]*domain.StudentPayment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StudentPayment), args.Error(1)
}

func (m *MockBillingService) MonthlyIncome(ctx context.Context, year int) ([]domain.MonthlyIncome, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyIncome), args.Error(1)
}

type MockScheduleService struct {
	mock.Mock
}

func (m *MockScheduleService) ValidateAndCreate(ctx context.Context, request *domain.ScheduleRequest) (*domain.Schedule, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleService) ValidateAndUpdate(ctx context.Context, id uuid.UUID, request *domain.ScheduleRequest) (*domain.Schedule, error) {
	args := m.Called(ctx, id, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScheduleService) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleListItem), args.Error(1)
}

func (m *MockScheduleService) DailySchedule(ctx context.Context, date domain.Date) (*domain.DailySchedule, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DailySchedule), args.Error(1)
}

type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) ResolvePeriod(request *domain.CalculatePayrollRequest) (domain.Period, error) {
	args := m.Called(request)
	return args.Get(0).(domain.Period), args.Error(1)
}

func (m *MockPayrollService) CalculateForTeacher(ctx context.Context, teacherID uuid.UUID, period domain.Period) (*domain.TeacherPayment, bool, error) {
	args := m.Called(ctx, teacherID, period)
	if args.Get(0) == nil {
		return nil, false, args.Error(2)
	}
	return args.Get(0).(*domain.TeacherPayment), args.Bool(1), args.Error(2)
}

func (m *MockPayrollService) CalculateBatch(ctx context.Context, period domain.Period) (*domain.PayrollBatch, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollBatch), args.Error(1)
}

func (m *MockPayrollService) List(ctx context.Context, filter domain.TeacherPaymentFilter) ([]*domain.TeacherPayment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeacherPayment), args.Error(1)
}

func (m *MockPayrollService) MarkPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.TeacherPayment, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherPayment), args.Error(1)
}

func (m *MockPayrollService) SetBonus(ctx context.Context, id uuid.UUID, bonus decimal.Decimal) (*domain.TeacherPayment, error) {
	args := m.Called(ctx, id, bonus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherPayment), args.Error(1)
}
