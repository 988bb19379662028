package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/segyhp/edu-backoffice/internal/domain"
)

// Transactor runs fn inline; Calls counts units of work
type Transactor struct {
	Calls int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListActiveByRole(ctx context.Context, role domain.Role) ([]*domain.User, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetTeacherProfile(ctx context.Context, userID uuid.UUID) (*domain.TeacherProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherProfile), args.Error(1)
}

func (m *MockUserRepository) UpsertTeacherProfile(ctx context.Context, profile *domain.TeacherProfile) error {
	args := m.Called(ctx, profile)
	return args.Error(0)
}

type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) CreateDirection(ctx context.Context, direction *domain.Direction) error {
	return m.Called(ctx, direction).Error(0)
}

func (m *MockCatalogRepository) CreateGroup(ctx context.Context, group *domain.Group) error {
	return m.Called(ctx, group).Error(0)
}

func (m *MockCatalogRepository) GetGroup(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockCatalogRepository) ListGroups(ctx context.Context, teacherID *uuid.UUID) ([]*domain.Group, error) {
	args := m.Called(ctx, teacherID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Group), args.Error(1)
}

func (m *MockCatalogRepository) CreateCourse(ctx context.Context, course *domain.Course) error {
	return m.Called(ctx, course).Error(0)
}

func (m *MockCatalogRepository) GetCourse(ctx context.Context, id uuid.UUID) (*domain.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Course), args.Error(1)
}

func (m *MockCatalogRepository) CreateMonth(ctx context.Context, month *domain.Month) error {
	return m.Called(ctx, month).Error(0)
}

func (m *MockCatalogRepository) CreateLesson(ctx context.Context, lesson *domain.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockCatalogRepository) CreateClassroom(ctx context.Context, classroom *domain.Classroom) error {
	return m.Called(ctx, classroom).Error(0)
}

func (m *MockCatalogRepository) GetClassroom(ctx context.Context, id uuid.UUID) (*domain.Classroom, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Classroom), args.Error(1)
}

func (m *MockCatalogRepository) ListClassrooms(ctx context.Context) ([]domain.Classroom, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Classroom), args.Error(1)
}

func (m *MockCatalogRepository) DeleteClassroom(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *domain.Invoice) error {
	return m.Called(ctx, invoice).Error(0)
}

func (m *MockInvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.InvoiceStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockInvoiceRepository) List(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListOverdue(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	args := m.Called(ctx, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Invoice), args.Error(1)
}

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	return m.Called(ctx, payment).Error(0)
}

func (m *MockPaymentRepository) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) SumByInvoice(ctx context.Context, invoiceID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*domain.StudentPayment, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.StudentPayment), args.Error(1)
}

func (m *MockPaymentRepository) MonthlyIncome(ctx context.Context, year int) ([]domain.MonthlyIncome, error) {
	args := m.Called(ctx, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyIncome), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) LockSlot(ctx context.Context, slot domain.Slot) error {
	return m.Called(ctx, slot).Error(0)
}

func (m *MockScheduleRepository) ClassroomBusy(ctx context.Context, slot domain.Slot) (bool, error) {
	args := m.Called(ctx, slot)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) TeacherBusy(ctx context.Context, slot domain.Slot) (bool, error) {
	args := m.Called(ctx, slot)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *MockScheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	return m.Called(ctx, schedule).Error(0)
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Schedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Schedule), args.Error(1)
}

func (m *MockScheduleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockScheduleRepository) List(ctx context.Context, filter domain.ScheduleFilter) ([]domain.ScheduleListItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScheduleListItem), args.Error(1)
}

type MockPayrollRepository struct {
	mock.Mock
}

func (m *MockPayrollRepository) GroupLessons(ctx context.Context, teacherID uuid.UUID, from, to time.Time) ([]domain.GroupLessons, error) {
	args := m.Called(ctx, teacherID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GroupLessons), args.Error(1)
}

func (m *MockPayrollRepository) Upsert(ctx context.Context, payment *domain.TeacherPayment, preserveBonus bool) (bool, error) {
	args := m.Called(ctx, payment, preserveBonus)
	return args.Bool(0), args.Error(1)
}

func (m *MockPayrollRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.TeacherPayment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherPayment), args.Error(1)
}

func (m *MockPayrollRepository) List(ctx context.Context, filter domain.TeacherPaymentFilter) ([]*domain.TeacherPayment, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.TeacherPayment), args.Error(1)
}

func (m *MockPayrollRepository) AddPaid(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*domain.TeacherPayment, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherPayment), args.Error(1)
}

func (m *MockPayrollRepository) SetBonus(ctx context.Context, id uuid.UUID, bonus decimal.Decimal) (*domain.TeacherPayment, error) {
	args := m.Called(ctx, id, bonus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TeacherPayment), args.Error(1)
}

type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *domain.Lead) error {
	return m.Called(ctx, lead).Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter domain.LeadFilter) ([]*domain.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Lead), args.Error(1)
}

func (m *MockLeadRepository) Stats(ctx context.Context, from, to *time.Time) (*domain.LeadStats, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LeadStats), args.Error(1)
}

type MockReportCache struct {
	mock.Mock
}

func (m *MockReportCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	args := m.Called(ctx, key, dest)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportCache) Set(ctx context.Context, key string, value any) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *MockReportCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
