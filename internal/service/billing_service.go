package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/segyhp/edu-backoffice/internal/cache"
	"github.com/segyhp/edu-backoffice/internal/domain"
	"github.com/segyhp/edu-backoffice/internal/repository"
	customError "github.com/segyhp/edu-backoffice/pkg/errors"
	"github.com/segyhp/edu-backoffice/pkg/utils"
)

// BillingService owns invoices and the payments applied to them
type BillingService struct {
	tx       repository.Transactor
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
	users    repository.UserRepository
	catalog  repository.CatalogRepository
	cache    ReportCache
	logger   *zap.Logger
	now      func() time.Time
}

func NewBillingService(
	tx repository.Transactor,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	reports ReportCache,
	logger *zap.Logger,
) *BillingService {
	if reports == nil {
		reports = noopCache{}
	}
	return &BillingService{
		tx:       tx,
		invoices: invoices,
		payments: payments,
		users:    users,
		catalog:  catalog,
		cache:    reports,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateInvoice issues a new invoice to a student for a course
func (s *BillingService) CreateInvoice(ctx context.Context, request *domain.CreateInvoiceRequest) (*domain.Invoice, error) {
	amount := utils.RoundMoney(request.Amount)
	discount := utils.RoundMoney(request.Discount)
	if !amount.IsPositive() {
		return nil, customError.WrapValidation("amount must be at least 0.01")
	}
	if discount.IsNegative() {
		return nil, customError.WrapValidation("discount must not be negative")
	}
	if discount.GreaterThan(amount) {
		return nil, customError.WrapValidation("discount %s exceeds amount %s", discount, amount)
	}
	if request.DueDate.IsZero() {
		return nil, customError.WrapValidation("due_date is required")
	}

	student, err := s.users.GetByID(ctx, request.StudentID)
	if errors.Is(err, customError.ErrNotFound) {
		return nil, customError.WrapValidation("student %s does not exist", request.StudentID)
	}
	if err != nil {
		return nil, customError.FromStore(err)
	}
	if student.Role != domain.RoleStudent {
		return nil, customError.WrapValidation("user %s is not a student", request.StudentID)
	}

	if request.CourseID == uuid.Nil {
		return nil, customError.WrapValidation("course is required")
	}
	if _, err := s.catalog.GetCourse(ctx, request.CourseID); err != nil {
		if errors.Is(err, customError.ErrNotFound) {
			return nil, customError.WrapValidation("course %s does not exist", request.CourseID)
		}
		return nil, customError.FromStore(err)
	}

	invoice := &domain.Invoice{
		ID:        uuid.New(),
		StudentID: request.StudentID,
		CourseID:  request.CourseID,
		Amount:    amount,
		Discount:  discount,
		CreatedAt: s.now(),
		DueDate:   request.DueDate,
		Comment:   request.Comment,
	}
	invoice.Status = domain.InvoiceStatusFor(decimal.Zero, invoice.FinalAmount())

	if err := s.invoices.Create(ctx, invoice); err != nil {
		return nil, customError.FromStore(err)
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("student_id", invoice.StudentID.String()),
		zap.String("final_amount", invoice.FinalAmount().StringFixed(2)),
	)

	return invoice, nil
}

// RecordPayment applies a payment to an invoice and recomputes its status in the same transaction
func (s *BillingService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, request *domain.RecordPaymentRequest) (*domain.RecordPaymentResponse, error) {
	amount := utils.RoundMoney(request.Amount)
	if !amount.IsPositive() {
		return nil, customError.WrapValidation("amount must be at least 0.01")
	}
	if !request.Method.Valid() {
		return nil, customError.WrapValidation("payment_type must be one of cash, transfer, online")
	}

	payment := &domain.Payment{
		InvoiceID: invoiceID,
		Amount:    amount,
		Method:    request.Method,
		Comment:   request.Comment,
	}

	var summary *domain.InvoiceSummary
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		invoice, err := s.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return err
		}

		payment.ID = uuid.New()
		payment.PaidAt = s.now()
		if err := s.payments.Create(ctx, payment); err != nil {
			return err
		}

		paid, err := s.payments.SumByInvoice(ctx, invoiceID)
		if err != nil {
			return err
		}

		status := domain.InvoiceStatusFor(paid, invoice.FinalAmount())
		if status != invoice.Status {
			if err := s.invoices.UpdateStatus(ctx, invoiceID, status); err != nil {
				return err
			}
			invoice.Status = status
		}

		summary = domain.NewInvoiceSummary(invoice, paid)
		return nil
	})
	if err != nil {
		return nil, customError.FromStore(err)
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("invalidating report cache", zap.Error(customError.WrapCacheError(err)))
	}

	s.logger.Info("payment recorded",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("amount", payment.Amount.StringFixed(2)),
		zap.String("status", string(summary.Status)),
		zap.String("balance", summary.Balance.StringFixed(2)),
	)

	return &domain.RecordPaymentResponse{Payment: payment, Invoice: summary}, nil
}

// GetInvoice returns the invoice with amounts recomputed from its payments
func (s *BillingService) GetInvoice(ctx context.Context, invoiceID uuid.UUID) (*domain.InvoiceSummary, error) {
	invoice, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, customError.FromStore(err)
	}

	paid, err := s.payments.SumByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, customError.FromStore(err)
	}

	return domain.NewInvoiceSummary(invoice, paid), nil
}

// GetBalance is negative when the invoice was overpaid
func (s *BillingService) GetBalance(ctx context.Context, invoiceID uuid.UUID) (*domain.BalanceResponse, error) {
	summary, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	return &domain.BalanceResponse{
		InvoiceID:   summary.ID,
		FinalAmount: summary.FinalAmount,
		PaidAmount:  summary.PaidAmount,
		Balance:     summary.Balance,
		Status:      domain.InvoiceStatusFor(summary.PaidAmount, summary.FinalAmount),
	}, nil
}

func (s *BillingService) GetStatus(ctx context.Context, invoiceID uuid.UUID) (domain.InvoiceStatus, error) {
	balance, err := s.GetBalance(ctx, invoiceID)
	if err != nil {
		return "", err
	}
	return balance.Status, nil
}

func (s *BillingService) ListInvoices(ctx context.Context, filter domain.InvoiceFilter) ([]*domain.Invoice, error) {
	invoices, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return invoices, nil
}

func (s *BillingService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*domain.Payment, error) {
	if _, err := s.invoices.GetByID(ctx, invoiceID); err != nil {
		return nil, customError.FromStore(err)
	}

	payments, err := s.payments.ListByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return payments, nil
}

// ListOverdueInvoices returns unpaid invoices due before the day of asOf
func (s *BillingService) ListOverdueInvoices(ctx context.Context, asOf time.Time) ([]*domain.Invoice, error) {
	invoices, err := s.invoices.ListOverdue(ctx, asOf)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return invoices, nil
}

// StudentPaymentHistory lists all payments of the student's invoices, newest first
func (s *BillingService) StudentPaymentHistory(ctx context.Context, studentID uuid.UUID) ([]*domain.StudentPayment, error) {
	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	if student.Role != domain.RoleStudent {
		return nil, customError.WrapValidation("user %s is not a student", studentID)
	}

	payments, err := s.payments.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	return payments, nil
}

// MonthlyIncome reports payments received per month of the year, served from cache when possible
func (s *BillingService) MonthlyIncome(ctx context.Context, year int) ([]domain.MonthlyIncome, error) {
	key := cache.MonthlyIncomeKey(year)

	var cached []domain.MonthlyIncome
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("reading report cache", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
	}
	if found {
		return cached, nil
	}

	received, err := s.payments.MonthlyIncome(ctx, year)
	if err != nil {
		return nil, customError.FromStore(err)
	}
	income := domain.FullYearIncome(year, received)

	if err := s.cache.Set(ctx, key, income); err != nil {
		s.logger.Warn("writing report cache", zap.String("key", key), zap.Error(customError.WrapCacheError(err)))
	}

	return income, nil
}
