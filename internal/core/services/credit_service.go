package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/belafarma/backoffice/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultDebtTermDays is the due date offset applied when a store-credit sale
// does not carry an explicit due date.
const defaultDebtTermDays = 30

// CreditService handles business logic for store-credit customers and their
// debts.
type CreditService struct {
	creditRepo portsrepo.CreditRepositoryFacade
}

// NewCreditService creates a new CreditService.
func NewCreditService(cr portsrepo.CreditRepositoryFacade) portssvc.CreditSvcFacade {
	return &CreditService{creditRepo: cr}
}

// Ensure CreditService implements the portssvc.CreditSvcFacade interface
var _ portssvc.CreditSvcFacade = (*CreditService)(nil)

// CreateCustomer registers a new customer.
func (s *CreditService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: credit limit cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now()
	customer := domain.Customer{
		CustomerID:  uuid.NewString(),
		Name:        req.Name,
		Phone:       req.Phone,
		CreditLimit: req.CreditLimit,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.creditRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to save customer", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomer retrieves a customer by ID.
func (s *CreditService) GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error) {
	customer, err := s.creditRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get customer %s: %w", customerID, err)
	}
	return customer, nil
}

// ListCustomers retrieves all customers.
func (s *CreditService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.creditRepo.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	if customers == nil {
		return []domain.Customer{}, nil
	}
	return customers, nil
}

// QuoteCreditImpact projects the customer's pending total after a new
// store-credit sale of the given amount. Exceeding the limit is a warning
// carried in the quote, never an error.
func (s *CreditService) QuoteCreditImpact(ctx context.Context, customerID string, newAmount decimal.Decimal) (*domain.CreditQuote, error) {
	if !newAmount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
	}

	customer, err := s.creditRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	pending, err := s.creditRepo.SumPendingByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending debts for quote: %w", err)
	}

	projected := pending.Add(newAmount)
	return &domain.CreditQuote{
		CustomerID:       customerID,
		PendingTotal:     pending,
		ProjectedTotal:   projected,
		CreditLimit:      customer.CreditLimit,
		WouldExceedLimit: customer.CreditLimit.IsPositive() && projected.GreaterThan(customer.CreditLimit),
	}, nil
}

// CreateDebt records a store-credit sale: the debt and its STORE_CREDIT ledger
// entry are committed together or not at all.
func (s *CreditService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest, creatorUserID string) (*domain.CustomerDebt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
	}

	customer, err := s.creditRepo.FindCustomerByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	day := domain.BusinessDay(now)
	dueDate := day.AddDate(0, 0, defaultDebtTermDays)
	if req.DueDate != nil {
		dueDate = domain.BusinessDay(*req.DueDate)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	customerID := customer.CustomerID
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		BusinessDay: day,
		Category:    domain.CategoryStoreCredit,
		Description: req.Description,
		Amount:      req.Amount,
		CustomerID:  &customerID,
		AuditFields: audit,
	}

	debt := domain.CustomerDebt{
		DebtID:      uuid.NewString(),
		CustomerID:  customerID,
		EntryID:     entry.EntryID,
		Description: req.Description,
		TotalValue:  req.Amount,
		Status:      domain.DebtPending,
		DueDate:     dueDate,
		AuditFields: audit,
	}

	if err := s.creditRepo.CreateDebtWithEntry(ctx, debt, entry); err != nil {
		logger.Error("Failed to save debt with ledger entry", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	logger.Info("Debt created", slog.String("debt_id", debt.DebtID), slog.String("customer_id", customerID), slog.String("entry_id", entry.EntryID))
	return &debt, nil
}

// ListDebtsByCustomer retrieves a customer's debts.
func (s *CreditService) ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.CustomerDebt, error) {
	if _, err := s.creditRepo.FindCustomerByID(ctx, customerID); err != nil {
		return nil, err
	}
	debts, err := s.creditRepo.ListDebtsByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list debts for customer %s: %w", customerID, err)
	}
	if debts == nil {
		return []domain.CustomerDebt{}, nil
	}
	return debts, nil
}

// MarkPaid settles a debt in full.
func (s *CreditService) MarkPaid(ctx context.Context, debtID string, requestingUserID string) (*domain.CustomerDebt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debt, err := s.creditRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.Status == domain.DebtPaid {
		return nil, fmt.Errorf("%w: debt %s is already paid", apperrors.ErrInvalidState, debtID)
	}

	now := time.Now()
	debt.TotalValue = decimal.Zero
	debt.Status = domain.DebtPaid
	debt.PaidAt = &now
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = requestingUserID

	if err := s.creditRepo.UpdateDebt(ctx, *debt); err != nil {
		logger.Error("Failed to mark debt paid", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, fmt.Errorf("failed to mark debt %s paid: %w", debtID, err)
	}

	logger.Info("Debt marked paid", slog.String("debt_id", debtID))
	return debt, nil
}

// PartialPayment reduces a debt in place. Paying the exact remaining value
// settles the debt.
func (s *CreditService) PartialPayment(ctx context.Context, debtID string, amount decimal.Decimal, requestingUserID string) (*domain.CustomerDebt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: payment must be positive", apperrors.ErrInvalidAmount)
	}

	debt, err := s.creditRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.Status == domain.DebtPaid {
		return nil, fmt.Errorf("%w: debt %s is already paid", apperrors.ErrInvalidState, debtID)
	}
	if amount.GreaterThan(debt.TotalValue) {
		return nil, fmt.Errorf("%w: payment %s exceeds remaining value %s",
			apperrors.ErrInvalidAmount, amount.String(), debt.TotalValue.String())
	}

	now := time.Now()
	debt.TotalValue = debt.TotalValue.Sub(amount)
	if debt.TotalValue.IsZero() {
		debt.Status = domain.DebtPaid
		debt.PaidAt = &now
	}
	debt.LastUpdatedAt = now
	debt.LastUpdatedBy = requestingUserID

	if err := s.creditRepo.UpdateDebt(ctx, *debt); err != nil {
		logger.Error("Failed to apply partial payment", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, fmt.Errorf("failed to apply payment on debt %s: %w", debtID, err)
	}

	logger.Info("Partial payment applied", slog.String("debt_id", debtID), slog.String("remaining", debt.TotalValue.String()))
	return debt, nil
}
