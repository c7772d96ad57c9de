package services

import (
	"context"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// CustomerSvc defines operations on store-credit customers.
type CustomerSvc interface {
	// CreateCustomer registers a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorUserID string) (*domain.Customer, error)

	// GetCustomer retrieves a customer by ID.
	GetCustomer(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves all customers.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CreditQuoterSvc defines the read-only credit projection.
type CreditQuoterSvc interface {
	// QuoteCreditImpact projects the customer's pending total after a new
	// store-credit sale of the given amount. Exceeding the limit is a warning
	// carried in the quote, never an error.
	QuoteCreditImpact(ctx context.Context, customerID string, newAmount decimal.Decimal) (*domain.CreditQuote, error)
}

// DebtSvc defines operations on customer debts.
type DebtSvc interface {
	// CreateDebt records a store-credit sale: the debt and its STORE_CREDIT
	// ledger entry are committed together or not at all.
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest, creatorUserID string) (*domain.CustomerDebt, error)

	// ListDebtsByCustomer retrieves a customer's debts.
	ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.CustomerDebt, error)

	// MarkPaid settles a debt in full.
	MarkPaid(ctx context.Context, debtID string, requestingUserID string) (*domain.CustomerDebt, error)

	// PartialPayment reduces a debt in place. Fails with
	// apperrors.ErrInvalidAmount when the payment exceeds the remaining value.
	PartialPayment(ctx context.Context, debtID string, amount decimal.Decimal, requestingUserID string) (*domain.CustomerDebt, error)
}

// CreditSvcFacade combines all customer credit service interfaces.
type CreditSvcFacade interface {
	CustomerSvc
	CreditQuoterSvc
	DebtSvc
}
