package repositories

import (
	"context"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CustomerReader defines read operations for store-credit customers.
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by ID.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves all customers ordered by name.
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for store-credit customers.
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error
}

// DebtReader defines read operations for customer debts.
type DebtReader interface {
	// FindDebtByID retrieves a debt by ID.
	FindDebtByID(ctx context.Context, debtID string) (*domain.CustomerDebt, error)

	// ListDebtsByCustomer retrieves a customer's debts, newest first.
	ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.CustomerDebt, error)

	// SumPendingByCustomer returns the total remaining value of the customer's
	// pending debts.
	SumPendingByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error)
}

// DebtWriter defines write operations for customer debts.
type DebtWriter interface {
	// CreateDebtWithEntry persists a debt and its STORE_CREDIT ledger entry in
	// one transaction; if either half fails neither is committed.
	CreateDebtWithEntry(ctx context.Context, debt domain.CustomerDebt, entry domain.LedgerEntry) error

	// UpdateDebt updates a debt's remaining value, status and paid timestamp.
	UpdateDebt(ctx context.Context, debt domain.CustomerDebt) error
}

// CreditRepositoryFacade combines all customer credit repository interfaces.
type CreditRepositoryFacade interface {
	CustomerReader
	CustomerWriter
	DebtReader
	DebtWriter
}

// CreditRepositoryWithTx extends the facade with transaction capabilities.
type CreditRepositoryWithTx interface {
	CreditRepositoryFacade
	TransactionManager
}
