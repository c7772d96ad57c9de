package pgsql

import (
	"context"
	"database/sql"
	"errors"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	"github.com/belafarma/backoffice/internal/models"
	"github.com/belafarma/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const customerColumns = `customer_id, name, phone, credit_limit, created_at, created_by, last_updated_at, last_updated_by`

const customerDebtColumns = `debt_id, customer_id, entry_id, description, total_value, status, due_date, paid_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxCreditRepository struct {
	BaseRepository
}

// newPgxCreditRepository creates a new repository for customers and their debts.
func newPgxCreditRepository(pool *pgxpool.Pool) portsrepo.CreditRepositoryWithTx {
	return &PgxCreditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCreditRepository implements portsrepo.CreditRepositoryWithTx
var _ portsrepo.CreditRepositoryWithTx = (*PgxCreditRepository)(nil)

// SaveCustomer persists a new customer.
func (r *PgxCreditRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)
	query := `
		INSERT INTO customers (customer_id, name, phone, credit_limit, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID, m.Name, m.Phone, m.CreditLimit,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by ID.
func (r *PgxCreditRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`
	row := r.Pool.QueryRow(ctx, query, customerID)
	m, err := scanCustomer(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}
	customer := mapping.ToDomainCustomer(*m)
	return &customer, nil
}

// ListCustomers retrieves all customers ordered by name.
func (r *PgxCreditRepository) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}
	return customers, nil
}

// FindDebtByID retrieves a debt by ID.
func (r *PgxCreditRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.CustomerDebt, error) {
	query := `SELECT ` + customerDebtColumns + ` FROM customer_debts WHERE debt_id = $1;`
	row := r.Pool.QueryRow(ctx, query, debtID)
	m, err := scanCustomerDebt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt by ID "+debtID, err)
	}
	debt := mapping.ToDomainCustomerDebt(*m)
	return &debt, nil
}

// ListDebtsByCustomer retrieves a customer's debts, newest first.
func (r *PgxCreditRepository) ListDebtsByCustomer(ctx context.Context, customerID string) ([]domain.CustomerDebt, error) {
	query := `SELECT ` + customerDebtColumns + ` FROM customer_debts WHERE customer_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query debts for customer "+customerID, err)
	}
	defer rows.Close()

	debts := []domain.CustomerDebt{}
	for rows.Next() {
		m, err := scanCustomerDebt(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan debt row", err)
		}
		debts = append(debts, mapping.ToDomainCustomerDebt(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating debt rows", err)
	}
	return debts, nil
}

// SumPendingByCustomer returns the total remaining value of the customer's
// pending debts.
func (r *PgxCreditRepository) SumPendingByCustomer(ctx context.Context, customerID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_value), 0) FROM customer_debts WHERE customer_id = $1 AND status = $2;`
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, customerID, models.DebtPending).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum pending debts for customer "+customerID, err)
	}
	return total, nil
}

// CreateDebtWithEntry persists a debt and its store-credit ledger entry in one
// transaction.
func (r *PgxCreditRepository) CreateDebtWithEntry(ctx context.Context, debt domain.CustomerDebt, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	modelEntry := mapping.ToModelLedgerEntry(entry)
	entryQuery := `
		INSERT INTO ledger_entries (
			entry_id, business_day, category, description, amount,
			customer_id, supplier_id, closed, closing_record_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, entryQuery,
		modelEntry.EntryID, modelEntry.BusinessDay, modelEntry.Category,
		modelEntry.Description, modelEntry.Amount,
		modelEntry.CustomerID, modelEntry.SupplierID,
		modelEntry.Closed, modelEntry.ClosingRecordID,
		modelEntry.CreatedAt, modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt, modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert store credit ledger entry "+modelEntry.EntryID, err)
	}

	m := mapping.ToModelCustomerDebt(debt)
	debtQuery := `
		INSERT INTO customer_debts (
			debt_id, customer_id, entry_id, description, total_value, status, due_date, paid_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, debtQuery,
		m.DebtID, m.CustomerID, m.EntryID, m.Description, m.TotalValue,
		m.Status, m.DueDate, m.PaidAt,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer debt "+m.DebtID, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateDebt updates a debt's remaining value, status and paid timestamp.
func (r *PgxCreditRepository) UpdateDebt(ctx context.Context, debt domain.CustomerDebt) error {
	m := mapping.ToModelCustomerDebt(debt)
	query := `
		UPDATE customer_debts
		SET total_value = $2, status = $3, paid_at = $4, last_updated_at = $5, last_updated_by = $6
		WHERE debt_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.DebtID, m.TotalValue, m.Status, m.PaidAt, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update debt "+m.DebtID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID, &m.Name, &m.Phone, &m.CreditLimit,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanCustomerDebt(row pgx.Row) (*models.CustomerDebt, error) {
	var m models.CustomerDebt
	var paidAt sql.NullTime
	err := row.Scan(
		&m.DebtID, &m.CustomerID, &m.EntryID, &m.Description, &m.TotalValue,
		&m.Status, &m.DueDate, &paidAt,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if paidAt.Valid {
		m.PaidAt = &paidAt.Time
	}
	return &m, nil
}
