package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	"github.com/belafarma/backoffice/internal/models"
	"github.com/belafarma/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const deliverySaleColumns = `sale_id, platform, description, gross_value, fee_percent, net_value, sale_date, due_date, status, reconciled_at, entry_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxDeliveryRepository struct {
	BaseRepository
}

// newPgxDeliveryRepository creates a new repository for delivery platform sales.
func newPgxDeliveryRepository(pool *pgxpool.Pool) portsrepo.DeliveryRepositoryWithTx {
	return &PgxDeliveryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDeliveryRepository implements portsrepo.DeliveryRepositoryWithTx
var _ portsrepo.DeliveryRepositoryWithTx = (*PgxDeliveryRepository)(nil)

// SaveSaleWithEntry persists a sale and its ledger entry in one transaction.
func (r *PgxDeliveryRepository) SaveSaleWithEntry(ctx context.Context, sale domain.DeliveryPlatformSale, entry domain.LedgerEntry) error {
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
		return apperrors.NewAppError(500, "failed to insert delivery sale ledger entry "+modelEntry.EntryID, err)
	}

	m := mapping.ToModelDeliverySale(sale)
	saleQuery := `
		INSERT INTO delivery_platform_sales (
			sale_id, platform, description, gross_value, fee_percent, net_value,
			sale_date, due_date, status, reconciled_at, entry_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err = tx.Exec(ctx, saleQuery,
		m.SaleID, m.Platform, m.Description, m.GrossValue, m.FeePercent, m.NetValue,
		m.SaleDate, m.DueDate, m.Status, m.ReconciledAt, m.EntryID,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert delivery platform sale "+m.SaleID, err)
	}

	return r.Commit(ctx, tx)
}

// FindSaleByID retrieves a sale by ID.
func (r *PgxDeliveryRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.DeliveryPlatformSale, error) {
	query := `SELECT ` + deliverySaleColumns + ` FROM delivery_platform_sales WHERE sale_id = $1;`
	m, err := scanDeliverySale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find delivery sale by ID "+saleID, err)
	}
	sale := mapping.ToDomainDeliverySale(*m)
	return &sale, nil
}

// ListSales retrieves sales, optionally filtered by status, ordered by due date.
func (r *PgxDeliveryRepository) ListSales(ctx context.Context, status *domain.DeliverySaleStatus) ([]domain.DeliveryPlatformSale, error) {
	query := `SELECT ` + deliverySaleColumns + ` FROM delivery_platform_sales`
	args := []interface{}{}
	if status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*status))
	}
	query += ` ORDER BY due_date, sale_date;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query delivery platform sales", err)
	}
	defer rows.Close()

	sales := []domain.DeliveryPlatformSale{}
	for rows.Next() {
		m, err := scanDeliverySale(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan delivery sale row", err)
		}
		sales = append(sales, mapping.ToDomainDeliverySale(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating delivery sale rows", err)
	}
	return sales, nil
}

// MarkReconciled sets a pending sale to RECONCILED. The update is conditional
// on the pending status so double reconciliation is rejected, not absorbed.
func (r *PgxDeliveryRepository) MarkReconciled(ctx context.Context, saleID string, reconciledAt time.Time, updatedBy string) error {
	query := `
		UPDATE delivery_platform_sales
		SET status = $2, reconciled_at = $3, last_updated_at = $3, last_updated_by = $4
		WHERE sale_id = $1 AND status = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, saleID, models.DeliveryReconciled, reconciledAt, updatedBy, models.DeliveryPending)
	if err != nil {
		return apperrors.NewAppError(500, "failed to reconcile delivery sale "+saleID, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM delivery_platform_sales WHERE sale_id = $1);`, saleID).Scan(&exists)
		if err != nil {
			return apperrors.NewAppError(500, "failed to check delivery sale "+saleID, err)
		}
		if exists {
			return apperrors.ErrAlreadyReconciled
		}
		return apperrors.ErrNotFound
	}
	return nil
}

func scanDeliverySale(row pgx.Row) (*models.DeliveryPlatformSale, error) {
	var m models.DeliveryPlatformSale
	var reconciledAt sql.NullTime
	err := row.Scan(
		&m.SaleID, &m.Platform, &m.Description,
		&m.GrossValue, &m.FeePercent, &m.NetValue,
		&m.SaleDate, &m.DueDate, &m.Status, &reconciledAt, &m.EntryID,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if reconciledAt.Valid {
		m.ReconciledAt = &reconciledAt.Time
	}
	return &m, nil
}
