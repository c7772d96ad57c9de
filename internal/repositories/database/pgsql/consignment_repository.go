package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	"github.com/belafarma/backoffice/internal/models"
	"github.com/belafarma/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const supplierColumns = `supplier_id, name, phone, created_at, created_by, last_updated_at, last_updated_by`

const consignmentProductColumns = `product_id, supplier_id, name, cost_price, sale_price, current_stock, sold_qty, created_at, created_by, last_updated_at, last_updated_by`

type PgxConsignmentRepository struct {
	BaseRepository
}

// newPgxConsignmentRepository creates a new repository for suppliers and
// consignment products.
func newPgxConsignmentRepository(pool *pgxpool.Pool) portsrepo.ConsignmentRepositoryWithTx {
	return &PgxConsignmentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxConsignmentRepository implements portsrepo.ConsignmentRepositoryWithTx
var _ portsrepo.ConsignmentRepositoryWithTx = (*PgxConsignmentRepository)(nil)

// SaveSupplier persists a new supplier.
func (r *PgxConsignmentRepository) SaveSupplier(ctx context.Context, supplier domain.Supplier) error {
	m := mapping.ToModelSupplier(supplier)
	query := `
		INSERT INTO suppliers (supplier_id, name, phone, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.SupplierID, m.Name, m.Phone,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert supplier "+m.SupplierID, err)
	}
	return nil
}

// FindSupplierByID retrieves a supplier by ID.
func (r *PgxConsignmentRepository) FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers WHERE supplier_id = $1;`
	var m models.Supplier
	err := r.Pool.QueryRow(ctx, query, supplierID).Scan(
		&m.SupplierID, &m.Name, &m.Phone,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find supplier by ID "+supplierID, err)
	}
	supplier := mapping.ToDomainSupplier(m)
	return &supplier, nil
}

// ListSuppliers retrieves all suppliers ordered by name.
func (r *PgxConsignmentRepository) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	query := `SELECT ` + supplierColumns + ` FROM suppliers ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query suppliers", err)
	}
	defer rows.Close()

	suppliers := []domain.Supplier{}
	for rows.Next() {
		var m models.Supplier
		if err := rows.Scan(
			&m.SupplierID, &m.Name, &m.Phone,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan supplier row", err)
		}
		suppliers = append(suppliers, mapping.ToDomainSupplier(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating supplier rows", err)
	}
	return suppliers, nil
}

// SaveProduct persists a new product.
func (r *PgxConsignmentRepository) SaveProduct(ctx context.Context, product domain.ConsignmentProduct) error {
	m := mapping.ToModelConsignmentProduct(product)
	query := `
		INSERT INTO consignment_products (
			product_id, supplier_id, name, cost_price, sale_price, current_stock, sold_qty,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ProductID, m.SupplierID, m.Name, m.CostPrice, m.SalePrice,
		m.CurrentStock, m.SoldQty,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert consignment product "+m.ProductID, err)
	}
	return nil
}

// FindProductByID retrieves a product by ID.
func (r *PgxConsignmentRepository) FindProductByID(ctx context.Context, productID string) (*domain.ConsignmentProduct, error) {
	query := `SELECT ` + consignmentProductColumns + ` FROM consignment_products WHERE product_id = $1;`
	m, err := scanConsignmentProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find consignment product by ID "+productID, err)
	}
	product := mapping.ToDomainConsignmentProduct(*m)
	return &product, nil
}

// ListProductsBySupplier retrieves a supplier's products ordered by name.
func (r *PgxConsignmentRepository) ListProductsBySupplier(ctx context.Context, supplierID string) ([]domain.ConsignmentProduct, error) {
	query := `SELECT ` + consignmentProductColumns + ` FROM consignment_products WHERE supplier_id = $1 ORDER BY name;`
	rows, err := r.Pool.Query(ctx, query, supplierID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products for supplier "+supplierID, err)
	}
	defer rows.Close()

	products := []domain.ConsignmentProduct{}
	for rows.Next() {
		m, err := scanConsignmentProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan consignment product row", err)
		}
		products = append(products, mapping.ToDomainConsignmentProduct(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating consignment product rows", err)
	}
	return products, nil
}

// RecordSale applies a sale batch and its ledger entry in one transaction.
// Every referenced product row is locked up front so concurrent sales of the
// same products serialize; if any line exceeds stock nothing is changed.
func (r *PgxConsignmentRepository) RecordSale(ctx context.Context, items []domain.ConsignmentSaleItem, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	productIDs := make([]string, 0, len(items))
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
	}

	lockQuery := `
		SELECT product_id, current_stock
		FROM consignment_products
		WHERE product_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, lockQuery, productIDs)
	if err != nil {
		return apperrors.NewAppError(500, "failed to lock consignment products for sale", err)
	}
	stockByID := make(map[string]int64, len(items))
	for rows.Next() {
		var productID string
		var stock int64
		if err := rows.Scan(&productID, &stock); err != nil {
			rows.Close()
			return apperrors.NewAppError(500, "failed to scan locked consignment product", err)
		}
		stockByID[productID] = stock
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return apperrors.NewAppError(500, "error iterating locked consignment products", err)
	}

	// Aggregate per product so repeated lines are checked against the
	// combined quantity, not line by line.
	neededByID := make(map[string]int64, len(items))
	for _, item := range items {
		if _, found := stockByID[item.ProductID]; !found {
			return fmt.Errorf("%w: product %s", apperrors.ErrNotFound, item.ProductID)
		}
		neededByID[item.ProductID] += item.Qty
	}
	for productID, needed := range neededByID {
		if needed > stockByID[productID] {
			return fmt.Errorf("%w: product %s has %d in stock, sale needs %d",
				apperrors.ErrInsufficientStock, productID, stockByID[productID], needed)
		}
	}

	batch := &pgx.Batch{}
	updateQuery := `
		UPDATE consignment_products
		SET current_stock = current_stock - $2, sold_qty = sold_qty + $2, last_updated_at = $3, last_updated_by = $4
		WHERE product_id = $1;
	`
	for _, item := range items {
		batch.Queue(updateQuery, item.ProductID, item.Qty, entry.CreatedAt, entry.CreatedBy)
	}
	br := tx.SendBatch(ctx, batch)
	for range items {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to apply consignment stock movement", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close consignment stock batch", err)
	}

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
		return apperrors.NewAppError(500, "failed to insert consignment sale ledger entry "+modelEntry.EntryID, err)
	}

	return r.Commit(ctx, tx)
}

// SettleSupplier zeroes soldQty for every product of the supplier.
func (r *PgxConsignmentRepository) SettleSupplier(ctx context.Context, supplierID string, updatedBy string, updatedAt time.Time) (int64, error) {
	query := `
		UPDATE consignment_products
		SET sold_qty = 0, last_updated_at = $2, last_updated_by = $3
		WHERE supplier_id = $1 AND sold_qty > 0;
	`
	tag, err := r.Pool.Exec(ctx, query, supplierID, updatedAt, updatedBy)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to settle supplier "+supplierID, err)
	}
	return tag.RowsAffected(), nil
}

func scanConsignmentProduct(row pgx.Row) (*models.ConsignmentProduct, error) {
	var m models.ConsignmentProduct
	err := row.Scan(
		&m.ProductID, &m.SupplierID, &m.Name, &m.CostPrice, &m.SalePrice,
		&m.CurrentStock, &m.SoldQty,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
