package repositories

import (
	"context"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
)

// SupplierReader defines read operations for consignment suppliers.
type SupplierReader interface {
	// FindSupplierByID retrieves a supplier by ID.
	FindSupplierByID(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves all suppliers ordered by name.
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

// SupplierWriter defines write operations for consignment suppliers.
type SupplierWriter interface {
	// SaveSupplier persists a new supplier.
	SaveSupplier(ctx context.Context, supplier domain.Supplier) error
}

// ConsignmentProductReader defines read operations for consignment products.
type ConsignmentProductReader interface {
	// FindProductByID retrieves a product by ID.
	FindProductByID(ctx context.Context, productID string) (*domain.ConsignmentProduct, error)

	// ListProductsBySupplier retrieves a supplier's products ordered by name.
	ListProductsBySupplier(ctx context.Context, supplierID string) ([]domain.ConsignmentProduct, error)
}

// ConsignmentProductWriter defines write operations for consignment products
// and the stock movements against them.
type ConsignmentProductWriter interface {
	// SaveProduct persists a new product.
	SaveProduct(ctx context.Context, product domain.ConsignmentProduct) error

	// RecordSale applies a sale batch and its CONSIGNMENT_SALE ledger entry in
	// one transaction: every product row is locked, stock checked, stock
	// decremented and soldQty incremented, or nothing changes at all.
	// Returns apperrors.ErrInsufficientStock when any item exceeds stock.
	RecordSale(ctx context.Context, items []domain.ConsignmentSaleItem, entry domain.LedgerEntry) error

	// SettleSupplier zeroes soldQty for every product of the supplier and
	// returns how many rows changed. It does not record the payment; the
	// caller appends the settlement ledger entry separately, computed from the
	// counters before the reset.
	SettleSupplier(ctx context.Context, supplierID string, updatedBy string, updatedAt time.Time) (int64, error)
}

// ConsignmentRepositoryFacade combines all consignment repository interfaces.
type ConsignmentRepositoryFacade interface {
	SupplierReader
	SupplierWriter
	ConsignmentProductReader
	ConsignmentProductWriter
}

// ConsignmentRepositoryWithTx extends the facade with transaction capabilities.
type ConsignmentRepositoryWithTx interface {
	ConsignmentRepositoryFacade
	TransactionManager
}
