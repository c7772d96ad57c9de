package repositories

import (
	"context"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
)

// DeliverySaleReader defines read operations for delivery platform sales.
type DeliverySaleReader interface {
	// FindSaleByID retrieves a sale by ID.
	FindSaleByID(ctx context.Context, saleID string) (*domain.DeliveryPlatformSale, error)

	// ListSales retrieves sales, optionally filtered by status, ordered by due date.
	ListSales(ctx context.Context, status *domain.DeliverySaleStatus) ([]domain.DeliveryPlatformSale, error)
}

// DeliverySaleWriter defines write operations for delivery platform sales.
type DeliverySaleWriter interface {
	// SaveSaleWithEntry persists a sale and its DELIVERY_PLATFORM_SALE ledger
	// entry in one transaction.
	SaveSaleWithEntry(ctx context.Context, sale domain.DeliveryPlatformSale, entry domain.LedgerEntry) error

	// MarkReconciled sets a pending sale to RECONCILED and stamps the time.
	// Returns apperrors.ErrAlreadyReconciled when the sale is not pending.
	MarkReconciled(ctx context.Context, saleID string, reconciledAt time.Time, updatedBy string) error
}

// DeliveryRepositoryFacade combines all delivery sale repository interfaces.
type DeliveryRepositoryFacade interface {
	DeliverySaleReader
	DeliverySaleWriter
}

// DeliveryRepositoryWithTx extends the facade with transaction capabilities.
type DeliveryRepositoryWithTx interface {
	DeliveryRepositoryFacade
	TransactionManager
}
