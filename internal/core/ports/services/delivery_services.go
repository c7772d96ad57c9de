package services

import (
	"context"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/dto"
)

// DeliverySvcFacade defines operations on delivery-platform sales and their
// deferred payouts.
type DeliverySvcFacade interface {
	// RecordSale computes the net payout and due date deterministically and
	// persists the sale together with its DELIVERY_PLATFORM_SALE ledger entry.
	RecordSale(ctx context.Context, req dto.RecordDeliverySaleRequest, creatorUserID string) (*domain.DeliveryPlatformSale, error)

	// GetSale retrieves a sale by ID.
	GetSale(ctx context.Context, saleID string) (*domain.DeliveryPlatformSale, error)

	// ListSales retrieves sales, optionally filtered by status.
	ListSales(ctx context.Context, status *domain.DeliverySaleStatus) ([]domain.DeliveryPlatformSale, error)

	// Reconcile marks a pending payout as received. Fails with
	// apperrors.ErrAlreadyReconciled when it was reconciled before.
	Reconcile(ctx context.Context, saleID string, requestingUserID string) (*domain.DeliveryPlatformSale, error)

	// BatchReconcile applies Reconcile per ID, best effort: valid IDs succeed,
	// already-reconciled or missing ones are reported as failures.
	BatchReconcile(ctx context.Context, saleIDs []string, requestingUserID string) (*dto.BatchReconcileResponse, error)
}
