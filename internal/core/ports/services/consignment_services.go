package services

import (
	"context"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/dto"
)

// SupplierSvc defines operations on consignment suppliers.
type SupplierSvc interface {
	// CreateSupplier registers a new supplier.
	CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error)

	// GetSupplier retrieves a supplier by ID.
	GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error)

	// ListSuppliers retrieves all suppliers.
	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
}

// ConsignmentStockSvc defines operations on consignment products and stock.
type ConsignmentStockSvc interface {
	// CreateProduct registers a supplier-owned product.
	CreateProduct(ctx context.Context, req dto.CreateConsignmentProductRequest, creatorUserID string) (*domain.ConsignmentProduct, error)

	// ListProductsBySupplier retrieves a supplier's products.
	ListProductsBySupplier(ctx context.Context, supplierID string) ([]domain.ConsignmentProduct, error)

	// RecordSale applies an all-or-nothing sale batch and appends one
	// CONSIGNMENT_SALE ledger entry for the batch total. Fails with
	// apperrors.ErrInsufficientStock when any item exceeds stock, in which
	// case no stock moves.
	RecordSale(ctx context.Context, req dto.RecordConsignmentSaleRequest, creatorUserID string) (*dto.RecordConsignmentSaleResponse, error)

	// GetSupplierBalance computes the accrued unsettled debt for a supplier.
	GetSupplierBalance(ctx context.Context, supplierID string) (*dto.SupplierBalanceResponse, error)

	// Settle pays out a supplier: the amount is computed from the sold
	// counters before they are reset, a CONSIGNMENT_SETTLEMENT ledger entry is
	// appended, and every product's soldQty is zeroed.
	Settle(ctx context.Context, supplierID string, requestingUserID string) (*dto.SettleSupplierResponse, error)
}

// ConsignmentSvcFacade combines all consignment service interfaces.
type ConsignmentSvcFacade interface {
	SupplierSvc
	ConsignmentStockSvc
}
