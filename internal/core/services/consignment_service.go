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
	"github.com/belafarma/backoffice/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsignmentService handles business logic for suppliers, consignment stock
// and settlements.
type ConsignmentService struct {
	consignmentRepo portsrepo.ConsignmentRepositoryFacade
	ledgerRepo      portsrepo.LedgerEntryRepositoryFacade
}

// NewConsignmentService creates a new ConsignmentService.
func NewConsignmentService(cr portsrepo.ConsignmentRepositoryFacade, lr portsrepo.LedgerEntryRepositoryFacade) portssvc.ConsignmentSvcFacade {
	return &ConsignmentService{
		consignmentRepo: cr,
		ledgerRepo:      lr,
	}
}

// Ensure ConsignmentService implements the portssvc.ConsignmentSvcFacade interface
var _ portssvc.ConsignmentSvcFacade = (*ConsignmentService)(nil)

// CreateSupplier registers a new supplier.
func (s *ConsignmentService) CreateSupplier(ctx context.Context, req dto.CreateSupplierRequest, creatorUserID string) (*domain.Supplier, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	supplier := domain.Supplier{
		SupplierID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.consignmentRepo.SaveSupplier(ctx, supplier); err != nil {
		logger.Error("Failed to save supplier", slog.String("error", err.Error()), slog.String("name", req.Name))
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}

	logger.Info("Supplier created", slog.String("supplier_id", supplier.SupplierID))
	return &supplier, nil
}

// GetSupplier retrieves a supplier by ID.
func (s *ConsignmentService) GetSupplier(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	supplier, err := s.consignmentRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get supplier %s: %w", supplierID, err)
	}
	return supplier, nil
}

// ListSuppliers retrieves all suppliers.
func (s *ConsignmentService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.consignmentRepo.ListSuppliers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		return []domain.Supplier{}, nil
	}
	return suppliers, nil
}

// CreateProduct registers a supplier-owned product.
func (s *ConsignmentService) CreateProduct(ctx context.Context, req dto.CreateConsignmentProductRequest, creatorUserID string) (*domain.ConsignmentProduct, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialStock < 0 {
		return nil, fmt.Errorf("%w: initial stock cannot be negative", apperrors.ErrValidation)
	}
	if req.CostPrice.IsNegative() || req.SalePrice.IsNegative() {
		return nil, fmt.Errorf("%w: prices cannot be negative", apperrors.ErrValidation)
	}

	if _, err := s.consignmentRepo.FindSupplierByID(ctx, req.SupplierID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := domain.ConsignmentProduct{
		ProductID:    uuid.NewString(),
		SupplierID:   req.SupplierID,
		Name:         req.Name,
		CostPrice:    req.CostPrice,
		SalePrice:    req.SalePrice,
		CurrentStock: req.InitialStock,
		SoldQty:      0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.consignmentRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to save consignment product", slog.String("error", err.Error()), slog.String("supplier_id", req.SupplierID))
		return nil, fmt.Errorf("failed to create consignment product: %w", err)
	}

	logger.Info("Consignment product created", slog.String("product_id", product.ProductID), slog.String("supplier_id", req.SupplierID))
	return &product, nil
}

// ListProductsBySupplier retrieves a supplier's products.
func (s *ConsignmentService) ListProductsBySupplier(ctx context.Context, supplierID string) ([]domain.ConsignmentProduct, error) {
	if _, err := s.consignmentRepo.FindSupplierByID(ctx, supplierID); err != nil {
		return nil, err
	}
	products, err := s.consignmentRepo.ListProductsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for supplier %s: %w", supplierID, err)
	}
	if products == nil {
		return []domain.ConsignmentProduct{}, nil
	}
	return products, nil
}

// RecordSale applies an all-or-nothing sale batch and appends one
// CONSIGNMENT_SALE ledger entry for the batch total, priced at sale price.
func (s *ConsignmentService) RecordSale(ctx context.Context, req dto.RecordConsignmentSaleRequest, creatorUserID string) (*dto.RecordConsignmentSaleResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Duplicate lines for the same product are merged so the stock check
	// sees the combined quantity.
	qtyByProduct := make(map[string]int64, len(req.Items))
	productOrder := make([]string, 0, len(req.Items))
	for _, line := range req.Items {
		if line.Qty <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive for product %s", apperrors.ErrValidation, line.ProductID)
		}
		if _, seen := qtyByProduct[line.ProductID]; !seen {
			productOrder = append(productOrder, line.ProductID)
		}
		qtyByProduct[line.ProductID] += line.Qty
	}

	items := make([]domain.ConsignmentSaleItem, 0, len(productOrder))
	total := decimal.Zero
	var supplierID string
	for _, productID := range productOrder {
		qty := qtyByProduct[productID]
		product, err := s.consignmentRepo.FindProductByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if supplierID == "" {
			supplierID = product.SupplierID
		}
		total = total.Add(product.SalePrice.Mul(decimal.NewFromInt(qty)))
		items = append(items, domain.ConsignmentSaleItem{ProductID: productID, Qty: qty})
	}

	now := time.Now()
	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Consignment sale, %d item(s)", len(items))
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		BusinessDay: domain.BusinessDay(now),
		Category:    domain.CategoryConsignmentSale,
		Description: description,
		Amount:      total,
		SupplierID:  &supplierID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.consignmentRepo.RecordSale(ctx, items, entry); err != nil {
		if errors.Is(err, apperrors.ErrInsufficientStock) || errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		logger.Error("Failed to record consignment sale", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to record consignment sale: %w", err)
	}

	logger.Info("Consignment sale recorded", slog.String("entry_id", entry.EntryID), slog.String("total", total.String()))
	return &dto.RecordConsignmentSaleResponse{
		EntryID: entry.EntryID,
		Total:   total,
	}, nil
}

// GetSupplierBalance computes the accrued unsettled debt for a supplier.
func (s *ConsignmentService) GetSupplierBalance(ctx context.Context, supplierID string) (*dto.SupplierBalanceResponse, error) {
	if _, err := s.consignmentRepo.FindSupplierByID(ctx, supplierID); err != nil {
		return nil, err
	}

	products, err := s.consignmentRepo.ListProductsBySupplier(ctx, supplierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list products for balance of supplier %s: %w", supplierID, err)
	}

	accrued := decimal.Zero
	var units int64
	for _, p := range products {
		accrued = accrued.Add(p.AccruedDebt())
		units += p.SoldQty
	}

	return &dto.SupplierBalanceResponse{
		SupplierID:     supplierID,
		AccruedDebt:    accrued,
		UnsettledUnits: units,
	}, nil
}

// Settle pays out a supplier: the amount is computed from the sold counters
// before they are reset, a CONSIGNMENT_SETTLEMENT ledger entry is appended, and
// every product's soldQty is zeroed. Other suppliers' counters are untouched.
func (s *ConsignmentService) Settle(ctx context.Context, supplierID string, requestingUserID string) (*dto.SettleSupplierResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	supplier, err := s.consignmentRepo.FindSupplierByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}

	balance, err := s.GetSupplierBalance(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	if !balance.AccruedDebt.IsPositive() {
		return nil, fmt.Errorf("%w: supplier %s has no unsettled sales", apperrors.ErrInvalidState, supplierID)
	}

	now := time.Now()
	changed, err := s.consignmentRepo.SettleSupplier(ctx, supplierID, requestingUserID, now)
	if err != nil {
		logger.Error("Failed to reset sold counters on settlement", slog.String("error", err.Error()), slog.String("supplier_id", supplierID))
		return nil, fmt.Errorf("failed to settle supplier %s: %w", supplierID, err)
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		BusinessDay: domain.BusinessDay(now),
		Category:    domain.CategoryConsignmentSettlement,
		Description: fmt.Sprintf("Settlement payout to %s", supplier.Name),
		Amount:      balance.AccruedDebt,
		SupplierID:  &supplierID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		// The counters are already reset; keep the payout amount recoverable.
		logger.Error("Failed to append settlement ledger entry",
			slog.String("error", err.Error()),
			slog.String("supplier_id", supplierID),
			slog.String("amount", utils.FormatAmount(balance.AccruedDebt)),
		)
		return nil, fmt.Errorf("failed to record settlement entry for %s: %w", utils.FormatAmount(balance.AccruedDebt), err)
	}

	logger.Info("Supplier settled",
		slog.String("supplier_id", supplierID),
		slog.String("amount", balance.AccruedDebt.String()),
		slog.Int64("changed_products", changed),
	)
	return &dto.SettleSupplierResponse{
		SupplierID:      supplierID,
		AmountPaid:      balance.AccruedDebt,
		ChangedProducts: changed,
		EntryID:         entry.EntryID,
	}, nil
}
