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
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryService handles business logic for delivery-platform sales and
// their deferred payouts.
type DeliveryService struct {
	deliveryRepo      portsrepo.DeliveryRepositoryFacade
	settlementLagDays int
}

// NewDeliveryService creates a new DeliveryService. settlementLagDays is how
// many days after the sale the platform pays out.
func NewDeliveryService(dr portsrepo.DeliveryRepositoryFacade, settlementLagDays int) portssvc.DeliverySvcFacade {
	return &DeliveryService{
		deliveryRepo:      dr,
		settlementLagDays: settlementLagDays,
	}
}

// Ensure DeliveryService implements the portssvc.DeliverySvcFacade interface
var _ portssvc.DeliverySvcFacade = (*DeliveryService)(nil)

// RecordSale computes the net payout and due date deterministically and
// persists the sale together with its DELIVERY_PLATFORM_SALE ledger entry.
func (s *DeliveryService) RecordSale(ctx context.Context, req dto.RecordDeliverySaleRequest, creatorUserID string) (*domain.DeliveryPlatformSale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.GrossValue.IsPositive() {
		return nil, fmt.Errorf("%w: gross value must be positive", apperrors.ErrInvalidAmount)
	}
	hundred := decimal.NewFromInt(100)
	if req.FeePercent.IsNegative() || req.FeePercent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: fee percent must be between 0 and 100", apperrors.ErrValidation)
	}

	now := time.Now()
	saleDate := domain.BusinessDay(now)
	if req.SaleDate != nil {
		saleDate = domain.BusinessDay(*req.SaleDate)
	}

	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	sale := domain.DeliveryPlatformSale{
		SaleID:      uuid.NewString(),
		Platform:    req.Platform,
		Description: req.Description,
		GrossValue:  req.GrossValue,
		FeePercent:  req.FeePercent,
		NetValue:    domain.NetAfterFee(req.GrossValue, req.FeePercent),
		SaleDate:    saleDate,
		DueDate:     saleDate.AddDate(0, 0, s.settlementLagDays),
		Status:      domain.DeliveryPending,
		EntryID:     uuid.NewString(),
		AuditFields: audit,
	}

	entry := domain.LedgerEntry{
		EntryID:     sale.EntryID,
		BusinessDay: saleDate,
		Category:    domain.CategoryDeliveryPlatformSale,
		Description: fmt.Sprintf("%s sale", req.Platform),
		Amount:      sale.GrossValue,
		AuditFields: audit,
	}
	if req.Description != "" {
		entry.Description = req.Description
	}

	if err := s.deliveryRepo.SaveSaleWithEntry(ctx, sale, entry); err != nil {
		logger.Error("Failed to save delivery sale", slog.String("error", err.Error()), slog.String("platform", req.Platform))
		return nil, fmt.Errorf("failed to record delivery sale: %w", err)
	}

	logger.Info("Delivery sale recorded",
		slog.String("sale_id", sale.SaleID),
		slog.String("platform", sale.Platform),
		slog.String("net_value", sale.NetValue.String()),
	)
	return &sale, nil
}

// GetSale retrieves a sale by ID.
func (s *DeliveryService) GetSale(ctx context.Context, saleID string) (*domain.DeliveryPlatformSale, error) {
	sale, err := s.deliveryRepo.FindSaleByID(ctx, saleID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get delivery sale %s: %w", saleID, err)
	}
	return sale, nil
}

// ListSales retrieves sales, optionally filtered by status.
func (s *DeliveryService) ListSales(ctx context.Context, status *domain.DeliverySaleStatus) ([]domain.DeliveryPlatformSale, error) {
	sales, err := s.deliveryRepo.ListSales(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list delivery sales: %w", err)
	}
	if sales == nil {
		return []domain.DeliveryPlatformSale{}, nil
	}
	return sales, nil
}

// Reconcile marks a pending payout as received.
func (s *DeliveryService) Reconcile(ctx context.Context, saleID string, requestingUserID string) (*domain.DeliveryPlatformSale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	if err := s.deliveryRepo.MarkReconciled(ctx, saleID, now, requestingUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrAlreadyReconciled) {
			return nil, err
		}
		logger.Error("Failed to reconcile delivery sale", slog.String("error", err.Error()), slog.String("sale_id", saleID))
		return nil, fmt.Errorf("failed to reconcile delivery sale %s: %w", saleID, err)
	}

	logger.Info("Delivery sale reconciled", slog.String("sale_id", saleID))
	return s.deliveryRepo.FindSaleByID(ctx, saleID)
}

// BatchReconcile applies Reconcile per ID, best effort: valid IDs succeed,
// already-reconciled or missing ones are reported as failures.
func (s *DeliveryService) BatchReconcile(ctx context.Context, saleIDs []string, requestingUserID string) (*dto.BatchReconcileResponse, error) {
	result := &dto.BatchReconcileResponse{
		Reconciled: []string{},
		Failures:   []dto.BatchReconcileFailure{},
	}

	for _, saleID := range saleIDs {
		if _, err := s.Reconcile(ctx, saleID, requestingUserID); err != nil {
			result.Failures = append(result.Failures, dto.BatchReconcileFailure{
				SaleID: saleID,
				Reason: reconcileFailureReason(err),
			})
			continue
		}
		result.Reconciled = append(result.Reconciled, saleID)
	}

	return result, nil
}

func reconcileFailureReason(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return "not found"
	case errors.Is(err, apperrors.ErrAlreadyReconciled):
		return "already reconciled"
	default:
		return err.Error()
	}
}
