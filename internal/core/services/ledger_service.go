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
)

// LedgerService handles business logic for daily ledger entries.
type LedgerService struct {
	ledgerRepo  portsrepo.LedgerEntryRepositoryFacade
	closingRepo portsrepo.ClosingRepositoryFacade
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(lr portsrepo.LedgerEntryRepositoryFacade, cr portsrepo.ClosingRepositoryFacade) portssvc.LedgerSvcFacade {
	return &LedgerService{
		ledgerRepo:  lr,
		closingRepo: cr,
	}
}

// Ensure LedgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// CreateEntry appends a new entry to the current (or given) business day.
func (s *LedgerService) CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	category := domain.EntryCategory(req.Category)
	if !category.IsValid() {
		return nil, fmt.Errorf("%w: unknown category %s", apperrors.ErrValidation, req.Category)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
	}
	if category == domain.CategoryStoreCredit && (req.CustomerID == nil || *req.CustomerID == "") {
		return nil, fmt.Errorf("%w: %s entries require a customer", apperrors.ErrValidation, category)
	}
	if (category == domain.CategoryConsignmentSale || category == domain.CategoryConsignmentSettlement) &&
		(req.SupplierID == nil || *req.SupplierID == "") {
		return nil, fmt.Errorf("%w: %s entries require a supplier", apperrors.ErrValidation, category)
	}

	now := time.Now()
	day := domain.BusinessDay(now)
	if req.BusinessDay != nil {
		day = domain.BusinessDay(*req.BusinessDay)
	}

	// A day with a closing record no longer accepts entries.
	existing, err := s.closingRepo.FindClosingByDay(ctx, day)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check closing record before entry creation", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to check closing state: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: business day %s is already closed", apperrors.ErrInvalidState, day.Format(dto.BusinessDayFormat))
	}

	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		BusinessDay: day,
		Category:    category,
		Description: req.Description,
		Amount:      req.Amount,
		CustomerID:  req.CustomerID,
		SupplierID:  req.SupplierID,
		Closed:      false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.ledgerRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save ledger entry", slog.String("error", err.Error()), slog.String("category", req.Category))
		return nil, fmt.Errorf("failed to create ledger entry: %w", err)
	}

	logger.Info("Ledger entry created", slog.String("entry_id", entry.EntryID), slog.String("category", req.Category))
	return &entry, nil
}

// GetEntry retrieves a single ledger entry by ID.
func (s *LedgerService) GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get ledger entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntriesForDay retrieves every entry of a business day.
func (s *LedgerService) ListEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListEntriesForDay(ctx, domain.BusinessDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for day: %w", err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// ListOpenEntriesForDay retrieves the entries of a business day not yet
// sealed by a closing record.
func (s *LedgerService) ListOpenEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error) {
	entries, err := s.ledgerRepo.ListOpenEntriesForDay(ctx, domain.BusinessDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to list open ledger entries for day: %w", err)
	}
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// ListEntriesForMonth retrieves a paginated month of entries.
func (s *LedgerService) ListEntriesForMonth(ctx context.Context, year int, month time.Month, limit int, nextToken *string) (*dto.ListLedgerEntriesResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, token, err := s.ledgerRepo.ListEntriesForMonth(ctx, year, month, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger entries for month: %w", err)
	}
	return &dto.ListLedgerEntriesResponse{
		Entries:   dto.ToLedgerEntryResponses(entries),
		NextToken: token,
	}, nil
}

// UpdateEntry patches the description and amount of an open entry.
func (s *LedgerService) UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest, requestingUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.ledgerRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Closed {
		return nil, fmt.Errorf("%w: entry %s belongs to a closed day", apperrors.ErrInvalidState, entryID)
	}

	if req.Description != nil {
		entry.Description = *req.Description
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrInvalidAmount)
		}
		entry.Amount = *req.Amount
	}
	entry.LastUpdatedAt = time.Now()
	entry.LastUpdatedBy = requestingUserID

	if err := s.ledgerRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, err
	}

	logger.Info("Ledger entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// DeleteEntry removes an open entry.
func (s *LedgerService) DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.ledgerRepo.DeleteEntry(ctx, entryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrInvalidState) {
			return err
		}
		logger.Error("Failed to delete ledger entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete ledger entry %s: %w", entryID, err)
	}

	logger.Info("Ledger entry deleted", slog.String("entry_id", entryID), slog.String("deleted_by", requestingUserID))
	return nil
}
