package services

import (
	"context"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/dto"
)

// LedgerReaderSvc defines read operations for daily ledger entries.
type LedgerReaderSvc interface {
	// GetEntry retrieves a single ledger entry by ID.
	GetEntry(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesForDay retrieves every entry of a business day.
	ListEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error)

	// ListOpenEntriesForDay retrieves the entries of a business day not yet
	// sealed by a closing record.
	ListOpenEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesForMonth retrieves a paginated month of entries.
	ListEntriesForMonth(ctx context.Context, year int, month time.Month, limit int, nextToken *string) (*dto.ListLedgerEntriesResponse, error)
}

// LedgerWriterSvc defines write operations for daily ledger entries. All
// mutations are rejected with apperrors.ErrInvalidState once the entry's day
// has been closed.
type LedgerWriterSvc interface {
	// CreateEntry appends a new entry to the current (or given) business day.
	CreateEntry(ctx context.Context, req dto.CreateLedgerEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// UpdateEntry patches the description and amount of an open entry.
	UpdateEntry(ctx context.Context, entryID string, req dto.UpdateLedgerEntryRequest, requestingUserID string) (*domain.LedgerEntry, error)

	// DeleteEntry removes an open entry.
	DeleteEntry(ctx context.Context, entryID string, requestingUserID string) error
}

// LedgerSvcFacade combines all ledger service interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
