package repositories

import (
	"context"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
)

// LedgerEntryReader defines read operations for daily ledger entries.
type LedgerEntryReader interface {
	// FindEntryByID retrieves a single ledger entry by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesForDay retrieves every entry recorded under the given business day.
	ListEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error)

	// ListOpenEntriesForDay retrieves the entries for the given business day that
	// have not yet been sealed by a closing record.
	ListOpenEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error)

	// ListEntriesForMonth retrieves a paginated list of entries within the given
	// month using token-based pagination. It returns the entries, a token for
	// the next page, and an error.
	ListEntriesForMonth(ctx context.Context, year int, month time.Month, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)
}

// LedgerEntryWriter defines write operations for daily ledger entries.
// Closing entries is not part of this interface: entries are marked closed
// only inside the closing transaction owned by the closing repository.
type LedgerEntryWriter interface {
	// SaveEntry persists a new ledger entry.
	SaveEntry(ctx context.Context, entry domain.LedgerEntry) error

	// UpdateEntry updates the mutable fields (description, amount) of an open entry.
	UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error

	// DeleteEntry removes an open entry.
	DeleteEntry(ctx context.Context, entryID string) error
}

// LedgerEntryRepositoryFacade combines all ledger entry repository interfaces.
type LedgerEntryRepositoryFacade interface {
	LedgerEntryReader
	LedgerEntryWriter
}

// LedgerEntryRepositoryWithTx extends the facade with transaction capabilities.
type LedgerEntryRepositoryWithTx interface {
	LedgerEntryRepositoryFacade
	TransactionManager
}
