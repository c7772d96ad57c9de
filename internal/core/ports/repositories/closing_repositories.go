package repositories

import (
	"context"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
)

// ClosingReader defines read operations for closing records.
type ClosingReader interface {
	// FindClosingByDay retrieves the closing record for a business day, if any.
	FindClosingByDay(ctx context.Context, day time.Time) (*domain.ClosingRecord, error)

	// FindLatestClosingBefore retrieves the most recent closing record strictly
	// before the given business day. Used to carry the opening balance forward.
	FindLatestClosingBefore(ctx context.Context, day time.Time) (*domain.ClosingRecord, error)

	// ListClosingsForMonth retrieves all closing records within a month, ordered
	// by business day.
	ListClosingsForMonth(ctx context.Context, year int, month time.Month) ([]domain.ClosingRecord, error)
}

// ClosingWriter defines the single write operation on closing records.
// Records are create-only; there is no update path.
type ClosingWriter interface {
	// CloseDay seals a business day in one transaction: it re-reads and locks
	// the day's open entries, recomputes the expense and store-credit totals
	// from that locked set, inserts the closing record, and marks the entries
	// closed with the new record's ID. It returns the record as persisted.
	// Returns apperrors.ErrDuplicateClosing when the day already has a record.
	CloseDay(ctx context.Context, record domain.ClosingRecord) (*domain.ClosingRecord, error)

	// CreateRetroactive inserts a minimal back-dated record exactly as given,
	// without recomputing totals, and links any open entries of that day to
	// it. Returns apperrors.ErrDuplicateClosing when the day already has a
	// record.
	CreateRetroactive(ctx context.Context, record domain.ClosingRecord) (*domain.ClosingRecord, error)
}

// ClosingRepositoryFacade combines all closing record repository interfaces.
type ClosingRepositoryFacade interface {
	ClosingReader
	ClosingWriter
}

// ClosingRepositoryWithTx extends the facade with transaction capabilities.
type ClosingRepositoryWithTx interface {
	ClosingRepositoryFacade
	TransactionManager
}
