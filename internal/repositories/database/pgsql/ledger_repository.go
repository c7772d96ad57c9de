package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	"github.com/belafarma/backoffice/internal/models"
	"github.com/belafarma/backoffice/internal/utils/mapping"
	"github.com/belafarma/backoffice/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ledgerEntryColumns = `entry_id, business_day, category, description, amount, customer_id, supplier_id, closed, closing_record_id, created_at, created_by, last_updated_at, last_updated_by`

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for daily ledger entries.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerEntryRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerEntryRepositoryWithTx
var _ portsrepo.LedgerEntryRepositoryWithTx = (*PgxLedgerRepository)(nil)

// SaveEntry persists a new ledger entry.
func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	modelEntry := mapping.ToModelLedgerEntry(entry)
	query := `
		INSERT INTO ledger_entries (
			entry_id, business_day, category, description, amount,
			customer_id, supplier_id, closed, closing_record_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.BusinessDay,
		modelEntry.Category,
		modelEntry.Description,
		modelEntry.Amount,
		modelEntry.CustomerID,
		modelEntry.SupplierID,
		modelEntry.Closed,
		modelEntry.ClosingRecordID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entry "+modelEntry.EntryID, err)
	}
	return nil
}

// FindEntryByID retrieves a single ledger entry by its unique identifier.
func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE entry_id = $1;`
	row := r.Pool.QueryRow(ctx, query, entryID)
	modelEntry, err := scanLedgerEntry(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find ledger entry by ID "+entryID, err)
	}
	domainEntry := mapping.ToDomainLedgerEntry(*modelEntry)
	return &domainEntry, nil
}

// ListEntriesForDay retrieves every entry recorded under the given business day.
func (r *PgxLedgerRepository) ListEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE business_day = $1 ORDER BY created_at;`
	return r.queryEntries(ctx, query, domain.BusinessDay(day))
}

// ListOpenEntriesForDay retrieves the not-yet-closed entries of a business day.
func (r *PgxLedgerRepository) ListOpenEntriesForDay(ctx context.Context, day time.Time) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerEntryColumns + ` FROM ledger_entries WHERE business_day = $1 AND closed = FALSE ORDER BY created_at;`
	return r.queryEntries(ctx, query, domain.BusinessDay(day))
}

// ListEntriesForMonth retrieves a keyset-paginated list of entries within the
// given month, ordered by business day then creation time.
func (r *PgxLedgerRepository) ListEntriesForMonth(ctx context.Context, year int, month time.Month, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	args := []interface{}{monthStart, monthEnd}
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE business_day >= $1 AND business_day < $2`

	if nextToken != nil && *nextToken != "" {
		tokenDay, tokenCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, apperrors.NewValidationError("invalid pagination token")
		}
		query += ` AND (business_day, created_at) > ($3, $4)`
		args = append(args, tokenDay, tokenCreatedAt)
	}

	query += ` ORDER BY business_day, created_at LIMIT ` + strconv.Itoa(limit+1) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger entries for month", err)
	}
	defer rows.Close()

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		encoded := pagination.EncodeToken(last.BusinessDay, last.CreatedAt)
		token = &encoded
	}
	return entries, token, nil
}

// UpdateEntry updates the mutable fields of an open entry. A closed entry is
// immutable and yields ErrInvalidState.
func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET description = $2, amount = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND closed = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		entry.EntryID,
		entry.Description,
		entry.Amount,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update ledger entry "+entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.closedOrMissing(ctx, entry.EntryID)
	}
	return nil
}

// DeleteEntry removes an open entry. A closed entry yields ErrInvalidState.
func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1 AND closed = FALSE;`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete ledger entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.closedOrMissing(ctx, entryID)
	}
	return nil
}

// closedOrMissing distinguishes a mutation rejected by the closed guard from
// one that targeted a nonexistent entry.
func (r *PgxLedgerRepository) closedOrMissing(ctx context.Context, entryID string) error {
	var closed bool
	err := r.Pool.QueryRow(ctx, `SELECT closed FROM ledger_entries WHERE entry_id = $1;`, entryID).Scan(&closed)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return apperrors.NewAppError(500, "failed to check ledger entry state "+entryID, err)
	}
	if closed {
		return apperrors.ErrInvalidState
	}
	return apperrors.ErrNotFound
}

func (r *PgxLedgerRepository) queryEntries(ctx context.Context, query string, args ...interface{}) ([]domain.LedgerEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		modelEntry, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(*modelEntry))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}

// scanLedgerEntry scans one row with the ledgerEntryColumns layout.
func scanLedgerEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	var customerID, supplierID, closingRecordID sql.NullString
	err := row.Scan(
		&m.EntryID,
		&m.BusinessDay,
		&m.Category,
		&m.Description,
		&m.Amount,
		&customerID,
		&supplierID,
		&m.Closed,
		&closingRecordID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	if customerID.Valid {
		m.CustomerID = &customerID.String
	}
	if supplierID.Valid {
		m.SupplierID = &supplierID.String
	}
	if closingRecordID.Valid {
		m.ClosingRecordID = &closingRecordID.String
	}
	return &m, nil
}
