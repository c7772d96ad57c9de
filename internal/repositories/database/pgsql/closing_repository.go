package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	"github.com/belafarma/backoffice/internal/models"
	"github.com/belafarma/backoffice/internal/utils/accounting"
	"github.com/belafarma/backoffice/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const closingRecordColumns = `closing_id, business_day, declared_gross_sales, opening_balance, extra_cash_received, credit_card_total, debit_card_total, card_pix_total, direct_pix_total, physical_cash, total_expenses, total_store_credit_issued, expected_total, counted_total, discrepancy, safe_deposit, next_opening_balance, retroactive, closed_by, closed_at`

const uniqueViolationCode = "23505"

type PgxClosingRepository struct {
	BaseRepository
}

// newPgxClosingRepository creates a new repository for closing records.
func newPgxClosingRepository(pool *pgxpool.Pool) portsrepo.ClosingRepositoryWithTx {
	return &PgxClosingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxClosingRepository implements portsrepo.ClosingRepositoryWithTx
var _ portsrepo.ClosingRepositoryWithTx = (*PgxClosingRepository)(nil)

// FindClosingByDay retrieves the closing record for a business day, if any.
func (r *PgxClosingRepository) FindClosingByDay(ctx context.Context, day time.Time) (*domain.ClosingRecord, error) {
	query := `SELECT ` + closingRecordColumns + ` FROM closing_records WHERE business_day = $1;`
	row := r.Pool.QueryRow(ctx, query, domain.BusinessDay(day))
	return scanClosingRecord(row)
}

// FindLatestClosingBefore retrieves the most recent closing record strictly
// before the given business day.
func (r *PgxClosingRepository) FindLatestClosingBefore(ctx context.Context, day time.Time) (*domain.ClosingRecord, error) {
	query := `
		SELECT ` + closingRecordColumns + `
		FROM closing_records
		WHERE business_day < $1
		ORDER BY business_day DESC
		LIMIT 1;
	`
	row := r.Pool.QueryRow(ctx, query, domain.BusinessDay(day))
	return scanClosingRecord(row)
}

// ListClosingsForMonth retrieves all closing records within a month, ordered by
// business day.
func (r *PgxClosingRepository) ListClosingsForMonth(ctx context.Context, year int, month time.Month) ([]domain.ClosingRecord, error) {
	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)
	query := `
		SELECT ` + closingRecordColumns + `
		FROM closing_records
		WHERE business_day >= $1 AND business_day < $2
		ORDER BY business_day;
	`
	rows, err := r.Pool.Query(ctx, query, monthStart, monthEnd)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query closing records for month", err)
	}
	defer rows.Close()

	records := []domain.ClosingRecord{}
	for rows.Next() {
		record, err := scanClosingRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating closing record rows", err)
	}
	return records, nil
}

// CloseDay seals a business day in one transaction. The day's open entries are
// re-read under a row lock, the expense and store-credit totals are recomputed
// from that locked set, the record is inserted, and the entries are stamped
// closed with the record's ID. The caller's pre-computed totals are replaced by
// the recomputed ones so the sealed record always matches the entries it
// sealed, even when an entry landed between the summary and the confirmation.
func (r *PgxClosingRepository) CloseDay(ctx context.Context, record domain.ClosingRecord) (*domain.ClosingRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	day := domain.BusinessDay(record.BusinessDay)

	entries, err := lockOpenEntries(ctx, tx, day)
	if err != nil {
		return nil, err
	}

	totalExpenses, totalStoreCredit := accounting.DayExpenseAndCreditTotals(entries)
	record.BusinessDay = day
	record.TotalExpenses = totalExpenses
	record.TotalStoreCreditIssued = totalStoreCredit
	record.ExpectedTotal = domain.ExpectedTotal(
		record.DeclaredGrossSales,
		record.ExtraCashReceived,
		record.OpeningBalance,
		totalExpenses,
		totalStoreCredit,
	)
	record.CountedTotal = record.PhysicalCash.Add(record.Digital.Sum())
	record.Discrepancy = record.CountedTotal.Sub(record.ExpectedTotal)
	record.NextOpeningBalance = record.PhysicalCash.Sub(record.SafeDeposit)

	if err := insertClosingRecord(ctx, tx, record); err != nil {
		return nil, err
	}
	if err := markEntriesClosed(ctx, tx, day, record.ClosingID, record.ClosedBy, record.ClosedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateRetroactive inserts a back-dated record exactly as given, without
// recomputing its totals, and links any open entries of that day to it.
func (r *PgxClosingRepository) CreateRetroactive(ctx context.Context, record domain.ClosingRecord) (*domain.ClosingRecord, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	day := domain.BusinessDay(record.BusinessDay)
	record.BusinessDay = day

	if err := insertClosingRecord(ctx, tx, record); err != nil {
		return nil, err
	}
	if err := markEntriesClosed(ctx, tx, day, record.ClosingID, record.ClosedBy, record.ClosedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &record, nil
}

// lockOpenEntries reads the open entries of a day under FOR UPDATE so no entry
// can be added to or removed from the set while the day is being sealed.
func lockOpenEntries(ctx context.Context, tx pgx.Tx, day time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerEntryColumns + `
		FROM ledger_entries
		WHERE business_day = $1 AND closed = FALSE
		ORDER BY created_at
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, day)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock open ledger entries for closing", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func insertClosingRecord(ctx context.Context, tx pgx.Tx, record domain.ClosingRecord) error {
	modelRecord := mapping.ToModelClosingRecord(record)
	query := `
		INSERT INTO closing_records (
			closing_id, business_day, declared_gross_sales, opening_balance, extra_cash_received,
			credit_card_total, debit_card_total, card_pix_total, direct_pix_total,
			physical_cash, total_expenses, total_store_credit_issued,
			expected_total, counted_total, discrepancy,
			safe_deposit, next_opening_balance,
			retroactive, closed_by, closed_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err := tx.Exec(ctx, query,
		modelRecord.ClosingID,
		modelRecord.BusinessDay,
		modelRecord.DeclaredGrossSales,
		modelRecord.OpeningBalance,
		modelRecord.ExtraCashReceived,
		modelRecord.CreditCardTotal,
		modelRecord.DebitCardTotal,
		modelRecord.CardPixTotal,
		modelRecord.DirectPixTotal,
		modelRecord.PhysicalCash,
		modelRecord.TotalExpenses,
		modelRecord.TotalStoreCreditIssued,
		modelRecord.ExpectedTotal,
		modelRecord.CountedTotal,
		modelRecord.Discrepancy,
		modelRecord.SafeDeposit,
		modelRecord.NextOpeningBalance,
		modelRecord.Retroactive,
		modelRecord.ClosedBy,
		modelRecord.ClosedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicateClosing
		}
		return apperrors.NewAppError(500, "failed to insert closing record for "+modelRecord.BusinessDay.Format("2006-01-02"), err)
	}
	return nil
}

func markEntriesClosed(ctx context.Context, tx pgx.Tx, day time.Time, closingID, closedBy string, closedAt time.Time) error {
	query := `
		UPDATE ledger_entries
		SET closed = TRUE, closing_record_id = $2, last_updated_at = $3, last_updated_by = $4
		WHERE business_day = $1 AND closed = FALSE;
	`
	_, err := tx.Exec(ctx, query, day, closingID, closedAt, closedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark ledger entries closed", err)
	}
	return nil
}

// scanClosingRecord scans one row with the closingRecordColumns layout.
func scanClosingRecord(row pgx.Row) (*domain.ClosingRecord, error) {
	var m models.ClosingRecord
	err := row.Scan(
		&m.ClosingID,
		&m.BusinessDay,
		&m.DeclaredGrossSales,
		&m.OpeningBalance,
		&m.ExtraCashReceived,
		&m.CreditCardTotal,
		&m.DebitCardTotal,
		&m.CardPixTotal,
		&m.DirectPixTotal,
		&m.PhysicalCash,
		&m.TotalExpenses,
		&m.TotalStoreCreditIssued,
		&m.ExpectedTotal,
		&m.CountedTotal,
		&m.Discrepancy,
		&m.SafeDeposit,
		&m.NextOpeningBalance,
		&m.Retroactive,
		&m.ClosedBy,
		&m.ClosedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to scan closing record", err)
	}
	record := mapping.ToDomainClosingRecord(m)
	return &record, nil
}
