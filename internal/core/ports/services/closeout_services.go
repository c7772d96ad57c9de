package services

import (
	"context"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/shopspring/decimal"
)

// CloseOutWizardSvc drives the till-closing state machine. Sessions belong to
// the session layer; the engine computations themselves are stateless.
type CloseOutWizardSvc interface {
	// StartOrResumeClose opens the wizard for a business day, resuming the
	// existing session when one is in progress. The opening balance is
	// pre-filled from the previous closing's carried-forward balance. Fails
	// with apperrors.ErrDuplicateClosing when the day is already closed.
	StartOrResumeClose(ctx context.Context, day time.Time, userID string) (*domain.CloseOutSession, error)

	// GetSession retrieves an in-progress session.
	GetSession(ctx context.Context, sessionID string) (*domain.CloseOutSession, error)

	// EnterSales records the SALES step inputs.
	EnterSales(ctx context.Context, sessionID string, req dto.EnterSalesRequest) (*domain.CloseOutSession, error)

	// EnterCash records the CASH step denomination counts.
	EnterCash(ctx context.Context, sessionID string, req dto.EnterCashRequest) (*domain.CloseOutSession, error)

	// EnterDigital records the DIGITAL step totals.
	EnterDigital(ctx context.Context, sessionID string, req dto.EnterDigitalRequest) (*domain.CloseOutSession, error)

	// Advance moves one step forward; no skipping.
	Advance(ctx context.Context, sessionID string) (*domain.CloseOutSession, error)

	// Back moves one step backward; CLOSED is terminal.
	Back(ctx context.Context, sessionID string) (*domain.CloseOutSession, error)

	// Summary computes the reconciliation figures from a snapshot of the
	// day's open entries. Only valid in the SUMMARY step.
	Summary(ctx context.Context, sessionID string) (*dto.CloseOutSummary, error)

	// ConfirmSummary either enters the safe-deposit sub-step (drawer cash
	// above zero) or seals the day directly with a zero safe deposit.
	ConfirmSummary(ctx context.Context, sessionID string) (*dto.ConfirmSummaryResponse, error)

	// ConfirmSafeDeposit completes the close with the given vault deposit.
	// Fails with apperrors.ErrExceedsAvailable when the deposit exceeds the
	// counted drawer cash.
	ConfirmSafeDeposit(ctx context.Context, sessionID string, amount decimal.Decimal) (*domain.ClosingRecord, error)
}

// RetroactiveClosingSvc is the narrow bypass for recording sales of a past,
// never-closed day without walking the wizard.
type RetroactiveClosingSvc interface {
	// CreateRetroactiveClosing creates a minimal closing record for a past
	// date that has no record yet and is not a configured rest day.
	CreateRetroactiveClosing(ctx context.Context, day time.Time, declaredGrossSales decimal.Decimal, userID string) (*domain.ClosingRecord, error)
}

// CloseOutReportingSvc defines dashboard queries over closings and entries.
type CloseOutReportingSvc interface {
	// DailyTotals aggregates one business day's ledger movement.
	DailyTotals(ctx context.Context, day time.Time) (*domain.DailyTotals, error)

	// MonthlyHistory lists a month of closing records with aggregates.
	MonthlyHistory(ctx context.Context, month time.Month, year int) (*domain.MonthlyHistory, error)

	// GetClosingByDay retrieves the closing record of a business day.
	GetClosingByDay(ctx context.Context, day time.Time) (*domain.ClosingRecord, error)
}

// CloseOutSvcFacade combines the wizard, the retroactive bypass and the
// reporting queries.
type CloseOutSvcFacade interface {
	CloseOutWizardSvc
	RetroactiveClosingSvc
	CloseOutReportingSvc
}
