package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/belafarma/backoffice/internal/apperrors"
	"github.com/belafarma/backoffice/internal/core/domain"
	portsrepo "github.com/belafarma/backoffice/internal/core/ports/repositories"
	portssvc "github.com/belafarma/backoffice/internal/core/ports/services"
	"github.com/belafarma/backoffice/internal/dto"
	"github.com/belafarma/backoffice/internal/middleware"
	"github.com/belafarma/backoffice/internal/utils"
	"github.com/belafarma/backoffice/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CloseOutService drives the till close-out wizard, the retroactive bypass
// and the reporting queries. Wizard sessions live in memory: a half-finished
// close-out survives page reloads but not a process restart, which matches
// how the till is operated (one terminal, one operator, minutes per close).
type CloseOutService struct {
	ledgerRepo  portsrepo.LedgerEntryRepositoryFacade
	closingRepo portsrepo.ClosingRepositoryFacade
	restDays    map[time.Weekday]bool

	mu           sync.Mutex
	sessions     map[string]*domain.CloseOutSession
	sessionByDay map[string]string // business day (YYYY-MM-DD) -> session ID
}

// NewCloseOutService creates a new CloseOutService. restDays are weekdays the
// store does not open; retroactive closings for those days are rejected.
func NewCloseOutService(lr portsrepo.LedgerEntryRepositoryFacade, cr portsrepo.ClosingRepositoryFacade, restDays []time.Weekday) portssvc.CloseOutSvcFacade {
	rest := make(map[time.Weekday]bool, len(restDays))
	for _, d := range restDays {
		rest[d] = true
	}
	return &CloseOutService{
		ledgerRepo:   lr,
		closingRepo:  cr,
		restDays:     rest,
		sessions:     make(map[string]*domain.CloseOutSession),
		sessionByDay: make(map[string]string),
	}
}

// Ensure CloseOutService implements the portssvc.CloseOutSvcFacade interface
var _ portssvc.CloseOutSvcFacade = (*CloseOutService)(nil)

// StartOrResumeClose opens the wizard for a business day, resuming the
// existing session when one is in progress.
func (s *CloseOutService) StartOrResumeClose(ctx context.Context, day time.Time, userID string) (*domain.CloseOutSession, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	businessDay := domain.BusinessDay(day)

	existing, err := s.closingRepo.FindClosingByDay(ctx, businessDay)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check closing record: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: business day %s", apperrors.ErrDuplicateClosing, businessDay.Format(dto.BusinessDayFormat))
	}

	dayKey := businessDay.Format(dto.BusinessDayFormat)

	s.mu.Lock()
	if sessionID, ok := s.sessionByDay[dayKey]; ok {
		session := s.sessions[sessionID]
		s.mu.Unlock()
		logger.Info("Close-out session resumed", slog.String("session_id", session.SessionID), slog.String("business_day", dayKey))
		return copySession(session), nil
	}
	s.mu.Unlock()

	// The opening balance carries forward from the most recent closing.
	openingBalance := decimal.Zero
	previous, err := s.closingRepo.FindLatestClosingBefore(ctx, businessDay)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to load previous closing: %w", err)
	}
	if previous != nil {
		openingBalance = previous.NextOpeningBalance
	}

	session := &domain.CloseOutSession{
		SessionID:      uuid.NewString(),
		BusinessDay:    businessDay,
		Step:           domain.StepSales,
		OpeningBalance: openingBalance,
		Denominations:  domain.DenominationCount{},
		StartedBy:      userID,
		StartedAt:      time.Now(),
	}

	s.mu.Lock()
	// Another request may have won the race for the same day.
	if sessionID, ok := s.sessionByDay[dayKey]; ok {
		winner := s.sessions[sessionID]
		s.mu.Unlock()
		return copySession(winner), nil
	}
	s.sessions[session.SessionID] = session
	s.sessionByDay[dayKey] = session.SessionID
	s.mu.Unlock()

	logger.Info("Close-out session started", slog.String("session_id", session.SessionID), slog.String("business_day", dayKey))
	return copySession(session), nil
}

// GetSession retrieves an in-progress session.
func (s *CloseOutService) GetSession(ctx context.Context, sessionID string) (*domain.CloseOutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return copySession(session), nil
}

// EnterSales records the SALES step inputs.
func (s *CloseOutService) EnterSales(ctx context.Context, sessionID string, req dto.EnterSalesRequest) (*domain.CloseOutSession, error) {
	if req.DeclaredGrossSales.IsNegative() || req.ExtraCashReceived.IsNegative() ||
		(req.OpeningBalance != nil && req.OpeningBalance.IsNegative()) {
		return nil, fmt.Errorf("%w: sales figures cannot be negative", apperrors.ErrInvalidAmount)
	}
	return s.updateSession(sessionID, domain.StepSales, func(session *domain.CloseOutSession) error {
		if req.OpeningBalance != nil {
			session.OpeningBalance = *req.OpeningBalance
		}
		session.DeclaredGrossSales = req.DeclaredGrossSales
		session.ExtraCashReceived = req.ExtraCashReceived
		return nil
	})
}

// EnterCash records the CASH step denomination counts.
func (s *CloseOutService) EnterCash(ctx context.Context, sessionID string, req dto.EnterCashRequest) (*domain.CloseOutSession, error) {
	counts := domain.DenominationCount(req.Denominations)
	if _, err := counts.CashTotal(); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return s.updateSession(sessionID, domain.StepCash, func(session *domain.CloseOutSession) error {
		session.Denominations = counts
		return nil
	})
}

// EnterDigital records the DIGITAL step totals.
func (s *CloseOutService) EnterDigital(ctx context.Context, sessionID string, req dto.EnterDigitalRequest) (*domain.CloseOutSession, error) {
	if req.CreditCard.IsNegative() || req.DebitCard.IsNegative() || req.CardPix.IsNegative() || req.DirectPix.IsNegative() {
		return nil, fmt.Errorf("%w: digital totals cannot be negative", apperrors.ErrInvalidAmount)
	}
	return s.updateSession(sessionID, domain.StepDigital, func(session *domain.CloseOutSession) error {
		session.Digital = domain.DigitalTotals{
			CreditCard: req.CreditCard,
			DebitCard:  req.DebitCard,
			CardPix:    req.CardPix,
			DirectPix:  req.DirectPix,
		}
		return nil
	})
}

// Advance moves one step forward; no skipping.
func (s *CloseOutService) Advance(ctx context.Context, sessionID string) (*domain.CloseOutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if session.Step.IsTerminal() {
		return nil, fmt.Errorf("%w: business day %s", apperrors.ErrDuplicateClosing, session.BusinessDay.Format(dto.BusinessDayFormat))
	}
	next, ok := session.Step.Next()
	if !ok {
		return nil, fmt.Errorf("%w: cannot advance from step %s", apperrors.ErrInvalidState, session.Step)
	}
	session.Step = next
	return copySession(session), nil
}

// Back moves one step backward; CLOSED is terminal.
func (s *CloseOutService) Back(ctx context.Context, sessionID string) (*domain.CloseOutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if session.Step.IsTerminal() {
		return nil, fmt.Errorf("%w: business day %s", apperrors.ErrDuplicateClosing, session.BusinessDay.Format(dto.BusinessDayFormat))
	}
	prev, ok := session.Step.Prev()
	if !ok {
		return nil, fmt.Errorf("%w: cannot go back from step %s", apperrors.ErrInvalidState, session.Step)
	}
	session.Step = prev
	return copySession(session), nil
}

// Summary computes the reconciliation figures from a snapshot of the day's
// open entries. Only valid in the SUMMARY step.
func (s *CloseOutService) Summary(ctx context.Context, sessionID string) (*dto.CloseOutSummary, error) {
	session, err := s.sessionAtStep(sessionID, domain.StepSummary)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledgerRepo.ListOpenEntriesForDay(ctx, session.BusinessDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list open entries for summary: %w", err)
	}

	physicalCash, err := session.PhysicalCash()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	totalExpenses, totalStoreCredit := accounting.DayExpenseAndCreditTotals(entries)
	expected := domain.ExpectedTotal(session.DeclaredGrossSales, session.ExtraCashReceived, session.OpeningBalance, totalExpenses, totalStoreCredit)
	counted := physicalCash.Add(session.Digital.Sum())
	discrepancy := counted.Sub(expected)

	return &dto.CloseOutSummary{
		BusinessDay:            session.BusinessDay.Format(dto.BusinessDayFormat),
		OpeningBalance:         session.OpeningBalance,
		DeclaredGrossSales:     session.DeclaredGrossSales,
		ExtraCashReceived:      session.ExtraCashReceived,
		TotalExpenses:          totalExpenses,
		TotalStoreCreditIssued: totalStoreCredit,
		PhysicalCash:           physicalCash,
		DigitalTotal:           session.Digital.Sum(),
		ExpectedTotal:          expected,
		CountedTotal:           counted,
		Discrepancy:            discrepancy,
		Balanced:               dto.IsBalanced(discrepancy),
		OpenEntryCount:         len(entries),
	}, nil
}

// ConfirmSummary either enters the safe-deposit sub-step (drawer cash above
// zero) or seals the day directly with a zero safe deposit.
func (s *CloseOutService) ConfirmSummary(ctx context.Context, sessionID string) (*dto.ConfirmSummaryResponse, error) {
	session, err := s.sessionAtStep(sessionID, domain.StepSummary)
	if err != nil {
		return nil, err
	}

	physicalCash, err := session.PhysicalCash()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	if physicalCash.IsPositive() {
		s.mu.Lock()
		if live, ok := s.sessions[sessionID]; ok {
			live.Step = domain.StepSafeDeposit
		}
		s.mu.Unlock()
		return &dto.ConfirmSummaryResponse{
			Step:                string(domain.StepSafeDeposit),
			RequiresSafeDeposit: true,
			AvailableCash:       physicalCash,
		}, nil
	}

	record, err := s.seal(ctx, session, decimal.Zero, physicalCash)
	if err != nil {
		return nil, err
	}
	closing := dto.ToClosingRecordResponse(record)
	return &dto.ConfirmSummaryResponse{
		Step:                string(domain.StepClosed),
		RequiresSafeDeposit: false,
		AvailableCash:       physicalCash,
		Closing:             &closing,
	}, nil
}

// ConfirmSafeDeposit completes the close with the given vault deposit.
func (s *CloseOutService) ConfirmSafeDeposit(ctx context.Context, sessionID string, amount decimal.Decimal) (*domain.ClosingRecord, error) {
	session, err := s.sessionAtStep(sessionID, domain.StepSafeDeposit)
	if err != nil {
		return nil, err
	}
	if amount.IsNegative() {
		return nil, fmt.Errorf("%w: safe deposit cannot be negative", apperrors.ErrInvalidAmount)
	}

	physicalCash, err := session.PhysicalCash()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	if amount.GreaterThan(physicalCash) {
		return nil, fmt.Errorf("%w: deposit %s exceeds counted cash %s",
			apperrors.ErrExceedsAvailable, amount.String(), physicalCash.String())
	}

	return s.seal(ctx, session, amount, physicalCash)
}

// seal builds the closing record from the session and commits it. The
// expense, store-credit and derived totals are recomputed inside the closing
// transaction from the locked entry set; the session only supplies the
// operator inputs.
func (s *CloseOutService) seal(ctx context.Context, session *domain.CloseOutSession, safeDeposit, physicalCash decimal.Decimal) (*domain.ClosingRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record := domain.ClosingRecord{
		ClosingID:          uuid.NewString(),
		BusinessDay:        session.BusinessDay,
		DeclaredGrossSales: session.DeclaredGrossSales,
		OpeningBalance:     session.OpeningBalance,
		ExtraCashReceived:  session.ExtraCashReceived,
		Digital:            session.Digital,
		PhysicalCash:       physicalCash,
		SafeDeposit:        safeDeposit,
		Retroactive:        false,
		ClosedBy:           session.StartedBy,
		ClosedAt:           time.Now(),
	}

	sealed, err := s.closingRepo.CloseDay(ctx, record)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateClosing) {
			s.closeSession(session)
			return nil, err
		}
		logger.Error("Failed to seal business day", slog.String("error", err.Error()), slog.String("business_day", session.BusinessDay.Format(dto.BusinessDayFormat)))
		return nil, fmt.Errorf("failed to close business day: %w", err)
	}

	s.closeSession(session)
	logger.Info("Business day closed",
		slog.String("closing_id", sealed.ClosingID),
		slog.String("business_day", sealed.BusinessDay.Format(dto.BusinessDayFormat)),
		slog.String("discrepancy", utils.FormatAmount(sealed.Discrepancy)),
	)
	return sealed, nil
}

// CreateRetroactiveClosing creates a minimal closing record for a past date
// that has no record yet and is not a configured rest day.
func (s *CloseOutService) CreateRetroactiveClosing(ctx context.Context, day time.Time, declaredGrossSales decimal.Decimal, userID string) (*domain.ClosingRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !declaredGrossSales.IsPositive() {
		return nil, fmt.Errorf("%w: declared sales must be positive", apperrors.ErrInvalidAmount)
	}

	businessDay := domain.BusinessDay(day)
	today := domain.BusinessDay(time.Now())
	if !businessDay.Before(today) {
		return nil, fmt.Errorf("%w: retroactive closing requires a past date", apperrors.ErrValidation)
	}
	if s.restDays[businessDay.Weekday()] {
		return nil, fmt.Errorf("%w: %s is a rest day", apperrors.ErrValidation, businessDay.Weekday())
	}

	existing, err := s.closingRepo.FindClosingByDay(ctx, businessDay)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check closing record: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: business day %s", apperrors.ErrDuplicateClosing, businessDay.Format(dto.BusinessDayFormat))
	}

	record := domain.ClosingRecord{
		ClosingID:          uuid.NewString(),
		BusinessDay:        businessDay,
		DeclaredGrossSales: declaredGrossSales,
		Retroactive:        true,
		ClosedBy:           userID,
		ClosedAt:           time.Now(),
	}

	created, err := s.closingRepo.CreateRetroactive(ctx, record)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateClosing) {
			return nil, err
		}
		logger.Error("Failed to create retroactive closing", slog.String("error", err.Error()), slog.String("business_day", businessDay.Format(dto.BusinessDayFormat)))
		return nil, fmt.Errorf("failed to create retroactive closing: %w", err)
	}

	logger.Info("Retroactive closing created",
		slog.String("closing_id", created.ClosingID),
		slog.String("business_day", businessDay.Format(dto.BusinessDayFormat)),
	)
	return created, nil
}

// DailyTotals aggregates one business day's ledger movement.
func (s *CloseOutService) DailyTotals(ctx context.Context, day time.Time) (*domain.DailyTotals, error) {
	businessDay := domain.BusinessDay(day)

	entries, err := s.ledgerRepo.ListEntriesForDay(ctx, businessDay)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for daily totals: %w", err)
	}

	openCount := 0
	for _, e := range entries {
		if !e.Closed {
			openCount++
		}
	}

	closed := false
	if _, err := s.closingRepo.FindClosingByDay(ctx, businessDay); err == nil {
		closed = true
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check closing record for daily totals: %w", err)
	}

	inflows, outflows := accounting.InOutTotals(entries)
	return &domain.DailyTotals{
		BusinessDay:    businessDay,
		Inflows:        inflows,
		Outflows:       outflows,
		NetMovement:    inflows.Sub(outflows),
		ByCategory:     accounting.CategoryTotals(entries),
		OpenEntryCount: openCount,
		Closed:         closed,
	}, nil
}

// MonthlyHistory lists a month of closing records with aggregates.
func (s *CloseOutService) MonthlyHistory(ctx context.Context, month time.Month, year int) (*domain.MonthlyHistory, error) {
	closings, err := s.closingRepo.ListClosingsForMonth(ctx, year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to list closings for month: %w", err)
	}

	history := &domain.MonthlyHistory{
		Month:            month,
		Year:             year,
		Closings:         closings,
		TotalDeclared:    decimal.Zero,
		TotalDiscrepancy: decimal.Zero,
		TotalSafeDeposit: decimal.Zero,
	}
	for _, c := range closings {
		history.TotalDeclared = history.TotalDeclared.Add(c.DeclaredGrossSales)
		history.TotalDiscrepancy = history.TotalDiscrepancy.Add(c.Discrepancy)
		history.TotalSafeDeposit = history.TotalSafeDeposit.Add(c.SafeDeposit)
	}
	return history, nil
}

// GetClosingByDay retrieves the closing record of a business day.
func (s *CloseOutService) GetClosingByDay(ctx context.Context, day time.Time) (*domain.ClosingRecord, error) {
	record, err := s.closingRepo.FindClosingByDay(ctx, domain.BusinessDay(day))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get closing record: %w", err)
	}
	return record, nil
}

// sessionAtStep returns a copy of the session, requiring it to be at the
// given step.
func (s *CloseOutService) sessionAtStep(sessionID string, step domain.CloseOutStep) (*domain.CloseOutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if session.Step.IsTerminal() {
		return nil, fmt.Errorf("%w: business day %s", apperrors.ErrDuplicateClosing, session.BusinessDay.Format(dto.BusinessDayFormat))
	}
	if session.Step != step {
		return nil, fmt.Errorf("%w: expected step %s, session is at %s", apperrors.ErrInvalidState, step, session.Step)
	}
	return copySession(session), nil
}

// updateSession mutates the live session under the lock, requiring it to be
// at the given step.
func (s *CloseOutService) updateSession(sessionID string, step domain.CloseOutStep, apply func(*domain.CloseOutSession) error) (*domain.CloseOutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if session.Step.IsTerminal() {
		return nil, fmt.Errorf("%w: business day %s", apperrors.ErrDuplicateClosing, session.BusinessDay.Format(dto.BusinessDayFormat))
	}
	if session.Step != step {
		return nil, fmt.Errorf("%w: expected step %s, session is at %s", apperrors.ErrInvalidState, step, session.Step)
	}
	if err := apply(session); err != nil {
		return nil, err
	}
	return copySession(session), nil
}

// closeSession marks the session sealed and frees its business-day slot. The
// session record stays so a repeated confirm against it reports the duplicate
// closing rather than a missing session.
func (s *CloseOutService) closeSession(session *domain.CloseOutSession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if live, ok := s.sessions[session.SessionID]; ok {
		live.Step = domain.StepClosed
	}
	delete(s.sessionByDay, session.BusinessDay.Format(dto.BusinessDayFormat))
}

// copySession returns a detached copy so callers never share the live map
// entry. The denomination map is copied too.
func copySession(session *domain.CloseOutSession) *domain.CloseOutSession {
	out := *session
	out.Denominations = make(domain.DenominationCount, len(session.Denominations))
	for k, v := range session.Denominations {
		out.Denominations[k] = v
	}
	return &out
}
