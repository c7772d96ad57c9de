package dto

import (
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// discrepancyTolerance is the display-only threshold under which a day is
// shown as balanced. The stored discrepancy stays exact.
var discrepancyTolerance = decimal.RequireFromString("0.10")

// StartCloseOutRequest opens or resumes the close-out wizard for a day.
// Day defaults to today when omitted.
type StartCloseOutRequest struct {
	Day *time.Time `json:"day,omitempty"`
}

// EnterSalesRequest is the SALES step input. OpeningBalance left out keeps
// the prefilled carry-forward; zero is a legal override for an empty drawer.
type EnterSalesRequest struct {
	OpeningBalance     *decimal.Decimal `json:"openingBalance,omitempty"`
	DeclaredGrossSales decimal.Decimal  `json:"declaredGrossSales" binding:"required"`
	ExtraCashReceived  decimal.Decimal  `json:"extraCashReceived"`
}

// EnterCashRequest is the CASH step input: denomination value -> count.
type EnterCashRequest struct {
	Denominations map[string]int64 `json:"denominations" binding:"required"`
}

// EnterDigitalRequest is the DIGITAL step input.
type EnterDigitalRequest struct {
	CreditCard decimal.Decimal `json:"creditCard"`
	DebitCard  decimal.Decimal `json:"debitCard"`
	CardPix    decimal.Decimal `json:"cardPix"`
	DirectPix  decimal.Decimal `json:"directPix"`
}

// ConfirmSafeDepositRequest completes the safe-deposit sub-step.
type ConfirmSafeDepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// RetroactiveClosingRequest records declared sales for a past, never-closed day.
type RetroactiveClosingRequest struct {
	Day                time.Time       `json:"day" binding:"required"`
	DeclaredGrossSales decimal.Decimal `json:"declaredGrossSales" binding:"required"`
}

// CloseOutSessionResponse is the wizard state returned after every step call.
type CloseOutSessionResponse struct {
	SessionID          string              `json:"sessionID"`
	BusinessDay        string              `json:"businessDay"`
	Step               string              `json:"step"`
	OpeningBalance     decimal.Decimal     `json:"openingBalance"`
	DeclaredGrossSales decimal.Decimal     `json:"declaredGrossSales"`
	ExtraCashReceived  decimal.Decimal     `json:"extraCashReceived"`
	Denominations      map[string]int64    `json:"denominations,omitempty"`
	PhysicalCash       decimal.Decimal     `json:"physicalCash"`
	Digital            EnterDigitalRequest `json:"digital"`
	StartedBy          string              `json:"startedBy"`
	StartedAt          time.Time           `json:"startedAt"`
}

// CloseOutSummary is the SUMMARY step projection: all figures the operator
// confirms before the day is sealed.
type CloseOutSummary struct {
	BusinessDay            string          `json:"businessDay"`
	OpeningBalance         decimal.Decimal `json:"openingBalance"`
	DeclaredGrossSales     decimal.Decimal `json:"declaredGrossSales"`
	ExtraCashReceived      decimal.Decimal `json:"extraCashReceived"`
	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	TotalStoreCreditIssued decimal.Decimal `json:"totalStoreCreditIssued"`
	PhysicalCash           decimal.Decimal `json:"physicalCash"`
	DigitalTotal           decimal.Decimal `json:"digitalTotal"`
	ExpectedTotal          decimal.Decimal `json:"expectedTotal"`
	CountedTotal           decimal.Decimal `json:"countedTotal"`
	Discrepancy            decimal.Decimal `json:"discrepancy"`
	Balanced               bool            `json:"balanced"` // display hint only
	OpenEntryCount         int             `json:"openEntryCount"`
}

// ConfirmSummaryResponse reports what confirming the summary led to: either
// the safe-deposit sub-step, or the final closing when the drawer was empty.
type ConfirmSummaryResponse struct {
	Step                string                 `json:"step"`
	RequiresSafeDeposit bool                   `json:"requiresSafeDeposit"`
	AvailableCash       decimal.Decimal        `json:"availableCash"`
	Closing             *ClosingRecordResponse `json:"closing,omitempty"`
}

// ClosingRecordResponse defines the data returned for a closing record.
type ClosingRecordResponse struct {
	ClosingID          string              `json:"closingID"`
	BusinessDay        string              `json:"businessDay"`
	DeclaredGrossSales decimal.Decimal     `json:"declaredGrossSales"`
	OpeningBalance     decimal.Decimal     `json:"openingBalance"`
	ExtraCashReceived  decimal.Decimal     `json:"extraCashReceived"`
	Digital            EnterDigitalRequest `json:"digital"`
	PhysicalCash       decimal.Decimal     `json:"physicalCash"`

	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	TotalStoreCreditIssued decimal.Decimal `json:"totalStoreCreditIssued"`

	ExpectedTotal decimal.Decimal `json:"expectedTotal"`
	CountedTotal  decimal.Decimal `json:"countedTotal"`
	Discrepancy   decimal.Decimal `json:"discrepancy"`
	Balanced      bool            `json:"balanced"` // display hint only

	SafeDeposit        decimal.Decimal `json:"safeDeposit"`
	NextOpeningBalance decimal.Decimal `json:"nextOpeningBalance"`

	Retroactive bool      `json:"retroactive"`
	ClosedBy    string    `json:"closedBy"`
	ClosedAt    time.Time `json:"closedAt"`
}

// DailyTotalsResponse aggregates a day's ledger movement for dashboards.
type DailyTotalsResponse struct {
	BusinessDay    string                     `json:"businessDay"`
	Inflows        decimal.Decimal            `json:"inflows"`
	Outflows       decimal.Decimal            `json:"outflows"`
	NetMovement    decimal.Decimal            `json:"netMovement"`
	ByCategory     map[string]decimal.Decimal `json:"byCategory"`
	OpenEntryCount int                        `json:"openEntryCount"`
	Closed         bool                       `json:"closed"`
}

// MonthlyHistoryResponse is one month of closings with aggregate figures.
type MonthlyHistoryResponse struct {
	Month            int                     `json:"month"`
	Year             int                     `json:"year"`
	Closings         []ClosingRecordResponse `json:"closings"`
	TotalDeclared    decimal.Decimal         `json:"totalDeclared"`
	TotalDiscrepancy decimal.Decimal         `json:"totalDiscrepancy"`
	TotalSafeDeposit decimal.Decimal         `json:"totalSafeDeposit"`
}

// IsBalanced applies the display tolerance to a raw discrepancy.
func IsBalanced(discrepancy decimal.Decimal) bool {
	return discrepancy.Abs().LessThan(discrepancyTolerance)
}

// ToCloseOutSessionResponse converts a wizard session to its response DTO.
func ToCloseOutSessionResponse(s *domain.CloseOutSession) CloseOutSessionResponse {
	cash, err := s.PhysicalCash()
	if err != nil {
		cash = decimal.Zero
	}
	return CloseOutSessionResponse{
		SessionID:          s.SessionID,
		BusinessDay:        s.BusinessDay.Format(BusinessDayFormat),
		Step:               string(s.Step),
		OpeningBalance:     s.OpeningBalance,
		DeclaredGrossSales: s.DeclaredGrossSales,
		ExtraCashReceived:  s.ExtraCashReceived,
		Denominations:      s.Denominations,
		PhysicalCash:       cash,
		Digital: EnterDigitalRequest{
			CreditCard: s.Digital.CreditCard,
			DebitCard:  s.Digital.DebitCard,
			CardPix:    s.Digital.CardPix,
			DirectPix:  s.Digital.DirectPix,
		},
		StartedBy: s.StartedBy,
		StartedAt: s.StartedAt,
	}
}

// ToClosingRecordResponse converts a domain.ClosingRecord to its response DTO.
func ToClosingRecordResponse(r *domain.ClosingRecord) ClosingRecordResponse {
	return ClosingRecordResponse{
		ClosingID:          r.ClosingID,
		BusinessDay:        r.BusinessDay.Format(BusinessDayFormat),
		DeclaredGrossSales: r.DeclaredGrossSales,
		OpeningBalance:     r.OpeningBalance,
		ExtraCashReceived:  r.ExtraCashReceived,
		Digital: EnterDigitalRequest{
			CreditCard: r.Digital.CreditCard,
			DebitCard:  r.Digital.DebitCard,
			CardPix:    r.Digital.CardPix,
			DirectPix:  r.Digital.DirectPix,
		},
		PhysicalCash:           r.PhysicalCash,
		TotalExpenses:          r.TotalExpenses,
		TotalStoreCreditIssued: r.TotalStoreCreditIssued,
		ExpectedTotal:          r.ExpectedTotal,
		CountedTotal:           r.CountedTotal,
		Discrepancy:            r.Discrepancy,
		Balanced:               IsBalanced(r.Discrepancy),
		SafeDeposit:            r.SafeDeposit,
		NextOpeningBalance:     r.NextOpeningBalance,
		Retroactive:            r.Retroactive,
		ClosedBy:               r.ClosedBy,
		ClosedAt:               r.ClosedAt,
	}
}

// ToDailyTotalsResponse converts domain.DailyTotals to its response DTO.
func ToDailyTotalsResponse(t *domain.DailyTotals) DailyTotalsResponse {
	byCategory := make(map[string]decimal.Decimal, len(t.ByCategory))
	for category, amount := range t.ByCategory {
		byCategory[string(category)] = amount
	}
	return DailyTotalsResponse{
		BusinessDay:    t.BusinessDay.Format(BusinessDayFormat),
		Inflows:        t.Inflows,
		Outflows:       t.Outflows,
		NetMovement:    t.NetMovement,
		ByCategory:     byCategory,
		OpenEntryCount: t.OpenEntryCount,
		Closed:         t.Closed,
	}
}

// ToMonthlyHistoryResponse converts domain.MonthlyHistory to its response DTO.
func ToMonthlyHistoryResponse(h *domain.MonthlyHistory) MonthlyHistoryResponse {
	closings := make([]ClosingRecordResponse, len(h.Closings))
	for i := range h.Closings {
		closings[i] = ToClosingRecordResponse(&h.Closings[i])
	}
	return MonthlyHistoryResponse{
		Month:            int(h.Month),
		Year:             h.Year,
		Closings:         closings,
		TotalDeclared:    h.TotalDeclared,
		TotalDiscrepancy: h.TotalDiscrepancy,
		TotalSafeDeposit: h.TotalSafeDeposit,
	}
}
