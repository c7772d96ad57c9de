package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CloseOutStep is one state of the till close-out wizard. Navigation is
// strictly linear; CLOSED is terminal.
type CloseOutStep string

const (
	StepSales       CloseOutStep = "SALES"
	StepCash        CloseOutStep = "CASH"
	StepDigital     CloseOutStep = "DIGITAL"
	StepSummary     CloseOutStep = "SUMMARY"
	StepSafeDeposit CloseOutStep = "SAFE_DEPOSIT" // reached only when drawer cash > 0
	StepClosed      CloseOutStep = "CLOSED"
)

// nextStep and prevStep form the exhaustive transition table of the wizard.
// The SUMMARY -> SAFE_DEPOSIT/CLOSED branch is a guarded confirm transition
// handled by the engine, not part of plain forward navigation.
var nextStep = map[CloseOutStep]CloseOutStep{
	StepSales:   StepCash,
	StepCash:    StepDigital,
	StepDigital: StepSummary,
}

var prevStep = map[CloseOutStep]CloseOutStep{
	StepCash:        StepSales,
	StepDigital:     StepCash,
	StepSummary:     StepDigital,
	StepSafeDeposit: StepSummary,
}

// Next returns the step after s in plain forward navigation, or false when
// forward navigation is not allowed from s.
func (s CloseOutStep) Next() (CloseOutStep, bool) {
	n, ok := nextStep[s]
	return n, ok
}

// Prev returns the step before s, or false when backward navigation is not
// allowed from s.
func (s CloseOutStep) Prev() (CloseOutStep, bool) {
	p, ok := prevStep[s]
	return p, ok
}

// IsTerminal reports whether the wizard cannot leave s.
func (s CloseOutStep) IsTerminal() bool {
	return s == StepClosed
}

// CloseOutSession carries the operator's in-progress close-out inputs. The
// engine itself is stateless between calls; the session is owned by the
// session store on behalf of the UI so a half-completed close-out survives
// page reloads.
type CloseOutSession struct {
	SessionID   string       `json:"sessionID"`
	BusinessDay time.Time    `json:"businessDay"`
	Step        CloseOutStep `json:"step"`

	OpeningBalance     decimal.Decimal   `json:"openingBalance"`
	DeclaredGrossSales decimal.Decimal   `json:"declaredGrossSales"`
	ExtraCashReceived  decimal.Decimal   `json:"extraCashReceived"`
	Denominations      DenominationCount `json:"denominations"`
	Digital            DigitalTotals     `json:"digital"`

	StartedBy string    `json:"startedBy"`
	StartedAt time.Time `json:"startedAt"`
}

// PhysicalCash derives the counted drawer cash from the session's
// denomination counts.
func (s CloseOutSession) PhysicalCash() (decimal.Decimal, error) {
	return s.Denominations.CashTotal()
}
