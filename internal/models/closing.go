package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ClosingRecord maps the closing_records table. The four digital totals are
// stored as flat columns.
type ClosingRecord struct {
	ClosingID          string          `json:"closingID"`
	BusinessDay        time.Time       `json:"businessDay"`
	DeclaredGrossSales decimal.Decimal `json:"declaredGrossSales"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"`
	ExtraCashReceived  decimal.Decimal `json:"extraCashReceived"`

	CreditCardTotal decimal.Decimal `json:"creditCardTotal"`
	DebitCardTotal  decimal.Decimal `json:"debitCardTotal"`
	CardPixTotal    decimal.Decimal `json:"cardPixTotal"`
	DirectPixTotal  decimal.Decimal `json:"directPixTotal"`

	PhysicalCash           decimal.Decimal `json:"physicalCash"`
	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	TotalStoreCreditIssued decimal.Decimal `json:"totalStoreCreditIssued"`

	ExpectedTotal decimal.Decimal `json:"expectedTotal"`
	CountedTotal  decimal.Decimal `json:"countedTotal"`
	Discrepancy   decimal.Decimal `json:"discrepancy"`

	SafeDeposit        decimal.Decimal `json:"safeDeposit"`
	NextOpeningBalance decimal.Decimal `json:"nextOpeningBalance"`

	Retroactive bool      `json:"retroactive"`
	ClosedBy    string    `json:"closedBy"`
	ClosedAt    time.Time `json:"closedAt"`
}
