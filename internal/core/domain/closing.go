package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Denominations is the fixed set of Brazilian Real notes and coins accepted
// by the physical cash count, largest first.
var Denominations = []decimal.Decimal{
	decimal.NewFromInt(200),
	decimal.NewFromInt(100),
	decimal.NewFromInt(50),
	decimal.NewFromInt(20),
	decimal.NewFromInt(10),
	decimal.NewFromInt(5),
	decimal.NewFromInt(2),
	decimal.NewFromInt(1),
	decimal.RequireFromString("0.50"),
	decimal.RequireFromString("0.25"),
	decimal.RequireFromString("0.10"),
	decimal.RequireFromString("0.05"),
}

// DenominationCount maps a denomination value (its canonical string, e.g.
// "200" or "0.50") to the number of notes or coins counted. It is a transient
// input to a closing record, never persisted on its own.
type DenominationCount map[string]int64

// CashTotal computes the physical cash counted from a denomination count.
// Unknown denominations and negative counts are rejected.
func (dc DenominationCount) CashTotal() (decimal.Decimal, error) {
	valid := make(map[string]decimal.Decimal, len(Denominations))
	for _, d := range Denominations {
		valid[d.String()] = d
	}
	total := decimal.Zero
	for key, count := range dc {
		value, ok := valid[key]
		if !ok {
			return decimal.Zero, fmt.Errorf("unknown denomination %q", key)
		}
		if count < 0 {
			return decimal.Zero, fmt.Errorf("negative count for denomination %q", key)
		}
		total = total.Add(value.Mul(decimal.NewFromInt(count)))
	}
	return total, nil
}

// DigitalTotals holds the four digital payment totals entered at close-out.
type DigitalTotals struct {
	CreditCard decimal.Decimal `json:"creditCard"`
	DebitCard  decimal.Decimal `json:"debitCard"`
	CardPix    decimal.Decimal `json:"cardPix"`   // pix received through the card terminal
	DirectPix  decimal.Decimal `json:"directPix"` // pix received directly on the store account
}

// Sum returns the combined digital total.
func (d DigitalTotals) Sum() decimal.Decimal {
	return d.CreditCard.Add(d.DebitCard).Add(d.CardPix).Add(d.DirectPix)
}

// ClosingRecord is the signed snapshot of one business day's reconciliation.
// Exactly one record exists per business day; records are append-only.
type ClosingRecord struct {
	ClosingID          string          `json:"closingID"`
	BusinessDay        time.Time       `json:"businessDay"`
	DeclaredGrossSales decimal.Decimal `json:"declaredGrossSales"`
	OpeningBalance     decimal.Decimal `json:"openingBalance"` // cash carried from the prior day
	ExtraCashReceived  decimal.Decimal `json:"extraCashReceived"`
	Digital            DigitalTotals   `json:"digital"`
	PhysicalCash       decimal.Decimal `json:"physicalCash"` // derived from the denomination count

	TotalExpenses          decimal.Decimal `json:"totalExpenses"`
	TotalStoreCreditIssued decimal.Decimal `json:"totalStoreCreditIssued"`

	ExpectedTotal decimal.Decimal `json:"expectedTotal"`
	CountedTotal  decimal.Decimal `json:"countedTotal"`
	Discrepancy   decimal.Decimal `json:"discrepancy"` // countedTotal - expectedTotal, sign preserved

	SafeDeposit        decimal.Decimal `json:"safeDeposit"`
	NextOpeningBalance decimal.Decimal `json:"nextOpeningBalance"` // physicalCash - safeDeposit

	Retroactive bool      `json:"retroactive"`
	ClosedBy    string    `json:"closedBy"`
	ClosedAt    time.Time `json:"closedAt"`
}

// ExpectedTotal computes what the till should hold given the day's inputs.
func ExpectedTotal(declaredGrossSales, extraCash, openingBalance, totalExpenses, totalStoreCredit decimal.Decimal) decimal.Decimal {
	return declaredGrossSales.Add(extraCash).Add(openingBalance).Sub(totalExpenses).Sub(totalStoreCredit)
}
