package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyTotals aggregates a single business day's ledger movement for
// dashboard queries. It is computed on read, never stored.
type DailyTotals struct {
	BusinessDay    time.Time                       `json:"businessDay"`
	Inflows        decimal.Decimal                 `json:"inflows"`
	Outflows       decimal.Decimal                 `json:"outflows"`
	NetMovement    decimal.Decimal                 `json:"netMovement"`
	ByCategory     map[EntryCategory]decimal.Decimal `json:"byCategory"`
	OpenEntryCount int                             `json:"openEntryCount"`
	Closed         bool                            `json:"closed"`
}

// MonthlyHistory is one month of closing records plus the month's aggregate
// figures.
type MonthlyHistory struct {
	Month            time.Month      `json:"month"`
	Year             int             `json:"year"`
	Closings         []ClosingRecord `json:"closings"`
	TotalDeclared    decimal.Decimal `json:"totalDeclared"`
	TotalDiscrepancy decimal.Decimal `json:"totalDiscrepancy"`
	TotalSafeDeposit decimal.Decimal `json:"totalSafeDeposit"`
}
