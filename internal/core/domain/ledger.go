package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryCategory classifies a daily ledger entry. The sign of the movement is
// implied by the category: expenses and consignment settlements are outflows,
// everything else is an inflow.
type EntryCategory string

const (
	CategoryExpense               EntryCategory = "EXPENSE"
	CategoryDirectDeposit         EntryCategory = "DIRECT_DEPOSIT"
	CategoryStoreCredit           EntryCategory = "STORE_CREDIT"
	CategoryUncatalogedSale       EntryCategory = "UNCATALOGED_SALE"
	CategoryConsignmentSale       EntryCategory = "CONSIGNMENT_SALE"
	CategoryConsignmentSettlement EntryCategory = "CONSIGNMENT_SETTLEMENT"
	CategoryDeliveryPlatformSale  EntryCategory = "DELIVERY_PLATFORM_SALE"
)

// IsValid reports whether the category is one of the known entry categories.
func (c EntryCategory) IsValid() bool {
	switch c {
	case CategoryExpense, CategoryDirectDeposit, CategoryStoreCredit,
		CategoryUncatalogedSale, CategoryConsignmentSale,
		CategoryConsignmentSettlement, CategoryDeliveryPlatformSale:
		return true
	}
	return false
}

// IsOutflow reports whether entries of this category remove money from the till.
func (c EntryCategory) IsOutflow() bool {
	return c == CategoryExpense || c == CategoryConsignmentSettlement
}

// LedgerEntry is one line of money movement for a given business day.
// Entries stay editable while the day is open; once the day is closed they
// become immutable history linked to the closing record.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	BusinessDay     time.Time       `json:"businessDay"` // date only, midnight local time
	Category        EntryCategory   `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"` // always >= 0, sign implied by category
	CustomerID      *string         `json:"customerID,omitempty"` // set for STORE_CREDIT
	SupplierID      *string         `json:"supplierID,omitempty"` // set for CONSIGNMENT_*
	Closed          bool            `json:"closed"`
	ClosingRecordID *string         `json:"closingRecordID,omitempty"`
	AuditFields
}

// SignedAmount returns the amount with the sign implied by the category.
func (e LedgerEntry) SignedAmount() decimal.Decimal {
	if e.Category.IsOutflow() {
		return e.Amount.Neg()
	}
	return e.Amount
}
