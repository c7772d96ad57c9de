package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryCategory mirrors domain.EntryCategory at the storage layer.
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

// LedgerEntry maps the ledger_entries table.
type LedgerEntry struct {
	EntryID         string          `json:"entryID"`
	BusinessDay     time.Time       `json:"businessDay"`
	Category        EntryCategory   `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	CustomerID      *string         `json:"customerID,omitempty"`
	SupplierID      *string         `json:"supplierID,omitempty"`
	Closed          bool            `json:"closed"`
	ClosingRecordID *string         `json:"closingRecordID,omitempty"`
	AuditFields
}
