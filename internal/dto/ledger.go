package dto

import (
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLedgerEntryRequest is the payload for appending a daily ledger entry.
// BusinessDay defaults to today when omitted.
type CreateLedgerEntryRequest struct {
	BusinessDay *time.Time      `json:"businessDay,omitempty"`
	Category    string          `json:"category" binding:"required"`
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	CustomerID  *string         `json:"customerID,omitempty"`
	SupplierID  *string         `json:"supplierID,omitempty"`
}

// UpdateLedgerEntryRequest patches the mutable fields of an open entry.
type UpdateLedgerEntryRequest struct {
	Description *string          `json:"description,omitempty"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
}

// LedgerEntryResponse defines the data returned for a ledger entry.
type LedgerEntryResponse struct {
	EntryID         string          `json:"entryID"`
	BusinessDay     string          `json:"businessDay"` // YYYY-MM-DD
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signedAmount"`
	CustomerID      *string         `json:"customerID,omitempty"`
	SupplierID      *string         `json:"supplierID,omitempty"`
	Closed          bool            `json:"closed"`
	ClosingRecordID *string         `json:"closingRecordID,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	CreatedBy       string          `json:"createdBy"`
}

// ListLedgerEntriesResponse is a page of entries with the token for the next page.
type ListLedgerEntriesResponse struct {
	Entries   []LedgerEntryResponse `json:"entries"`
	NextToken *string               `json:"nextToken,omitempty"`
}

// BusinessDayFormat is the wire format for business days.
const BusinessDayFormat = "2006-01-02"

// ToLedgerEntryResponse converts a domain.LedgerEntry to its response DTO.
func ToLedgerEntryResponse(e *domain.LedgerEntry) LedgerEntryResponse {
	return LedgerEntryResponse{
		EntryID:         e.EntryID,
		BusinessDay:     e.BusinessDay.Format(BusinessDayFormat),
		Category:        string(e.Category),
		Description:     e.Description,
		Amount:          e.Amount,
		SignedAmount:    e.SignedAmount(),
		CustomerID:      e.CustomerID,
		SupplierID:      e.SupplierID,
		Closed:          e.Closed,
		ClosingRecordID: e.ClosingRecordID,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToLedgerEntryResponses converts a slice of domain entries to response DTOs.
func ToLedgerEntryResponses(entries []domain.LedgerEntry) []LedgerEntryResponse {
	responses := make([]LedgerEntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToLedgerEntryResponse(&entries[i])
	}
	return responses
}
