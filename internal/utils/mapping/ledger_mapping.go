package mapping

import (
	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/models"
)

// ToModelLedgerEntry converts a domain LedgerEntry to a model LedgerEntry.
func ToModelLedgerEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:         d.EntryID,
		BusinessDay:     d.BusinessDay,
		Category:        models.EntryCategory(d.Category),
		Description:     d.Description,
		Amount:          d.Amount,
		CustomerID:      d.CustomerID,
		SupplierID:      d.SupplierID,
		Closed:          d.Closed,
		ClosingRecordID: d.ClosingRecordID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLedgerEntry converts a model LedgerEntry to a domain LedgerEntry.
func ToDomainLedgerEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:         m.EntryID,
		BusinessDay:     m.BusinessDay,
		Category:        domain.EntryCategory(m.Category),
		Description:     m.Description,
		Amount:          m.Amount,
		CustomerID:      m.CustomerID,
		SupplierID:      m.SupplierID,
		Closed:          m.Closed,
		ClosingRecordID: m.ClosingRecordID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}
