package mapping

import (
	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/models"
)

// ToModelClosingRecord converts a domain ClosingRecord to a model ClosingRecord.
func ToModelClosingRecord(d domain.ClosingRecord) models.ClosingRecord {
	return models.ClosingRecord{
		ClosingID:          d.ClosingID,
		BusinessDay:        d.BusinessDay,
		DeclaredGrossSales: d.DeclaredGrossSales,
		OpeningBalance:     d.OpeningBalance,
		ExtraCashReceived:  d.ExtraCashReceived,

		CreditCardTotal: d.Digital.CreditCard,
		DebitCardTotal:  d.Digital.DebitCard,
		CardPixTotal:    d.Digital.CardPix,
		DirectPixTotal:  d.Digital.DirectPix,

		PhysicalCash:           d.PhysicalCash,
		TotalExpenses:          d.TotalExpenses,
		TotalStoreCreditIssued: d.TotalStoreCreditIssued,

		ExpectedTotal: d.ExpectedTotal,
		CountedTotal:  d.CountedTotal,
		Discrepancy:   d.Discrepancy,

		SafeDeposit:        d.SafeDeposit,
		NextOpeningBalance: d.NextOpeningBalance,

		Retroactive: d.Retroactive,
		ClosedBy:    d.ClosedBy,
		ClosedAt:    d.ClosedAt,
	}
}

// ToDomainClosingRecord converts a model ClosingRecord to a domain ClosingRecord.
func ToDomainClosingRecord(m models.ClosingRecord) domain.ClosingRecord {
	return domain.ClosingRecord{
		ClosingID:          m.ClosingID,
		BusinessDay:        m.BusinessDay,
		DeclaredGrossSales: m.DeclaredGrossSales,
		OpeningBalance:     m.OpeningBalance,
		ExtraCashReceived:  m.ExtraCashReceived,

		Digital: domain.DigitalTotals{
			CreditCard: m.CreditCardTotal,
			DebitCard:  m.DebitCardTotal,
			CardPix:    m.CardPixTotal,
			DirectPix:  m.DirectPixTotal,
		},

		PhysicalCash:           m.PhysicalCash,
		TotalExpenses:          m.TotalExpenses,
		TotalStoreCreditIssued: m.TotalStoreCreditIssued,

		ExpectedTotal: m.ExpectedTotal,
		CountedTotal:  m.CountedTotal,
		Discrepancy:   m.Discrepancy,

		SafeDeposit:        m.SafeDeposit,
		NextOpeningBalance: m.NextOpeningBalance,

		Retroactive: m.Retroactive,
		ClosedBy:    m.ClosedBy,
		ClosedAt:    m.ClosedAt,
	}
}
