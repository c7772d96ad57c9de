package mapping

import (
	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/models"
)

// ToModelDeliverySale converts a domain DeliveryPlatformSale to its model.
func ToModelDeliverySale(d domain.DeliveryPlatformSale) models.DeliveryPlatformSale {
	return models.DeliveryPlatformSale{
		SaleID:       d.SaleID,
		Platform:     d.Platform,
		Description:  d.Description,
		GrossValue:   d.GrossValue,
		FeePercent:   d.FeePercent,
		NetValue:     d.NetValue,
		SaleDate:     d.SaleDate,
		DueDate:      d.DueDate,
		Status:       models.DeliverySaleStatus(d.Status),
		ReconciledAt: d.ReconciledAt,
		EntryID:      d.EntryID,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDeliverySale converts a model DeliveryPlatformSale to its domain type.
func ToDomainDeliverySale(m models.DeliveryPlatformSale) domain.DeliveryPlatformSale {
	return domain.DeliveryPlatformSale{
		SaleID:       m.SaleID,
		Platform:     m.Platform,
		Description:  m.Description,
		GrossValue:   m.GrossValue,
		FeePercent:   m.FeePercent,
		NetValue:     m.NetValue,
		SaleDate:     m.SaleDate,
		DueDate:      m.DueDate,
		Status:       domain.DeliverySaleStatus(m.Status),
		ReconciledAt: m.ReconciledAt,
		EntryID:      m.EntryID,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
