package mapping

import (
	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/models"
)

// ToModelSupplier converts a domain Supplier to a model Supplier.
func ToModelSupplier(d domain.Supplier) models.Supplier {
	return models.Supplier{
		SupplierID:  d.SupplierID,
		Name:        d.Name,
		Phone:       d.Phone,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainSupplier converts a model Supplier to a domain Supplier.
func ToDomainSupplier(m models.Supplier) domain.Supplier {
	return domain.Supplier{
		SupplierID:  m.SupplierID,
		Name:        m.Name,
		Phone:       m.Phone,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelConsignmentProduct converts a domain ConsignmentProduct to its model.
func ToModelConsignmentProduct(d domain.ConsignmentProduct) models.ConsignmentProduct {
	return models.ConsignmentProduct{
		ProductID:    d.ProductID,
		SupplierID:   d.SupplierID,
		Name:         d.Name,
		CostPrice:    d.CostPrice,
		SalePrice:    d.SalePrice,
		CurrentStock: d.CurrentStock,
		SoldQty:      d.SoldQty,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConsignmentProduct converts a model ConsignmentProduct to its domain type.
func ToDomainConsignmentProduct(m models.ConsignmentProduct) domain.ConsignmentProduct {
	return domain.ConsignmentProduct{
		ProductID:    m.ProductID,
		SupplierID:   m.SupplierID,
		Name:         m.Name,
		CostPrice:    m.CostPrice,
		SalePrice:    m.SalePrice,
		CurrentStock: m.CurrentStock,
		SoldQty:      m.SoldQty,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}
