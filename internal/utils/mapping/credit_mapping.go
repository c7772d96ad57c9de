package mapping

import (
	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/belafarma/backoffice/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:  d.CustomerID,
		Name:        d.Name,
		Phone:       d.Phone,
		CreditLimit: d.CreditLimit,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:  m.CustomerID,
		Name:        m.Name,
		Phone:       m.Phone,
		CreditLimit: m.CreditLimit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelCustomerDebt converts a domain CustomerDebt to a model CustomerDebt.
func ToModelCustomerDebt(d domain.CustomerDebt) models.CustomerDebt {
	return models.CustomerDebt{
		DebtID:      d.DebtID,
		CustomerID:  d.CustomerID,
		EntryID:     d.EntryID,
		Description: d.Description,
		TotalValue:  d.TotalValue,
		Status:      models.DebtStatus(d.Status),
		DueDate:     d.DueDate,
		PaidAt:      d.PaidAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomerDebt converts a model CustomerDebt to a domain CustomerDebt.
func ToDomainCustomerDebt(m models.CustomerDebt) domain.CustomerDebt {
	return domain.CustomerDebt{
		DebtID:      m.DebtID,
		CustomerID:  m.CustomerID,
		EntryID:     m.EntryID,
		Description: m.Description,
		TotalValue:  m.TotalValue,
		Status:      domain.DebtStatus(m.Status),
		DueDate:     m.DueDate,
		PaidAt:      m.PaidAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
