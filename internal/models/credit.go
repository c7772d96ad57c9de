package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus mirrors domain.DebtStatus at the storage layer.
type DebtStatus string

const (
	DebtPending DebtStatus = "PENDING"
	DebtPaid    DebtStatus = "PAID"
)

// Customer maps the customers table.
type Customer struct {
	CustomerID  string          `json:"customerID"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	AuditFields
}

// CustomerDebt maps the customer_debts table.
type CustomerDebt struct {
	DebtID      string          `json:"debtID"`
	CustomerID  string          `json:"customerID"`
	EntryID     string          `json:"entryID"`
	Description string          `json:"description"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Status      DebtStatus      `json:"status"`
	DueDate     time.Time       `json:"dueDate"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}
