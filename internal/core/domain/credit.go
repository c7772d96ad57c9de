package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus indicates the state of a customer debt. Overdue is derived from
// the due date on read, never stored.
type DebtStatus string

const (
	DebtPending DebtStatus = "PENDING"
	DebtPaid    DebtStatus = "PAID"
)

// Customer is a store-credit customer with an advisory credit limit.
type Customer struct {
	CustomerID  string          `json:"customerID"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	AuditFields
}

// CustomerDebt tracks one deferred-payment (crediario) sale. It is created
// atomically with its STORE_CREDIT ledger entry.
type CustomerDebt struct {
	DebtID      string          `json:"debtID"`
	CustomerID  string          `json:"customerID"`
	EntryID     string          `json:"entryID"` // the STORE_CREDIT ledger entry
	Description string          `json:"description"`
	TotalValue  decimal.Decimal `json:"totalValue"` // remaining value; partial payments reduce it in place
	Status      DebtStatus      `json:"status"`
	DueDate     time.Time       `json:"dueDate"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	AuditFields
}

// IsOverdue reports whether a still-pending debt is past its due date.
func (d CustomerDebt) IsOverdue(now time.Time) bool {
	return d.Status == DebtPending && calendarDate(d.DueDate).Before(calendarDate(now))
}

// CreditQuote is the read-only projection used to warn before committing a
// new store-credit sale. Exceeding the limit is advice, not a hard block.
type CreditQuote struct {
	CustomerID       string          `json:"customerID"`
	PendingTotal     decimal.Decimal `json:"pendingTotal"`
	ProjectedTotal   decimal.Decimal `json:"projectedTotal"`
	CreditLimit      decimal.Decimal `json:"creditLimit"`
	WouldExceedLimit bool            `json:"wouldExceedLimit"`
}
