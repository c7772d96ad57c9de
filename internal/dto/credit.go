package dto

import (
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCustomerRequest registers a store-credit customer.
type CreateCustomerRequest struct {
	Name        string          `json:"name" binding:"required"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID  string          `json:"customerID"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone"`
	CreditLimit decimal.Decimal `json:"creditLimit"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// QuoteCreditRequest asks what a new store-credit sale would do to the
// customer's standing.
type QuoteCreditRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// CreditQuoteResponse is the advisory projection; exceeding the limit is a
// warning, the sale may still proceed.
type CreditQuoteResponse struct {
	CustomerID       string          `json:"customerID"`
	PendingTotal     decimal.Decimal `json:"pendingTotal"`
	ProjectedTotal   decimal.Decimal `json:"projectedTotal"`
	CreditLimit      decimal.Decimal `json:"creditLimit"`
	WouldExceedLimit bool            `json:"wouldExceedLimit"`
}

// CreateDebtRequest records a store-credit sale. DueDate defaults to thirty
// days after the sale when omitted.
type CreateDebtRequest struct {
	CustomerID  string           `json:"customerID" binding:"required"`
	Amount      decimal.Decimal  `json:"amount" binding:"required"`
	Description string           `json:"description" binding:"required"`
	DueDate     *time.Time       `json:"dueDate,omitempty"`
}

// PartialPaymentRequest pays part of a debt, reducing it in place.
type PartialPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// DebtResponse defines the data returned for a customer debt. Overdue is
// derived from the due date at read time.
type DebtResponse struct {
	DebtID      string          `json:"debtID"`
	CustomerID  string          `json:"customerID"`
	EntryID     string          `json:"entryID"`
	Description string          `json:"description"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Status      string          `json:"status"`
	Overdue     bool            `json:"overdue"`
	DueDate     string          `json:"dueDate"`
	PaidAt      *time.Time      `json:"paidAt,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:  c.CustomerID,
		Name:        c.Name,
		Phone:       c.Phone,
		CreditLimit: c.CreditLimit,
		CreatedAt:   c.CreatedAt,
	}
}

// ToCreditQuoteResponse converts a domain.CreditQuote to its response DTO.
func ToCreditQuoteResponse(q *domain.CreditQuote) CreditQuoteResponse {
	return CreditQuoteResponse{
		CustomerID:       q.CustomerID,
		PendingTotal:     q.PendingTotal,
		ProjectedTotal:   q.ProjectedTotal,
		CreditLimit:      q.CreditLimit,
		WouldExceedLimit: q.WouldExceedLimit,
	}
}

// ToDebtResponse converts a domain.CustomerDebt to its response DTO, deriving
// the overdue flag from now.
func ToDebtResponse(d *domain.CustomerDebt, now time.Time) DebtResponse {
	return DebtResponse{
		DebtID:      d.DebtID,
		CustomerID:  d.CustomerID,
		EntryID:     d.EntryID,
		Description: d.Description,
		TotalValue:  d.TotalValue,
		Status:      string(d.Status),
		Overdue:     d.IsOverdue(now),
		DueDate:     d.DueDate.Format(BusinessDayFormat),
		PaidAt:      d.PaidAt,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDebtResponses converts a slice of debts to response DTOs.
func ToDebtResponses(debts []domain.CustomerDebt, now time.Time) []DebtResponse {
	responses := make([]DebtResponse, len(debts))
	for i := range debts {
		responses[i] = ToDebtResponse(&debts[i], now)
	}
	return responses
}
