package dto

import (
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordDeliverySaleRequest records a delivery-platform sale. SaleDate
// defaults to today when omitted; FeePercent is the platform's cut.
type RecordDeliverySaleRequest struct {
	Platform    string           `json:"platform" binding:"required"`
	Description string           `json:"description"`
	GrossValue  decimal.Decimal  `json:"grossValue" binding:"required"`
	FeePercent  decimal.Decimal  `json:"feePercent"`
	SaleDate    *time.Time       `json:"saleDate,omitempty"`
}

// DeliverySaleResponse defines the data returned for a delivery sale. The
// DueSoon and Overdue flags are derived at read time, never stored.
type DeliverySaleResponse struct {
	SaleID       string          `json:"saleID"`
	Platform     string          `json:"platform"`
	Description  string          `json:"description"`
	GrossValue   decimal.Decimal `json:"grossValue"`
	FeePercent   decimal.Decimal `json:"feePercent"`
	NetValue     decimal.Decimal `json:"netValue"`
	SaleDate     string          `json:"saleDate"`
	DueDate      string          `json:"dueDate"`
	Status       string          `json:"status"`
	DueSoon      bool            `json:"dueSoon"`
	Overdue      bool            `json:"overdue"`
	ReconciledAt *time.Time      `json:"reconciledAt,omitempty"`
	EntryID      string          `json:"entryID"`
}

// BatchReconcileRequest reconciles several sales in one call, best effort.
type BatchReconcileRequest struct {
	SaleIDs []string `json:"saleIDs" binding:"required,min=1"`
}

// BatchReconcileFailure reports one sale that could not be reconciled.
type BatchReconcileFailure struct {
	SaleID string `json:"saleID"`
	Reason string `json:"reason"`
}

// BatchReconcileResponse reports the per-sale outcome of a batch reconcile.
type BatchReconcileResponse struct {
	Reconciled []string                `json:"reconciled"`
	Failures   []BatchReconcileFailure `json:"failures"`
}

// ToDeliverySaleResponse converts a domain sale to its response DTO, deriving
// the due-soon and overdue flags from now.
func ToDeliverySaleResponse(s *domain.DeliveryPlatformSale, now time.Time) DeliverySaleResponse {
	return DeliverySaleResponse{
		SaleID:       s.SaleID,
		Platform:     s.Platform,
		Description:  s.Description,
		GrossValue:   s.GrossValue,
		FeePercent:   s.FeePercent,
		NetValue:     s.NetValue,
		SaleDate:     s.SaleDate.Format(BusinessDayFormat),
		DueDate:      s.DueDate.Format(BusinessDayFormat),
		Status:       string(s.Status),
		DueSoon:      s.IsDueSoon(now),
		Overdue:      s.IsOverdue(now),
		ReconciledAt: s.ReconciledAt,
		EntryID:      s.EntryID,
	}
}

// ToDeliverySaleResponses converts a slice of sales to response DTOs.
func ToDeliverySaleResponses(sales []domain.DeliveryPlatformSale, now time.Time) []DeliverySaleResponse {
	responses := make([]DeliverySaleResponse, len(sales))
	for i := range sales {
		responses[i] = ToDeliverySaleResponse(&sales[i], now)
	}
	return responses
}
