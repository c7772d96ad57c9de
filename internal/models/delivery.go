package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliverySaleStatus mirrors domain.DeliverySaleStatus at the storage layer.
type DeliverySaleStatus string

const (
	DeliveryPending    DeliverySaleStatus = "PENDING"
	DeliveryReconciled DeliverySaleStatus = "RECONCILED"
)

// DeliveryPlatformSale maps the delivery_platform_sales table.
type DeliveryPlatformSale struct {
	SaleID       string             `json:"saleID"`
	Platform     string             `json:"platform"`
	Description  string             `json:"description"`
	GrossValue   decimal.Decimal    `json:"grossValue"`
	FeePercent   decimal.Decimal    `json:"feePercent"`
	NetValue     decimal.Decimal    `json:"netValue"`
	SaleDate     time.Time          `json:"saleDate"`
	DueDate      time.Time          `json:"dueDate"`
	Status       DeliverySaleStatus `json:"status"`
	ReconciledAt *time.Time         `json:"reconciledAt,omitempty"`
	EntryID      string             `json:"entryID"`
	AuditFields
}
