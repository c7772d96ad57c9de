package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliverySaleStatus indicates whether a delivery-platform payout has been
// matched against the platform statement.
type DeliverySaleStatus string

const (
	DeliveryPending    DeliverySaleStatus = "PENDING"
	DeliveryReconciled DeliverySaleStatus = "RECONCILED"
)

// DueSoonWindowDays is how many days before the due date a pending payout is
// flagged as due soon.
const DueSoonWindowDays = 3

// DeliveryPlatformSale is a sale made through a delivery platform whose
// payout arrives after a fixed settlement lag, net of the platform fee.
type DeliveryPlatformSale struct {
	SaleID       string             `json:"saleID"`
	Platform     string             `json:"platform"`
	Description  string             `json:"description"`
	GrossValue   decimal.Decimal    `json:"grossValue"`
	FeePercent   decimal.Decimal    `json:"feePercent"`
	NetValue     decimal.Decimal    `json:"netValue"` // gross * (1 - feePercent/100)
	SaleDate     time.Time          `json:"saleDate"`
	DueDate      time.Time          `json:"dueDate"` // saleDate + settlement lag
	Status       DeliverySaleStatus `json:"status"`
	ReconciledAt *time.Time         `json:"reconciledAt,omitempty"`
	EntryID      string             `json:"entryID"` // the DELIVERY_PLATFORM_SALE ledger entry
	AuditFields
}

// NetAfterFee computes the payout for a gross value and fee percentage,
// rounded to cents.
func NetAfterFee(gross, feePercent decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return gross.Mul(hundred.Sub(feePercent)).Div(hundred).Round(2)
}

// IsOverdue reports whether a pending payout is past its due date.
func (s DeliveryPlatformSale) IsOverdue(today time.Time) bool {
	return s.Status == DeliveryPending && calendarDate(s.DueDate).Before(calendarDate(today))
}

// IsDueSoon reports whether a pending payout falls due within the next
// DueSoonWindowDays days (today included).
func (s DeliveryPlatformSale) IsDueSoon(today time.Time) bool {
	if s.Status != DeliveryPending {
		return false
	}
	day := calendarDate(today)
	due := calendarDate(s.DueDate)
	if due.Before(day) {
		return false
	}
	return !due.After(day.AddDate(0, 0, DueSoonWindowDays))
}
