package domain_test

import (
	"testing"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNetAfterFee(t *testing.T) {
	tests := []struct {
		name       string
		gross      string
		feePercent string
		want       string
	}{
		{name: "quarter fee", gross: "80", feePercent: "25", want: "60"},
		{name: "zero fee", gross: "80", feePercent: "0", want: "80"},
		{name: "full fee", gross: "80", feePercent: "100", want: "0"},
		{name: "rounds to cents", gross: "99.99", feePercent: "12.5", want: "87.49"},
		{name: "typical platform fee", gross: "54.90", feePercent: "23", want: "42.27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.NetAfterFee(decimal.RequireFromString(tt.gross), decimal.RequireFromString(tt.feePercent))
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDeliveryPlatformSale_IsOverdue(t *testing.T) {
	today := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sale domain.DeliveryPlatformSale
		want bool
	}{
		{
			name: "pending past due",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryPending,
				DueDate: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "pending due today is not overdue",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryPending,
				DueDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "reconciled past due",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryReconciled,
				DueDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sale.IsOverdue(today))
		})
	}
}

func TestDeliveryPlatformSale_DueDateAcrossZones(t *testing.T) {
	// Due dates come back from DATE columns at UTC midnight; the clock runs
	// in the store's zone. Same calendar day must never read as overdue.
	brt := time.FixedZone("BRT", -3*3600)
	morning := time.Date(2025, 5, 10, 9, 0, 0, 0, brt)

	dueToday := domain.DeliveryPlatformSale{
		Status:  domain.DeliveryPending,
		DueDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
	}
	assert.False(t, dueToday.IsOverdue(morning))
	assert.True(t, dueToday.IsDueSoon(morning))

	dueYesterday := domain.DeliveryPlatformSale{
		Status:  domain.DeliveryPending,
		DueDate: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, dueYesterday.IsOverdue(morning))
	assert.False(t, dueYesterday.IsDueSoon(morning))

	dueEdge := domain.DeliveryPlatformSale{
		Status:  domain.DeliveryPending,
		DueDate: time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC),
	}
	assert.True(t, dueEdge.IsDueSoon(morning))
}

func TestDeliveryPlatformSale_IsDueSoon(t *testing.T) {
	today := time.Date(2025, 5, 10, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		sale domain.DeliveryPlatformSale
		want bool
	}{
		{
			name: "due today",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryPending,
				DueDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "due at the edge of the window",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryPending,
				DueDate: time.Date(2025, 5, 13, 0, 0, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "due just past the window",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryPending,
				DueDate: time.Date(2025, 5, 14, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "already overdue is not due soon",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryPending,
				DueDate: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "reconciled",
			sale: domain.DeliveryPlatformSale{
				Status:  domain.DeliveryReconciled,
				DueDate: time.Date(2025, 5, 11, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sale.IsDueSoon(today))
		})
	}
}
