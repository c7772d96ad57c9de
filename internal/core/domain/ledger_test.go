package domain_test

import (
	"testing"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntryCategory_IsValid(t *testing.T) {
	for _, c := range []domain.EntryCategory{
		domain.CategoryExpense,
		domain.CategoryDirectDeposit,
		domain.CategoryStoreCredit,
		domain.CategoryUncatalogedSale,
		domain.CategoryConsignmentSale,
		domain.CategoryConsignmentSettlement,
		domain.CategoryDeliveryPlatformSale,
	} {
		assert.True(t, c.IsValid(), "category %s", c)
	}

	assert.False(t, domain.EntryCategory("PETTY_CASH").IsValid())
	assert.False(t, domain.EntryCategory("").IsValid())
	assert.False(t, domain.EntryCategory("expense").IsValid())
}

func TestLedgerEntry_SignedAmount(t *testing.T) {
	tests := []struct {
		name     string
		category domain.EntryCategory
		want     string
	}{
		{name: "expense is an outflow", category: domain.CategoryExpense, want: "-42.50"},
		{name: "consignment settlement is an outflow", category: domain.CategoryConsignmentSettlement, want: "-42.50"},
		{name: "direct deposit is an inflow", category: domain.CategoryDirectDeposit, want: "42.50"},
		{name: "store credit is an inflow", category: domain.CategoryStoreCredit, want: "42.50"},
		{name: "uncataloged sale is an inflow", category: domain.CategoryUncatalogedSale, want: "42.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := domain.LedgerEntry{
				Category: tt.category,
				Amount:   decimal.RequireFromString("42.50"),
			}
			assert.True(t, decimal.RequireFromString(tt.want).Equal(e.SignedAmount()))
		})
	}
}
