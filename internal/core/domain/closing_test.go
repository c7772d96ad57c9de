package domain_test

import (
	"testing"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDenominationCount_CashTotal(t *testing.T) {
	tests := []struct {
		name    string
		count   domain.DenominationCount
		want    string
		wantErr bool
	}{
		{
			name:  "empty count is zero",
			count: domain.DenominationCount{},
			want:  "0",
		},
		{
			name: "notes only",
			count: domain.DenominationCount{
				"100": 3,
				"20":  2,
				"5":   1,
			},
			want: "345",
		},
		{
			name: "notes and coins",
			count: domain.DenominationCount{
				"50":   1,
				"0.50": 3,
				"0.05": 2,
			},
			want: "51.6",
		},
		{
			name: "zero counts are allowed",
			count: domain.DenominationCount{
				"200": 0,
				"10":  0,
			},
			want: "0",
		},
		{
			name: "unknown denomination",
			count: domain.DenominationCount{
				"7": 1,
			},
			wantErr: true,
		},
		{
			name: "non canonical string is rejected",
			count: domain.DenominationCount{
				"0.5": 2,
			},
			wantErr: true,
		},
		{
			name: "negative count",
			count: domain.DenominationCount{
				"10": -1,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.count.CashTotal()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestDigitalTotals_Sum(t *testing.T) {
	d := domain.DigitalTotals{
		CreditCard: decimal.NewFromInt(100),
		DebitCard:  decimal.NewFromInt(50),
		CardPix:    decimal.RequireFromString("25.50"),
		DirectPix:  decimal.RequireFromString("10.25"),
	}
	assert.True(t, decimal.RequireFromString("185.75").Equal(d.Sum()))

	assert.True(t, decimal.Zero.Equal(domain.DigitalTotals{}.Sum()))
}

func TestExpectedTotal(t *testing.T) {
	got := domain.ExpectedTotal(
		decimal.NewFromInt(500), // declared gross sales
		decimal.NewFromInt(40),  // extra cash
		decimal.NewFromInt(100), // opening balance
		decimal.NewFromInt(20),  // expenses
		decimal.NewFromInt(30),  // store credit issued
	)
	assert.True(t, decimal.NewFromInt(590).Equal(got))

	// expenses above revenue give a negative expectation, sign preserved
	got = domain.ExpectedTotal(decimal.NewFromInt(10), decimal.Zero, decimal.Zero, decimal.NewFromInt(25), decimal.Zero)
	assert.True(t, decimal.NewFromInt(-15).Equal(got))
}

func TestBusinessDay(t *testing.T) {
	loc := time.FixedZone("BRT", -3*3600)
	ts := time.Date(2025, 3, 10, 23, 45, 12, 500, loc)

	day := domain.BusinessDay(ts)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, loc), day)
	assert.Equal(t, loc, day.Location())

	assert.True(t, domain.SameBusinessDay(ts, time.Date(2025, 3, 10, 0, 1, 0, 0, loc)))
	assert.False(t, domain.SameBusinessDay(ts, time.Date(2025, 3, 11, 0, 0, 0, 0, loc)))
}
