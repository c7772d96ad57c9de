package domain_test

import (
	"testing"
	"time"

	"github.com/belafarma/backoffice/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCustomerDebt_IsOverdue(t *testing.T) {
	brt := time.FixedZone("BRT", -3*3600)
	now := time.Date(2025, 5, 10, 9, 0, 0, 0, brt)

	tests := []struct {
		name string
		debt domain.CustomerDebt
		want bool
	}{
		{
			name: "pending past due",
			debt: domain.CustomerDebt{
				Status:  domain.DebtPending,
				DueDate: time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC),
			},
			want: true,
		},
		{
			name: "pending due today in another zone is not overdue",
			debt: domain.CustomerDebt{
				Status:  domain.DebtPending,
				DueDate: time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
		{
			name: "paid past due",
			debt: domain.CustomerDebt{
				Status:  domain.DebtPaid,
				DueDate: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.debt.IsOverdue(now))
		})
	}
}
