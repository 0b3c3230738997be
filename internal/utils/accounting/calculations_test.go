package accounting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
	"github.com/visit2sat/banking-ledger/internal/utils/accounting"
)

func strPtr(s string) *string {
	return &s
}

func TestBalanceChanges(t *testing.T) {
	amount := decimal.NewFromFloat(25.5)
	from := strPtr("ACC000001")
	to := strPtr("ACC000002")

	t.Run("deposit credits destination only", func(t *testing.T) {
		changes := accounting.BalanceChanges(domain.Deposit, nil, to, amount)
		assert.Len(t, changes, 1)
		assert.True(t, changes["ACC000002"].Equal(amount))
	})

	t.Run("withdraw debits source only", func(t *testing.T) {
		changes := accounting.BalanceChanges(domain.Withdraw, from, nil, amount)
		assert.Len(t, changes, 1)
		assert.True(t, changes["ACC000001"].Equal(amount.Neg()))
	})

	t.Run("transfer conserves the total", func(t *testing.T) {
		changes := accounting.BalanceChanges(domain.Transfer, from, to, amount)
		assert.Len(t, changes, 2)
		assert.True(t, changes["ACC000001"].Equal(amount.Neg()))
		assert.True(t, changes["ACC000002"].Equal(amount))

		sum := decimal.Zero
		for _, delta := range changes {
			sum = sum.Add(delta)
		}
		assert.True(t, sum.IsZero())
	})
}

func TestElapsedDays(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		from time.Time
		to   time.Time
		want int64
	}{
		{"same instant", base, base, 0},
		{"under a day", base, base.Add(23 * time.Hour), 0},
		{"exactly one day", base, base.AddDate(0, 0, 1), 1},
		{"partial day truncates", base, base.Add(36 * time.Hour), 1},
		{"one year", base, base.AddDate(1, 0, 0), 365},
		{"to precedes from", base, base.Add(-25 * time.Hour), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, accounting.ElapsedDays(tt.from, tt.to))
		})
	}
}

func TestInterestAccrued(t *testing.T) {
	tests := []struct {
		name    string
		balance decimal.Decimal
		rate    decimal.Decimal
		days    int64
		want    decimal.Decimal
	}{
		{"full year at 1%", decimal.NewFromInt(100), decimal.NewFromFloat(0.01), 365, decimal.NewFromInt(1)},
		{"73 days at 5%", decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 73, decimal.NewFromInt(10)},
		{"zero days", decimal.NewFromInt(1000), decimal.NewFromFloat(0.05), 0, decimal.Zero},
		{"zero rate", decimal.NewFromInt(1000), decimal.Zero, 30, decimal.Zero},
		{"zero balance", decimal.Zero, decimal.NewFromFloat(0.05), 30, decimal.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := accounting.InterestAccrued(tt.balance, tt.rate, tt.days)
			assert.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
		})
	}
}
