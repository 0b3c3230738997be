// Package accounting holds the pure balance arithmetic shared by the
// transaction service and the repositories.
package accounting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
)

var daysPerYear = decimal.NewFromInt(365)

// BalanceChanges computes the signed balance delta per account for a
// movement. Deposits credit the destination, withdrawals debit the source,
// transfers do both. Callers must have validated that the required account
// references are present for the given kind.
func BalanceChanges(kind domain.TransactionKind, from, to *string, amount decimal.Decimal) map[string]decimal.Decimal {
	changes := make(map[string]decimal.Decimal, 2)
	switch kind {
	case domain.Deposit:
		changes[*to] = amount
	case domain.Withdraw:
		changes[*from] = amount.Neg()
	case domain.Transfer:
		changes[*from] = amount.Neg()
		changes[*to] = amount
	}
	return changes
}

// ElapsedDays returns the number of whole days between from and to.
// Negative when to precedes from.
func ElapsedDays(from, to time.Time) int64 {
	return int64(to.Sub(from).Hours() / 24)
}

// InterestAccrued computes simple interest for a whole number of days at an
// annual rate: balance * rate * days/365.
func InterestAccrued(balance, annualRate decimal.Decimal, days int64) decimal.Decimal {
	return balance.Mul(annualRate).Mul(decimal.NewFromInt(days)).Div(daysPerYear)
}
