package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind classifies an account.
type AccountKind string

const (
	Savings AccountKind = "Savings"
	Current AccountKind = "Current"
)

// Account represents a bank account and its current balance.
// The ID is assigned once at creation and never changes; the balance is
// mutated only by the transaction service and by interest accrual.
type Account struct {
	AccountID           string
	Name                string
	Kind                AccountKind
	Balance             decimal.Decimal
	InterestRate        decimal.Decimal // annual rate, e.g. 0.01 for 1%
	CreatedAt           time.Time
	LastInterestApplied *time.Time
}
