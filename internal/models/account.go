package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is the persistence shape of a bank account.
type Account struct {
	AccountID           string          `db:"account_id"`
	Name                string          `db:"name"`
	Kind                string          `db:"kind"`
	Balance             decimal.Decimal `db:"balance"`
	InterestRate        decimal.Decimal `db:"interest_rate"`
	CreatedAt           time.Time       `db:"created_at"`
	LastInterestApplied *time.Time      `db:"last_interest_applied"`
}
