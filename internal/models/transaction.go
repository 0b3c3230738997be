package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the persistence shape of a journal entry. FromAccount,
// ToAccount and Note are pointers so NULL columns round-trip cleanly.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	FromAccount   *string         `db:"from_account"`
	ToAccount     *string         `db:"to_account"`
	Amount        decimal.Decimal `db:"amount"`
	Kind          string          `db:"kind"`
	Status        string          `db:"status"`
	Timestamp     time.Time       `db:"timestamp"`
	Note          *string         `db:"note"`
}
