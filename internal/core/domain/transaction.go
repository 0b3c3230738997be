package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the type of money movement recorded in the journal.
type TransactionKind string

const (
	Deposit  TransactionKind = "deposit"
	Withdraw TransactionKind = "withdraw"
	Transfer TransactionKind = "transfer"
)

// TransactionStatus is the lifecycle state of a journal entry. Processing
// only ever produces Completed; Pending and Failed exist for manual
// correction paths and gate deletion.
type TransactionStatus string

const (
	Completed TransactionStatus = "completed"
	Pending   TransactionStatus = "pending"
	Failed    TransactionStatus = "failed"
)

// Transaction is an immutable journal entry describing a single movement.
// FromAccount and ToAccount are optional depending on the kind: deposits
// need only a destination, withdrawals only a source, transfers both.
type Transaction struct {
	TransactionID string
	FromAccount   *string
	ToAccount     *string
	Amount        decimal.Decimal
	Kind          TransactionKind
	Status        TransactionStatus
	Timestamp     time.Time
	Note          *string
}
