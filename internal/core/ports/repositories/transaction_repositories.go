package repositories

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
)

// TransactionReader defines read operations for journal entries.
type TransactionReader interface {
	// FindTransactionByID retrieves a journal entry by its display identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves all journal entries, newest first.
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves the entries where the account
	// appears as source or destination, newest first. A limit <= 0 means no
	// cap.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for journal entries.
type TransactionWriter interface {
	// SaveTransaction persists a journal entry and applies the given balance
	// deltas as one atomic unit: the next TX display identifier is generated,
	// the involved account rows are locked, existence and funds are
	// re-checked under the lock, balances are updated and the entry is
	// inserted, all inside a single database transaction. Returns the entry
	// with its generated ID. Fails with ErrNotFound if an involved account is
	// missing and ErrInsufficientFunds if a debit would drive a locked
	// balance negative; on any failure no state changes.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error)

	// DeleteTransaction removes a journal entry. Fails with ErrInvalidState
	// when the entry is completed and ErrNotFound when it does not exist.
	// Deletion never reverses balance effects.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all journal repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
