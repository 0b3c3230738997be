package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its display identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts ordered by ID.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// CreateAccount persists a new account, assigning the next ACC display
	// identifier inside the same database transaction as the insert.
	// Returns the account with its generated ID.
	CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error)

	// ApplyInterest accrues simple interest on the account for the whole days
	// elapsed since the last accrual (or creation), updating the balance and
	// the accrual timestamp under a row lock. A non-positive elapsed period
	// is a no-op returning the account unchanged.
	ApplyInterest(ctx context.Context, accountID string, now time.Time) (*domain.Account, error)
}

// AccountTransactionSupport defines operations used inside a caller-owned
// database transaction when a movement mutates balances.
type AccountTransactionSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within tx. Fails with ErrNotFound if any requested account is
	// missing.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies signed balance deltas within tx.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
