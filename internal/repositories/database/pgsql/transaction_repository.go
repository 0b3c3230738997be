package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/apperrors"
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	portsrepo "github.com/visit2sat/banking-ledger/internal/core/ports/repositories"
	"github.com/visit2sat/banking-ledger/internal/models"
	"github.com/visit2sat/banking-ledger/internal/utils/identifier"
	"github.com/visit2sat/banking-ledger/internal/utils/mapping"
)

const transactionColumns = `transaction_id, from_account, to_account, amount, kind, status, "timestamp", note`

// nextTransactionIDQuery scans the maximum numeric suffix of existing
// transaction IDs; an empty table yields suffix 0 so the first entry is
// TX000001.
const nextTransactionIDQuery = `
	SELECT COALESCE(MAX(CAST(SUBSTRING(transaction_id FROM 3) AS INTEGER)), 0) + 1
	FROM transactions;
`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxTransactionRepository creates a new repository for journal entries.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.FromAccount,
		&m.ToAccount,
		&m.Amount,
		&m.Kind,
		&m.Status,
		&m.Timestamp,
		&m.Note,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveTransaction persists a journal entry and applies the balance deltas as
// one atomic unit. The advisory lock serializes identifier generation with
// the insert consuming it; the FOR UPDATE row locks serialize the funds
// check and balance mutation against concurrent movements on the same
// accounts. Any failure rolls back everything, including the generated
// identifier.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('transactions_display_id'));`); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire transaction id lock", err)
	}

	var next int64
	if err := tx.QueryRow(ctx, nextTransactionIDQuery).Scan(&next); err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute next transaction id", err)
	}
	txn.TransactionID = identifier.Format(identifier.TransactionPrefix, next)

	// Lock the involved accounts in a fixed order so concurrent transfers
	// touching the same pair cannot deadlock.
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID := range balanceChanges {
		accountIDs = append(accountIDs, accountID)
	}
	sort.Strings(accountIDs)

	lockedAccounts, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	// Authoritative funds check under the lock: the service's pre-check can
	// be stale by the time the rows are locked.
	for _, accountID := range accountIDs {
		delta := balanceChanges[accountID]
		if delta.IsNegative() && lockedAccounts[accountID].Balance.Add(delta).IsNegative() {
			return nil, fmt.Errorf("%w: account %s has %s, requested %s",
				apperrors.ErrInsufficientFunds, accountID, lockedAccounts[accountID].Balance, delta.Neg())
		}
	}

	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges); err != nil {
		return nil, err
	}

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (transaction_id, from_account, to_account, amount, kind, status, "timestamp", note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.TransactionID,
		m.FromAccount,
		m.ToAccount,
		m.Amount,
		m.Kind,
		m.Status,
		m.Timestamp,
		m.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction %s: %w", m.TransactionID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

// FindTransactionByID retrieves a journal entry by its display identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// ListTransactions retrieves all journal entries, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		ORDER BY "timestamp" DESC, transaction_id DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactionsByAccountID retrieves the entries where the account
// appears as source or destination, newest first. A limit <= 0 means no cap.
func (r *PgxTransactionRepository) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE from_account = $1 OR to_account = $1
		ORDER BY "timestamp" DESC, transaction_id DESC
	`
	args := []any{accountID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	query += `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	transactions := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		transactions = append(transactions, mapping.ToDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return transactions, nil
}

// DeleteTransaction removes a journal entry. Completed entries are
// immutable history and cannot be deleted; balances are never touched.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1 FOR UPDATE;`, transactionID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to load transaction %s for deletion: %w", transactionID, err)
	}

	if domain.TransactionStatus(status) == domain.Completed {
		return fmt.Errorf("%w: cannot delete completed transaction %s", apperrors.ErrInvalidState, transactionID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	return r.Commit(ctx, tx)
}
