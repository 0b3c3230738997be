package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/apperrors"
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	portsrepo "github.com/visit2sat/banking-ledger/internal/core/ports/repositories"
	"github.com/visit2sat/banking-ledger/internal/models"
	"github.com/visit2sat/banking-ledger/internal/utils/accounting"
	"github.com/visit2sat/banking-ledger/internal/utils/identifier"
	"github.com/visit2sat/banking-ledger/internal/utils/mapping"
)

const accountColumns = "account_id, name, kind, balance, interest_rate, created_at, last_interest_applied"

// nextAccountIDQuery scans the maximum numeric suffix of existing account
// IDs; an empty table yields suffix 0 so the first account is ACC000001.
const nextAccountIDQuery = `
	SELECT COALESCE(MAX(CAST(SUBSTRING(account_id FROM 4) AS INTEGER)), 0) + 1
	FROM accounts;
`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccountRow(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Name,
		&m.Kind,
		&m.Balance,
		&m.InterestRate,
		&m.CreatedAt,
		&m.LastInterestApplied,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateAccount inserts a new account, generating the next ACC display
// identifier inside the same database transaction as the insert. The
// advisory lock serializes the max-suffix scan across concurrent creations.
func (r *PgxAccountRepository) CreateAccount(ctx context.Context, account domain.Account) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('accounts_display_id'));`); err != nil {
		return nil, apperrors.NewAppError(500, "failed to acquire account id lock", err)
	}

	var next int64
	if err := tx.QueryRow(ctx, nextAccountIDQuery).Scan(&next); err != nil {
		return nil, apperrors.NewAppError(500, "failed to compute next account id", err)
	}
	account.AccountID = identifier.Format(identifier.AccountPrefix, next)

	m := mapping.ToModelAccount(account)
	insertQuery := `
		INSERT INTO accounts (account_id, name, kind, balance, interest_rate, created_at, last_interest_applied)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.AccountID,
		m.Name,
		m.Kind,
		m.Balance,
		m.InterestRate,
		m.CreatedAt,
		m.LastInterestApplied,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return nil, fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountByID retrieves an account by its display identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	m, err := scanAccountRow(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}

	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// ListAccounts retrieves a paginated list of accounts ordered by ID.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		ORDER BY account_id
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, mapping.ToDomainAccount(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}

	return accounts, nil
}

// ApplyInterest accrues simple interest on the account under a row lock.
// Whole days elapsed since the last accrual (or creation) at the annual
// rate over 365; a non-positive elapsed period is a no-op.
func (r *PgxAccountRepository) ApplyInterest(ctx context.Context, accountID string, now time.Time) (*domain.Account, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	lockQuery := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	m, err := scanAccountRow(tx.QueryRow(ctx, lockQuery, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock account %s for interest accrual: %w", accountID, err)
	}

	last := m.CreatedAt
	if m.LastInterestApplied != nil {
		last = *m.LastInterestApplied
	}

	days := accounting.ElapsedDays(last, now)
	if days <= 0 {
		acc := mapping.ToDomainAccount(*m)
		return &acc, nil
	}

	interest := accounting.InterestAccrued(m.Balance, m.InterestRate, days)
	newBalance := m.Balance.Add(interest)

	updateQuery := `
		UPDATE accounts
		SET balance = $2, last_interest_applied = $3
		WHERE account_id = $1;
	`
	if _, err := tx.Exec(ctx, updateQuery, accountID, newBalance, now); err != nil {
		return nil, fmt.Errorf("failed to apply interest to account %s: %w", accountID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	m.Balance = newBalance
	m.LastInterestApplied = &now
	acc := mapping.ToDomainAccount(*m)
	return &acc, nil
}

// FindAccountsByIDsForUpdate retrieves accounts by IDs and locks the rows
// for update. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE account_id = ANY($1)
		FOR UPDATE;
	`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs for update: %w", err)
	}
	defer rows.Close()

	accountsMap := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccountRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accountsMap[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(accountsMap) != len(accountIDs) {
		missing := []string{}
		for _, id := range accountIDs {
			if _, found := accountsMap[id]; !found {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return nil, fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}

	return accountsMap, nil
}

// UpdateAccountBalancesInTx applies signed balance deltas within a
// caller-owned transaction.
func (r *PgxAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal) error {
	if len(balanceChanges) == 0 {
		return nil
	}

	query := `
		UPDATE accounts
		SET balance = balance + $2
		WHERE account_id = $1;
	`

	batch := &pgx.Batch{}
	accountIDs := make([]string, 0, len(balanceChanges))
	for accountID, delta := range balanceChanges {
		if !delta.IsZero() {
			batch.Queue(query, accountID, delta)
			accountIDs = append(accountIDs, accountID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountIDs[i])
			}
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}

	return batchErr
}
