package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/apperrors"
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	portsrepo "github.com/visit2sat/banking-ledger/internal/core/ports/repositories"
	portssvc "github.com/visit2sat/banking-ledger/internal/core/ports/services"
	"github.com/visit2sat/banking-ledger/internal/dto"
	"github.com/visit2sat/banking-ledger/internal/middleware"
	"github.com/visit2sat/banking-ledger/internal/utils/accounting"
)

// transactionService is the movement-processing core: it validates a
// requested movement against policy and delegates the atomic
// mutate-and-append unit to the journal repository.
type transactionService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	txnRepo     portsrepo.TransactionRepositoryFacade
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ProcessTransaction validates and applies a movement. Preconditions are
// checked in a fixed order: required references first, then account
// existence, then funds. The repository re-checks existence and funds under
// row locks, so a concurrent movement can still surface ErrNotFound or
// ErrInsufficientFunds from the persistence step.
func (s *transactionService) ProcessTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", apperrors.ErrInvalidAmount, req.Amount)
	}

	if err := s.validateReferences(req); err != nil {
		return nil, err
	}

	if err := s.checkAccounts(ctx, req); err != nil {
		return nil, err
	}

	txn := domain.Transaction{
		FromAccount: req.FromAccount,
		ToAccount:   req.ToAccount,
		Amount:      req.Amount,
		Kind:        req.Kind,
		Status:      domain.Completed,
		Timestamp:   time.Now().UTC(),
		Note:        req.Note,
	}
	// Withdrawal entries never carry a destination, whatever the caller sent.
	if req.Kind == domain.Withdraw {
		txn.ToAccount = nil
	}

	changes := accounting.BalanceChanges(req.Kind, req.FromAccount, req.ToAccount, req.Amount)

	persisted, err := s.txnRepo.SaveTransaction(ctx, txn, changes)
	if err != nil {
		logger.Error("Failed to persist transaction", slog.String("kind", string(req.Kind)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	logger.Info("Transaction processed",
		slog.String("transaction_id", persisted.TransactionID),
		slog.String("kind", string(persisted.Kind)),
		slog.String("amount", persisted.Amount.String()),
	)
	return persisted, nil
}

// validateReferences enforces which account references each kind requires.
func (s *transactionService) validateReferences(req dto.CreateTransactionRequest) error {
	switch req.Kind {
	case domain.Deposit:
		if req.ToAccount == nil {
			return fmt.Errorf("%w: to_account required for deposit", apperrors.ErrInvalidRequest)
		}
	case domain.Withdraw:
		if req.FromAccount == nil {
			return fmt.Errorf("%w: from_account required for withdraw", apperrors.ErrInvalidRequest)
		}
	case domain.Transfer:
		if req.FromAccount == nil || req.ToAccount == nil {
			return fmt.Errorf("%w: from_account and to_account required for transfer", apperrors.ErrInvalidRequest)
		}
		if *req.FromAccount == *req.ToAccount {
			return fmt.Errorf("%w: from_account and to_account must be different", apperrors.ErrInvalidRequest)
		}
	default:
		return fmt.Errorf("%w: unknown transaction kind %q", apperrors.ErrInvalidRequest, req.Kind)
	}
	return nil
}

// checkAccounts verifies existence (and, for debits, funds) in the order the
// movement table specifies. Deposits keep any caller-supplied from_account
// verbatim without validating it; it is informational for that kind.
func (s *transactionService) checkAccounts(ctx context.Context, req dto.CreateTransactionRequest) error {
	switch req.Kind {
	case domain.Deposit:
		if _, err := s.findAccount(ctx, *req.ToAccount); err != nil {
			return err
		}
	case domain.Withdraw:
		from, err := s.findAccount(ctx, *req.FromAccount)
		if err != nil {
			return err
		}
		if from.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account %s has %s, requested %s", apperrors.ErrInsufficientFunds, from.AccountID, from.Balance, req.Amount)
		}
	case domain.Transfer:
		from, err := s.findAccount(ctx, *req.FromAccount)
		if err != nil {
			return err
		}
		if _, err := s.findAccount(ctx, *req.ToAccount); err != nil {
			return err
		}
		if from.Balance.LessThan(req.Amount) {
			return fmt.Errorf("%w: account %s has %s, requested %s", apperrors.ErrInsufficientFunds, from.AccountID, from.Balance, req.Amount)
		}
	}
	return nil
}

func (s *transactionService) findAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account %s: %w", accountID, err)
	}
	return account, nil
}

// GetTransactionByID retrieves a single journal entry.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves the whole journal, newest first.
func (s *transactionService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	txns, err := s.txnRepo.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

// ListTransactionsByAccountID retrieves an account's history, newest first.
// The account must exist.
func (s *transactionService) ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error) {
	if _, err := s.findAccount(ctx, accountID); err != nil {
		return nil, err
	}

	txns, err := s.txnRepo.ListTransactionsByAccountID(ctx, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for account %s: %w", accountID, err)
	}
	return txns, nil
}

// DeleteTransaction removes a non-completed journal entry. Deletion is a
// pure history-record operation and never reverses balance effects.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
