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
)

// defaultInterestRate is applied when account creation omits a rate.
var defaultInterestRate = decimal.NewFromFloat(0.01)

// accountService provides account creation, reads and interest accrual.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount opens a new account seeded with the optional initial deposit.
// The seed balance is not journaled: the first journal entry for an account
// is its first processed movement.
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.InitialDeposit.IsNegative() {
		return nil, fmt.Errorf("%w: initial deposit must not be negative, got %s", apperrors.ErrValidation, req.InitialDeposit)
	}

	interestRate := defaultInterestRate
	if req.InterestRate != nil {
		if req.InterestRate.IsNegative() {
			return nil, fmt.Errorf("%w: interest rate must not be negative, got %s", apperrors.ErrValidation, req.InterestRate)
		}
		interestRate = *req.InterestRate
	}

	now := time.Now().UTC()
	account := domain.Account{
		Name:                req.Name,
		Kind:                req.Kind,
		Balance:             req.InitialDeposit,
		InterestRate:        interestRate,
		CreatedAt:           now,
		LastInterestApplied: &now,
	}

	created, err := s.accountRepo.CreateAccount(ctx, account)
	if err != nil {
		logger.Error("Failed to create account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", created.AccountID), slog.String("kind", string(created.Kind)))
	return created, nil
}

// GetAccountByID retrieves a single account.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return account, nil
}

// ListAccounts retrieves a page of accounts.
func (s *accountService) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// ApplyInterest accrues simple interest for the whole days elapsed since the
// last accrual. The repository performs the computation under a row lock so
// accrual cannot interleave with a concurrent movement on the same account.
func (s *accountService) ApplyInterest(ctx context.Context, accountID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.ApplyInterest(ctx, accountID, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to apply interest to account %s: %w", accountID, err)
	}

	logger.Info("Interest applied", slog.String("account_id", accountID), slog.String("balance", account.Balance.String()))
	return account, nil
}
