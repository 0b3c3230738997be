package services

import (
	"context"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
	"github.com/visit2sat/banking-ledger/internal/dto"
)

// AccountSvcFacade exposes account creation, reads and interest accrual.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
	ApplyInterest(ctx context.Context, accountID string) (*domain.Account, error)
}
