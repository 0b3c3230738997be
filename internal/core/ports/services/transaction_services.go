package services

import (
	"context"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
	"github.com/visit2sat/banking-ledger/internal/dto"
)

// TransactionSvcFacade exposes movement processing and the journal query
// surface.
type TransactionSvcFacade interface {
	// ProcessTransaction validates a requested movement and applies it
	// atomically: balance mutation(s), identifier generation and journal
	// append all succeed together or not at all.
	ProcessTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)

	// ListTransactionsByAccountID returns the account's history, newest
	// first, optionally capped. Fails with ErrNotFound when the account does
	// not exist.
	ListTransactionsByAccountID(ctx context.Context, accountID string, limit int) ([]domain.Transaction, error)

	// DeleteTransaction removes a non-completed journal entry.
	DeleteTransaction(ctx context.Context, transactionID string) error
}
