package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
)

// CreateTransactionRequest defines a requested movement. Amount positivity
// and cross-field rules (which account references a kind requires) are
// semantic policy enforced by the transaction service, not by binding.
type CreateTransactionRequest struct {
	Kind        domain.TransactionKind `json:"kind" binding:"required,oneof=deposit withdraw transfer"`
	FromAccount *string                `json:"fromAccount"`
	ToAccount   *string                `json:"toAccount"`
	Amount      decimal.Decimal        `json:"amount"`
	Note        *string                `json:"note"`
}

// TransactionResponse defines the data returned for a journal entry.
type TransactionResponse struct {
	TransactionID string                   `json:"transactionID"`
	FromAccount   *string                  `json:"fromAccount,omitempty"`
	ToAccount     *string                  `json:"toAccount,omitempty"`
	Amount        decimal.Decimal          `json:"amount"`
	Kind          domain.TransactionKind   `json:"kind"`
	Status        domain.TransactionStatus `json:"status"`
	Timestamp     time.Time                `json:"timestamp"`
	Note          *string                  `json:"note,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		FromAccount:   txn.FromAccount,
		ToAccount:     txn.ToAccount,
		Amount:        txn.Amount,
		Kind:          txn.Kind,
		Status:        txn.Status,
		Timestamp:     txn.Timestamp,
		Note:          txn.Note,
	}
}

// ListTransactionsResponse wraps a list of journal entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		res[i] = ToTransactionResponse(&txn)
	}
	return ListTransactionsResponse{Transactions: res}
}

// MiniStatementParams defines query parameters for the abbreviated history
// view.
type MiniStatementParams struct {
	Limit int `form:"limit,default=5"`
}
