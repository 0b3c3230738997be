package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/visit2sat/banking-ledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to open a new account.
// InitialDeposit seeds the starting balance and defaults to zero;
// InterestRate defaults to 1% annually when omitted.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	Kind           domain.AccountKind `json:"kind" binding:"required,accountkind"`
	InitialDeposit decimal.Decimal    `json:"initialDeposit"`
	InterestRate   *decimal.Decimal   `json:"interestRate"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID           string             `json:"accountID"`
	Name                string             `json:"name"`
	Kind                domain.AccountKind `json:"kind"`
	Balance             decimal.Decimal    `json:"balance"`
	InterestRate        decimal.Decimal    `json:"interestRate"`
	CreatedAt           time.Time          `json:"createdAt"`
	LastInterestApplied *time.Time         `json:"lastInterestApplied,omitempty"`
}

// ToAccountResponse converts a domain.Account to AccountResponse.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:           acc.AccountID,
		Name:                acc.Name,
		Kind:                acc.Kind,
		Balance:             acc.Balance,
		InterestRate:        acc.InterestRate,
		CreatedAt:           acc.CreatedAt,
		LastInterestApplied: acc.LastInterestApplied,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse converts a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return ListAccountsResponse{Accounts: res}
}
