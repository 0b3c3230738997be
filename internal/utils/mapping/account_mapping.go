package mapping

import (
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	"github.com/visit2sat/banking-ledger/internal/models"
)

// ToModelAccount converts a domain.Account to its persistence shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:           d.AccountID,
		Name:                d.Name,
		Kind:                string(d.Kind),
		Balance:             d.Balance,
		InterestRate:        d.InterestRate,
		CreatedAt:           d.CreatedAt,
		LastInterestApplied: d.LastInterestApplied,
	}
}

// ToDomainAccount converts a persisted account back to the domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:           m.AccountID,
		Name:                m.Name,
		Kind:                domain.AccountKind(m.Kind),
		Balance:             m.Balance,
		InterestRate:        m.InterestRate,
		CreatedAt:           m.CreatedAt,
		LastInterestApplied: m.LastInterestApplied,
	}
}
