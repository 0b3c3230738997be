package mapping

import (
	"github.com/visit2sat/banking-ledger/internal/core/domain"
	"github.com/visit2sat/banking-ledger/internal/models"
)

// ToModelTransaction converts a domain.Transaction to its persistence shape.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		FromAccount:   d.FromAccount,
		ToAccount:     d.ToAccount,
		Amount:        d.Amount,
		Kind:          string(d.Kind),
		Status:        string(d.Status),
		Timestamp:     d.Timestamp,
		Note:          d.Note,
	}
}

// ToDomainTransaction converts a persisted journal entry back to the domain shape.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		FromAccount:   m.FromAccount,
		ToAccount:     m.ToAccount,
		Amount:        m.Amount,
		Kind:          domain.TransactionKind(m.Kind),
		Status:        domain.TransactionStatus(m.Status),
		Timestamp:     m.Timestamp,
		Note:          m.Note,
	}
}
