package services

import (
	portsrepo "github.com/visit2sat/banking-ledger/internal/core/ports/repositories"
	portssvc "github.com/visit2sat/banking-ledger/internal/core/ports/services"
)

// NewServiceContainer wires the repositories into the service facades handed
// to the HTTP layer.
func NewServiceContainer(repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Account:     NewAccountService(repos.AccountRepo),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.AccountRepo),
	}
}
