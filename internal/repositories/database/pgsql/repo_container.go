package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zamzamtravels/erp_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgsql repository onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxnRepo:     newPgxTransactionRepository(dbPool),
		AccountRepo: newPgxAccountRepository(dbPool),
		PartyRepo:   newPgxPartyRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
