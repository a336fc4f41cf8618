package repositories

import (
	"context"
	"time"

	"github.com/zamzamtravels/erp_backend/internal/core/domain"
)

// AccountRepository persists the account registry. Balances never live here;
// they are derived from the transaction log.
type AccountRepository interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID, userID string, at time.Time) error
}

// PartyRepository reads the vendor/agent registry. The ledger only needs
// lookups; party CRUD lives with the surrounding ERP.
type PartyRepository interface {
	FindPartyByID(ctx context.Context, partyID string) (*domain.Party, error)
	ListParties(ctx context.Context, kind domain.PartyKind, limit, offset int) ([]domain.Party, error)
}

// UserRepository serves the login surface.
type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
