package repositories

import (
	"context"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of a client matching the given IDs. Missing IDs are skipped.
	FindAccountsByIDs(ctx context.Context, clientID string, accountIDs []string) ([]domain.Account, error)

	// FindAccountsByCodes retrieves the accounts of a client matching the given codes (case-insensitive).
	FindAccountsByCodes(ctx context.Context, clientID string, codes []string) ([]domain.Account, error)

	// ListAccountsByClient retrieves a page of a client's chart of accounts ordered by code.
	ListAccountsByClient(ctx context.Context, clientID string, limit int, offset int) ([]domain.Account, error)

	// CountChildAccounts returns how many accounts reference accountID as parent.
	CountChildAccounts(ctx context.Context, accountID string) (int, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate (client, code) yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error

	// DeleteAccount removes an account that nothing references.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
