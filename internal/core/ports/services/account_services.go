package services

import (
	"context"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccount retrieves an account of the client.
	GetAccount(ctx context.Context, clientID string, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves a page of the client's chart of accounts.
	ListAccounts(ctx context.Context, clientID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account with a client-unique code.
	CreateAccount(ctx context.Context, clientID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive so new lines cannot use it.
	DeactivateAccount(ctx context.Context, clientID string, accountID string, userID string) error

	// DeleteAccount removes an account; restricted while child accounts or lines reference it.
	DeleteAccount(ctx context.Context, clientID string, accountID string, userID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
