package services

import (
	"context"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/dto"
)

// ClientReaderSvc defines read operations for client data
type ClientReaderSvc interface {
	// GetClient retrieves a client the user is a member of.
	GetClient(ctx context.Context, clientID string, userID string) (*domain.Client, error)

	// ListUserClients retrieves every client a user belongs to.
	ListUserClients(ctx context.Context, userID string) ([]domain.Client, error)
}

// ClientWriterSvc defines write operations for client data
type ClientWriterSvc interface {
	// CreateClient persists a new client and makes the creator its ADMIN.
	CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error)

	// AddMember adds a user to a client or changes their role. Only ADMINs may do this.
	AddMember(ctx context.Context, clientID string, req dto.AddMemberRequest, requestingUserID string) error
}

// EntitySvc defines operations on the reporting entities inside a client
type EntitySvc interface {
	CreateEntity(ctx context.Context, clientID string, req dto.CreateEntityRequest, userID string) (*domain.Entity, error)
	ListEntities(ctx context.Context, clientID string, userID string) ([]domain.Entity, error)
}

// ClientAuthorizerSvc defines operations for client authorization
type ClientAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has at least requiredRole in a client.
	// Non-members get apperrors.ErrForbidden.
	AuthorizeUserAction(ctx context.Context, userID, clientID string, requiredRole domain.ClientRole) error
}

// ClientSvcFacade combines all client-related service interfaces
// This is a facade for clients that need access to all operations
type ClientSvcFacade interface {
	ClientReaderSvc
	ClientWriterSvc
	EntitySvc
	ClientAuthorizerSvc
}
