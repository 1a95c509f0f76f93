package repositories

import (
	"context"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// ClientReader defines read operations for clients, memberships and entities
type ClientReader interface {
	FindClientByID(ctx context.Context, clientID string) (*domain.Client, error)
	ListClientsByUserID(ctx context.Context, userID string) ([]domain.Client, error)
	// FindMembership returns apperrors.ErrNotFound when the user is not a member.
	FindMembership(ctx context.Context, userID, clientID string) (*domain.ClientMember, error)
	FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error)
	ListEntitiesByClient(ctx context.Context, clientID string) ([]domain.Entity, error)
}

// ClientWriter defines write operations for clients, memberships and entities
type ClientWriter interface {
	// SaveClientWithOwner persists a client and its first ADMIN member atomically.
	SaveClientWithOwner(ctx context.Context, client domain.Client, owner domain.ClientMember) error
	// UpsertMembership adds a member or changes an existing member's role.
	UpsertMembership(ctx context.Context, member domain.ClientMember) error
	SaveEntity(ctx context.Context, entity domain.Entity) error
}

// ClientRepositoryFacade combines all client-related repository interfaces
type ClientRepositoryFacade interface {
	ClientReader
	ClientWriter
}
