package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/google/uuid"
)

// clientService implements the ClientSvcFacade interface
type clientService struct {
	BaseService
	clientRepo portsrepo.ClientRepositoryFacade
}

// NewClientService creates a new client service with the provided dependencies
func NewClientService(clientRepo portsrepo.ClientRepositoryFacade) portssvc.ClientSvcFacade {
	svc := &clientService{clientRepo: clientRepo}
	// the client service authorizes against its own memberships
	svc.ClientAuthorizer = svc
	return svc
}

// Ensure clientService implements the ClientSvcFacade interface
var _ portssvc.ClientSvcFacade = (*clientService)(nil)

// GetClient retrieves a client the user belongs to
func (s *clientService) GetClient(ctx context.Context, clientID string, userID string) (*domain.Client, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	client, err := s.clientRepo.FindClientByID(ctx, clientID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find client by ID",
				slog.String("client_id", clientID))
		}
		return nil, err
	}
	return client, nil
}

// ListUserClients retrieves all clients a user belongs to
func (s *clientService) ListUserClients(ctx context.Context, userID string) ([]domain.Client, error) {
	clients, err := s.clientRepo.ListClientsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list clients for user",
			slog.String("user_id", userID))
		return nil, err
	}

	if clients == nil {
		return []domain.Client{}, nil
	}

	s.LogDebug(ctx, "Clients listed successfully",
		slog.Int("count", len(clients)),
		slog.String("user_id", userID))
	return clients, nil
}

// CreateClient creates a new client with the creator as its first ADMIN
func (s *clientService) CreateClient(ctx context.Context, req dto.CreateClientRequest, creatorUserID string) (*domain.Client, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	client := domain.Client{
		ClientID:    uuid.NewString(),
		Name:        name,
		Description: req.Description,
		IsActive:    true,
		AuditFields: domain.NewAuditFields(creatorUserID, now),
	}
	owner := domain.ClientMember{
		UserID:   creatorUserID,
		ClientID: client.ClientID,
		Role:     domain.RoleAdmin,
		JoinedAt: now,
	}

	if err := s.clientRepo.SaveClientWithOwner(ctx, client, owner); err != nil {
		s.LogError(ctx, err, "Failed to save client",
			slog.String("client_id", client.ClientID))
		return nil, err
	}

	s.LogInfo(ctx, "Client created successfully",
		slog.String("client_id", client.ClientID),
		slog.String("creator_id", creatorUserID))
	return &client, nil
}

// AddMember adds a user to a client with a specific role
func (s *clientService) AddMember(ctx context.Context, clientID string, req dto.AddMemberRequest, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, clientID, domain.RoleAdmin); err != nil {
		s.LogWarn(ctx, err, "User not authorized to add members to client",
			slog.String("requesting_user_id", requestingUserID),
			slog.String("client_id", clientID))
		return err
	}
	if !req.Role.Satisfies(domain.RoleReadOnly) {
		return fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, req.Role)
	}

	member := domain.ClientMember{
		UserID:   req.UserID,
		ClientID: clientID,
		Role:     req.Role,
		JoinedAt: time.Now().UTC(),
	}
	if err := s.clientRepo.UpsertMembership(ctx, member); err != nil {
		s.LogError(ctx, err, "Failed to add user to client",
			slog.String("target_user_id", req.UserID),
			slog.String("client_id", clientID))
		return err
	}

	s.LogInfo(ctx, "User added to client successfully",
		slog.String("target_user_id", req.UserID),
		slog.String("client_id", clientID),
		slog.String("role", string(req.Role)))
	return nil
}

// CreateEntity adds a reporting entity to a client
func (s *clientService) CreateEntity(ctx context.Context, clientID string, req dto.CreateEntityRequest, userID string) (*domain.Entity, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	entity := domain.Entity{
		EntityID:    uuid.NewString(),
		ClientID:    clientID,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:        req.Name,
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.clientRepo.SaveEntity(ctx, entity); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save entity",
				slog.String("client_id", clientID))
		}
		return nil, err
	}
	return &entity, nil
}

// ListEntities lists the reporting entities of a client
func (s *clientService) ListEntities(ctx context.Context, clientID string, userID string) ([]domain.Entity, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	entities, err := s.clientRepo.ListEntitiesByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entities",
			slog.String("client_id", clientID))
		return nil, err
	}
	if entities == nil {
		return []domain.Entity{}, nil
	}
	return entities, nil
}

// AuthorizeUserAction checks if a user has required permissions for a client
func (s *clientService) AuthorizeUserAction(ctx context.Context, userID, clientID string, requiredRole domain.ClientRole) error {
	membership, err := s.clientRepo.FindMembership(ctx, userID, clientID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of client",
				slog.String("user_id", userID),
				slog.String("client_id", clientID))
			return fmt.Errorf("%w: user is not a member of this client", apperrors.ErrForbidden)
		}
		s.LogError(ctx, err, "Failed to find user client role",
			slog.String("user_id", userID),
			slog.String("client_id", clientID))
		return err
	}

	if !membership.Role.Satisfies(requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("client_id", clientID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return fmt.Errorf("%w: role %s required", apperrors.ErrForbidden, requiredRole)
	}

	return nil
}
