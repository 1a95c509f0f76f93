package services

import (
	"context"
	"errors"
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

type dimensionService struct {
	BaseService
	dimensionRepo portsrepo.DimensionRepositoryFacade
}

// NewDimensionService creates a dimension service authorized through authorizer.
func NewDimensionService(repo portsrepo.DimensionRepositoryFacade, authorizer portssvc.ClientAuthorizerSvc) portssvc.DimensionSvcFacade {
	return &dimensionService{
		BaseService:   BaseService{ClientAuthorizer: authorizer},
		dimensionRepo: repo,
	}
}

var _ portssvc.DimensionSvcFacade = (*dimensionService)(nil)

func (s *dimensionService) CreateDimension(ctx context.Context, clientID string, req dto.CreateDimensionRequest, userID string) (*domain.Dimension, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	dim := domain.Dimension{
		DimensionID: uuid.NewString(),
		ClientID:    clientID,
		Code:        strings.ToUpper(strings.TrimSpace(req.Code)),
		Name:        req.Name,
		Values:      []domain.DimensionValue{},
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.dimensionRepo.SaveDimension(ctx, dim); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save dimension", slog.String("client_id", clientID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Dimension created",
		slog.String("dimension_id", dim.DimensionID),
		slog.String("code", dim.Code))
	return &dim, nil
}

func (s *dimensionService) ListDimensions(ctx context.Context, clientID string, userID string) ([]domain.Dimension, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	dims, err := s.dimensionRepo.ListDimensionsByClient(ctx, clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list dimensions", slog.String("client_id", clientID))
		return nil, err
	}
	if dims == nil {
		return []domain.Dimension{}, nil
	}
	return dims, nil
}

// CreateDimensionValue is open to MEMBERs so the person fixing an import can remediate in place.
func (s *dimensionService) CreateDimensionValue(ctx context.Context, clientID string, dimensionID string, req dto.CreateDimensionValueRequest, userID string) (*domain.DimensionValue, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleMember); err != nil {
		return nil, err
	}

	dim, err := s.dimensionRepo.FindDimensionByID(ctx, dimensionID)
	if err != nil {
		return nil, err
	}
	if dim.ClientID != clientID {
		return nil, apperrors.NewNotFoundError("dimension")
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	name := req.Name
	if name == "" {
		name = code
	}
	value := domain.DimensionValue{
		ValueID:     uuid.NewString(),
		DimensionID: dimensionID,
		Code:        code,
		Name:        name,
		AuditFields: domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.dimensionRepo.SaveDimensionValue(ctx, value); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save dimension value", slog.String("dimension_id", dimensionID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Dimension value created",
		slog.String("dimension_id", dimensionID),
		slog.String("code", code))
	return &value, nil
}
