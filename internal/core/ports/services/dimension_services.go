package services

import (
	"context"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/dto"
)

// DimensionSvcFacade defines operations on a client's tag taxonomy
type DimensionSvcFacade interface {
	CreateDimension(ctx context.Context, clientID string, req dto.CreateDimensionRequest, userID string) (*domain.Dimension, error)

	// ListDimensions returns every dimension of the client with its values.
	ListDimensions(ctx context.Context, clientID string, userID string) ([]domain.Dimension, error)

	// CreateDimensionValue adds an allowed value; used to remediate dimension_value_not_found issues.
	CreateDimensionValue(ctx context.Context, clientID string, dimensionID string, req dto.CreateDimensionValueRequest, userID string) (*domain.DimensionValue, error)
}
