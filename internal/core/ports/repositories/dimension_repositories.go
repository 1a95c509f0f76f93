package repositories

import (
	"context"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// DimensionReader defines read operations for dimension data
type DimensionReader interface {
	FindDimensionByID(ctx context.Context, dimensionID string) (*domain.Dimension, error)
	// ListDimensionsByClient returns every dimension of the client with its values populated.
	ListDimensionsByClient(ctx context.Context, clientID string) ([]domain.Dimension, error)
}

// DimensionWriter defines write operations for dimension data
type DimensionWriter interface {
	SaveDimension(ctx context.Context, dimension domain.Dimension) error
	// SaveDimensionValue yields apperrors.ErrDuplicate when the code already exists for the dimension.
	SaveDimensionValue(ctx context.Context, value domain.DimensionValue) error
}

// DimensionRepositoryFacade combines all dimension-related repository interfaces
type DimensionRepositoryFacade interface {
	DimensionReader
	DimensionWriter
}
