package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	"github.com/acctflow/acctflow_backend/internal/models"
	"github.com/acctflow/acctflow_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxDimensionRepository stores tagging dimensions and their allowed values.
type PgxDimensionRepository struct {
	BaseRepository
}

func newPgxDimensionRepository(pool *pgxpool.Pool) *PgxDimensionRepository {
	return &PgxDimensionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DimensionRepositoryFacade = (*PgxDimensionRepository)(nil)

func (r *PgxDimensionRepository) SaveDimension(ctx context.Context, dimension domain.Dimension) error {
	m := mapping.ToModelDimension(dimension)
	query := `
		INSERT INTO dimensions (dimension_id, client_id, code, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.DimensionID, m.ClientID, m.Code, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: dimension %s already exists in client %s", apperrors.ErrDuplicate, m.Code, m.ClientID)
		}
		return fmt.Errorf("failed to save dimension %s: %w", m.DimensionID, err)
	}
	return nil
}

func (r *PgxDimensionRepository) SaveDimensionValue(ctx context.Context, value domain.DimensionValue) error {
	m := mapping.ToModelDimensionValue(value)
	query := `
		INSERT INTO dimension_values (value_id, dimension_id, code, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.ValueID, m.DimensionID, m.Code, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: value %s already exists for dimension %s", apperrors.ErrDuplicate, m.Code, m.DimensionID)
		}
		return fmt.Errorf("failed to save dimension value %s: %w", m.ValueID, err)
	}
	return nil
}

// FindDimensionByID returns the dimension header without its values.
func (r *PgxDimensionRepository) FindDimensionByID(ctx context.Context, dimensionID string) (*domain.Dimension, error) {
	query := `
		SELECT dimension_id, client_id, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM dimensions
		WHERE dimension_id = $1;
	`
	var m models.Dimension
	err := r.db(ctx).QueryRow(ctx, query, dimensionID).Scan(
		&m.DimensionID, &m.ClientID, &m.Code, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("dimension " + dimensionID)
		}
		return nil, fmt.Errorf("failed to find dimension %s: %w", dimensionID, err)
	}
	d := mapping.ToDomainDimension(m, nil)
	return &d, nil
}

// ListDimensionsByClient returns every dimension of the client with its values.
func (r *PgxDimensionRepository) ListDimensionsByClient(ctx context.Context, clientID string) ([]domain.Dimension, error) {
	query := `
		SELECT dimension_id, client_id, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM dimensions
		WHERE client_id = $1
		ORDER BY code;
	`
	rows, err := r.db(ctx).Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimensions for client %s: %w", clientID, err)
	}
	defer rows.Close()

	var dims []models.Dimension
	for rows.Next() {
		var m models.Dimension
		if err := rows.Scan(
			&m.DimensionID, &m.ClientID, &m.Code, &m.Name,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dimension row: %w", err)
		}
		dims = append(dims, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dimension rows: %w", err)
	}
	if len(dims) == 0 {
		return []domain.Dimension{}, nil
	}

	values, err := r.findValuesByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Dimension, len(dims))
	for i, m := range dims {
		result[i] = mapping.ToDomainDimension(m, values[m.DimensionID])
	}
	return result, nil
}

// findValuesByClient groups all of a client's dimension values by dimension id.
func (r *PgxDimensionRepository) findValuesByClient(ctx context.Context, clientID string) (map[string][]models.DimensionValue, error) {
	query := `
		SELECT v.value_id, v.dimension_id, v.code, v.name, v.created_at, v.created_by, v.last_updated_at, v.last_updated_by
		FROM dimension_values v
		JOIN dimensions d ON d.dimension_id = v.dimension_id
		WHERE d.client_id = $1
		ORDER BY v.dimension_id, v.code;
	`
	rows, err := r.db(ctx).Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dimension values for client %s: %w", clientID, err)
	}
	defer rows.Close()

	values := make(map[string][]models.DimensionValue)
	for rows.Next() {
		var v models.DimensionValue
		if err := rows.Scan(
			&v.ValueID, &v.DimensionID, &v.Code, &v.Name,
			&v.CreatedAt, &v.CreatedBy, &v.LastUpdatedAt, &v.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dimension value row: %w", err)
		}
		values[v.DimensionID] = append(values[v.DimensionID], v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dimension value rows: %w", err)
	}
	return values, nil
}
