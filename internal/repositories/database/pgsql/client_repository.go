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

// PgxClientRepository stores clients, their members and their entities.
type PgxClientRepository struct {
	BaseRepository
}

func newPgxClientRepository(pool *pgxpool.Pool) *PgxClientRepository {
	return &PgxClientRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ClientRepositoryFacade = (*PgxClientRepository)(nil)

// SaveClientWithOwner inserts a client and its first ADMIN member atomically.
func (r *PgxClientRepository) SaveClientWithOwner(ctx context.Context, client domain.Client, owner domain.ClientMember) error {
	m := mapping.ToModelClient(client)
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO clients (client_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
		`
		_, err := r.db(ctx).Exec(ctx, query,
			m.ClientID, m.Name, m.Description, m.IsActive,
			m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: client %s already exists", apperrors.ErrDuplicate, m.ClientID)
			}
			return apperrors.NewAppError(500, "failed to insert client "+m.ClientID, err)
		}
		return r.UpsertMembership(ctx, owner)
	})
}

// UpsertMembership adds a member or changes the role of an existing one.
func (r *PgxClientRepository) UpsertMembership(ctx context.Context, member domain.ClientMember) error {
	query := `
		INSERT INTO client_members (user_id, client_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, client_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.db(ctx).Exec(ctx, query, member.UserID, member.ClientID, string(member.Role), member.JoinedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.NewNotFoundError("client " + member.ClientID)
		}
		return fmt.Errorf("failed to upsert membership of %s in client %s: %w", member.UserID, member.ClientID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	query := `
		SELECT client_id, name, description, is_active, created_at, created_by, last_updated_at, last_updated_by
		FROM clients
		WHERE client_id = $1;
	`
	var m models.Client
	err := r.db(ctx).QueryRow(ctx, query, clientID).Scan(
		&m.ClientID, &m.Name, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("client " + clientID)
		}
		return nil, fmt.Errorf("failed to find client %s: %w", clientID, err)
	}
	client := mapping.ToDomainClient(m)
	return &client, nil
}

// ListClientsByUserID returns the clients the user is a member of.
func (r *PgxClientRepository) ListClientsByUserID(ctx context.Context, userID string) ([]domain.Client, error) {
	query := `
		SELECT c.client_id, c.name, c.description, c.is_active, c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM clients c
		JOIN client_members cm ON cm.client_id = c.client_id
		WHERE cm.user_id = $1
		ORDER BY c.name;
	`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query clients for user %s: %w", userID, err)
	}
	defer rows.Close()

	clients := []domain.Client{}
	for rows.Next() {
		var m models.Client
		if err := rows.Scan(
			&m.ClientID, &m.Name, &m.Description, &m.IsActive,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan client row: %w", err)
		}
		clients = append(clients, mapping.ToDomainClient(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

// FindMembership returns ErrNotFound when the user is not a member of the client.
func (r *PgxClientRepository) FindMembership(ctx context.Context, userID, clientID string) (*domain.ClientMember, error) {
	query := `
		SELECT user_id, client_id, role, joined_at
		FROM client_members
		WHERE user_id = $1 AND client_id = $2;
	`
	var m models.ClientMember
	err := r.db(ctx).QueryRow(ctx, query, userID, clientID).Scan(&m.UserID, &m.ClientID, &m.Role, &m.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of %s in client %s: %w", userID, clientID, err)
	}
	member := mapping.ToDomainClientMember(m)
	return &member, nil
}

func (r *PgxClientRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	m := mapping.ToModelEntity(entity)
	query := `
		INSERT INTO entities (entity_id, client_id, code, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.db(ctx).Exec(ctx, query,
		m.EntityID, m.ClientID, m.Code, m.Name,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entity code %s already exists in client %s", apperrors.ErrDuplicate, m.Code, m.ClientID)
		}
		return fmt.Errorf("failed to save entity %s: %w", m.EntityID, err)
	}
	return nil
}

func (r *PgxClientRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	query := `
		SELECT entity_id, client_id, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE entity_id = $1;
	`
	var m models.Entity
	err := r.db(ctx).QueryRow(ctx, query, entityID).Scan(
		&m.EntityID, &m.ClientID, &m.Code, &m.Name,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("entity " + entityID)
		}
		return nil, fmt.Errorf("failed to find entity %s: %w", entityID, err)
	}
	entity := mapping.ToDomainEntity(m)
	return &entity, nil
}

func (r *PgxClientRepository) ListEntitiesByClient(ctx context.Context, clientID string) ([]domain.Entity, error) {
	query := `
		SELECT entity_id, client_id, code, name, created_at, created_by, last_updated_at, last_updated_by
		FROM entities
		WHERE client_id = $1
		ORDER BY code;
	`
	rows, err := r.db(ctx).Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to query entities for client %s: %w", clientID, err)
	}
	defer rows.Close()

	entities := []domain.Entity{}
	for rows.Next() {
		var m models.Entity
		if err := rows.Scan(
			&m.EntityID, &m.ClientID, &m.Code, &m.Name,
			&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan entity row: %w", err)
		}
		entities = append(entities, mapping.ToDomainEntity(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entity rows: %w", err)
	}
	return entities, nil
}
