package dto

import (
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// --- Client DTOs ---

// CreateClientRequest defines data for creating a new client.
type CreateClientRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ClientResponse defines data returned for a client.
type ClientResponse struct {
	ClientID      string    `json:"clientId"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // UserID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // UserID
}

// ListClientsResponse wraps a list of clients.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clients"`
}

// AddMemberRequest defines data for adding a user to a client.
type AddMemberRequest struct {
	UserID string            `json:"userId" binding:"required"`
	Role   domain.ClientRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// CreateEntityRequest defines data for creating an entity inside a client.
type CreateEntityRequest struct {
	Code string `json:"code" binding:"required,max=32"`
	Name string `json:"name" binding:"required"`
}

// EntityResponse defines data returned for an entity.
type EntityResponse struct {
	EntityID  string    `json:"entityId"`
	ClientID  string    `json:"clientId"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy string    `json:"createdBy"`
}

// ListEntitiesResponse wraps a list of entities.
type ListEntitiesResponse struct {
	Entities []EntityResponse `json:"entities"`
}

// ToClientResponse converts domain.Client to DTO.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:      c.ClientID,
		Name:          c.Name,
		Description:   c.Description,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ToListClientsResponse converts a slice of domain.Client to DTO.
func ToListClientsResponse(cs []domain.Client) ListClientsResponse {
	list := make([]ClientResponse, len(cs))
	for i := range cs {
		list[i] = ToClientResponse(&cs[i])
	}
	return ListClientsResponse{Clients: list}
}

// ToEntityResponse converts domain.Entity to DTO.
func ToEntityResponse(e *domain.Entity) EntityResponse {
	return EntityResponse{
		EntityID:  e.EntityID,
		ClientID:  e.ClientID,
		Code:      e.Code,
		Name:      e.Name,
		CreatedAt: e.CreatedAt,
		CreatedBy: e.CreatedBy,
	}
}

// ToListEntitiesResponse converts a slice of domain.Entity to DTO.
func ToListEntitiesResponse(es []domain.Entity) ListEntitiesResponse {
	list := make([]EntityResponse, len(es))
	for i := range es {
		list[i] = ToEntityResponse(&es[i])
	}
	return ListEntitiesResponse{Entities: list}
}
