package models

import "time"

// Client represents a row of the clients table.
type Client struct {
	ClientID    string `db:"client_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}

// ClientMember represents a row of the client_members table.
type ClientMember struct {
	UserID   string    `db:"user_id"`
	ClientID string    `db:"client_id"`
	Role     string    `db:"role"`
	JoinedAt time.Time `db:"joined_at"`
}

// Entity represents a row of the entities table.
type Entity struct {
	EntityID string `db:"entity_id"`
	ClientID string `db:"client_id"`
	Code     string `db:"code"`
	Name     string `db:"name"`
	AuditFields
}
