package domain

import "time"

// Client represents an isolated bookkeeping tenant containing entities, accounts and entries.
type Client struct {
	ClientID    string `json:"clientID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// Entity is a reporting unit (e.g. a legal entity or branch) inside a client.
type Entity struct {
	EntityID string `json:"entityID"`
	ClientID string `json:"clientID"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	AuditFields
}

// ClientRole defines the possible roles a user can have within a client.
type ClientRole string

const (
	RoleAdmin    ClientRole = "ADMIN"
	RoleMember   ClientRole = "MEMBER"
	RoleReadOnly ClientRole = "READONLY"
)

// ClientMember represents the membership of a user in a client.
type ClientMember struct {
	UserID   string     `json:"userID"`
	ClientID string     `json:"clientID"`
	Role     ClientRole `json:"role"`
	JoinedAt time.Time  `json:"joinedAt"`
}

// Satisfies reports whether the role meets or exceeds the required role.
func (r ClientRole) Satisfies(required ClientRole) bool {
	rank := map[ClientRole]int{RoleReadOnly: 1, RoleMember: 2, RoleAdmin: 3}
	have, ok := rank[r]
	if !ok {
		return false
	}
	need, ok := rank[required]
	if !ok {
		return false
	}
	return have >= need
}
