package models

// Account represents a chart-of-accounts row.
type Account struct {
	AccountID       string  `db:"account_id"`
	ClientID        string  `db:"client_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	AccountType     string  `db:"account_type"`
	ParentAccountID *string `db:"parent_account_id"` // Nullable
	Description     string  `db:"description"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}
