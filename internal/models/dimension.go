package models

// Dimension represents a row of the dimensions table.
type Dimension struct {
	DimensionID string `db:"dimension_id"`
	ClientID    string `db:"client_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AuditFields
}

// DimensionValue represents a row of the dimension_values table.
type DimensionValue struct {
	ValueID     string `db:"value_id"`
	DimensionID string `db:"dimension_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	AuditFields
}
