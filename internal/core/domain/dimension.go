package domain

// Dimension is a tagging taxonomy (department, project, ...) attachable to entry lines.
type Dimension struct {
	DimensionID string           `json:"dimensionID"`
	ClientID    string           `json:"clientID"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Values      []DimensionValue `json:"values,omitempty"`
	AuditFields
}

// DimensionValue is one allowed value of a dimension.
type DimensionValue struct {
	ValueID     string `json:"valueID"`
	DimensionID string `json:"dimensionID"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	AuditFields
}
