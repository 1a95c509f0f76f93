package dto

import (
	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// CreateDimensionRequest defines data for creating a dimension.
type CreateDimensionRequest struct {
	Code string `json:"code" binding:"required,max=32"`
	Name string `json:"name" binding:"required"`
}

// CreateDimensionValueRequest adds an allowed value to a dimension. It backs the
// "create this value now" remediation for dimension_value_not_found issues.
type CreateDimensionValueRequest struct {
	Code string `json:"code" binding:"required,max=64"`
	Name string `json:"name"`
}

// DimensionValueResponse defines data returned for a dimension value.
type DimensionValueResponse struct {
	ValueID     string `json:"valueId"`
	DimensionID string `json:"dimensionId"`
	Code        string `json:"code"`
	Name        string `json:"name"`
}

// DimensionResponse defines data returned for a dimension.
type DimensionResponse struct {
	DimensionID string                   `json:"dimensionId"`
	ClientID    string                   `json:"clientId"`
	Code        string                   `json:"code"`
	Name        string                   `json:"name"`
	Values      []DimensionValueResponse `json:"values"`
}

// ListDimensionsResponse wraps a list of dimensions.
type ListDimensionsResponse struct {
	Dimensions []DimensionResponse `json:"dimensions"`
}

// ToDimensionValueResponse converts domain.DimensionValue to DTO.
func ToDimensionValueResponse(v *domain.DimensionValue) DimensionValueResponse {
	return DimensionValueResponse{
		ValueID:     v.ValueID,
		DimensionID: v.DimensionID,
		Code:        v.Code,
		Name:        v.Name,
	}
}

// ToDimensionResponse converts domain.Dimension to DTO.
func ToDimensionResponse(d *domain.Dimension) DimensionResponse {
	values := make([]DimensionValueResponse, len(d.Values))
	for i := range d.Values {
		values[i] = ToDimensionValueResponse(&d.Values[i])
	}
	return DimensionResponse{
		DimensionID: d.DimensionID,
		ClientID:    d.ClientID,
		Code:        d.Code,
		Name:        d.Name,
		Values:      values,
	}
}

// ToListDimensionsResponse converts a slice of domain.Dimension to DTO.
func ToListDimensionsResponse(ds []domain.Dimension) ListDimensionsResponse {
	list := make([]DimensionResponse, len(ds))
	for i := range ds {
		list[i] = ToDimensionResponse(&ds[i])
	}
	return ListDimensionsResponse{Dimensions: list}
}
