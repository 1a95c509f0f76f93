package mapping

import (
	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/models"
)

// ToDomainDimension converts a model Dimension and its values to a domain Dimension
func ToDomainDimension(m models.Dimension, values []models.DimensionValue) domain.Dimension {
	d := domain.Dimension{
		DimensionID: m.DimensionID,
		ClientID:    m.ClientID,
		Code:        m.Code,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if len(values) > 0 {
		d.Values = make([]domain.DimensionValue, len(values))
		for i, v := range values {
			d.Values[i] = ToDomainDimensionValue(v)
		}
	}
	return d
}

func ToDomainDimensionValue(m models.DimensionValue) domain.DimensionValue {
	return domain.DimensionValue{
		ValueID:     m.ValueID,
		DimensionID: m.DimensionID,
		Code:        m.Code,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelDimension(d domain.Dimension) models.Dimension {
	return models.Dimension{
		DimensionID: d.DimensionID,
		ClientID:    d.ClientID,
		Code:        d.Code,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

func ToModelDimensionValue(d domain.DimensionValue) models.DimensionValue {
	return models.DimensionValue{
		ValueID:     d.ValueID,
		DimensionID: d.DimensionID,
		Code:        d.Code,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}
