package mapping

import (
	"fmt"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:           d.EntryID,
		ClientID:          d.ClientID,
		EntityID:          d.EntityID,
		EntryDate:         d.EntryDate,
		Description:       d.Description,
		ReferenceNumber:   d.ReferenceNumber,
		Status:            string(d.Status),
		IsReversal:        d.IsReversal,
		IsReversed:        d.IsReversed,
		ReversedEntryID:   d.ReversedEntryID,
		ReversedByEntryID: d.ReversedByEntryID,
		Version:           d.Version,
		PostedAt:          d.PostedAt,
		PostedBy:          d.PostedBy,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry (without lines)
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:           m.EntryID,
		ClientID:          m.ClientID,
		EntityID:          m.EntityID,
		EntryDate:         m.EntryDate,
		Description:       m.Description,
		ReferenceNumber:   m.ReferenceNumber,
		Status:            domain.EntryStatus(m.Status),
		IsReversal:        m.IsReversal,
		IsReversed:        m.IsReversed,
		ReversedEntryID:   m.ReversedEntryID,
		ReversedByEntryID: m.ReversedByEntryID,
		Version:           m.Version,
		PostedAt:          m.PostedAt,
		PostedBy:          m.PostedBy,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain line to the typed persisted shape.
// Legacy debit/credit columns are never written.
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	lineType := string(d.Type)
	return models.JournalLine{
		LineID:                  d.LineID,
		EntryID:                 d.EntryID,
		LineNo:                  d.LineNo,
		AccountID:               d.AccountID,
		Type:                    &lineType,
		Amount:                  decimal.NullDecimal{Decimal: d.Amount, Valid: true},
		Description:             d.Description,
		EntityCode:              d.EntityCode,
		Dimensions:              d.Dimensions,
		FSLIBucket:              d.FSLIBucket,
		InternalReportingBucket: d.InternalReportingBucket,
		Item:                    d.Item,
		Reconciled:              d.Reconciled,
		ReconciledWith:          d.ReconciledWith,
		AuditFields:             ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model line of either persisted shape to a domain line.
func ToDomainJournalLine(m models.JournalLine) (domain.JournalLine, error) {
	lineType, amount, err := m.Canonical()
	if err != nil {
		return domain.JournalLine{}, err
	}
	return domain.JournalLine{
		LineID:                  m.LineID,
		EntryID:                 m.EntryID,
		LineNo:                  m.LineNo,
		AccountID:               m.AccountID,
		Type:                    domain.LineType(lineType),
		Amount:                  amount,
		Description:             m.Description,
		EntityCode:              m.EntityCode,
		Dimensions:              m.Dimensions,
		FSLIBucket:              m.FSLIBucket,
		InternalReportingBucket: m.InternalReportingBucket,
		Item:                    m.Item,
		Reconciled:              m.Reconciled,
		ReconciledWith:          m.ReconciledWith,
		AuditFields:             ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainJournalLineSlice converts model lines, failing on the first unreadable row.
func ToDomainJournalLineSlice(ms []models.JournalLine) ([]domain.JournalLine, error) {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		d, err := ToDomainJournalLine(m)
		if err != nil {
			return nil, fmt.Errorf("entry %s line %d: %w", m.EntryID, m.LineNo, err)
		}
		ds[i] = d
	}
	return ds, nil
}
