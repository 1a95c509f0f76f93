package dto

import (
	"strings"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// --- Journal entry DTOs ---

// JournalLineRequest is one proposed line. Amount is a decimal string so unparseable
// input reaches the validator instead of failing JSON decoding.
type JournalLineRequest struct {
	AccountID               string            `json:"accountId"`
	AccountCode             string            `json:"accountCode"`
	Type                    string            `json:"type" binding:"omitempty,line_type"`
	Amount                  string            `json:"amount"`
	Description             string            `json:"description"`
	EntityCode              string            `json:"entityCode"`
	Dimensions              map[string]string `json:"dimensions"`
	FSLIBucket              string            `json:"fsliBucket"`
	InternalReportingBucket string            `json:"internalReportingBucket"`
	Item                    string            `json:"item"`
	Reconciled              bool              `json:"reconciled"`
	ReconciledWith          *string           `json:"reconciledWith"`
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
type CreateJournalEntryRequest struct {
	EntityID        *string              `json:"entityId"`
	Date            time.Time            `json:"date" binding:"required"`
	Description     string               `json:"description" binding:"required"`
	ReferenceNumber string               `json:"referenceNumber"`
	Lines           []JournalLineRequest `json:"lines" binding:"dive"`
}

// UpdateJournalEntryRequest is a partial update of a draft. Nil fields keep their
// stored value; a non-nil Lines replaces the whole line set.
type UpdateJournalEntryRequest struct {
	Date            *time.Time            `json:"date"`
	Description     *string               `json:"description"`
	ReferenceNumber *string               `json:"referenceNumber"`
	Lines           *[]JournalLineRequest `json:"lines" binding:"omitempty,dive"`
	// Version enables the optimistic concurrency check when set.
	Version *int `json:"version"`
}

// ReverseJournalEntryRequest carries the caller's overrides for a reversal.
type ReverseJournalEntryRequest struct {
	Date            *time.Time `json:"date"`
	Description     *string    `json:"description"`
	ReferenceNumber *string    `json:"referenceNumber"`
}

// ListJournalEntriesParams defines query parameters for listing entries.
type ListJournalEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    string  `form:"status" binding:"omitempty,oneof=draft posted reversed"`
	EntityID  string  `form:"entityId"`
}

// JournalLineResponse defines the data returned for a line.
type JournalLineResponse struct {
	LineID                  string            `json:"lineId"`
	LineNo                  int               `json:"lineNo"`
	AccountID               string            `json:"accountId"`
	Type                    domain.LineType   `json:"type"`
	Amount                  decimal.Decimal   `json:"amount"`
	Description             string            `json:"description,omitempty"`
	EntityCode              string            `json:"entityCode,omitempty"`
	Dimensions              map[string]string `json:"dimensions,omitempty"`
	FSLIBucket              string            `json:"fsliBucket,omitempty"`
	InternalReportingBucket string            `json:"internalReportingBucket,omitempty"`
	Item                    string            `json:"item,omitempty"`
	Reconciled              bool              `json:"reconciled"`
	ReconciledWith          *string           `json:"reconciledWith,omitempty"`
}

// JournalEntryResponse defines the data returned for an entry.
type JournalEntryResponse struct {
	ID                string                `json:"id"`
	ClientID          string                `json:"clientId"`
	EntityID          *string               `json:"entityId,omitempty"`
	Date              time.Time             `json:"date"`
	Description       string                `json:"description"`
	ReferenceNumber   string                `json:"referenceNumber"`
	Status            domain.EntryStatus    `json:"status"`
	IsReversal        bool                  `json:"isReversal"`
	IsReversed        bool                  `json:"isReversed"`
	ReversedEntryID   *string               `json:"reversedEntryId,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryId,omitempty"`
	Version           int                   `json:"version"`
	PostedAt          *time.Time            `json:"postedAt,omitempty"`
	PostedBy          *string               `json:"postedBy,omitempty"`
	Lines             []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
	LastUpdatedAt     time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy     string                `json:"lastUpdatedBy"`
}

// ListJournalEntriesResponse wraps a page of entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken,omitempty"`
}

// ListJournalLinesResponse wraps the line set of one entry.
type ListJournalLinesResponse struct {
	EntryID string                `json:"entryId"`
	Lines   []JournalLineResponse `json:"lines"`
}

// ToLineInput converts a request line to validator input. An empty type with a
// signed amount becomes a legacy signed line; the validator decides whether that is allowed.
func (r JournalLineRequest) ToLineInput(index int) accounting.LineInput {
	var in accounting.LineInput
	if strings.TrimSpace(r.Type) == "" {
		in = accounting.SignedInput(r.Amount)
	} else {
		in = accounting.TypedInput(r.Type, r.Amount)
	}
	in.Index = index
	in.AccountID = strings.TrimSpace(r.AccountID)
	in.AccountCode = strings.TrimSpace(r.AccountCode)
	in.Description = r.Description
	in.EntityCode = r.EntityCode
	in.Dimensions = r.Dimensions
	in.FSLIBucket = r.FSLIBucket
	in.InternalReportingBucket = r.InternalReportingBucket
	in.Item = r.Item
	in.Reconciled = r.Reconciled
	in.ReconciledWith = r.ReconciledWith
	return in
}

// ToLineInputs converts a request line set, preserving order.
func ToLineInputs(lines []JournalLineRequest) []accounting.LineInput {
	inputs := make([]accounting.LineInput, len(lines))
	for i, l := range lines {
		inputs[i] = l.ToLineInput(i)
	}
	return inputs
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:                  l.LineID,
		LineNo:                  l.LineNo,
		AccountID:               l.AccountID,
		Type:                    l.Type,
		Amount:                  l.Amount,
		Description:             l.Description,
		EntityCode:              l.EntityCode,
		Dimensions:              l.Dimensions,
		FSLIBucket:              l.FSLIBucket,
		InternalReportingBucket: l.InternalReportingBucket,
		Item:                    l.Item,
		Reconciled:              l.Reconciled,
		ReconciledWith:          l.ReconciledWith,
	}
}

// ToJournalLineResponses converts a slice of lines.
func ToJournalLineResponses(lines []domain.JournalLine) []JournalLineResponse {
	res := make([]JournalLineResponse, len(lines))
	for i, l := range lines {
		res[i] = ToJournalLineResponse(l)
	}
	return res
}

// ToJournalEntryResponse converts a domain.JournalEntry (with any loaded lines) to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	resp := JournalEntryResponse{
		ID:                e.EntryID,
		ClientID:          e.ClientID,
		EntityID:          e.EntityID,
		Date:              e.EntryDate,
		Description:       e.Description,
		ReferenceNumber:   e.ReferenceNumber,
		Status:            e.Status,
		IsReversal:        e.IsReversal,
		IsReversed:        e.IsReversed,
		ReversedEntryID:   e.ReversedEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		Version:           e.Version,
		PostedAt:          e.PostedAt,
		PostedBy:          e.PostedBy,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
		LastUpdatedAt:     e.LastUpdatedAt,
		LastUpdatedBy:     e.LastUpdatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = ToJournalLineResponses(e.Lines)
	}
	return resp
}

// ToListJournalEntriesResponse converts a page of entries.
func ToListJournalEntriesResponse(entries []domain.JournalEntry, nextToken *string) ListJournalEntriesResponse {
	res := ListJournalEntriesResponse{
		Entries:   make([]JournalEntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		res.Entries[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}
