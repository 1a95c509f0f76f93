package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the state of a journal entry.
type EntryStatus string

const (
	Draft    EntryStatus = "draft"
	Posted   EntryStatus = "posted"
	Reversed EntryStatus = "reversed"
)

// LineType is the side of the ledger a line hits.
type LineType string

const (
	Debit  LineType = "debit"
	Credit LineType = "credit"
)

// Opposite returns the other side of the ledger.
func (t LineType) Opposite() LineType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// Valid reports whether t is debit or credit.
func (t LineType) Valid() bool {
	return t == Debit || t == Credit
}

// JournalEntry is a financial transaction header composed of balanced lines.
// ReversedEntryID is set on a reversal and points at its source;
// ReversedByEntryID is set on a reversed source and points at its reversal.
type JournalEntry struct {
	EntryID           string        `json:"entryID"`
	ClientID          string        `json:"clientID"`
	EntityID          *string       `json:"entityID,omitempty"`
	EntryDate         time.Time     `json:"entryDate"`
	Description       string        `json:"description"`
	ReferenceNumber   string        `json:"referenceNumber"`
	Status            EntryStatus   `json:"status"`
	IsReversal        bool          `json:"isReversal"`
	IsReversed        bool          `json:"isReversed"`
	ReversedEntryID   *string       `json:"reversedEntryID,omitempty"`
	ReversedByEntryID *string       `json:"reversedByEntryID,omitempty"`
	Version           int           `json:"version"`
	PostedAt          *time.Time    `json:"postedAt,omitempty"`
	PostedBy          *string       `json:"postedBy,omitempty"`
	Lines             []JournalLine `json:"lines,omitempty"`
	AuditFields
}

// JournalLine is one leg of an entry. Amount is always positive; the side is carried by Type.
type JournalLine struct {
	LineID                  string            `json:"lineID"`
	EntryID                 string            `json:"entryID"`
	LineNo                  int               `json:"lineNo"`
	AccountID               string            `json:"accountID"`
	Type                    LineType          `json:"type"`
	Amount                  decimal.Decimal   `json:"amount"`
	Description             string            `json:"description,omitempty"`
	EntityCode              string            `json:"entityCode,omitempty"`
	Dimensions              map[string]string `json:"dimensions,omitempty"`
	FSLIBucket              string            `json:"fsliBucket,omitempty"`
	InternalReportingBucket string            `json:"internalReportingBucket,omitempty"`
	Item                    string            `json:"item,omitempty"`
	Reconciled              bool              `json:"reconciled"`
	ReconciledWith          *string           `json:"reconciledWith,omitempty"`
	AuditFields
}

// IsEditable reports whether the entry can still be modified in place.
func (e *JournalEntry) IsEditable() bool {
	return e.Status == Draft
}

// InScope reports whether the entry belongs to the scope's client and, if set, entity.
func (e *JournalEntry) InScope(scope Scope) bool {
	if e.ClientID != scope.ClientID {
		return false
	}
	if scope.EntityID == "" {
		return true
	}
	return e.EntityID != nil && *e.EntityID == scope.EntityID
}
