package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrCorruptLine is returned when a stored line matches neither persisted shape.
var ErrCorruptLine = errors.New("journal line has an unreadable amount shape")

// JournalEntry represents a row of the journal_entries table.
type JournalEntry struct {
	EntryID           string     `db:"entry_id"`
	ClientID          string     `db:"client_id"`
	EntityID          *string    `db:"entity_id"`
	EntryDate         time.Time  `db:"entry_date"`
	Description       string     `db:"description"`
	ReferenceNumber   string     `db:"reference_number"`
	Status            string     `db:"status"`
	IsReversal        bool       `db:"is_reversal"`
	IsReversed        bool       `db:"is_reversed"`
	ReversedEntryID   *string    `db:"reversed_entry_id"`
	ReversedByEntryID *string    `db:"reversed_by_entry_id"`
	Version           int        `db:"version"`
	PostedAt          *time.Time `db:"posted_at"`
	PostedBy          *string    `db:"posted_by"`
	AuditFields
}

// JournalLine represents a row of the journal_entry_lines table.
// Current rows carry Type/Amount; rows written before the typed-line migration
// carry Debit/Credit instead. Read lines through Canonical, never the raw columns.
type JournalLine struct {
	LineID                  string              `db:"line_id"`
	EntryID                 string              `db:"entry_id"`
	LineNo                  int                 `db:"line_no"`
	AccountID               string              `db:"account_id"`
	Type                    *string             `db:"type"`
	Amount                  decimal.NullDecimal `db:"amount"`
	Debit                   decimal.NullDecimal `db:"debit"`
	Credit                  decimal.NullDecimal `db:"credit"`
	Description             string              `db:"description"`
	EntityCode              string              `db:"entity_code"`
	Dimensions              map[string]string   `db:"dimensions"`
	FSLIBucket              string              `db:"fsli_bucket"`
	InternalReportingBucket string              `db:"internal_reporting_bucket"`
	Item                    string              `db:"item"`
	Reconciled              bool                `db:"reconciled"`
	ReconciledWith          *string             `db:"reconciled_with"`
	AuditFields
}

// Canonical normalizes either persisted shape into a {type, amount} pair.
// The returned type is "debit" or "credit" and the amount is positive.
func (l JournalLine) Canonical() (string, decimal.Decimal, error) {
	typed := l.Type != nil && *l.Type != ""
	legacy := nonZero(l.Debit) || nonZero(l.Credit)

	switch {
	case typed && legacy:
		return "", decimal.Zero, fmt.Errorf("%w: line %s has both typed and legacy columns", ErrCorruptLine, l.LineID)
	case typed:
		t := strings.ToLower(*l.Type)
		if t != "debit" && t != "credit" {
			return "", decimal.Zero, fmt.Errorf("%w: line %s has type %q", ErrCorruptLine, l.LineID, *l.Type)
		}
		if !l.Amount.Valid || !l.Amount.Decimal.IsPositive() {
			return "", decimal.Zero, fmt.Errorf("%w: line %s has no positive amount", ErrCorruptLine, l.LineID)
		}
		return t, l.Amount.Decimal, nil
	case nonZero(l.Debit) && nonZero(l.Credit):
		return "", decimal.Zero, fmt.Errorf("%w: line %s has both debit and credit set", ErrCorruptLine, l.LineID)
	case nonZero(l.Debit):
		return legacySide("debit", l.Debit.Decimal, l.LineID)
	case nonZero(l.Credit):
		return legacySide("credit", l.Credit.Decimal, l.LineID)
	}
	return "", decimal.Zero, fmt.Errorf("%w: line %s has no amount", ErrCorruptLine, l.LineID)
}

// legacySide tolerates negative legacy values by flipping the side.
func legacySide(side string, v decimal.Decimal, lineID string) (string, decimal.Decimal, error) {
	if v.IsNegative() {
		if side == "debit" {
			side = "credit"
		} else {
			side = "debit"
		}
		v = v.Neg()
	}
	if v.IsZero() {
		return "", decimal.Zero, fmt.Errorf("%w: line %s has no amount", ErrCorruptLine, lineID)
	}
	return side, v, nil
}

func nonZero(d decimal.NullDecimal) bool {
	return d.Valid && !d.Decimal.IsZero()
}
