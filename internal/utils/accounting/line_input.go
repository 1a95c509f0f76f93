package accounting

import (
	"strings"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Form is the shape a line arrived in before it is resolved to a canonical {type, amount}.
type Form int

const (
	// FormUnknown marks input whose shape could not be determined (e.g. both legacy columns set).
	FormUnknown Form = iota
	FormDebit
	FormCredit
	// FormSigned is the legacy single-amount shape: positive is a debit, negative a credit.
	FormSigned
)

func (f Form) String() string {
	switch f {
	case FormDebit:
		return "debit"
	case FormCredit:
		return "credit"
	case FormSigned:
		return "signed"
	}
	return "unknown"
}

// LineInput is a proposed entry line as received from a caller or an import row.
// Amount is kept as the raw string so the validator can report unparseable input.
type LineInput struct {
	Form   Form
	Amount string

	// Index is the zero-based position in the submitted collection.
	Index int
	// Row is the original source row number for imports; zero for interactive input.
	Row int

	AccountID   string
	AccountCode string

	Description             string
	EntityCode              string
	Dimensions              map[string]string
	FSLIBucket              string
	InternalReportingBucket string
	Item                    string
	Reconciled              bool
	ReconciledWith          *string

	// shapeProblem explains why Form is FormUnknown.
	shapeProblem string
}

// DebitInput returns a debit line for amount.
func DebitInput(amount string) LineInput {
	return LineInput{Form: FormDebit, Amount: amount}
}

// CreditInput returns a credit line for amount.
func CreditInput(amount string) LineInput {
	return LineInput{Form: FormCredit, Amount: amount}
}

// SignedInput returns a legacy signed-amount line.
func SignedInput(amount string) LineInput {
	return LineInput{Form: FormSigned, Amount: amount}
}

// TypedInput returns a line for an explicit type string ("debit" or "credit", any case).
func TypedInput(lineType, amount string) LineInput {
	switch domain.LineType(strings.ToLower(strings.TrimSpace(lineType))) {
	case domain.Debit:
		return DebitInput(amount)
	case domain.Credit:
		return CreditInput(amount)
	}
	return LineInput{Form: FormUnknown, Amount: amount, shapeProblem: "type must be debit or credit, got \"" + lineType + "\""}
}

// ColumnsInput resolves the legacy two-column shape. Exactly one of debit or credit
// must carry a value; a zero or blank column counts as empty.
func ColumnsInput(debit, credit string) LineInput {
	hasDebit := columnSet(debit)
	hasCredit := columnSet(credit)
	switch {
	case hasDebit && !hasCredit:
		return DebitInput(debit)
	case hasCredit && !hasDebit:
		return CreditInput(credit)
	case hasDebit && hasCredit:
		return LineInput{Form: FormUnknown, shapeProblem: "exactly one of debit or credit must be set, both were"}
	}
	return LineInput{Form: FormUnknown, shapeProblem: "exactly one of debit or credit must be set, neither was"}
}

func columnSet(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" {
		return false
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		// unparseable text is still "set" so the amount check reports it
		return true
	}
	return !d.IsZero()
}

// FromJournalLine turns a stored line back into validator input.
func FromJournalLine(line domain.JournalLine, index int) LineInput {
	in := LineInput{
		Form:                    FormDebit,
		Amount:                  line.Amount.String(),
		Index:                   index,
		AccountID:               line.AccountID,
		Description:             line.Description,
		EntityCode:              line.EntityCode,
		Dimensions:              line.Dimensions,
		FSLIBucket:              line.FSLIBucket,
		InternalReportingBucket: line.InternalReportingBucket,
		Item:                    line.Item,
		Reconciled:              line.Reconciled,
		ReconciledWith:          line.ReconciledWith,
	}
	if line.Type == domain.Credit {
		in.Form = FormCredit
	}
	return in
}

// FromJournalLines converts a stored line set, preserving order.
func FromJournalLines(lines []domain.JournalLine) []LineInput {
	inputs := make([]LineInput, len(lines))
	for i, l := range lines {
		inputs[i] = FromJournalLine(l, i)
	}
	return inputs
}
