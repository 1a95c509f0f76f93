package accounting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Epsilon is the largest debit/credit difference treated as rounding noise.
var Epsilon = decimal.New(1, -2)

// Amounts are persisted as NUMERIC(20,4).
const (
	AmountScale         = 4
	AmountIntegerDigits = 16
)

var maxAmount = decimal.New(1, AmountIntegerDigits)

// Options tune a validation pass.
type Options struct {
	// AllowSigned accepts legacy signed-amount lines.
	AllowSigned bool
	// Epsilon overrides the package tolerance when non-zero.
	Epsilon decimal.Decimal
}

// Lookups provide the reference data lines are checked against. Dimensions may be nil
// when no line carries tags.
type Lookups struct {
	Accounts   AccountResolver
	Dimensions DimensionResolver
}

// CanonicalLine is a line resolved to {account, type, amount}.
// OK is false when the line had an account or amount issue.
// Dimensions holds the tags that resolved, keyed by dimension code.
type CanonicalLine struct {
	Input      LineInput
	AccountID  string
	Type       domain.LineType
	Amount     decimal.Decimal
	Dimensions map[string]string
	OK         bool
}

// Result is the outcome of one validation pass.
type Result struct {
	Lines       []CanonicalLine
	DebitTotal  decimal.Decimal
	CreditTotal decimal.Decimal
	Issues      []Issue
	epsilon     decimal.Decimal
}

// Difference returns debits minus credits.
func (r *Result) Difference() decimal.Decimal {
	return r.DebitTotal.Sub(r.CreditTotal)
}

// Balanced reports whether the difference is within tolerance.
func (r *Result) Balanced() bool {
	return r.Difference().Abs().LessThanOrEqual(r.epsilon)
}

// Valid reports whether no issue was found.
func (r *Result) Valid() bool {
	return len(r.Issues) == 0
}

// Err returns a *ValidationError when issues were found, nil otherwise.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &ValidationError{Issues: r.Issues}
}

// Validate checks a proposed line set in a single pass and accumulates every issue
// instead of stopping at the first one. It does not enforce a minimum line count.
func Validate(inputs []LineInput, lookups Lookups, opts Options) *Result {
	eps := opts.Epsilon
	if eps.IsZero() {
		eps = Epsilon
	}
	res := &Result{
		Lines:       make([]CanonicalLine, len(inputs)),
		DebitTotal:  decimal.Zero,
		CreditTotal: decimal.Zero,
		epsilon:     eps,
	}

	var lineIssues []Issue
	for i, in := range inputs {
		line := i + 1
		in.Index = i
		cl := CanonicalLine{Input: in, OK: true}

		acct, issues := checkAccount(in, line, lookups.Accounts)
		lineIssues = append(lineIssues, issues...)
		if len(issues) > 0 {
			cl.OK = false
		} else {
			cl.AccountID = acct.AccountID
		}

		lineType, amount, issue := resolveAmount(in, line, opts.AllowSigned)
		if issue != nil {
			lineIssues = append(lineIssues, *issue)
			cl.OK = false
		} else {
			cl.Type = lineType
			cl.Amount = amount
			if lineType == domain.Debit {
				res.DebitTotal = res.DebitTotal.Add(amount)
			} else {
				res.CreditTotal = res.CreditTotal.Add(amount)
			}
		}

		tags, issues := checkDimensions(in, line, lookups.Dimensions)
		lineIssues = append(lineIssues, issues...)
		cl.Dimensions = tags
		if in.ReconciledWith != nil && strings.TrimSpace(*in.ReconciledWith) != "" && !in.Reconciled {
			lineIssues = append(lineIssues, lineIssue(CodeReconciliation, in, line, "reconciledWith",
				"reconciledWith is set but the line is not marked reconciled"))
		}
		res.Lines[i] = cl
	}

	if !res.Balanced() {
		res.Issues = append(res.Issues, unbalancedIssue(res.DebitTotal, res.CreditTotal))
	}
	res.Issues = append(res.Issues, lineIssues...)
	return res
}

func checkAccount(in LineInput, line int, accounts AccountResolver) (domain.Account, []Issue) {
	ref := in.AccountID
	if ref == "" {
		ref = in.AccountCode
	}
	if ref == "" {
		return domain.Account{}, []Issue{lineIssue(CodeAccountNotFound, in, line, "accountId", "account is required")}
	}
	if accounts == nil {
		return domain.Account{}, []Issue{lineIssue(CodeAccountNotFound, in, line, "accountId", "account %s not found", ref)}
	}
	acct, ok := accounts.ResolveAccount(in.AccountID, in.AccountCode)
	if !ok {
		return domain.Account{}, []Issue{lineIssue(CodeAccountNotFound, in, line, "accountId", "account %s not found", ref)}
	}
	if !acct.IsActive {
		return acct, []Issue{lineIssue(CodeAccountInactive, in, line, "accountId", "account %s is inactive", ref)}
	}
	return acct, nil
}

func resolveAmount(in LineInput, line int, allowSigned bool) (domain.LineType, decimal.Decimal, *Issue) {
	if in.Form == FormUnknown {
		is := lineIssue(CodeInvalidLineShape, in, line, "type", "%s", in.shapeProblem)
		if in.shapeProblem == "" {
			is = lineIssue(CodeInvalidLineShape, in, line, "type", "line type is missing")
		}
		return "", decimal.Zero, &is
	}
	if in.Form == FormSigned && !allowSigned {
		is := lineIssue(CodeSignedNotAllowed, in, line, "amount", "signed amounts are only accepted in legacy mode; use type debit or credit")
		return "", decimal.Zero, &is
	}

	raw := strings.TrimSpace(in.Amount)
	if raw == "" {
		is := lineIssue(CodeInvalidAmount, in, line, "amount", "amount is required")
		return "", decimal.Zero, &is
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		is := lineIssue(CodeInvalidAmount, in, line, "amount", "amount %q is not a valid decimal", raw)
		return "", decimal.Zero, &is
	}
	if amount.IsZero() {
		is := lineIssue(CodeInvalidAmount, in, line, "amount", "amount must not be zero")
		return "", decimal.Zero, &is
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		is := lineIssue(CodeInvalidAmount, in, line, "amount", "amount %s has more than %d decimal places", raw, AmountScale)
		return "", decimal.Zero, &is
	}
	if amount.Abs().GreaterThanOrEqual(maxAmount) {
		is := lineIssue(CodeInvalidAmount, in, line, "amount", "amount %s has more than %d integer digits", raw, AmountIntegerDigits)
		return "", decimal.Zero, &is
	}

	switch in.Form {
	case FormSigned:
		if amount.IsNegative() {
			return domain.Credit, amount.Neg(), nil
		}
		return domain.Debit, amount, nil
	case FormDebit, FormCredit:
		if amount.IsNegative() {
			is := lineIssue(CodeInvalidAmount, in, line, "amount", "amount must be positive, got %s", raw)
			return "", decimal.Zero, &is
		}
		if in.Form == FormCredit {
			return domain.Credit, amount, nil
		}
		return domain.Debit, amount, nil
	}
	is := lineIssue(CodeInvalidLineShape, in, line, "type", "unsupported line form %s", in.Form)
	return "", decimal.Zero, &is
}

// checkDimensions returns the resolved tags keyed by dimension code with the value
// code upper-cased, plus an issue for every tag that did not resolve.
func checkDimensions(in LineInput, line int, dims DimensionResolver) (map[string]string, []Issue) {
	if len(in.Dimensions) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(in.Dimensions))
	for k := range in.Dimensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make(map[string]string, len(keys))
	var issues []Issue
	for _, key := range keys {
		value := in.Dimensions[key]
		var (
			dim domain.Dimension
			ok  bool
		)
		if dims != nil {
			dim, ok = dims.ResolveDimension(key)
		}
		if !ok {
			issues = append(issues, lineIssue(CodeDimensionNotFound, in, line, "dimensions."+key,
				"dimension %s not found", key))
			continue
		}
		if dims.HasValue(dim.DimensionID, value) {
			tags[normalizeKey(dim.Code)] = normalizeKey(value)
			continue
		}
		is := lineIssue(CodeDimensionValueNotFound, in, line, "dimensions."+key,
			"value %q not found for dimension %s", value, dim.Code)
		is.Severity = SeverityRemediable
		is.DimensionID = dim.DimensionID
		is.AttemptedValue = value
		issues = append(issues, is)
	}
	if len(tags) == 0 {
		return nil, issues
	}
	return tags, issues
}

func unbalancedIssue(debits, credits decimal.Decimal) Issue {
	diff := debits.Sub(credits).Abs()
	return Issue{
		Code:     CodeUnbalanced,
		Severity: SeverityError,
		Message: fmt.Sprintf("entry is unbalanced: debits %s, credits %s, difference %s",
			FormatAmount(debits), FormatAmount(credits), FormatAmount(diff)),
	}
}

// CheckBalance sums an already-canonical line set and returns an error wrapping
// ErrUnbalanced when it does not balance within Epsilon.
func CheckBalance(lines []domain.JournalLine) error {
	debits, credits := decimal.Zero, decimal.Zero
	for _, l := range lines {
		switch l.Type {
		case domain.Debit:
			debits = debits.Add(l.Amount)
		case domain.Credit:
			credits = credits.Add(l.Amount)
		default:
			return fmt.Errorf("line %d has unknown type %q", l.LineNo, l.Type)
		}
	}
	if debits.Sub(credits).Abs().GreaterThan(Epsilon) {
		return &ValidationError{Issues: []Issue{unbalancedIssue(debits, credits)}}
	}
	return nil
}

// FormatAmount renders at least two decimal places without dropping extra precision.
func FormatAmount(d decimal.Decimal) string {
	if d.Exponent() >= -2 {
		return d.StringFixed(2)
	}
	return d.String()
}
