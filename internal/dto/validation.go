package dto

import (
	"strings"

	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// ImportRow is one row of a batch upload. A row uses exactly one amount shape:
// Type+Amount, the legacy Debit/Credit columns, or a signed Amount alone.
type ImportRow struct {
	Row            int               `json:"row" binding:"min=0"`
	AccountID      string            `json:"accountId"`
	AccountCode    string            `json:"accountCode"`
	Type           string            `json:"type"`
	Amount         string            `json:"amount"`
	Debit          string            `json:"debit"`
	Credit         string            `json:"credit"`
	Description    string            `json:"description"`
	EntityCode     string            `json:"entityCode"`
	Dimensions     map[string]string `json:"dimensions"`
	FSLIBucket     string            `json:"fsliBucket"`
	ReportingGroup string            `json:"internalReportingBucket"`
	Item           string            `json:"item"`
	Reconciled     bool              `json:"reconciled"`
	ReconciledWith *string           `json:"reconciledWith"`
}

// ValidateLinesRequest is a dry-run validation of imported rows.
type ValidateLinesRequest struct {
	AllowSigned bool        `json:"allowSigned"`
	Rows        []ImportRow `json:"rows" binding:"required,min=1,dive"`
}

// ToLineInput resolves the row's shape to validator input.
func (r ImportRow) ToLineInput(index int) accounting.LineInput {
	var in accounting.LineInput
	switch {
	case strings.TrimSpace(r.Type) != "":
		in = accounting.TypedInput(r.Type, r.Amount)
	case strings.TrimSpace(r.Debit) != "" || strings.TrimSpace(r.Credit) != "":
		in = accounting.ColumnsInput(r.Debit, r.Credit)
	default:
		in = accounting.SignedInput(r.Amount)
	}
	in.Index = index
	in.Row = r.Row
	in.AccountID = strings.TrimSpace(r.AccountID)
	in.AccountCode = strings.TrimSpace(r.AccountCode)
	in.Description = r.Description
	in.EntityCode = r.EntityCode
	in.Dimensions = r.Dimensions
	in.FSLIBucket = r.FSLIBucket
	in.InternalReportingBucket = r.ReportingGroup
	in.Item = r.Item
	in.Reconciled = r.Reconciled
	in.ReconciledWith = r.ReconciledWith
	return in
}

// IssueResponse is the wire form of a validation issue.
type IssueResponse struct {
	Code           accounting.IssueCode `json:"code"`
	Severity       accounting.Severity  `json:"severity"`
	Line           int                  `json:"line,omitempty"`
	Row            int                  `json:"row,omitempty"`
	Field          string               `json:"field,omitempty"`
	Message        string               `json:"message"`
	DimensionID    string               `json:"dimensionId,omitempty"`
	AttemptedValue string               `json:"attemptedValue,omitempty"`
	Remediable     bool                 `json:"remediable"`
}

// ErrorResponse is the body of every failed request. Issues is present only for validation failures.
type ErrorResponse struct {
	Error  string          `json:"error"`
	Issues []IssueResponse `json:"issues,omitempty"`
}

// ValidationReport is the result of a dry-run validation.
type ValidationReport struct {
	Valid       bool            `json:"valid"`
	Balanced    bool            `json:"balanced"`
	LineCount   int             `json:"lineCount"`
	DebitTotal  decimal.Decimal `json:"debitTotal"`
	CreditTotal decimal.Decimal `json:"creditTotal"`
	Difference  decimal.Decimal `json:"difference"`
	Issues      []IssueResponse `json:"issues"`
}

// ToIssueResponses converts validator issues to their wire form.
func ToIssueResponses(issues []accounting.Issue) []IssueResponse {
	res := make([]IssueResponse, len(issues))
	for i, is := range issues {
		res[i] = IssueResponse{
			Code:           is.Code,
			Severity:       is.Severity,
			Line:           is.Line,
			Row:            is.Row,
			Field:          is.Field,
			Message:        is.Message,
			DimensionID:    is.DimensionID,
			AttemptedValue: is.AttemptedValue,
			Remediable:     is.Remediable(),
		}
	}
	return res
}

// ToValidationReport summarizes a validation result.
func ToValidationReport(res *accounting.Result) ValidationReport {
	return ValidationReport{
		Valid:       res.Valid(),
		Balanced:    res.Balanced(),
		LineCount:   len(res.Lines),
		DebitTotal:  res.DebitTotal,
		CreditTotal: res.CreditTotal,
		Difference:  res.Difference(),
		Issues:      ToIssueResponses(res.Issues),
	}
}
