package accounting

import (
	"errors"
	"fmt"
	"strings"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
)

// ErrUnbalanced matches any ValidationError that contains an unbalanced issue.
var ErrUnbalanced = errors.New("journal entry is unbalanced")

// IssueCode identifies the rule a line or entry violated.
type IssueCode string

const (
	CodeUnbalanced             IssueCode = "unbalanced"
	CodeAccountNotFound        IssueCode = "account_not_found"
	CodeAccountInactive        IssueCode = "account_inactive"
	CodeInvalidAmount          IssueCode = "invalid_amount"
	CodeInvalidLineShape       IssueCode = "invalid_line_shape"
	CodeSignedNotAllowed       IssueCode = "signed_amount_not_allowed"
	CodeDimensionNotFound      IssueCode = "dimension_not_found"
	CodeDimensionValueNotFound IssueCode = "dimension_value_not_found"
	CodeReconciliation         IssueCode = "reconciliation_inconsistent"
)

// Severity separates issues that need new input from issues the caller can remediate in place.
type Severity string

const (
	SeverityError      Severity = "error"
	SeverityRemediable Severity = "remediable"
)

// Issue is one validation finding. Line is the 1-based position in the submitted
// set (0 for entry-level issues); Row is the import row when the input came from a file.
type Issue struct {
	Code           IssueCode `json:"code"`
	Severity       Severity  `json:"severity"`
	Line           int       `json:"line,omitempty"`
	Row            int       `json:"row,omitempty"`
	Field          string    `json:"field,omitempty"`
	Message        string    `json:"message"`
	DimensionID    string    `json:"dimensionId,omitempty"`
	AttemptedValue string    `json:"attemptedValue,omitempty"`
}

// Remediable reports whether the caller can fix the issue without re-entering the line.
func (i Issue) Remediable() bool {
	return i.Severity == SeverityRemediable
}

// ValidationError carries every issue found in one validation pass.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Issues))
	for i, is := range e.Issues {
		msgs[i] = is.Message
	}
	return strings.Join(msgs, "; ")
}

// Is matches apperrors.ErrValidation always and ErrUnbalanced when an unbalanced issue is present.
func (e *ValidationError) Is(target error) bool {
	switch target {
	case apperrors.ErrValidation:
		return true
	case ErrUnbalanced:
		return e.Has(CodeUnbalanced)
	}
	return false
}

// Has reports whether any issue carries code.
func (e *ValidationError) Has(code IssueCode) bool {
	for _, is := range e.Issues {
		if is.Code == code {
			return true
		}
	}
	return false
}

// OnlyRemediable reports whether every issue can be remediated in place.
func (e *ValidationError) OnlyRemediable() bool {
	if len(e.Issues) == 0 {
		return false
	}
	for _, is := range e.Issues {
		if !is.Remediable() {
			return false
		}
	}
	return true
}

func lineIssue(code IssueCode, in LineInput, line int, field, format string, args ...any) Issue {
	return Issue{
		Code:     code,
		Severity: SeverityError,
		Line:     line,
		Row:      in.Row,
		Field:    field,
		Message:  position(in.Row, line) + ": " + fmt.Sprintf(format, args...),
	}
}

func position(row, line int) string {
	if row > 0 {
		return fmt.Sprintf("row %d", row)
	}
	return fmt.Sprintf("line %d", line)
}
