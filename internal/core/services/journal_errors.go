package services

import (
	"errors"
	"fmt"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
)

// Journal lifecycle errors. Each wraps an apperrors category so handlers can map it
// to a status code while callers can still match the specific rule with errors.Is.
var (
	ErrTooFewLines          = fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	ErrPostedEntryImmutable = fmt.Errorf("%w: cannot modify posted entry", apperrors.ErrForbidden)
	ErrEntryNotDraft        = fmt.Errorf("%w: only draft entries can be posted", apperrors.ErrConflict)
	ErrSourceNotPosted      = fmt.Errorf("%w: source entry is not posted", apperrors.ErrValidation)
	ErrAlreadyReversal      = fmt.Errorf("%w: entry is itself a reversal and cannot be reversed", apperrors.ErrValidation)
	ErrScopeMismatch        = fmt.Errorf("%w: entry belongs to a different client or entity", apperrors.ErrForbidden)
	ErrVersionConflict      = fmt.Errorf("%w: entry was modified by another request, reload and retry", apperrors.ErrConflict)
	ErrEntryLocked          = fmt.Errorf("%w: entry is being modified by another request", apperrors.ErrConflict)
)

// rejectionReason is the metric label for a failed operation.
func rejectionReason(err error) string {
	var verr *accounting.ValidationError
	switch {
	case errors.As(err, &verr) && len(verr.Issues) > 0:
		return string(verr.Issues[0].Code)
	case errors.Is(err, ErrTooFewLines):
		return "too_few_lines"
	case errors.Is(err, ErrPostedEntryImmutable):
		return "posted_entry_immutable"
	case errors.Is(err, ErrEntryNotDraft):
		return "entry_not_draft"
	case errors.Is(err, ErrSourceNotPosted):
		return "source_not_posted"
	case errors.Is(err, ErrAlreadyReversal):
		return "already_reversal"
	case errors.Is(err, ErrScopeMismatch):
		return "scope_mismatch"
	case errors.Is(err, ErrVersionConflict):
		return "version_conflict"
	case errors.Is(err, ErrEntryLocked):
		return "entry_locked"
	case errors.Is(err, apperrors.ErrForbidden):
		return "forbidden"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	}
	return "internal"
}
