package services

import (
	"context"
	"io"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance totals every account over ledger entries dated on or before asOf.
	TrialBalance(ctx context.Context, clientID string, userID string, asOf time.Time) (*domain.TrialBalance, error)

	// ExportTrialBalance writes the trial balance as an xlsx workbook.
	ExportTrialBalance(ctx context.Context, clientID string, userID string, asOf time.Time, w io.Writer) error

	// ExportEntry writes one entry and its lines as an xlsx workbook.
	ExportEntry(ctx context.Context, scope domain.Scope, entryID string, w io.Writer) error
}
