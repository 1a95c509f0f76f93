package repositories

import (
	"context"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// ReportingRepository defines operations for retrieving financial report data
type ReportingRepository interface {
	// GetTrialBalanceData sums debit and credit lines per account over entries
	// dated on or before asOf that have reached the ledger (posted or reversed).
	GetTrialBalanceData(ctx context.Context, clientID string, asOf time.Time) ([]domain.TrialBalanceRow, error)
}
