package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/platform/export"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	accountRepo   portsrepo.AccountReader
	journalReader portssvc.JournalReaderSvc
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClientAuthorizer sets the client authorizer for the reporting service.
func WithReportingClientAuthorizer(authorizer portssvc.ClientAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.ClientAuthorizer = authorizer
	}
}

// WithEntryExport enables the single-entry workbook export.
func WithEntryExport(journalReader portssvc.JournalReaderSvc, accountRepo portsrepo.AccountReader) ReportingServiceOption {
	return func(s *reportingService) {
		s.journalReader = journalReader
		s.accountRepo = accountRepo
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance report as of a specific date
func (s *reportingService) TrialBalance(ctx context.Context, clientID string, userID string, asOf time.Time) (*domain.TrialBalance, error) {
	// ReadOnly is sufficient for viewing reports
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleReadOnly); err != nil {
		s.LogWarn(ctx, err, "User not authorized to view trial balance report",
			slog.String("user_id", userID),
			slog.String("client_id", clientID))
		return nil, err
	}

	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, clientID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance data",
			slog.String("client_id", clientID),
			slog.String("asOf", asOf.Format(time.RFC3339)))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	tb := &domain.TrialBalance{
		ClientID:    clientID,
		AsOf:        asOf,
		Rows:        rows,
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	if tb.Rows == nil {
		tb.Rows = []domain.TrialBalanceRow{}
	}
	for _, r := range rows {
		tb.TotalDebit = tb.TotalDebit.Add(r.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(r.Credit)
	}
	if !tb.IsBalanced() {
		// every posted entry balances, so this points at corrupt or hand-edited data
		s.GetLogger(ctx).Error("Trial balance does not balance",
			slog.String("client_id", clientID),
			slog.String("total_debit", tb.TotalDebit.String()),
			slog.String("total_credit", tb.TotalCredit.String()))
	}

	s.LogInfo(ctx, "Trial balance report generated successfully",
		slog.String("client_id", clientID),
		slog.String("asOf", asOf.Format(time.RFC3339)),
		slog.Int("row_count", len(rows)))
	return tb, nil
}

// ExportTrialBalance writes the trial balance as a workbook
func (s *reportingService) ExportTrialBalance(ctx context.Context, clientID string, userID string, asOf time.Time, w io.Writer) error {
	tb, err := s.TrialBalance(ctx, clientID, userID, asOf)
	if err != nil {
		return err
	}
	if err := export.WriteTrialBalance(w, tb); err != nil {
		s.LogError(ctx, err, "Failed to render trial balance workbook", slog.String("client_id", clientID))
		return err
	}
	return nil
}

// ExportEntry writes one entry and its lines as a workbook
func (s *reportingService) ExportEntry(ctx context.Context, scope domain.Scope, entryID string, w io.Writer) error {
	if s.journalReader == nil {
		return fmt.Errorf("entry export is not configured")
	}
	entry, err := s.journalReader.GetEntry(ctx, scope, entryID)
	if err != nil {
		return err
	}

	names := export.AccountNames{}
	if s.accountRepo != nil && len(entry.Lines) > 0 {
		ids := make([]string, 0, len(entry.Lines))
		for _, l := range entry.Lines {
			ids = append(ids, l.AccountID)
		}
		accounts, err := s.accountRepo.FindAccountsByIDs(ctx, scope.ClientID, ids)
		if err != nil {
			return err
		}
		for _, a := range accounts {
			names[a.AccountID] = a.Code + " " + a.Name
		}
	}

	if err := export.WriteEntry(w, entry, names); err != nil {
		s.LogError(ctx, err, "Failed to render entry workbook", slog.String("entry_id", entryID))
		return err
	}
	return nil
}
