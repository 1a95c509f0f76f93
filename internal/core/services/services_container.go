package services

import (
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// extra options are applied to the journal service (locker, recorder).
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, extra ...JournalServiceOption) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize client service first since other services authorize through it
	container.Client = NewClientService(repos.ClientRepo)
	authorizer := container.Client.(portssvc.ClientAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithAccountClientAuthorizer(authorizer),
	)
	container.Dimension = NewDimensionService(repos.DimensionRepo, authorizer)

	journalOpts := []JournalServiceOption{
		WithJournalClientAuthorizer(authorizer),
		WithEntityReader(repos.ClientRepo),
		WithSignedAmounts(cfg.AllowSignedAmounts),
	}
	journalOpts = append(journalOpts, extra...)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, repos.DimensionRepo, journalOpts...)

	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingClientAuthorizer(authorizer),
		WithEntryExport(container.Journal, repos.AccountRepo),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade = (*accountService)(nil)
	_ portssvc.ClientSvcFacade  = (*clientService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
)
