package pgsql

import (
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ClientRepo:    newPgxClientRepository(dbPool),
		AccountRepo:   newPgxAccountRepository(dbPool),
		DimensionRepo: newPgxDimensionRepository(dbPool),
		JournalRepo:   newPgxJournalRepository(dbPool),
		ReportingRepo: newReportingRepository(dbPool),
	}
}
