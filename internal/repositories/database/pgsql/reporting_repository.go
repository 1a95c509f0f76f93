package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetTrialBalanceData sums every posted and reversed entry up to asOf per account.
// A reversed entry and its reversal are both included so they cancel out.
// Legacy rows without a type are folded in from their debit/credit columns,
// with negative legacy values counted on the opposite side.
func (r *reportingRepository) GetTrialBalanceData(ctx context.Context, clientID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			COALESCE(SUM(
				CASE
					WHEN l.type = 'debit' THEN l.amount
					WHEN l.type IS NULL THEN GREATEST(COALESCE(l.debit, 0), 0) + GREATEST(-COALESCE(l.credit, 0), 0)
					ELSE 0
				END), 0) AS total_debit,
			COALESCE(SUM(
				CASE
					WHEN l.type = 'credit' THEN l.amount
					WHEN l.type IS NULL THEN GREATEST(COALESCE(l.credit, 0), 0) + GREATEST(-COALESCE(l.debit, 0), 0)
					ELSE 0
				END), 0) AS total_credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		JOIN accounts a ON a.account_id = l.account_id
		WHERE e.client_id = $1
			AND e.entry_date <= $2
			AND e.status IN ('posted', 'reversed')
		GROUP BY a.account_id, a.code, a.name, a.account_type
		ORDER BY a.code
	`

	rows, err := r.db(ctx).Query(ctx, query, clientID, asOf)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.AccountCode,
			&row.AccountName,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if len(result) == 0 {
		return []domain.TrialBalanceRow{}, nil
	}

	return result, nil
}
