package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	"github.com/acctflow/acctflow_backend/internal/models"
	"github.com/acctflow/acctflow_backend/internal/utils/mapping"
	"github.com/acctflow/acctflow_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, client_id, entity_id, entry_date, description, reference_number, status,
	is_reversal, is_reversed, reversed_entry_id, reversed_by_entry_id, version, posted_at, posted_by,
	created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, line_no, account_id, type, amount, debit, credit, description,
	entity_code, dimensions, fsli_bucket, internal_reporting_bucket, item, reconciled, reconciled_with,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their lines.
func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalEntryRepositoryWithTx
var _ portsrepo.JournalEntryRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.ClientID,
		&m.EntityID,
		&m.EntryDate,
		&m.Description,
		&m.ReferenceNumber,
		&m.Status,
		&m.IsReversal,
		&m.IsReversed,
		&m.ReversedEntryID,
		&m.ReversedByEntryID,
		&m.Version,
		&m.PostedAt,
		&m.PostedBy,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveEntry inserts an entry header and its lines in one transaction.
// It joins the caller's transaction when one is bound to ctx.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		query := `
			INSERT INTO journal_entries (` + entryColumns + `)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
		`
		_, err := r.db(ctx).Exec(ctx, query,
			m.EntryID,
			m.ClientID,
			m.EntityID,
			m.EntryDate,
			m.Description,
			m.ReferenceNumber,
			m.Status,
			m.IsReversal,
			m.IsReversed,
			m.ReversedEntryID,
			m.ReversedByEntryID,
			m.Version,
			m.PostedAt,
			m.PostedBy,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, m.EntryID)
			}
			return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
		}
		return r.insertLines(ctx, entry.EntryID, entry.Lines)
	})
}

// insertLines queues every line in a single batch. Lines are always written in the typed shape.
func (r *PgxJournalRepository) insertLines(ctx context.Context, entryID string, lines []domain.JournalLine) error {
	if len(lines) == 0 {
		return nil
	}
	query := `
		INSERT INTO journal_entry_lines (
			line_id, entry_id, line_no, account_id, type, amount, description, entity_code,
			dimensions, fsli_bucket, internal_reporting_bucket, item, reconciled, reconciled_with,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, COALESCE($9::jsonb, '{}'::jsonb), $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	batch := &pgx.Batch{}
	for _, l := range lines {
		m := mapping.ToModelJournalLine(l)
		m.EntryID = entryID
		var dims any
		if len(m.Dimensions) > 0 {
			dims = m.Dimensions
		}
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.LineNo,
			m.AccountID,
			m.Type,
			m.Amount,
			m.Description,
			m.EntityCode,
			dims,
			m.FSLIBucket,
			m.InternalReportingBucket,
			m.Item,
			m.Reconciled,
			m.ReconciledWith,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := r.db(ctx).SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: journal entry %s references an unknown account", apperrors.ErrValidation, entryID)
		}
		return apperrors.NewAppError(500, "failed to insert lines for journal entry "+entryID, err)
	}
	return nil
}

// FindEntryByID retrieves an entry header. Lines are loaded with FindLinesByEntryID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE entry_id = $1;`
	m, err := scanEntry(r.db(ctx).QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("journal entry " + entryID)
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}
	entry := mapping.ToDomainJournalEntry(m)
	return &entry, nil
}

// FindLinesByEntryID returns the lines of an entry in line order, normalizing legacy rows.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `SELECT ` + lineColumns + ` FROM journal_entry_lines WHERE entry_id = $1 ORDER BY line_no;`
	rows, err := r.db(ctx).Query(ctx, query, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines for journal entry "+entryID, err)
	}
	defer rows.Close()

	var ms []models.JournalLine
	for rows.Next() {
		var m models.JournalLine
		if err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.LineNo,
			&m.AccountID,
			&m.Type,
			&m.Amount,
			&m.Debit,
			&m.Credit,
			&m.Description,
			&m.EntityCode,
			&m.Dimensions,
			&m.FSLIBucket,
			&m.InternalReportingBucket,
			&m.Item,
			&m.Reconciled,
			&m.ReconciledWith,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line row for journal entry "+entryID, err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating line rows for journal entry "+entryID, err)
	}

	lines, err := mapping.ToDomainJournalLineSlice(ms)
	if err != nil {
		return nil, apperrors.NewAppError(500, "unreadable line stored for journal entry "+entryID, err)
	}
	if lines == nil {
		lines = []domain.JournalLine{}
	}
	return lines, nil
}

// ListEntries retrieves a page of entry headers ordered newest first.
// It returns the entries, a token for the next page, and an error.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	limit = pagination.ClampLimit(limit)
	// One extra row tells us whether there is a next page.
	fetchLimit := limit + 1

	conditions := []string{"client_id = $1"}
	args := []any{filter.ClientID}
	if filter.EntityID != "" {
		args = append(args, filter.EntityID)
		conditions = append(conditions, "entity_id = $"+strconv.Itoa(len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		conditions = append(conditions, "status = $"+strconv.Itoa(len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(entry_date, created_at, entry_id) < ($%d, $%d, $%d)", n-2, n-1, n))
	}
	args = append(args, fetchLimit)

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + strings.Join(conditions, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for client "+filter.ClientID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row for client "+filter.ClientID, err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows for client "+filter.ClientID, err)
	}

	var next *string
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		next = &token
		modelEntries = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, next, nil
}

// ReplaceDraft overwrites a draft header and its full line set.
// It returns ErrConflict if the entry is no longer a draft at expectedVersion.
func (r *PgxJournalRepository) ReplaceDraft(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	m := mapping.ToModelJournalEntry(entry)
	return r.WithinTransaction(ctx, func(ctx context.Context) error {
		query := `
			UPDATE journal_entries
			SET entry_date = $2,
			    description = $3,
			    reference_number = $4,
			    version = $5,
			    last_updated_at = $6,
			    last_updated_by = $7
			WHERE entry_id = $1 AND version = $8 AND status = 'draft';
		`
		cmdTag, err := r.db(ctx).Exec(ctx, query,
			m.EntryID,
			m.EntryDate,
			m.Description,
			m.ReferenceNumber,
			m.Version,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
			expectedVersion,
		)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update journal entry "+m.EntryID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			return fmt.Errorf("%w: journal entry %s is not a draft at version %d", apperrors.ErrConflict, m.EntryID, expectedVersion)
		}

		if _, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, m.EntryID); err != nil {
			return apperrors.NewAppError(500, "failed to clear lines of journal entry "+m.EntryID, err)
		}
		return r.insertLines(ctx, m.EntryID, entry.Lines)
	})
}

// MarkPosted moves a draft at expectedVersion to posted.
func (r *PgxJournalRepository) MarkPosted(ctx context.Context, entryID string, expectedVersion int, postedBy string, postedAt time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'posted',
		    posted_at = $3,
		    posted_by = $4,
		    version = version + 1,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE entry_id = $1 AND version = $2 AND status = 'draft';
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, entryID, expectedVersion, postedAt, postedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to post journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not a draft at version %d", apperrors.ErrConflict, entryID, expectedVersion)
	}
	return nil
}

// MarkReversed links a posted entry to its reversal and moves it to reversed.
func (r *PgxJournalRepository) MarkReversed(ctx context.Context, entryID string, reversalID string, userID string, at time.Time) error {
	query := `
		UPDATE journal_entries
		SET status = 'reversed',
		    is_reversed = TRUE,
		    reversed_by_entry_id = $2,
		    version = version + 1,
		    last_updated_at = $4,
		    last_updated_by = $3
		WHERE entry_id = $1 AND status = 'posted' AND reversed_by_entry_id IS NULL;
	`
	cmdTag, err := r.db(ctx).Exec(ctx, query, entryID, reversalID, userID, at)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark journal entry "+entryID+" reversed", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is no longer posted", apperrors.ErrConflict, entryID)
	}
	return nil
}

// DeleteDraft removes a draft and, by cascade, its lines.
func (r *PgxJournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	cmdTag, err := r.db(ctx).Exec(ctx, `DELETE FROM journal_entries WHERE entry_id = $1 AND status = 'draft';`, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: journal entry %s is not a draft", apperrors.ErrConflict, entryID)
	}
	return nil
}
