package repositories

import (
	"context"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
)

// EntryFilter narrows a journal entry listing.
type EntryFilter struct {
	ClientID string
	EntityID string
	Status   domain.EntryStatus
}

// JournalEntryReader defines read operations for journal entries
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry header (without lines).
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// FindLinesByEntryID retrieves the lines of an entry ordered by line number,
	// normalizing legacy debit/credit rows to typed lines.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error)

	// ListEntries retrieves a page of entry headers using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, filter EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveEntry inserts an entry header and all of entry.Lines.
	SaveEntry(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceDraft overwrites the header fields and line set of a draft entry and bumps its version.
	// It fails with apperrors.ErrConflict when the entry is no longer a draft at expectedVersion.
	ReplaceDraft(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error

	// MarkPosted flips a draft at expectedVersion to posted.
	// It fails with apperrors.ErrConflict when the entry changed concurrently.
	MarkPosted(ctx context.Context, entryID string, expectedVersion int, postedBy string, postedAt time.Time) error

	// MarkReversed flags a posted entry as reversed by reversalID.
	// It fails with apperrors.ErrConflict when the entry is no longer posted.
	MarkReversed(ctx context.Context, entryID string, reversalID string, userID string, at time.Time) error

	// DeleteDraft removes a draft entry and its lines.
	DeleteDraft(ctx context.Context, entryID string) error
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}

// JournalEntryRepositoryWithTx extends JournalEntryRepositoryFacade with transaction capabilities
type JournalEntryRepositoryWithTx interface {
	JournalEntryRepositoryFacade
	TransactionManager
}
