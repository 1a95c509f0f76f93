package services

import (
	"context"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers in the scope.
	ListEntries(ctx context.Context, scope domain.Scope, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error)

	// ListLines retrieves the line set of an entry.
	ListLines(ctx context.Context, scope domain.Scope, entryID string) ([]domain.JournalLine, error)
}

// JournalWriterSvc defines draft editing operations
type JournalWriterSvc interface {
	// CreateEntry validates and persists a new draft entry with its lines.
	CreateEntry(ctx context.Context, scope domain.Scope, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error)

	// UpdateEntry applies a partial update to a draft and re-validates the resulting line set.
	UpdateEntry(ctx context.Context, scope domain.Scope, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error)

	// DeleteEntry removes a draft entry.
	DeleteEntry(ctx context.Context, scope domain.Scope, entryID string) error
}

// JournalLifecycleSvc defines the status transitions of an entry
type JournalLifecycleSvc interface {
	// PostEntry re-validates a draft and commits it to the ledger.
	PostEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error)

	// ReverseEntry creates a posted reversal of a posted entry and marks the source reversed, atomically.
	ReverseEntry(ctx context.Context, scope domain.Scope, entryID string, req dto.ReverseJournalEntryRequest) (*domain.JournalEntry, error)

	// CopyEntry creates a new draft with the lines of a posted entry.
	CopyEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error)
}

// JournalValidatorSvc defines dry-run validation of proposed lines
type JournalValidatorSvc interface {
	// ValidateLines runs the balance validator over import rows without writing anything.
	ValidateLines(ctx context.Context, scope domain.Scope, req dto.ValidateLinesRequest) (*accounting.Result, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
	JournalLifecycleSvc
	JournalValidatorSvc
}

// EntryLocker serializes mutations of one entry across processes.
type EntryLocker interface {
	// Acquire takes the lock for key or fails with apperrors.ErrConflict when it is held.
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// LifecycleRecorder observes entry transitions and rejected operations.
type LifecycleRecorder interface {
	Transition(from, to domain.EntryStatus)
	Rejected(operation, reason string)
}
