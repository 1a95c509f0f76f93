package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

// PostEntry re-validates a draft against current reference data and commits it
func (s *journalService) PostEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	const op = "post"
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleMember); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	var posted *domain.JournalEntry
	err := s.withEntryLock(ctx, entryID, func(ctx context.Context) error {
		entry, err := s.loadEntry(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if entry.Status != domain.Draft {
			return fmt.Errorf("entry %s is %s: %w", entryID, entry.Status, ErrEntryNotDraft)
		}

		lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return err
		}
		if len(lines) < minEntryLines {
			return ErrTooFewLines
		}
		// accounts may have been deactivated since the draft was saved
		res, err := s.validate(ctx, scope.ClientID, accounting.FromJournalLines(lines), false)
		if err != nil {
			return err
		}
		if err := res.Err(); err != nil {
			return err
		}

		now := s.now()
		if err := s.journalRepo.MarkPosted(ctx, entryID, entry.Version, scope.UserID, now); err != nil {
			return s.mapWriteConflict(err, ErrVersionConflict)
		}

		entry.Status = domain.Posted
		entry.PostedAt = &now
		entry.PostedBy = &scope.UserID
		entry.Version++
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = scope.UserID
		entry.Lines = lines
		posted = entry
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}

	s.transition(domain.Draft, domain.Posted)
	s.LogInfo(ctx, "Journal entry posted", slog.String("entry_id", entryID))
	return posted, nil
}

// ReverseEntry creates a posted entry offsetting a posted source and marks the source
// reversed. Both writes share one database transaction.
func (s *journalService) ReverseEntry(ctx context.Context, scope domain.Scope, entryID string, req dto.ReverseJournalEntryRequest) (*domain.JournalEntry, error) {
	const op = "reverse"
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleMember); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	var reversal *domain.JournalEntry
	err := s.withEntryLock(ctx, entryID, func(ctx context.Context) error {
		source, err := s.loadEntry(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if source.Status != domain.Posted {
			return fmt.Errorf("cannot reverse entry %s in status %s, only posted entries can be reversed: %w",
				entryID, source.Status, ErrSourceNotPosted)
		}
		if source.IsReversal {
			return ErrAlreadyReversal
		}

		lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return err
		}
		reversedLines := accounting.ReverseLines(lines)
		if err := accounting.CheckBalance(reversedLines); err != nil {
			s.LogError(ctx, err, "Generated reversal is unbalanced", slog.String("entry_id", entryID))
			return err
		}

		now := s.now()
		next := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			ClientID:        source.ClientID,
			EntityID:        source.EntityID,
			EntryDate:       source.EntryDate,
			Description:     "Reversal of: " + source.Description,
			ReferenceNumber: source.ReferenceNumber + "-REV",
			Status:          domain.Posted,
			IsReversal:      true,
			ReversedEntryID: &source.EntryID,
			Version:         1,
			PostedAt:        &now,
			PostedBy:        &scope.UserID,
			AuditFields:     domain.NewAuditFields(scope.UserID, now),
		}
		if req.Date != nil {
			next.EntryDate = *req.Date
		}
		if req.Description != nil && strings.TrimSpace(*req.Description) != "" {
			next.Description = strings.TrimSpace(*req.Description)
		}
		if req.ReferenceNumber != nil && strings.TrimSpace(*req.ReferenceNumber) != "" {
			next.ReferenceNumber = strings.TrimSpace(*req.ReferenceNumber)
		}
		next.Lines = stampLines(next.EntryID, reversedLines, scope.UserID, now)

		err = s.journalRepo.WithinTransaction(ctx, func(txCtx context.Context) error {
			if err := s.journalRepo.SaveEntry(txCtx, next); err != nil {
				return err
			}
			if err := s.journalRepo.MarkReversed(txCtx, source.EntryID, next.EntryID, scope.UserID, now); err != nil {
				return s.mapWriteConflict(err, ErrSourceNotPosted)
			}
			return nil
		})
		if err != nil {
			return err
		}
		reversal = &next
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}

	s.transition(domain.Posted, domain.Reversed)
	s.transition("", domain.Posted)
	s.LogInfo(ctx, "Journal entry reversed",
		slog.String("entry_id", entryID),
		slog.String("reversal_entry_id", reversal.EntryID))
	return reversal, nil
}

// CopyEntry creates an independent draft with the same lines as a posted entry
func (s *journalService) CopyEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	const op = "copy"
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleMember); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	var copied *domain.JournalEntry
	err := s.withEntryLock(ctx, entryID, func(ctx context.Context) error {
		source, err := s.loadEntry(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if source.Status != domain.Posted {
			return fmt.Errorf("cannot copy entry %s in status %s, only posted entries can be copied: %w",
				entryID, source.Status, ErrSourceNotPosted)
		}

		lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
		if err != nil {
			return err
		}

		now := s.now()
		next := domain.JournalEntry{
			EntryID:         uuid.NewString(),
			ClientID:        source.ClientID,
			EntityID:        source.EntityID,
			EntryDate:       source.EntryDate,
			Description:     "Copy of: " + source.Description,
			ReferenceNumber: "Copy of " + source.ReferenceNumber,
			Status:          domain.Draft,
			Version:         1,
			AuditFields:     domain.NewAuditFields(scope.UserID, now),
		}
		next.Lines = stampLines(next.EntryID, accounting.CopyLines(lines), scope.UserID, now)

		if err := s.journalRepo.SaveEntry(ctx, next); err != nil {
			return err
		}
		copied = &next
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}

	s.transition("", domain.Draft)
	s.LogInfo(ctx, "Journal entry copied",
		slog.String("entry_id", entryID),
		slog.String("copy_entry_id", copied.EntryID))
	return copied, nil
}
