package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
	"github.com/acctflow/acctflow_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

const minEntryLines = 2

// journalService owns journal entries: draft editing, the draft/posted/reversed
// lifecycle and dry-run validation of import rows.
type journalService struct {
	BaseService
	journalRepo   portsrepo.JournalEntryRepositoryWithTx
	accountRepo   portsrepo.AccountReader
	dimensionRepo portsrepo.DimensionReader
	entityRepo    portsrepo.ClientReader
	locker        portssvc.EntryLocker
	recorder      portssvc.LifecycleRecorder
	allowSigned   bool
	now           func() time.Time
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalClientAuthorizer sets the client authorizer for the journal service.
func WithJournalClientAuthorizer(authorizer portssvc.ClientAuthorizerSvc) JournalServiceOption {
	return func(s *journalService) {
		s.ClientAuthorizer = authorizer
	}
}

// WithEntityReader enables checking that an entry's entity belongs to the client.
func WithEntityReader(repo portsrepo.ClientReader) JournalServiceOption {
	return func(s *journalService) {
		s.entityRepo = repo
	}
}

// WithEntryLocker serializes mutations of the same entry across instances.
func WithEntryLocker(locker portssvc.EntryLocker) JournalServiceOption {
	return func(s *journalService) {
		s.locker = locker
	}
}

// WithLifecycleRecorder reports transitions and rejections.
func WithLifecycleRecorder(recorder portssvc.LifecycleRecorder) JournalServiceOption {
	return func(s *journalService) {
		s.recorder = recorder
	}
}

// WithSignedAmounts accepts legacy signed-amount lines on create and update.
func WithSignedAmounts(allow bool) JournalServiceOption {
	return func(s *journalService) {
		s.allowSigned = allow
	}
}

// WithClock overrides the time source. Readings are truncated to the
// microsecond precision Postgres stores.
func WithClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = func() time.Time { return now().Truncate(time.Microsecond) }
	}
}

// NewJournalService creates a new journal service with the provided options
func NewJournalService(
	journalRepo portsrepo.JournalEntryRepositoryWithTx,
	accountRepo portsrepo.AccountReader,
	dimensionRepo portsrepo.DimensionReader,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		journalRepo:   journalRepo,
		accountRepo:   accountRepo,
		dimensionRepo: dimensionRepo,
		now:           func() time.Time { return time.Now().UTC().Truncate(time.Microsecond) },
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// GetEntry retrieves an entry and its lines
func (s *journalService) GetEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	entry, err := s.loadEntry(ctx, scope, entryID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines
	return entry, nil
}

// ListEntries retrieves a page of entry headers
func (s *journalService) ListEntries(ctx context.Context, scope domain.Scope, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error) {
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}

	filter := portsrepo.EntryFilter{
		ClientID: scope.ClientID,
		EntityID: scope.EntityID,
		Status:   domain.EntryStatus(params.Status),
	}
	if params.EntityID != "" {
		if scope.EntityID != "" && params.EntityID != scope.EntityID {
			return nil, nil, ErrScopeMismatch
		}
		filter.EntityID = params.EntityID
	}

	entries, next, err := s.journalRepo.ListEntries(ctx, filter, pagination.ClampLimit(params.Limit), params.NextToken)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list journal entries", slog.String("client_id", scope.ClientID))
		}
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, next, nil
}

// ListLines retrieves the line set of an entry
func (s *journalService) ListLines(ctx context.Context, scope domain.Scope, entryID string) ([]domain.JournalLine, error) {
	entry, err := s.GetEntry(ctx, scope, entryID)
	if err != nil {
		return nil, err
	}
	if entry.Lines == nil {
		return []domain.JournalLine{}, nil
	}
	return entry.Lines, nil
}

// CreateEntry validates the proposed lines and persists a new draft
func (s *journalService) CreateEntry(ctx context.Context, scope domain.Scope, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	const op = "create"
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleMember); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	entityID, err := s.resolveEntity(ctx, scope, req.EntityID)
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, s.reject(ctx, op, fmt.Errorf("%w: description is required", apperrors.ErrValidation))
	}
	if len(req.Lines) < minEntryLines {
		return nil, s.reject(ctx, op, ErrTooFewLines)
	}

	res, err := s.validate(ctx, scope.ClientID, dto.ToLineInputs(req.Lines), s.allowSigned)
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}
	if err := res.Err(); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	now := s.now()
	entry := domain.JournalEntry{
		EntryID:         uuid.NewString(),
		ClientID:        scope.ClientID,
		EntityID:        entityID,
		EntryDate:       req.Date,
		Description:     description,
		ReferenceNumber: strings.TrimSpace(req.ReferenceNumber),
		Status:          domain.Draft,
		Version:         1,
		AuditFields:     domain.NewAuditFields(scope.UserID, now),
	}
	if entry.ReferenceNumber == "" {
		entry.ReferenceNumber = generateReference(entry.EntryDate)
	}
	entry.Lines = buildLines(entry.EntryID, res.Lines, scope.UserID, now)

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	s.transition("", domain.Draft)
	s.LogInfo(ctx, "Journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("reference_number", entry.ReferenceNumber),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

// UpdateEntry applies a partial update to a draft and re-validates the resulting line set
func (s *journalService) UpdateEntry(ctx context.Context, scope domain.Scope, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	const op = "update"
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleMember); err != nil {
		return nil, s.reject(ctx, op, err)
	}

	var updated *domain.JournalEntry
	err := s.withEntryLock(ctx, entryID, func(ctx context.Context) error {
		entry, err := s.loadEntry(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if !entry.IsEditable() {
			return fmt.Errorf("entry %s is %s: %w", entryID, entry.Status, ErrPostedEntryImmutable)
		}
		if req.Version != nil && *req.Version != entry.Version {
			return fmt.Errorf("expected version %d, current version %d: %w", *req.Version, entry.Version, ErrVersionConflict)
		}

		next := *entry
		if req.Date != nil {
			next.EntryDate = *req.Date
		}
		if req.Description != nil {
			desc := strings.TrimSpace(*req.Description)
			if desc == "" {
				return fmt.Errorf("%w: description is required", apperrors.ErrValidation)
			}
			next.Description = desc
		}
		if req.ReferenceNumber != nil && strings.TrimSpace(*req.ReferenceNumber) != "" {
			next.ReferenceNumber = strings.TrimSpace(*req.ReferenceNumber)
		}

		var inputs []accounting.LineInput
		if req.Lines != nil {
			inputs = dto.ToLineInputs(*req.Lines)
		} else {
			stored, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
			if err != nil {
				return err
			}
			inputs = accounting.FromJournalLines(stored)
		}
		if len(inputs) < minEntryLines {
			return ErrTooFewLines
		}

		res, err := s.validate(ctx, scope.ClientID, inputs, s.allowSigned)
		if err != nil {
			return err
		}
		if err := res.Err(); err != nil {
			return err
		}

		now := s.now()
		next.Lines = buildLines(entryID, res.Lines, scope.UserID, now)
		next.LastUpdatedAt = now
		next.LastUpdatedBy = scope.UserID
		next.Version = entry.Version + 1

		if err := s.journalRepo.ReplaceDraft(ctx, next, entry.Version); err != nil {
			return s.mapWriteConflict(err, ErrVersionConflict)
		}
		updated = &next
		return nil
	})
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}

	s.transition(domain.Draft, domain.Draft)
	s.LogInfo(ctx, "Journal entry updated",
		slog.String("entry_id", entryID),
		slog.Int("version", updated.Version))
	return updated, nil
}

// DeleteEntry removes a draft entry
func (s *journalService) DeleteEntry(ctx context.Context, scope domain.Scope, entryID string) error {
	const op = "delete"
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleMember); err != nil {
		return s.reject(ctx, op, err)
	}

	err := s.withEntryLock(ctx, entryID, func(ctx context.Context) error {
		entry, err := s.loadEntry(ctx, scope, entryID)
		if err != nil {
			return err
		}
		if !entry.IsEditable() {
			return fmt.Errorf("entry %s is %s: %w", entryID, entry.Status, ErrPostedEntryImmutable)
		}
		if err := s.journalRepo.DeleteDraft(ctx, entryID); err != nil {
			return s.mapWriteConflict(err, ErrPostedEntryImmutable)
		}
		return nil
	})
	if err != nil {
		return s.reject(ctx, op, err)
	}

	s.LogInfo(ctx, "Draft journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// ValidateLines runs the validator over import rows without writing
func (s *journalService) ValidateLines(ctx context.Context, scope domain.Scope, req dto.ValidateLinesRequest) (*accounting.Result, error) {
	if err := s.AuthorizeUser(ctx, scope.UserID, scope.ClientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	inputs := make([]accounting.LineInput, len(req.Rows))
	for i, row := range req.Rows {
		inputs[i] = row.ToLineInput(i)
	}
	res, err := s.validate(ctx, scope.ClientID, inputs, req.AllowSigned)
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Validated import rows",
		slog.Int("rows", len(inputs)),
		slog.Int("issues", len(res.Issues)),
		slog.Bool("balanced", res.Balanced()))
	return res, nil
}

// loadEntry fetches an entry header and enforces the scope.
func (s *journalService) loadEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	if !entry.InScope(scope) {
		s.LogWarn(ctx, ErrScopeMismatch, "Journal entry accessed outside its scope",
			slog.String("entry_id", entryID),
			slog.String("entry_client_id", entry.ClientID),
			slog.String("scope_client_id", scope.ClientID),
			slog.String("scope_entity_id", scope.EntityID))
		return nil, ErrScopeMismatch
	}
	return entry, nil
}

// resolveEntity picks the entity for a new entry and checks it belongs to the client.
func (s *journalService) resolveEntity(ctx context.Context, scope domain.Scope, requested *string) (*string, error) {
	entityID := scope.EntityID
	if requested != nil && *requested != "" {
		if scope.EntityID != "" && *requested != scope.EntityID {
			return nil, ErrScopeMismatch
		}
		entityID = *requested
	}
	if entityID == "" {
		return nil, nil
	}
	if s.entityRepo != nil {
		entity, err := s.entityRepo.FindEntityByID(ctx, entityID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: entity %s not found", apperrors.ErrValidation, entityID)
			}
			return nil, err
		}
		if entity.ClientID != scope.ClientID {
			return nil, ErrScopeMismatch
		}
	}
	return &entityID, nil
}

// validate loads the client's reference data the inputs need and runs the validator.
func (s *journalService) validate(ctx context.Context, clientID string, inputs []accounting.LineInput, allowSigned bool) (*accounting.Result, error) {
	lookups, err := s.loadLookups(ctx, clientID, inputs)
	if err != nil {
		return nil, err
	}
	return accounting.Validate(inputs, lookups, accounting.Options{AllowSigned: allowSigned}), nil
}

func (s *journalService) loadLookups(ctx context.Context, clientID string, inputs []accounting.LineInput) (accounting.Lookups, error) {
	var ids, codes []string
	seen := make(map[string]bool)
	tagged := false
	for _, in := range inputs {
		switch {
		case in.AccountID != "" && !seen["id:"+in.AccountID]:
			seen["id:"+in.AccountID] = true
			ids = append(ids, in.AccountID)
		case in.AccountID == "" && in.AccountCode != "" && !seen["code:"+in.AccountCode]:
			seen["code:"+in.AccountCode] = true
			codes = append(codes, in.AccountCode)
		}
		if len(in.Dimensions) > 0 {
			tagged = true
		}
	}

	var accounts []domain.Account
	if len(ids) > 0 {
		found, err := s.accountRepo.FindAccountsByIDs(ctx, clientID, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load accounts for validation", slog.String("client_id", clientID))
			return accounting.Lookups{}, err
		}
		accounts = append(accounts, found...)
	}
	if len(codes) > 0 {
		found, err := s.accountRepo.FindAccountsByCodes(ctx, clientID, codes)
		if err != nil {
			s.LogError(ctx, err, "Failed to load accounts by code for validation", slog.String("client_id", clientID))
			return accounting.Lookups{}, err
		}
		accounts = append(accounts, found...)
	}

	lookups := accounting.Lookups{Accounts: accounting.NewAccountIndex(accounts)}
	if tagged {
		var dims []domain.Dimension
		if s.dimensionRepo != nil {
			var err error
			dims, err = s.dimensionRepo.ListDimensionsByClient(ctx, clientID)
			if err != nil {
				s.LogError(ctx, err, "Failed to load dimensions for validation", slog.String("client_id", clientID))
				return accounting.Lookups{}, err
			}
		}
		lookups.Dimensions = accounting.NewDimensionIndex(dims)
	}
	return lookups, nil
}

// buildLines turns validated lines into persisted lines of entryID.
func buildLines(entryID string, canonical []accounting.CanonicalLine, userID string, now time.Time) []domain.JournalLine {
	lines := make([]domain.JournalLine, len(canonical))
	for i, cl := range canonical {
		in := cl.Input
		lines[i] = domain.JournalLine{
			LineID:                  uuid.NewString(),
			EntryID:                 entryID,
			LineNo:                  i + 1,
			AccountID:               cl.AccountID,
			Type:                    cl.Type,
			Amount:                  cl.Amount,
			Description:             in.Description,
			EntityCode:              in.EntityCode,
			Dimensions:              cl.Dimensions,
			FSLIBucket:              in.FSLIBucket,
			InternalReportingBucket: in.InternalReportingBucket,
			Item:                    in.Item,
			Reconciled:              in.Reconciled,
			ReconciledWith:          in.ReconciledWith,
			AuditFields:             domain.NewAuditFields(userID, now),
		}
	}
	return lines
}

// stampLines gives derived lines fresh identities inside entryID.
func stampLines(entryID string, lines []domain.JournalLine, userID string, now time.Time) []domain.JournalLine {
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
		lines[i].AuditFields = domain.NewAuditFields(userID, now)
	}
	return lines
}

// generateReference returns JE-YYYYMMDD-XXXXXX.
func generateReference(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("JE-%s-%s", date.Format("20060102"), suffix)
}

// mapWriteConflict turns a repository conflict into the rule-specific error.
func (s *journalService) mapWriteConflict(err error, rule error) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return fmt.Errorf("%s: %w", err.Error(), rule)
	}
	return err
}

// withEntryLock runs fn while holding the entry's distributed lock, if one is configured.
func (s *journalService) withEntryLock(ctx context.Context, entryID string, fn func(ctx context.Context) error) error {
	if s.locker == nil {
		return fn(ctx)
	}
	release, err := s.locker.Acquire(ctx, "journal-entry:"+entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return ErrEntryLocked
		}
		s.LogError(ctx, err, "Failed to acquire entry lock", slog.String("entry_id", entryID))
		return err
	}
	defer func() {
		if rerr := release(context.WithoutCancel(ctx)); rerr != nil {
			s.LogWarn(ctx, rerr, "Failed to release entry lock", slog.String("entry_id", entryID))
		}
	}()
	return fn(ctx)
}

// reject records a failed operation and returns err unchanged.
func (s *journalService) reject(ctx context.Context, operation string, err error) error {
	reason := rejectionReason(err)
	if s.recorder != nil {
		s.recorder.Rejected(operation, reason)
	}
	if reason == "internal" {
		s.LogError(ctx, err, "Journal operation failed", slog.String("operation", operation))
	} else {
		s.LogWarn(ctx, err, "Journal operation rejected",
			slog.String("operation", operation),
			slog.String("reason", reason))
	}
	return err
}

func (s *journalService) transition(from, to domain.EntryStatus) {
	if s.recorder != nil {
		s.recorder.Transition(from, to)
	}
}
