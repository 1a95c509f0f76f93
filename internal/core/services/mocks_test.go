package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryWithTx = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	// hand out a copy so the service cannot mutate the fixture
	e := *args.Get(0).(*domain.JournalEntry)
	return &e, args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	lines := args.Get(0).([]domain.JournalLine)
	out := make([]domain.JournalLine, len(lines))
	copy(out, lines)
	return out, args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var next *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		next = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceDraft(ctx context.Context, entry domain.JournalEntry, expectedVersion int) error {
	args := m.Called(ctx, entry, expectedVersion)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkPosted(ctx context.Context, entryID string, expectedVersion int, postedBy string, postedAt time.Time) error {
	args := m.Called(ctx, entryID, expectedVersion, postedBy, postedAt)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkReversed(ctx context.Context, entryID string, reversalID string, userID string, at time.Time) error {
	args := m.Called(ctx, entryID, reversalID, userID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteDraft(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

// WithinTransaction runs fn unless the expectation returns an error. An error from fn
// is returned as the transaction's error, as a rollback would.
func (m *MockJournalRepository) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, clientID string, accountIDs []string) ([]domain.Account, error) {
	args := m.Called(ctx, clientID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByCodes(ctx context.Context, clientID string, codes []string) ([]domain.Account, error) {
	args := m.Called(ctx, clientID, codes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByClient(ctx context.Context, clientID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, clientID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) CountChildAccounts(ctx context.Context, accountID string) (int, error) {
	args := m.Called(ctx, accountID)
	return args.Int(0), args.Error(1)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

// --- Mock DimensionRepository ---
type MockDimensionRepository struct {
	mock.Mock
}

var _ portsrepo.DimensionRepositoryFacade = (*MockDimensionRepository)(nil)

func (m *MockDimensionRepository) FindDimensionByID(ctx context.Context, dimensionID string) (*domain.Dimension, error) {
	args := m.Called(ctx, dimensionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Dimension), args.Error(1)
}

func (m *MockDimensionRepository) ListDimensionsByClient(ctx context.Context, clientID string) ([]domain.Dimension, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Dimension), args.Error(1)
}

func (m *MockDimensionRepository) SaveDimension(ctx context.Context, dimension domain.Dimension) error {
	args := m.Called(ctx, dimension)
	return args.Error(0)
}

func (m *MockDimensionRepository) SaveDimensionValue(ctx context.Context, value domain.DimensionValue) error {
	args := m.Called(ctx, value)
	return args.Error(0)
}

// --- Mock ClientRepository ---
type MockClientRepository struct {
	mock.Mock
}

var _ portsrepo.ClientRepositoryFacade = (*MockClientRepository)(nil)

func (m *MockClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Client), args.Error(1)
}

func (m *MockClientRepository) ListClientsByUserID(ctx context.Context, userID string) ([]domain.Client, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Client), args.Error(1)
}

func (m *MockClientRepository) FindMembership(ctx context.Context, userID, clientID string) (*domain.ClientMember, error) {
	args := m.Called(ctx, userID, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ClientMember), args.Error(1)
}

func (m *MockClientRepository) FindEntityByID(ctx context.Context, entityID string) (*domain.Entity, error) {
	args := m.Called(ctx, entityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Entity), args.Error(1)
}

func (m *MockClientRepository) ListEntitiesByClient(ctx context.Context, clientID string) ([]domain.Entity, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Entity), args.Error(1)
}

func (m *MockClientRepository) SaveClientWithOwner(ctx context.Context, client domain.Client, owner domain.ClientMember) error {
	args := m.Called(ctx, client, owner)
	return args.Error(0)
}

func (m *MockClientRepository) UpsertMembership(ctx context.Context, member domain.ClientMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockClientRepository) SaveEntity(ctx context.Context, entity domain.Entity) error {
	args := m.Called(ctx, entity)
	return args.Error(0)
}

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) GetTrialBalanceData(ctx context.Context, clientID string, asOf time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, clientID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock ClientAuthorizer ---
type MockClientAuthorizer struct {
	mock.Mock
}

var _ portssvc.ClientAuthorizerSvc = (*MockClientAuthorizer)(nil)

func (m *MockClientAuthorizer) AuthorizeUserAction(ctx context.Context, userID, clientID string, requiredRole domain.ClientRole) error {
	args := m.Called(ctx, userID, clientID, requiredRole)
	return args.Error(0)
}

// --- Mock LifecycleRecorder ---
type MockRecorder struct {
	mock.Mock
}

var _ portssvc.LifecycleRecorder = (*MockRecorder)(nil)

func (m *MockRecorder) Transition(from, to domain.EntryStatus) {
	m.Called(from, to)
}

func (m *MockRecorder) Rejected(operation, reason string) {
	m.Called(operation, reason)
}

// fakeLocker records lock traffic and fails every Acquire with err when set.
type fakeLocker struct {
	mu       sync.Mutex
	err      error
	acquired []string
	released []string
}

var _ portssvc.EntryLocker = (*fakeLocker)(nil)

func (l *fakeLocker) Acquire(_ context.Context, key string) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return nil, l.err
	}
	l.acquired = append(l.acquired, key)
	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.released = append(l.released, key)
		return nil
	}, nil
}
