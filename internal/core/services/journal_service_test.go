package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/acctflow/acctflow_backend/internal/apperrors"
	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portsrepo "github.com/acctflow/acctflow_backend/internal/core/ports/repositories"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/core/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
	"github.com/acctflow/acctflow_backend/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo   *MockJournalRepository
	mockAccountRepo   *MockAccountRepository
	mockDimensionRepo *MockDimensionRepository
	mockAuthorizer    *MockClientAuthorizer
	mockRecorder      *MockRecorder
	service           portssvc.JournalSvcFacade
	ctx               context.Context
	now               time.Time
	clientID          string
	userID            string
	scope             domain.Scope
	accounts          []domain.Account
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockDimensionRepo = new(MockDimensionRepository)
	suite.mockAuthorizer = new(MockClientAuthorizer)
	suite.mockRecorder = new(MockRecorder)
	suite.ctx = context.Background()
	suite.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.scope = domain.Scope{ClientID: suite.clientID, UserID: suite.userID}
	suite.accounts = []domain.Account{
		{AccountID: "acc-cash", ClientID: suite.clientID, Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true},
		{AccountID: "acc-rev", ClientID: suite.clientID, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.clientID, mock.Anything).Return(nil).Maybe()
	suite.mockRecorder.On("Transition", mock.Anything, mock.Anything).Maybe()
	suite.mockRecorder.On("Rejected", mock.Anything, mock.Anything).Maybe()

	suite.service = suite.newService()
}

func (suite *JournalServiceTestSuite) newService(extra ...services.JournalServiceOption) portssvc.JournalSvcFacade {
	opts := []services.JournalServiceOption{
		services.WithJournalClientAuthorizer(suite.mockAuthorizer),
		services.WithLifecycleRecorder(suite.mockRecorder),
		services.WithClock(func() time.Time { return suite.now }),
	}
	return services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockDimensionRepo, append(opts, extra...)...)
}

func (suite *JournalServiceTestSuite) expectAccounts() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.clientID, mock.Anything).Return(suite.accounts, nil).Maybe()
}

func (suite *JournalServiceTestSuite) entry(status domain.EntryStatus) *domain.JournalEntry {
	return &domain.JournalEntry{
		EntryID:         uuid.NewString(),
		ClientID:        suite.clientID,
		EntryDate:       suite.now,
		Description:     "Monthly sales",
		ReferenceNumber: "INV-100",
		Status:          status,
		Version:         1,
		AuditFields:     domain.NewAuditFields(suite.userID, suite.now),
	}
}

func (suite *JournalServiceTestSuite) storedLines(entryID string, amount string) []domain.JournalLine {
	amt := decimal.RequireFromString(amount)
	return []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 1, AccountID: "acc-cash", Type: domain.Debit, Amount: amt, Dimensions: map[string]string{}},
		{LineID: uuid.NewString(), EntryID: entryID, LineNo: 2, AccountID: "acc-rev", Type: domain.Credit, Amount: amt, Reconciled: true},
	}
}

func createRequest(debit, credit string) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Description: "  Monthly sales ",
		Lines: []dto.JournalLineRequest{
			{AccountID: "acc-cash", Type: "debit", Amount: debit},
			{AccountID: "acc-rev", Type: "CREDIT", Amount: credit},
		},
	}
}

// --- Create ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft &&
			e.Version == 1 &&
			e.Description == "Monthly sales" &&
			strings.HasPrefix(e.ReferenceNumber, "JE-20240601-") &&
			len(e.Lines) == 2 &&
			e.Lines[0].Type == domain.Debit &&
			e.Lines[1].Type == domain.Credit &&
			e.Lines[1].LineNo == 2 &&
			e.Lines[0].EntryID == e.EntryID
	})).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.scope, createRequest("150.00", "150.00"))

	suite.Require().NoError(err)
	suite.Equal(domain.Draft, entry.Status)
	suite.Nil(entry.PostedAt)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertCalled(suite.T(), "Transition", domain.EntryStatus(""), domain.Draft)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	suite.expectAccounts()

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, createRequest("100.00", "50.00"))

	suite.Require().Error(err)
	suite.ErrorIs(err, accounting.ErrUnbalanced)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "unbalanced")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertCalled(suite.T(), "Rejected", "create", "unbalanced")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_WithinTolerance() {
	suite.expectAccounts()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, createRequest("100.01", "100.00"))

	suite.NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_TooFewLines() {
	req := createRequest("10", "10")
	req.Lines = req.Lines[:1]

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, req)

	suite.ErrorIs(err, services.ErrTooFewLines)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccumulatesIssues() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.clientID, mock.Anything).Return([]domain.Account{suite.accounts[0]}, nil).Once()
	req := createRequest("abc", "10")

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, req)

	var verr *accounting.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.True(verr.Has(accounting.CodeInvalidAmount))
	suite.True(verr.Has(accounting.CodeAccountNotFound))
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SignedAmounts() {
	suite.expectAccounts()
	req := createRequest("", "")
	req.Lines = []dto.JournalLineRequest{
		{AccountID: "acc-cash", Amount: "75.50"},
		{AccountID: "acc-rev", Amount: "-75.50"},
	}

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, req)
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Lines[0].Type == domain.Debit && e.Lines[1].Type == domain.Credit && e.Lines[1].Amount.IsPositive()
	})).Return(nil).Once()
	legacy := suite.newService(services.WithSignedAmounts(true))
	_, err = legacy.CreateEntry(suite.ctx, suite.scope, req)
	suite.NoError(err)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_EntityOutsideScope() {
	scope := suite.scope
	scope.EntityID = "entity-a"
	other := "entity-b"
	req := createRequest("10", "10")
	req.EntityID = &other

	_, err := suite.service.CreateEntry(suite.ctx, scope, req)

	suite.ErrorIs(err, services.ErrScopeMismatch)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_EntityOfAnotherClient() {
	clientRepo := new(MockClientRepository)
	clientRepo.On("FindEntityByID", mock.Anything, "entity-x").
		Return(&domain.Entity{EntityID: "entity-x", ClientID: "someone-else"}, nil).Once()
	svc := suite.newService(services.WithEntityReader(clientRepo))
	scope := suite.scope
	scope.EntityID = "entity-x"

	_, err := svc.CreateEntry(suite.ctx, scope, createRequest("10", "10"))

	suite.ErrorIs(err, services.ErrScopeMismatch)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Forbidden() {
	authorizer := new(MockClientAuthorizer)
	authorizer.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.clientID, domain.RoleMember).
		Return(fmt.Errorf("%w: role MEMBER required", apperrors.ErrForbidden)).Once()
	svc := services.NewJournalService(suite.mockJournalRepo, suite.mockAccountRepo, suite.mockDimensionRepo,
		services.WithJournalClientAuthorizer(authorizer))

	_, err := svc.CreateEntry(suite.ctx, suite.scope, createRequest("10", "10"))

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

// --- Update ---

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedIsImmutable() {
	posted := suite.entry(domain.Posted)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, posted.EntryID).Return(posted, nil).Once()
	desc := "changed"

	_, err := suite.service.UpdateEntry(suite.ctx, suite.scope, posted.EntryID, dto.UpdateJournalEntryRequest{Description: &desc})

	suite.ErrorIs(err, services.ErrPostedEntryImmutable)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.Contains(err.Error(), "cannot modify posted entry")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "ReplaceDraft", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_StaleVersion() {
	draft := suite.entry(domain.Draft)
	draft.Version = 4
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	stale := 3

	_, err := suite.service.UpdateEntry(suite.ctx, suite.scope, draft.EntryID, dto.UpdateJournalEntryRequest{Version: &stale})

	suite.ErrorIs(err, services.ErrVersionConflict)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ReplacesLines() {
	suite.expectAccounts()
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("ReplaceDraft", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Version == 2 &&
			len(e.Lines) == 2 &&
			e.Lines[0].Amount.Equal(decimal.RequireFromString("200")) &&
			e.Description == "Monthly sales"
	}), 1).Return(nil).Once()

	lines := createRequest("200", "200").Lines
	version := 1
	updated, err := suite.service.UpdateEntry(suite.ctx, suite.scope, draft.EntryID, dto.UpdateJournalEntryRequest{Lines: &lines, Version: &version})

	suite.Require().NoError(err)
	suite.Equal(2, updated.Version)
	suite.Equal(domain.Draft, updated.Status)
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_HeaderOnlyRevalidatesStoredLines() {
	suite.expectAccounts()
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, draft.EntryID).Return(suite.storedLines(draft.EntryID, "80"), nil).Once()
	suite.mockJournalRepo.On("ReplaceDraft", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == "Adjusted" && len(e.Lines) == 2 && e.Lines[1].Reconciled
	}), 1).Return(nil).Once()
	desc := " Adjusted "

	_, err := suite.service.UpdateEntry(suite.ctx, suite.scope, draft.EntryID, dto.UpdateJournalEntryRequest{Description: &desc})

	suite.NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_ConcurrentWriteLoses() {
	suite.expectAccounts()
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, draft.EntryID).Return(suite.storedLines(draft.EntryID, "80"), nil).Once()
	suite.mockJournalRepo.On("ReplaceDraft", suite.ctx, mock.Anything, 1).
		Return(fmt.Errorf("%w: entry %s changed", apperrors.ErrConflict, draft.EntryID)).Once()
	desc := "Adjusted"

	_, err := suite.service.UpdateEntry(suite.ctx, suite.scope, draft.EntryID, dto.UpdateJournalEntryRequest{Description: &desc})

	suite.ErrorIs(err, services.ErrVersionConflict)
	suite.mockRecorder.AssertCalled(suite.T(), "Rejected", "update", "version_conflict")
}

// --- Post ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	suite.expectAccounts()
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, draft.EntryID).Return(suite.storedLines(draft.EntryID, "150.00"), nil).Once()
	suite.mockJournalRepo.On("MarkPosted", suite.ctx, draft.EntryID, 1, suite.userID, suite.now).Return(nil).Once()

	posted, err := suite.service.PostEntry(suite.ctx, suite.scope, draft.EntryID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Equal(2, posted.Version)
	suite.Require().NotNil(posted.PostedAt)
	suite.Equal(suite.now, *posted.PostedAt)
	suite.Equal(suite.userID, *posted.PostedBy)
	suite.Len(posted.Lines, 2)
	suite.mockRecorder.AssertCalled(suite.T(), "Transition", domain.Draft, domain.Posted)
}

func (suite *JournalServiceTestSuite) TestPostEntry_NotDraft() {
	posted := suite.entry(domain.Posted)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, posted.EntryID).Return(posted, nil).Once()

	_, err := suite.service.PostEntry(suite.ctx, suite.scope, posted.EntryID)

	suite.ErrorIs(err, services.ErrEntryNotDraft)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestPostEntry_AccountDeactivatedSinceDraft() {
	inactive := []domain.Account{suite.accounts[0], suite.accounts[1]}
	inactive[1].IsActive = false
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.clientID, mock.Anything).Return(inactive, nil).Once()
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, draft.EntryID).Return(suite.storedLines(draft.EntryID, "5"), nil).Once()

	_, err := suite.service.PostEntry(suite.ctx, suite.scope, draft.EntryID)

	var verr *accounting.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.True(verr.Has(accounting.CodeAccountInactive))
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkPosted", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestPostEntry_LostRace() {
	suite.expectAccounts()
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, draft.EntryID).Return(suite.storedLines(draft.EntryID, "5"), nil).Once()
	suite.mockJournalRepo.On("MarkPosted", suite.ctx, draft.EntryID, 1, suite.userID, suite.now).
		Return(fmt.Errorf("%w: entry changed", apperrors.ErrConflict)).Once()

	_, err := suite.service.PostEntry(suite.ctx, suite.scope, draft.EntryID)

	suite.ErrorIs(err, services.ErrVersionConflict)
}

// --- Reverse ---

func (suite *JournalServiceTestSuite) TestReverseEntry_DraftSource() {
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(suite.ctx, suite.scope, draft.EntryID, dto.ReverseJournalEntryRequest{})

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSourceNotPosted)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "posted")
	suite.Contains(err.Error(), "reverse")
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "WithinTransaction", mock.Anything)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	reversed := suite.entry(domain.Reversed)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, reversed.EntryID).Return(reversed, nil).Once()

	_, err := suite.service.ReverseEntry(suite.ctx, suite.scope, reversed.EntryID, dto.ReverseJournalEntryRequest{})

	suite.ErrorIs(err, services.ErrSourceNotPosted)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_ReversalOfReversal() {
	reversal := suite.entry(domain.Posted)
	reversal.IsReversal = true
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, reversal.EntryID).Return(reversal, nil).Once()

	_, err := suite.service.ReverseEntry(suite.ctx, suite.scope, reversal.EntryID, dto.ReverseJournalEntryRequest{})

	suite.ErrorIs(err, services.ErrAlreadyReversal)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	source := suite.entry(domain.Posted)
	lines := suite.storedLines(source.EntryID, "150.00")
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, source.EntryID).Return(source, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, source.EntryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("WithinTransaction", suite.ctx).Return(nil).Once()

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.IsReversal && e.Status == domain.Posted
	})).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.JournalEntry)
	}).Return(nil).Once()
	suite.mockJournalRepo.On("MarkReversed", suite.ctx, source.EntryID, mock.AnythingOfType("string"), suite.userID, suite.now).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(suite.ctx, suite.scope, source.EntryID, dto.ReverseJournalEntryRequest{})

	suite.Require().NoError(err)
	suite.Equal(saved.EntryID, reversal.EntryID)
	suite.NotEqual(source.EntryID, reversal.EntryID)
	suite.Equal("Reversal of: Monthly sales", reversal.Description)
	suite.Equal("INV-100-REV", reversal.ReferenceNumber)
	suite.Require().NotNil(reversal.ReversedEntryID)
	suite.Equal(source.EntryID, *reversal.ReversedEntryID)
	suite.Require().Len(reversal.Lines, 2)
	suite.Equal(domain.Credit, reversal.Lines[0].Type)
	suite.Equal(domain.Debit, reversal.Lines[1].Type)
	suite.True(reversal.Lines[0].Amount.Equal(lines[0].Amount))
	suite.False(reversal.Lines[1].Reconciled)
	suite.Equal(reversal.EntryID, reversal.Lines[0].EntryID)
	suite.NoError(accounting.CheckBalance(reversal.Lines))

	suite.mockJournalRepo.AssertCalled(suite.T(), "MarkReversed", suite.ctx, source.EntryID, reversal.EntryID, suite.userID, suite.now)
	suite.mockRecorder.AssertCalled(suite.T(), "Transition", domain.Posted, domain.Reversed)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_Overrides() {
	source := suite.entry(domain.Posted)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, source.EntryID).Return(source, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, source.EntryID).Return(suite.storedLines(source.EntryID, "9"), nil).Once()
	suite.mockJournalRepo.On("WithinTransaction", suite.ctx).Return(nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("MarkReversed", suite.ctx, source.EntryID, mock.Anything, suite.userID, suite.now).Return(nil).Once()

	date := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	desc := "Undo duplicate"
	ref := "  "
	reversal, err := suite.service.ReverseEntry(suite.ctx, suite.scope, source.EntryID,
		dto.ReverseJournalEntryRequest{Date: &date, Description: &desc, ReferenceNumber: &ref})

	suite.Require().NoError(err)
	suite.Equal(date, reversal.EntryDate)
	suite.Equal("Undo duplicate", reversal.Description)
	suite.Equal("INV-100-REV", reversal.ReferenceNumber)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_SourceChangedInsideTransaction() {
	source := suite.entry(domain.Posted)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, source.EntryID).Return(source, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, source.EntryID).Return(suite.storedLines(source.EntryID, "9"), nil).Once()
	suite.mockJournalRepo.On("WithinTransaction", suite.ctx).Return(nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()
	suite.mockJournalRepo.On("MarkReversed", suite.ctx, source.EntryID, mock.Anything, suite.userID, suite.now).
		Return(fmt.Errorf("%w: entry already reversed", apperrors.ErrConflict)).Once()

	reversal, err := suite.service.ReverseEntry(suite.ctx, suite.scope, source.EntryID, dto.ReverseJournalEntryRequest{})

	suite.Nil(reversal)
	suite.ErrorIs(err, services.ErrSourceNotPosted)
	suite.mockRecorder.AssertNotCalled(suite.T(), "Transition", domain.Posted, domain.Reversed)
}

// --- Copy ---

func (suite *JournalServiceTestSuite) TestCopyEntry_Success() {
	source := suite.entry(domain.Posted)
	lines := suite.storedLines(source.EntryID, "42")
	lines[0].Dimensions = map[string]string{"DEPT": "SALES"}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, source.EntryID).Return(source, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, source.EntryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Status == domain.Draft && !e.IsReversal && e.ReversedEntryID == nil
	})).Return(nil).Once()

	copied, err := suite.service.CopyEntry(suite.ctx, suite.scope, source.EntryID)

	suite.Require().NoError(err)
	suite.NotEqual(source.EntryID, copied.EntryID)
	suite.Equal("Copy of: Monthly sales", copied.Description)
	suite.Equal(1, copied.Version)
	suite.Require().Len(copied.Lines, 2)
	suite.Equal(domain.Debit, copied.Lines[0].Type)
	suite.Equal("SALES", copied.Lines[0].Dimensions["DEPT"])
	suite.NotEqual(lines[0].LineID, copied.Lines[0].LineID)
	suite.False(copied.Lines[1].Reconciled)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "MarkReversed", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCopyEntry_DraftSource() {
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()

	_, err := suite.service.CopyEntry(suite.ctx, suite.scope, draft.EntryID)

	suite.ErrorIs(err, services.ErrSourceNotPosted)
}

// --- Delete ---

func (suite *JournalServiceTestSuite) TestDeleteEntry() {
	draft := suite.entry(domain.Draft)
	posted := suite.entry(domain.Posted)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, posted.EntryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("DeleteDraft", suite.ctx, draft.EntryID).Return(nil).Once()

	suite.NoError(suite.service.DeleteEntry(suite.ctx, suite.scope, draft.EntryID))

	err := suite.service.DeleteEntry(suite.ctx, suite.scope, posted.EntryID)
	suite.ErrorIs(err, services.ErrPostedEntryImmutable)
	suite.mockJournalRepo.AssertNumberOfCalls(suite.T(), "DeleteDraft", 1)
}

// --- Scope and reads ---

func (suite *JournalServiceTestSuite) TestGetEntry_ScopeMismatch() {
	foreign := suite.entry(domain.Posted)
	foreign.ClientID = uuid.NewString()
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, foreign.EntryID).Return(foreign, nil).Once()

	_, err := suite.service.GetEntry(suite.ctx, suite.scope, foreign.EntryID)

	suite.ErrorIs(err, services.ErrScopeMismatch)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindLinesByEntryID", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestGetEntry_EntityScope() {
	entityID := "entity-eu"
	entry := suite.entry(domain.Posted)
	entry.EntityID = &entityID
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, entry.EntryID).Return(entry, nil).Twice()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, entry.EntryID).Return(suite.storedLines(entry.EntryID, "1"), nil).Once()

	scope := suite.scope
	scope.EntityID = entityID
	got, err := suite.service.GetEntry(suite.ctx, scope, entry.EntryID)
	suite.Require().NoError(err)
	suite.Len(got.Lines, 2)

	scope.EntityID = "entity-us"
	_, err = suite.service.GetEntry(suite.ctx, scope, entry.EntryID)
	suite.ErrorIs(err, services.ErrScopeMismatch)
}

func (suite *JournalServiceTestSuite) TestGetEntry_NotFound() {
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, "missing").Return(nil, apperrors.NewNotFoundError("journal entry")).Once()

	_, err := suite.service.GetEntry(suite.ctx, suite.scope, "missing")

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *JournalServiceTestSuite) TestListEntries() {
	token := "abc"
	suite.mockJournalRepo.On("ListEntries", suite.ctx,
		portsrepo.EntryFilter{ClientID: suite.clientID, Status: domain.Posted}, pagination.MaxLimit, &token,
	).Return([]domain.JournalEntry{*suite.entry(domain.Posted)}, "next", nil).Once()

	entries, next, err := suite.service.ListEntries(suite.ctx, suite.scope,
		dto.ListJournalEntriesParams{Limit: 5000, NextToken: &token, Status: "posted"})

	suite.Require().NoError(err)
	suite.Len(entries, 1)
	suite.Require().NotNil(next)
	suite.Equal("next", *next)
}

func (suite *JournalServiceTestSuite) TestListEntries_EntityFilterOutsideScope() {
	scope := suite.scope
	scope.EntityID = "entity-a"

	_, _, err := suite.service.ListEntries(suite.ctx, scope, dto.ListJournalEntriesParams{EntityID: "entity-b"})

	suite.ErrorIs(err, services.ErrScopeMismatch)
}

func (suite *JournalServiceTestSuite) TestValidateLines_DryRun() {
	suite.mockAccountRepo.On("FindAccountsByCodes", mock.Anything, suite.clientID, []string{"1000", "4000"}).Return(suite.accounts, nil).Once()
	suite.mockDimensionRepo.On("ListDimensionsByClient", mock.Anything, suite.clientID).Return([]domain.Dimension{{
		DimensionID: "dim-dept", ClientID: suite.clientID, Code: "DEPT",
		Values: []domain.DimensionValue{{ValueID: "v1", DimensionID: "dim-dept", Code: "SALES"}},
	}}, nil).Once()

	res, err := suite.service.ValidateLines(suite.ctx, suite.scope, dto.ValidateLinesRequest{Rows: []dto.ImportRow{
		{Row: 2, AccountCode: "1000", Debit: "10", Dimensions: map[string]string{"DEPT": "MARKETING"}},
		{Row: 3, AccountCode: "4000", Credit: "10"},
	}})

	suite.Require().NoError(err)
	suite.True(res.Balanced())
	suite.Require().Len(res.Issues, 1)
	suite.Equal(accounting.CodeDimensionValueNotFound, res.Issues[0].Code)
	suite.Equal(2, res.Issues[0].Row)
	suite.True(res.Issues[0].Remediable())
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

// --- Locking ---

func (suite *JournalServiceTestSuite) TestEntryLock_HeldElsewhere() {
	locker := &fakeLocker{err: fmt.Errorf("%w: lock held", apperrors.ErrConflict)}
	svc := suite.newService(services.WithEntryLocker(locker))

	_, err := svc.PostEntry(suite.ctx, suite.scope, "entry-1")

	suite.ErrorIs(err, services.ErrEntryLocked)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "FindEntryByID", mock.Anything, mock.Anything)
	suite.mockRecorder.AssertCalled(suite.T(), "Rejected", "post", "entry_locked")
}

func (suite *JournalServiceTestSuite) TestEntryLock_ReleasedAfterFailure() {
	locker := &fakeLocker{}
	svc := suite.newService(services.WithEntryLocker(locker))
	draft := suite.entry(domain.Draft)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()

	_, err := svc.ReverseEntry(suite.ctx, suite.scope, draft.EntryID, dto.ReverseJournalEntryRequest{})

	suite.Error(err)
	suite.Equal([]string{"journal-entry:" + draft.EntryID}, locker.acquired)
	suite.Equal(locker.acquired, locker.released)
}

func (suite *JournalServiceTestSuite) TestEntryLock_BackendDown() {
	locker := &fakeLocker{err: errors.New("dial tcp: connection refused")}
	svc := suite.newService(services.WithEntryLocker(locker))

	err := svc.DeleteEntry(suite.ctx, suite.scope, "entry-1")

	suite.Error(err)
	suite.NotErrorIs(err, services.ErrEntryLocked)
	suite.mockRecorder.AssertCalled(suite.T(), "Rejected", "delete", "internal")
}

// --- Stored form survives re-validation ---

func (suite *JournalServiceTestSuite) deptDimension() domain.Dimension {
	dimID := uuid.NewString()
	return domain.Dimension{
		DimensionID: dimID, ClientID: suite.clientID, Code: "Dept",
		Values: []domain.DimensionValue{{ValueID: uuid.NewString(), DimensionID: dimID, Code: "SALES"}},
	}
}

func (suite *JournalServiceTestSuite) TestCreateThenPost_TagsKeyedByDimensionID() {
	suite.expectAccounts()
	dim := suite.deptDimension()
	suite.mockDimensionRepo.On("ListDimensionsByClient", mock.Anything, suite.clientID).Return([]domain.Dimension{dim}, nil)

	var saved domain.JournalEntry
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(domain.JournalEntry)
	}).Return(nil).Once()

	req := createRequest("80.00", "80.00")
	req.Lines[0].Dimensions = map[string]string{dim.DimensionID: "sales"}
	created, err := suite.service.CreateEntry(suite.ctx, suite.scope, req)
	suite.Require().NoError(err)
	suite.Equal(map[string]string{"DEPT": "SALES"}, created.Lines[0].Dimensions)
	suite.Nil(created.Lines[1].Dimensions)

	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, saved.EntryID).Return(&saved, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, saved.EntryID).Return(saved.Lines, nil).Once()
	suite.mockJournalRepo.On("MarkPosted", suite.ctx, saved.EntryID, 1, suite.userID, suite.now).Return(nil).Once()

	posted, err := suite.service.PostEntry(suite.ctx, suite.scope, saved.EntryID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
}

func (suite *JournalServiceTestSuite) TestUpdateHeaderOnly_KeepsStoredTagsValid() {
	suite.expectAccounts()
	dim := suite.deptDimension()
	suite.mockDimensionRepo.On("ListDimensionsByClient", mock.Anything, suite.clientID).Return([]domain.Dimension{dim}, nil)
	draft := suite.entry(domain.Draft)
	lines := suite.storedLines(draft.EntryID, "12.50")
	// rows written before tags were keyed by code carry the upper-cased ID
	lines[0].Dimensions = map[string]string{strings.ToUpper(dim.DimensionID): "SALES"}
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, draft.EntryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", suite.ctx, draft.EntryID).Return(lines, nil).Once()
	suite.mockJournalRepo.On("ReplaceDraft", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == "Renamed" && e.Lines[0].Dimensions["DEPT"] == "SALES"
	}), 1).Return(nil).Once()

	desc := "Renamed"
	updated, err := suite.service.UpdateEntry(suite.ctx, suite.scope, draft.EntryID, dto.UpdateJournalEntryRequest{Description: &desc})

	suite.Require().NoError(err)
	suite.Equal(2, updated.Version)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AmountBeyondStoredScale() {
	suite.expectAccounts()

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, createRequest("0.00004", "0.00004"))

	var verr *accounting.ValidationError
	suite.Require().ErrorAs(err, &verr)
	suite.Equal(accounting.CodeInvalidAmount, verr.Issues[0].Code)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LookupFailureIsRecorded() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.clientID, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.scope, createRequest("10", "10"))

	suite.Require().Error(err)
	suite.mockRecorder.AssertCalled(suite.T(), "Rejected", "create", "internal")
}

func (suite *JournalServiceTestSuite) TestCreateEntry_TimestampsAtStoredPrecision() {
	suite.expectAccounts()
	svc := suite.newService(services.WithClock(func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 123456789, time.UTC)
	}))
	suite.mockJournalRepo.On("SaveEntry", suite.ctx, mock.Anything).Return(nil).Once()

	entry, err := svc.CreateEntry(suite.ctx, suite.scope, createRequest("10", "10"))

	suite.Require().NoError(err)
	suite.Equal(123456000, entry.CreatedAt.Nanosecond())
	suite.Equal(123456000, entry.Lines[0].CreatedAt.Nanosecond())
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
