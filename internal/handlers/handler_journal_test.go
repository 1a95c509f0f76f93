package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/core/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/handlers"
	"github.com/acctflow/acctflow_backend/internal/middleware"
	"github.com/acctflow/acctflow_backend/internal/utils/accounting"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) GetEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, scope domain.Scope, params dto.ListJournalEntriesParams) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, scope, params)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.JournalEntry), next, args.Error(2)
}
func (m *MockJournalService) ListLines(ctx context.Context, scope domain.Scope, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}
func (m *MockJournalService) CreateEntry(ctx context.Context, scope domain.Scope, req dto.CreateJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, scope domain.Scope, entryID string, req dto.UpdateJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, scope domain.Scope, entryID string) error {
	args := m.Called(ctx, scope, entryID)
	return args.Error(0)
}
func (m *MockJournalService) PostEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ReverseEntry(ctx context.Context, scope domain.Scope, entryID string, req dto.ReverseJournalEntryRequest) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) CopyEntry(ctx context.Context, scope domain.Scope, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, scope, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ValidateLines(ctx context.Context, scope domain.Scope, req dto.ValidateLinesRequest) (*accounting.Result, error) {
	args := m.Called(ctx, scope, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Result), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) TrialBalance(ctx context.Context, clientID string, userID string, asOf time.Time) (*domain.TrialBalance, error) {
	args := m.Called(ctx, clientID, userID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalance), args.Error(1)
}
func (m *MockReportingService) ExportTrialBalance(ctx context.Context, clientID string, userID string, asOf time.Time, w io.Writer) error {
	args := m.Called(ctx, clientID, userID, asOf, w)
	return args.Error(0)
}
func (m *MockReportingService) ExportEntry(ctx context.Context, scope domain.Scope, entryID string, w io.Writer) error {
	args := m.Called(ctx, scope, entryID, w)
	if err := args.Error(0); err != nil {
		return err
	}
	_, err := w.Write([]byte("PK-xlsx"))
	return err
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Test Suite ---
type JournalHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockJournalService *MockJournalService
	mockReporting      *MockReportingService
	jwtSecret          string
	clientID           string
	userID             string
}

// generateTestToken creates a signed JWT for testing.
func (suite *JournalHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "acctflow-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *JournalHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.clientID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockJournalService = new(MockJournalService)
	suite.mockReporting = new(MockReportingService)

	v1 := suite.router.Group("/api/v1/clients/:client_id")
	handlers.RegisterJournalRoutes(v1, suite.mockJournalService, suite.mockReporting)
}

func (suite *JournalHandlerTestSuite) do(method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	url := fmt.Sprintf("/api/v1/clients/%s/journal-entries%s", suite.clientID, path)
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *JournalHandlerTestSuite) scope() domain.Scope {
	return domain.Scope{ClientID: suite.clientID, UserID: suite.userID}
}

func (suite *JournalHandlerTestSuite) sampleEntry(status domain.EntryStatus) *domain.JournalEntry {
	now := time.Now().UTC()
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:         entryID,
		ClientID:        suite.clientID,
		EntryDate:       now,
		Description:     "Office supplies",
		ReferenceNumber: "JE-1",
		Status:          status,
		Version:         1,
		Lines: []domain.JournalLine{
			{LineID: uuid.NewString(), EntryID: entryID, LineNo: 1, AccountID: "acc-exp", Type: domain.Debit, Amount: decimal.RequireFromString("150.00")},
			{LineID: uuid.NewString(), EntryID: entryID, LineNo: 2, AccountID: "acc-cash", Type: domain.Credit, Amount: decimal.RequireFromString("150.00")},
		},
		AuditFields: domain.NewAuditFields(suite.userID, now),
	}
}

func createBody(debit, credit string) map[string]any {
	return map[string]any{
		"date":        "2024-06-01T00:00:00Z",
		"description": "Office supplies",
		"lines": []map[string]any{
			{"accountId": "acc-exp", "type": "debit", "amount": debit},
			{"accountId": "acc-cash", "type": "credit", "amount": credit},
		},
	}
}

// --- Test Cases ---

func (suite *JournalHandlerTestSuite) TestCreateEntry_Success() {
	entry := suite.sampleEntry(domain.Draft)
	suite.mockJournalService.On("CreateEntry", mock.Anything, suite.scope(),
		mock.MatchedBy(func(req dto.CreateJournalEntryRequest) bool {
			return len(req.Lines) == 2 && req.Lines[0].Amount == "150.00"
		}),
	).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "", createBody("150.00", "150.00"))

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(entry.EntryID, resp.ID)
	suite.Equal(domain.Draft, resp.Status)
	suite.Len(resp.Lines, 2)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_UnbalancedListsIssues() {
	verr := &accounting.ValidationError{Issues: []accounting.Issue{{
		Code:     accounting.CodeUnbalanced,
		Severity: accounting.SeverityError,
		Message:  "journal entry is unbalanced: debits 100.00, credits 50.00, difference 50.00",
	}}}
	suite.mockJournalService.On("CreateEntry", mock.Anything, suite.scope(), mock.Anything).Return(nil, verr).Once()

	w := suite.do(http.MethodPost, "", createBody("100.00", "50.00"))

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp.Error, "unbalanced")
	suite.Require().Len(resp.Issues, 1)
	suite.Equal(accounting.CodeUnbalanced, resp.Issues[0].Code)
	suite.Contains(resp.Issues[0].Message, "unbalanced")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_RejectsUnknownLineType() {
	body := createBody("10", "10")
	body["lines"].([]map[string]any)[0]["type"] = "dr"

	w := suite.do(http.MethodPost, "", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(w.Body.String(), "Invalid request format")
	suite.mockJournalService.AssertNotCalled(suite.T(), "CreateEntry")
}

func (suite *JournalHandlerTestSuite) TestCreateEntry_PassesEntityHeader() {
	entry := suite.sampleEntry(domain.Draft)
	scope := suite.scope()
	scope.EntityID = "entity-eu"
	suite.mockJournalService.On("CreateEntry", mock.Anything, scope, mock.Anything).Return(entry, nil).Once()

	w := suite.do(http.MethodPost, "", createBody("1", "1"), handlers.EntityHeader, " entity-eu ")

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestUpdateEntry_PostedIsForbidden() {
	entryID := uuid.NewString()
	err := fmt.Errorf("entry %s is posted: %w", entryID, services.ErrPostedEntryImmutable)
	suite.mockJournalService.On("UpdateEntry", mock.Anything, suite.scope(), entryID, mock.Anything).Return(nil, err).Once()

	w := suite.do(http.MethodPatch, "/"+entryID, map[string]any{"description": "changed"})

	suite.Equal(http.StatusForbidden, w.Code)
	suite.Contains(w.Body.String(), "cannot modify posted entry")
}

func (suite *JournalHandlerTestSuite) TestUpdateEntry_VersionConflict() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("UpdateEntry", mock.Anything, suite.scope(), entryID,
		mock.MatchedBy(func(req dto.UpdateJournalEntryRequest) bool {
			return req.Version != nil && *req.Version == 3
		}),
	).Return(nil, services.ErrVersionConflict).Once()

	w := suite.do(http.MethodPut, "/"+entryID, map[string]any{"description": "changed", "version": 3})

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestPostEntry_Success() {
	entry := suite.sampleEntry(domain.Posted)
	suite.mockJournalService.On("PostEntry", mock.Anything, suite.scope(), entry.EntryID).Return(entry, nil).Once()

	w := suite.do(http.MethodPatch, "/"+entry.EntryID+"/post", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Posted, resp.Status)
}

func (suite *JournalHandlerTestSuite) TestPostEntry_NotDraftConflicts() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("PostEntry", mock.Anything, suite.scope(), entryID).
		Return(nil, fmt.Errorf("entry %s is posted: %w", entryID, services.ErrEntryNotDraft)).Once()

	w := suite.do(http.MethodPatch, "/"+entryID+"/post", nil)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_DraftSourceRejected() {
	entryID := uuid.NewString()
	err := fmt.Errorf("cannot reverse entry %s in status draft, only posted entries can be reversed: %w", entryID, services.ErrSourceNotPosted)
	suite.mockJournalService.On("ReverseEntry", mock.Anything, suite.scope(), entryID, mock.Anything).Return(nil, err).Once()

	w := suite.do(http.MethodPost, "/"+entryID+"/reverse", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	body := strings.ToLower(w.Body.String())
	suite.Contains(body, "posted")
	suite.Contains(body, "reverse")
}

func (suite *JournalHandlerTestSuite) TestReverseEntry_WithOverrides() {
	source := suite.sampleEntry(domain.Reversed)
	reversal := suite.sampleEntry(domain.Posted)
	reversal.IsReversal = true
	reversal.ReversedEntryID = &source.EntryID
	suite.mockJournalService.On("ReverseEntry", mock.Anything, suite.scope(), source.EntryID,
		mock.MatchedBy(func(req dto.ReverseJournalEntryRequest) bool {
			return req.Description != nil && *req.Description == "Undo duplicate"
		}),
	).Return(reversal, nil).Once()

	w := suite.do(http.MethodPost, "/"+source.EntryID+"/reverse", map[string]any{"description": "Undo duplicate"})

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsReversal)
	suite.mockJournalService.AssertExpectations(suite.T())
}

func (suite *JournalHandlerTestSuite) TestCopyEntry_Success() {
	source := suite.sampleEntry(domain.Posted)
	copied := suite.sampleEntry(domain.Draft)
	suite.mockJournalService.On("CopyEntry", mock.Anything, suite.scope(), source.EntryID).Return(copied, nil).Once()

	w := suite.do(http.MethodPost, "/"+source.EntryID+"/copy", nil)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.JournalEntryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(copied.EntryID, resp.ID)
	suite.Equal(domain.Draft, resp.Status)
}

func (suite *JournalHandlerTestSuite) TestDeleteEntry() {
	entryID := uuid.NewString()
	suite.mockJournalService.On("DeleteEntry", mock.Anything, suite.scope(), entryID).Return(nil).Once()

	w := suite.do(http.MethodDelete, "/"+entryID, nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *JournalHandlerTestSuite) TestGetEntry_ScopeMismatch() {
	entryID := uuid.NewString()
	scope := suite.scope()
	scope.EntityID = "entity-us"
	suite.mockJournalService.On("GetEntry", mock.Anything, scope, entryID).Return(nil, services.ErrScopeMismatch).Once()

	w := suite.do(http.MethodGet, "/"+entryID, nil, handlers.EntityHeader, "entity-us")

	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *JournalHandlerTestSuite) TestListEntries_PassesPaging() {
	next := "token-2"
	entries := []domain.JournalEntry{*suite.sampleEntry(domain.Posted)}
	suite.mockJournalService.On("ListEntries", mock.Anything, suite.scope(),
		mock.MatchedBy(func(p dto.ListJournalEntriesParams) bool {
			return p.Limit == 5 && p.Status == "posted" && p.NextToken != nil && *p.NextToken == "token-1"
		}),
	).Return(entries, &next, nil).Once()

	w := suite.do(http.MethodGet, "?limit=5&status=posted&nextToken=token-1", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListJournalEntriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

func (suite *JournalHandlerTestSuite) TestListEntries_InvalidStatus() {
	w := suite.do(http.MethodGet, "?status=archived", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries")
}

func (suite *JournalHandlerTestSuite) TestValidateLines_ReportsIssues() {
	res := &accounting.Result{
		DebitTotal:  decimal.RequireFromString("10"),
		CreditTotal: decimal.RequireFromString("10"),
		Issues: []accounting.Issue{{
			Code:           accounting.CodeDimensionValueNotFound,
			Severity:       accounting.SeverityRemediable,
			Line:           1,
			Row:            7,
			DimensionID:    "dim-dept",
			AttemptedValue: "MARKETING",
			Message:        "row 7: value MARKETING not found for dimension DEPT",
		}},
	}
	suite.mockJournalService.On("ValidateLines", mock.Anything, suite.scope(), mock.Anything).Return(res, nil).Once()

	w := suite.do(http.MethodPost, "/validate", map[string]any{
		"rows": []map[string]any{{"row": 7, "accountCode": "1000", "debit": "10", "dimensions": map[string]string{"DEPT": "MARKETING"}}},
	})

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var report dto.ValidationReport
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &report))
	suite.False(report.Valid)
	suite.Require().Len(report.Issues, 1)
	suite.True(report.Issues[0].Remediable)
	suite.Equal(7, report.Issues[0].Row)
}

func (suite *JournalHandlerTestSuite) TestExportEntry() {
	entryID := uuid.NewString()
	suite.mockReporting.On("ExportEntry", mock.Anything, suite.scope(), entryID, mock.Anything).Return(nil).Once()

	w := suite.do(http.MethodGet, "/"+entryID+"/export.xlsx", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Header().Get("Content-Disposition"), entryID)
	suite.Equal("PK-xlsx", w.Body.String())
}

func (suite *JournalHandlerTestSuite) TestMissingToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/clients/"+suite.clientID+"/journal-entries", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockJournalService.AssertNotCalled(suite.T(), "ListEntries")
}

// --- Run Test Suite ---
func TestJournalHandler(t *testing.T) {
	suite.Run(t, new(JournalHandlerTestSuite))
}
