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
	"github.com/acctflow/acctflow_backend/internal/utils/pagination"
	"github.com/google/uuid"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountClientAuthorizer adds client authorizer dependency
func WithAccountClientAuthorizer(authorizer portssvc.ClientAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.ClientAuthorizer = authorizer
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo: repo,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, clientID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleMember); err != nil {
		s.LogWarn(ctx, err, "User not authorized to create account",
			slog.String("user_id", userID),
			slog.String("client_id", clientID))
		return nil, err
	}

	if !req.AccountType.Valid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}

	var parentID *string
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentAccount, err := s.accountRepo.FindAccountByID(ctx, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			s.LogError(ctx, err, "Failed to find parent account",
				slog.String("parent_id", *req.ParentAccountID))
			return nil, err
		}
		if parentAccount.ClientID != clientID {
			s.LogWarn(ctx, apperrors.ErrValidation, "Parent account belongs to different client",
				slog.String("parent_client", parentAccount.ClientID),
				slog.String("requested_client", clientID))
			return nil, fmt.Errorf("%w: parent account belongs to a different client", apperrors.ErrValidation)
		}
		parentID = &parentAccount.AccountID
	}

	account := domain.Account{
		AccountID:       uuid.NewString(),
		ClientID:        clientID,
		Code:            code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		AuditFields:     domain.NewAuditFields(userID, time.Now().UTC()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("account code %s already exists: %w", code, err)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID),
			slog.String("client_id", clientID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("client_id", clientID))
	return &account, nil
}

// GetAccount retrieves an account and checks it belongs to the client
func (s *accountService) GetAccount(ctx context.Context, clientID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.findClientAccount(ctx, clientID, accountID)
}

// ListAccounts retrieves a page of the client's chart of accounts
func (s *accountService) ListAccounts(ctx context.Context, clientID string, userID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	limit := pagination.ClampLimit(params.Limit)
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	accounts, err := s.accountRepo.ListAccountsByClient(ctx, clientID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts",
			slog.String("client_id", clientID))
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

// DeactivateAccount marks an account inactive; posting lines against it will then fail validation
func (s *accountService) DeactivateAccount(ctx context.Context, clientID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleAdmin); err != nil {
		return err
	}
	account, err := s.findClientAccount(ctx, clientID, accountID)
	if err != nil {
		return err
	}
	if !account.IsActive {
		return nil
	}
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account",
			slog.String("account_id", accountID))
		return err
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount removes an account unless child accounts or journal lines reference it
func (s *accountService) DeleteAccount(ctx context.Context, clientID string, accountID string, userID string) error {
	if err := s.AuthorizeUser(ctx, userID, clientID, domain.RoleAdmin); err != nil {
		return err
	}
	if _, err := s.findClientAccount(ctx, clientID, accountID); err != nil {
		return err
	}

	children, err := s.accountRepo.CountChildAccounts(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count child accounts",
			slog.String("account_id", accountID))
		return err
	}
	if children > 0 {
		return fmt.Errorf("%w: account has %d child accounts", apperrors.ErrConflict, children)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		if !errors.Is(err, apperrors.ErrConflict) {
			s.LogError(ctx, err, "Failed to delete account",
				slog.String("account_id", accountID))
		}
		return err
	}
	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

func (s *accountService) findClientAccount(ctx context.Context, clientID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	// another client's account is reported as missing so ids do not leak across tenants
	if account.ClientID != clientID {
		return nil, apperrors.NewNotFoundError("account")
	}
	return account, nil
}
