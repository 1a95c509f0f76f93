package services

import (
	"context"
	"log/slog"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	ClientAuthorizer portssvc.ClientAuthorizerSvc
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs an expected rejection (business rule, authorization) with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Warn(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks if a user has the required role for a client
func (s *BaseService) AuthorizeUser(ctx context.Context, userID, clientID string, requiredRole domain.ClientRole) error {
	if s.ClientAuthorizer != nil {
		return s.ClientAuthorizer.AuthorizeUserAction(ctx, userID, clientID, requiredRole)
	}
	s.LogDebug(ctx, "No client authorizer provided, access granted by default",
		slog.String("user_id", userID),
		slog.String("client_id", clientID),
		slog.String("required_role", string(requiredRole)))
	return nil
}
