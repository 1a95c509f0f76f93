package handlers

import (
	"net/http"
	"strings"

	"github.com/acctflow/acctflow_backend/internal/core/domain"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// EntityHeader narrows a request to one entity of the client.
const EntityHeader = "X-Entity-ID"

// requestScope builds the tenant scope from the client path parameter, the
// optional entity header and the authenticated user. It writes 401 when the
// user is missing.
func requestScope(c *gin.Context) (domain.Scope, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return domain.Scope{}, false
	}
	return domain.Scope{
		ClientID: c.Param("client_id"),
		EntityID: strings.TrimSpace(c.GetHeader(EntityHeader)),
		UserID:   userID,
	}, true
}

// requestUserID returns the authenticated user or writes 401.
func requestUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
