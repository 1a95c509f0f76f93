package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// clientHandler handles HTTP requests related to clients and their entities.
type clientHandler struct {
	clientService portssvc.ClientSvcFacade
}

func newClientHandler(cs portssvc.ClientSvcFacade) *clientHandler {
	return &clientHandler{clientService: cs}
}

// registerClientRoutes registers the client routes and nests every client-owned
// resource under /clients/:client_id.
func registerClientRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newClientHandler(services.Client)

	clients := rg.Group("/clients")
	{
		clients.POST("", h.createClient)
		clients.GET("", h.listUserClients)

		clientSpecific := clients.Group("/:client_id")
		{
			clientSpecific.GET("", h.getClient)
			clientSpecific.POST("/members", h.addMember)
			clientSpecific.POST("/entities", h.createEntity)
			clientSpecific.GET("/entities", h.listEntities)

			RegisterAccountRoutes(clientSpecific, services.Account)
			registerDimensionRoutes(clientSpecific, services.Dimension)
			RegisterJournalRoutes(clientSpecific, services.Journal, services.Reporting)
			registerReportingRoutes(clientSpecific, services.Reporting)
		}
	}
}

// createClient godoc
// @Summary Create a new client
// @Description Creates a client (tenant) and makes the caller its admin.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client body dto.CreateClientRequest true "Client details"
// @Success 201 {object} dto.ClientResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create client"
// @Security BearerAuth
// @Router /clients [post]
func (h *clientHandler) createClient(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateClient")
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create client")
		return
	}

	logger.Info("Client created successfully", slog.String("client_id", client.ClientID))
	c.JSON(http.StatusCreated, dto.ToClientResponse(client))
}

// listUserClients godoc
// @Summary List clients for the current user
// @Tags clients
// @Produce  json
// @Success 200 {object} dto.ListClientsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /clients [get]
func (h *clientHandler) listUserClients(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	clients, err := h.clientService.ListUserClients(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list clients")
		return
	}
	c.JSON(http.StatusOK, dto.ToListClientsResponse(clients))
}

// getClient godoc
// @Summary Get a client
// @Tags clients
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Success 200 {object} dto.ClientResponse
// @Failure 403 {object} dto.ErrorResponse "Not a member of the client"
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Security BearerAuth
// @Router /clients/{client_id} [get]
func (h *clientHandler) getClient(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(c.Request.Context(), c.Param("client_id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, dto.ToClientResponse(client))
}

// addMember godoc
// @Summary Add a user to a client
// @Description Adds or updates a membership. Only client admins may do this.
// @Tags clients
// @Accept  json
// @Param   client_id path string true "Client ID"
// @Param   member body dto.AddMemberRequest true "Member details"
// @Success 204 "No Content"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 403 {object} dto.ErrorResponse "Caller is not an admin"
// @Failure 404 {object} dto.ErrorResponse "User or client not found"
// @Security BearerAuth
// @Router /clients/{client_id}/members [post]
func (h *clientHandler) addMember(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "AddMember")
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	clientID := c.Param("client_id")

	if err := h.clientService.AddMember(c.Request.Context(), clientID, req, userID); err != nil {
		respondWithError(c, err, "Failed to add member")
		return
	}

	logger.Info("Member added to client",
		slog.String("client_id", clientID),
		slog.String("member_id", req.UserID),
		slog.String("role", string(req.Role)))
	c.Status(http.StatusNoContent)
}

// createEntity godoc
// @Summary Create an entity
// @Description Creates a legal entity inside the client. Entities narrow the journal scope.
// @Tags clients
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entity body dto.CreateEntityRequest true "Entity details"
// @Success 201 {object} dto.EntityResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Entity code already used"
// @Security BearerAuth
// @Router /clients/{client_id}/entities [post]
func (h *clientHandler) createEntity(c *gin.Context) {
	var req dto.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateEntity")
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	entity, err := h.clientService.CreateEntity(c.Request.Context(), c.Param("client_id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create entity")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEntityResponse(entity))
}

// listEntities godoc
// @Summary List entities of a client
// @Tags clients
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Success 200 {object} dto.ListEntitiesResponse
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /clients/{client_id}/entities [get]
func (h *clientHandler) listEntities(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	entities, err := h.clientService.ListEntities(c.Request.Context(), c.Param("client_id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list entities")
		return
	}
	c.JSON(http.StatusOK, dto.ToListEntitiesResponse(entities))
}
