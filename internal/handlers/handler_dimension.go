package handlers

import (
	"net/http"

	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type dimensionHandler struct {
	dimensionService portssvc.DimensionSvcFacade
}

func registerDimensionRoutes(rg *gin.RouterGroup, dimensionService portssvc.DimensionSvcFacade) {
	h := &dimensionHandler{dimensionService: dimensionService}

	dimensions := rg.Group("/dimensions")
	{
		dimensions.POST("", h.createDimension)
		dimensions.GET("", h.listDimensions)
		dimensions.POST("/:dimension_id/values", h.createDimensionValue)
	}
}

// createDimension godoc
// @Summary Create a dimension
// @Tags dimensions
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   dimension body dto.CreateDimensionRequest true "Dimension details"
// @Success 201 {object} dto.DimensionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Dimension code already used"
// @Security BearerAuth
// @Router /clients/{client_id}/dimensions [post]
func (h *dimensionHandler) createDimension(c *gin.Context) {
	var req dto.CreateDimensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateDimension")
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	dim, err := h.dimensionService.CreateDimension(c.Request.Context(), c.Param("client_id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create dimension")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDimensionResponse(dim))
}

// listDimensions godoc
// @Summary List dimensions with their values
// @Tags dimensions
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Success 200 {object} dto.ListDimensionsResponse
// @Security BearerAuth
// @Router /clients/{client_id}/dimensions [get]
func (h *dimensionHandler) listDimensions(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	dims, err := h.dimensionService.ListDimensions(c.Request.Context(), c.Param("client_id"), userID)
	if err != nil {
		respondWithError(c, err, "Failed to list dimensions")
		return
	}
	c.JSON(http.StatusOK, dto.ToListDimensionsResponse(dims))
}

// createDimensionValue godoc
// @Summary Add a value to a dimension
// @Description Remediates a dimension_value_not_found issue by creating the attempted value.
// @Tags dimensions
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   dimension_id path string true "Dimension ID"
// @Param   value body dto.CreateDimensionValueRequest true "Value details"
// @Success 201 {object} dto.DimensionValueResponse
// @Failure 404 {object} dto.ErrorResponse "Dimension not found"
// @Failure 409 {object} dto.ErrorResponse "Value already exists"
// @Security BearerAuth
// @Router /clients/{client_id}/dimensions/{dimension_id}/values [post]
func (h *dimensionHandler) createDimensionValue(c *gin.Context) {
	var req dto.CreateDimensionValueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateDimensionValue")
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	val, err := h.dimensionService.CreateDimensionValue(c.Request.Context(), c.Param("client_id"), c.Param("dimension_id"), req, userID)
	if err != nil {
		respondWithError(c, err, "Failed to create dimension value")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDimensionValueResponse(val))
}
