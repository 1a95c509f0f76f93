package handlers

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"

	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/middleware"
	"github.com/acctflow/acctflow_backend/internal/platform/export"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService   portssvc.JournalSvcFacade
	reportingService portssvc.ReportingService
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(js portssvc.JournalSvcFacade, rs portssvc.ReportingService) *journalHandler {
	return &journalHandler{
		journalService:   js,
		reportingService: rs,
	}
}

// RegisterJournalRoutes registers journal entry routes under a client group
// (one carrying the :client_id parameter).
func RegisterJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade, reportingService portssvc.ReportingService) {
	registerBindingRules()
	h := newJournalHandler(journalService, reportingService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.POST("/validate", h.validateLines)

		entries.GET("/:entry_id", h.getEntry)
		entries.PATCH("/:entry_id", h.updateEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
		entries.GET("/:entry_id/lines", h.listLines)
		entries.PATCH("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/reverse", h.reverseEntry)
		entries.POST("/:entry_id/copy", h.copyEntry)
		entries.GET("/:entry_id/export.xlsx", h.exportEntry)
	}
}

// createEntry godoc
// @Summary Create a draft journal entry
// @Description Validates the lines and stores a new draft entry.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   X-Entity-ID header string false "Entity scope"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry details"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid entry, issues listed"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 500 {object} dto.ErrorResponse "Failed to create journal entry"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "CreateJournalEntry")
		return
	}
	scope, ok := requestScope(c)
	if !ok {
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), scope, req)
	if err != nil {
		respondWithError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entry headers newest first using token-based pagination.
// @Tags journal-entries
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   X-Entity-ID header string false "Entity scope"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Token from the previous page"
// @Param   status query string false "draft, posted or reversed"
// @Param   entityId query string false "Entity filter"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid query"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "ListJournalEntries query")
		return
	}
	scope, ok := requestScope(c)
	if !ok {
		return
	}

	entries, next, err := h.journalService.ListEntries(c.Request.Context(), scope, params)
	if err != nil {
		respondWithError(c, err, "Failed to list journal entries")
		return
	}
	c.JSON(http.StatusOK, dto.ToListJournalEntriesResponse(entries, next))
}

// getEntry godoc
// @Summary Get a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 403 {object} dto.ErrorResponse "Entry outside the active scope"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	scope, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.GetEntry(c.Request.Context(), scope, c.Param("entry_id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listLines godoc
// @Summary List the lines of a journal entry
// @Tags journal-entries
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.ListJournalLinesResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id}/lines [get]
func (h *journalHandler) listLines(c *gin.Context) {
	scope, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	lines, err := h.journalService.ListLines(c.Request.Context(), scope, entryID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve journal lines")
		return
	}
	c.JSON(http.StatusOK, dto.ListJournalLinesResponse{EntryID: entryID, Lines: dto.ToJournalLineResponses(lines)})
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Partially updates a draft. Sending lines replaces the whole line set; sending version enables the concurrency check.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Fields to change"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid entry, issues listed"
// @Failure 403 {object} dto.ErrorResponse "Entry is not a draft"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 409 {object} dto.ErrorResponse "Version conflict"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id} [patch]
func (h *journalHandler) updateEntry(c *gin.Context) {
	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "UpdateJournalEntry")
		return
	}
	scope, ok := requestScope(c)
	if !ok {
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), scope, c.Param("entry_id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to update journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Tags journal-entries
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 403 {object} dto.ErrorResponse "Entry is not a draft"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	scope, ok := requestScope(c)
	if !ok {
		return
	}
	if err := h.journalService.DeleteEntry(c.Request.Context(), scope, c.Param("entry_id")); err != nil {
		respondWithError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Re-validates the stored lines and moves the entry to posted.
// @Tags journal-entries
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Stored lines no longer validate"
// @Failure 409 {object} dto.ErrorResponse "Entry is not a draft"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id}/post [patch]
func (h *journalHandler) postEntry(c *gin.Context) {
	scope, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.PostEntry(c.Request.Context(), scope, c.Param("entry_id"))
	if err != nil {
		respondWithError(c, err, "Failed to post journal entry")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Creates a posted reversal with every line flipped and marks the source reversed.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Param   overrides body dto.ReverseJournalEntryRequest false "Optional date, description and reference"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Source is not posted"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id}/reverse [post]
func (h *journalHandler) reverseEntry(c *gin.Context) {
	var req dto.ReverseJournalEntryRequest
	if c.Request.Body != nil && c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondBindError(c, err, "ReverseJournalEntry")
			return
		}
	}
	scope, ok := requestScope(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.ReverseEntry(c.Request.Context(), scope, c.Param("entry_id"), req)
	if err != nil {
		respondWithError(c, err, "Failed to reverse journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(reversal))
}

// copyEntry godoc
// @Summary Copy a posted journal entry
// @Description Creates a new draft with the same lines as a posted entry.
// @Tags journal-entries
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Source is not posted"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id}/copy [post]
func (h *journalHandler) copyEntry(c *gin.Context) {
	scope, ok := requestScope(c)
	if !ok {
		return
	}
	entry, err := h.journalService.CopyEntry(c.Request.Context(), scope, c.Param("entry_id"))
	if err != nil {
		respondWithError(c, err, "Failed to copy journal entry")
		return
	}
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// validateLines godoc
// @Summary Validate import rows
// @Description Runs the balance validator over a batch of rows without writing anything.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   rows body dto.ValidateLinesRequest true "Rows to check"
// @Success 200 {object} dto.ValidationReport
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/validate [post]
func (h *journalHandler) validateLines(c *gin.Context) {
	var req dto.ValidateLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "ValidateLines")
		return
	}
	scope, ok := requestScope(c)
	if !ok {
		return
	}

	res, err := h.journalService.ValidateLines(c.Request.Context(), scope, req)
	if err != nil {
		respondWithError(c, err, "Failed to validate rows")
		return
	}
	report := dto.ToValidationReport(res)
	middleware.GetLoggerFromCtx(c.Request.Context()).Debug("Rows validated",
		slog.Int("rows", len(req.Rows)),
		slog.Bool("valid", report.Valid))
	c.JSON(http.StatusOK, report)
}

// exportEntry godoc
// @Summary Export a journal entry as a spreadsheet
// @Tags journal-entries
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   client_id path string true "Client ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /clients/{client_id}/journal-entries/{entry_id}/export.xlsx [get]
func (h *journalHandler) exportEntry(c *gin.Context) {
	scope, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")

	var buf bytes.Buffer
	if err := h.reportingService.ExportEntry(c.Request.Context(), scope, entryID, &buf); err != nil {
		respondWithError(c, err, "Failed to export journal entry")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="journal-entry-`+entryID+`.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
