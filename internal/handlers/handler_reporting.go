package handlers

import (
	"bytes"
	"net/http"
	"time"

	portssvc "github.com/acctflow/acctflow_backend/internal/core/ports/services"
	"github.com/acctflow/acctflow_backend/internal/dto"
	"github.com/acctflow/acctflow_backend/internal/platform/export"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := &reportingHandler{reportingService: reportingService}

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/trial-balance/export.xlsx", h.exportTrialBalance)
	}
}

// parseAsOf reads the asOf query date. A date covers the whole day in UTC;
// no date means now.
func parseAsOf(c *gin.Context) (time.Time, bool) {
	var params dto.TrialBalanceParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "TrialBalance query")
		return time.Time{}, false
	}
	if params.AsOf == "" {
		return time.Now().UTC(), true
	}
	day, err := time.Parse(time.DateOnly, params.AsOf)
	if err != nil {
		respondBindError(c, err, "TrialBalance asOf")
		return time.Time{}, false
	}
	return day.Add(24*time.Hour - time.Nanosecond), true
}

// getTrialBalance godoc
// @Summary Get the trial balance
// @Description Sums posted and reversed entries per account up to the given date.
// @Tags reports
// @Produce  json
// @Param   client_id path string true "Client ID"
// @Param   asOf query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Security BearerAuth
// @Router /clients/{client_id}/reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	tb, err := h.reportingService.TrialBalance(c.Request.Context(), c.Param("client_id"), userID, asOf)
	if err != nil {
		respondWithError(c, err, "Failed to generate trial balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToTrialBalanceResponse(tb))
}

// exportTrialBalance godoc
// @Summary Export the trial balance as a spreadsheet
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param   client_id path string true "Client ID"
// @Param   asOf query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse "Invalid date"
// @Security BearerAuth
// @Router /clients/{client_id}/reports/trial-balance/export.xlsx [get]
func (h *reportingHandler) exportTrialBalance(c *gin.Context) {
	asOf, ok := parseAsOf(c)
	if !ok {
		return
	}
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.reportingService.ExportTrialBalance(c.Request.Context(), c.Param("client_id"), userID, asOf, &buf); err != nil {
		respondWithError(c, err, "Failed to export trial balance")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="trial-balance-`+asOf.Format(time.DateOnly)+`.xlsx"`)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}
