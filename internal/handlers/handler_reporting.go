package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/eskansoft/eskan_sales_app/internal/core/ports/services"
	"github.com/eskansoft/eskan_sales_app/internal/middleware"
)

// reportingHandler handles the read-only dashboard endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(rs portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/summary", h.getSummary)
		reports.GET("/monthly-sales", h.getMonthlySales)
	}
}

const reportDateLayout = "2006-01-02"

func (h *reportingHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, ok := parseDateQuery(c, "from")
	if !ok {
		return
	}
	to, ok := parseDateQuery(c, "to")
	if !ok {
		return
	}

	summary, err := h.reportingService.GetSummary(c.Request.Context(), from, to)
	if err != nil {
		logger.Error("Failed to build summary report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build summary report"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getMonthlySales(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year := 0
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1900 || parsed > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a four-digit year"})
			return
		}
		year = parsed
	}

	reports, err := h.reportingService.GetMonthlySales(c.Request.Context(), year)
	if err != nil {
		logger.Error("Failed to build monthly sales report", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build monthly sales report"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// parseDateQuery reads an optional YYYY-MM-DD query param. On a malformed
// value it writes the 400 response itself and returns ok=false.
func parseDateQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse(reportDateLayout, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be formatted as YYYY-MM-DD"})
		return nil, false
	}
	return &parsed, true
}
