package handlers

import (
	"net/http"
	"strconv"

	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService    *services.ReportService
	analyticsService *services.AnalyticsService
}

func NewReportHandler(reportService *services.ReportService, analyticsService *services.AnalyticsService) *ReportHandler {
	return &ReportHandler{
		reportService:    reportService,
		analyticsService: analyticsService,
	}
}

// Outstanding builds the classwise outstanding report. With month and
// year it covers one period including not-yet-billed students; without
// them it covers the whole ledger.
func (h *ReportHandler) Outstanding(c *gin.Context) {
	var month, year *int
	if raw := c.Query("month"); raw != "" {
		m, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month"})
			return
		}
		month = &m
	}
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year"})
			return
		}
		year = &y
	}

	report, err := h.reportService.OutstandingForPeriod(c.Request.Context(), month, year,
		c.Query("class_group"), c.Query("class_name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Unpaid lists active students still owing for one period
func (h *ReportHandler) Unpaid(c *gin.Context) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month is required"})
		return
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year is required"})
		return
	}

	report, err := h.reportService.UnpaidStudents(c.Request.Context(), month, year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Overview returns the four fixed financial snapshots
func (h *ReportHandler) Overview(c *gin.Context) {
	overview, err := h.analyticsService.PeriodOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

// Dashboard returns the landing-page headline figures
func (h *ReportHandler) Dashboard(c *gin.Context) {
	overview, err := h.analyticsService.DashboardOverview(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
