package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "kakeibo/internal/errors"
	"kakeibo/internal/services"
)

// ReportHandler serves the aggregation, forecast, and export endpoints.
type ReportHandler struct {
	reportService   services.ReportServicer
	analysisService services.AnalysisServicer
	exportService   services.ExportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer, analysisService services.AnalysisServicer, exportService services.ExportServicer) *ReportHandler {
	return &ReportHandler{
		reportService:   reportService,
		analysisService: analysisService,
		exportService:   exportService,
	}
}

// GetMonthlySummary returns the monthly dashboard aggregates
// @Summary     Monthly summary
// @Description Aggregate income, expenses, savings, and category breakdown for a month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month (defaults to current)"
// @Success     200 {object} services.MonthlySummary "Monthly summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetMonthlySummary(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.MonthlySummary(familyID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// GetTrend returns the six-month trend chart data
// @Summary     Trend chart
// @Description Six months of income, expense, and savings totals ending at the given month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Anchor year (defaults to current)"
// @Param       month query int false "Anchor month (defaults to current)"
// @Success     200 {object} services.ChartData "Chart data"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/trend [get]
func (h *ReportHandler) GetTrend(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	chart, err := h.reportService.TrendSeries(familyID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"chart": chart})
}

// GetForecast returns the long-term savings projection
// @Summary     Savings forecast
// @Description Project savings growth from trailing twelve-month averages
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       years query int false "Forecast horizon in years (default 5, max 60)"
// @Success     200 {object} services.ForecastResult "Forecast"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/forecast [get]
func (h *ReportHandler) GetForecast(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	years := 5
	if v := c.Query("years"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid years"))
			return
		}
		years = parsed
	}

	forecast, err := h.reportService.Forecast(familyID, years, time.Now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}

// GetSavingsSummary returns the all-time savings position
// @Summary     Savings summary
// @Description All-time cash and insurance-type savings totals
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.SavingsSummary "Savings summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/savings [get]
func (h *ReportHandler) GetSavingsSummary(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.SavingsSummary(familyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"savings": summary})
}

// GetAnalysis returns natural-language commentary on a month
// @Summary     Monthly analysis
// @Description Generated commentary on the family's spending for a month
// @Tags        reports
// @Produce     json
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month (defaults to current)"
// @Success     200 {object} map[string]interface{} "Analysis text"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/analysis [get]
func (h *ReportHandler) GetAnalysis(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	text, err := h.analysisService.AnalyzeMonth(c.Request.Context(), familyID, year, month)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "month": month, "analysis": text})
}

// ExportCSV streams one month of transactions as CSV
// @Summary     Export transactions
// @Description Download one month of transactions as a CSV file
// @Tags        reports
// @Produce     text/csv
// @Security    BearerAuth
// @Param       year query int false "Year (defaults to current)"
// @Param       month query int false "Month (defaults to current)"
// @Success     200 {string} string "CSV file"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/export [get]
func (h *ReportHandler) ExportCSV(c *gin.Context) {
	familyID, err := getFamilyID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	year, month, err := parseYearMonth(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := fmt.Sprintf("transactions-%04d-%02d.csv", year, month)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.exportService.WriteMonthlyCSV(c.Writer, familyID, year, month); err != nil {
		respondWithError(c, err)
		return
	}
}
