package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	now              func() time.Time
}

// RegisterReportingRoutes registers the read-only report routes.
func RegisterReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := &reportingHandler{reportingService: reportingService, now: time.Now}

	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/liquidity", h.liquidity)
		reports.GET("/portfolio", h.portfolio)
		reports.GET("/income", h.income)
		reports.GET("/quota", h.quota)
		reports.GET("/ranking", h.ranking)
		reports.GET("/past-due", h.pastDue)
		reports.GET("/collection-sheet", h.collectionSheet)
		reports.GET("/profit-and-loss", h.profitAndLoss)
		reports.GET("/export.xlsx", h.exportWorkbook)
	}
}

// optionalDate parses s, returning the zero time when it is empty.
func optionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	// binding has already checked the layout
	t, _ := dates.ParseDate(s)
	return t
}

// dashboard godoc
// @Summary Dashboard statistics
// @Tags reports
// @Produce  json
// @Param   month query string false "Month (YYYY-MM), defaults to the current month"
// @Param   area query string false "Area"
// @Param   user query string false "Collector name (admins only; collectors are scoped to themselves)"
// @Success 200 {object} domain.DashboardStats
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	var params dto.DashboardParams
	if !bindQuery(c, &params) {
		return
	}
	// Collectors only see their own ledger activity.
	if role, _ := middleware.GetRoleFromContext(c); role != domain.RoleAdmin {
		params.User = actorOf(c)
	}
	stats, err := h.reportingService.Dashboard(c.Request.Context(), params.Month, params.Area, params.User)
	if err != nil {
		respondError(c, err, "Failed to compute dashboard")
		return
	}
	c.JSON(http.StatusOK, stats)
}

// liquidity godoc
// @Summary Cash on hand
// @Description Signed sum of every ledger entry
// @Tags reports
// @Produce  json
// @Success 200 {object} map[string]string
// @Router /reports/liquidity [get]
func (h *reportingHandler) liquidity(c *gin.Context) {
	liquidity, err := h.reportingService.SystemLiquidity(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute liquidity")
		return
	}
	c.JSON(http.StatusOK, gin.H{"liquidity": liquidity})
}

// portfolio godoc
// @Summary Portfolio totals
// @Tags reports
// @Produce  json
// @Param   area query string false "Area"
// @Param   status query string false "Active or Paid"
// @Success 200 {object} domain.PortfolioTotals
// @Router /reports/portfolio [get]
func (h *reportingHandler) portfolio(c *gin.Context) {
	var filter domain.LoanFilter
	if !bindQuery(c, &filter) {
		return
	}
	totals, err := h.reportingService.PortfolioTotals(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to compute portfolio totals")
		return
	}
	c.JSON(http.StatusOK, totals)
}

// income godoc
// @Summary Monthly income
// @Description Sum of collections dated in the month
// @Tags reports
// @Produce  json
// @Param   month query string true "Month (YYYY-MM)"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string "Invalid month"
// @Router /reports/income [get]
func (h *reportingHandler) income(c *gin.Context) {
	var params dto.MonthParams
	if !bindQuery(c, &params) {
		return
	}
	income, err := h.reportingService.MonthlyIncome(c.Request.Context(), params.Month)
	if err != nil {
		respondError(c, err, "Failed to compute income")
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": params.Month, "income": income})
}

// quota godoc
// @Summary Daily quota progress per collector
// @Tags reports
// @Produce  json
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} domain.QuotaProgress
// @Router /reports/quota [get]
func (h *reportingHandler) quota(c *gin.Context) {
	var params dto.DateParams
	if !bindQuery(c, &params) {
		return
	}
	progress, err := h.reportingService.DailyQuota(c.Request.Context(), optionalDate(params.Date))
	if err != nil {
		respondError(c, err, "Failed to compute quota progress")
		return
	}
	c.JSON(http.StatusOK, progress)
}

// ranking godoc
// @Summary Collector ranking for a bi-monthly period
// @Tags reports
// @Produce  json
// @Param   year query int false "Year, defaults to the current year"
// @Param   period query int false "Period 1-6, defaults to the current period"
// @Success 200 {object} domain.Ranking
// @Router /reports/ranking [get]
func (h *reportingHandler) ranking(c *gin.Context) {
	var params dto.RankingParams
	if !bindQuery(c, &params) {
		return
	}
	ranking, err := h.reportingService.Ranking(c.Request.Context(), params.Year, params.Period)
	if err != nil {
		respondError(c, err, "Failed to compute ranking")
		return
	}
	c.JSON(http.StatusOK, ranking)
}

// pastDue godoc
// @Summary Past-due loans
// @Tags reports
// @Produce  json
// @Param   area query string false "Area"
// @Success 200 {array} domain.PastDueLoan
// @Router /reports/past-due [get]
func (h *reportingHandler) pastDue(c *gin.Context) {
	var params dto.AreaParams
	if !bindQuery(c, &params) {
		return
	}
	loans, err := h.reportingService.PastDue(c.Request.Context(), params.Area)
	if err != nil {
		respondError(c, err, "Failed to list past-due loans")
		return
	}
	c.JSON(http.StatusOK, loans)
}

// collectionSheet godoc
// @Summary Daily collection sheet for a route
// @Tags reports
// @Produce  json
// @Param   area query string true "Area"
// @Param   date query string false "Date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.CollectionSheet
// @Failure 400 {object} map[string]string "Missing area"
// @Router /reports/collection-sheet [get]
func (h *reportingHandler) collectionSheet(c *gin.Context) {
	var params dto.CollectionSheetParams
	if !bindQuery(c, &params) {
		return
	}
	sheet, err := h.reportingService.CollectionSheet(c.Request.Context(), params.Area, optionalDate(params.Date))
	if err != nil {
		respondError(c, err, "Failed to build collection sheet")
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// profitAndLoss godoc
// @Summary Profit and loss statement
// @Tags reports
// @Produce  json
// @Success 200 {object} domain.ProfitAndLoss
// @Router /reports/profit-and-loss [get]
func (h *reportingHandler) profitAndLoss(c *gin.Context) {
	statement, err := h.reportingService.ProfitAndLoss(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to compute profit and loss")
		return
	}
	c.JSON(http.StatusOK, statement)
}

// exportWorkbook godoc
// @Summary Export the ledger and loan book
// @Tags reports
// @Produce  application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file
// @Router /reports/export.xlsx [get]
func (h *reportingHandler) exportWorkbook(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.reportingService.ExportWorkbook(c.Request.Context(), &buf); err != nil {
		respondError(c, err, "Failed to export workbook")
		return
	}
	filename := fmt.Sprintf("ledger-%s.xlsx", h.now().Format(dates.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
