package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// collectorHandler handles collectors, their attendance and payroll.
type collectorHandler struct {
	collectorService  portssvc.CollectorSvcFacade
	attendanceService portssvc.AttendanceSvcFacade
	payrollService    portssvc.PayrollSvcFacade
}

// RegisterCollectorRoutes registers routes for collectors, attendance and payroll.
func RegisterCollectorRoutes(rg *gin.RouterGroup, collectorService portssvc.CollectorSvcFacade, attendanceService portssvc.AttendanceSvcFacade, payrollService portssvc.PayrollSvcFacade) {
	h := &collectorHandler{
		collectorService:  collectorService,
		attendanceService: attendanceService,
		payrollService:    payrollService,
	}
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	collectors := rg.Group("/collectors")
	{
		collectors.GET("", h.listCollectors)
		collectors.GET("/:id", h.getCollector)
		collectors.PUT("", adminOnly, h.saveCollector)
		collectors.DELETE("/:id", adminOnly, h.deleteCollector)
	}

	attendance := rg.Group("/attendance")
	{
		attendance.GET("", h.listAttendance)
		attendance.PUT("", h.markAttendance)
	}

	payroll := rg.Group("/payroll")
	{
		payroll.GET("", h.listPayrollRecords)
		payroll.GET("/preview", h.previewPayroll)
		payroll.POST("/process", adminOnly, h.processPayroll)
	}
}

// listCollectors godoc
// @Summary List collectors
// @Tags collectors
// @Produce  json
// @Success 200 {array} domain.Collector
// @Router /collectors [get]
func (h *collectorHandler) listCollectors(c *gin.Context) {
	collectors, err := h.collectorService.ListCollectors(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list collectors")
		return
	}
	c.JSON(http.StatusOK, collectors)
}

// getCollector godoc
// @Summary Get a collector by ID
// @Tags collectors
// @Produce  json
// @Param   id path string true "Collector ID"
// @Success 200 {object} domain.Collector
// @Failure 404 {object} map[string]string "Collector not found"
// @Router /collectors/{id} [get]
func (h *collectorHandler) getCollector(c *gin.Context) {
	collector, err := h.collectorService.GetCollectorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve collector")
		return
	}
	c.JSON(http.StatusOK, collector)
}

// saveCollector godoc
// @Summary Create or update a collector
// @Description Creates a collector, or replaces the one whose id is given
// @Tags collectors
// @Accept  json
// @Produce  json
// @Param   collector body dto.SaveCollectorRequest true "Collector"
// @Success 200 {object} domain.Collector
// @Failure 400 {object} map[string]string "Invalid collector"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /collectors [put]
func (h *collectorHandler) saveCollector(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.SaveCollectorRequest
	if !bindJSON(c, &req) {
		return
	}
	collector, err := h.collectorService.SaveCollector(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to save collector")
		return
	}
	logger.Info("Collector saved", slog.String("collector_id", collector.CollectorID))
	c.JSON(http.StatusOK, collector)
}

// deleteCollector godoc
// @Summary Delete a collector
// @Tags collectors
// @Param   id path string true "Collector ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Administrators cannot be removed"
// @Failure 404 {object} map[string]string "Collector not found"
// @Router /collectors/{id} [delete]
func (h *collectorHandler) deleteCollector(c *gin.Context) {
	if err := h.collectorService.DeleteCollector(c.Request.Context(), c.Param("id"), actorOf(c)); err != nil {
		respondError(c, err, "Failed to delete collector")
		return
	}
	c.Status(http.StatusNoContent)
}

// listAttendance godoc
// @Summary List attendance
// @Tags attendance
// @Produce  json
// @Param   month query string false "Month (YYYY-MM)"
// @Param   empId query string false "Employee ID"
// @Success 200 {array} domain.Attendance
// @Router /attendance [get]
func (h *collectorHandler) listAttendance(c *gin.Context) {
	var params dto.ListAttendanceParams
	if !bindQuery(c, &params) {
		return
	}
	records, err := h.attendanceService.ListAttendance(c.Request.Context(), params.Month, params.EmployeeID)
	if err != nil {
		respondError(c, err, "Failed to list attendance")
		return
	}
	c.JSON(http.StatusOK, records)
}

// markAttendance godoc
// @Summary Mark attendance
// @Description Sets the status for an employee and day, replacing any earlier mark
// @Tags attendance
// @Accept  json
// @Produce  json
// @Param   attendance body dto.MarkAttendanceRequest true "Attendance"
// @Success 200 {object} domain.Attendance
// @Failure 400 {object} map[string]string "Invalid attendance"
// @Failure 404 {object} map[string]string "Employee not found"
// @Router /attendance [put]
func (h *collectorHandler) markAttendance(c *gin.Context) {
	var req dto.MarkAttendanceRequest
	if !bindJSON(c, &req) {
		return
	}
	record, err := h.attendanceService.MarkAttendance(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to mark attendance")
		return
	}
	c.JSON(http.StatusOK, record)
}

// listPayrollRecords godoc
// @Summary List processed payroll records
// @Tags payroll
// @Produce  json
// @Param   month query string false "Month (YYYY-MM)"
// @Success 200 {array} domain.PayrollRecord
// @Router /payroll [get]
func (h *collectorHandler) listPayrollRecords(c *gin.Context) {
	var params dto.PayrollMonthParams
	if !bindQuery(c, &params) {
		return
	}
	records, err := h.payrollService.ListPayrollRecords(c.Request.Context(), params.Month)
	if err != nil {
		respondError(c, err, "Failed to list payroll records")
		return
	}
	c.JSON(http.StatusOK, records)
}

// previewPayroll godoc
// @Summary Preview a month's payroll
// @Tags payroll
// @Produce  json
// @Param   month query string true "Month (YYYY-MM)"
// @Success 200 {object} domain.PayrollPreview
// @Failure 400 {object} map[string]string "Invalid month"
// @Router /payroll/preview [get]
func (h *collectorHandler) previewPayroll(c *gin.Context) {
	var params dto.MonthParams
	if !bindQuery(c, &params) {
		return
	}
	preview, err := h.payrollService.PreviewPayroll(c.Request.Context(), params.Month)
	if err != nil {
		respondError(c, err, "Failed to preview payroll")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// processPayroll godoc
// @Summary Process a month's payroll
// @Description Freezes the month's records and books one salary expense per employee
// @Tags payroll
// @Accept  json
// @Produce  json
// @Param   payroll body dto.ProcessPayrollRequest true "Month"
// @Success 201 {array} domain.PayrollRecord
// @Failure 400 {object} map[string]string "Invalid month or nothing to pay"
// @Failure 409 {object} map[string]string "Month already processed"
// @Router /payroll/process [post]
func (h *collectorHandler) processPayroll(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ProcessPayrollRequest
	if !bindJSON(c, &req) {
		return
	}
	records, err := h.payrollService.ProcessPayroll(c.Request.Context(), req.Month, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to process payroll")
		return
	}
	logger.Info("Payroll processed", slog.String("month", req.Month), slog.Int("records", len(records)))
	c.JSON(http.StatusCreated, records)
}
