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

// officeHandler serves investors, tasks, assets and the audit trail.
type officeHandler struct {
	investorService portssvc.InvestorSvcFacade
	taskService     portssvc.TaskSvcFacade
	assetService    portssvc.AssetSvcFacade
	auditService    portssvc.AuditSvcFacade
}

// RegisterOfficeRoutes registers back-office routes.
func RegisterOfficeRoutes(rg *gin.RouterGroup, investorService portssvc.InvestorSvcFacade, taskService portssvc.TaskSvcFacade, assetService portssvc.AssetSvcFacade, auditService portssvc.AuditSvcFacade) {
	h := &officeHandler{
		investorService: investorService,
		taskService:     taskService,
		assetService:    assetService,
		auditService:    auditService,
	}
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	investors := rg.Group("/investors")
	{
		investors.GET("", h.listInvestors)
		investors.GET("/:id", h.getInvestor)
		investors.POST("", adminOnly, h.addInvestor)
		investors.POST("/:id/dividends", adminOnly, h.payDividend)
	}

	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.listTasks)
		tasks.POST("", h.createTask)
		tasks.PATCH("/:id/status", h.updateTaskStatus)
	}

	assets := rg.Group("/assets")
	{
		assets.GET("", h.listAssets)
		assets.POST("", h.createAsset)
		assets.PUT("/:id", h.updateAsset)
		assets.DELETE("/:id", h.deleteAsset)
	}

	rg.GET("/audit-logs", adminOnly, h.listAuditLogs)
}

// listInvestors godoc
// @Summary List investors
// @Tags investors
// @Produce  json
// @Success 200 {array} domain.Investor
// @Router /investors [get]
func (h *officeHandler) listInvestors(c *gin.Context) {
	investors, err := h.investorService.ListInvestors(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list investors")
		return
	}
	c.JSON(http.StatusOK, investors)
}

// getInvestor godoc
// @Summary Get an investor by ID
// @Tags investors
// @Produce  json
// @Param   id path string true "Investor ID"
// @Success 200 {object} domain.Investor
// @Failure 404 {object} map[string]string "Investor not found"
// @Router /investors/{id} [get]
func (h *officeHandler) getInvestor(c *gin.Context) {
	investor, err := h.investorService.GetInvestorByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve investor")
		return
	}
	c.JSON(http.StatusOK, investor)
}

// addInvestor godoc
// @Summary Add an investor
// @Description Registers the investor and books their capital into the ledger
// @Tags investors
// @Accept  json
// @Produce  json
// @Param   investor body dto.AddInvestorRequest true "Investor"
// @Success 201 {object} domain.Investor
// @Failure 400 {object} map[string]string "Invalid investor"
// @Router /investors [post]
func (h *officeHandler) addInvestor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddInvestorRequest
	if !bindJSON(c, &req) {
		return
	}
	investor, err := h.investorService.AddInvestor(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to add investor")
		return
	}
	logger.Info("Investor added", slog.String("investor_id", investor.InvestorID))
	c.JSON(http.StatusCreated, investor)
}

// payDividend godoc
// @Summary Pay a dividend
// @Description Pays the given amount, or capital times dividend rate when omitted
// @Tags investors
// @Accept  json
// @Produce  json
// @Param   id path string true "Investor ID"
// @Param   dividend body dto.PayDividendRequest false "Amount"
// @Success 200 {object} domain.Investor
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Investor not found"
// @Router /investors/{id}/dividends [post]
func (h *officeHandler) payDividend(c *gin.Context) {
	var req dto.PayDividendRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}
	investor, err := h.investorService.PayDividend(c.Request.Context(), c.Param("id"), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to pay dividend")
		return
	}
	c.JSON(http.StatusOK, investor)
}

// listTasks godoc
// @Summary List tasks
// @Tags tasks
// @Produce  json
// @Success 200 {array} domain.Task
// @Router /tasks [get]
func (h *officeHandler) listTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list tasks")
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// createTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   task body dto.CreateTaskRequest true "Task"
// @Success 201 {object} domain.Task
// @Failure 400 {object} map[string]string "Invalid task"
// @Router /tasks [post]
func (h *officeHandler) createTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.taskService.CreateTask(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to create task")
		return
	}
	c.JSON(http.StatusCreated, task)
}

// updateTaskStatus godoc
// @Summary Update a task's status
// @Tags tasks
// @Accept  json
// @Produce  json
// @Param   id path string true "Task ID"
// @Param   status body dto.UpdateTaskStatusRequest true "Status"
// @Success 200 {object} domain.Task
// @Failure 404 {object} map[string]string "Task not found"
// @Router /tasks/{id}/status [patch]
func (h *officeHandler) updateTaskStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	task, err := h.taskService.UpdateTaskStatus(c.Request.Context(), c.Param("id"), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to update task")
		return
	}
	c.JSON(http.StatusOK, task)
}

// listAssets godoc
// @Summary List assets
// @Tags assets
// @Produce  json
// @Success 200 {array} domain.Asset
// @Router /assets [get]
func (h *officeHandler) listAssets(c *gin.Context) {
	assets, err := h.assetService.ListAssets(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list assets")
		return
	}
	c.JSON(http.StatusOK, assets)
}

// createAsset godoc
// @Summary Register an asset
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   asset body dto.SaveAssetRequest true "Asset"
// @Success 201 {object} domain.Asset
// @Failure 400 {object} map[string]string "Invalid asset"
// @Router /assets [post]
func (h *officeHandler) createAsset(c *gin.Context) {
	var req dto.SaveAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	asset, err := h.assetService.CreateAsset(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to create asset")
		return
	}
	c.JSON(http.StatusCreated, asset)
}

// updateAsset godoc
// @Summary Update an asset
// @Tags assets
// @Accept  json
// @Produce  json
// @Param   id path string true "Asset ID"
// @Param   asset body dto.SaveAssetRequest true "Asset"
// @Success 200 {object} domain.Asset
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{id} [put]
func (h *officeHandler) updateAsset(c *gin.Context) {
	var req dto.SaveAssetRequest
	if !bindJSON(c, &req) {
		return
	}
	asset, err := h.assetService.UpdateAsset(c.Request.Context(), c.Param("id"), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to update asset")
		return
	}
	c.JSON(http.StatusOK, asset)
}

// deleteAsset godoc
// @Summary Remove an asset
// @Tags assets
// @Param   id path string true "Asset ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Asset not found"
// @Router /assets/{id} [delete]
func (h *officeHandler) deleteAsset(c *gin.Context) {
	if err := h.assetService.DeleteAsset(c.Request.Context(), c.Param("id"), actorOf(c)); err != nil {
		respondError(c, err, "Failed to delete asset")
		return
	}
	c.Status(http.StatusNoContent)
}

// listAuditLogs godoc
// @Summary List audit logs
// @Description Newest first
// @Tags audit
// @Produce  json
// @Param   limit query int false "Maximum entries"
// @Success 200 {array} domain.AuditLog
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /audit-logs [get]
func (h *officeHandler) listAuditLogs(c *gin.Context) {
	var params dto.AuditLogParams
	if !bindQuery(c, &params) {
		return
	}
	logs, err := h.auditService.ListAuditLogs(c.Request.Context(), params.Limit)
	if err != nil {
		respondError(c, err, "Failed to list audit logs")
		return
	}
	c.JSON(http.StatusOK, logs)
}
