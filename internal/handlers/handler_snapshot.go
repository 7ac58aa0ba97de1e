package handlers

import (
	"net/http"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type snapshotHandler struct {
	snapshotService portssvc.SnapshotSvcFacade
}

// RegisterSnapshotRoutes registers backup and restore. Both require the admin role.
func RegisterSnapshotRoutes(rg *gin.RouterGroup, snapshotService portssvc.SnapshotSvcFacade) {
	h := &snapshotHandler{snapshotService: snapshotService}

	snapshot := rg.Group("/snapshot", middleware.RequireRole(domain.RoleAdmin))
	{
		snapshot.GET("", h.exportSnapshot)
		snapshot.POST("", h.importSnapshot)
	}
}

// exportSnapshot godoc
// @Summary Export a full backup
// @Tags snapshot
// @Produce  json
// @Success 200 {object} domain.Snapshot
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /snapshot [get]
func (h *snapshotHandler) exportSnapshot(c *gin.Context) {
	snapshot, err := h.snapshotService.Export(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to export snapshot")
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// importSnapshot godoc
// @Summary Restore from a backup
// @Description Replaces all state. Collections missing from the backup become empty.
// @Tags snapshot
// @Accept  json
// @Param   snapshot body domain.Snapshot true "Backup"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Invalid backup"
// @Failure 403 {object} map[string]string "Forbidden"
// @Router /snapshot [post]
func (h *snapshotHandler) importSnapshot(c *gin.Context) {
	var snapshot domain.Snapshot
	if !bindJSON(c, &snapshot) {
		return
	}
	if err := h.snapshotService.Import(c.Request.Context(), snapshot, actorOf(c)); err != nil {
		respondError(c, err, "Failed to import snapshot")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Database restored from backup")
	c.Status(http.StatusNoContent)
}
