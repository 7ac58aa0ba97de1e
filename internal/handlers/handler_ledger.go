package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

// RegisterLedgerRoutes registers routes related to the ledger.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	h := &ledgerHandler{ledgerService: ledgerService}

	ledger := rg.Group("/ledger")
	{
		ledger.GET("", h.listEntries)
		ledger.POST("", h.addEntry)
		ledger.POST("/capital", h.addCapital)
	}
}

// listEntries godoc
// @Summary List ledger entries
// @Description Lists entries newest first with token pagination
// @Tags ledger
// @Produce  json
// @Param   type query string false "Transaction type"
// @Param   user query string false "Recorded by"
// @Param   loanId query string false "Loan ID"
// @Param   category query string false "Category"
// @Param   from query string false "From date (YYYY-MM-DD)"
// @Param   to query string false "To date (YYYY-MM-DD)"
// @Param   limit query int false "Page size" default(50)
// @Param   nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListLedgerResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /ledger [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	var params dto.ListLedgerParams
	if !bindQuery(c, &params) {
		return
	}
	resp, err := h.ledgerService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, err, "Failed to list ledger entries")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// addEntry godoc
// @Summary Add a manual ledger entry
// @Description Records an expense or other entry; the sign of the amount follows the type
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.AddLedgerEntryRequest true "Entry"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string "Invalid entry"
// @Router /ledger [post]
func (h *ledgerHandler) addEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.AddLedgerEntryRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.ledgerService.AddEntry(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to add ledger entry")
		return
	}
	logger.Info("Ledger entry recorded", slog.String("transaction_id", entry.TransactionID))
	c.JSON(http.StatusCreated, entry)
}

// addCapital godoc
// @Summary Inject capital
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   capital body dto.AddCapitalRequest true "Capital"
// @Success 201 {object} domain.Transaction
// @Failure 400 {object} map[string]string "Invalid amount"
// @Router /ledger/capital [post]
func (h *ledgerHandler) addCapital(c *gin.Context) {
	var req dto.AddCapitalRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.ledgerService.AddCapital(c.Request.Context(), req.Amount, req.Description, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to add capital")
		return
	}
	c.JSON(http.StatusCreated, entry)
}
