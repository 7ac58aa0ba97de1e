package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// loanHandler handles HTTP requests related to loans.
type loanHandler struct {
	loanService      portssvc.LoanSvcFacade
	reportingService portssvc.ReportingSvcFacade
	now              func() time.Time
}

// RegisterLoanRoutes registers routes related to loans.
func RegisterLoanRoutes(rg *gin.RouterGroup, loanService portssvc.LoanSvcFacade, reportingService portssvc.ReportingSvcFacade) {
	h := &loanHandler{loanService: loanService, reportingService: reportingService, now: time.Now}

	loans := rg.Group("/loans")
	{
		loans.POST("", h.originateLoan)
		loans.GET("", h.listLoans)
		loans.GET("/:id", h.getLoan)
		loans.GET("/:id/standing", h.getLoanStanding)
		loans.POST("/:id/payments", h.applyPayment)
		loans.POST("/:id/refinance", h.refinanceLoan)
		loans.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.deleteLoan)
	}
}

// originateLoan godoc
// @Summary Originate a new loan
// @Description Computes the loan terms, disburses the principal and books any fees
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   loan body dto.OriginateLoanRequest true "Loan details"
// @Success 201 {object} dto.LoanResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 500 {object} map[string]string "Failed to originate loan"
// @Router /loans [post]
func (h *loanHandler) originateLoan(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.OriginateLoanRequest
	if !bindJSON(c, &req) {
		return
	}

	logger.Info("Received request to originate loan", slog.String("borrower", req.Name), slog.Int("term", req.Term))
	loan, err := h.loanService.OriginateLoan(c.Request.Context(), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to originate loan")
		return
	}

	logger.Info("Loan originated successfully", slog.String("loan_id", loan.LoanID))
	c.JSON(http.StatusCreated, dto.ToLoanResponse(*loan, h.now()))
}

// listLoans godoc
// @Summary List loans
// @Description Lists loans, optionally filtered by area, status and borrower name
// @Tags loans
// @Produce  json
// @Param   area query string false "Area"
// @Param   status query string false "Active or Paid"
// @Param   name query string false "Borrower name fragment"
// @Success 200 {array} dto.LoanResponse
// @Failure 500 {object} map[string]string "Failed to list loans"
// @Router /loans [get]
func (h *loanHandler) listLoans(c *gin.Context) {
	var filter domain.LoanFilter
	if !bindQuery(c, &filter) {
		return
	}
	loans, err := h.loanService.ListLoans(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "Failed to list loans")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponses(loans, h.now()))
}

// getLoan godoc
// @Summary Get a loan by ID
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {object} dto.LoanResponse
// @Failure 404 {object} map[string]string "Loan not found"
// @Router /loans/{id} [get]
func (h *loanHandler) getLoan(c *gin.Context) {
	loan, err := h.loanService.GetLoanByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve loan")
		return
	}
	c.JSON(http.StatusOK, dto.ToLoanResponse(*loan, h.now()))
}

// getLoanStanding godoc
// @Summary Get a loan's standing
// @Description Returns the due date, lateness, payment count and credit score of a loan
// @Tags loans
// @Produce  json
// @Param   id path string true "Loan ID"
// @Success 200 {object} domain.LoanStanding
// @Failure 404 {object} map[string]string "Loan not found"
// @Router /loans/{id}/standing [get]
func (h *loanHandler) getLoanStanding(c *gin.Context) {
	standing, err := h.reportingService.LoanStanding(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to compute loan standing")
		return
	}
	c.JSON(http.StatusOK, standing)
}

// applyPayment godoc
// @Summary Apply a payment to a loan
// @Description Reduces the balance (clamped at zero) and records the full amount as a collection
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   id path string true "Loan ID"
// @Param   payment body dto.ApplyPaymentRequest true "Payment"
// @Success 200 {object} domain.PaymentResult
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 404 {object} map[string]string "Loan not found"
// @Router /loans/{id}/payments [post]
func (h *loanHandler) applyPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	loanID := c.Param("id")
	var req dto.ApplyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.loanService.ApplyPayment(c.Request.Context(), loanID, req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to apply payment")
		return
	}

	logger.Info("Payment applied",
		slog.String("loan_id", loanID),
		slog.String("recorded", result.Recorded.String()),
		slog.String("balance", result.Loan.Balance.String()))
	c.JSON(http.StatusOK, result)
}

// refinanceLoan godoc
// @Summary Refinance a loan
// @Description Closes the loan and opens a successor, netting the old balance against the new principal
// @Tags loans
// @Accept  json
// @Produce  json
// @Param   id path string true "Loan ID"
// @Param   terms body dto.RefinanceLoanRequest true "New loan terms"
// @Success 201 {object} domain.RefinanceResult
// @Failure 400 {object} map[string]string "Invalid terms"
// @Failure 404 {object} map[string]string "Loan not found"
// @Router /loans/{id}/refinance [post]
func (h *loanHandler) refinanceLoan(c *gin.Context) {
	var req dto.RefinanceLoanRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.loanService.RefinanceLoan(c.Request.Context(), c.Param("id"), req, actorOf(c))
	if err != nil {
		respondError(c, err, "Failed to refinance loan")
		return
	}
	c.JSON(http.StatusCreated, result)
}

// deleteLoan godoc
// @Summary Delete a loan
// @Description Removes a loan. Its ledger entries are kept.
// @Tags loans
// @Param   id path string true "Loan ID"
// @Success 204 "No Content"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Loan not found"
// @Router /loans/{id} [delete]
func (h *loanHandler) deleteLoan(c *gin.Context) {
	if err := h.loanService.DeleteLoan(c.Request.Context(), c.Param("id"), actorOf(c)); err != nil {
		respondError(c, err, "Failed to delete loan")
		return
	}
	c.Status(http.StatusNoContent)
}
