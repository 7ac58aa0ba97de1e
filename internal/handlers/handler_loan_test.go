package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/handlers"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LoanService ---
type MockLoanService struct {
	mock.Mock
}

func (m *MockLoanService) GetLoanByID(ctx context.Context, loanID string) (*domain.Loan, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ListLoans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Loan), args.Error(1)
}
func (m *MockLoanService) OriginateLoan(ctx context.Context, req dto.OriginateLoanRequest, actor string) (*domain.Loan, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Loan), args.Error(1)
}
func (m *MockLoanService) ApplyPayment(ctx context.Context, loanID string, req dto.ApplyPaymentRequest, actor string) (*domain.PaymentResult, error) {
	args := m.Called(ctx, loanID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentResult), args.Error(1)
}
func (m *MockLoanService) RefinanceLoan(ctx context.Context, loanID string, req dto.RefinanceLoanRequest, actor string) (*domain.RefinanceResult, error) {
	args := m.Called(ctx, loanID, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefinanceResult), args.Error(1)
}
func (m *MockLoanService) DeleteLoan(ctx context.Context, loanID string, actor string) error {
	args := m.Called(ctx, loanID, actor)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.LoanSvcFacade = (*MockLoanService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) PortfolioTotals(ctx context.Context, filter domain.LoanFilter) (*domain.PortfolioTotals, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PortfolioTotals), args.Error(1)
}
func (m *MockReportingService) SystemLiquidity(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReportingService) MonthlyIncome(ctx context.Context, month string) (decimal.Decimal, error) {
	args := m.Called(ctx, month)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockReportingService) DailyQuota(ctx context.Context, date time.Time) ([]domain.QuotaProgress, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuotaProgress), args.Error(1)
}
func (m *MockReportingService) Ranking(ctx context.Context, year int, period int) (*domain.Ranking, error) {
	args := m.Called(ctx, year, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ranking), args.Error(1)
}
func (m *MockReportingService) Dashboard(ctx context.Context, month string, area string, user string) (*domain.DashboardStats, error) {
	args := m.Called(ctx, month, area, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}
func (m *MockReportingService) PastDue(ctx context.Context, area string) ([]domain.PastDueLoan, error) {
	args := m.Called(ctx, area)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PastDueLoan), args.Error(1)
}
func (m *MockReportingService) CollectionSheet(ctx context.Context, area string, date time.Time) (*domain.CollectionSheet, error) {
	args := m.Called(ctx, area, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CollectionSheet), args.Error(1)
}
func (m *MockReportingService) LoanStanding(ctx context.Context, loanID string) (*domain.LoanStanding, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanStanding), args.Error(1)
}
func (m *MockReportingService) ProfitAndLoss(ctx context.Context) (*domain.ProfitAndLoss, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProfitAndLoss), args.Error(1)
}
func (m *MockReportingService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// newJSONRequest builds a request tagged with an actor and role.
func newJSONRequest(method, url, body, actor string, role domain.CollectorRole) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if actor != "" {
		req.Header.Set(middleware.ActorHeader, actor)
	}
	if role != "" {
		req.Header.Set(middleware.RoleHeader, string(role))
	}
	return req
}

// --- Test Suite ---
type LoanHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockLoanService      *MockLoanService
	mockReportingService *MockReportingService
}

func (suite *LoanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
	suite.router = gin.New()

	suite.mockLoanService = new(MockLoanService)
	suite.mockReportingService = new(MockReportingService)

	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterLoanRoutes(v1, suite.mockLoanService, suite.mockReportingService)
}

func (suite *LoanHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *LoanHandlerTestSuite) TestOriginateLoan_Success() {
	loan := &domain.Loan{
		LoanID:    "loan-1",
		Name:      "Maria Santos",
		Area:      "North",
		Principal: decimal.NewFromInt(5000),
		Term:      60,
		Total:     decimal.NewFromInt(6000),
		Daily:     decimal.NewFromInt(100),
		Balance:   decimal.NewFromInt(6000),
		Status:    domain.LoanActive,
		Date:      time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.mockLoanService.On("OriginateLoan",
		mock.Anything,
		mock.MatchedBy(func(r dto.OriginateLoanRequest) bool {
			return r.Name == "Maria Santos" && r.Principal.Equal(decimal.NewFromInt(5000)) && r.Term == 60
		}),
		"Juan",
	).Return(loan, nil).Once()

	body := `{"name":"Maria Santos","area":"North","principal":5000,"term":60}`
	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/loans", body, "Juan", domain.RoleCollector))

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("loan-1", resp.LoanID)
	suite.True(resp.DueDate.Equal(time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestOriginateLoan_RejectsNonPositivePrincipal() {
	body := `{"name":"Maria Santos","area":"North","principal":0,"term":60}`
	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/loans", body, "Juan", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "OriginateLoan")
}

func (suite *LoanHandlerTestSuite) TestMissingActorIsRejected() {
	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/loans", "", "", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "ListLoans")
}

func (suite *LoanHandlerTestSuite) TestListLoans_PassesFilter() {
	suite.mockLoanService.On("ListLoans", mock.Anything, domain.LoanFilter{Area: "North", Status: domain.LoanActive}).
		Return([]domain.Loan{{LoanID: "loan-1", Status: domain.LoanActive}}, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/loans?area=North&status=Active", "", "Juan", ""))

	suite.Equal(http.StatusOK, w.Code)
	var resp []dto.LoanResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp, 1)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestApplyPayment_NotFound() {
	suite.mockLoanService.On("ApplyPayment", mock.Anything, "missing", mock.Anything, "Juan").
		Return(nil, apperrors.NotFoundf("loan %s", "missing")).Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/loans/missing/payments", `{"amount":100}`, "Juan", ""))

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestApplyPayment_Success() {
	result := &domain.PaymentResult{
		Loan:     domain.Loan{LoanID: "loan-1", Balance: decimal.NewFromInt(5900), Status: domain.LoanActive},
		Applied:  decimal.NewFromInt(100),
		Recorded: decimal.NewFromInt(100),
	}
	suite.mockLoanService.On("ApplyPayment", mock.Anything, "loan-1",
		mock.MatchedBy(func(r dto.ApplyPaymentRequest) bool { return r.Amount.Equal(decimal.NewFromInt(100)) }),
		"Juan",
	).Return(result, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/loans/loan-1/payments", `{"amount":"100"}`, "Juan", ""))

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.PaymentResult
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Loan.Balance.Equal(decimal.NewFromInt(5900)))
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestRefinanceLoan_ValidationError() {
	suite.mockLoanService.On("RefinanceLoan", mock.Anything, "loan-1", mock.Anything, "Juan").
		Return(nil, apperrors.Validationf("term must be positive")).Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/loans/loan-1/refinance", `{"principal":8000,"term":30}`, "Juan", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *LoanHandlerTestSuite) TestDeleteLoan_RequiresAdmin() {
	w := suite.serve(newJSONRequest(http.MethodDelete, "/api/v1/loans/loan-1", "", "Juan", domain.RoleCollector))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockLoanService.AssertNotCalled(suite.T(), "DeleteLoan")
}

func (suite *LoanHandlerTestSuite) TestDeleteLoan_Admin() {
	suite.mockLoanService.On("DeleteLoan", mock.Anything, "loan-1", "Admin").Return(nil).Once()

	w := suite.serve(newJSONRequest(http.MethodDelete, "/api/v1/loans/loan-1", "", "Admin", domain.RoleAdmin))

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockLoanService.AssertExpectations(suite.T())
}

func (suite *LoanHandlerTestSuite) TestGetLoanStanding() {
	standing := &domain.LoanStanding{
		Loan:         domain.Loan{LoanID: "loan-1"},
		PaymentCount: 3,
	}
	suite.mockReportingService.On("LoanStanding", mock.Anything, "loan-1").Return(standing, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/loans/loan-1/standing", "", "Juan", ""))

	suite.Equal(http.StatusOK, w.Code)
	var resp domain.LoanStanding
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.PaymentCount)
}

// --- Run Test Suite ---
func TestLoanHandler(t *testing.T) {
	suite.Run(t, new(LoanHandlerTestSuite))
}
