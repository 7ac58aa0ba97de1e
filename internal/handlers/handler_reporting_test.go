package handlers_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/handlers"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReportingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockReportingService *MockReportingService
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockReportingService = new(MockReportingService)

	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterReportingRoutes(v1, suite.mockReportingService)
}

func (suite *ReportingHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ReportingHandlerTestSuite) TestQuota_ParsesDate() {
	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	suite.mockReportingService.On("DailyQuota", mock.Anything, day).Return([]domain.QuotaProgress{}, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/quota?date=2024-03-05", "", "Admin", ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestQuota_DefaultsToZeroDate() {
	suite.mockReportingService.On("DailyQuota", mock.Anything, time.Time{}).Return([]domain.QuotaProgress{}, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/quota", "", "Admin", ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestIncome_RequiresMonth() {
	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/income", "", "Admin", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "MonthlyIncome")
}

func (suite *ReportingHandlerTestSuite) TestLiquidity() {
	suite.mockReportingService.On("SystemLiquidity", mock.Anything).Return(decimal.NewFromInt(12500), nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/liquidity", "", "Admin", ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`{"liquidity":"12500"}`, w.Body.String())
}

func (suite *ReportingHandlerTestSuite) TestDashboard_CollectorScopedToSelf() {
	suite.mockReportingService.On("Dashboard", mock.Anything, "2024-03", "North", "Pedro").
		Return(&domain.DashboardStats{Month: "2024-03", Area: "North", User: "Pedro"}, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/dashboard?month=2024-03&area=North&user=Juan", "", "Pedro", domain.RoleCollector))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestDashboard_AdminChoosesScope() {
	suite.mockReportingService.On("Dashboard", mock.Anything, "", "", "").
		Return(&domain.DashboardStats{Month: "2024-03"}, nil).Once()
	suite.mockReportingService.On("Dashboard", mock.Anything, "", "", "Juan").
		Return(&domain.DashboardStats{Month: "2024-03", User: "Juan"}, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/dashboard", "", "Admin", domain.RoleAdmin))
	suite.Equal(http.StatusOK, w.Code)

	w = suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/dashboard?user=Juan", "", "Admin", domain.RoleAdmin))
	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestCollectionSheet_RequiresArea() {
	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/collection-sheet", "", "Admin", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ReportingHandlerTestSuite) TestExportWorkbook_Headers() {
	suite.mockReportingService.On("ExportWorkbook", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_, _ = io.WriteString(args.Get(1).(io.Writer), "PK")
		}).
		Return(nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/export.xlsx", "", "Admin", ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	suite.Contains(w.Header().Get("Content-Disposition"), "attachment; filename=\"ledger-")
	suite.Equal("PK", w.Body.String())
}

func (suite *ReportingHandlerTestSuite) TestExportWorkbook_Failure() {
	suite.mockReportingService.On("ExportWorkbook", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/reports/export.xlsx", "", "Admin", ""))

	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Contains(w.Body.String(), "Failed to export workbook")
	suite.NotContains(w.Body.String(), "disk full")
}

func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
