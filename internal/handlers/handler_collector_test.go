package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/SscSPs/microlend_ledger/internal/handlers"
	"github.com/SscSPs/microlend_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CollectorService ---
type MockCollectorService struct {
	mock.Mock
}

func (m *MockCollectorService) GetCollectorByID(ctx context.Context, collectorID string) (*domain.Collector, error) {
	args := m.Called(ctx, collectorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collector), args.Error(1)
}
func (m *MockCollectorService) ListCollectors(ctx context.Context) ([]domain.Collector, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Collector), args.Error(1)
}
func (m *MockCollectorService) SaveCollector(ctx context.Context, req dto.SaveCollectorRequest, actor string) (*domain.Collector, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Collector), args.Error(1)
}
func (m *MockCollectorService) DeleteCollector(ctx context.Context, collectorID string, actor string) error {
	args := m.Called(ctx, collectorID, actor)
	return args.Error(0)
}

var _ portssvc.CollectorSvcFacade = (*MockCollectorService)(nil)

// --- Mock AttendanceService ---
type MockAttendanceService struct {
	mock.Mock
}

func (m *MockAttendanceService) MarkAttendance(ctx context.Context, req dto.MarkAttendanceRequest, actor string) (*domain.Attendance, error) {
	args := m.Called(ctx, req, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Attendance), args.Error(1)
}
func (m *MockAttendanceService) ListAttendance(ctx context.Context, month string, employeeID string) ([]domain.Attendance, error) {
	args := m.Called(ctx, month, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Attendance), args.Error(1)
}

var _ portssvc.AttendanceSvcFacade = (*MockAttendanceService)(nil)

// --- Mock PayrollService ---
type MockPayrollService struct {
	mock.Mock
}

func (m *MockPayrollService) PreviewPayroll(ctx context.Context, month string) (*domain.PayrollPreview, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PayrollPreview), args.Error(1)
}
func (m *MockPayrollService) ProcessPayroll(ctx context.Context, month string, actor string) ([]domain.PayrollRecord, error) {
	args := m.Called(ctx, month, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRecord), args.Error(1)
}
func (m *MockPayrollService) ListPayrollRecords(ctx context.Context, month string) ([]domain.PayrollRecord, error) {
	args := m.Called(ctx, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRecord), args.Error(1)
}

var _ portssvc.PayrollSvcFacade = (*MockPayrollService)(nil)

// --- Test Suite ---
type CollectorHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockCollectorService  *MockCollectorService
	mockAttendanceService *MockAttendanceService
	mockPayrollService    *MockPayrollService
}

func (suite *CollectorHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.Require().NoError(handlers.RegisterValidators())
	suite.router = gin.New()

	suite.mockCollectorService = new(MockCollectorService)
	suite.mockAttendanceService = new(MockAttendanceService)
	suite.mockPayrollService = new(MockPayrollService)

	v1 := suite.router.Group("/api/v1", middleware.ActorMiddleware())
	handlers.RegisterCollectorRoutes(v1, suite.mockCollectorService, suite.mockAttendanceService, suite.mockPayrollService)
}

func (suite *CollectorHandlerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CollectorHandlerTestSuite) TestSaveCollector_RequiresAdmin() {
	body := `{"name":"Pedro","area":"South","quota":1500}`
	w := suite.serve(newJSONRequest(http.MethodPut, "/api/v1/collectors", body, "Pedro", domain.RoleCollector))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCollectorService.AssertNotCalled(suite.T(), "SaveCollector")
}

func (suite *CollectorHandlerTestSuite) TestSaveCollector_RejectsNegativeQuota() {
	body := `{"name":"Pedro","area":"South","quota":-1}`
	w := suite.serve(newJSONRequest(http.MethodPut, "/api/v1/collectors", body, "Admin", domain.RoleAdmin))

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *CollectorHandlerTestSuite) TestDeleteCollector_AdminIsProtected() {
	suite.mockCollectorService.On("DeleteCollector", mock.Anything, "admin", "Admin").
		Return(fmt.Errorf("%w: administrators cannot be removed", apperrors.ErrForbidden)).Once()

	w := suite.serve(newJSONRequest(http.MethodDelete, "/api/v1/collectors/admin", "", "Admin", domain.RoleAdmin))

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCollectorService.AssertExpectations(suite.T())
}

func (suite *CollectorHandlerTestSuite) TestMarkAttendance_InvalidDate() {
	body := `{"date":"03/01/2024","empId":"c-1","status":"Present"}`
	w := suite.serve(newJSONRequest(http.MethodPut, "/api/v1/attendance", body, "Admin", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAttendanceService.AssertNotCalled(suite.T(), "MarkAttendance")
}

func (suite *CollectorHandlerTestSuite) TestListAttendance_PassesFilters() {
	suite.mockAttendanceService.On("ListAttendance", mock.Anything, "2024-03", "c-1").
		Return([]domain.Attendance{}, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/attendance?month=2024-03&empId=c-1", "", "Admin", ""))

	suite.Equal(http.StatusOK, w.Code)
	suite.mockAttendanceService.AssertExpectations(suite.T())
}

func (suite *CollectorHandlerTestSuite) TestPreviewPayroll_RequiresMonth() {
	w := suite.serve(newJSONRequest(http.MethodGet, "/api/v1/payroll/preview", "", "Admin", ""))

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayrollService.AssertNotCalled(suite.T(), "PreviewPayroll")
}

func (suite *CollectorHandlerTestSuite) TestProcessPayroll_AlreadyProcessed() {
	suite.mockPayrollService.On("ProcessPayroll", mock.Anything, "2024-03", "Admin").
		Return(nil, fmt.Errorf("%w: payroll for 2024-03", apperrors.ErrAlreadyProcessed)).Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/payroll/process", `{"month":"2024-03"}`, "Admin", domain.RoleAdmin))

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockPayrollService.AssertExpectations(suite.T())
}

func (suite *CollectorHandlerTestSuite) TestProcessPayroll_Success() {
	records := []domain.PayrollRecord{{RecordID: "p-1", Month: "2024-03", EmployeeID: "c-1"}}
	suite.mockPayrollService.On("ProcessPayroll", mock.Anything, "2024-03", "Admin").Return(records, nil).Once()

	w := suite.serve(newJSONRequest(http.MethodPost, "/api/v1/payroll/process", `{"month":"2024-03"}`, "Admin", domain.RoleAdmin))

	suite.Equal(http.StatusCreated, w.Code)
	suite.Contains(w.Body.String(), `"id":"p-1"`)
}

func TestCollectorHandler(t *testing.T) {
	suite.Run(t, new(CollectorHandlerTestSuite))
}
