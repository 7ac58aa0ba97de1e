package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/adapters/database/filestore"
	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/core/services"
	"github.com/SscSPs/microlend_ledger/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.Transaction) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var _ portsrepo.LedgerRepositoryFacade = (*MockLedgerRepository)(nil)

// --- Mock AuditRepository ---
type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) AppendAuditLog(ctx context.Context, entry domain.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

var _ portsrepo.AuditWriter = (*MockAuditRepository)(nil)

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	svc   *portssvc.ServiceContainer
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.repos = filestore.NewInMemory().Repositories()
	clock := steppingClock(time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC))
	suite.svc = services.NewServiceContainer(suite.repos, "₱", services.WithClock(clock))
}

func (suite *LedgerServiceTestSuite) TestAddEntry_SignFollowsType() {
	expense, err := suite.svc.Ledger.AddEntry(suite.ctx, dto.AddLedgerEntryRequest{
		Type:        domain.Expense,
		Description: "Gasoline",
		Amount:      d("350"),
		Category:    "Transport",
	}, "Juan")
	suite.Require().NoError(err)
	suite.True(expense.Amount.Equal(d("-350")))

	// A negative magnitude on an inflow is still booked positive.
	capital, err := suite.svc.Ledger.AddEntry(suite.ctx, dto.AddLedgerEntryRequest{
		Type:        domain.Capital,
		Description: "Owner top-up",
		Amount:      d("-1000"),
	}, "Admin")
	suite.Require().NoError(err)
	suite.True(capital.Amount.Equal(d("1000")))

	liquidity, err := suite.svc.Reporting.SystemLiquidity(suite.ctx)
	suite.Require().NoError(err)
	suite.True(liquidity.Equal(d("650")))
}

func (suite *LedgerServiceTestSuite) TestAddEntry_Validation() {
	_, err := suite.svc.Ledger.AddEntry(suite.ctx, dto.AddLedgerEntryRequest{Type: "Bribe", Description: "x", Amount: d("1")}, "Juan")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Ledger.AddEntry(suite.ctx, dto.AddLedgerEntryRequest{Type: domain.Expense, Description: " ", Amount: d("1")}, "Juan")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.svc.Ledger.AddEntry(suite.ctx, dto.AddLedgerEntryRequest{Type: domain.Expense, Description: "x", Amount: d("0")}, "Juan")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestAddCapital_DefaultsDescriptionAndAudits() {
	entry, err := suite.svc.Ledger.AddCapital(suite.ctx, d("2500"), "", "Admin")

	suite.Require().NoError(err)
	suite.Equal("Internal Capital Injection", entry.Description)
	suite.Equal(domain.Capital, entry.Type)

	logs, err := suite.svc.Audit.ListAuditLogs(suite.ctx, 1)
	suite.Require().NoError(err)
	suite.Equal("Injected Capital: 2500.00", logs[0].Details)

	_, err = suite.svc.Ledger.AddCapital(suite.ctx, d("0"), "", "Admin")
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestListEntries_PaginatesNewestFirst() {
	for day := 1; day <= 5; day++ {
		_, err := suite.svc.Ledger.AddEntry(suite.ctx, dto.AddLedgerEntryRequest{
			Type:        domain.Expense,
			Description: "Supplies",
			Amount:      d("10"),
			Date:        time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02"),
		}, "Juan")
		suite.Require().NoError(err)
	}

	var seen []time.Time
	params := dto.ListLedgerParams{Limit: 2}
	for pages := 0; pages < 5; pages++ {
		resp, err := suite.svc.Ledger.ListEntries(suite.ctx, params)
		suite.Require().NoError(err)
		for _, e := range resp.Entries {
			seen = append(seen, e.SimpleDate)
		}
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}

	suite.Require().Len(seen, 5)
	for i := 1; i < len(seen); i++ {
		suite.True(seen[i-1].After(seen[i]), "entries must be newest first")
	}
}

func (suite *LedgerServiceTestSuite) TestListEntries_SameInstantEntriesAllReturned() {
	frozen := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := services.NewServiceContainer(suite.repos, "₱", services.WithClock(func() time.Time { return frozen }))

	// One origination with both fees writes three entries at the same instant.
	_, err := svc.Loan.OriginateLoan(suite.ctx, dto.OriginateLoanRequest{
		Name:           "Maria Santos",
		Area:           "North",
		Principal:      d("5000"),
		Term:           60,
		ServiceFee:     d("150"),
		DeliveryCharge: d("50"),
	}, "Juan")
	suite.Require().NoError(err)

	seen := map[string]bool{}
	params := dto.ListLedgerParams{Limit: 1}
	for pages := 0; pages < 10; pages++ {
		resp, err := svc.Ledger.ListEntries(suite.ctx, params)
		suite.Require().NoError(err)
		for _, e := range resp.Entries {
			suite.False(seen[e.TransactionID], "entry %s returned twice", e.TransactionID)
			seen[e.TransactionID] = true
		}
		if resp.NextToken == nil {
			break
		}
		params.NextToken = resp.NextToken
	}

	suite.Len(seen, 3)
}

func (suite *LedgerServiceTestSuite) TestListEntries_InvalidToken() {
	token := "not-a-token"
	_, err := suite.svc.Ledger.ListEntries(suite.ctx, dto.ListLedgerParams{NextToken: &token})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func TestLedgerService(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestAddEntry_AppendFailure(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	auditRepo := new(MockAuditRepository)
	svc := services.NewLedgerService(ledgerRepo, auditRepo)

	ledgerRepo.On("AppendEntry", mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(assert.AnError).Once()

	entry, err := svc.AddCapital(context.Background(), d("100"), "", "Admin")

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, assert.AnError)
	auditRepo.AssertNotCalled(t, "AppendAuditLog", mock.Anything, mock.Anything)
	ledgerRepo.AssertExpectations(t)
}

func TestAddCapital_AuditFailureSurfaces(t *testing.T) {
	ledgerRepo := new(MockLedgerRepository)
	auditRepo := new(MockAuditRepository)
	svc := services.NewLedgerService(ledgerRepo, auditRepo)

	ledgerRepo.On("AppendEntry", mock.Anything, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()
	auditRepo.On("AppendAuditLog", mock.Anything, mock.MatchedBy(func(l domain.AuditLog) bool {
		return l.User == "Admin" && l.Details == "Injected Capital: 100.00"
	})).Return(assert.AnError).Once()

	_, err := svc.AddCapital(context.Background(), d("100"), "", "Admin")

	assert.ErrorIs(t, err, assert.AnError)
	ledgerRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}
