package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/microlend_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/microlend_ledger/internal/core/ports/services"
	"github.com/SscSPs/microlend_ledger/internal/utils/accounting"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/SscSPs/microlend_ledger/internal/utils/export"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	loanRepo       portsrepo.LoanReader
	ledgerRepo     portsrepo.LedgerReader
	collectorRepo  portsrepo.CollectorReader
	currencySymbol string
}

// NewReportingService creates a new reporting service.
func NewReportingService(
	loanRepo portsrepo.LoanReader,
	ledgerRepo portsrepo.LedgerReader,
	collectorRepo portsrepo.CollectorReader,
	currencySymbol string,
	options ...ServiceOption,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		BaseService:    newBaseService(nil, options),
		loanRepo:       loanRepo,
		ledgerRepo:     ledgerRepo,
		collectorRepo:  collectorRepo,
		currencySymbol: currencySymbol,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) loans(ctx context.Context, filter domain.LoanFilter) ([]domain.Loan, error) {
	loans, err := s.loanRepo.ListLoans(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list loans for report")
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

func (s *reportingService) entries(ctx context.Context, filter domain.LedgerFilter) ([]domain.Transaction, error) {
	entries, err := s.ledgerRepo.ListEntries(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledger entries for report")
		return nil, fmt.Errorf("failed to list ledger entries: %w", err)
	}
	return entries, nil
}

func (s *reportingService) collectors(ctx context.Context) ([]domain.Collector, error) {
	collectors, err := s.collectorRepo.ListCollectors(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list collectors for report")
		return nil, fmt.Errorf("failed to list collectors: %w", err)
	}
	return collectors, nil
}

func (s *reportingService) PortfolioTotals(ctx context.Context, filter domain.LoanFilter) (*domain.PortfolioTotals, error) {
	loans, err := s.loans(ctx, filter)
	if err != nil {
		return nil, err
	}
	totals := accounting.PortfolioTotals(loans, filter)
	return &totals, nil
}

func (s *reportingService) SystemLiquidity(ctx context.Context) (decimal.Decimal, error) {
	entries, err := s.entries(ctx, domain.LedgerFilter{})
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.Liquidity(entries), nil
}

func (s *reportingService) MonthlyIncome(ctx context.Context, month string) (decimal.Decimal, error) {
	if err := validateMonth(month); err != nil {
		return decimal.Zero, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{Type: domain.Collection})
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.MonthlyIncome(entries, month), nil
}

func (s *reportingService) DailyQuota(ctx context.Context, date time.Time) ([]domain.QuotaProgress, error) {
	if date.IsZero() {
		date = s.Today()
	}
	collectors, err := s.collectors(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{Type: domain.Collection, From: date, To: date})
	if err != nil {
		return nil, err
	}
	return accounting.DailyQuota(collectors, entries, date), nil
}

func (s *reportingService) Ranking(ctx context.Context, year int, period int) (*domain.Ranking, error) {
	today := s.Today()
	if year == 0 {
		year = today.Year()
	}
	if period == 0 {
		period = dates.PeriodOf(today.Month())
	}
	collectors, err := s.collectors(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{Type: domain.Collection})
	if err != nil {
		return nil, err
	}
	ranked, err := accounting.Rank(collectors, entries, year, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return &domain.Ranking{
		Year:    year,
		Period:  period,
		Label:   dates.PeriodLabel(period),
		Entries: ranked,
	}, nil
}

func (s *reportingService) Dashboard(ctx context.Context, month string, area string, user string) (*domain.DashboardStats, error) {
	today := s.Today()
	if month == "" {
		month = dates.MonthKey(today)
	}
	if err := validateMonth(month); err != nil {
		return nil, err
	}

	loans, err := s.loans(ctx, domain.LoanFilter{Area: area})
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{})
	if err != nil {
		return nil, err
	}

	// Absences depend on who paid, not on who collected, so the sheet sees every entry.
	sheet := accounting.CollectionSheet(loans, entries, area, today)
	collectedToday := sheet.Collected
	if user != "" {
		entries = accounting.FilterEntries(entries, domain.LedgerFilter{User: user})
		collectedToday = accounting.CollectedBy(entries, user, today)
	}

	active := accounting.PortfolioTotals(loans, domain.LoanFilter{Status: domain.LoanActive})
	stats := &domain.DashboardStats{
		Month:          month,
		Area:           area,
		User:           user,
		CashFlow:       accounting.MonthlyCashFlow(entries, month),
		Income:         accounting.MonthlyIncome(entries, month),
		Liquidity:      accounting.Liquidity(entries),
		Portfolio:      accounting.PortfolioTotals(loans, domain.LoanFilter{}),
		ActiveLoans:    active.LoanCount,
		PastDueCount:   len(accounting.PastDue(loans, today)),
		AbsentToday:    sheet.Absent,
		CollectedToday: collectedToday,
	}
	s.LogDebug(ctx, "Dashboard computed", slog.String("month", month), slog.String("area", area), slog.String("user", user))
	return stats, nil
}

func (s *reportingService) PastDue(ctx context.Context, area string) ([]domain.PastDueLoan, error) {
	loans, err := s.loans(ctx, domain.LoanFilter{Area: area, Status: domain.LoanActive})
	if err != nil {
		return nil, err
	}
	return accounting.PastDue(loans, s.Today()), nil
}

func (s *reportingService) CollectionSheet(ctx context.Context, area string, date time.Time) (*domain.CollectionSheet, error) {
	if date.IsZero() {
		date = s.Today()
	}
	loans, err := s.loans(ctx, domain.LoanFilter{Area: area, Status: domain.LoanActive})
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{Type: domain.Collection, From: date, To: date})
	if err != nil {
		return nil, err
	}
	sheet := accounting.CollectionSheet(loans, entries, area, date)
	return &sheet, nil
}

func (s *reportingService) LoanStanding(ctx context.Context, loanID string) (*domain.LoanStanding, error) {
	loan, err := s.loanRepo.FindLoanByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{LoanID: loanID})
	if err != nil {
		return nil, err
	}

	today := s.Today()
	payments := accounting.PaymentsFor(entries, loanID)
	return &domain.LoanStanding{
		Loan:         *loan,
		DueDate:      loan.DueDate(),
		DaysLate:     loan.DaysLate(today),
		IsOverdue:    loan.IsOverdue(today),
		PaymentCount: len(payments),
		Credit:       domain.ComputeCreditScore(*loan, len(payments), today),
		NetProceeds:  loan.NetProceeds(),
		Payments:     payments,
	}, nil
}

func (s *reportingService) ProfitAndLoss(ctx context.Context) (*domain.ProfitAndLoss, error) {
	loans, err := s.loans(ctx, domain.LoanFilter{})
	if err != nil {
		return nil, err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{})
	if err != nil {
		return nil, err
	}
	pl := accounting.ProfitAndLoss(entries, loans)
	return &pl, nil
}

func (s *reportingService) ExportWorkbook(ctx context.Context, w io.Writer) error {
	loans, err := s.loans(ctx, domain.LoanFilter{})
	if err != nil {
		return err
	}
	entries, err := s.entries(ctx, domain.LedgerFilter{})
	if err != nil {
		return err
	}

	book, err := export.NewWorkbook(s.currencySymbol, s.Today())
	if err != nil {
		s.LogError(ctx, err, "Failed to create workbook")
		return fmt.Errorf("failed to create workbook: %w", err)
	}
	defer book.Close()
	if err := book.AddLedger(entries); err != nil {
		return fmt.Errorf("failed to build ledger sheet: %w", err)
	}
	if err := book.AddLoans(loans); err != nil {
		return fmt.Errorf("failed to build loan sheet: %w", err)
	}
	if err := book.Write(w); err != nil {
		s.LogError(ctx, err, "Failed to write workbook")
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	s.LogInfo(ctx, "Workbook exported", slog.Int("loans", len(loans)), slog.Int("entries", len(entries)))
	return nil
}
