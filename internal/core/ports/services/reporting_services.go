package services

import (
	"context"
	"io"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingSvcFacade serves read-side projections. Nothing is cached; every
// call recomputes from the current loans, ledger and attendance.
type ReportingSvcFacade interface {
	PortfolioTotals(ctx context.Context, filter domain.LoanFilter) (*domain.PortfolioTotals, error)
	SystemLiquidity(ctx context.Context) (decimal.Decimal, error)
	// MonthlyIncome sums collections dated in month (YYYY-MM).
	MonthlyIncome(ctx context.Context, month string) (decimal.Decimal, error)
	DailyQuota(ctx context.Context, date time.Time) ([]domain.QuotaProgress, error)
	Ranking(ctx context.Context, year int, period int) (*domain.Ranking, error)
	// Dashboard scopes loans to area and ledger figures to user; empty means company-wide.
	Dashboard(ctx context.Context, month string, area string, user string) (*domain.DashboardStats, error)
	PastDue(ctx context.Context, area string) ([]domain.PastDueLoan, error)
	CollectionSheet(ctx context.Context, area string, date time.Time) (*domain.CollectionSheet, error)
	LoanStanding(ctx context.Context, loanID string) (*domain.LoanStanding, error)
	ProfitAndLoss(ctx context.Context) (*domain.ProfitAndLoss, error)
	// ExportWorkbook writes the ledger and loan book as an XLSX workbook.
	ExportWorkbook(ctx context.Context, w io.Writer) error
}

// SnapshotSvcFacade backs up and restores the whole state.
type SnapshotSvcFacade interface {
	Export(ctx context.Context) (*domain.Snapshot, error)
	// Import replaces all state; missing collections become empty.
	Import(ctx context.Context, snapshot domain.Snapshot, actor string) error
}
