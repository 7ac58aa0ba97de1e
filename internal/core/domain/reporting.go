package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioTotals summarises a set of loans.
type PortfolioTotals struct {
	LoanCount   int             `json:"loanCount"`
	Loaned      decimal.Decimal `json:"loaned"`      // sum of totals
	Collected   decimal.Decimal `json:"collected"`   // sum of total - balance
	Outstanding decimal.Decimal `json:"outstanding"` // sum of balances
}

// CashFlow splits ledger movement into inflows and outflows.
type CashFlow struct {
	In  decimal.Decimal `json:"in"`
	Out decimal.Decimal `json:"out"` // positive magnitude
	Net decimal.Decimal `json:"net"`
}

// QuotaProgress is a collector's collections for a day against their quota.
type QuotaProgress struct {
	CollectorID string          `json:"collectorId"`
	Name        string          `json:"name"`
	Area        string          `json:"area"`
	Quota       decimal.Decimal `json:"quota"`
	Collected   decimal.Decimal `json:"collected"`
	Remaining   decimal.Decimal `json:"remaining"`
	Met         bool            `json:"met"`
}

// RankingEntry is one collector's place in a bi-monthly ranking.
type RankingEntry struct {
	Rank           int             `json:"rank"`
	CollectorID    string          `json:"collectorId"`
	Name           string          `json:"name"`
	Area           string          `json:"area"`
	TotalCollected decimal.Decimal `json:"totalCollected"`
}

// Ranking is the leaderboard for one period of a year.
type Ranking struct {
	Year    int            `json:"year"`
	Period  int            `json:"period"`
	Label   string         `json:"label"`
	Entries []RankingEntry `json:"entries"`
}

// PastDueLoan pairs an overdue loan with its lateness.
type PastDueLoan struct {
	Loan     Loan      `json:"loan"`
	DueDate  time.Time `json:"dueDate"`
	DaysLate int       `json:"daysLate"`
}

// DashboardStats is the at-a-glance summary for a month, optionally scoped to a route and a collector.
type DashboardStats struct {
	Month          string          `json:"month"`
	Area           string          `json:"area,omitempty"`
	User           string          `json:"user,omitempty"`
	CashFlow       CashFlow        `json:"cashFlow"`
	Income         decimal.Decimal `json:"income"`
	Liquidity      decimal.Decimal `json:"liquidity"`
	Portfolio      PortfolioTotals `json:"portfolio"`
	ActiveLoans    int             `json:"activeLoans"`
	PastDueCount   int             `json:"pastDueCount"`
	AbsentToday    int             `json:"absentToday"`
	CollectedToday decimal.Decimal `json:"collectedToday"`
}

// CollectionSheetRow is one borrower on a route's daily sheet.
type CollectionSheetRow struct {
	LoanID    string          `json:"loanId"`
	Name      string          `json:"name"`
	Daily     decimal.Decimal `json:"daily"`
	Balance   decimal.Decimal `json:"balance"`
	PaidToday decimal.Decimal `json:"paidToday"`
	HasPaid   bool            `json:"hasPaid"`
	DaysLate  int             `json:"daysLate"`
}

// CollectionSheet lists the active loans of a route for a collection day.
type CollectionSheet struct {
	Area      string               `json:"area"`
	Date      time.Time            `json:"date"`
	Rows      []CollectionSheetRow `json:"rows"`
	Expected  decimal.Decimal      `json:"expected"`
	Collected decimal.Decimal      `json:"collected"`
	Absent    int                  `json:"absent"`
}

// ProfitAndLoss is the realized profit statement over the whole ledger.
// Costs are positive magnitudes.
type ProfitAndLoss struct {
	TotalCollected decimal.Decimal `json:"totalCollected"`
	TotalDisbursed decimal.Decimal `json:"totalDisbursed"`
	TotalExpenses  decimal.Decimal `json:"totalExpenses"`
	TotalDividends decimal.Decimal `json:"totalDividends"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	Portfolio      decimal.Decimal `json:"portfolio"` // outstanding active balances
	ROIPercent     decimal.Decimal `json:"roiPercent"`
}
