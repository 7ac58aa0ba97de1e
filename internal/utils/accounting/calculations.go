package accounting

import (
	"sort"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/shopspring/decimal"
)

// SumAmounts adds the signed amounts of the entries accepted by keep.
func SumAmounts(entries []domain.Transaction, keep func(domain.Transaction) bool) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		if keep == nil || keep(e) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// FilterEntries keeps the entries the filter accepts.
func FilterEntries(entries []domain.Transaction, filter domain.LedgerFilter) []domain.Transaction {
	out := []domain.Transaction{}
	for _, e := range entries {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Liquidity is the all-time cash position: the sum of every ledger amount.
func Liquidity(entries []domain.Transaction) decimal.Decimal {
	return SumAmounts(entries, nil)
}

// MonthlyIncome sums collections dated in month (YYYY-MM).
func MonthlyIncome(entries []domain.Transaction, month string) decimal.Decimal {
	return SumAmounts(entries, func(e domain.Transaction) bool {
		return e.Type == domain.Collection && dates.InMonth(e.SimpleDate, month)
	})
}

// MonthlyCashFlow splits the month's entries into inflows and outflows.
func MonthlyCashFlow(entries []domain.Transaction, month string) domain.CashFlow {
	flow := domain.CashFlow{In: decimal.Zero, Out: decimal.Zero}
	for _, e := range entries {
		if !dates.InMonth(e.SimpleDate, month) {
			continue
		}
		if e.Amount.IsPositive() {
			flow.In = flow.In.Add(e.Amount)
		} else {
			flow.Out = flow.Out.Add(e.Amount.Abs())
		}
	}
	flow.Net = flow.In.Sub(flow.Out)
	return flow
}

// PortfolioTotals sums totals, collections and balances over the loans the filter accepts.
func PortfolioTotals(loans []domain.Loan, filter domain.LoanFilter) domain.PortfolioTotals {
	totals := domain.PortfolioTotals{Loaned: decimal.Zero, Collected: decimal.Zero, Outstanding: decimal.Zero}
	for _, l := range loans {
		if !filter.Matches(l) {
			continue
		}
		totals.LoanCount++
		totals.Loaned = totals.Loaned.Add(l.Total)
		totals.Collected = totals.Collected.Add(l.Collected())
		totals.Outstanding = totals.Outstanding.Add(l.Balance)
	}
	return totals
}

// PastDue lists overdue loans, latest first.
func PastDue(loans []domain.Loan, today time.Time) []domain.PastDueLoan {
	out := []domain.PastDueLoan{}
	for _, l := range loans {
		if late := l.DaysLate(today); late > 0 {
			out = append(out, domain.PastDueLoan{Loan: l, DueDate: l.DueDate(), DaysLate: late})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysLate > out[j].DaysLate
	})
	return out
}

// PaymentsFor returns the collections booked against a loan, fees excluded.
func PaymentsFor(entries []domain.Transaction, loanID string) []domain.Transaction {
	out := []domain.Transaction{}
	for _, e := range entries {
		if e.IsPaymentFor(loanID) {
			out = append(out, e)
		}
	}
	return out
}

// CollectedBy sums a user's collections on a given day.
func CollectedBy(entries []domain.Transaction, user string, day time.Time) decimal.Decimal {
	return SumAmounts(entries, func(e domain.Transaction) bool {
		return e.Type == domain.Collection && e.User == user && dates.SameDay(e.SimpleDate, day)
	})
}

// DailyQuota compares each non-admin collector's collections for day against their quota.
func DailyQuota(collectors []domain.Collector, entries []domain.Transaction, day time.Time) []domain.QuotaProgress {
	out := []domain.QuotaProgress{}
	for _, c := range collectors {
		if c.IsAdmin() {
			continue
		}
		collected := CollectedBy(entries, c.Name, day)
		remaining := decimal.Max(decimal.Zero, c.Quota.Sub(collected))
		out = append(out, domain.QuotaProgress{
			CollectorID: c.CollectorID,
			Name:        c.Name,
			Area:        c.Area,
			Quota:       c.Quota,
			Collected:   collected,
			Remaining:   remaining,
			Met:         c.Quota.IsPositive() && collected.GreaterThanOrEqual(c.Quota),
		})
	}
	return out
}

// Rank orders non-admin collectors by collections made within a bi-monthly
// period of year. Ties keep collector order.
func Rank(collectors []domain.Collector, entries []domain.Transaction, year int, period int) ([]domain.RankingEntry, error) {
	first, second, err := dates.PeriodMonths(period)
	if err != nil {
		return nil, err
	}
	inPeriod := func(t time.Time) bool {
		return t.Year() == year && (t.Month() == first || t.Month() == second)
	}

	out := []domain.RankingEntry{}
	for _, c := range collectors {
		if c.IsAdmin() {
			continue
		}
		name := c.Name
		total := SumAmounts(entries, func(e domain.Transaction) bool {
			return e.Type == domain.Collection && e.User == name && inPeriod(e.SimpleDate)
		})
		out = append(out, domain.RankingEntry{
			CollectorID:    c.CollectorID,
			Name:           c.Name,
			Area:           c.Area,
			TotalCollected: total,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TotalCollected.GreaterThan(out[j].TotalCollected)
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out, nil
}

// PayrollLines computes each non-admin employee's pay for month from Present
// attendance. No deductions are modelled, so net equals gross.
func PayrollLines(collectors []domain.Collector, attendance []domain.Attendance, month string) []domain.PayrollLine {
	present := make(map[string]int)
	for _, a := range attendance {
		if a.Status == domain.Present && dates.InMonth(a.Date, month) {
			present[a.EmployeeID]++
		}
	}

	lines := []domain.PayrollLine{}
	for _, c := range collectors {
		if c.IsAdmin() {
			continue
		}
		days := present[c.CollectorID]
		gross := c.DailyRate.Mul(decimal.NewFromInt(int64(days)))
		lines = append(lines, domain.PayrollLine{
			EmployeeID:   c.CollectorID,
			EmployeeName: c.Name,
			DaysPresent:  days,
			DailyRate:    c.DailyRate,
			GrossPay:     gross,
			Deductions:   decimal.Zero,
			NetPay:       gross,
		})
	}
	return lines
}

// TotalPayout sums net pay across payroll lines.
func TotalPayout(lines []domain.PayrollLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.NetPay)
	}
	return total
}

// CollectionSheet lists a route's active loans with what each paid on day.
// An empty area covers every route.
func CollectionSheet(loans []domain.Loan, entries []domain.Transaction, area string, day time.Time) domain.CollectionSheet {
	paid := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.LoanID != "" && e.Type == domain.Collection && e.Category != domain.CategoryFee && dates.SameDay(e.SimpleDate, day) {
			paid[e.LoanID] = paid[e.LoanID].Add(e.Amount)
		}
	}

	sheet := domain.CollectionSheet{
		Area:      area,
		Date:      dates.Truncate(day),
		Rows:      []domain.CollectionSheetRow{},
		Expected:  decimal.Zero,
		Collected: decimal.Zero,
	}
	for _, l := range loans {
		if !l.IsActive() || (area != "" && l.Area != area) {
			continue
		}
		amount, ok := paid[l.LoanID]
		if !ok {
			amount = decimal.Zero
			sheet.Absent++
		}
		sheet.Rows = append(sheet.Rows, domain.CollectionSheetRow{
			LoanID:    l.LoanID,
			Name:      l.Name,
			Daily:     l.Daily,
			Balance:   l.Balance,
			PaidToday: amount,
			HasPaid:   ok,
			DaysLate:  l.DaysLate(day),
		})
		sheet.Expected = sheet.Expected.Add(l.Daily)
		sheet.Collected = sheet.Collected.Add(amount)
	}
	return sheet
}

// ProfitAndLoss is realized profit: collections less disbursements, expenses
// and dividends. Payroll is not counted as a cost here.
func ProfitAndLoss(entries []domain.Transaction, loans []domain.Loan) domain.ProfitAndLoss {
	byType := func(t domain.TransactionType) decimal.Decimal {
		return SumAmounts(entries, func(e domain.Transaction) bool { return e.Type == t })
	}
	pl := domain.ProfitAndLoss{
		TotalCollected: byType(domain.Collection),
		TotalDisbursed: byType(domain.Disbursement).Abs(),
		TotalExpenses:  byType(domain.Expense).Abs(),
		TotalDividends: byType(domain.Dividend).Abs(),
	}
	pl.NetProfit = pl.TotalCollected.Sub(pl.TotalDisbursed).Sub(pl.TotalExpenses).Sub(pl.TotalDividends)
	pl.Portfolio = PortfolioTotals(loans, domain.LoanFilter{Status: domain.LoanActive}).Outstanding

	base := pl.TotalDisbursed
	if base.IsZero() {
		base = decimal.NewFromInt(1)
	}
	pl.ROIPercent = pl.NetProfit.Div(base).Mul(decimal.NewFromInt(100)).Round(1)
	return pl
}
