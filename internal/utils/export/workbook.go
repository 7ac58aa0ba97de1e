// Package export renders the loan book and ledger as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/SscSPs/microlend_ledger/internal/utils"
	"github.com/SscSPs/microlend_ledger/internal/utils/accounting"
	"github.com/SscSPs/microlend_ledger/internal/utils/dates"
	"github.com/xuri/excelize/v2"
)

// Sheet names.
const (
	SummarySheet = "Summary"
	LedgerSheet  = "Ledger"
	LoansSheet   = "Loans"
	defaultSheet = "Sheet1"
)

var (
	ledgerHeaders = []string{"Date", "Type", "Description", "Amount", "User", "Category", "Loan ID"}
	loanHeaders   = []string{
		"Loan ID", "Borrower", "Area", "Date", "Term", "Principal", "Rate",
		"Total", "Daily", "Balance", "Status", "Due Date", "Days Late", "Collateral",
	}
)

// Workbook accumulates sheets before being written out.
type Workbook struct {
	file        *excelize.File
	symbol      string
	asOf        time.Time
	headerStyle int
	moneyStyle  int
	summaryRow  int
}

// NewWorkbook creates an empty workbook with a summary sheet.
func NewWorkbook(currencySymbol string, asOf time.Time) (*Workbook, error) {
	f := excelize.NewFile()
	w := &Workbook{file: f, symbol: currencySymbol, asOf: asOf, summaryRow: 1}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6FA"}, Pattern: 1},
	})
	if err != nil {
		return nil, w.fail(fmt.Errorf("error creating header style: %w", err))
	}
	w.headerStyle = headerStyle

	numFmt := fmt.Sprintf(`"%s"#,##0.00`, currencySymbol)
	moneyStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return nil, w.fail(fmt.Errorf("error creating money style: %w", err))
	}
	w.moneyStyle = moneyStyle

	index, err := f.NewSheet(SummarySheet)
	if err != nil {
		return nil, w.fail(fmt.Errorf("error creating summary sheet: %w", err))
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet(defaultSheet); err != nil {
		return nil, w.fail(fmt.Errorf("error removing default sheet: %w", err))
	}
	if err := w.addSummary("Generated", asOf.Format(dates.DateLayout)); err != nil {
		return nil, w.fail(err)
	}
	return w, nil
}

// fail closes the half-built file and returns err.
func (w *Workbook) fail(err error) error {
	_ = w.file.Close()
	return err
}

// File exposes the underlying spreadsheet.
func (w *Workbook) File() *excelize.File {
	return w.file
}

func (w *Workbook) addSummary(label, value string) error {
	if err := w.file.SetCellValue(SummarySheet, fmt.Sprintf("A%d", w.summaryRow), label); err != nil {
		return err
	}
	if err := w.file.SetCellValue(SummarySheet, fmt.Sprintf("B%d", w.summaryRow), value); err != nil {
		return err
	}
	w.summaryRow++
	return nil
}

func (w *Workbook) addSummaries(pairs ...[2]string) error {
	for _, p := range pairs {
		if err := w.addSummary(p[0], p[1]); err != nil {
			return err
		}
	}
	return nil
}

func (w *Workbook) writeHeader(sheet string, headers []string) error {
	if _, err := w.file.NewSheet(sheet); err != nil {
		return err
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if err := w.file.SetRowStyle(sheet, 1, 1, w.headerStyle); err != nil {
		return err
	}
	last, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return err
	}
	return w.file.SetColWidth(sheet, "A", last, 16)
}

func (w *Workbook) writeRow(sheet string, row int, values []any, moneyCols ...int) error {
	for i, value := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	for _, col := range moneyCols {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		if err := w.file.SetCellStyle(sheet, cell, cell, w.moneyStyle); err != nil {
			return err
		}
	}
	return nil
}

// AddLedger writes one row per ledger entry.
func (w *Workbook) AddLedger(entries []domain.Transaction) error {
	if err := w.writeHeader(LedgerSheet, ledgerHeaders); err != nil {
		return err
	}
	for i, e := range entries {
		values := []any{
			e.SimpleDate.Format(dates.DateLayout),
			string(e.Type),
			e.Description,
			e.Amount.InexactFloat64(),
			e.User,
			e.Category,
			e.LoanID,
		}
		if err := w.writeRow(LedgerSheet, i+2, values, 4); err != nil {
			return err
		}
	}
	return w.addSummaries(
		[2]string{"Ledger Entries", fmt.Sprintf("%d", len(entries))},
		[2]string{"System Liquidity", utils.FormatMoney(accounting.Liquidity(entries), w.symbol)},
	)
}

// AddLoans writes one row per loan with its standing as of the workbook date.
func (w *Workbook) AddLoans(loans []domain.Loan) error {
	if err := w.writeHeader(LoansSheet, loanHeaders); err != nil {
		return err
	}
	for i, l := range loans {
		values := []any{
			l.LoanID,
			l.Name,
			l.Area,
			l.Date.Format(dates.DateLayout),
			l.Term,
			l.Principal.InexactFloat64(),
			l.InterestRate.InexactFloat64(),
			l.Total.InexactFloat64(),
			l.Daily.InexactFloat64(),
			l.Balance.InexactFloat64(),
			string(l.Status),
			l.DueDate().Format(dates.DateLayout),
			l.DaysLate(w.asOf),
			l.Collateral,
		}
		if err := w.writeRow(LoansSheet, i+2, values, 6, 8, 9, 10); err != nil {
			return err
		}
	}
	totals := accounting.PortfolioTotals(loans, domain.LoanFilter{})
	return w.addSummaries(
		[2]string{"Loans", fmt.Sprintf("%d", totals.LoanCount)},
		[2]string{"Outstanding", utils.FormatMoney(totals.Outstanding, w.symbol)},
		[2]string{"Collected", utils.FormatMoney(totals.Collected, w.symbol)},
	)
}

// Write serialises the workbook as XLSX.
func (w *Workbook) Write(out io.Writer) error {
	if err := w.file.Write(out); err != nil {
		return fmt.Errorf("error writing workbook: %w", err)
	}
	return nil
}

// Close releases the workbook's temporary resources.
func (w *Workbook) Close() error {
	return w.file.Close()
}
