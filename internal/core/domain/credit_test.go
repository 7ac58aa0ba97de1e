package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeCreditScore(t *testing.T) {
	origin := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	today := origin.AddDate(0, 0, 5)

	t.Run("new loan on schedule", func(t *testing.T) {
		loan := activeLoan("1200", 60, origin)
		got := domain.ComputeCreditScore(loan, 0, today)
		assert.Equal(t, 75, got.Score)
		assert.Equal(t, domain.CreditGood, got.Label)
	})

	t.Run("paid loan with many payments is capped", func(t *testing.T) {
		loan := activeLoan("1200", 60, origin)
		loan.Close()
		got := domain.ComputeCreditScore(loan, 11, today)
		assert.Equal(t, 100, got.Score)
		assert.Equal(t, domain.CreditElite, got.Label)
	})

	t.Run("half paid with six payments", func(t *testing.T) {
		loan := activeLoan("1200", 60, origin)
		loan.Balance = dec("600")
		got := domain.ComputeCreditScore(loan, 6, today)
		// 70 + 10 + 5 + 5
		assert.Equal(t, 90, got.Score)
		assert.Equal(t, domain.CreditElite, got.Label)
	})

	t.Run("late loan is penalised per day", func(t *testing.T) {
		loan := activeLoan("1200", 60, origin)
		got := domain.ComputeCreditScore(loan, 0, loan.DueDate().AddDate(0, 0, 12))
		// 70 + 0 - 24
		assert.Equal(t, 46, got.Score)
		assert.Equal(t, domain.CreditRisk, got.Label)
	})

	t.Run("very late loan floors at zero", func(t *testing.T) {
		loan := activeLoan("1200", 60, origin)
		got := domain.ComputeCreditScore(loan, 0, loan.DueDate().AddDate(0, 0, 90))
		assert.Equal(t, 0, got.Score)
	})
}

func TestCreditLabelFor(t *testing.T) {
	assert.Equal(t, domain.CreditElite, domain.CreditLabelFor(90))
	assert.Equal(t, domain.CreditGood, domain.CreditLabelFor(89))
	assert.Equal(t, domain.CreditGood, domain.CreditLabelFor(70))
	assert.Equal(t, domain.CreditFair, domain.CreditLabelFor(50))
	assert.Equal(t, domain.CreditRisk, domain.CreditLabelFor(49))
}

func TestCountPayments(t *testing.T) {
	entries := []domain.Transaction{
		{Type: domain.Collection, LoanID: "a", Amount: decimal.NewFromInt(20)},
		{Type: domain.Collection, LoanID: "a", Amount: decimal.NewFromInt(150), Category: domain.CategoryFee},
		{Type: domain.Disbursement, LoanID: "a", Amount: decimal.NewFromInt(-1000)},
		{Type: domain.Collection, LoanID: "b", Amount: decimal.NewFromInt(20)},
		{Type: domain.Collection, LoanID: "a", Amount: decimal.NewFromInt(20)},
	}
	assert.Equal(t, 2, domain.CountPayments(entries, "a"))
	assert.Equal(t, 0, domain.CountPayments(entries, ""))
}
