package export

import (
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkbookStyleErrorsSurface(t *testing.T) {
	asOf := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	entries := []domain.Transaction{
		{Type: domain.Collection, Description: "Payment: Maria Santos", Amount: decimal.NewFromInt(200), SimpleDate: asOf, User: "Ana"},
	}

	t.Run("money cell style", func(t *testing.T) {
		book, err := NewWorkbook("₱", asOf)
		require.NoError(t, err)
		defer book.Close()

		book.moneyStyle = 9999
		assert.Error(t, book.AddLedger(entries))
	})

	t.Run("header row style", func(t *testing.T) {
		book, err := NewWorkbook("₱", asOf)
		require.NoError(t, err)
		defer book.Close()

		book.headerStyle = 9999
		assert.Error(t, book.AddLoans(nil))
	})
}
