package firestore

import (
	"testing"
	"time"

	"github.com/SscSPs/microlend_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDoc_UsesJSONFieldNames(t *testing.T) {
	loan := domain.Loan{
		LoanID:  "L1",
		Name:    "Maria",
		Area:    "North",
		Balance: decimal.RequireFromString("1200.50"),
		Status:  domain.LoanActive,
		Term:    60,
	}

	data, err := toDoc(loan)
	require.NoError(t, err)
	assert.Equal(t, "L1", data["id"])
	assert.Equal(t, "North", data["area"])
	assert.Equal(t, "1200.5", data["balance"], "decimals are stored as strings")
	assert.Equal(t, "Active", data["status"])
	assert.NotContains(t, data, seqField)
}

func TestAttendanceKey(t *testing.T) {
	a := domain.Attendance{EmployeeID: "E1", Date: time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "E1_2024-05-03", attendanceKey(a))
}

func TestDocsOf(t *testing.T) {
	loans := []domain.Loan{{LoanID: "A"}, {LoanID: "B"}}
	docs := docsOf(loans, func(l domain.Loan) string { return l.LoanID })
	require.Len(t, docs, 2)
	assert.Equal(t, "A", docs[0].id)
	assert.Equal(t, "B", docs[1].id)
}
