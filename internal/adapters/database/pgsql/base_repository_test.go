package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/microlend_ledger/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapReadError(t *testing.T) {
	assert.ErrorIs(t, mapReadError(pgx.ErrNoRows, "loan", "L1"), apperrors.ErrNotFound)

	other := errors.New("connection reset")
	err := mapReadError(other, "loan", "L1")
	assert.ErrorIs(t, err, other)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMapWriteError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505"}
	assert.ErrorIs(t, mapWriteError(dup, "loan", "L1"), apperrors.ErrDuplicate)

	fk := &pgconn.PgError{Code: "23503"}
	err := mapWriteError(fk, "loan", "L1")
	assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
	assert.ErrorAs(t, err, &fk)
}

func TestExpectOne(t *testing.T) {
	assert.NoError(t, expectOne(pgconn.NewCommandTag("UPDATE 1"), "loan", "L1"))
	assert.ErrorIs(t, expectOne(pgconn.NewCommandTag("DELETE 0"), "loan", "L1"), apperrors.ErrNotFound)
}
