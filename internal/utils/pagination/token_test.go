package pagination

import (
	"encoding/base64"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeToken(t *testing.T) {
	cursor := Cursor{
		EntryDate: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		WrittenAt: time.Date(2024, 3, 15, 14, 30, 45, 123456789, time.UTC),
		ID:        "7f0c2a9e-1b2c-4d5e-8f90-a1b2c3d4e5f6",
	}

	token := EncodeToken(cursor)
	assert.NotEmpty(t, token, "Token should not be empty")

	decoded, err := DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, cursor, decoded)

	// Zero values survive the round trip
	zero, err := DecodeToken(EncodeToken(Cursor{}))
	assert.NoError(t, err)
	assert.True(t, zero.EntryDate.IsZero())
	assert.True(t, zero.WrittenAt.IsZero())
	assert.Empty(t, zero.ID)

	now := time.Now().UTC()
	decodedNow, err := DecodeToken(EncodeToken(Cursor{EntryDate: now, WrittenAt: now, ID: "x"}))
	assert.NoError(t, err)
	assert.True(t, now.Equal(decodedNow.EntryDate))
	assert.True(t, now.Equal(decodedNow.WrittenAt))
}

func TestDecodeTokenError(t *testing.T) {
	_, err := DecodeToken("this is not base64!")
	assert.ErrorContains(t, err, "base64 decode")

	noSeparator := base64.StdEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z|2024-03-15T14:30:45Z"))
	_, err = DecodeToken(noSeparator)
	assert.ErrorContains(t, err, "split")

	badDate := base64.StdEncoding.EncodeToString([]byte("notadate|2024-03-15T14:30:45Z|id"))
	_, err = DecodeToken(badDate)
	assert.ErrorContains(t, err, "entry date parse")

	badTimestamp := base64.StdEncoding.EncodeToString([]byte("2024-03-15T00:00:00Z|later|id"))
	_, err = DecodeToken(badTimestamp)
	assert.ErrorContains(t, err, "timestamp parse")
}

func TestCursorBefore(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	at := day.Add(9 * time.Hour)

	cursors := []Cursor{
		{EntryDate: day, WrittenAt: at, ID: "a"},
		{EntryDate: day.AddDate(0, 0, 1), WrittenAt: at, ID: "a"},
		{EntryDate: day, WrittenAt: at, ID: "c"},
		{EntryDate: day, WrittenAt: at.Add(time.Second), ID: "a"},
		{EntryDate: day, WrittenAt: at, ID: "b"},
	}
	sort.Slice(cursors, func(i, j int) bool { return cursors[i].Before(cursors[j]) })

	require.Len(t, cursors, 5)
	assert.Equal(t, day.AddDate(0, 0, 1), cursors[0].EntryDate)
	assert.Equal(t, at.Add(time.Second), cursors[1].WrittenAt)
	assert.Equal(t, []string{"c", "b", "a"}, []string{cursors[2].ID, cursors[3].ID, cursors[4].ID})

	same := Cursor{EntryDate: day, WrittenAt: at, ID: "a"}
	assert.False(t, same.Before(same))
}
