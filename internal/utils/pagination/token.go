// Package pagination encodes opaque cursors for newest-first listings.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// Cursor is the sort key of the last entry on a page.
type Cursor struct {
	EntryDate time.Time
	WrittenAt time.Time
	// ID breaks ties between entries written at the same instant.
	ID string
}

// EncodeToken creates a cursor token that points just past the given entry.
func EncodeToken(cursor Cursor) string {
	tokenStr := fmt.Sprintf("%s|%s|%s", cursor.EntryDate.Format(timeFormat), cursor.WrittenAt.Format(timeFormat), cursor.ID)
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses a cursor token.
func DecodeToken(token string) (Cursor, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 3)
	if len(parts) != 3 {
		return Cursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	writtenAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return Cursor{}, fmt.Errorf("invalid pagination token format (timestamp parse): %w", err)
	}

	return Cursor{EntryDate: entryDate, WrittenAt: writtenAt, ID: parts[2]}, nil
}

// Before reports whether a sorts ahead of b in newest-first order.
func (a Cursor) Before(b Cursor) bool {
	if !a.EntryDate.Equal(b.EntryDate) {
		return a.EntryDate.After(b.EntryDate)
	}
	if !a.WrittenAt.Equal(b.WrittenAt) {
		return a.WrittenAt.After(b.WrittenAt)
	}
	return a.ID > b.ID
}
