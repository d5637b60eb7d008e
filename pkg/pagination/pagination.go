// Package pagination implements the opaque keyset cursors used by the
// back-office feeds. A cursor pins the (created_at, id) position of the
// last row served, so pages stay stable while new orders keep arriving.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Page size bounds for the admin feeds.
const (
	DefaultLimit = 25
	MaxLimit     = 100
)

const cursorSep = "|"

// Params carries the caller-supplied page inputs.
type Params struct {
	Limit  int
	Cursor string
}

// Cursor is the decoded keyset position. Rows strictly older than
// (CreatedAt, ID) belong to the next page.
type Cursor struct {
	CreatedAt time.Time
	ID        uuid.UUID
}

// NormalizeLimit clamps the requested page size, substituting DefaultLimit
// when the caller sent nothing.
func NormalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	}
	return limit
}

// LimitWithBuffer adds one row to the normalized limit; the extra row tells
// the service whether another page exists without a second query.
func LimitWithBuffer(limit int) int {
	return NormalizeLimit(limit) + 1
}

// EncodeCursor renders the position as an opaque base64 token.
func EncodeCursor(cursor Cursor) string {
	raw := cursor.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSep + cursor.ID.String()
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// ParseCursor decodes a client-supplied token. An empty or blank token means
// the first page and yields a nil cursor.
func ParseCursor(token string) (*Cursor, error) {
	if strings.TrimSpace(token) == "" {
		return nil, nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}
	stamp, id, ok := strings.Cut(string(raw), cursorSep)
	if !ok {
		return nil, fmt.Errorf("malformed cursor")
	}

	createdAt, err := time.Parse(time.RFC3339Nano, stamp)
	if err != nil {
		return nil, fmt.Errorf("cursor timestamp: %w", err)
	}
	rowID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("cursor id: %w", err)
	}
	return &Cursor{CreatedAt: createdAt, ID: rowID}, nil
}
