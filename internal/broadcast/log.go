package broadcast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Log is the append-only broadcast history repository backed by the
// independently lifecycled log store
type Log struct {
	db *sqlx.DB
}

// NewLog creates a broadcast log repository
func NewLog(db *sqlx.DB) *Log {
	return &Log{db: db}
}

// Append records one broadcast attempt. userIDs is stored comma-joined for
// compatibility with the admin table view and export.
func (l *Log) Append(message, recipientType string, userIDs []int64) error {
	_, err := l.db.Exec(`
		INSERT INTO broadcast_log (message, recipient_type, user_ids)
		VALUES (?, ?, ?)
	`, message, recipientType, joinIDs(userIDs))
	if err != nil {
		return fmt.Errorf("appending broadcast log: %w", err)
	}
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
