package model

import "time"

// Recipient types recorded in the broadcast log.
const (
	RecipientAll         = "all"
	RecipientSpecific    = "specific"
	RecipientAdminNotify = "admin_notify"
)

// BroadcastLogEntry is an append-only record of a broadcast attempt.
// UserIDs holds the full resolved recipient list as a comma-joined string,
// regardless of how many sends actually succeeded.
type BroadcastLogEntry struct {
	ID            int64     `db:"id" json:"id"`
	Message       string    `db:"message" json:"message"`
	RecipientType string    `db:"recipient_type" json:"recipient_type"`
	UserIDs       string    `db:"user_ids" json:"user_ids"`
	Timestamp     time.Time `db:"timestamp" json:"timestamp"`
}

// BroadcastRequest is the admin payload for a broadcast. An empty TargetIDs
// means full fan-out to every known subscriber.
type BroadcastRequest struct {
	Message   string  `json:"message"`
	TargetIDs []int64 `json:"target_ids"`
}

// BroadcastResult reports fan-out accounting back to the caller
type BroadcastResult struct {
	SentCount  int `json:"sent_to"`
	Recipients int `json:"recipients"`
}
