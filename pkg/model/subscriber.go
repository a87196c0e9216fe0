package model

import (
	"database/sql"
	"time"
)

// Subscriber represents a lead captured through the mini-app.
// UserID is the external messaging identity and is unique: a repeated
// submission from the same identity updates the existing row.
type Subscriber struct {
	ID            int64          `db:"id" json:"id"`
	UserID        int64          `db:"user_id" json:"user_id"`
	FirstName     string         `db:"first_name" json:"first_name"`
	Username      string         `db:"username" json:"username"`
	Comment       string         `db:"comment" json:"comment"`
	RegionID      sql.NullInt64  `db:"region_id" json:"region_id"`
	RegionName    sql.NullString `db:"region_name" json:"region_name"`
	SubscribeDate time.Time      `db:"subscribe_date" json:"subscribe_date"`
}

// SubscribeRequest is the public intake payload. RegionID is deliberately
// untyped: the mini-app may send it as a number, a numeric string, or not
// at all, and anything malformed is treated as absent rather than rejected.
type SubscribeRequest struct {
	UserID    int64       `json:"user_id"`
	FirstName string      `json:"first_name"`
	Username  string      `json:"username"`
	Comment   string      `json:"comment"`
	RegionID  interface{} `json:"region_id"`
}
