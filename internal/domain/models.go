// Package domain defines the core data types of the confession relay:
// routing records persisted in the config store, transient confessions,
// audit log entries, and the closed intent/source enumerations produced
// by event classification.
package domain

import "time"

// RoutingEntry maps a community (guild) to the destination channel where
// anonymized confessions are posted. At most one destination exists per
// community at any time; a later write overwrites an earlier one.
//
// The struct doubles as the persistence model for both store drivers: the
// JSON tags match the REST backend's column names (server_id/channel_id),
// and the gorm tags drive the optional SQLite driver.
type RoutingEntry struct {
	CommunityID   string    `json:"server_id"             gorm:"column:server_id;primaryKey;type:varchar(32)"`
	DestinationID string    `json:"channel_id"            gorm:"column:channel_id;type:varchar(32);not null"`
	CreatedAt     time.Time `json:"created_at,omitempty"  gorm:"column:created_at;autoCreateTime"`
}

// TableName returns the database table name for RoutingEntry.
func (RoutingEntry) TableName() string { return "discord_server" }

// Confession is a user submission on its way to anonymized redistribution.
// It is never persisted; only the derived LogEntry is. AuthorID exists for
// audit logging only and must never reach the destination channel.
type Confession struct {
	AuthorID    string
	Body        string
	SubmittedAt time.Time
}

// Log levels accepted by the audit log backend.
const (
	LogLevelInfo  = "INFO"
	LogLevelError = "ERROR"
)

// LogEntry is one append-only audit record. Message is the composite
// "{author}: {body}" string; Timestamp is preformatted because the log
// backend stores it as text.
type LogEntry struct {
	Message   string `json:"message"             gorm:"column:message;type:text;not null"`
	Level     string `json:"level"               gorm:"column:level;type:varchar(8);not null"`
	Timestamp string `json:"timestamp,omitempty" gorm:"column:timestamp;type:varchar(32)"`
}

// TableName returns the database table name for LogEntry.
func (LogEntry) TableName() string { return "logs" }

// LogTimestampLayout is the wall-clock format used in audit log records.
const LogTimestampLayout = "2006-01-02 15:04:05"

// NewLogEntry builds an audit record for a routed confession.
func NewLogEntry(message, level string, at time.Time) LogEntry {
	return LogEntry{
		Message:   message,
		Level:     level,
		Timestamp: at.Format(LogTimestampLayout),
	}
}
