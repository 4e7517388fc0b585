// Package store defines the durable config-store boundary: routing records
// and append-only audit logs. Two drivers exist — rest (the production
// Supabase-style HTTP backend) and local (SQLite, for development and
// single-box deployments). All calls are synchronous at this layer;
// fire-and-forget semantics live in the callers.
package store

import (
	"context"
	"errors"

	"github.com/confessly/confession-relay/internal/domain"
)

// ErrNotFound is returned by read operations when no record matches.
var ErrNotFound = errors.New("store: record not found")

// Store persists routing configuration and audit log entries.
type Store interface {
	// FetchAll returns every persisted routing record.
	FetchAll(ctx context.Context) ([]domain.RoutingEntry, error)

	// FetchLatest returns the most recently created routing record, or
	// ErrNotFound when none exist. Cheap store-connectivity probe.
	FetchLatest(ctx context.Context) (domain.RoutingEntry, error)

	// Upsert writes a routing record, replacing any record for the same
	// community.
	Upsert(ctx context.Context, entry domain.RoutingEntry) error

	// Delete removes the routing record for a community. Deleting an
	// absent community is not an error.
	Delete(ctx context.Context, communityID string) error

	// AppendLog appends an audit log entry.
	AppendLog(ctx context.Context, entry domain.LogEntry) error
}
