// Package services implements the application core: the confession
// pipeline, the configuration commands, and the startup reconciler. This
// file centralizes service-level error values so callers can map them to
// user-facing replies consistently.
//
// Translation into reply strings happens at the dispatch layer
// (internal/bot); nothing here is shown to users verbatim.
package services

import "errors"

var (
	// ErrEmptyConfession is returned when a confession body is empty
	// after trimming whitespace.
	ErrEmptyConfession = errors.New("confession body is empty")

	// ErrNoDestination is returned when no community has a configured
	// destination at all.
	ErrNoDestination = errors.New("no destination configured")

	// ErrCommunityNotConfigured is returned when the named community has
	// no configured destination.
	ErrCommunityNotConfigured = errors.New("no destination configured for this community")

	// ErrAmbiguousDestination is returned when a DM confession names no
	// community and more than one is configured. The bot refuses to
	// guess between them.
	ErrAmbiguousDestination = errors.New("multiple destinations configured, target is ambiguous")

	// ErrNotInCommunity is returned when configure is attempted outside
	// a community channel.
	ErrNotInCommunity = errors.New("configure requires a community channel")

	// ErrInvalidDestination is returned when a raw destination id cannot
	// be parsed or resolved on the platform.
	ErrInvalidDestination = errors.New("invalid or unknown destination id")
)
