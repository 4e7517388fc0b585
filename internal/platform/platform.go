// Package platform defines the boundary to the chat platform: the
// normalized inbound event shape handed to the dispatcher, the destination
// handle, and the Gateway interface the rest of the application talks to.
// The discord subpackage provides the production implementation.
package platform

import "github.com/confessly/confession-relay/internal/domain"

// EventKind distinguishes free-text messages from structured (slash)
// commands.
type EventKind int

const (
	// EventMessage is a plain channel or DM message.
	EventMessage EventKind = iota
	// EventCommand is a structured slash-command invocation.
	EventCommand
)

// Source tells which side of the platform an event came from. It aliases
// the domain's source kind so the adapter and the classifier share one
// vocabulary.
type Source = domain.SourceKind

const (
	SourceCommunity = domain.SourceCommunity
	SourcePrivate   = domain.SourcePrivate
)

// Event is the normalized inbound event. The gateway adapter fills it from
// raw platform payloads and filters automated authors before it reaches
// the dispatcher; nothing downstream sees bot-authored traffic.
type Event struct {
	Kind   EventKind
	Source Source

	// Text is the raw message content (EventMessage only).
	Text string

	// Command is the declared command name, CommandArg its sole string
	// option (EventCommand only).
	Command    string
	CommandArg string

	// CommunityID is the guild the event arrived from, empty for DMs.
	CommunityID string

	// SourceDestinationID is the channel the event arrived on. It is both
	// the reply target and, for configure, the destination being set.
	SourceDestinationID string

	// AuthorID identifies the sender. Used for audit logging only.
	AuthorID string
}

// Artifact is the anonymized embed posted to a destination channel.
type Artifact struct {
	Title string
	Body  string
	Color int
}

// Destination is a resolved channel handle.
type Destination struct {
	ID          string
	CommunityID string
	Name        string
}

// Gateway is the outbound surface of the chat platform consumed by the
// services. Sends are queued by the adapter and best-effort; no delivery
// acknowledgement is consumed anywhere.
type Gateway interface {
	// SendMessage posts plain text to a channel.
	SendMessage(destinationID, text string)

	// SendArtifact posts an anonymized embed to a channel.
	SendArtifact(destinationID string, a Artifact)

	// ResolveDestination looks a channel up by raw identifier. The second
	// return is false when the channel does not exist or is not visible.
	ResolveDestination(id string) (Destination, bool)
}
