package domain

// SourceKind tells where an inbound event originated. It is part of the
// classifier input: the same text means different things in a guild
// channel and in a DM.
type SourceKind int

const (
	// SourceCommunity marks events from a guild (server) text channel.
	SourceCommunity SourceKind = iota
	// SourcePrivate marks events from a direct-message channel.
	SourcePrivate
)

// String implements fmt.Stringer for log output.
func (k SourceKind) String() string {
	switch k {
	case SourceCommunity:
		return "community"
	case SourcePrivate:
		return "private"
	default:
		return "unknown"
	}
}

// IntentKind enumerates the closed set of commands an inbound event can
// represent. Classification is exhaustive: every event maps to exactly
// one kind, with IntentUnrecognized as the catch-all.
type IntentKind int

const (
	// IntentUnrecognized covers everything that matches no command.
	IntentUnrecognized IntentKind = iota
	// IntentGreeting is the "!hi" help request in a guild channel.
	IntentGreeting
	// IntentConfigure sets the current channel as the confession destination.
	IntentConfigure
	// IntentRemove clears the confession destination for a community.
	IntentRemove
	// IntentSubmit carries a confession body for anonymized delivery.
	IntentSubmit
	// IntentSetByID sets a destination by raw channel identifier (DM only).
	IntentSetByID
	// IntentWrongContext is a confession attempted outside a DM.
	IntentWrongContext
)

// String implements fmt.Stringer for log output.
func (k IntentKind) String() string {
	switch k {
	case IntentGreeting:
		return "greeting"
	case IntentConfigure:
		return "configure"
	case IntentRemove:
		return "remove"
	case IntentSubmit:
		return "submit"
	case IntentSetByID:
		return "set_by_id"
	case IntentWrongContext:
		return "wrong_context"
	default:
		return "unrecognized"
	}
}

// Intent is the classifier output: the recognized command kind plus its
// payload. Body is set for IntentSubmit, RawID for IntentSetByID; both are
// already trimmed. Emptiness of a confession body is deliberately not
// checked here — that is pipeline validation, not classification.
type Intent struct {
	Kind  IntentKind
	Body  string
	RawID string
}
