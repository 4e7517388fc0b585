package bot

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/classify"
	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/metrics"
	"github.com/confessly/confession-relay/internal/platform"
	"github.com/confessly/confession-relay/internal/services"
)

// Handler is the event dispatch boundary. Events arrive concurrently from
// the gateway adapter; every shared structure behind the services is
// goroutine-safe, and a panic in one event never reaches another.
type Handler struct {
	confessions *services.ConfessionService
	config      *services.ConfigService
	log         zerolog.Logger
}

// NewHandler wires the dispatcher.
func NewHandler(confessions *services.ConfessionService, config *services.ConfigService, log zerolog.Logger) *Handler {
	return &Handler{
		confessions: confessions,
		config:      config,
		log:         log.With().Str("component", "dispatch").Logger(),
	}
}

// Handle processes one inbound event and returns the reply to show the
// author. An empty reply means stay silent (unaddressed guild chatter).
// The adapter decides how the reply travels back — channel message for
// free text, interaction response for slash commands.
func (h *Handler) Handle(ev platform.Event) (reply string) {
	eventID := uuid.NewString()
	log := h.log.With().
		Str("event_id", eventID).
		Stringer("source", ev.Source).
		Logger()

	// One failing event must not take down the dispatch loop.
	defer func() {
		if r := recover(); r != nil {
			metrics.DispatchPanics.Inc()
			log.Error().Interface("panic", r).Msg("recovered from event handler panic")
			reply = ReplyGenericError
		}
	}()

	intent := classify.Classify(ev)
	metrics.EventsTotal.WithLabelValues(intent.Kind.String()).Inc()
	log.Debug().Stringer("intent", intent.Kind).Msg("event classified")

	switch intent.Kind {
	case domain.IntentGreeting:
		return ReplyGreeting

	case domain.IntentConfigure:
		return h.handleConfigure(ev)

	case domain.IntentRemove:
		h.config.Remove(ev.CommunityID)
		return ReplyChannelRemoved

	case domain.IntentSubmit:
		return h.handleSubmit(ev, intent.Body, log)

	case domain.IntentSetByID:
		return h.handleSetByID(intent.RawID)

	case domain.IntentWrongContext:
		return ReplySendViaDM

	default:
		// Guild chatter not addressed to the bot stays unanswered; an
		// unrecognized DM gets usage help.
		if ev.Source == platform.SourcePrivate {
			return ReplyInvalidCommand
		}
		return ""
	}
}

func (h *Handler) handleConfigure(ev platform.Event) string {
	if err := h.config.Configure(ev.CommunityID, ev.SourceDestinationID); err != nil {
		if errors.Is(err, services.ErrNotInCommunity) {
			return ReplyConfigureInServer
		}
		return ReplyGenericError
	}
	return ReplyChannelConfigured
}

func (h *Handler) handleSubmit(ev platform.Event, body string, log zerolog.Logger) string {
	err := h.confessions.Submit(ev.CommunityID, domain.Confession{
		AuthorID: ev.AuthorID,
		Body:     body,
	})
	switch {
	case err == nil:
		return ReplyConfessionSent
	case errors.Is(err, services.ErrEmptyConfession):
		return ReplyEmptyConfession
	case errors.Is(err, services.ErrNoDestination):
		return ReplyNoChannelConfigured
	case errors.Is(err, services.ErrCommunityNotConfigured):
		return ReplyNoChannelForServer
	case errors.Is(err, services.ErrAmbiguousDestination):
		return ReplyAmbiguousChannel
	default:
		log.Error().Err(err).Msg("confession submission failed")
		return ReplyGenericError
	}
}

func (h *Handler) handleSetByID(rawID string) string {
	if _, err := h.config.SetByID(rawID); err != nil {
		return ReplyInvalidChannelID
	}
	return ReplyChannelConfigured
}
