// Package discord adapts the discordgo client to the platform boundary:
// it normalizes inbound gateway events, filters automated authors before
// anything downstream runs, and implements the outbound Gateway interface.
package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"

	"github.com/confessly/confession-relay/internal/platform"
)

// Dispatcher is the application side of the adapter; the bot.Handler
// satisfies it.
type Dispatcher interface {
	Handle(ev platform.Event) (reply string)
}

// Bot owns the discordgo session and routes its events through the
// dispatcher. It implements platform.Gateway.
type Bot struct {
	session    *discordgo.Session
	dispatcher Dispatcher
	log        zerolog.Logger
}

// New creates the session with the gateway intents the relay needs. The
// session is not opened yet; Bind a dispatcher and call Open. The split
// exists because the dispatcher's services need the Bot as their gateway.
func New(token string, log zerolog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsMessageContent

	b := &Bot{
		session: session,
		log:     log.With().Str("component", "discord").Logger(),
	}
	session.AddHandler(b.onMessageCreate)
	session.AddHandler(b.onInteractionCreate)
	return b, nil
}

// Bind attaches the event dispatcher. Must happen before Open.
func (b *Bot) Bind(d Dispatcher) {
	b.dispatcher = d
}

// Open connects to the gateway.
func (b *Bot) Open() error {
	if b.dispatcher == nil {
		return fmt.Errorf("open discord gateway: no dispatcher bound")
	}
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}
	return nil
}

// Close shuts the gateway connection down.
func (b *Bot) Close() error {
	return b.session.Close()
}

// SendMessage posts plain text to a channel, best-effort.
func (b *Bot) SendMessage(destinationID, text string) {
	if _, err := b.session.ChannelMessageSend(destinationID, text); err != nil {
		b.log.Error().Err(err).Str("channel", destinationID).Msg("failed to send message")
	}
}

// SendArtifact posts the anonymized embed to a channel, best-effort.
func (b *Bot) SendArtifact(destinationID string, a platform.Artifact) {
	embed := &discordgo.MessageEmbed{
		Title:       a.Title,
		Description: a.Body,
		Color:       a.Color,
	}
	if _, err := b.session.ChannelMessageSendEmbed(destinationID, embed); err != nil {
		b.log.Error().Err(err).Str("channel", destinationID).Msg("failed to send embed")
	}
}

// ResolveDestination looks a guild text channel up by id. The state cache
// is consulted first, then the REST API.
func (b *Bot) ResolveDestination(id string) (platform.Destination, bool) {
	ch, err := b.session.State.Channel(id)
	if err != nil {
		ch, err = b.session.Channel(id)
		if err != nil {
			return platform.Destination{}, false
		}
	}
	if ch.Type != discordgo.ChannelTypeGuildText {
		return platform.Destination{}, false
	}
	return platform.Destination{
		ID:          ch.ID,
		CommunityID: ch.GuildID,
		Name:        ch.Name,
	}, true
}

// onMessageCreate normalizes a message event and dispatches it. Messages
// authored by bots (including this one) are dropped here — the classifier
// relies on that precondition.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot {
		return
	}

	ev := normalizeMessage(m)
	if reply := b.dispatcher.Handle(ev); reply != "" {
		b.SendMessage(m.ChannelID, reply)
	}
}

// onInteractionCreate normalizes a slash-command invocation and responds
// ephemerally with the dispatcher's reply.
func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ev := normalizeInteraction(i)
	reply := b.dispatcher.Handle(ev)
	if reply == "" {
		reply = ReplyFallback
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.log.Error().Err(err).Str("command", ev.Command).Msg("failed to respond to interaction")
	}
}

// ReplyFallback is used when a slash command produced no reply; an
// interaction must always be acknowledged.
const ReplyFallback = "Done."

// normalizeMessage converts a discordgo message event into the platform
// event shape.
func normalizeMessage(m *discordgo.MessageCreate) platform.Event {
	source := platform.SourceCommunity
	if m.GuildID == "" {
		source = platform.SourcePrivate
	}
	return platform.Event{
		Kind:                platform.EventMessage,
		Source:              source,
		Text:                m.Content,
		CommunityID:         m.GuildID,
		SourceDestinationID: m.ChannelID,
		AuthorID:            m.Author.String(),
	}
}

// normalizeInteraction converts a slash-command invocation. The first
// string option, if any, becomes the command argument.
func normalizeInteraction(i *discordgo.InteractionCreate) platform.Event {
	data := i.ApplicationCommandData()

	arg := ""
	for _, opt := range data.Options {
		if opt.Type == discordgo.ApplicationCommandOptionString {
			arg = opt.StringValue()
			break
		}
	}

	source := platform.SourceCommunity
	if i.GuildID == "" {
		source = platform.SourcePrivate
	}

	author := ""
	switch {
	case i.Member != nil && i.Member.User != nil:
		author = i.Member.User.String()
	case i.User != nil:
		author = i.User.String()
	}

	return platform.Event{
		Kind:                platform.EventCommand,
		Source:              source,
		Command:             data.Name,
		CommandArg:          arg,
		CommunityID:         i.GuildID,
		SourceDestinationID: i.ChannelID,
		AuthorID:            author,
	}
}
