package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/confessly/confession-relay/internal/classify"
)

// commandSchema declares the slash commands once; names must match what
// the classifier recognizes.
func commandSchema() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        classify.SlashConfess,
			Description: "Send an anonymous confession",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "text",
					Description: "Your confession",
					Required:    true,
				},
			},
		},
		{
			Name:        classify.SlashConfigure,
			Description: "Set this channel as the confession channel",
		},
		{
			Name:        classify.SlashRemove,
			Description: "Remove the configured confession channel",
		},
	}
}

// RegisterCommands declares the slash-command schema globally. Must be
// called after Open so the application id is known.
func (b *Bot) RegisterCommands() error {
	app := b.session.State.User
	if app == nil {
		return fmt.Errorf("register commands: session not ready")
	}
	_, err := b.session.ApplicationCommandBulkOverwrite(app.ID, "", commandSchema())
	if err != nil {
		return fmt.Errorf("register commands: %w", err)
	}
	b.log.Info().Msg("slash commands registered")
	return nil
}
