// Package bot dispatches normalized platform events: it classifies each
// event, invokes the matching service, and produces the user-facing reply.
// This file holds every reply string in one place so wording changes never
// touch the dispatch logic.
package bot

// Replies sent back to users.
const (
	ReplyGreeting = "🤫\n**Send any message to me starting with the following pattern:**\n" +
		"- `!c <Write your first confession>` (e.g., `!c Issay sub pta ha`)"

	ReplyChannelConfigured = "This channel has been set as the confession channel."
	ReplyConfigureInServer = "This command can only be used in a server."
	ReplyChannelRemoved    = "The confession channel has been removed."

	ReplyConfessionSent  = "Your confession has been sent anonymously!"
	ReplyEmptyConfession = "Your confession cannot be empty."
	ReplySendViaDM       = "Please send confessions as a DM to the bot."

	ReplyNoChannelConfigured = "No confession channel has been configured yet."
	ReplyNoChannelForServer  = "No confession channel has been configured for this server yet."
	ReplyAmbiguousChannel    = "Multiple servers have confession channels configured. " +
		"Use `/confess` inside the server you mean."

	ReplyInvalidChannelID = "Invalid channel ID."

	ReplyInvalidCommand = "Invalid command. Please use one of the following patterns:\n" +
		"- `!hi`\n" +
		"- `!configure`\n" +
		"- `!c <your confession>` (in DM)"

	ReplyGenericError = "An error occurred while processing your request. Please try again later."
)
