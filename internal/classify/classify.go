// Package classify turns normalized platform events into intents. It is a
// pure function of the event: no registry lookups, no validation of
// payload contents, no side effects. Whether a confession body is empty,
// or a configure arrived from the right place, is decided downstream.
package classify

import (
	"strings"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/platform"
)

// Text command prefixes understood by the bot.
const (
	greetingCommand  = "!hi"
	configurePrefix  = "!configure"
	confessPrefix    = "!c"
	setChannelPrefix = "!channel"
)

// Slash-command names registered with the platform.
const (
	SlashConfess   = "confess"
	SlashConfigure = "configure"
	SlashRemove    = "remove"
)

// Classify maps an inbound event to its intent.
//
// Structured commands are matched by declared name. Free text is matched
// by prefix, with guild channels and DMs carrying different command sets:
// a guild "!c" is a confession attempted in the wrong context, and guild
// text that matches nothing is deliberately Unrecognized (the bot stays
// silent in public channels it was not addressed in).
func Classify(ev platform.Event) domain.Intent {
	if ev.Kind == platform.EventCommand {
		return classifyCommand(ev)
	}

	text := strings.TrimSpace(ev.Text)
	switch ev.Source {
	case platform.SourceCommunity:
		return classifyCommunityText(text)
	case platform.SourcePrivate:
		return classifyPrivateText(text)
	default:
		return domain.Intent{Kind: domain.IntentUnrecognized}
	}
}

func classifyCommand(ev platform.Event) domain.Intent {
	switch ev.Command {
	case SlashConfess:
		return domain.Intent{Kind: domain.IntentSubmit, Body: strings.TrimSpace(ev.CommandArg)}
	case SlashConfigure:
		return domain.Intent{Kind: domain.IntentConfigure}
	case SlashRemove:
		return domain.Intent{Kind: domain.IntentRemove}
	default:
		return domain.Intent{Kind: domain.IntentUnrecognized}
	}
}

func classifyCommunityText(text string) domain.Intent {
	switch {
	case strings.EqualFold(text, greetingCommand):
		return domain.Intent{Kind: domain.IntentGreeting}
	case strings.HasPrefix(text, configurePrefix):
		return domain.Intent{Kind: domain.IntentConfigure}
	case strings.HasPrefix(text, confessPrefix):
		return domain.Intent{Kind: domain.IntentWrongContext}
	default:
		return domain.Intent{Kind: domain.IntentUnrecognized}
	}
}

func classifyPrivateText(text string) domain.Intent {
	switch {
	// "!channel" before "!c": both share the first two characters.
	case hasCommand(text, setChannelPrefix):
		return domain.Intent{
			Kind:  domain.IntentSetByID,
			RawID: strings.TrimSpace(strings.TrimPrefix(text, setChannelPrefix)),
		}
	case hasCommand(text, confessPrefix):
		return domain.Intent{
			Kind: domain.IntentSubmit,
			Body: strings.TrimSpace(strings.TrimPrefix(text, confessPrefix)),
		}
	default:
		return domain.Intent{Kind: domain.IntentUnrecognized}
	}
}

// hasCommand reports whether text is exactly cmd or starts with "cmd ".
// A bare command with no argument still matches; the missing payload is
// surfaced by pipeline validation, not here.
func hasCommand(text, cmd string) bool {
	return text == cmd || strings.HasPrefix(text, cmd+" ")
}
