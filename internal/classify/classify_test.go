package classify

import (
	"testing"

	"github.com/confessly/confession-relay/internal/domain"
	"github.com/confessly/confession-relay/internal/platform"
)

func msg(source platform.Source, text string) platform.Event {
	return platform.Event{Kind: platform.EventMessage, Source: source, Text: text}
}

func cmd(name, arg string) platform.Event {
	return platform.Event{Kind: platform.EventCommand, Command: name, CommandArg: arg}
}

func TestClassify_Commands(t *testing.T) {
	cases := []struct {
		name string
		ev   platform.Event
		want domain.Intent
	}{
		{"confess", cmd("confess", "something happened"), domain.Intent{Kind: domain.IntentSubmit, Body: "something happened"}},
		{"confess trims arg", cmd("confess", "  padded  "), domain.Intent{Kind: domain.IntentSubmit, Body: "padded"}},
		{"configure", cmd("configure", ""), domain.Intent{Kind: domain.IntentConfigure}},
		{"remove", cmd("remove", ""), domain.Intent{Kind: domain.IntentRemove}},
		{"unknown command", cmd("dance", ""), domain.Intent{Kind: domain.IntentUnrecognized}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.ev); got != tc.want {
				t.Errorf("Classify(%+v) = %+v; want %+v", tc.ev, got, tc.want)
			}
		})
	}
}

func TestClassify_CommunityText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Intent
	}{
		{"greeting", "!hi", domain.Intent{Kind: domain.IntentGreeting}},
		{"greeting case-insensitive", "!HI", domain.Intent{Kind: domain.IntentGreeting}},
		{"configure", "!configure", domain.Intent{Kind: domain.IntentConfigure}},
		{"configure with trailing text", "!configure please", domain.Intent{Kind: domain.IntentConfigure}},
		{"confession in guild is wrong context", "!c secret", domain.Intent{Kind: domain.IntentWrongContext}},
		{"plain chatter ignored", "hello everyone", domain.Intent{Kind: domain.IntentUnrecognized}},
		{"empty", "", domain.Intent{Kind: domain.IntentUnrecognized}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(msg(platform.SourceCommunity, tc.text)); got != tc.want {
				t.Errorf("Classify(%q) = %+v; want %+v", tc.text, got, tc.want)
			}
		})
	}
}

func TestClassify_PrivateText(t *testing.T) {
	cases := []struct {
		name string
		text string
		want domain.Intent
	}{
		{"confession", "!c I did it", domain.Intent{Kind: domain.IntentSubmit, Body: "I did it"}},
		{"confession body trimmed", "!c    spaced   ", domain.Intent{Kind: domain.IntentSubmit, Body: "spaced"}},
		{"set channel", "!channel 12345", domain.Intent{Kind: domain.IntentSetByID, RawID: "12345"}},
		{"bare set channel", "!channel", domain.Intent{Kind: domain.IntentSetByID, RawID: ""}},
		{"anything else", "why are you ignoring me", domain.Intent{Kind: domain.IntentUnrecognized}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(msg(platform.SourcePrivate, tc.text)); got != tc.want {
				t.Errorf("Classify(%q) = %+v; want %+v", tc.text, got, tc.want)
			}
		})
	}
}

// An empty body after the prefix is still a confession: rejecting it is the
// pipeline's job, not the classifier's.
func TestClassify_EmptyConfessionStaysSubmit(t *testing.T) {
	for _, text := range []string{"!c", "!c "} {
		got := Classify(msg(platform.SourcePrivate, text))
		if got.Kind != domain.IntentSubmit || got.Body != "" {
			t.Errorf("Classify(%q) = %+v; want submit with empty body", text, got)
		}
	}
}

// A guild "!configure" with no community metadata still classifies as
// configure; the in-community requirement is enforced downstream.
func TestClassify_ConfigureWithoutCommunityMetadata(t *testing.T) {
	ev := platform.Event{Kind: platform.EventMessage, Source: platform.SourceCommunity, Text: "!configure"}
	if got := Classify(ev); got.Kind != domain.IntentConfigure {
		t.Errorf("Classify = %+v; want configure", got)
	}
}
