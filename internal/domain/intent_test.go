package domain

import "testing"

func TestSourceKindString(t *testing.T) {
	cases := map[SourceKind]string{
		SourceCommunity: "community",
		SourcePrivate:   "private",
		SourceKind(99):  "unknown",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("SourceKind(%d).String() = %q; want %q", kind, got, want)
		}
	}
}

func TestIntentKindString(t *testing.T) {
	cases := map[IntentKind]string{
		IntentUnrecognized: "unrecognized",
		IntentGreeting:     "greeting",
		IntentConfigure:    "configure",
		IntentRemove:       "remove",
		IntentSubmit:       "submit",
		IntentSetByID:      "set_by_id",
		IntentWrongContext: "wrong_context",
		IntentKind(99):     "unrecognized",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("IntentKind(%d).String() = %q; want %q", kind, got, want)
		}
	}
}
