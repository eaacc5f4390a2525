package models

import (
	"sort"
	"strings"
)

// Conversation is one entry of the per-user DM index under "dms:<user>".
// Messages of a conversation flow through the regular channel log under
// the derived channel id.
type Conversation struct {
	With    string `json:"with"`
	Channel string `json:"channel"`
}

// DMChannelID derives the shared channel id for a direct conversation
// between two users. Both parties derive the same id regardless of who
// starts the conversation.
func DMChannelID(a, b string) string {
	names := []string{
		strings.ToLower(strings.TrimSpace(a)),
		strings.ToLower(strings.TrimSpace(b)),
	}
	sort.Strings(names)
	return "dm:" + names[0] + ":" + names[1]
}
