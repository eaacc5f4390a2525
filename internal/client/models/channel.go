package models

import "strings"

// Channel describes a message channel. Channels created at runtime live only
// in the creating client's in-memory list; there is no shared channel registry.
type Channel struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// DefaultChannels returns the built-in channel set every client starts with.
func DefaultChannels() []Channel {
	return []Channel{
		{ID: "general", Name: "general", Icon: "💬"},
		{ID: "homework-help", Name: "homework-help", Icon: "📚"},
		{ID: "off-topic", Name: "off-topic", Icon: "🎮"},
		{ID: "announcements", Name: "announcements", Icon: "📢"},
		{ID: "study-groups", Name: "study-groups", Icon: "👥"},
	}
}

// ChannelID derives a channel id from a user-entered name: lower-cased with
// whitespace runs collapsed into single dashes.
func ChannelID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}
