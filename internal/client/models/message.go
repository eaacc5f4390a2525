package models

import "time"

// GroupGap is the silence after which a consecutive message from the same
// author still starts a new visual group.
const GroupGap = 5 * time.Minute

// Message is one entry of a channel's append-only log, stored as an ordered
// JSON array under "messages:<channel id>". ID is wall-clock milliseconds at
// creation and serves as a render key only; two clients can race and produce
// out-of-order or equal IDs. Order is defined by position in the stored array.
type Message struct {
	ID        int64     `json:"id"`
	Author    string    `json:"user"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Channel   string    `json:"channel"`
}

// StartsGroup reports whether msg opens a new message group (author/time
// header shown): it is the first message, the author changed, or more than
// GroupGap passed since the previous message.
func StartsGroup(prev *Message, msg Message) bool {
	if prev == nil {
		return true
	}
	if prev.Author != msg.Author {
		return true
	}
	return msg.Timestamp.Sub(prev.Timestamp) > GroupGap
}

// StartsNewDay reports whether msg needs a day marker: it is the first
// message or its calendar date differs from the previous message's,
// both evaluated in loc.
func StartsNewDay(prev *Message, msg Message, loc *time.Location) bool {
	if prev == nil {
		return true
	}
	py, pm, pd := prev.Timestamp.In(loc).Date()
	y, m, d := msg.Timestamp.In(loc).Date()
	return py != y || pm != m || pd != d
}
