package gateway

import "github.com/dmitrijs2005/schoolchat/internal/common"

// Key naming scheme. These patterns are shared with every deployed client;
// changing them orphans existing stored data.

// PresenceKey holds the global set of online user names.
const PresenceKey = "online-users"

// UserKey addresses the account record of a user.
func UserKey(name string) string {
	return "user:" + common.NormalizeName(name)
}

// MessagesKey addresses the ordered message log of a channel.
func MessagesKey(channelID string) string {
	return "messages:" + channelID
}

// FriendsKey addresses a user's confirmed friend list.
func FriendsKey(name string) string {
	return "friends:" + common.NormalizeName(name)
}

// FriendRequestsKey addresses a user's sent/received request box.
func FriendRequestsKey(name string) string {
	return "friend-requests:" + common.NormalizeName(name)
}

// DMsKey addresses a user's direct-message conversation index.
func DMsKey(name string) string {
	return "dms:" + common.NormalizeName(name)
}
