package models

import "time"

// RelationshipTag classifies a friend connection. The set is closed.
type RelationshipTag string

const (
	TagClassmate          RelationshipTag = "classmate"
	TagSchoolRelationship RelationshipTag = "school-relationship"
	TagSchoolFriend       RelationshipTag = "school-friend"
	TagOther              RelationshipTag = "other"
)

// ValidTag reports whether t belongs to the closed tag set.
func ValidTag(t RelationshipTag) bool {
	switch t {
	case TagClassmate, TagSchoolRelationship, TagSchoolFriend, TagOther:
		return true
	}
	return false
}

// FriendRecord is one confirmed friendship entry under "friends:<user>".
// An accepted request produces one record in each party's list.
type FriendRecord struct {
	Name    string          `json:"name"`
	Tag     RelationshipTag `json:"relationship"`
	AddedAt time.Time       `json:"addedAt"`
}

// FriendRequest is one pending request entry. The same logical request is
// stored twice: in the sender's Sent list and the recipient's Received list,
// written separately and without atomicity.
type FriendRequest struct {
	Name   string          `json:"name"`
	Tag    RelationshipTag `json:"relationship"`
	SentAt time.Time       `json:"sentAt"`
}

// FriendRequestBox is the record stored under "friend-requests:<user>".
type FriendRequestBox struct {
	Sent     []FriendRequest `json:"sent"`
	Received []FriendRequest `json:"received"`
}
