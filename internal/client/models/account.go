// Package models defines the record shapes stored in the gateway and the
// in-memory session state of the client. JSON field names must stay stable:
// they are the wire format shared with every other client.
package models

import "time"

// Account is the profile stored under "user:<normalized name>".
// Created once at sign-up and never updated afterwards.
type Account struct {
	Name      string    `json:"name"`
	Grade     string    `json:"grade"`
	Teacher   string    `json:"teacher"`
	School    string    `json:"school"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"createdAt"`
}
