// Package services implements the client-side synchronization layer:
// account directory, presence tracker, channel message log, friend
// relationship protocol, DM index and the sync scheduler driving them.
//
// All services share one storage gateway handle per client instance.
// The gateway offers no compare-and-swap, so every multi-step mutation
// here is a read-modify-write race: two clients updating the same key
// concurrently can lose one side's update. That is a property of the
// storage substrate and is preserved, not patched over.
//
// Writes that happen after local state has already advanced (message
// persistence, presence updates, the second half of two-party friend
// mutations) are best-effort: their failure is logged and reported via
// Outcome but never rolled back.
package services
