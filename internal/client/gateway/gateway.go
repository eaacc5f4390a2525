// Package gateway defines the storage gateway contract the client
// synchronizes through, and its transport implementations.
//
// The gateway is an exclusive key→value store shared by every client. It
// offers no compare-and-swap: each multi-step mutation performed on top of
// it is a read-modify-write race and concurrent writers can lose updates.
// The shared flag is an opaque visibility hint passed through to the store.
package gateway

import "context"

// Gateway is the two-verb storage contract.
//
// Get returns the latest stored value and whether the key exists at all.
// Set overwrites unconditionally. Transport failures are reported as errors
// wrapping common.ErrStorageUnavailable.
type Gateway interface {
	Get(ctx context.Context, key string, shared bool) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, shared bool) error
}
