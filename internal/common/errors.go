// Package common defines shared constants and sentinel errors used across
// the schoolchat client layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Account directory errors.
	ErrAccountNotFound   = errors.New("account not found")
	ErrInvalidCredential = errors.New("invalid credential")
	ErrDuplicateAccount  = errors.New("account already exists")
	ErrSecretTooShort    = errors.New("password must be at least 6 characters")

	// Friend protocol errors.
	ErrUserNotFound       = errors.New("user not found")
	ErrSelfReference      = errors.New("cannot reference yourself")
	ErrAlreadyFriends     = errors.New("already friends")
	ErrRequestAlreadySent = errors.New("request already sent")

	// Any storage gateway failure.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
