package session

import "errors"

// Sentinel kinds for session errors.
var (
	ErrNotFound = errors.New("session not found")
)
