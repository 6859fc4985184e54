package services

import "errors"

// Sentinel errors surfaced to callers. Fact-search and judge-parse failures
// are absorbed with fallback values and never appear here.
var (
	// ErrSessionNotFound is returned by the registry for unknown session ids.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionNotStarted is returned when Submit or End is called on an
	// idle session.
	ErrSessionNotStarted = errors.New("session not started")

	// ErrSessionAlreadyStarted is returned when Start is called twice.
	ErrSessionAlreadyStarted = errors.New("session already started")

	// ErrSessionEnded is returned when Submit is called on an ended session.
	ErrSessionEnded = errors.New("session already ended")
)
