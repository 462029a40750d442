package models

import "errors"

// Sentinel errors for the failure modes callers are expected to branch on.
// Handlers map these to HTTP status codes; everything else is a 500.
var (
	// ErrNotFound means the referenced learner or session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrOutOfRange means a question index is past the session's question list.
	ErrOutOfRange = errors.New("question index out of range")

	// ErrSessionNotActive means the session has already reached a terminal state.
	ErrSessionNotActive = errors.New("session is not in progress")

	// ErrAlreadyAnswered means the question already has a recorded answer.
	ErrAlreadyAnswered = errors.New("question already answered")
)

type ErrorResponse struct {
	Error string `json:"error"`
}
