package usecases

import "errors"

// Errors surfaced to the command layer. Each maps to a user-facing reply.
var (
	// ErrInvalidURL is returned when the enqueue input is not a usable track URL.
	ErrInvalidURL = errors.New("invalid track URL")

	// ErrJoinFailed is returned when the voice channel could not be joined.
	// The queue creation is aborted; the user may re-issue the command.
	ErrJoinFailed = errors.New("failed to join voice channel")

	// ErrNoActiveQueue is returned by Stop/Leave when nothing is registered
	// for the guild. Informational, not a failure.
	ErrNoActiveQueue = errors.New("no active queue for this guild")
)
