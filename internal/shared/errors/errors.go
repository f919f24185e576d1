package errors

import "errors"

// Domain errors
var (
	// Session errors
	ErrSessionNotFound = errors.New("no active audit session found")
	ErrSessionCorrupt  = errors.New("session document is corrupt")

	// Checkpoint errors
	ErrCounterCorrupt    = errors.New("checkpoint counter file is corrupt")
	ErrEmptyCheckpointID = errors.New("checkpoint ID cannot be empty")

	// Registry errors
	ErrUnknownPage   = errors.New("unknown page key")
	ErrEmptyRegistry = errors.New("page registry is empty")
	ErrInvalidPage   = errors.New("invalid page descriptor")

	// Target errors
	ErrServerUnreachable = errors.New("audit target is not reachable")

	// Repository errors
	ErrInvalidData = errors.New("invalid data")
)
