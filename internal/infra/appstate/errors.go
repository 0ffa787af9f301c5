package appstate

import "errors"

var (
	// ErrInvalidStateTransition is returned when the lifecycle does not move forward
	// Init -> Starting -> Running.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrAlreadyTerminated is returned by every mutation after Shutdown completed.
	ErrAlreadyTerminated = errors.New("application already terminated")
)
