package group

import "errors"

// Sentinel errors surfaced to the calling client. The initiating commit
// is always closed before any of these propagates.
var (
	// ErrUnknownMember is returned by Send, Execute and Schedule when the
	// named member-id is not present in the directory. State is not
	// mutated.
	ErrUnknownMember = errors.New("group: unknown member")

	// ErrScheduleRejected is returned when the Executor refuses a
	// delayed task. Same caller-visible semantics as ErrUnknownMember.
	ErrScheduleRejected = errors.New("group: executor rejected scheduled task")

	// ErrInternalFailure wraps any unexpected condition raised by a
	// mutating handler after its commit has already been closed.
	ErrInternalFailure = errors.New("group: internal failure")
)
