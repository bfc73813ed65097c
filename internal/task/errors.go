package task

import (
	"errors"
)

// Terminal pipeline errors. All of them are caught at the top of the
// background operation and converted to log entries; nothing propagates
// back to the submitter, whose acknowledgment was already sent.
var (
	// ErrPrerequisiteMissing indicates a round-2 task whose task ID has no
	// round-1 record. There is no repository to extend, so the round is
	// terminal and no notification is attempted.
	ErrPrerequisiteMissing = errors.New("no round-1 record for task")

	// ErrDeadlineExceeded indicates the stage pipeline outran its ceiling.
	// Remaining stages are abandoned and no notification is sent; there is
	// no value in notifying late.
	ErrDeadlineExceeded = errors.New("pipeline exceeded stage ceiling")
)
