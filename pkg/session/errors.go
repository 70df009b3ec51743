package session

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrInvalidInput is returned when a session is created from an empty
	// document collection.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoPendingPreview is returned by ApplyLastPreviewed when no preview
	// succeeded beforehand.
	ErrNoPendingPreview = errors.New("no pending preview")

	// ErrMissingConfiguration is returned when an operation needs a pattern
	// that was never supplied, neither up front nor at call time.
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrReplayMismatch is returned by VerifyHistory when replaying the
	// recorded history diverges from the live latest state. Purely
	// diagnostic; callers may choose to ignore it.
	ErrReplayMismatch = errors.New("replay mismatch")
)
