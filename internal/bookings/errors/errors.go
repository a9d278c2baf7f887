package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrDuplicate is returned when a user reuses an idempotency key.
	ErrDuplicate = errors.New("booking with this idempotency key already exists")

	// ErrStatusChanged means the compare-and-swap on status found a different value.
	ErrStatusChanged = errors.New("booking status changed concurrently")

	ErrLockHeld = errors.New("booking lock is held by another request")
)
