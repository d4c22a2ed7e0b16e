package repository

import "errors"

var (
	// Business-rule failures; each aborts the enclosing transaction.
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")

	// Not a failure: the consumer observed an event identity that is already
	// recorded in the processed-event ledger and must not reapply it.
	ErrDuplicateEvent = errors.New("event already processed")

	ErrIdempotencyKeyConflict = errors.New("idempotency key conflicts with request")
	ErrInvalidCursor          = errors.New("invalid cursor")
)
