package ledger

import "errors"

var (
	// ErrNotFound is returned when a remove or restore target does not
	// exist in the list it was looked up in. The ledger is left unchanged.
	ErrNotFound = errors.New("item not found")

	// ErrUnknownCategory is returned for category names outside the
	// configured set.
	ErrUnknownCategory = errors.New("unknown category")
)
