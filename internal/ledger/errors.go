package ledger

import "errors"

// Error kinds surfaced by the core. Callers match with errors.Is; context is
// added at the failure site with fmt.Errorf("%w: ...").
var (
	// ErrNotFound signals an unknown account, tag, transaction or recurrence id.
	ErrNotFound = errors.New("not found")

	// ErrInvalidArgument signals a missing required field, an end date before a
	// start date, a non-positive page size or an unrecognized enum label.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvariantViolation signals a materialized transaction whose value date
	// does not correspond to any occurrence of its claimed recurrence. It is
	// unreachable when materialization is used consistently.
	ErrInvariantViolation = errors.New("invariant violation")
)
