package booking

import "errors"

// ErrScreeningStarted guards both booking and cancellation: once a
// screening's start time is no longer strictly in the future, seats can
// neither be taken nor given back.
var ErrScreeningStarted = errors.New("screening already started")

// ErrInvalidSeat is returned when the requested seat does not exist or
// does not belong to the screening's hall.  The schema has no
// cross-table constraint for this, so the workflow enforces it.
var ErrInvalidSeat = errors.New("seat does not belong to this screening")
