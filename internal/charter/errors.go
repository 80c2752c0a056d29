// Package charter implements the reservation core for chartered vessels:
// rate estimation, availability checking, transition authorization and the
// reservation lifecycle state machine. It is a pure library; persistence is
// supplied by the caller through the store interfaces in ports.go. Handlers
// translate the sentinel errors below into HTTP responses.
package charter

import "errors"

// ErrInvalidRange is returned when an end date precedes its start date.
var ErrInvalidRange = errors.New("end date precedes start date")

// ErrInvalidRate is returned when a rate schedule or surcharge carries a
// negative amount.
var ErrInvalidRate = errors.New("negative rate component")

// ErrInvalidPersonnel is returned when a reservation is created with a
// non-positive personnel count.
var ErrInvalidPersonnel = errors.New("personnel count must be positive")

// ErrInvalidIdempotencyKey is returned when a client-supplied idempotency
// key is not a valid UUID.
var ErrInvalidIdempotencyKey = errors.New("idempotency key must be a UUID")

// ErrVesselNotFound is returned when a referenced vessel does not exist.
var ErrVesselNotFound = errors.New("vessel not found")

// ErrReservationNotFound is returned when a referenced reservation does not
// exist.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrInvalidTransition is returned when a requested status change is not one
// of the defined lifecycle edges, or the current status does not match the
// operation's precondition.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// ErrUnauthorized is returned when the acting identity's role or
// relationship to the vessel does not grant the requested transition.
var ErrUnauthorized = errors.New("actor not authorized for this transition")

// ErrAvailabilityConflict is returned when approving a reservation would
// create an overlapping CONFIRMED/ACTIVE pair on the same vessel.
var ErrAvailabilityConflict = errors.New("date range conflicts with a confirmed reservation")

// ErrStaleStatus is returned when a compare-and-swap status write finds the
// reservation in a different status than the one read. The caller lost a
// race and must re-read before retrying.
var ErrStaleStatus = errors.New("reservation status changed concurrently")

// ErrOperatorHasActiveWork is returned when an operator assignment cannot be
// removed because the operator still holds CONFIRMED or ACTIVE reservations
// on the vessel.
var ErrOperatorHasActiveWork = errors.New("operator has confirmed or active reservations")
