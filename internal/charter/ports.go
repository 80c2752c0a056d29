package charter

import "context"

// VesselStore is the read port for vessels and operator assignments. The
// MySQL implementation lives in internal/repository; tests substitute an
// in-memory fake.
type VesselStore interface {
	// GetVessel returns the vessel or ErrVesselNotFound.
	GetVessel(ctx context.Context, id uint64) (*Vessel, error)
	// CurrentOperator returns the operator currently assigned to the
	// vessel, or nil when no assignment exists. With several assignments
	// the most recent one wins.
	CurrentOperator(ctx context.Context, vesselID uint64) (*uint64, error)
	// OperatorAssigned reports whether the operator holds an active
	// assignment on the vessel.
	OperatorAssigned(ctx context.Context, vesselID, operatorID uint64) (bool, error)
}

// ReservationStore is the persistence port for reservations. All writes
// must be atomic; UpdateReservationStatus is a compare-and-swap keyed by
// reservation ID so concurrent transitions serialize deterministically.
type ReservationStore interface {
	// CreateReservation persists a new reservation and fills its ID and
	// timestamps. When the reservation's idempotency key already exists,
	// the implementation loads the stored row into res instead of
	// inserting a duplicate.
	CreateReservation(ctx context.Context, res *Reservation) error
	// GetReservation returns the reservation or ErrReservationNotFound.
	GetReservation(ctx context.Context, id uint64) (*Reservation, error)
	// ListByVessel returns the vessel's reservations whose status is in
	// statuses, ordered by start date.
	ListByVessel(ctx context.Context, vesselID uint64, statuses []Status) ([]Reservation, error)
	// ListByVesselAndOperator narrows ListByVessel to reservations held
	// by the given assigned operator.
	ListByVesselAndOperator(ctx context.Context, vesselID, operatorID uint64, statuses []Status) ([]Reservation, error)
	// UpdateReservationStatus moves the reservation from one status to
	// another if and only if it is still in the from status. It returns
	// ErrStaleStatus when the row exists in a different status and
	// ErrReservationNotFound when it does not exist.
	UpdateReservationStatus(ctx context.Context, id uint64, from, to Status) error
}
