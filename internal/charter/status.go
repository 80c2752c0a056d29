package charter

// Status is the lifecycle state of a reservation. The string values are
// wire-stable: they appear verbatim in API responses, queue events and the
// reservations.status column.
type Status string

const (
	StatusPendingConfirmation Status = "PENDING_CONFIRMATION"
	StatusConfirmed           Status = "CONFIRMED"
	StatusActive              Status = "ACTIVE"
	StatusCompleted           Status = "COMPLETED"
	StatusRejected            Status = "REJECTED"
	StatusCancelled           Status = "CANCELLED"
)

// Valid reports whether s is one of the six defined lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusPendingConfirmation, StatusConfirmed, StatusActive,
		StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether s admits no further transitions. Terminal
// reservations are retained for audit and never deleted by the core.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// LiveStatuses are the non-terminal states considered by the availability
// checker. PENDING_CONFIRMATION overlaps are surfaced as soft conflicts;
// only the states in HardStatuses block approval.
func LiveStatuses() []Status {
	return []Status{StatusPendingConfirmation, StatusConfirmed, StatusActive}
}

// HardStatuses are the states that enforce exclusive use of a vessel: no
// two reservations in these states may overlap in date range.
func HardStatuses() []Status {
	return []Status{StatusConfirmed, StatusActive}
}

// Operation identifies a lifecycle transition request.
type Operation string

const (
	OpApprove  Operation = "approve"
	OpReject   Operation = "reject"
	OpActivate Operation = "activate"
	OpComplete Operation = "complete"
	OpCancel   Operation = "cancel"
)

// edges maps each operation to its permitted source states and single
// target state. Any (operation, current) pair absent from this table is an
// invalid transition.
var edges = map[Operation]struct {
	from []Status
	to   Status
}{
	OpApprove:  {from: []Status{StatusPendingConfirmation}, to: StatusConfirmed},
	OpReject:   {from: []Status{StatusPendingConfirmation}, to: StatusRejected},
	OpActivate: {from: []Status{StatusConfirmed}, to: StatusActive},
	OpComplete: {from: []Status{StatusActive}, to: StatusCompleted},
	OpCancel:   {from: []Status{StatusPendingConfirmation, StatusConfirmed}, to: StatusCancelled},
}

// NextStatus returns the status produced by applying op to a reservation in
// the given current status. It returns ErrInvalidTransition when the edge
// does not exist.
func NextStatus(op Operation, current Status) (Status, error) {
	e, ok := edges[op]
	if !ok {
		return "", ErrInvalidTransition
	}
	for _, f := range e.from {
		if f == current {
			return e.to, nil
		}
	}
	return "", ErrInvalidTransition
}
