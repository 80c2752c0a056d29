package charter

// Relationship captures how an actor relates to the vessel and reservation
// a transition targets. The lifecycle service resolves it from the vessel's
// owner, the current operator assignment and the reservation's requester;
// the guard itself never touches storage.
type Relationship struct {
	IsOwner            bool // actor owns the vessel
	IsAssignedOperator bool // actor holds an active operator assignment on the vessel
	IsRequester        bool // actor filed the reservation
}

// Authorize decides whether the actor may perform the given lifecycle
// operation. The decision is a pure function of (role, relationship,
// operation); there is no bypass mode.
//
// The matrix:
//
//	approve, reject    Administrator, or the vessel's owner
//	activate, complete Administrator, or the operator assigned to the vessel
//	cancel             Administrator, or the original requester
//
// Any other combination is denied with ErrUnauthorized.
func Authorize(actor Actor, rel Relationship, op Operation) error {
	if actor.Role == RoleAdministrator {
		return nil
	}
	switch op {
	case OpApprove, OpReject:
		if actor.Role == RoleVesselOwner && rel.IsOwner {
			return nil
		}
	case OpActivate, OpComplete:
		if actor.Role == RoleVesselOperator && rel.IsAssignedOperator {
			return nil
		}
	case OpCancel:
		// The requester may withdraw their own request regardless of role.
		if rel.IsRequester {
			return nil
		}
	}
	return ErrUnauthorized
}
