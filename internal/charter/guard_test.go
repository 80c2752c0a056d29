package charter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

// The full (role, relationship, operation) authorization matrix.
func TestAuthorizeMatrix(t *testing.T) {
	owner := charter.Relationship{IsOwner: true}
	operator := charter.Relationship{IsAssignedOperator: true}
	requester := charter.Relationship{IsRequester: true}
	none := charter.Relationship{}

	ops := []charter.Operation{
		charter.OpApprove, charter.OpReject, charter.OpActivate,
		charter.OpComplete, charter.OpCancel,
	}

	cases := []struct {
		name    string
		role    charter.Role
		rel     charter.Relationship
		op      charter.Operation
		allowed bool
	}{
		{"owner approves own vessel", charter.RoleVesselOwner, owner, charter.OpApprove, true},
		{"owner rejects own vessel", charter.RoleVesselOwner, owner, charter.OpReject, true},
		{"owner of another vessel denied approve", charter.RoleVesselOwner, none, charter.OpApprove, false},
		{"owner denied activate", charter.RoleVesselOwner, owner, charter.OpActivate, false},
		{"owner denied complete", charter.RoleVesselOwner, owner, charter.OpComplete, false},
		{"owner denied cancel of someone else's request", charter.RoleVesselOwner, owner, charter.OpCancel, false},

		{"assigned operator activates", charter.RoleVesselOperator, operator, charter.OpActivate, true},
		{"assigned operator completes", charter.RoleVesselOperator, operator, charter.OpComplete, true},
		{"unassigned operator denied activate", charter.RoleVesselOperator, none, charter.OpActivate, false},
		{"unassigned operator denied complete", charter.RoleVesselOperator, none, charter.OpComplete, false},
		{"operator denied approve", charter.RoleVesselOperator, operator, charter.OpApprove, false},
		{"operator denied reject", charter.RoleVesselOperator, operator, charter.OpReject, false},

		{"requester cancels own request", charter.RoleRequester, requester, charter.OpCancel, true},
		{"requester denied cancel of another request", charter.RoleRequester, none, charter.OpCancel, false},
		{"requester denied approve", charter.RoleRequester, requester, charter.OpApprove, false},
		{"requester denied activate", charter.RoleRequester, requester, charter.OpActivate, false},

		// Relationship beats role for cancel: any role may withdraw a
		// request it filed itself.
		{"owner cancels a request they filed", charter.RoleVesselOwner, requester, charter.OpCancel, true},
		{"operator cancels a request they filed", charter.RoleVesselOperator, requester, charter.OpCancel, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := charter.Authorize(charter.Actor{ID: 1, Role: tc.role}, tc.rel, tc.op)
			if tc.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, charter.ErrUnauthorized)
			}
		})
	}

	// An administrator is allowed every transition with no relationship.
	for _, op := range ops {
		assert.NoError(t, charter.Authorize(charter.Actor{ID: 99, Role: charter.RoleAdministrator}, none, op),
			"administrator must be allowed %s", op)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range []charter.Role{
		charter.RoleAdministrator, charter.RoleVesselOwner,
		charter.RoleVesselOperator, charter.RoleRequester,
	} {
		assert.True(t, r.Valid())
	}
	assert.False(t, charter.Role("Captain").Valid())
	assert.False(t, charter.Role("").Valid())
}
