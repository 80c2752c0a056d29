package charter_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint before", day(1), day(3), day(4), day(6), false},
		{"disjoint after", day(4), day(6), day(1), day(3), false},
		{"touching end day", day(1), day(3), day(3), day(5), true},
		{"touching start day", day(3), day(5), day(1), day(3), true},
		{"contained", day(2), day(4), day(1), day(10), true},
		{"containing", day(1), day(10), day(2), day(4), true},
		{"identical", day(1), day(5), day(1), day(5), true},
		{"single day inside", day(3), day(3), day(1), day(5), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, charter.Overlaps(tc.s1, tc.e1, tc.s2, tc.e2))
			// Overlap is symmetric.
			assert.Equal(t, tc.want, charter.Overlaps(tc.s2, tc.e2, tc.s1, tc.e1))
		})
	}
}

func availabilityFixture(t *testing.T) *charter.Service {
	t.Helper()
	vessels := newMemVesselStore()
	vessels.addVessel(charter.Vessel{
		ID: 1, OwnerID: 10, Name: "MV Kestrel", Status: "OPERATIONAL",
		Rates: charter.Schedule{DailyRateCents: 100_000},
	})
	return charter.NewService(vessels, newMemReservationStore())
}

func TestCheckAvailabilitySoftAndHardConflicts(t *testing.T) {
	ctx := context.Background()
	vessels := newMemVesselStore()
	vessels.addVessel(charter.Vessel{ID: 1, OwnerID: 10, Rates: charter.Schedule{DailyRateCents: 100_000}})
	svc := charter.NewService(vessels, newMemReservationStore())

	requester := uint64(20)
	pending, err := svc.Create(ctx, charter.CreateParams{
		VesselID: 1, RequesterID: requester,
		StartDate: day(1), EndDate: day(5),
		Personnel: 3, WorkDescription: "hull survey",
	})
	require.NoError(t, err)

	// A pending overlap is a soft conflict: reported, but still available.
	avail, err := svc.CheckAvailability(ctx, 1, day(4), day(8), 0)
	require.NoError(t, err)
	assert.True(t, avail.Available)
	require.Len(t, avail.Conflicts, 1)
	assert.Equal(t, pending.Reservation.ID, avail.Conflicts[0].ID)

	// Once confirmed, the same overlap becomes a hard conflict.
	admin := charter.Actor{ID: 1, Role: charter.RoleAdministrator}
	_, err = svc.Approve(ctx, admin, pending.Reservation.ID)
	require.NoError(t, err)

	avail, err = svc.CheckAvailability(ctx, 1, day(4), day(8), 0)
	require.NoError(t, err)
	assert.False(t, avail.Available)
	require.Len(t, avail.Conflicts, 1)

	// A non-overlapping range stays free.
	avail, err = svc.CheckAvailability(ctx, 1, day(6), day(8), 0)
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Empty(t, avail.Conflicts)

	// The reservation ignores itself on re-evaluation.
	avail, err = svc.CheckAvailability(ctx, 1, day(1), day(5), pending.Reservation.ID)
	require.NoError(t, err)
	assert.True(t, avail.Available)
	assert.Empty(t, avail.Conflicts)
}

func TestCheckAvailabilityErrors(t *testing.T) {
	ctx := context.Background()
	svc := availabilityFixture(t)

	_, err := svc.CheckAvailability(ctx, 404, day(1), day(2), 0)
	assert.ErrorIs(t, err, charter.ErrVesselNotFound)

	_, err = svc.CheckAvailability(ctx, 1, day(2), day(1), 0)
	assert.ErrorIs(t, err, charter.ErrInvalidRange)
}
