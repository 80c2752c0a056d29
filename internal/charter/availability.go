package charter

import (
	"context"
	"time"
)

// Overlaps reports whether the inclusive date ranges [s1,e1] and [s2,e2]
// share at least one day: s1 <= e2 && s2 <= e1. Inputs are compared on
// their calendar date in UTC.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	s1, e1 = DateOnly(s1), DateOnly(e1)
	s2, e2 = DateOnly(s2), DateOnly(e2)
	return !s1.After(e2) && !s2.After(e1)
}

// Availability is the result of an availability check. Conflicts contains
// every live reservation overlapping the candidate range, PENDING ones
// included, so an approver can see contention; Available is false only when
// a CONFIRMED or ACTIVE reservation overlaps.
type Availability struct {
	Available bool          `json:"available"`
	Conflicts []Reservation `json:"conflicts"`
}

// CheckAvailability determines whether the candidate range on the vessel is
// free of hard conflicts. Pass excludeID != 0 to let a reservation being
// re-evaluated ignore itself. The check is read-only.
func (s *Service) CheckAvailability(ctx context.Context, vesselID uint64, start, end time.Time, excludeID uint64) (*Availability, error) {
	if _, err := DaysInclusive(start, end); err != nil {
		return nil, err
	}
	if _, err := s.vessels.GetVessel(ctx, vesselID); err != nil {
		return nil, err
	}
	existing, err := s.reservations.ListByVessel(ctx, vesselID, LiveStatuses())
	if err != nil {
		return nil, err
	}
	out := &Availability{Available: true, Conflicts: []Reservation{}}
	for _, r := range existing {
		if excludeID != 0 && r.ID == excludeID {
			continue
		}
		if !Overlaps(start, end, r.StartDate, r.EndDate) {
			continue
		}
		out.Conflicts = append(out.Conflicts, r)
		if r.Status == StatusConfirmed || r.Status == StatusActive {
			out.Available = false
		}
	}
	return out, nil
}

// hardConflict reports whether any CONFIRMED/ACTIVE reservation on the
// vessel overlaps [start,end], ignoring excludeID. Used as the enforcement
// point inside Approve while the vessel lock is held.
func (s *Service) hardConflict(ctx context.Context, vesselID uint64, start, end time.Time, excludeID uint64) (bool, error) {
	existing, err := s.reservations.ListByVessel(ctx, vesselID, HardStatuses())
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if r.ID == excludeID {
			continue
		}
		if Overlaps(start, end, r.StartDate, r.EndDate) {
			return true, nil
		}
	}
	return false, nil
}
