package charter

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service is the reservation lifecycle orchestrator. It owns creation and
// every status transition, composing the availability checker at creation
// and approval time and the authorization guard at every transition.
//
// Concurrency: each transition is a single compare-and-swap on the
// reservation's status performed by the store. Approval additionally
// serializes per vessel through a keyed mutex so that two concurrent
// approvals of overlapping ranges cannot both pass the availability
// re-check; the loser of any transition race observes ErrStaleStatus and
// must re-read.
type Service struct {
	vessels      VesselStore
	reservations ReservationStore
	vesselLocks  sync.Map // vessel ID -> *sync.Mutex
}

// NewService constructs a Service. Both stores must be non-nil.
func NewService(vessels VesselStore, reservations ReservationStore) *Service {
	if vessels == nil || reservations == nil {
		panic("nil store passed to charter.NewService")
	}
	return &Service{vessels: vessels, reservations: reservations}
}

// lockVessel acquires the per-vessel mutex, lazily creating it.
func (s *Service) lockVessel(vesselID uint64) *sync.Mutex {
	v, _ := s.vesselLocks.LoadOrStore(vesselID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu
}

// CreateParams are the inputs to Create. IdempotencyKey is an optional
// client-supplied UUID; when present, retrying the same create returns the
// already-persisted reservation instead of filing a second one.
type CreateParams struct {
	VesselID        uint64
	RequesterID     uint64
	StartDate       time.Time
	EndDate         time.Time
	Personnel       int
	WorkDescription string
	ProjectRef      *string
	Surcharges      []Surcharge
	IdempotencyKey  string
}

// CreateResult carries the persisted reservation plus any live reservations
// overlapping its range at creation time. Conflicts are informational:
// creation is always permitted, exclusivity is enforced at approval.
type CreateResult struct {
	Reservation *Reservation  `json:"reservation"`
	Conflicts   []Reservation `json:"conflicts"`
}

// Create validates the request, prices it against the vessel's rate
// schedule, resolves the vessel's current operator and persists a new
// reservation in PENDING_CONFIRMATION. Overlapping live reservations are
// returned as conflicts but never block creation; several pending requests
// for the same dates may coexist until one is approved.
func (s *Service) Create(ctx context.Context, p CreateParams) (*CreateResult, error) {
	if p.Personnel <= 0 {
		return nil, ErrInvalidPersonnel
	}
	key := p.IdempotencyKey
	if key == "" {
		key = uuid.NewString()
	} else if _, err := uuid.Parse(key); err != nil {
		return nil, ErrInvalidIdempotencyKey
	}

	vessel, err := s.vessels.GetVessel(ctx, p.VesselID)
	if err != nil {
		return nil, err
	}
	base, total, err := EstimateCost(vessel.Rates, p.StartDate, p.EndDate, p.Surcharges)
	if err != nil {
		return nil, err
	}
	avail, err := s.CheckAvailability(ctx, p.VesselID, p.StartDate, p.EndDate, 0)
	if err != nil {
		return nil, err
	}
	operatorID, err := s.vessels.CurrentOperator(ctx, p.VesselID)
	if err != nil {
		return nil, err
	}

	res := &Reservation{
		VesselID:        p.VesselID,
		RequesterID:     p.RequesterID,
		OperatorID:      operatorID,
		StartDate:       DateOnly(p.StartDate),
		EndDate:         DateOnly(p.EndDate),
		Personnel:       p.Personnel,
		WorkDescription: p.WorkDescription,
		ProjectRef:      p.ProjectRef,
		Status:          StatusPendingConfirmation,
		BaseCostCents:   base,
		TotalCostCents:  total,
		IdempotencyKey:  key,
	}
	if err := s.reservations.CreateReservation(ctx, res); err != nil {
		return nil, err
	}
	return &CreateResult{Reservation: res, Conflicts: avail.Conflicts}, nil
}

// Get returns a reservation by ID.
func (s *Service) Get(ctx context.Context, id uint64) (*Reservation, error) {
	return s.reservations.GetReservation(ctx, id)
}

// Approve moves a PENDING_CONFIRMATION reservation to CONFIRMED. It is the
// enforcement point for the exclusivity invariant: while holding the vessel
// lock it re-checks the range against CONFIRMED/ACTIVE reservations
// (excluding the reservation itself) and fails with ErrAvailabilityConflict
// when a hard conflict exists. Granted to Administrators and the vessel's
// owner.
func (s *Service) Approve(ctx context.Context, actor Actor, id uint64) (*Reservation, error) {
	res, vessel, rel, err := s.load(ctx, actor, id, OpApprove)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, rel, OpApprove); err != nil {
		return nil, err
	}

	mu := s.lockVessel(vessel.ID)
	defer mu.Unlock()

	// Re-read under the lock: a concurrent cancel or approve may have
	// moved the reservation since the unlocked read above.
	res, err = s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := NextStatus(OpApprove, res.Status)
	if err != nil {
		return nil, err
	}
	conflict, err := s.hardConflict(ctx, res.VesselID, res.StartDate, res.EndDate, res.ID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrAvailabilityConflict
	}
	if err := s.reservations.UpdateReservationStatus(ctx, id, res.Status, next); err != nil {
		return nil, err
	}
	res.Status = next
	return res, nil
}

// Reject moves a PENDING_CONFIRMATION reservation to REJECTED. Same
// authorization as Approve; no availability check is needed.
func (s *Service) Reject(ctx context.Context, actor Actor, id uint64) (*Reservation, error) {
	return s.transition(ctx, actor, id, OpReject)
}

// Activate moves a CONFIRMED reservation to ACTIVE. Granted to
// Administrators and the operator currently assigned to the vessel.
func (s *Service) Activate(ctx context.Context, actor Actor, id uint64) (*Reservation, error) {
	return s.transition(ctx, actor, id, OpActivate)
}

// Complete moves an ACTIVE reservation to COMPLETED.
func (s *Service) Complete(ctx context.Context, actor Actor, id uint64) (*Reservation, error) {
	return s.transition(ctx, actor, id, OpComplete)
}

// Cancel moves a PENDING_CONFIRMATION or CONFIRMED reservation to
// CANCELLED. Granted to Administrators and the original requester.
func (s *Service) Cancel(ctx context.Context, actor Actor, id uint64) (*Reservation, error) {
	return s.transition(ctx, actor, id, OpCancel)
}

// transition implements the non-approval lifecycle edges: load, authorize,
// resolve the target status and commit it with a compare-and-swap.
func (s *Service) transition(ctx context.Context, actor Actor, id uint64, op Operation) (*Reservation, error) {
	res, _, rel, err := s.load(ctx, actor, id, op)
	if err != nil {
		return nil, err
	}
	if err := Authorize(actor, rel, op); err != nil {
		return nil, err
	}
	next, err := NextStatus(op, res.Status)
	if err != nil {
		return nil, err
	}
	if err := s.reservations.UpdateReservationStatus(ctx, id, res.Status, next); err != nil {
		return nil, err
	}
	res.Status = next
	return res, nil
}

// load fetches the reservation and its vessel and resolves the actor's
// relationship to both. The operator assignment is only looked up for the
// operations whose guard depends on it.
func (s *Service) load(ctx context.Context, actor Actor, id uint64, op Operation) (*Reservation, *Vessel, Relationship, error) {
	res, err := s.reservations.GetReservation(ctx, id)
	if err != nil {
		return nil, nil, Relationship{}, err
	}
	vessel, err := s.vessels.GetVessel(ctx, res.VesselID)
	if err != nil {
		return nil, nil, Relationship{}, err
	}
	rel := Relationship{
		IsOwner:     vessel.OwnerID == actor.ID,
		IsRequester: res.RequesterID == actor.ID,
	}
	if op == OpActivate || op == OpComplete {
		assigned, err := s.vessels.OperatorAssigned(ctx, vessel.ID, actor.ID)
		if err != nil {
			return nil, nil, Relationship{}, err
		}
		rel.IsAssignedOperator = assigned
	}
	return res, vessel, rel, nil
}

// CanRemoveOperator reports whether the operator's assignment on the vessel
// may be removed. Removal is blocked with ErrOperatorHasActiveWork while
// the operator holds any CONFIRMED or ACTIVE reservation on the vessel.
// The host must consult this before deleting an assignment row.
func (s *Service) CanRemoveOperator(ctx context.Context, vesselID, operatorID uint64) error {
	if _, err := s.vessels.GetVessel(ctx, vesselID); err != nil {
		return err
	}
	live, err := s.reservations.ListByVesselAndOperator(ctx, vesselID, operatorID, HardStatuses())
	if err != nil {
		return err
	}
	if len(live) > 0 {
		return ErrOperatorHasActiveWork
	}
	return nil
}
