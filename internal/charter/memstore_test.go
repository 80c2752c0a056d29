package charter_test

// In-memory store fakes backing the lifecycle tests. They honor the same
// contracts as the MySQL repositories: CreateReservation is idempotent on
// the key, UpdateReservationStatus is a compare-and-swap, and every method
// is safe for concurrent use.

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

type memVesselStore struct {
	mu        sync.Mutex
	vessels   map[uint64]*charter.Vessel
	operators map[uint64][]uint64 // vessel ID -> assigned operators, newest last
}

func newMemVesselStore() *memVesselStore {
	return &memVesselStore{
		vessels:   make(map[uint64]*charter.Vessel),
		operators: make(map[uint64][]uint64),
	}
}

func (s *memVesselStore) addVessel(v charter.Vessel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := v
	s.vessels[v.ID] = &cp
}

func (s *memVesselStore) assign(vesselID, operatorID uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operators[vesselID] = append(s.operators[vesselID], operatorID)
}

func (s *memVesselStore) GetVessel(ctx context.Context, id uint64) (*charter.Vessel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.vessels[id]
	if !ok {
		return nil, charter.ErrVesselNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *memVesselStore) CurrentOperator(ctx context.Context, vesselID uint64) (*uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ops := s.operators[vesselID]
	if len(ops) == 0 {
		return nil, nil
	}
	id := ops[len(ops)-1]
	return &id, nil
}

func (s *memVesselStore) OperatorAssigned(ctx context.Context, vesselID, operatorID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range s.operators[vesselID] {
		if op == operatorID {
			return true, nil
		}
	}
	return false, nil
}

type memReservationStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]*charter.Reservation
	byKey  map[string]uint64
}

func newMemReservationStore() *memReservationStore {
	return &memReservationStore{
		nextID: 1,
		rows:   make(map[uint64]*charter.Reservation),
		byKey:  make(map[string]uint64),
	}
}

func (s *memReservationStore) CreateReservation(ctx context.Context, res *charter.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.byKey[res.IdempotencyKey]; ok {
		*res = *s.rows[id]
		return nil
	}
	res.ID = s.nextID
	s.nextID++
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now
	cp := *res
	s.rows[res.ID] = &cp
	s.byKey[res.IdempotencyKey] = res.ID
	return nil
}

func (s *memReservationStore) GetReservation(ctx context.Context, id uint64) (*charter.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, charter.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *memReservationStore) ListByVessel(ctx context.Context, vesselID uint64, statuses []charter.Status) ([]charter.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []charter.Reservation
	for _, r := range s.rows {
		if r.VesselID != vesselID {
			continue
		}
		for _, st := range statuses {
			if r.Status == st {
				out = append(out, *r)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (s *memReservationStore) ListByVesselAndOperator(ctx context.Context, vesselID, operatorID uint64, statuses []charter.Status) ([]charter.Reservation, error) {
	all, err := s.ListByVessel(ctx, vesselID, statuses)
	if err != nil {
		return nil, err
	}
	var out []charter.Reservation
	for _, r := range all {
		if r.OperatorID != nil && *r.OperatorID == operatorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReservationStore) UpdateReservationStatus(ctx context.Context, id uint64, from, to charter.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return charter.ErrReservationNotFound
	}
	if r.Status != from {
		return charter.ErrStaleStatus
	}
	r.Status = to
	r.UpdatedAt = time.Now().UTC()
	return nil
}
