package repository

import (
	"context"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
)

// VesselStoreAdapter combines VesselRepo and AssignmentRepo into the single
// VesselStore port the charter core consumes.
type VesselStoreAdapter struct {
	Vessels     *VesselRepo
	Assignments *AssignmentRepo
}

// NewVesselStore builds the composite adapter.
func NewVesselStore(vessels *VesselRepo, assignments *AssignmentRepo) *VesselStoreAdapter {
	return &VesselStoreAdapter{Vessels: vessels, Assignments: assignments}
}

func (s *VesselStoreAdapter) GetVessel(ctx context.Context, id uint64) (*charter.Vessel, error) {
	return s.Vessels.GetVessel(ctx, id)
}

func (s *VesselStoreAdapter) CurrentOperator(ctx context.Context, vesselID uint64) (*uint64, error) {
	return s.Assignments.CurrentOperator(ctx, vesselID)
}

func (s *VesselStoreAdapter) OperatorAssigned(ctx context.Context, vesselID, operatorID uint64) (bool, error) {
	return s.Assignments.OperatorAssigned(ctx, vesselID, operatorID)
}
