package handler

import (
	"context"
	"time"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/queue"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
	queue_publisher "github.com/zeidalqadri/owlwritey-sub000/internal/service"
)

// newLifecycleEvent builds the queue payload for a completed transition.
// from is the status the reservation actually left; for cancel the handler
// reads it before the transition since both pending and confirmed
// reservations are cancellable.
func newLifecycleEvent(res *charter.Reservation, op charter.Operation, from charter.Status, vesselName string) queue.ReservationLifecycleEvent {
	return queue.ReservationLifecycleEvent{
		ReservationID:  res.ID,
		VesselID:       res.VesselID,
		VesselName:     vesselName,
		RequesterID:    res.RequesterID,
		OperatorID:     res.OperatorID,
		Operation:      string(op),
		FromStatus:     string(from),
		ToStatus:       string(res.Status),
		StartDate:      res.StartDate.Format(dateLayout),
		EndDate:        res.EndDate.Format(dateLayout),
		TotalCostCents: res.TotalCostCents,
		OccurredAt:     time.Now().UTC().Format(time.RFC3339),
	}
}

// publishLifecycle emits a queue event for a completed transition. Broker
// failures are logged by the publisher and never fail the request.
func publishLifecycle(ctx context.Context, vessels *repository.VesselRepo, res *charter.Reservation, op charter.Operation, from charter.Status) {
	vesselName := ""
	if vessel, err := vessels.GetByID(ctx, res.VesselID); err == nil {
		vesselName = vessel.Name
	}
	_ = queue_publisher.PublishLifecycle(ctx, newLifecycleEvent(res, op, from, vesselName))
}
