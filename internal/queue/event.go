// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationLifecycleEvent is published whenever a reservation changes
// state (approved, rejected, activated, completed, cancelled). It carries
// enough information for downstream consumers to log, notify, or trigger
// analytics without querying the primary database.
type ReservationLifecycleEvent struct {
	ReservationID  uint64  `json:"reservation_id"`
	VesselID       uint64  `json:"vessel_id"`
	VesselName     string  `json:"vessel_name"`
	RequesterID    uint64  `json:"requester_id"`
	OperatorID     *uint64 `json:"operator_id,omitempty"`
	Operation      string  `json:"operation"`
	FromStatus     string  `json:"from_status"`
	ToStatus       string  `json:"to_status"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	TotalCostCents int64   `json:"total_cost_cents"`
	OccurredAt     string  `json:"occurred_at"`
}
