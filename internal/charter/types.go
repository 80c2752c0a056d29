package charter

import "time"

// Role is the actor role supplied by the host on every call. The host is
// responsible for authenticating the actor; the core only decides whether
// the (role, relationship) pair grants a transition.
type Role string

const (
	RoleAdministrator  Role = "Administrator"
	RoleVesselOwner    Role = "VesselOwner"
	RoleVesselOperator Role = "VesselOperator"
	RoleRequester      Role = "Requester"
)

// Valid reports whether r is one of the four defined roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdministrator, RoleVesselOwner, RoleVesselOperator, RoleRequester:
		return true
	}
	return false
}

// Actor is the authenticated identity on whose behalf an operation runs.
type Actor struct {
	ID   uint64
	Role Role
}

// Schedule is a vessel's tiered rate schedule in cents. Weekly and monthly
// rates are optional; when present they price whole 7-day and 30-day blocks
// of a reservation's date range.
type Schedule struct {
	DailyRateCents   int64  `json:"daily_rate_cents"`
	WeeklyRateCents  *int64 `json:"weekly_rate_cents,omitempty"`
	MonthlyRateCents *int64 `json:"monthly_rate_cents,omitempty"`
}

// Surcharge is a per-day amount added on top of the base rate, e.g. for
// special-equipment operation. The label is informational only.
type Surcharge struct {
	Label       string `json:"label"`
	PerDayCents int64  `json:"per_day_cents"`
}

// Vessel is the read-only reference the core needs about a chartered asset:
// who owns it and how its use is priced. Vessel lifecycle management lives
// in the host application.
type Vessel struct {
	ID      uint64   `json:"id"`
	OwnerID uint64   `json:"owner_id"`
	Name    string   `json:"name"`
	Status  string   `json:"status"`
	Rates   Schedule `json:"rates"`
}

// Reservation is the central entity of the core: a request for exclusive
// use of a vessel over an inclusive date range. It is created in
// PENDING_CONFIRMATION and mutated only through the lifecycle operations.
//
// Fields:
//
//	ID              - reservation identifier.
//	VesselID        - vessel being reserved.
//	RequesterID     - actor who filed the request.
//	OperatorID      - operator assigned to the vessel at creation time
//	                  (resolved from the current assignment, nil when the
//	                  vessel has no operator).
//	StartDate       - first charter day, UTC midnight.
//	EndDate         - last charter day, inclusive, EndDate >= StartDate.
//	Personnel       - number of persons aboard, positive.
//	WorkDescription - free-text description of the planned work.
//	ProjectRef      - optional external project reference.
//	Status          - lifecycle state, one of the six Status values.
//	BaseCostCents   - rate-schedule cost for the range.
//	TotalCostCents  - base cost plus per-day surcharges.
//	IdempotencyKey  - UUID guarding duplicate creation.
type Reservation struct {
	ID              uint64    `json:"id"`
	VesselID        uint64    `json:"vessel_id"`
	RequesterID     uint64    `json:"requester_id"`
	OperatorID      *uint64   `json:"operator_id,omitempty"`
	StartDate       time.Time `json:"start_date"`
	EndDate         time.Time `json:"end_date"`
	Personnel       int       `json:"personnel"`
	WorkDescription string    `json:"work_description"`
	ProjectRef      *string   `json:"project_ref,omitempty"`
	Status          Status    `json:"status"`
	BaseCostCents   int64     `json:"base_cost_cents"`
	TotalCostCents  int64     `json:"total_cost_cents"`
	IdempotencyKey  string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
