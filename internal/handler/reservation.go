package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

// ReservationHandler exposes the requester-facing reservation endpoints:
// filing a charter request, listing own reservations, fetching one and
// cancelling it.
type ReservationHandler struct {
	Charter      *charter.Service
	Reservations *repository.ReservationRepo
	Vessels      *repository.VesselRepo
}

func NewReservationHandler(svc *charter.Service, r *repository.ReservationRepo, v *repository.VesselRepo) *ReservationHandler {
	return &ReservationHandler{Charter: svc, Reservations: r, Vessels: v}
}

type surchargeReq struct {
	Label       string `json:"label"`
	PerDayCents int64  `json:"per_day_cents"`
}

type createReservationReq struct {
	VesselID        uint64         `json:"vessel_id"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	Personnel       int            `json:"personnel"`
	WorkDescription string         `json:"work_description"`
	ProjectRef      *string        `json:"project_ref"`
	Surcharges      []surchargeReq `json:"surcharges"`
}

// Create files a new charter request in PENDING_CONFIRMATION. Overlapping
// live reservations come back as informational conflicts; they never block
// creation. Clients may pass an Idempotency-Key header (UUID) to make
// retries safe.
func (h *ReservationHandler) Create(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.VesselID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "vessel_id required"})
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "start_date must be YYYY-MM-DD"})
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "end_date must be YYYY-MM-DD"})
	}

	surcharges := make([]charter.Surcharge, 0, len(req.Surcharges))
	for _, s := range req.Surcharges {
		surcharges = append(surcharges, charter.Surcharge{Label: s.Label, PerDayCents: s.PerDayCents})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	result, err := h.Charter.Create(ctx, charter.CreateParams{
		VesselID:        req.VesselID,
		RequesterID:     actor.ID,
		StartDate:       start,
		EndDate:         end,
		Personnel:       req.Personnel,
		WorkDescription: strings.TrimSpace(req.WorkDescription),
		ProjectRef:      req.ProjectRef,
		Surcharges:      surcharges,
		IdempotencyKey:  strings.TrimSpace(c.Request().Header.Get("Idempotency-Key")),
	})
	if err != nil {
		return charterError(c, err)
	}
	return c.JSON(http.StatusCreated, result)
}

// ListMine returns every reservation the caller has filed, newest first.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Reservations.ListByRequester(ctx, actor.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	if out == nil {
		out = []charter.Reservation{}
	}
	return c.JSON(http.StatusOK, out)
}

// Get returns a reservation visible to the caller: the requester, the
// vessel's owner, the assigned operator or an administrator.
func (h *ReservationHandler) Get(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Charter.Get(ctx, id)
	if err != nil {
		return charterError(c, err)
	}
	if !h.visibleTo(ctx, actor, res) {
		// 404 rather than 403: don't reveal that the reservation exists.
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *ReservationHandler) visibleTo(ctx context.Context, actor charter.Actor, res *charter.Reservation) bool {
	if actor.Role == charter.RoleAdministrator || res.RequesterID == actor.ID {
		return true
	}
	if res.OperatorID != nil && *res.OperatorID == actor.ID {
		return true
	}
	vessel, err := h.Vessels.GetByID(ctx, res.VesselID)
	return err == nil && vessel.OwnerID == actor.ID
}

// Cancel withdraws a pending or confirmed reservation. Only the original
// requester (or an administrator) may cancel.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Read the status first so the lifecycle event records which state the
	// reservation left; a cancel is valid from both PENDING_CONFIRMATION
	// and CONFIRMED.
	prior, err := h.Charter.Get(ctx, id)
	if err != nil {
		return charterError(c, err)
	}
	res, err := h.Charter.Cancel(ctx, actor, id)
	if err != nil {
		return charterError(c, err)
	}
	publishLifecycle(ctx, h.Vessels, res, charter.OpCancel, prior.Status)
	return c.JSON(http.StatusOK, res)
}
