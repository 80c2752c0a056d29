package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

// OwnerReservationHandler exposes the approval surface: the vessel owner
// (or an administrator) reviews pending requests and approves or rejects
// them. Approval is where exclusivity is enforced; a request overlapping an
// already-confirmed reservation answers 409.
type OwnerReservationHandler struct {
	Charter      *charter.Service
	Reservations *repository.ReservationRepo
	Vessels      *repository.VesselRepo
}

func NewOwnerReservationHandler(svc *charter.Service, r *repository.ReservationRepo, v *repository.VesselRepo) *OwnerReservationHandler {
	return &OwnerReservationHandler{Charter: svc, Reservations: r, Vessels: v}
}

// ListForVessel returns a vessel's reservations for its owner. An optional
// ?status= query narrows the list to one lifecycle state; by default the
// live states are returned so the owner sees the work queue, not history.
func (h *OwnerReservationHandler) ListForVessel(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	vesselID, err := paramID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid vessel id"})
	}

	statuses := charter.LiveStatuses()
	if s := c.QueryParam("status"); s != "" {
		st := charter.Status(s)
		if !st.Valid() {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		statuses = []charter.Status{st}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	vessel, err := h.Vessels.GetByID(ctx, vesselID)
	if err != nil {
		return charterError(c, err)
	}
	if actor.Role != charter.RoleAdministrator && vessel.OwnerID != actor.ID {
		return charterError(c, repository.ErrForbidden)
	}

	out, err := h.Reservations.ListByVessel(ctx, vesselID, statuses)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	if out == nil {
		out = []charter.Reservation{}
	}
	return c.JSON(http.StatusOK, out)
}

// Approve confirms a pending reservation.
func (h *OwnerReservationHandler) Approve(c echo.Context) error {
	return h.decide(c, charter.OpApprove)
}

// Reject declines a pending reservation.
func (h *OwnerReservationHandler) Reject(c echo.Context) error {
	return h.decide(c, charter.OpReject)
}

func (h *OwnerReservationHandler) decide(c echo.Context, op charter.Operation) error {
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

	var res *charter.Reservation
	if op == charter.OpApprove {
		res, err = h.Charter.Approve(ctx, actor, id)
	} else {
		res, err = h.Charter.Reject(ctx, actor, id)
	}
	if err != nil {
		return charterError(c, err)
	}
	publishLifecycle(ctx, h.Vessels, res, op, charter.StatusPendingConfirmation)
	return c.JSON(http.StatusOK, res)
}
