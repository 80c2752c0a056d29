package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/zeidalqadri/owlwritey-sub000/internal/charter"
	"github.com/zeidalqadri/owlwritey-sub000/internal/repository"
)

// OperatorReservationHandler exposes the operator surface: the assigned
// operator activates a confirmed reservation when the charter starts and
// completes it when the work is done.
type OperatorReservationHandler struct {
	Charter      *charter.Service
	Reservations *repository.ReservationRepo
	Vessels      *repository.VesselRepo
}

func NewOperatorReservationHandler(svc *charter.Service, r *repository.ReservationRepo, v *repository.VesselRepo) *OperatorReservationHandler {
	return &OperatorReservationHandler{Charter: svc, Reservations: r, Vessels: v}
}

// WorkQueue returns the caller's confirmed and active reservations across
// all vessels, ordered by start date.
func (h *OperatorReservationHandler) WorkQueue(c echo.Context) error {
	actor, ok := currentActor(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	out, err := h.Reservations.ListByOperator(ctx, actor.ID, charter.HardStatuses())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	if out == nil {
		out = []charter.Reservation{}
	}
	return c.JSON(http.StatusOK, out)
}

// Activate marks a confirmed reservation as underway.
func (h *OperatorReservationHandler) Activate(c echo.Context) error {
	return h.advance(c, charter.OpActivate)
}

// Complete marks an active reservation as finished.
func (h *OperatorReservationHandler) Complete(c echo.Context) error {
	return h.advance(c, charter.OpComplete)
}

func (h *OperatorReservationHandler) advance(c echo.Context, op charter.Operation) error {
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
	from := charter.StatusConfirmed
	if op == charter.OpActivate {
		res, err = h.Charter.Activate(ctx, actor, id)
	} else {
		from = charter.StatusActive
		res, err = h.Charter.Complete(ctx, actor, id)
	}
	if err != nil {
		return charterError(c, err)
	}
	publishLifecycle(ctx, h.Vessels, res, op, from)
	return c.JSON(http.StatusOK, res)
}
